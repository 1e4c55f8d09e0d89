package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Shop.Name != "Mulghai Point" {
		t.Errorf("shop name = %s", cfg.Shop.Name)
	}
	if cfg.Shop.Delivery.Threshold != 500 || cfg.Shop.Delivery.Fee != 50 {
		t.Errorf("delivery = %+v, want 500/50", cfg.Shop.Delivery)
	}
	if cfg.Storage.CartBackend != "memory" {
		t.Errorf("cart backend = %s, want memory", cfg.Storage.CartBackend)
	}
}

func TestLoad_ShopFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	content := `shop:
  name: Mulghai Point Jalandhar
  whatsapp_phone: "+91 98765 43210"
  delivery:
    threshold: 150
    fee: 25
  service_areas:
    - pincode: "144001"
      area: Jalandhar city
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write shop file: %v", err)
	}

	t.Setenv("SHOP_CONFIG_FILE", path)
	t.Setenv("DELIVERY_FEE", "30")
	t.Setenv("SERVICE_AREA_FILES", "a.csv, b.csv.gz")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Shop.Name != "Mulghai Point Jalandhar" {
		t.Errorf("name = %q", cfg.Shop.Name)
	}
	if cfg.Shop.Delivery.Threshold != 150 {
		t.Errorf("threshold = %d, want 150 from file", cfg.Shop.Delivery.Threshold)
	}
	if cfg.Shop.Delivery.Fee != 30 {
		t.Errorf("fee = %d, want 30 from env", cfg.Shop.Delivery.Fee)
	}
	if cfg.Shop.SupportPhone != "6284307484" {
		t.Errorf("support phone should keep default, got %q", cfg.Shop.SupportPhone)
	}
	if len(cfg.Shop.ServiceAreas) != 1 || cfg.Shop.ServiceAreas[0].Pincode != "144001" {
		t.Errorf("service areas = %+v", cfg.Shop.ServiceAreas)
	}
	if strings.Join(cfg.Shop.ServiceAreaFiles, "|") != "a.csv|b.csv.gz" {
		t.Errorf("service area files = %v", cfg.Shop.ServiceAreaFiles)
	}
}

func TestLoad_BadShopFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	if err := os.WriteFile(path, []byte("shop: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write shop file: %v", err)
	}
	t.Setenv("SHOP_CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed YAML")
	}

	t.Setenv("SHOP_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "invalid log level"},
		{"bad phone", map[string]string{"WHATSAPP_PHONE": "call-me"}, "invalid WhatsApp phone"},
		{"negative fee", map[string]string{"DELIVERY_FEE": "-1"}, "must not be negative"},
		{"negative threshold", map[string]string{"DELIVERY_THRESHOLD": "-500"}, "must not be negative"},
		{"redis without url", map[string]string{"CART_BACKEND": "redis"}, "REDIS_URL is required"},
		{"unknown cart backend", map[string]string{"CART_BACKEND": "etcd"}, "invalid cart backend"},
		{"postgres without dsn", map[string]string{"ORDER_BACKEND": "postgres"}, "POSTGRES_DSN is required"},
		{"mongo without uri", map[string]string{"STATUS_BACKEND": "mongo"}, "MONGO_URL is required"},
		{"unknown status backend", map[string]string{"STATUS_BACKEND": "sqlite"}, "invalid status backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_FreeDelivery(t *testing.T) {
	t.Setenv("DELIVERY_FEE", "0")
	t.Setenv("DELIVERY_THRESHOLD", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("a zero fee should be accepted, got %v", err)
	}
	if cfg.Shop.Delivery.Fee != 0 || cfg.Shop.Delivery.Threshold != 0 {
		t.Errorf("delivery = %+v, want 0/0", cfg.Shop.Delivery)
	}
}

func TestValidate_ServiceAreas(t *testing.T) {
	tests := []struct {
		name    string
		areas   string
		wantErr string
	}{
		{"five digits", `[{pincode: "14401", area: Jalandhar}]`, "invalid service area pincode"},
		{"letters", `[{pincode: "14400A", area: Jalandhar}]`, "invalid service area pincode"},
		{"padded", `[{pincode: " 144001", area: Jalandhar}]`, "invalid service area pincode"},
		{"missing pincode", `[{area: Jalandhar}]`, "invalid service area pincode"},
		{"missing area", `[{pincode: "144001"}]`, "has no area name"},
		{"valid", `[{pincode: "144001", area: Jalandhar}]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "shop.yaml")
			if err := os.WriteFile(path, []byte("shop:\n  service_areas: "+tt.areas+"\n"), 0644); err != nil {
				t.Fatalf("failed to write shop file: %v", err)
			}
			t.Setenv("SHOP_CONFIG_FILE", path)

			_, err := Load()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Load() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

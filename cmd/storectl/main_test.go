package main

import (
	"bytes"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes storectl with args and returns stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	jsonOutput, shopFile = false, ""
	productCategory, productQuery, areaFiles = "all", "", nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseLine(t *testing.T) {
	id, weight, qty, err := parseLine("11:1.5kg:3")
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.Equal(t, "1.5kg", weight)
	assert.Equal(t, 3, qty)

	_, _, qty, err = parseLine("1:500g")
	require.NoError(t, err)
	assert.Equal(t, 1, qty)

	for _, bad := range []string{"1", "x:500g", "1:500g:0", "1:500g:two", "1:2:3:4"} {
		_, _, _, err := parseLine(bad)
		assert.Error(t, err, bad)
	}
}

func TestProductsCommand(t *testing.T) {
	out, err := run(t, "products", "--category", "fish", "--json")
	require.NoError(t, err)

	var products []models.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Fresh Pomfret", products[0].Name)

	out, err = run(t, "products", "-q", "kebab")
	require.NoError(t, err)
	assert.Contains(t, out, "Chicken Seekh Kebab")
	assert.NotContains(t, out, "Mutton Keema")
}

func TestQuoteCommand(t *testing.T) {
	out, err := run(t, "quote", "1:500g:2", "8:250g", "--json")
	require.NoError(t, err)

	var view models.CartView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "365", view.Summary.Subtotal.String())
	assert.Equal(t, "50", view.Summary.DeliveryCharge.String())
	assert.Equal(t, "415", view.Summary.Total.String())
	assert.Equal(t, 3, view.Summary.ItemCount)

	out, err = run(t, "quote", "1:500g:2", "1:500g:2")
	require.NoError(t, err)
	assert.Contains(t, out, "× 4")
	assert.Contains(t, out, "₹640")

	_, err = run(t, "quote", "11:250g")
	assert.Error(t, err)
}

func TestPincodeCommand(t *testing.T) {
	out, err := run(t, "pincode", "144401", "110001")
	require.NoError(t, err)
	assert.Contains(t, out, "144401\t✓ Delivery available to Phagwara city and surrounding areas")
	assert.Contains(t, out, "110001\t✗ Sorry, we don't deliver to this area yet")

	dir := t.TempDir()
	path := filepath.Join(dir, "areas.csv")
	require.NoError(t, os.WriteFile(path, []byte("# extra\n144001,Jalandhar city\n"), 0o644))

	out, err = run(t, "pincode", "--area-file", path, "--json")
	require.NoError(t, err)

	var areas []models.ServiceArea
	require.NoError(t, json.Unmarshal([]byte(out), &areas))
	assert.Len(t, areas, 5)
	assert.Equal(t, "144001", areas[0].Pincode)
}

func TestLinkCommand(t *testing.T) {
	out, err := run(t, "link", "inquiry")
	require.NoError(t, err)

	u, err := url.Parse(string(bytes.TrimSpace([]byte(out))))
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/917986955634", u.Path)
	assert.Contains(t, u.Query().Get("text"), "Hello Mulghai Point!")

	out, err = run(t, "link", "confirm", "9876543210", "--json")
	require.NoError(t, err)
	var link models.ContactLink
	require.NoError(t, json.Unmarshal([]byte(out), &link))
	assert.Equal(t, "919876543210", link.Phone)

	_, err = run(t, "link", "confirm", "12345")
	assert.Error(t, err)

	_, err = run(t, "link", "brochure")
	assert.Error(t, err)
}

func TestShopConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`shop:
  name: Test Butchery
  whatsapp_phone: "919999999999"
  delivery:
    threshold: 100
    fee: 25
`), 0o644))
	t.Cleanup(func() { os.Unsetenv("SHOP_CONFIG_FILE") })

	out, err := run(t, "--shop-config", path, "quote", "8:250g:3", "--json")
	require.NoError(t, err)

	var view models.CartView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "135", view.Summary.Subtotal.String())
	assert.Equal(t, "0", view.Summary.DeliveryCharge.String())

	out, err = run(t, "--shop-config", path, "link", "inquiry")
	require.NoError(t, err)
	assert.Contains(t, out, "https://wa.me/919999999999?text=")
}

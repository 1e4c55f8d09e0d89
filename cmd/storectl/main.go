package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/config"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	shopFile   string

	// loaded in PersistentPreRunE
	shop config.ShopConfig
)

var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "Operator tools for the storefront catalog, delivery areas and WhatsApp links",
	Long: `storectl runs the storefront's business rules offline.

Shop settings come from the same SHOP_CONFIG_FILE and environment
variables the server reads; --shop-config overrides the file path.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if shopFile != "" {
			if err := os.Setenv("SHOP_CONFIG_FILE", shopFile); err != nil {
				return err
			}
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		shop = cfg.Shop
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&shopFile, "shop-config", "", "path to the shop YAML file")

	rootCmd.AddCommand(productsCmd, pincodeCmd, quoteCmd, linkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

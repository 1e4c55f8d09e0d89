package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/pincode"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/pricing"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/service"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/whatsapp"
	"github.com/spf13/cobra"
)

var (
	productCategory string
	productQuery    string
	areaFiles       []string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List catalog products",
	Long: `Lists the catalog, optionally narrowed by category and a search query.

Examples:
  storectl products --category mutton
  storectl products -q boneless`,
	Args: cobra.NoArgs,
	RunE: listProducts,
}

var pincodeCmd = &cobra.Command{
	Use:   "pincode [code...]",
	Short: "Check delivery serviceability for pincodes",
	Long: `Checks each pincode against the delivery table. With no arguments the
whole table is printed. --area-file adds "pincode,area" files (plain or .gz).`,
	RunE: checkPincodes,
}

var quoteCmd = &cobra.Command{
	Use:   "quote productId:weight[:qty]...",
	Short: "Price a cart with the delivery rule",
	Long: `Prices the given lines the way the cart does.

Example:
  storectl quote 1:500g:2 8:250g`,
	Args: cobra.MinimumNArgs(1),
	RunE: quoteCart,
}

var linkCmd = &cobra.Command{
	Use:       "link inquiry|quick-order|confirm [customerPhone]",
	Short:     "Print a prefilled WhatsApp chat link",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"inquiry", "quick-order", "confirm"},
	RunE:      printLink,
}

func init() {
	productsCmd.Flags().StringVarP(&productCategory, "category", "c", "all", "category id (chicken, mutton, fish, processed, all)")
	productsCmd.Flags().StringVarP(&productQuery, "query", "q", "", "search text matched against name, description and tags")
	pincodeCmd.Flags().StringSliceVar(&areaFiles, "area-file", nil, "extra delivery area files")
}

func listProducts(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, err := service.NewProductService(ctx, repository.NewInMemoryProductRepository())
	if err != nil {
		return err
	}
	products, err := svc.ListProducts(ctx, models.ProductFilter{Category: productCategory, Query: productQuery})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), products)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE/KG\tWEIGHTS")
	for _, p := range products {
		weights := make([]string, 0, len(p.Weights))
		for _, w := range p.Weights {
			weights = append(weights, fmt.Sprintf("%s=₹%s", w.Weight, w.Price))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t₹%s\t%s\n", p.ID, p.Name, p.Category, p.PricePerKg, strings.Join(weights, " "))
	}
	return tw.Flush()
}

func checkPincodes(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	areas := pincode.DefaultAreas()
	if len(shop.ServiceAreas) > 0 {
		areas = shop.ServiceAreas
	}
	validator := pincode.NewValidator(areas)

	files := append(append([]string{}, shop.ServiceAreaFiles...), areaFiles...)
	if len(files) > 0 {
		if err := validator.LoadFromFiles(ctx, files); err != nil {
			return err
		}
	}

	if len(args) == 0 {
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), validator.Areas())
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PINCODE\tAREA")
		for _, a := range validator.Areas() {
			fmt.Fprintf(tw, "%s\t%s\n", a.Pincode, a.Area)
		}
		return tw.Flush()
	}

	checks := make([]models.PincodeCheck, 0, len(args))
	for _, code := range args {
		checks = append(checks, validator.Check(code))
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), checks)
	}
	for _, c := range checks {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Pincode, c.Message)
	}
	return nil
}

// parseLine reads "productId:weight[:qty]"
func parseLine(arg string) (int64, string, int, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, "", 0, fmt.Errorf("line %q: want productId:weight[:qty]", arg)
	}

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", 0, fmt.Errorf("line %q: invalid product id", arg)
	}

	qty := 1
	if len(parts) == 3 {
		qty, err = strconv.Atoi(parts[2])
		if err != nil || qty < 1 {
			return 0, "", 0, fmt.Errorf("line %q: quantity must be a positive integer", arg)
		}
	}
	return id, parts[1], qty, nil
}

func quoteCart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	products := repository.NewInMemoryProductRepository()
	carts := service.NewCartService(products,
		repository.NewInMemoryCartRepository(0),
		pricing.NewPolicy(shop.Delivery.Threshold, shop.Delivery.Fee))

	cart, err := carts.Create(ctx)
	if err != nil {
		return err
	}

	for _, arg := range args {
		id, weight, qty, err := parseLine(arg)
		if err != nil {
			return err
		}
		req := models.AddItemRequest{ProductID: id, Weight: weight}
		view, err := carts.AddItem(ctx, cart.ID, req)
		if err != nil {
			if errors.Is(err, service.ErrInvalidProduct) || errors.Is(err, service.ErrInvalidWeight) {
				return fmt.Errorf("line %q: %w", arg, err)
			}
			return err
		}
		// AddItem adds one unit; set the requested quantity on the merged line
		itemID := models.CartItemID(id, weight)
		current := view.Items[view.Find(itemID)].Quantity
		if _, err := carts.UpdateQuantity(ctx, cart.ID, itemID, current-1+qty); err != nil {
			return err
		}
	}

	view, err := carts.Get(ctx, cart.ID)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), view)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, item := range view.Items {
		fmt.Fprintf(tw, "%s (%s)\t× %d\t₹%s\n", item.Name, item.Weight, item.Quantity, item.LineTotal())
	}
	fmt.Fprintf(tw, "Subtotal\t\t₹%s\n", view.Summary.Subtotal)
	fmt.Fprintf(tw, "Delivery\t\t₹%s\n", view.Summary.DeliveryCharge)
	fmt.Fprintf(tw, "Total\t\t₹%s\n", view.Summary.Total)
	if !view.Summary.FreeDelivery {
		fmt.Fprintf(tw, "Add ₹%s more for free delivery\t\t\n", view.Summary.FreeDeliveryShortfall)
	}
	return tw.Flush()
}

func printLink(cmd *cobra.Command, args []string) error {
	phone := shop.WhatsAppPhone
	var message string

	switch args[0] {
	case "inquiry":
		message = whatsapp.InquiryMessage(shop.Name)
	case "quick-order":
		message = whatsapp.QuickOrderMessage(shop.Name)
	case "confirm":
		if len(args) < 2 || !service.ValidatePhone(args[1]) {
			return fmt.Errorf("confirm needs the customer's 10-digit phone number")
		}
		phone = service.CustomerWhatsAppNumber(args[1])
		message = whatsapp.ConfirmationMessage(shop.Name, shop.SupportPhone)
	default:
		return fmt.Errorf("unknown link %q (want inquiry, quick-order or confirm)", args[0])
	}

	link := models.ContactLink{Phone: phone, Message: message, URL: whatsapp.Link(phone, message)}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), link)
	}
	fmt.Fprintln(cmd.OutOrStdout(), link.URL)
	return nil
}

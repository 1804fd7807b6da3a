package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"remont/internal/api"
	"remont/internal/estimate"
	"remont/internal/measure"
	"remont/internal/models"
	"remont/internal/util"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse supplier catalogs",
	Long:  "Search supplier products and add them to a project",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog products",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter models.ProductFilter
		filter.Category, _ = cmd.Flags().GetString("category")
		filter.SupplierID, _ = cmd.Flags().GetInt("supplier")
		filter.Search, _ = cmd.Flags().GetString("search")
		filter.IncludeOutOfStock, _ = cmd.Flags().GetBool("all")

		return printCatalog(cmd.Context(), newClient(), filter)
	},
}

func printCatalog(ctx context.Context, client *api.Client, filter models.ProductFilter) error {
	catalog, err := client.ListProducts(ctx, filter)
	if err != nil {
		return fmt.Errorf("error listing products: %w", err)
	}

	if len(catalog.Products) == 0 {
		fmt.Println("Товары не найдены")
	}
	for _, p := range catalog.Products {
		stock := color.GreenString("в наличии")
		if !p.InStock {
			stock = color.RedString("нет в наличии")
		}
		fmt.Printf("%d. %s  %s / %s  %s\n", p.ID, util.Truncate(p.Name, 40), estimate.FormatRubles(p.Price), p.Unit, stock)
		fmt.Printf("   %s · %s ★ %.1f", p.Category, p.Supplier.Name, p.Supplier.Rating)
		if p.DeliveryAvailable {
			fmt.Printf(" · доставка %s, %d дн.", estimate.FormatRubles(p.DeliveryCost), p.DeliveryDays)
		}
		fmt.Println()
	}

	if len(catalog.Categories) > 0 {
		fmt.Printf("\nКатегории: %v\n", catalog.Categories)
	}
	fmt.Printf("Всего: %d\n", catalog.Total)
	return nil
}

var catalogAddCmd = &cobra.Command{
	Use:   "add [project-id] [product-id]",
	Short: "Add a product to a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		projectID, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		productID, err := parseID(args[1], "product")
		if err != nil {
			return err
		}
		quantity, _ := cmd.Flags().GetFloat64("quantity")
		room, _ := cmd.Flags().GetString("room")

		client := newClient()
		itemID, err := client.AddProductToProject(ctx, projectID, productID, quantity, measure.RoomName(room))
		if err != nil {
			return fmt.Errorf("error adding product: %w", err)
		}
		color.Green("Товар добавлен в проект (позиция %d)\n", itemID)
		return printProjectProducts(cmd, projectID)
	},
}

var catalogProductsCmd = &cobra.Command{
	Use:   "products [project-id]",
	Short: "Show the products added to a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		return printProjectProducts(cmd, projectID)
	},
}

func printProjectProducts(cmd *cobra.Command, projectID int) error {
	ctx, _, err := requireSession(cmd.Context())
	if err != nil {
		return err
	}
	items, summary, err := newClient().ProjectProducts(ctx, projectID)
	if err != nil {
		return fmt.Errorf("error loading project products: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("В проекте пока нет товаров")
		return nil
	}

	for _, item := range items {
		fmt.Printf("  %s (%s): %.2f %s × %s = %s\n",
			util.Truncate(item.ProductName, 40), item.SupplierName,
			item.Quantity, item.Unit, estimate.FormatRubles(item.Price), estimate.FormatRubles(item.Total))
	}
	fmt.Printf("Товары:   %s\n", estimate.FormatRubles(summary.ProductsTotal))
	fmt.Printf("Доставка: %s\n", estimate.FormatRubles(summary.DeliveryTotal))
	fmt.Printf("Подъём:   %s\n", estimate.FormatRubles(summary.LiftingTotal))
	color.New(color.Bold).Printf("Итого:    %s\n", estimate.FormatRubles(summary.GrandTotal))
	return nil
}

func init() {
	catalogListCmd.Flags().String("category", "", "Product category")
	catalogListCmd.Flags().Int("supplier", 0, "Supplier id")
	catalogListCmd.Flags().String("search", "", "Search text")
	catalogListCmd.Flags().Bool("all", false, "Include products that are out of stock")

	catalogAddCmd.Flags().Float64("quantity", 1, "Quantity in product units")
	catalogAddCmd.Flags().String("room", "", "Room the product is for")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogProductsCmd)
}

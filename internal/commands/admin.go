package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"remont/internal/api"
	"remont/internal/estimate"
	"remont/internal/models"
	"remont/internal/phone"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Platform administration",
	Long: `Platform statistics and listings for administrators.
The admin token is read from REMONT_ADMIN_TOKEN or asked for; it is never saved.`,
}

// adminClient returns a client carrying the admin token, prompting for it when unset
func adminClient() (*api.Client, error) {
	client := newClient()
	if client.AdminToken != "" {
		return client, nil
	}

	fmt.Print("Admin token: ")
	token, err := term.ReadPassword(os.Stdin.Fd())
	fmt.Println()
	if err != nil {
		return nil, fmt.Errorf("error reading admin token: %w", err)
	}
	if len(token) == 0 {
		return nil, models.ErrAdminTokenRequired
	}
	client.AdminToken = string(token)
	return client, nil
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show platform statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := adminClient()
		if err != nil {
			return err
		}
		stats, err := client.AdminStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("error loading statistics: %w", err)
		}

		fmt.Printf("Пользователи: %d (заказчиков %d, подрядчиков %d)\n",
			stats.Users.Total, stats.Users.Customers, stats.Users.Contractors)
		fmt.Printf("Проекты: %d (активных %d, завершённых %d)\n",
			stats.Projects.Total, stats.Projects.Active, stats.Projects.Completed)
		fmt.Printf("Средний бюджет: %s\n", estimate.FormatRubles(stats.Projects.AvgBudget))

		types := make([]string, 0, len(stats.Projects.ByType))
		for t := range stats.Projects.ByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Printf("  %s: %d\n", models.ProjectType(t).Label(), stats.Projects.ByType[t])
		}

		fmt.Printf("Замеров: %d, фото: %d\n", stats.Content.Measurements, stats.Content.Photos)
		return nil
	},
}

var adminProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := adminClient()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		status, _ := cmd.Flags().GetString("status")

		page, err := client.AdminProjects(cmd.Context(), limit, offset, status)
		if err != nil {
			return fmt.Errorf("error listing projects: %w", err)
		}

		for _, p := range page.Projects {
			printProject(p.Project)
			fmt.Printf("   Заказчик: %s, %s\n", p.Customer.Name, phone.Format(p.Customer.Phone))
			fmt.Println()
		}
		fmt.Printf("Показано %d-%d из %d\n", page.Offset+1, page.Offset+len(page.Projects), page.Total)
		return nil
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := adminClient()
		if err != nil {
			return err
		}
		role, _ := cmd.Flags().GetString("role")
		if role != "" && !models.UserRole(role).Valid() {
			return models.ErrInvalidRole
		}

		users, err := client.AdminUsers(cmd.Context(), models.UserRole(role))
		if err != nil {
			return fmt.Errorf("error listing users: %w", err)
		}
		for _, u := range users {
			verified := ""
			if u.IsVerified {
				verified = " ✓"
			}
			fmt.Printf("%d. %s%s  %s  %s\n", u.ID, displayName(u), verified, phone.Format(u.Phone), u.Role.Label())
			if u.Specialization != "" {
				fmt.Printf("   %s\n", u.Specialization)
			}
		}
		fmt.Printf("Всего: %d\n", len(users))
		return nil
	},
}

var adminProductCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage catalog products",
	Long:  "Create, change and remove supplier products; the catalog is listed again after every change",
}

var adminProductAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := adminClient()
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		var p models.NewProduct
		p.SupplierID, _ = flags.GetInt("supplier")
		p.Name, _ = flags.GetString("name")
		p.Description, _ = flags.GetString("description")
		p.Category, _ = flags.GetString("category")
		p.Subcategory, _ = flags.GetString("subcategory")
		p.Price, _ = flags.GetFloat64("price")
		p.Unit, _ = flags.GetString("unit")
		p.DeliveryCost, _ = flags.GetFloat64("delivery-cost")
		p.FloorLiftingCost, _ = flags.GetFloat64("floor-lifting-cost")
		p.InStock, _ = flags.GetBool("in-stock")

		id, err := client.CreateProduct(cmd.Context(), p)
		if err != nil {
			return fmt.Errorf("error creating product: %w", err)
		}
		fmt.Printf("Товар %d создан\n\n", id)
		return printCatalog(cmd.Context(), client, models.ProductFilter{IncludeOutOfStock: true})
	},
}

var adminProductUpdateCmd = &cobra.Command{
	Use:   "update [product-id]",
	Short: "Change a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := parseID(args[0], "product")
		if err != nil {
			return err
		}
		u, err := productUpdateFromFlags(cmd)
		if err != nil {
			return err
		}
		client, err := adminClient()
		if err != nil {
			return err
		}

		if err := client.UpdateProduct(cmd.Context(), productID, u); err != nil {
			return fmt.Errorf("error updating product: %w", err)
		}
		fmt.Printf("Товар %d обновлён\n\n", productID)
		return printCatalog(cmd.Context(), client, models.ProductFilter{IncludeOutOfStock: true})
	},
}

var adminProductDeleteCmd = &cobra.Command{
	Use:   "delete [product-id]",
	Short: "Remove a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := parseID(args[0], "product")
		if err != nil {
			return err
		}
		client, err := adminClient()
		if err != nil {
			return err
		}

		if err := client.DeleteProduct(cmd.Context(), productID); err != nil {
			return fmt.Errorf("error deleting product: %w", err)
		}
		fmt.Printf("Товар %d удалён\n\n", productID)
		return printCatalog(cmd.Context(), client, models.ProductFilter{IncludeOutOfStock: true})
	},
}

// productUpdateFromFlags sends only the flags given on the command line
func productUpdateFromFlags(cmd *cobra.Command) (models.ProductUpdate, error) {
	var u models.ProductUpdate
	flags := cmd.Flags()

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	num := func(name string) *float64 {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetFloat64(name)
		return &v
	}

	u.Name = str("name")
	u.Description = str("description")
	u.Category = str("category")
	u.Subcategory = str("subcategory")
	u.Unit = str("unit")
	u.Price = num("price")
	u.DeliveryCost = num("delivery-cost")
	u.FloorLiftingCost = num("floor-lifting-cost")
	if flags.Changed("in-stock") {
		v, _ := flags.GetBool("in-stock")
		u.InStock = &v
	}
	return u, u.Validate()
}

func addProductFlags(cmd *cobra.Command, unit string) {
	cmd.Flags().String("name", "", "Product name")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("category", "", "Category")
	cmd.Flags().String("subcategory", "", "Subcategory")
	cmd.Flags().Float64("price", 0, "Price per unit")
	cmd.Flags().String("unit", unit, "Unit of sale")
	cmd.Flags().Float64("delivery-cost", 0, "Delivery cost")
	cmd.Flags().Float64("floor-lifting-cost", 0, "Cost of lifting to the floor")
	cmd.Flags().Bool("in-stock", true, "Product is in stock")
}

func init() {
	adminProjectsCmd.Flags().Int("limit", 50, "Page size")
	adminProjectsCmd.Flags().Int("offset", 0, "Page offset")
	adminProjectsCmd.Flags().String("status", "", "Only projects with this status")
	adminUsersCmd.Flags().String("role", "", "customer or contractor")

	adminCmd.AddCommand(adminStatsCmd)
	adminCmd.AddCommand(adminProjectsCmd)
	adminCmd.AddCommand(adminUsersCmd)

	addProductFlags(adminProductAddCmd, "шт")
	adminProductAddCmd.Flags().Int("supplier", 1, "Supplier id")
	adminProductAddCmd.MarkFlagRequired("name")
	adminProductAddCmd.MarkFlagRequired("category")
	addProductFlags(adminProductUpdateCmd, "")

	adminProductCmd.AddCommand(adminProductAddCmd)
	adminProductCmd.AddCommand(adminProductUpdateCmd)
	adminProductCmd.AddCommand(adminProductDeleteCmd)
	adminCmd.AddCommand(adminProductCmd)
}

package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"remont/internal/estimate"
	"remont/internal/util"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Compute renovation cost estimates",
	Long: `Compute an estimate from a YAML or JSON file of line items.
Without a file the starter estimate is used. Run 'remont estimate init' to
write the starter estimate to a file and edit it.`,
}

// loadSheet reads the estimate file given in args, or the starter estimate
func loadSheet(cmd *cobra.Command, args []string) (*estimate.Sheet, error) {
	sheet := estimate.DefaultSheet()
	if len(args) == 1 {
		loaded, err := estimate.LoadSheet(args[0])
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", args[0], err)
		}
		sheet = loaded
	}
	if cmd.Flags().Changed("urgency") {
		sheet.Urgency, _ = cmd.Flags().GetString("urgency")
	}
	return sheet, nil
}

var estimateShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Show estimate subtotals and contractor bids",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := loadSheet(cmd, args)
		if err != nil {
			return err
		}
		q, err := sheet.Quote()
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		bold.Println(sheet.Title)
		if sheet.Area > 0 {
			fmt.Printf("Площадь: %.2f м²\n", sheet.Area)
		}
		fmt.Println()

		for _, item := range q.Items {
			fmt.Printf("  %-10s %-30s %8.2f %-4s × %12s = %14s\n",
				estimate.CanonicalCategory(item.Category),
				util.Truncate(item.Name, 30),
				item.Quantity, item.Unit,
				estimate.FormatRubles(item.UnitPrice),
				estimate.FormatRubles(item.Total()))
		}

		fmt.Println()
		fmt.Printf("Материалы: %s\n", estimate.FormatRubles(q.Materials))
		fmt.Printf("Работы:    %s\n", estimate.FormatRubles(q.Works))
		if q.Other != 0 {
			fmt.Printf("Прочее:    %s\n", estimate.FormatRubles(q.Other))
		}
		fmt.Printf("Итого:     %s\n", estimate.FormatRubles(q.GrandTotal))
		if q.Urgency != estimate.UrgencyNormal {
			fmt.Printf("%s: %s\n", q.Urgency.Label(), estimate.FormatRubles(q.Total))
		}

		fmt.Println()
		bold.Println("Предложения подрядчиков")
		cheapest, _ := estimate.Cheapest(q.Bids)
		for _, b := range q.Bids {
			line := fmt.Sprintf("  %-14s ★ %.1f (%d отзывов), опыт %s: %s",
				b.Contractor, b.Rating, b.Reviews, b.Experience, estimate.FormatRubles(b.Price))
			if b.Contractor == cheapest.Contractor {
				color.New(color.FgGreen).Println(line)
			} else {
				fmt.Println(line)
			}
		}
		return nil
	},
}

var estimateExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the estimate to an Excel workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := loadSheet(cmd, args)
		if err != nil {
			return err
		}
		q, err := sheet.Quote()
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if err := estimate.ExportExcel(q, sheet.Title, output); err != nil {
			return fmt.Errorf("error exporting estimate: %w", err)
		}

		size := ""
		if info, err := os.Stat(output); err == nil {
			size = fmt.Sprintf(" (%s)", util.FormatSize(info.Size()))
		}
		color.Green("Смета сохранена в %s%s\n", output, size)
		return nil
	},
}

var estimateInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write the starter estimate to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err == nil {
			return fmt.Errorf("%s already exists", args[0])
		}
		if err := estimate.DefaultSheet().Save(args[0]); err != nil {
			return fmt.Errorf("error writing %s: %w", args[0], err)
		}
		fmt.Printf("Создан файл сметы %s\n", args[0])
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{estimateShowCmd, estimateExportCmd} {
		c.Flags().String("urgency", "", "normal, fast or very-fast")
	}
	estimateExportCmd.Flags().StringP("output", "o", "smeta.xlsx", "Workbook to write")

	estimateCmd.AddCommand(estimateShowCmd)
	estimateCmd.AddCommand(estimateExportCmd)
	estimateCmd.AddCommand(estimateInitCmd)
}

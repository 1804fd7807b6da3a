package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"remont/internal/phone"
)

var phoneCmd = &cobra.Command{
	Use:   "phone",
	Short: "Phone number helpers",
}

var phoneFormatCmd = &cobra.Command{
	Use:   "format [number...]",
	Short: "Format numbers with the +7 mask",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		digits, _ := cmd.Flags().GetBool("digits")
		for _, arg := range args {
			if digits {
				fmt.Println(phone.Normalize(arg))
			} else {
				fmt.Println(phone.Format(arg))
			}
		}
		return nil
	},
}

func init() {
	phoneFormatCmd.Flags().Bool("digits", false, "Print the digits sent to the server instead")
	phoneCmd.AddCommand(phoneFormatCmd)
}

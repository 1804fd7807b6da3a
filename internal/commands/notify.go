package commands

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"remont/internal/api"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send contractor notifications",
	Long:  "Notify contractors about work orders by SMS or Telegram",
}

var notifySendCmd = &cobra.Command{
	Use:   "send [order-id]",
	Short: "Send the work order message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orderID, err := parseID(args[0], "order")
		if err != nil {
			return err
		}
		n := api.OrderNotification{OrderID: orderID}
		n.Channel, _ = cmd.Flags().GetString("channel")
		n.Phone, _ = cmd.Flags().GetString("phone")
		n.TelegramID, _ = cmd.Flags().GetString("telegram")
		n.WorkDescription, _ = cmd.Flags().GetString("description")
		n.Price, _ = cmd.Flags().GetFloat64("price")
		n.Deadline, _ = cmd.Flags().GetString("deadline")

		if preview, _ := cmd.Flags().GetBool("preview"); preview {
			fmt.Println(api.OrderMessage(n.OrderID, n.WorkDescription, n.Price, n.Deadline))
			return nil
		}

		results, err := newClient().SendOrderNotification(cmd.Context(), n)
		if err != nil {
			return fmt.Errorf("error sending notification: %w", err)
		}
		printChannelResults(results)
		return nil
	},
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test message through one channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		channel, _ := cmd.Flags().GetString("channel")
		number, _ := cmd.Flags().GetString("phone")
		telegramID, _ := cmd.Flags().GetString("telegram")

		result, err := newClient().TestNotification(cmd.Context(), channel, number, telegramID)
		if err != nil {
			return fmt.Errorf("test notification failed: %w", err)
		}
		printChannelResults(map[string]api.ChannelResult{channel: *result})
		return nil
	},
}

func printChannelResults(results map[string]api.ChannelResult) {
	channels := make([]string, 0, len(results))
	for ch := range results {
		channels = append(channels, ch)
	}
	sort.Strings(channels)

	for _, ch := range channels {
		r := results[ch]
		if r.Success {
			color.Green("  %s: отправлено %s\n", ch, r.Message)
		} else {
			color.Red("  %s: ошибка %s\n", ch, r.Error)
		}
	}
}

func init() {
	for _, c := range []*cobra.Command{notifySendCmd, notifyTestCmd} {
		c.Flags().String("channel", api.ChannelSMS, "sms, telegram or both")
		c.Flags().String("phone", "", "Contractor phone")
		c.Flags().String("telegram", "", "Contractor telegram id")
	}
	notifySendCmd.Flags().String("description", "", "Work description")
	notifySendCmd.Flags().Float64("price", 0, "Price in rubles")
	notifySendCmd.Flags().String("deadline", "", "Deadline")
	notifySendCmd.Flags().Bool("preview", false, "Print the message instead of sending it")

	notifyCmd.AddCommand(notifySendCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

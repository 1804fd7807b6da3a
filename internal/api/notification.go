package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"remont/internal/estimate"
	"remont/internal/phone"
)

// Notification channels
const (
	ChannelSMS      = "sms"
	ChannelTelegram = "telegram"
	ChannelBoth     = "both"
)

// OrderNotification tells a contractor about a new work order
type OrderNotification struct {
	Channel         string  `json:"type"`
	Phone           string  `json:"phone,omitempty"`
	TelegramID      string  `json:"telegram_id,omitempty"`
	OrderID         int     `json:"order_id"`
	WorkDescription string  `json:"work_description"`
	Price           float64 `json:"price,omitempty"`
	Deadline        string  `json:"deadline,omitempty"`
}

// ChannelResult is the outcome of delivering through one channel
type ChannelResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func validateChannel(channel, number, telegramID string) error {
	switch channel {
	case ChannelSMS:
		if number == "" {
			return fmt.Errorf("sms notifications need a phone number")
		}
	case ChannelTelegram:
		if telegramID == "" {
			return fmt.Errorf("telegram notifications need a telegram id")
		}
	case ChannelBoth:
		if number == "" || telegramID == "" {
			return fmt.Errorf("notifications to both channels need a phone number and a telegram id")
		}
	default:
		return fmt.Errorf("unknown notification channel %q", channel)
	}
	return nil
}

// SendOrderNotification delivers the order message and returns the result per channel
func (c *Client) SendOrderNotification(ctx context.Context, n OrderNotification) (map[string]ChannelResult, error) {
	n.Phone = phone.Normalize(n.Phone)
	if err := validateChannel(n.Channel, n.Phone, n.TelegramID); err != nil {
		return nil, err
	}

	body := struct {
		Action string `json:"action"`
		OrderNotification
	}{Action: "send", OrderNotification: n}

	var response struct {
		Results map[string]ChannelResult `json:"results"`
	}
	err := c.do(ctx, request{
		function: "notifications",
		endpoint: c.Endpoints.Notifications,
		method:   http.MethodPost,
		body:     body,
	}, &response)
	if err != nil {
		return nil, err
	}
	return response.Results, nil
}

// TestNotification sends the test message through a single channel
func (c *Client) TestNotification(ctx context.Context, channel, number, telegramID string) (*ChannelResult, error) {
	number = phone.Normalize(number)
	if channel == ChannelBoth {
		return nil, fmt.Errorf("test notifications go through one channel at a time")
	}
	if err := validateChannel(channel, number, telegramID); err != nil {
		return nil, err
	}

	var response struct {
		Result ChannelResult `json:"result"`
	}
	err := c.do(ctx, request{
		function: "notifications",
		endpoint: c.Endpoints.Notifications,
		method:   http.MethodPost,
		body: map[string]string{
			"action":      "test",
			"type":        channel,
			"phone":       number,
			"telegram_id": telegramID,
		},
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response.Result, nil
}

// OrderMessage renders the text contractors receive for a new work order
func OrderMessage(orderID int, workDescription string, price float64, deadline string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 Новый наряд-заказ #%d\n\n", orderID)
	fmt.Fprintf(&b, "📋 Работы: %s\n\n", workDescription)
	if price != 0 {
		fmt.Fprintf(&b, "💰 Стоимость: %s\n", estimate.FormatRubles(price))
	}
	if deadline != "" {
		fmt.Fprintf(&b, "📅 Срок: %s\n", deadline)
	}
	b.WriteString("\n✅ Подтвердите получение заказа")
	return b.String()
}

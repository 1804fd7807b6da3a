package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"remont/internal/api"
	"remont/internal/estimate"
	"remont/internal/models"
	"remont/internal/phone"
	"remont/internal/ui"
	"remont/internal/voice"
)

var assistantCmd = &cobra.Command{
	Use:     "assistant",
	Aliases: []string{"yasen"},
	Short:   "Talk to the ЯСЕН assistant",
	Long:    "Talk to the ЯСЕН renovation assistant by voice or text, and manage work orders and recordings",
}

// assistantRole is the role of the signed in user, or the --role flag without a session
func assistantRole(cmd *cobra.Command) (context.Context, models.UserRole) {
	ctx := cmd.Context()
	if sctx, session, err := requireSession(ctx); err == nil {
		return sctx, session.User.Role
	}
	role, _ := cmd.Flags().GetString("role")
	return ctx, models.UserRole(role)
}

func sessionOptions(cmd *cobra.Command) ([]voice.SessionOption, error) {
	opts := []voice.SessionOption{
		voice.WithLogger(logger),
		voice.WithTimeout(globalConfig.VoiceTimeout()),
	}
	if mute, _ := cmd.Flags().GetBool("mute"); mute {
		return opts, nil
	}
	speaker, err := voice.NewCommandSpeaker(globalConfig.Voice.SpeakCommand, globalConfig.Voice.Rate)
	if err != nil {
		return nil, err
	}
	return append(opts, voice.WithSpeaker(speaker)), nil
}

var assistantChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Voice conversation in the terminal",
	Long:  "Open the voice assistant screen. Press space to start and stop recording.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, role := assistantRole(cmd)
		recorder, err := voice.NewCommandRecorder(globalConfig.Voice.RecordCommand)
		if err != nil {
			return err
		}
		opts, err := sessionOptions(cmd)
		if err != nil {
			return err
		}

		model := ui.NewAssistantModel(ctx, role, recorder, newClient(), opts...)
		logger.Debug("assistant session started", "conversation_id", model.Session.ID, "role", role)

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running assistant: %w", err)
		}
		return nil
	},
}

var assistantAskCmd = &cobra.Command{
	Use:   "ask [message...]",
	Short: "Ask the assistant in text",
	Long:  "Send a single question, or start a text conversation when no message is given. An empty line ends it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, role := assistantRole(cmd)
		opts := []voice.SessionOption{voice.WithLogger(logger), voice.WithTimeout(globalConfig.VoiceTimeout())}
		if speak, _ := cmd.Flags().GetBool("speak"); speak {
			speaker, err := voice.NewCommandSpeaker(globalConfig.Voice.SpeakCommand, globalConfig.Voice.Rate)
			if err != nil {
				return err
			}
			opts = append(opts, voice.WithSpeaker(speaker))
		}
		session := voice.NewSession(role, nil, newClient(), opts...)

		ask := func(text string) error {
			turn, err := session.Ask(ctx, text)
			if err != nil {
				return err
			}
			color.New(color.FgMagenta, color.Bold).Print("ЯСЕН: ")
			fmt.Println(turn.Assistant.Content)
			return nil
		}

		if len(args) > 0 {
			return ask(strings.Join(args, " "))
		}
		for {
			text := prompt("Вы: ")
			if text == "" || text == "exit" {
				return nil
			}
			if err := ask(text); err != nil {
				color.Red("%v\n", err)
			}
		}
	},
}

var assistantOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List work orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		orders, err := newClient().ListOrders(cmd.Context(), status, limit)
		if err != nil {
			return fmt.Errorf("error listing orders: %w", err)
		}
		if len(orders) == 0 {
			fmt.Println("Заказов нет")
			return nil
		}
		for _, o := range orders {
			printOrder(o)
		}
		return nil
	},
}

var assistantRecordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "List conversation recordings",
	RunE: func(cmd *cobra.Command, args []string) error {
		conversation, _ := cmd.Flags().GetString("conversation")
		limit, _ := cmd.Flags().GetInt("limit")

		recordings, err := newClient().ListRecordings(cmd.Context(), conversation, limit)
		if err != nil {
			return fmt.Errorf("error listing recordings: %w", err)
		}
		if len(recordings) == 0 {
			fmt.Println("Записей нет")
			return nil
		}
		for _, r := range recordings {
			fmt.Printf("%d. %s  %d с  %s\n", r.ID, r.ConversationID, r.Duration, r.CreatedAt)
			fmt.Printf("   %s\n", r.AudioURL)
			if len(r.Participants) > 0 {
				fmt.Printf("   Участники: %s\n", strings.Join(r.Participants, ", "))
			}
		}
		return nil
	},
}

var assistantOrderCmd = &cobra.Command{
	Use:   "order",
	Short: "Create a work order",
	Long:  "Create a work order between a customer and a contractor and optionally notify the contractor",
	RunE: func(cmd *cobra.Command, args []string) error {
		var o models.NewWorkOrder
		o.CustomerPhone, _ = cmd.Flags().GetString("customer")
		o.ContractorPhone, _ = cmd.Flags().GetString("contractor")
		o.WorkDescription, _ = cmd.Flags().GetString("description")
		o.Price, _ = cmd.Flags().GetFloat64("price")
		o.Deadline, _ = cmd.Flags().GetString("deadline")
		o.ConversationID, _ = cmd.Flags().GetString("conversation")

		ctx := cmd.Context()
		if o.CustomerPhone == "" {
			if sctx, session, err := requireSession(ctx); err == nil {
				ctx = sctx
				o.CustomerPhone = session.User.Phone
			}
		}
		o.CustomerPhone = phone.Normalize(o.CustomerPhone)
		o.ContractorPhone = phone.Normalize(o.ContractorPhone)
		if o.ConversationID != "" {
			if _, err := uuid.Parse(o.ConversationID); err != nil {
				return fmt.Errorf("invalid conversation id %q", o.ConversationID)
			}
		}

		client := newClient()
		order, err := client.CreateOrder(ctx, o)
		if err != nil {
			return fmt.Errorf("error creating order: %w", err)
		}
		color.Green("Заказ #%d создан\n", order.ID)
		printOrder(*order)

		channel, _ := cmd.Flags().GetString("notify")
		if channel == "" {
			return nil
		}
		telegramID, _ := cmd.Flags().GetString("telegram")
		results, err := client.SendOrderNotification(ctx, api.OrderNotification{
			Channel:         channel,
			Phone:           order.ContractorPhone,
			TelegramID:      telegramID,
			OrderID:         order.ID,
			WorkDescription: order.WorkDescription,
			Price:           order.Price,
			Deadline:        order.Deadline,
		})
		if err != nil {
			return fmt.Errorf("order created, but the notification failed: %w", err)
		}
		printChannelResults(results)
		return nil
	},
}

var assistantSaveRecordingCmd = &cobra.Command{
	Use:   "save-recording [file]",
	Short: "Upload a conversation recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		audio, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		conversation, _ := cmd.Flags().GetString("conversation")
		if conversation == "" {
			conversation = uuid.NewString()
		} else if _, err := uuid.Parse(conversation); err != nil {
			return fmt.Errorf("invalid conversation id %q", conversation)
		}
		duration, _ := cmd.Flags().GetInt("duration")
		participants, _ := cmd.Flags().GetStringSlice("participant")

		saved, err := newClient().SaveRecording(cmd.Context(), audio, conversation, duration, participants)
		if err != nil {
			if errors.Is(err, api.ErrEmptyAudio) {
				return fmt.Errorf("%s is empty", args[0])
			}
			return fmt.Errorf("error saving recording: %w", err)
		}
		color.Green("Запись %d сохранена: %s\n", saved.ID, saved.AudioURL)
		fmt.Printf("Разговор: %s\n", conversation)
		return nil
	},
}

func printOrder(o models.WorkOrder) {
	fmt.Printf("#%d [%s] %s\n", o.ID, o.Status, o.WorkDescription)
	fmt.Printf("   Заказчик: %s, подрядчик: %s\n", phone.Format(o.CustomerPhone), phone.Format(o.ContractorPhone))
	if o.Price != 0 {
		fmt.Printf("   Стоимость: %s\n", estimate.FormatRubles(o.Price))
	}
	if o.Deadline != "" {
		fmt.Printf("   Срок: %s\n", o.Deadline)
	}
}

func init() {
	for _, c := range []*cobra.Command{assistantChatCmd, assistantAskCmd} {
		c.Flags().String("role", string(models.RoleCustomer), "Role to talk as when not signed in")
	}
	assistantChatCmd.Flags().Bool("mute", false, "Do not speak replies")
	assistantAskCmd.Flags().Bool("speak", false, "Speak replies aloud")

	assistantOrdersCmd.Flags().String("status", "", "pending, in_progress, completed or cancelled")
	assistantOrdersCmd.Flags().Int("limit", 50, "Maximum number of orders")

	assistantRecordingsCmd.Flags().String("conversation", "", "Conversation id")
	assistantRecordingsCmd.Flags().Int("limit", 50, "Maximum number of recordings")

	assistantOrderCmd.Flags().String("customer", "", "Customer phone, defaults to the signed in user")
	assistantOrderCmd.Flags().String("contractor", "", "Contractor phone")
	assistantOrderCmd.Flags().String("description", "", "Work description")
	assistantOrderCmd.Flags().Float64("price", 0, "Agreed price in rubles")
	assistantOrderCmd.Flags().String("deadline", "", "Deadline")
	assistantOrderCmd.Flags().String("conversation", "", "Conversation the order came from")
	assistantOrderCmd.Flags().String("notify", "", "Notify the contractor: sms, telegram or both")
	assistantOrderCmd.Flags().String("telegram", "", "Contractor telegram id")

	assistantSaveRecordingCmd.Flags().String("conversation", "", "Conversation id, a new one when empty")
	assistantSaveRecordingCmd.Flags().Int("duration", 0, "Duration in seconds")
	assistantSaveRecordingCmd.Flags().StringSlice("participant", nil, "Participant phone, repeatable")

	assistantCmd.AddCommand(assistantChatCmd)
	assistantCmd.AddCommand(assistantAskCmd)
	assistantCmd.AddCommand(assistantOrdersCmd)
	assistantCmd.AddCommand(assistantRecordingsCmd)
	assistantCmd.AddCommand(assistantOrderCmd)
	assistantCmd.AddCommand(assistantSaveRecordingCmd)
}

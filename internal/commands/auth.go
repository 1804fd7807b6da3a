package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"remont/internal/models"
	"remont/internal/phone"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in with a phone number",
	Long:  "Request an SMS verification code, verify it and manage the local session",
}

var sendCodeCmd = &cobra.Command{
	Use:   "send-code [phone]",
	Short: "Send a verification code by SMS",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number := ""
		if len(args) == 1 {
			number = args[0]
		} else {
			number = prompt("Телефон: ")
		}
		if err := checkPhone(number); err != nil {
			return err
		}
		role, _ := cmd.Flags().GetString("role")

		delivery, err := newClient().SendCode(cmd.Context(), number, models.UserRole(role))
		if err != nil {
			return fmt.Errorf("error sending code: %w", err)
		}

		fmt.Printf("Код отправлен на %s\n", phone.Format(number))
		if delivery.DevCode != "" {
			color.Yellow("Код для разработки: %s\n", delivery.DevCode)
		}
		fmt.Println("Подтвердите вход: remont auth verify", phone.Digits(number))
		return nil
	},
}

// checkPhone rejects numbers with fewer than eleven digits before anything is sent
func checkPhone(number string) error {
	if !phone.Complete(number) {
		return fmt.Errorf("%w: %q", models.ErrPhoneRequired, phone.Format(number))
	}
	return nil
}

var verifyCmd = &cobra.Command{
	Use:   "verify [phone]",
	Short: "Verify the SMS code and sign in",
	Long:  "Verify the SMS code. New users are registered with the given name and role.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := models.Registration{}
		if len(args) == 1 {
			reg.Phone = args[0]
		} else {
			reg.Phone = prompt("Телефон: ")
		}
		if err := checkPhone(reg.Phone); err != nil {
			return err
		}

		reg.Code, _ = cmd.Flags().GetString("code")
		if reg.Code == "" {
			reg.Code = prompt("Код из SMS: ")
		}
		reg.Name, _ = cmd.Flags().GetString("name")
		reg.Email, _ = cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")
		reg.Role = models.UserRole(role)
		if !reg.Role.Valid() {
			return models.ErrInvalidRole
		}
		reg.Specialization, _ = cmd.Flags().GetString("specialization")
		if cmd.Flags().Changed("experience") {
			years, _ := cmd.Flags().GetInt("experience")
			reg.Experience = &years
		}

		user, err := newClient().VerifyCode(cmd.Context(), reg)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		store, err := sessionStore()
		if err != nil {
			return err
		}
		session, err := store.Save(*user)
		if err != nil {
			return fmt.Errorf("error saving session: %w", err)
		}
		logger.Debug("session saved", "user_id", user.ID, "expires_at", session.ExpiresAt)

		color.Green("Вы вошли как %s (%s)\n", displayName(*user), user.Role.Label())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := sessionStore()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return fmt.Errorf("error removing session: %w", err)
		}
		fmt.Println("Вы вышли из аккаунта")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, session, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		user := session.User
		if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
			fresh, err := newClient().GetUser(ctx, user.Phone)
			if err != nil {
				return fmt.Errorf("error fetching profile: %w", err)
			}
			user = *fresh
		}

		fmt.Printf("Имя: %s\n", displayName(user))
		fmt.Printf("Телефон: %s\n", phone.Format(user.Phone))
		fmt.Printf("Роль: %s\n", user.Role.Label())
		if user.Email != "" {
			fmt.Printf("Email: %s\n", user.Email)
		}
		if user.Specialization != "" {
			fmt.Printf("Специализация: %s\n", user.Specialization)
		}
		if user.Experience != nil {
			fmt.Printf("Опыт: %d лет\n", *user.Experience)
		}
		fmt.Printf("Сессия действует до: %s\n", session.ExpiresAt.Local().Format("02.01.2006 15:04"))
		return nil
	},
}

func displayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return phone.Format(u.Phone)
}

func init() {
	sendCodeCmd.Flags().String("role", string(models.RoleCustomer), "customer or contractor")

	verifyCmd.Flags().String("code", "", "Code from the SMS")
	verifyCmd.Flags().String("name", "", "Name for new accounts")
	verifyCmd.Flags().String("email", "", "Email for new accounts")
	verifyCmd.Flags().String("role", string(models.RoleCustomer), "customer or contractor")
	verifyCmd.Flags().String("specialization", "", "Contractor specialization")
	verifyCmd.Flags().Int("experience", 0, "Contractor experience in years")

	whoamiCmd.Flags().Bool("refresh", false, "Fetch the profile from the server")

	authCmd.AddCommand(sendCodeCmd)
	authCmd.AddCommand(verifyCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
}

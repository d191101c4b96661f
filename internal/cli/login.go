package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/tijara/pkg/platform"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the platform",
		Long:  "Log in and store the bearer token for subsequent commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				var err error
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				var err error
				password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			if err := app.Session.Login(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("login: %w", err)
			}

			user := app.Session.User()
			fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
			fmt.Printf("Dashboard: %s\n", user.Role.DashboardRoute())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var reg platform.Registration
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new platform account",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg.Role = platform.Role(role)
			if err := app.Session.Register(cmd.Context(), reg); err != nil {
				return fmt.Errorf("register: %w", err)
			}

			user := app.Session.User()
			fmt.Printf("Account created for %s (%s)\n", user.Email, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&role, "role", "merchant", "Account role (merchant, supplier, shipping_company)")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&reg.CompanyName, "company", "", "Company name")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.Logout(cmd.Context())
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Initialize(cmd.Context()); err != nil {
				return fmt.Errorf("restore session: %w", err)
			}

			user := app.Session.User()
			if user == nil {
				fmt.Println("Not logged in")
				return nil
			}

			fmt.Printf("User:    %s <%s>\n", user.Name, user.Email)
			fmt.Printf("Role:    %s\n", user.Role)
			if user.CompanyName != "" {
				fmt.Printf("Company: %s\n", user.CompanyName)
			}
			fmt.Printf("Verified: %v\n", user.IsVerified)
			if t, err := time.Parse(time.RFC3339, user.CreatedAt); err == nil {
				fmt.Printf("Joined:  %s\n", humanize.Time(t))
			}
			return nil
		},
	}
}

// promptLine reads one trimmed line from stdin.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

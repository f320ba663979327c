package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chazuruo/promptctl/internal/app"
	"github.com/chazuruo/promptctl/internal/tui"
)

// LoginOptions contains the options for the login command.
type LoginOptions struct {
	Email    string
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	opts := &LoginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist a session",
		Long: `Sign in to the backend with email and password.

The session cookie and the resolved organization are persisted to the state
directory, so subsequent commands run without re-authenticating.

Examples:
  promptctl login                                   # interactive form
  promptctl login --email you@example.com --password secret --no-tui`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password")

	return cmd
}

func runLogin(opts *LoginOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if IsNoTUI() || (opts.Email != "" && opts.Password != "") {
		if opts.Email == "" || opts.Password == "" {
			return fmt.Errorf("--email and --password are required in no-TUI mode")
		}
		st, err := a.Login(context.Background(), opts.Email, opts.Password)
		if err != nil {
			return err
		}
		if st.Organization != nil {
			fmt.Printf("Logged in as %s (%s)\n", st.User.Email, st.Organization.Name)
		} else {
			fmt.Printf("Logged in as %s\n", st.User.Email)
		}
		return nil
	}

	model := tui.NewLoginModel(func(ctx context.Context, email, password string) error {
		_, err := a.Login(ctx, email, password)
		return err
	})
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("failed to run login form: %w", err)
	}
	m := final.(tui.LoginModel)
	if m.Cancelled {
		return nil
	}
	out, err := a.Whoami()
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", out.Email, out.Organization)
	return nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Long: `End the backend session and remove the persisted session state.

The backend logout call is best-effort; local state is always cleared.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.Logout(context.Background()); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
	return cmd
}

// RegisterOptions contains the options for the register command.
type RegisterOptions struct {
	Name     string
	Email    string
	Password string
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand() *cobra.Command {
	opts := &RegisterOptions{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Long: `Create a new account, then sign in with it.

Examples:
  promptctl register --name "Sam Doe" --email sam@example.com --password secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runRegister(opts *RegisterOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	st, err := a.Register(context.Background(), opts.Name, opts.Email, opts.Password)
	if err != nil {
		return err
	}
	fmt.Printf("Registered and logged in as %s\n", st.User.Email)
	return nil
}

// WhoamiOptions contains the options for the whoami command.
type WhoamiOptions struct {
	JSON bool
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand() *cobra.Command {
	opts := &WhoamiOptions{}

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		Long: `Show the signed-in user and organization from the persisted session.

This reads local state only; it does not contact the backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")

	return cmd
}

func runWhoami(opts *WhoamiOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	out, err := a.Whoami()
	if err != nil {
		return err
	}
	if opts.JSON {
		return app.PrintWhoamiJSON(out)
	}
	app.PrintWhoami(out)
	return nil
}

// StatusOptions contains the options for the status command.
type StatusOptions struct {
	JSON bool
}

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	opts := &StatusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check backend reachability and session health",
		Long: `Check that the backend is reachable and the session is still valid.

When signed in, also reports prompt, workflow, and team counts for the
current organization.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")

	return cmd
}

func runStatus(opts *StatusOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	out := a.Status(context.Background())
	if opts.JSON {
		return app.PrintStatusJSON(out)
	}
	app.PrintStatus(out)
	return nil
}

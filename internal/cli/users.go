package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/promptctl/internal/crud"
)

// NewUserCommand creates the user command group.
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
		Long:  `Manage the organization's users and their team assignments.`,
	}

	cmd.AddCommand(newUserListCommand())
	cmd.AddCommand(newUserCreateCommand())
	cmd.AddCommand(newUserDeleteCommand())
	cmd.AddCommand(newUserAssignTeamCommand())
	cmd.AddCommand(newUserRemoveTeamCommand())

	return cmd
}

// UserListOptions contains the options for the user list command.
type UserListOptions struct {
	Format string
}

func newUserListCommand() *cobra.Command {
	opts := &UserListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserList(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, plain)")

	return cmd
}

func runUserList(opts *UserListOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	page, err := a.ListUsers(context.Background())
	if err != nil {
		return err
	}

	switch OutputFormat(opts.Format) {
	case FormatJSON:
		return printJSON(page.Results)
	case FormatTable:
		if len(page.Results) == 0 {
			fmt.Println("No users found.")
			return nil
		}
		tbl := newTable("ID", "NAME", "EMAIL")
		for _, u := range page.Results {
			tbl.AddRow(u.ID, u.Name, u.Email)
		}
		tbl.Print()
	case FormatPlain:
		for _, u := range page.Results {
			fmt.Printf("%s\t%s\t%s\n", u.ID, u.Name, u.Email)
		}
	default:
		return invalidFormat(opts.Format)
	}
	return nil
}

// UserCreateOptions contains the options for the user create command.
type UserCreateOptions struct {
	Name     string
	Email    string
	Password string
	Teams    []string
}

func newUserCreateCommand() *cobra.Command {
	opts := &UserCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Long: `Create a user in the organization.

Without --no-tui an interactive form collects name, email, and the teams to
assign; the selected teams are assigned right after creation.

Examples:
  promptctl user create
  promptctl user create --no-tui --name "Sam Doe" --email sam@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "display name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "initial password (optional)")
	cmd.Flags().StringSliceVar(&opts.Teams, "team", nil, "team id to assign (repeatable)")

	return cmd
}

func runUserCreate(opts *UserCreateOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	teams, err := a.ListTeams(ctx, 1)
	if err != nil {
		return err
	}
	res := crud.UserResource(teams.Results)
	v, err := resourceValues(res, func(v *crud.Values) {
		v.Set("name", opts.Name)
		v.Set("email", opts.Email)
		v.SetList("team_ids", opts.Teams)
	})
	if err != nil {
		return err
	}

	u, err := a.CreateUser(ctx, v.Get("name"), v.Get("email"), opts.Password)
	if err != nil {
		return err
	}
	fmt.Printf("Created user %s (%s)\n", u.Email, u.ID)

	for _, teamID := range v.GetList("team_ids") {
		if err := a.AssignTeam(ctx, u.ID, teamID); err != nil {
			return fmt.Errorf("user created but team assignment failed: %w", err)
		}
	}
	return nil
}

// UserDeleteOptions contains the options for the user delete command.
type UserDeleteOptions struct {
	Yes bool
}

func newUserDeleteCommand() *cobra.Command {
	opts := &UserDeleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Remove a user from the organization",
		Long: `Remove a user from the organization.

The account is deactivated within the organization scope, not erased.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ok, err := confirmDestroy(opts.Yes, "remove this user")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := a.DeleteUser(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

func newUserAssignTeamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign-team <user-id> <team-id>",
		Short: "Assign a user to a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.AssignTeam(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Assigned.")
			return nil
		},
	}
	return cmd
}

func newUserRemoveTeamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-team <user-id> <team-id>",
		Short: "Remove a user from a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.RemoveTeam(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Removed from team.")
			return nil
		},
	}
	return cmd
}

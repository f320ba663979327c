package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/crud"
)

// NewTeamCommand creates the team command group.
func NewTeamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams",
		Long:  `Manage the organization's teams and their members.`,
	}

	cmd.AddCommand(newTeamListCommand())
	cmd.AddCommand(newTeamCreateCommand())
	cmd.AddCommand(newTeamEditCommand())
	cmd.AddCommand(newTeamDeleteCommand())
	cmd.AddCommand(newTeamMembersCommand())
	cmd.AddCommand(newTeamAddMemberCommand())
	cmd.AddCommand(newTeamRemoveMemberCommand())

	return cmd
}

// TeamListOptions contains the options for the team list command.
type TeamListOptions struct {
	Page   int
	Format string
}

func newTeamListCommand() *cobra.Command {
	opts := &TeamListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTeamList(opts)
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, plain)")

	return cmd
}

func runTeamList(opts *TeamListOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	page, err := a.ListTeams(context.Background(), opts.Page)
	if err != nil {
		return err
	}

	switch OutputFormat(opts.Format) {
	case FormatJSON:
		return printJSON(page.Results)
	case FormatTable:
		if len(page.Results) == 0 {
			fmt.Println("No teams found.")
			return nil
		}
		tbl := newTable("ID", "NAME", "DESCRIPTION")
		for _, t := range page.Results {
			tbl.AddRow(t.ID, t.Name, t.Description)
		}
		tbl.Print()
		fmt.Printf("\nPage %d of %d (%d team(s) total)\n", opts.Page, page.TotalPages(a.PageSize()), page.Count)
	case FormatPlain:
		for _, t := range page.Results {
			fmt.Printf("%s\t%s\n", t.ID, t.Name)
		}
	default:
		return invalidFormat(opts.Format)
	}
	return nil
}

// resourceValues collects field values either from an interactive form or
// from flags, depending on the TUI mode.
func resourceValues(res crud.Resource, fromFlags func(v *crud.Values)) (*crud.Values, error) {
	v := crud.NewValues(res)
	if IsNoTUI() {
		fromFlags(v)
	} else {
		if err := crud.BuildForm(res, v).Run(); err != nil {
			return nil, err
		}
	}
	if err := v.Validate(res); err != nil {
		return nil, err
	}
	return v, nil
}

// TeamEditOptions contains the flag-driven fields for team create and edit.
type TeamEditOptions struct {
	Name        string
	Description string
}

func (o *TeamEditOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Name, "name", "", "team name")
	cmd.Flags().StringVar(&o.Description, "description", "", "team description")
}

func newTeamCreateCommand() *cobra.Command {
	opts := &TeamEditOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team",
		Long: `Create a team.

Without --no-tui an interactive form collects the fields.

Examples:
  promptctl team create
  promptctl team create --no-tui --name "Platform"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTeamCreate(opts)
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runTeamCreate(opts *TeamEditOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	v, err := resourceValues(crud.TeamResource(), func(v *crud.Values) {
		v.Set("name", opts.Name)
		v.Set("description", opts.Description)
	})
	if err != nil {
		return err
	}
	t, err := a.CreateTeam(context.Background(), v)
	if err != nil {
		return err
	}
	fmt.Printf("Created team %s (%s)\n", t.Name, t.ID)
	return nil
}

func newTeamEditCommand() *cobra.Command {
	opts := &TeamEditOptions{}

	cmd := &cobra.Command{
		Use:   "edit <team-id>",
		Short: "Update a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTeamEdit(opts, args[0])
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runTeamEdit(opts *TeamEditOptions, id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	v, err := resourceValues(crud.TeamResource(), func(v *crud.Values) {
		v.Set("name", opts.Name)
		v.Set("description", opts.Description)
	})
	if err != nil {
		return err
	}
	t, err := a.UpdateTeam(context.Background(), id, v)
	if err != nil {
		return err
	}
	fmt.Printf("Updated team %s\n", t.Name)
	return nil
}

// TeamDeleteOptions contains the options for the team delete command.
type TeamDeleteOptions struct {
	Yes bool
}

func newTeamDeleteCommand() *cobra.Command {
	opts := &TeamDeleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete <team-id>",
		Short: "Delete a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ok, err := confirmDestroy(opts.Yes, "delete this team")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := a.DeleteTeam(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

// TeamMembersOptions contains the options for the team members command.
type TeamMembersOptions struct {
	Format string
}

func newTeamMembersCommand() *cobra.Command {
	opts := &TeamMembersOptions{}

	cmd := &cobra.Command{
		Use:   "members <team-id>",
		Short: "List a team's members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTeamMembers(opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, plain)")

	return cmd
}

func runTeamMembers(opts *TeamMembersOptions, teamID string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	members, err := a.TeamMembers(context.Background(), teamID)
	if err != nil {
		return err
	}

	switch OutputFormat(opts.Format) {
	case FormatJSON:
		return printJSON(members)
	case FormatTable:
		if len(members) == 0 {
			fmt.Println("No members.")
			return nil
		}
		tbl := newTable("USER ID", "NAME", "EMAIL", "ROLE")
		for _, m := range members {
			tbl.AddRow(m.User, m.UserName, m.UserEmail, m.Role)
		}
		tbl.Print()
	case FormatPlain:
		for _, m := range members {
			fmt.Printf("%s\t%s\t%s\n", m.User, m.UserEmail, m.Role)
		}
	default:
		return invalidFormat(opts.Format)
	}
	return nil
}

// TeamAddMemberOptions contains the options for the team add-member command.
type TeamAddMemberOptions struct {
	Role string
}

func newTeamAddMemberCommand() *cobra.Command {
	opts := &TeamAddMemberOptions{}

	cmd := &cobra.Command{
		Use:   "add-member <team-id> <user-id>",
		Short: "Add a user to a team",
		Long: `Add an organization user to a team.

The backend rejects users that are already in the team or are not part of
the organization.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.AddTeamMember(context.Background(), args[0], args[1], api.Role(opts.Role)); err != nil {
				return err
			}
			fmt.Println("Member added.")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Role, "role", string(api.RoleMember), "member role (OWNER, MEMBER, VIEWER)")

	return cmd
}

func newTeamRemoveMemberCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-member <team-id> <user-id>",
		Short: "Remove a user from a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.RemoveTeamMember(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Member removed.")
			return nil
		},
	}
	return cmd
}

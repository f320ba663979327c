package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/crud"
)

// NewOrgCommand creates the org command group.
func NewOrgCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Manage the current organization",
	}

	cmd.AddCommand(newOrgMembersCommand())
	cmd.AddCommand(newOrgAddMemberCommand())

	return cmd
}

// OrgMembersOptions contains the options for the org members command.
type OrgMembersOptions struct {
	Format string
}

func newOrgMembersCommand() *cobra.Command {
	opts := &OrgMembersOptions{}

	cmd := &cobra.Command{
		Use:   "members",
		Short: "List the organization's members",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrgMembers(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, plain)")

	return cmd
}

func runOrgMembers(opts *OrgMembersOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	members, err := a.OrganizationMembers(context.Background())
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

// OrgAddMemberOptions contains the options for the org add-member command.
type OrgAddMemberOptions struct {
	Email string
	Role  string
}

func newOrgAddMemberCommand() *cobra.Command {
	opts := &OrgAddMemberOptions{}

	cmd := &cobra.Command{
		Use:   "add-member",
		Short: "Add a user to the organization",
		Long: `Add an existing user to the organization by email.

Without --no-tui an interactive form collects the email and role.

Examples:
  promptctl org add-member
  promptctl org add-member --no-tui --email sam@example.com --role MEMBER`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrgAddMember(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "user email")
	cmd.Flags().StringVar(&opts.Role, "role", string(api.RoleMember), "member role (OWNER, MEMBER, VIEWER)")

	return cmd
}

func runOrgAddMember(opts *OrgAddMemberOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	v, err := resourceValues(crud.MemberResource(), func(v *crud.Values) {
		v.Set("email", opts.Email)
		v.Set("role", opts.Role)
	})
	if err != nil {
		return err
	}
	if err := a.AddOrganizationMember(context.Background(), v.Get("email"), api.Role(v.Get("role"))); err != nil {
		return err
	}
	fmt.Println("Member added.")
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazuruo/promptctl/internal/cli"
)

// Version is set at build time using ldflags
var Version = "dev"

// Commit is set at build time using ldflags
var Commit = "unknown"

// Date is set at build time using ldflags
var Date = "unknown"

// BuiltBy is set at build time using ldflags
var BuiltBy = "unknown"

func main() {
	rootCmd := &cobra.Command{
		Use:   "promptctl",
		Short: "Terminal admin console for a prompt-management backend",
		Long: `promptctl is a terminal-first admin console for a prompt-management
backend: prompts, folders, categories, teams, users, and workflows over its
REST API, with interactive browsing and history revert.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(cli.NewLoginCommand())
	rootCmd.AddCommand(cli.NewLogoutCommand())
	rootCmd.AddCommand(cli.NewRegisterCommand())
	rootCmd.AddCommand(cli.NewWhoamiCommand())
	rootCmd.AddCommand(cli.NewStatusCommand())
	rootCmd.AddCommand(cli.NewPromptCommand())
	rootCmd.AddCommand(cli.NewFolderCommand())
	rootCmd.AddCommand(cli.NewWorkflowCommand())
	rootCmd.AddCommand(cli.NewTeamCommand())
	rootCmd.AddCommand(cli.NewUserCommand())
	rootCmd.AddCommand(cli.NewCategoryCommand())
	rootCmd.AddCommand(cli.NewOrgCommand())
	rootCmd.AddCommand(cli.NewVersionCommand(Version, Commit, Date, BuiltBy))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

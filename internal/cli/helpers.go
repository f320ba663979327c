package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rodaine/table"

	"github.com/chazuruo/promptctl/internal/app"
)

// OutputFormat defines the output format for list and view commands.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatPlain OutputFormat = "plain"
)

// newApp loads config (honoring the global --config flag) and builds the
// application context every command runs against.
func newApp() (*app.App, error) {
	return app.FromConfigPath(ConfigPath)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// newTable builds a list table with the shared column padding.
func newTable(headers ...any) table.Table {
	return table.New(headers...).WithPadding(3)
}

// confirmDestroy gates a destructive action. With --yes the check is skipped;
// in no-TUI mode --yes is required, otherwise an interactive confirm runs.
func confirmDestroy(yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	if IsNoTUI() {
		return false, fmt.Errorf("refusing to %s without --yes in no-TUI mode", title)
	}
	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Really %s?", title)).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// invalidFormat is the shared error for an unknown --format value.
func invalidFormat(format string) error {
	return fmt.Errorf("invalid format: %s (must be table, json, or plain)", format)
}

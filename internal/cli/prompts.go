package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/app"
	"github.com/chazuruo/promptctl/internal/histview"
	"github.com/chazuruo/promptctl/internal/placeholders"
	"github.com/chazuruo/promptctl/internal/tui"
)

// NewPromptCommand creates the prompt command group.
func NewPromptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Manage prompts",
		Long:  `Create, inspect, organize, and revert prompts.`,
	}

	cmd.AddCommand(newPromptListCommand())
	cmd.AddCommand(newPromptViewCommand())
	cmd.AddCommand(newPromptCreateCommand())
	cmd.AddCommand(newPromptEditCommand())
	cmd.AddCommand(newPromptMoveCommand())
	cmd.AddCommand(newPromptDeleteCommand())
	cmd.AddCommand(newPromptRenderCommand())
	cmd.AddCommand(newPromptHistoryCommand())
	cmd.AddCommand(newPromptRevertCommand())
	cmd.AddCommand(newPromptExportCommand())
	cmd.AddCommand(newPromptImportCommand())

	return cmd
}

// PromptListOptions contains the options for the prompt list command.
type PromptListOptions struct {
	Search     string
	Visibility string
	Mine       bool
	FolderID   string
	TeamID     string
	Page       int
	Format     string
}

func newPromptListCommand() *cobra.Command {
	opts := &PromptListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prompts with optional filtering",
		Long: `List prompts in the current organization.

Examples:
  promptctl prompt list                       # first page, table format
  promptctl prompt list --search greeting     # server-side search
  promptctl prompt list --visibility TEAM     # only team-shared prompts
  promptctl prompt list --mine --format json  # my prompts as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromptList(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "search prompts (name, description, text, category)")
	cmd.Flags().StringVar(&opts.Visibility, "visibility", "", "filter by visibility (PRIVATE, TEAM, PUBLIC)")
	cmd.Flags().BoolVar(&opts.Mine, "mine", false, "only show prompts I created")
	cmd.Flags().StringVar(&opts.FolderID, "folder", "", "filter by folder id (\"root\" for unfiled)")
	cmd.Flags().StringVar(&opts.TeamID, "team", "", "filter by team id")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, plain)")

	return cmd
}

func runPromptList(opts *PromptListOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	page, err := a.ListPrompts(context.Background(), app.PromptListOptions{
		Search:     opts.Search,
		Visibility: opts.Visibility,
		Mine:       opts.Mine,
		FolderID:   opts.FolderID,
		TeamID:     opts.TeamID,
		Page:       opts.Page,
	})
	if err != nil {
		return err
	}

	switch OutputFormat(opts.Format) {
	case FormatTable:
		printPromptTable(page, opts.Page, a.PageSize())
	case FormatJSON:
		return printJSON(page.Results)
	case FormatPlain:
		printPromptPlain(page.Results)
	default:
		return invalidFormat(opts.Format)
	}
	return nil
}

func printPromptTable(page *api.Page[api.Prompt], current, pageSize int) {
	if len(page.Results) == 0 {
		fmt.Println("No prompts found.")
		return
	}
	tbl := newTable("ID", "NAME", "MODEL", "VISIBILITY", "UPDATED")
	for _, p := range page.Results {
		tbl.AddRow(p.ID, p.Name, p.Model, p.Visibility, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	tbl.Print()
	fmt.Printf("\nPage %d of %d (%d prompt(s) total)\n", current, page.TotalPages(pageSize), page.Count)
}

func printPromptPlain(prompts []api.Prompt) {
	if len(prompts) == 0 {
		fmt.Println("No prompts found.")
		return
	}
	for i, p := range prompts {
		fmt.Printf("%d. %s [%s, %s]\n", i+1, p.Name, p.Model, p.Visibility)
		fmt.Printf("   ID: %s\n", p.ID)
		if p.Description != "" {
			fmt.Printf("   Description: %s\n", p.Description)
		}
		fmt.Println()
	}
	fmt.Printf("Total: %d prompt(s)\n", len(prompts))
}

// PromptViewOptions contains the options for the prompt view command.
type PromptViewOptions struct {
	JSON bool
}

func newPromptViewCommand() *cobra.Command {
	opts := &PromptViewOptions{}

	cmd := &cobra.Command{
		Use:   "view <prompt-id>",
		Short: "Show one prompt in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromptView(opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")

	return cmd
}

func runPromptView(opts *PromptViewOptions, id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	p, err := a.GetPrompt(context.Background(), id)
	if err != nil {
		return err
	}
	if opts.JSON {
		return printJSON(p)
	}

	fmt.Printf("Name: %s\n", p.Name)
	fmt.Printf("ID: %s\n", p.ID)
	fmt.Printf("Model: %s\n", p.Model)
	fmt.Printf("Visibility: %s\n", p.Visibility)
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	if p.Folder != "" {
		fmt.Printf("Folder: %s\n", p.Folder)
	}
	if len(p.Categories) > 0 {
		names := make([]string, 0, len(p.Categories))
		for _, c := range p.Categories {
			names = append(names, c.CategoryName)
		}
		fmt.Printf("Categories: %s\n", strings.Join(names, ", "))
	}
	if len(p.SharedTeams) > 0 {
		names := make([]string, 0, len(p.SharedTeams))
		for _, t := range p.SharedTeams {
			names = append(names, t.TeamName)
		}
		fmt.Printf("Teams: %s\n", strings.Join(names, ", "))
	}
	if vars := placeholders.Vars(p.Prompt); len(vars) > 0 {
		fmt.Printf("Variables: %s\n", strings.Join(vars, ", "))
	}
	fmt.Printf("Updated: %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("\n%s\n", p.Prompt)
	return nil
}

// PromptEditOptions contains the options for the prompt create and edit
// commands; edit only applies the flags that were set.
type PromptEditOptions struct {
	Name        string
	Description string
	Text        string
	TextFile    string
	Model       string
	Visibility  string
	FolderID    string
	Categories  []string
	Teams       []string
}

func (o *PromptEditOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Name, "name", "", "prompt name")
	cmd.Flags().StringVar(&o.Description, "description", "", "prompt description")
	cmd.Flags().StringVar(&o.Text, "text", "", "prompt text")
	cmd.Flags().StringVar(&o.TextFile, "text-file", "", "read prompt text from a file")
	cmd.Flags().StringVar(&o.Model, "model", "", "model name (gpt-3.5-turbo, gpt-4, claude-2, llama-2)")
	cmd.Flags().StringVar(&o.Visibility, "visibility", "", "visibility (PRIVATE, TEAM, PUBLIC)")
	cmd.Flags().StringVar(&o.FolderID, "folder", "", "folder id")
	cmd.Flags().StringSliceVar(&o.Categories, "category", nil, "category id (repeatable)")
	cmd.Flags().StringSliceVar(&o.Teams, "team", nil, "team id to share with (repeatable)")
}

// resolveText returns the prompt text from --text or --text-file.
func (o *PromptEditOptions) resolveText() (string, error) {
	if o.TextFile != "" {
		data, err := os.ReadFile(o.TextFile)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	}
	return o.Text, nil
}

func newPromptCreateCommand() *cobra.Command {
	opts := &PromptEditOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a prompt",
		Long: `Create a prompt in the current organization.

Examples:
  promptctl prompt create --name "Greeting" --text "Say hello to {name}" --model gpt-4
  promptctl prompt create --name "Triage" --text-file triage.txt --visibility TEAM --team <team-id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromptCreate(opts)
		},
	}

	opts.addFlags(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runPromptCreate(opts *PromptEditOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	text, err := opts.resolveText()
	if err != nil {
		return err
	}
	in := api.PromptInput{
		Name:        opts.Name,
		Description: opts.Description,
		Prompt:      text,
		Model:       opts.Model,
		Visibility:  api.Visibility(opts.Visibility),
		CategoryIDs: opts.Categories,
		TeamIDs:     opts.Teams,
	}
	if in.Model == "" {
		in.Model = api.Models[0]
	}
	if in.Visibility == "" {
		in.Visibility = api.VisibilityPrivate
	}
	if opts.FolderID != "" {
		in.Folder = &opts.FolderID
	}
	p, err := a.CreatePrompt(context.Background(), in)
	if err != nil {
		return err
	}
	fmt.Printf("Created prompt %s (%s)\n", p.Name, p.ID)
	return nil
}

func newPromptEditCommand() *cobra.Command {
	opts := &PromptEditOptions{}

	cmd := &cobra.Command{
		Use:   "edit <prompt-id>",
		Short: "Update a prompt",
		Long: `Update a prompt. Only the fields whose flags are set change;
everything else keeps its current value.

Examples:
  promptctl prompt edit <id> --model claude-2
  promptctl prompt edit <id> --visibility TEAM --team <team-id>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromptEdit(cmd, opts, args[0])
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runPromptEdit(cmd *cobra.Command, opts *PromptEditOptions, id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	current, err := a.GetPrompt(ctx, id)
	if err != nil {
		return err
	}

	in := api.PromptInput{
		Name:        current.Name,
		Description: current.Description,
		Prompt:      current.Prompt,
		Model:       current.Model,
		Visibility:  current.Visibility,
		CategoryIDs: current.CategoryIDs(),
		TeamIDs:     current.TeamIDs(),
	}
	if current.Folder != "" {
		folder := current.Folder
		in.Folder = &folder
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = opts.Name
	}
	if flags.Changed("description") {
		in.Description = opts.Description
	}
	if flags.Changed("text") || flags.Changed("text-file") {
		text, err := opts.resolveText()
		if err != nil {
			return err
		}
		in.Prompt = text
	}
	if flags.Changed("model") {
		in.Model = opts.Model
	}
	if flags.Changed("visibility") {
		in.Visibility = api.Visibility(opts.Visibility)
	}
	if flags.Changed("folder") {
		in.Folder = &opts.FolderID
	}
	if flags.Changed("category") {
		in.CategoryIDs = opts.Categories
	}
	if flags.Changed("team") {
		in.TeamIDs = opts.Teams
	}

	p, err := a.UpdatePrompt(ctx, id, in)
	if err != nil {
		return err
	}
	fmt.Printf("Updated prompt %s\n", p.Name)
	return nil
}

// PromptMoveOptions contains the options for the prompt move command.
type PromptMoveOptions struct {
	To     string
	ToRoot bool
}

func newPromptMoveCommand() *cobra.Command {
	opts := &PromptMoveOptions{}

	cmd := &cobra.Command{
		Use:   "move <prompt-id>",
		Short: "Move a prompt to another folder",
		Long: `Move a prompt into a folder, or back to the root.

Examples:
  promptctl prompt move <id> --to <folder-id>
  promptctl prompt move <id> --to-root`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromptMove(opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "", "destination folder id")
	cmd.Flags().BoolVar(&opts.ToRoot, "to-root", false, "move to the root (no folder)")

	return cmd
}

func runPromptMove(opts *PromptMoveOptions, id string) error {
	if opts.To == "" && !opts.ToRoot {
		return fmt.Errorf("either --to or --to-root is required")
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	dest := opts.To
	if opts.ToRoot {
		dest = ""
	}
	if err := a.MovePrompt(context.Background(), id, dest); err != nil {
		return err
	}
	fmt.Println("Moved.")
	return nil
}

// PromptDeleteOptions contains the options for the prompt delete command.
type PromptDeleteOptions struct {
	Yes bool
}

func newPromptDeleteCommand() *cobra.Command {
	opts := &PromptDeleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete <prompt-id>",
		Short: "Delete a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromptDelete(opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

func runPromptDelete(opts *PromptDeleteOptions, id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ok, err := confirmDestroy(opts.Yes, "delete this prompt")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := a.DeletePrompt(context.Background(), id); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

// PromptRenderOptions contains the options for the prompt render command.
type PromptRenderOptions struct {
	Vars []string
}

func newPromptRenderCommand() *cobra.Command {
	opts := &PromptRenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <prompt-id>",
		Short: "Render a prompt's text with variable values",
		Long: `Render a prompt's text, substituting its {variable} tokens.

Every variable in the text needs a value; list them with "prompt view".

Examples:
  promptctl prompt render <id> --var name=Sam --var tone=formal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromptRender(opts, args[0])
		},
	}

	cmd.Flags().StringArrayVar(&opts.Vars, "var", nil, "variable value as key=value (repeatable)")

	return cmd
}

func runPromptRender(opts *PromptRenderOptions, id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	p, err := a.GetPrompt(context.Background(), id)
	if err != nil {
		return err
	}

	values := make(map[string]string, len(opts.Vars))
	for _, raw := range opts.Vars {
		key, value, found := strings.Cut(raw, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid --var %q (want key=value)", raw)
		}
		values[key] = value
	}

	out, err := placeholders.Render(p.Prompt, values)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// PromptHistoryOptions contains the options for the prompt history command.
type PromptHistoryOptions struct {
	Page   int
	Format string
}

func newPromptHistoryCommand() *cobra.Command {
	opts := &PromptHistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history <prompt-id>",
		Short: "Browse a prompt's change history",
		Long: `Browse the change history of a prompt.

Without --no-tui this opens an interactive panel: page through entries,
expand one to inspect its snapshot, and revert to it. With --no-tui the
requested page is printed instead.

Examples:
  promptctl prompt history <id>
  promptctl prompt history <id> --no-tui --page 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromptHistory(opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number (no-TUI mode)")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format in no-TUI mode (table, json, plain)")

	return cmd
}

func runPromptHistory(opts *PromptHistoryOptions, id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	p, err := a.GetPrompt(ctx, id)
	if err != nil {
		return err
	}

	if IsNoTUI() {
		page, err := a.PromptHistory(ctx, id, opts.Page)
		if err != nil {
			return err
		}
		return printHistory(page, opts.Page, a.PageSize(), opts.Format)
	}

	panel := histview.New(func(ctx context.Context, page, pageSize int) (api.Page[api.HistoryEntry], error) {
		result, err := a.PromptHistory(ctx, id, page)
		if err != nil {
			return api.Page[api.HistoryEntry]{}, err
		}
		return *result, nil
	}, a.PageSize())

	model := tui.NewHistoryPanelModel(panel, p.Name,
		func(ctx context.Context, entry api.HistoryEntry) error {
			_, err := a.RevertPrompt(ctx, id, entry.ID)
			return err
		})
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("failed to run history panel: %w", err)
	}
	m := final.(tui.HistoryPanelModel)
	if m.Reverted != nil {
		fmt.Printf("Reverted to the version from %s\n", m.Reverted.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// printHistory prints one page of history entries without the TUI.
func printHistory(page *api.Page[api.HistoryEntry], current, pageSize int, format string) error {
	switch OutputFormat(format) {
	case FormatJSON:
		return printJSON(page.Results)
	case FormatTable, FormatPlain:
	default:
		return invalidFormat(format)
	}
	if len(page.Results) == 0 {
		fmt.Println("No history.")
		return nil
	}
	tbl := newTable("ID", "WHEN", "BY", "SUMMARY")
	for _, e := range page.Results {
		tbl.AddRow(e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.ChangedByName, e.ChangeSummary)
	}
	tbl.Print()
	fmt.Printf("\nPage %d of %d (%d entries total)\n", current, page.TotalPages(pageSize), page.Count)
	return nil
}

func newPromptRevertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revert <prompt-id> <history-id>",
		Short: "Revert a prompt to a history entry",
		Long: `Revert a prompt to the state captured by a history entry.

The revert itself is recorded as a new history entry; nothing is deleted.
Find history ids with "promptctl prompt history <id> --no-tui".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			p, err := a.RevertPrompt(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Reverted prompt %s\n", p.Name)
			return nil
		},
	}
	return cmd
}

// ExportOptions contains the options for the prompt and workflow export
// commands.
type ExportOptions struct {
	Dir string
}

func newPromptExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <prompt-id>",
		Short: "Export a prompt to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if opts.Dir != "" {
				a.Config.Export.Dir = opts.Dir
			}
			path, err := a.ExportPrompt(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "output directory (default from config)")

	return cmd
}

func newPromptImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a prompt from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			p, err := a.ImportPrompt(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported prompt %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	return cmd
}

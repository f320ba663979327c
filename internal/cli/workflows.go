package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/app"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
	"github.com/chazuruo/promptctl/internal/histview"
	"github.com/chazuruo/promptctl/internal/tui"
)

// NewWorkflowCommand creates the workflow command group.
func NewWorkflowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Manage workflows",
		Long:  `Create, edit, and revert workflows: ordered sequences of prompts.`,
	}

	cmd.AddCommand(newWorkflowListCommand())
	cmd.AddCommand(newWorkflowViewCommand())
	cmd.AddCommand(newWorkflowCreateCommand())
	cmd.AddCommand(newWorkflowEditCommand())
	cmd.AddCommand(newWorkflowDeleteCommand())
	cmd.AddCommand(newWorkflowHistoryCommand())
	cmd.AddCommand(newWorkflowRevertCommand())
	cmd.AddCommand(newWorkflowExportCommand())
	cmd.AddCommand(newWorkflowImportCommand())

	return cmd
}

// WorkflowListOptions contains the options for the workflow list command.
type WorkflowListOptions struct {
	Search string
	Page   int
	Format string
}

func newWorkflowListCommand() *cobra.Command {
	opts := &WorkflowListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflows",
		Long: `List workflows in the current organization.

Examples:
  promptctl workflow list
  promptctl workflow list --search onboarding --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflowList(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "search workflows by name")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, plain)")

	return cmd
}

func runWorkflowList(opts *WorkflowListOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	page, err := a.ListWorkflows(context.Background(), opts.Search, opts.Page)
	if err != nil {
		return err
	}

	switch OutputFormat(opts.Format) {
	case FormatJSON:
		return printJSON(page.Results)
	case FormatTable:
		if len(page.Results) == 0 {
			fmt.Println("No workflows found.")
			return nil
		}
		tbl := newTable("ID", "NAME", "VISIBILITY", "STEPS", "UPDATED")
		for _, w := range page.Results {
			tbl.AddRow(w.ID, w.Name, w.Visibility, len(w.Steps), w.UpdatedAt.Format("2006-01-02 15:04"))
		}
		tbl.Print()
		fmt.Printf("\nPage %d of %d (%d workflow(s) total)\n", opts.Page, page.TotalPages(a.PageSize()), page.Count)
	case FormatPlain:
		for i, w := range page.Results {
			fmt.Printf("%d. %s [%s, %d step(s)]\n", i+1, w.Name, w.Visibility, len(w.Steps))
			fmt.Printf("   ID: %s\n\n", w.ID)
		}
		fmt.Printf("Total: %d workflow(s)\n", len(page.Results))
	default:
		return invalidFormat(opts.Format)
	}
	return nil
}

// WorkflowViewOptions contains the options for the workflow view command.
type WorkflowViewOptions struct {
	JSON bool
}

func newWorkflowViewCommand() *cobra.Command {
	opts := &WorkflowViewOptions{}

	cmd := &cobra.Command{
		Use:   "view <workflow-id>",
		Short: "Show one workflow with its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflowView(opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")

	return cmd
}

func runWorkflowView(opts *WorkflowViewOptions, id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	w, err := a.GetWorkflow(context.Background(), id)
	if err != nil {
		return err
	}
	if opts.JSON {
		return printJSON(w)
	}

	fmt.Printf("Name: %s\n", w.Name)
	fmt.Printf("ID: %s\n", w.ID)
	fmt.Printf("Visibility: %s\n", w.Visibility)
	if w.Description != "" {
		fmt.Printf("Description: %s\n", w.Description)
	}
	if len(w.TeamIDs) > 0 {
		fmt.Printf("Teams: %s\n", strings.Join(w.TeamIDs, ", "))
	}
	fmt.Printf("Updated: %s\n", w.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Println("\nSteps:")
	if len(w.Steps) == 0 {
		fmt.Println("  (none)")
	}
	for _, s := range w.Steps {
		label := s.Name
		if label == "" {
			label = s.PromptName
		}
		if label == "" {
			label = s.Prompt
		}
		fmt.Printf("  %d. %s\n", s.Order+1, label)
	}
	return nil
}

// WorkflowWriteOptions contains the flag-driven options for workflow create
// and edit in no-TUI mode.
type WorkflowWriteOptions struct {
	Name        string
	Description string
	Visibility  string
	Teams       []string
	Steps       []string
}

func (o *WorkflowWriteOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Name, "name", "", "workflow name")
	cmd.Flags().StringVar(&o.Description, "description", "", "workflow description")
	cmd.Flags().StringVar(&o.Visibility, "visibility", "", "visibility (PRIVATE, TEAM, PUBLIC)")
	cmd.Flags().StringSliceVar(&o.Teams, "team", nil, "team id to share with (repeatable)")
	cmd.Flags().StringSliceVar(&o.Steps, "step", nil, "step as <prompt-id> or <prompt-id>:<label>, in order (repeatable)")
}

// stepInputs parses repeated --step flags into ordered step payloads.
func (o *WorkflowWriteOptions) stepInputs() ([]api.StepInput, error) {
	steps := make([]api.StepInput, 0, len(o.Steps))
	for i, raw := range o.Steps {
		id, label, _ := strings.Cut(raw, ":")
		if !api.ValidID(id) {
			return nil, apperrors.Invalid("step", fmt.Sprintf("step %d: %q is not a prompt id", i+1, id))
		}
		steps = append(steps, api.StepInput{Prompt: id, Order: i, Name: label})
	}
	return steps, nil
}

func newWorkflowCreateCommand() *cobra.Command {
	opts := &WorkflowWriteOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workflow",
		Long: `Create a workflow.

Without --no-tui this opens the interactive editor: fill in the name and
description, add steps through the prompt picker (server-side search,
already-used prompts are excluded), reorder, and save with Ctrl+S. With
--no-tui the workflow is assembled from flags.

Examples:
  promptctl workflow create
  promptctl workflow create --no-tui --name "Onboarding" --step <prompt-id> --step <prompt-id>:"Follow up"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflowCreate(opts)
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runWorkflowCreate(opts *WorkflowWriteOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if IsNoTUI() {
		steps, err := opts.stepInputs()
		if err != nil {
			return err
		}
		vis := api.Visibility(opts.Visibility)
		if vis == "" {
			vis = api.VisibilityPrivate
		}
		w, err := a.CreateWorkflow(ctx, api.WorkflowInput{
			Name:        opts.Name,
			Description: opts.Description,
			Visibility:  vis,
			TeamIDs:     opts.Teams,
			Steps:       steps,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created workflow %s (%s)\n", w.Name, w.ID)
		return nil
	}

	return runWorkflowEditor(a, &api.Workflow{}, nil, func(ctx context.Context, in api.WorkflowInput) error {
		_, err := a.CreateWorkflow(ctx, in)
		return err
	})
}

func newWorkflowEditCommand() *cobra.Command {
	opts := &WorkflowWriteOptions{}

	cmd := &cobra.Command{
		Use:   "edit <workflow-id>",
		Short: "Edit a workflow",
		Long: `Edit a workflow.

Without --no-tui this opens the interactive editor seeded with the current
state. With --no-tui only the fields whose flags are set change; passing
--step replaces the whole step list.

Examples:
  promptctl workflow edit <id>
  promptctl workflow edit <id> --no-tui --name "New name"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflowEdit(cmd, opts, args[0])
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runWorkflowEdit(cmd *cobra.Command, opts *WorkflowWriteOptions, id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	w, err := a.GetWorkflow(ctx, id)
	if err != nil {
		return err
	}

	if IsNoTUI() {
		in := api.WorkflowInput{
			Organization: w.Organization,
			Name:         w.Name,
			Description:  w.Description,
			Visibility:   w.Visibility,
			TeamIDs:      w.TeamIDs,
		}
		for _, s := range w.Steps {
			in.Steps = append(in.Steps, api.StepInput{Prompt: s.Prompt, Order: s.Order, Name: s.Name})
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			in.Name = opts.Name
		}
		if flags.Changed("description") {
			in.Description = opts.Description
		}
		if flags.Changed("visibility") {
			in.Visibility = api.Visibility(opts.Visibility)
		}
		if flags.Changed("team") {
			in.TeamIDs = opts.Teams
		}
		if flags.Changed("step") {
			steps, err := opts.stepInputs()
			if err != nil {
				return err
			}
			in.Steps = steps
		}

		updated, err := a.UpdateWorkflow(ctx, id, in)
		if err != nil {
			return err
		}
		fmt.Printf("Updated workflow %s\n", updated.Name)
		return nil
	}

	return runWorkflowEditor(a, w, nil, func(ctx context.Context, in api.WorkflowInput) error {
		_, err := a.UpdateWorkflow(ctx, id, in)
		return err
	})
}

// runWorkflowEditor opens the interactive editor. snap, when non-nil, is a
// history snapshot staged into the form before the editor runs; nothing is
// persisted until the user saves.
func runWorkflowEditor(a *app.App, w *api.Workflow, snap *api.Snapshot, save tui.WorkflowSaveFunc) error {
	model := tui.NewWorkflowEditorModel(w, save)
	model.PickerSearch = a.SearchPrompts
	model.PickerDebounce = a.Debounce()

	if snap != nil {
		prompts, err := a.SearchPrompts(context.Background(), "")
		if err != nil {
			return err
		}
		model.ApplySnapshot(*snap, prompts)
	}

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("failed to run workflow editor: %w", err)
	}
	m := final.(tui.WorkflowEditorModel)
	if m.Done {
		fmt.Println("Saved.")
	}
	return nil
}

// WorkflowDeleteOptions contains the options for the workflow delete command.
type WorkflowDeleteOptions struct {
	Yes bool
}

func newWorkflowDeleteCommand() *cobra.Command {
	opts := &WorkflowDeleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete <workflow-id>",
		Short: "Delete a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ok, err := confirmDestroy(opts.Yes, "delete this workflow")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := a.DeleteWorkflow(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

// WorkflowHistoryOptions contains the options for the workflow history
// command.
type WorkflowHistoryOptions struct {
	Page   int
	Format string
}

func newWorkflowHistoryCommand() *cobra.Command {
	opts := &WorkflowHistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history <workflow-id>",
		Short: "Browse a workflow's change history",
		Long: `Browse the change history of a workflow.

Without --no-tui this opens the interactive panel. Reverting from the panel
stages the selected snapshot into the workflow editor; nothing is written
until the staged state is saved there. With --no-tui the requested page is
printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflowHistory(opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number (no-TUI mode)")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format in no-TUI mode (table, json, plain)")

	return cmd
}

func runWorkflowHistory(opts *WorkflowHistoryOptions, id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	w, err := a.GetWorkflow(ctx, id)
	if err != nil {
		return err
	}

	if IsNoTUI() {
		page, err := a.WorkflowHistory(ctx, id, opts.Page)
		if err != nil {
			return err
		}
		return printHistory(page, opts.Page, a.PageSize(), opts.Format)
	}

	panel := histview.New(func(ctx context.Context, page, pageSize int) (api.Page[api.HistoryEntry], error) {
		result, err := a.WorkflowHistory(ctx, id, page)
		if err != nil {
			return api.Page[api.HistoryEntry]{}, err
		}
		return *result, nil
	}, a.PageSize())

	// Selecting revert here only records the choice; the snapshot is staged
	// into the editor afterwards and persisted by an explicit save.
	model := tui.NewHistoryPanelModel(panel, w.Name,
		func(ctx context.Context, entry api.HistoryEntry) error { return nil })
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("failed to run history panel: %w", err)
	}
	m := final.(tui.HistoryPanelModel)
	if m.Reverted == nil {
		return nil
	}

	snap := m.Reverted.Snapshot
	return runWorkflowEditor(a, w, &snap, func(ctx context.Context, in api.WorkflowInput) error {
		_, err := a.UpdateWorkflow(ctx, id, in)
		return err
	})
}

// WorkflowRevertOptions contains the options for the workflow revert command.
type WorkflowRevertOptions struct {
	Save bool
}

func newWorkflowRevertCommand() *cobra.Command {
	opts := &WorkflowRevertOptions{}

	cmd := &cobra.Command{
		Use:   "revert <workflow-id> <history-id>",
		Short: "Stage a workflow revert",
		Long: `Stage a revert of a workflow to a history snapshot.

Unlike prompt revert, workflow revert is assembled client-side: snapshot
fields are merged over the current state and step prompt names re-resolved.
Without --save the staged result is printed and nothing is written; with
--save it is persisted as a normal update.

Examples:
  promptctl workflow revert <id> <history-id>          # dry run
  promptctl workflow revert <id> <history-id> --save`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflowRevert(opts, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&opts.Save, "save", false, "persist the staged revert")

	return cmd
}

func runWorkflowRevert(opts *WorkflowRevertOptions, id, historyID string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	w, err := a.GetWorkflow(ctx, id)
	if err != nil {
		return err
	}
	entry, err := findHistoryEntry(ctx, a, id, historyID)
	if err != nil {
		return err
	}
	in, err := a.StageWorkflowRevert(ctx, w, entry.Snapshot)
	if err != nil {
		return err
	}

	if !opts.Save {
		fmt.Println("Staged revert (not saved; pass --save to persist):")
		return printJSON(in)
	}
	updated, err := a.UpdateWorkflow(ctx, id, in)
	if err != nil {
		return err
	}
	fmt.Printf("Reverted workflow %s\n", updated.Name)
	return nil
}

// findHistoryEntry pages through a workflow's history for one entry id.
func findHistoryEntry(ctx context.Context, a *app.App, workflowID, historyID string) (*api.HistoryEntry, error) {
	for page := 1; ; page++ {
		result, err := a.WorkflowHistory(ctx, workflowID, page)
		if err != nil {
			return nil, err
		}
		for _, e := range result.Results {
			if e.ID == historyID {
				return &e, nil
			}
		}
		if page >= result.TotalPages(a.PageSize()) {
			return nil, apperrors.Invalid("history_id", fmt.Sprintf("entry %s not found", historyID))
		}
	}
}

func newWorkflowExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <workflow-id>",
		Short: "Export a workflow to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if opts.Dir != "" {
				a.Config.Export.Dir = opts.Dir
			}
			path, err := a.ExportWorkflow(context.Background(), args[0])
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

func newWorkflowImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a workflow from a YAML file",
		Long: `Import a workflow from an exported YAML file.

Step prompts are referenced by name in the export; each name must resolve to
exactly one prompt in the current organization or the import fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			w, err := a.ImportWorkflow(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported workflow %s (%s)\n", w.Name, w.ID)
			return nil
		},
	}
	return cmd
}

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/browse"
	"github.com/chazuruo/promptctl/internal/tui"
)

// NewFolderCommand creates the folder command group.
func NewFolderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage folders",
		Long: `Browse and manage the organization's folder trees.

Each organization has two independent trees: PRIVATE and PUBLIC. A folder's
type is fixed at creation; moves stay within one tree.`,
	}

	cmd.AddCommand(newFolderBrowseCommand())
	cmd.AddCommand(newFolderListCommand())
	cmd.AddCommand(newFolderCreateCommand())
	cmd.AddCommand(newFolderRenameCommand())
	cmd.AddCommand(newFolderMoveCommand())
	cmd.AddCommand(newFolderDeleteCommand())

	return cmd
}

// folderType parses the --type flag.
func folderType(s string) (api.FolderType, error) {
	switch api.FolderType(s) {
	case api.FolderPrivate, api.FolderPublic:
		return api.FolderType(s), nil
	}
	return "", fmt.Errorf("invalid folder type: %s (must be PRIVATE or PUBLIC)", s)
}

// FolderBrowseOptions contains the options for the folder browse command.
type FolderBrowseOptions struct {
	Type string
}

func newFolderBrowseCommand() *cobra.Command {
	opts := &FolderBrowseOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a folder tree interactively",
		Long: `Open the interactive folder browser.

Navigate with the arrow keys or hjkl, enter a folder with Enter, go up with
Backspace, jump to the root with ~. Press m on a folder or prompt to pick it
up, navigate to the destination, and press Enter to drop it there. Moves
into a folder's own subtree are rejected before any request is made.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolderBrowse(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", string(api.FolderPrivate), "folder tree (PRIVATE, PUBLIC)")

	return cmd
}

func runFolderBrowse(opts *FolderBrowseOptions) error {
	if IsNoTUI() {
		return fmt.Errorf("browse is interactive; use \"promptctl folder list\" with --no-tui")
	}
	typ, err := folderType(opts.Type)
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}

	list := func(ctx context.Context, folderID string, page int) ([]api.Folder, []api.Prompt, int, error) {
		listing, err := a.ListFolderContents(ctx, typ, folderID, page)
		if err != nil {
			return nil, nil, 0, err
		}
		return listing.Folders, listing.Prompts, listing.TotalPages, nil
	}
	move := func(ctx context.Context, item browse.Item, destID string) error {
		if item.Kind == browse.KindFolder {
			return a.MoveFolder(ctx, typ, item.ID(), destID)
		}
		return a.MovePrompt(ctx, item.ID(), destID)
	}

	model := tui.NewFolderBrowserModel(list, move)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("failed to run folder browser: %w", err)
	}
	return nil
}

// FolderListOptions contains the options for the folder list command.
type FolderListOptions struct {
	Type   string
	Parent string
	Page   int
	Format string
}

func newFolderListCommand() *cobra.Command {
	opts := &FolderListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the contents of one folder",
		Long: `List the child folders and prompts of one folder.

Without --parent the root of the tree is listed.

Examples:
  promptctl folder list                       # root of the PRIVATE tree
  promptctl folder list --type PUBLIC         # root of the PUBLIC tree
  promptctl folder list --parent <folder-id>  # children of one folder`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolderList(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", string(api.FolderPrivate), "folder tree (PRIVATE, PUBLIC)")
	cmd.Flags().StringVar(&opts.Parent, "parent", "", "parent folder id (empty for the root)")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "prompt page number")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, plain)")

	return cmd
}

func runFolderList(opts *FolderListOptions) error {
	typ, err := folderType(opts.Type)
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	listing, err := a.ListFolderContents(context.Background(), typ, opts.Parent, opts.Page)
	if err != nil {
		return err
	}

	items := browse.Merge(listing.Folders, listing.Prompts)

	switch OutputFormat(opts.Format) {
	case FormatJSON:
		return printJSON(map[string]any{
			"folders": listing.Folders,
			"prompts": listing.Prompts,
		})
	case FormatTable:
		if len(items) == 0 {
			fmt.Println("Empty folder.")
			return nil
		}
		tbl := newTable("KIND", "ID", "NAME")
		for _, it := range items {
			tbl.AddRow(it.Kind, it.ID(), it.Name())
		}
		tbl.Print()
	case FormatPlain:
		for _, it := range items {
			fmt.Printf("%s\t%s\t%s\n", it.Kind, it.ID(), it.Name())
		}
	default:
		return invalidFormat(opts.Format)
	}
	return nil
}

// FolderCreateOptions contains the options for the folder create command.
type FolderCreateOptions struct {
	Type   string
	Parent string
}

func newFolderCreateCommand() *cobra.Command {
	opts := &FolderCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a folder",
		Long: `Create a folder, at the root or under a parent.

Examples:
  promptctl folder create "Onboarding"
  promptctl folder create "Drafts" --parent <folder-id>
  promptctl folder create "Shared" --type PUBLIC`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolderCreate(opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", string(api.FolderPrivate), "folder tree (PRIVATE, PUBLIC)")
	cmd.Flags().StringVar(&opts.Parent, "parent", "", "parent folder id (empty for the root)")

	return cmd
}

func runFolderCreate(opts *FolderCreateOptions, name string) error {
	typ, err := folderType(opts.Type)
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	f, err := a.CreateFolder(context.Background(), name, typ, opts.Parent)
	if err != nil {
		return err
	}
	fmt.Printf("Created folder %s (%s)\n", f.Name, f.ID)
	return nil
}

func newFolderRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <folder-id> <new-name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			f, err := a.RenameFolder(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Renamed folder to %s\n", f.Name)
			return nil
		},
	}
	return cmd
}

// FolderMoveOptions contains the options for the folder move command.
type FolderMoveOptions struct {
	Type   string
	To     string
	ToRoot bool
}

func newFolderMoveCommand() *cobra.Command {
	opts := &FolderMoveOptions{}

	cmd := &cobra.Command{
		Use:   "move <folder-id>",
		Short: "Move a folder under another folder",
		Long: `Re-parent a folder within its tree.

Moving a folder into itself or into one of its own descendants is rejected
before any request is made.

Examples:
  promptctl folder move <id> --to <folder-id>
  promptctl folder move <id> --to-root`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolderMove(opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", string(api.FolderPrivate), "folder tree (PRIVATE, PUBLIC)")
	cmd.Flags().StringVar(&opts.To, "to", "", "destination folder id")
	cmd.Flags().BoolVar(&opts.ToRoot, "to-root", false, "move to the root of the tree")

	return cmd
}

func runFolderMove(opts *FolderMoveOptions, id string) error {
	if opts.To == "" && !opts.ToRoot {
		return fmt.Errorf("either --to or --to-root is required")
	}
	typ, err := folderType(opts.Type)
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	dest := opts.To
	if opts.ToRoot {
		dest = ""
	}
	if err := a.MoveFolder(context.Background(), typ, id, dest); err != nil {
		return err
	}
	fmt.Println("Moved.")
	return nil
}

// FolderDeleteOptions contains the options for the folder delete command.
type FolderDeleteOptions struct {
	Yes bool
}

func newFolderDeleteCommand() *cobra.Command {
	opts := &FolderDeleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete <folder-id>",
		Short: "Delete a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ok, err := confirmDestroy(opts.Yes, "delete this folder")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := a.DeleteFolder(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

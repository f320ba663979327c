package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/promptctl/internal/crud"
)

// NewCategoryCommand creates the category command group.
func NewCategoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
		Long:  `Manage the flat category labels attached to prompts.`,
	}

	cmd.AddCommand(newCategoryListCommand())
	cmd.AddCommand(newCategoryCreateCommand())
	cmd.AddCommand(newCategoryEditCommand())
	cmd.AddCommand(newCategoryDeleteCommand())

	return cmd
}

// CategoryListOptions contains the options for the category list command.
type CategoryListOptions struct {
	Format string
}

func newCategoryListCommand() *cobra.Command {
	opts := &CategoryListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoryList(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, plain)")

	return cmd
}

func runCategoryList(opts *CategoryListOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	categories, err := a.ListCategories(context.Background())
	if err != nil {
		return err
	}

	switch OutputFormat(opts.Format) {
	case FormatJSON:
		return printJSON(categories)
	case FormatTable:
		if len(categories) == 0 {
			fmt.Println("No categories found.")
			return nil
		}
		tbl := newTable("ID", "NAME", "DESCRIPTION")
		for _, c := range categories {
			tbl.AddRow(c.ID, c.Name, c.Description)
		}
		tbl.Print()
	case FormatPlain:
		for _, c := range categories {
			fmt.Printf("%s\t%s\n", c.ID, c.Name)
		}
	default:
		return invalidFormat(opts.Format)
	}
	return nil
}

// CategoryEditOptions contains the flag-driven fields for category create
// and edit.
type CategoryEditOptions struct {
	Name        string
	Description string
}

func (o *CategoryEditOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Name, "name", "", "category name")
	cmd.Flags().StringVar(&o.Description, "description", "", "category description")
}

func newCategoryCreateCommand() *cobra.Command {
	opts := &CategoryEditOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoryCreate(opts)
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runCategoryCreate(opts *CategoryEditOptions) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	v, err := resourceValues(crud.CategoryResource(), func(v *crud.Values) {
		v.Set("name", opts.Name)
		v.Set("description", opts.Description)
	})
	if err != nil {
		return err
	}
	c, err := a.CreateCategory(context.Background(), v)
	if err != nil {
		return err
	}
	fmt.Printf("Created category %s (%s)\n", c.Name, c.ID)
	return nil
}

func newCategoryEditCommand() *cobra.Command {
	opts := &CategoryEditOptions{}

	cmd := &cobra.Command{
		Use:   "edit <category-id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoryEdit(opts, args[0])
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runCategoryEdit(opts *CategoryEditOptions, id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	v, err := resourceValues(crud.CategoryResource(), func(v *crud.Values) {
		v.Set("name", opts.Name)
		v.Set("description", opts.Description)
	})
	if err != nil {
		return err
	}
	c, err := a.UpdateCategory(context.Background(), id, v)
	if err != nil {
		return err
	}
	fmt.Printf("Updated category %s\n", c.Name)
	return nil
}

// CategoryDeleteOptions contains the options for the category delete command.
type CategoryDeleteOptions struct {
	Yes bool
}

func newCategoryDeleteCommand() *cobra.Command {
	opts := &CategoryDeleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ok, err := confirmDestroy(opts.Yes, "delete this category")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := a.DeleteCategory(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

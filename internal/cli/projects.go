package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/morphofolio/backend/internal/catalog"
	"github.com/morphofolio/backend/internal/gallery"
)

func newProjectsCommand(opts *options) *cobra.Command {
	var (
		categories   []string
		technologies []string
		facetsOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List catalog projects",
		Long: `List catalog projects, optionally filtered.

Categories are ORed, technologies are ORed, and the two groups are ANDed.

Examples:
  folioctl projects
  folioctl projects --category "Mobile App" --technology Flutter
  folioctl projects --facets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if facetsOnly {
				printFacets(out, gallery.DeriveFacets(cat.Projects()))
				return nil
			}
			printGallery(out, gallery.Compose(cat.Projects(), gallery.NewSelection(categories, technologies)))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&categories, "category", "c", nil, "Filter by category (repeatable, \"All\" clears)")
	cmd.Flags().StringArrayVarP(&technologies, "technology", "t", nil, "Filter by technology (repeatable)")
	cmd.Flags().BoolVar(&facetsOnly, "facets", false, "Print the available categories and technologies")
	return cmd
}

func loadCatalog(opts *options) (*catalog.Catalog, error) {
	if opts.cfg.Catalog.Path == "" {
		return catalog.Default()
	}
	return catalog.Load(opts.cfg.Catalog.Path)
}

func printGallery(w io.Writer, v gallery.View) {
	bold := color.New(color.Bold)
	if len(v.Projects) == 0 {
		_, _ = fmt.Fprintln(w, "No projects match the selected filters.")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("TITLE"), bold.Sprint("CATEGORY"), bold.Sprint("TECHNOLOGIES"))
	for _, p := range v.Projects {
		tbl.AddRow(p.ID, p.Title, p.Category, strings.Join(p.Technologies, ", "))
	}
	_, _ = fmt.Fprintln(w, tbl)

	summary := fmt.Sprintf("%d of %d projects", v.Visible, v.Total)
	if v.FiltersActive {
		summary += " (filtered)"
	}
	_, _ = fmt.Fprintln(w, color.New(color.Faint).Sprint(summary))
}

func printFacets(w io.Writer, f gallery.Facets) {
	bold := color.New(color.Bold, color.Underline)
	_, _ = fmt.Fprintln(w, bold.Sprint("Categories"))
	for _, c := range f.Categories {
		_, _ = fmt.Fprintln(w, "  "+c)
	}
	_, _ = fmt.Fprintln(w, bold.Sprint("Technologies"))
	for _, t := range f.Technologies {
		_, _ = fmt.Fprintln(w, "  "+t)
	}
}

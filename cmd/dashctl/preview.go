package main

import (
	"fmt"
	"strings"

	"dashboard/domain"

	"github.com/charmbracelet/glamour/v2"
	"github.com/spf13/cobra"
)

// previewMarkdown lays the dashboard out as a markdown document: the header
// title as a heading, the navbar as a link list and the footer as contact
// lines.
func previewMarkdown(cfg domain.Configuration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cfg.Header.Title)
	if cfg.Header.ImageURL != "" {
		fmt.Fprintf(&b, "![logo](%s)\n\n", cfg.Header.ImageURL)
	}
	for _, l := range cfg.Navbar.Links {
		fmt.Fprintf(&b, "- [%s](%s)\n", l.Label, l.URL)
	}
	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, "**Email:** %s  \n**Phone:** %s\n\n", cfg.Footer.Email, cfg.Footer.Phone)
	for _, line := range strings.Split(cfg.Footer.Address, "\n") {
		fmt.Fprintf(&b, "%s  \n", line)
	}
	return b.String()
}

func newPreviewCmd(a *app) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the dashboard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md := previewMarkdown(a.state.Config())
			if a.jsonOutput {
				return writeJSON(a.out.w, map[string]string{"markdown": md})
			}

			style := "notty"
			if a.out.color {
				style = "dracula"
			}
			r, err := glamour.NewTermRenderer(
				glamour.WithStylePath(style),
				glamour.WithWordWrap(width),
				glamour.WithPreservedNewLines(),
			)
			if err != nil {
				return fmt.Errorf("creating renderer: %w", err)
			}
			out, err := r.Render(md)
			if err != nil {
				return fmt.Errorf("rendering preview: %w", err)
			}
			fmt.Fprint(a.out.w, out)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "Wrap the preview at this many columns")
	return cmd
}

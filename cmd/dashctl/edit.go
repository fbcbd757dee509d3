package main

import (
	"errors"
	"fmt"
	"strconv"

	"dashboard/dashboard"
	"dashboard/domain"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current dashboard configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showConfig(cmd)
		},
	}
}

func newHeaderCmd(a *app) *cobra.Command {
	var title, imageURL string
	cmd := &cobra.Command{
		Use:   "header",
		Short: "Update the header title or image",
		Example: `  dashctl header --title "My Site"
  dashctl header --image-url https://example.com/logo.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p domain.HeaderPatch
			if cmd.Flags().Changed("title") {
				p.Title = &title
			}
			if cmd.Flags().Changed("image-url") {
				p.ImageURL = &imageURL
			}
			if p.Title == nil && p.ImageURL == nil {
				return errors.New("nothing to update: pass --title or --image-url")
			}
			a.state.UpdateHeader(p)
			return a.showConfig(cmd)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Header title")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "Header image URL")
	return cmd
}

func newLinkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Edit navbar links",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <index> <label|url> <value>",
		Short: "Change one field of a navbar link",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := a.state.UpdateNavbarLink(i, dashboard.LinkField(args[1]), args[2]); err != nil {
				return err
			}
			return a.showConfig(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <label> <url>",
		Short: "Append a navbar link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.state.AppendNavbarLink(domain.Link{Label: args[0], URL: args[1]})
			return a.showConfig(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove a navbar link",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := a.state.RemoveNavbarLink(i); err != nil {
				return err
			}
			return a.showConfig(cmd)
		},
	})
	return cmd
}

func newFooterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "footer <email|phone|address> <value>",
		Short: "Change one footer field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.state.UpdateFooter(dashboard.FooterField(args[0]), args[1]); err != nil {
				return err
			}
			return a.showConfig(cmd)
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard every edit and restore the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.state.Reset()
			return a.showConfig(cmd)
		},
	}
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid link index %q", s)
	}
	return i, nil
}

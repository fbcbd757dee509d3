package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the current values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.settingsPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.settingsPath)
			}
			if err := saveSettings(a.settingsPath, a.settings); err != nil {
				return fmt.Errorf("writing settings: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", a.settingsPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing settings file")
	return cmd
}

func newPushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Store every section on the dashboard server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.state.Push(cmd.Context(), a.remote); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Pushed to %s\n", a.settings.Server)
			return nil
		},
	}
}

func newPullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Merge the sections stored on the server into the local copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.state.Pull(cmd.Context(), a.remote); err != nil {
				return err
			}
			return a.showConfig(cmd)
		},
	}
}

func newComponentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the component records stored on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := a.remote.ListComponents(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(a.out.w, comps)
			}
			if len(comps) == 0 {
				fmt.Fprintln(a.out.w, "No components stored.")
				return nil
			}
			a.out.components(comps)
			return nil
		},
	}
}

func newUploadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and use it as the header image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			up, err := a.settings.Upload.uploader(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if err := a.state.UploadHeaderImage(cmd.Context(), up, filepath.Base(args[0]), f); err != nil {
				return err
			}
			return a.showConfig(cmd)
		},
	}
}

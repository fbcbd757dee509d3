// Command dashctl edits the dashboard configuration from a terminal. Edits
// land in a local cache and, depending on the sync policy, on the dashboard
// server.
package main

import (
	"fmt"
	"io"
	"os"

	"dashboard/client"
	"dashboard/dashboard"
	"dashboard/localcache"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root has loaded settings.
type app struct {
	settingsPath string
	serverFlag   string
	jsonOutput   bool

	settings Settings
	logger   *log.Logger
	remote   *client.HTTPClient
	state    *dashboard.State
	out      printer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "dashctl",
		Short:         "Edit the dashboard header, navbar and footer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.settingsPath, "config", defaultSettingsPath(), "Path to the dashctl settings file")
	root.PersistentFlags().StringVar(&a.serverFlag, "server", "", "Dashboard server URL (overrides settings)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(
		newInitCmd(a),
		newShowCmd(a),
		newPreviewCmd(a),
		newHeaderCmd(a),
		newLinkCmd(a),
		newFooterCmd(a),
		newResetCmd(a),
		newUploadCmd(a),
		newPushCmd(a),
		newPullCmd(a),
		newComponentsCmd(a),
	)
	return root
}

func (a *app) setup(stdout, stderr io.Writer) error {
	s, err := loadSettings(a.settingsPath)
	if err != nil {
		return err
	}
	if a.serverFlag != "" {
		s.Server = a.serverFlag
	}
	a.settings = s

	a.logger = log.New("dashctl")
	a.logger.SetOutput(stderr)
	a.logger.SetLevel(log.WARN)

	policy, err := dashboard.ParsePolicy(s.Sync)
	if err != nil {
		return err
	}

	a.remote = client.NewHTTPClient(s.Server)
	cache := localcache.New(s.CacheDir, localcache.WithLogger(a.logger))
	a.state = dashboard.New(cache,
		dashboard.WithLogger(a.logger),
		dashboard.WithRemote(a.remote, policy),
	)
	a.out = printer{w: stdout, color: !a.jsonOutput && shouldUseColor()}
	return nil
}

// showConfig prints the configuration after an edit and reports a failed
// write-through push on stderr without failing the command.
func (a *app) showConfig(cmd *cobra.Command) error {
	if err := a.state.SyncErr(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: server not updated: %v\n", err)
	}
	if a.jsonOutput {
		return writeJSON(a.out.w, a.state.Config())
	}
	a.out.configuration(a.state.Config())
	return nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

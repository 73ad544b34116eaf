// Package cli is the cobra command surface of helpsync. Commands load
// settings, build the reconciler through a factory injected by main,
// run one pass and print the report.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/helpsync-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/helpsync-cli/internal/logger"
)

var version = "dev"

var (
	configFlag  string
	rootFlag    string
	verboseFlag bool
)

// newReconciler builds the engine for the loaded settings.
// Set by Execute; commands fail cleanly when it is missing.
var newReconciler func(domain.Settings) (driving.Reconciler, error)

var rootCmd = &cobra.Command{
	Use:   "helpsync",
	Short: "Synchronise a local help-center content tree with the remote service",
	Long: `helpsync keeps a local tree of Markdown articles and JSON descriptors
in sync with a remote help-center hierarchy and a translation service.

The local tree is the source of truth. Export pushes local changes up,
import pulls the remote hierarchy down, and sidecar files record which
content has already been synchronised.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"settings file (default "+configfile.DefaultName+" in the working directory)")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "",
		"content tree root (overrides the settings file)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging")
}

// Execute runs the CLI. factory turns loaded settings into a reconciler;
// main injects it so commands stay free of adapter wiring.
func Execute(v string, factory func(domain.Settings) (driving.Reconciler, error)) error {
	version = v
	newReconciler = factory
	return rootCmd.Execute()
}

// loadSettings resolves the settings file and flag overrides. Local-only
// commands pass requireRemote=false and work without a settings file;
// remote-touching commands need credentials and fail early without them.
func loadSettings(requireRemote bool) (domain.Settings, error) {
	path := configFlag
	explicit := path != ""
	if path == "" {
		path = configfile.DefaultName
	}

	settings, err := configfile.Load(path)
	if err != nil {
		if explicit || requireRemote || !errors.Is(err, fs.ErrNotExist) {
			return domain.Settings{}, err
		}
		settings = domain.Settings{}
	}

	if rootFlag != "" {
		settings.Root = rootFlag
	}
	if settings.Root == "" {
		settings.Root = "."
	}
	if requireRemote {
		if err := settings.Validate(); err != nil {
			return domain.Settings{}, err
		}
	}
	return settings, nil
}

// buildReconciler loads settings and builds the engine.
func buildReconciler(requireRemote bool) (driving.Reconciler, error) {
	if newReconciler == nil {
		return nil, errors.New("reconciler not configured")
	}
	settings, err := loadSettings(requireRemote)
	if err != nil {
		return nil, err
	}
	return newReconciler(settings)
}

// printReport prints the run summary and returns an error when any node
// failed, so the process exits non-zero while the counters still show
// what did succeed.
func printReport(cmd *cobra.Command, report *domain.RunReport) error {
	cmd.Printf("created %d, updated %d, deleted %d, translated %d, repaired %d, imported %d, skipped %d\n",
		report.Created, report.Updated, report.Deleted, report.Translated,
		report.Repaired, report.Imported, report.Skipped)

	if report.Clean() {
		return nil
	}
	cmd.PrintErrln("failures:")
	for _, failure := range report.Failures {
		cmd.PrintErrf("  %s\n", failure)
	}
	return fmt.Errorf("%d node(s) failed", len(report.Failures))
}

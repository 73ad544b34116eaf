package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Push local changes to the help center",
	Long: `Makes the remote hierarchy match the local tree: creates nodes that
have no remote id, updates nodes whose content changed since the last
sync, and deletes remote articles whose local files were removed.

A repair pass runs first so structurally incomplete nodes are fixed
before anything touches the remote.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	r, err := buildReconciler(true)
	if err != nil {
		return err
	}

	cmd.Println("Exporting local tree...")
	report, err := r.Export(context.Background())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return printReport(cmd, report)
}

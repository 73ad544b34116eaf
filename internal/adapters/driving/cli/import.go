package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Pull the remote hierarchy into the local tree",
	Long: `Writes the remote help-center hierarchy into the local tree: every
category, section and article becomes a directory or Markdown file,
with sidecars recording the remote ids. An export straight after a
clean import performs no mutations.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	r, err := buildReconciler(true)
	if err != nil {
		return err
	}

	cmd.Println("Importing remote hierarchy...")
	report, err := r.Import(context.Background())
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return printReport(cmd, report)
}

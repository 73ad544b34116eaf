package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Register source files with the translation service",
	Long: `Uploads every default-locale descriptor and article body that is not
yet registered with the translation service, and records the returned
file ids in the sidecars. The service writes translated variants back
into the tree out of process; a later export pushes them.`,
	Args: cobra.NoArgs,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, _ []string) error {
	r, err := buildReconciler(true)
	if err != nil {
		return err
	}

	cmd.Println("Registering source files...")
	report, err := r.Translate(context.Background())
	if err != nil {
		return fmt.Errorf("translate failed: %w", err)
	}
	return printReport(cmd, report)
}

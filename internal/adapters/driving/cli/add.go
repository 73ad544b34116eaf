package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <category[/section[/article.md]]>",
	Short: "Scaffold a new category, section or article",
	Long: `Creates the local files for one path: directories, descriptors and an
empty Markdown body as needed. Existing files are never overwritten and
nothing is uploaded; run export to push the new node.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	r, err := buildReconciler(false)
	if err != nil {
		return err
	}

	report, err := r.Add(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("add failed: %w", err)
	}
	cmd.Printf("Created %d file(s) under %s\n", report.Repaired, args[0])
	return nil
}

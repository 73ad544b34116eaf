package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <category[/section[/article.md]]>",
	Short: "Delete a node locally, remotely and from the translation service",
	Long: `Deletes one path everywhere: the remote node (containers cascade to
their descendants), the registered translation files, and the local
files and sidecars. The remote delete runs first; if it fails, the
local tree is left untouched so the command can be retried.

Ancestor containers are never removed, even when they become empty.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	r, err := buildReconciler(true)
	if err != nil {
		return err
	}

	report, err := r.Remove(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}
	if err := printReport(cmd, report); err != nil {
		return err
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Repair structurally incomplete nodes in the local tree",
	Long: `Scans the local tree and synthesises missing descriptors and bodies
with defaults derived from directory and file names. Existing files are
never overwritten and remote ids are never invented; a repaired node
shows up as a create or update on the next export.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	r, err := buildReconciler(false)
	if err != nil {
		return err
	}

	report, err := r.Doctor(context.Background())
	if err != nil {
		return fmt.Errorf("doctor failed: %w", err)
	}
	if report.Repaired == 0 {
		cmd.Println("Tree is healthy, nothing to repair.")
		return nil
	}
	cmd.Printf("Repaired %d file(s)\n", report.Repaired)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/VanessaBorst/MACRO-Towards-Classification-of-Co-Occurring-Diseases-in-12-Lead-ECGs/sweep"
)

var (
	pruneRoot    string
	prunePattern string
	pruneDryRun  bool
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete stale checkpoint directories under a model output tree",
	Long:  "Recursively delete every directory under --root whose name matches --pattern, together with its contents. Deletion is irreversible; use --dry-run to list matches instead.",
	Run: func(cmd *cobra.Command, args []string) {
		result, err := sweep.Prune(pruneRoot, prunePattern, pruneDryRun)
		if err != nil {
			logrus.Fatalf("Prune failed: %v", err)
		}
		if pruneDryRun {
			for _, dir := range result.Removed {
				fmt.Println(dir)
			}
			logrus.Infof("Dry run: %d checkpoint directories would be removed", len(result.Removed))
			return
		}
		logrus.Infof("Removed %d checkpoint directories under %s", len(result.Removed), pruneRoot)
	},
}

func init() {
	pruneCmd.Flags().StringVar(&pruneRoot, "root", "", "Root path of the trained-model output tree")
	pruneCmd.Flags().StringVar(&prunePattern, "pattern", sweep.DefaultPrunePattern, "Directory name pattern to delete")
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "List matching directories without deleting them")
	_ = pruneCmd.MarkFlagRequired("root")

	rootCmd.AddCommand(pruneCmd)
}

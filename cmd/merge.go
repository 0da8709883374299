package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mutest.dev/pkg/mutest/internal/domain"
	m "mutest.dev/pkg/mutest/internal/model"
)

const mergeIntoFlagName = "into"

var mergeIntoFlag string

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge run-id...",
		Short: "Merge the reports of several runs into one",
		Long: `Merge the method reports of several runs, typically the shards of one
sharded run, into a single run directory. The merged run id is printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := workflow.Merge(cmd.Context(), domain.MergeArgs{
				Reports: m.Path(viper.GetString(outputFlagName)),
				RunIDs:  args,
				Into:    mergeIntoFlag,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), runID)

			return nil
		},
	}

	cmd.Flags().StringVar(&mergeIntoFlag, mergeIntoFlagName, "", "run id of the merged run (default: random id)")

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mutest.dev/pkg/mutest/internal/domain"
	m "mutest.dev/pkg/mutest/internal/model"
)

const coverageOutFlagName = "out"

var coverageOutFlag string

// coverageCmd represents the coverage command group.
var coverageCmd = newCoverageCmd()

func newCoverageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Manage coverage data used to map tests to mutants",
	}

	cmd.AddCommand(newCoverageConvertCmd())

	return cmd
}

func newCoverageConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert profile",
		Short: "Convert a coverage profile into a binary snapshot",
		Long: `Convert a go test coverage profile into the binary snapshot format read
by "run --coverage-format binary".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := workflow.ConvertCoverage(cmd.Context(), domain.ConvertArgs{
				Profile: m.Path(args[0]),
				Output:  m.Path(coverageOutFlag),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d blocks (%s mode) to %s\n", snapshot.Blocks, snapshot.Mode, coverageOutFlag)

			return nil
		},
	}

	cmd.Flags().StringVar(&coverageOutFlag, coverageOutFlagName, "coverage.bin", "path of the binary snapshot")

	return cmd
}

func init() {
	rootCmd.AddCommand(coverageCmd)
}

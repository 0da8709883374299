package cmd

import (
	"github.com/spf13/cobra"

	"mutest.dev/pkg/mutest/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List source files and mutation counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			mapper, err := mapperOptions()
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{
				TargetArgs: targetArgs(args),
				Mapper:     mapper,
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const initForceFlagName = "force"

var initForceFlag bool

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default mutest.yaml configuration file",
		Long: `Write mutest.yaml to the current directory with every setting at its
current value (defaults, environment and flags), ready to be edited.
An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := filepath.Join(configFolderPath, configFileName)

			write := viper.SafeWriteConfigAs
			if initForceFlag {
				write = viper.WriteConfigAs
			}

			if err := write(target); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "wrote", target)

			return nil
		},
	}

	cmd.Flags().BoolVar(&initForceFlag, initForceFlagName, false, "overwrite an existing config file")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}

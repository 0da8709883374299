package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mutest.dev/pkg/mutest/internal/domain"
	m "mutest.dev/pkg/mutest/internal/model"
)

var runParallelFlag int
var runShardFlag string
var runIDFlag string
var runTimeoutFlag time.Duration
var runSurvivedThresholdFlag float64
var runKilledThresholdFlag float64
var runKillOnFailureFlag bool
var runAllTestsFlag bool
var runDiagnosticsFlag bool
var runSinceFlag string
var runCoverageFlag []string
var runCoverageFormatFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run mutation testing",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			mapper, err := mapperOptions()
			if err != nil {
				return err
			}

			shardIndex, totalShards := parseShardFlag(runShardFlag)

			return workflow.Run(cmd.Context(), domain.RunArgs{
				TargetArgs:      targetArgs(args),
				Reports:         m.Path(viper.GetString(outputFlagName)),
				Coverage:        parsePaths(viper.GetStringSlice(runCoverageConfigKey)),
				CoverageFormat:  domain.CoverageFormat(viper.GetString(runCoverageFormatConfigKey)),
				RunID:           runIDFlag,
				Since:           viper.GetString(runSinceConfigKey),
				Mapper:          mapper,
				Settings:        executionSettings(),
				ShardIndex:      shardIndex,
				TotalShardCount: totalShards,
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	defaults := m.DefaultExecutionSettings()
	flags := cmd.Flags()

	flags.IntVarP(&runParallelFlag, runParallelFlagName, "p", defaults.Parallelism, "number of parallel workers for mutation testing")
	bindFlagToConfig(flags.Lookup(runParallelFlagName), runParallelConfigKey)

	flags.StringVarP(&runShardFlag, runShardFlagName, "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
	flags.StringVar(&runIDFlag, runIDFlagName, "", "name of the run directory (default: random id)")

	flags.DurationVar(&runTimeoutFlag, runTimeoutFlagName, defaults.TestTimeout, "timeout of a single test execution")
	bindFlagToConfig(flags.Lookup(runTimeoutFlagName), runTimeoutConfigKey)

	flags.Float64Var(&runSurvivedThresholdFlag, runSurvivedThresholdFlagName, defaults.SurvivedThreshold, "stop testing a method once this fraction of its mutants survived")
	bindFlagToConfig(flags.Lookup(runSurvivedThresholdFlagName), runSurvivedThresholdConfigKey)

	flags.Float64Var(&runKilledThresholdFlag, runKilledThresholdFlagName, defaults.KilledThreshold, "stop testing a method once this fraction of its mutants was killed")
	bindFlagToConfig(flags.Lookup(runKilledThresholdFlagName), runKilledThresholdConfigKey)

	flags.BoolVar(&runKillOnFailureFlag, runKillOnFailureFlagName, defaults.KillOnFirstFailure, "stop running the tests of a mutant after the first failure")
	bindFlagToConfig(flags.Lookup(runKillOnFailureFlagName), runKillOnFailureConfigKey)

	flags.BoolVar(&runAllTestsFlag, runAllTestsFlagName, defaults.ExecuteAllTests, "run every test of the package instead of the covering ones")
	bindFlagToConfig(flags.Lookup(runAllTestsFlagName), runAllTestsConfigKey)

	flags.BoolVar(&runDiagnosticsFlag, runDiagnosticsFlagName, defaults.EnableDiagnostics, "keep build errors and test output in reports")
	bindFlagToConfig(flags.Lookup(runDiagnosticsFlagName), runDiagnosticsConfigKey)

	flags.StringVar(&runSinceFlag, runSinceFlagName, "", "only mutate lines changed since this git revision")
	bindFlagToConfig(flags.Lookup(runSinceFlagName), runSinceConfigKey)

	flags.StringArrayVar(&runCoverageFlag, runCoverageFlagName, nil, "coverage profile or snapshot to map tests from (can be repeated)")
	bindFlagToConfig(flags.Lookup(runCoverageFlagName), runCoverageConfigKey)

	flags.StringVar(&runCoverageFormatFlag, runCoverageFormatFlagName, defaultCoverageFormat, "coverage format: profile or binary")
	bindFlagToConfig(flags.Lookup(runCoverageFormatFlagName), runCoverageFormatConfigKey)
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}

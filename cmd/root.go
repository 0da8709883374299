// Package cmd provides the root command and CLI setup for mutest.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mutest.dev/pkg/mutest/internal/adapter"
	"mutest.dev/pkg/mutest/internal/controller"
	"mutest.dev/pkg/mutest/internal/domain"
	"mutest.dev/pkg/mutest/internal/domain/mutagens"
	m "mutest.dev/pkg/mutest/internal/model"
)

var workflow domain.Workflow

// setupErr holds configuration problems found while wiring dependencies.
// It is reported when a command runs so that help keeps working.
var setupErr error

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var targetsFileFlag string
var verboseFlag bool
var logFileFlag string

var linesFlag []string
var idsFlag []int
var ignoreIDsFlag []int
var skipFlag []string
var onlyFlag []string

func init() {
	var err error

	workflow, err = newWorkflow(controller.NewUI(rootCmd, controller.IsTTY(os.Stdout)))
	setupErr = errors.Join(configErr, err)
}

// newWorkflow wires the production adapters.
func newWorkflow(ui controller.UI) (domain.Workflow, error) {
	mutators, err := configuredMutators()

	fsAdapter := adapter.NewLocalSourceFSAdapter()
	mutagen := domain.NewMutagen(adapter.NewLocalGoFileAdapter(), fsAdapter, nil, mutators...)

	wf := domain.NewWorkflow(domain.Dependencies{
		FS:              fsAdapter,
		UI:              ui,
		Streamer:        domain.NewMutationStreamer(fsAdapter, mutagen),
		Build:           adapter.NewLocalBuildAdapter(),
		Runner:          adapter.NewLocalTestRunnerAdapter(),
		Changes:         adapter.NewGitChangeAdapter(),
		Targets:         adapter.NewYAMLTargetsAdapter(),
		ProfileCoverage: adapter.NewProfileCoverageAnalyzer(),
		BinaryCoverage:  adapter.NewBinaryCoverageAnalyzer(),
		OpenReports:     openReportStore,
	})

	return wf, err
}

func configuredMutators() ([]mutagens.Mutator, error) {
	names := viper.GetStringSlice(runMutatorsConfigKey)

	types := make([]m.MutatorType, 0, len(names))
	for _, name := range names {
		types = append(types, m.MutatorType(name))
	}

	mutators, err := mutagens.ByTypes(types...)
	if err != nil {
		return nil, m.NewConfigError(runMutatorsConfigKey, err)
	}

	return mutators, nil
}

// openReportStore opens the local report directory along with the
// configured object store mirror and history database.
func openReportStore(ctx context.Context, root m.Path) (adapter.ReportStore, error) {
	var sinks []adapter.ReportSink

	if cfg, ok := objectStoreConfig(); ok {
		sink, err := adapter.NewObjectReportSink(ctx, cfg)
		if err != nil {
			return nil, m.NewConfigError("reports.s3", err)
		}

		sinks = append(sinks, sink)
	}

	if cfg, ok := historyConfig(); ok {
		sink, err := adapter.NewHistorySink(ctx, cfg)
		if err != nil {
			return nil, errors.Join(m.NewConfigError("reports.history", err), closeSinks(sinks))
		}

		sinks = append(sinks, sink)
	}

	return adapter.NewLocalReportStore(root, sinks...), nil
}

func closeSinks(sinks []adapter.ReportSink) error {
	var errs []error

	for _, sink := range sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", sink.Name(), err))
		}
	}

	return errors.Join(errs...)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories`

const rootLongDescription = `Mutest is a mutation testing tool for Go that helps you assess the quality
of your test suite by introducing small changes (mutations) to your code
and verifying that your tests catch them.

` + pathPatternsHelp

const runLongDescription = `Run mutation testing for the given paths (default: current module).

Each method of the selected files is mutated, the mutants covered by tests
are built and tested in parallel, and one report per method is written to
the reports directory under a run id.

` + pathPatternsHelp

const listLongDescription = `List source files, their methods and the number of applicable mutations.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mutest",
		Short:        "Go mutation testing tool",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			configureLogger(logFileFlag, viper.GetBool(logVerboseKey))

			return setupErr
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&reportsOutputDirFlag, outputFlagName, "o", defaultReportsDir, "output directory for mutation testing reports")
	bindFlagToConfig(flags.Lookup(outputFlagName), outputFlagName)

	flags.StringArrayVarP(&excludePatterns, excludeFlagName, "x", nil, "exclude files matching regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.StringVarP(&targetsFileFlag, targetsFlagName, "t", "", "YAML file listing the files and methods to mutate")
	bindFlagToConfig(flags.Lookup(targetsFlagName), targetsConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, "", "log file path (default "+defaultLogFilename+")")

	flags.StringArrayVar(&linesFlag, linesFlagName, nil, "only mutate lines in MIN:MAX (can be repeated)")
	bindFlagToConfig(flags.Lookup(linesFlagName), linesConfigKey)

	flags.IntSliceVar(&idsFlag, idsFlagName, nil, "only keep mutants with these ids")
	bindFlagToConfig(flags.Lookup(idsFlagName), idsConfigKey)

	flags.IntSliceVar(&ignoreIDsFlag, ignoreIDsFlagName, nil, "drop mutants with these ids")
	bindFlagToConfig(flags.Lookup(ignoreIDsFlagName), ignoreIDsConfigKey)

	flags.StringArrayVar(&skipFlag, skipFlagName, nil, "skip mutants whose code matches regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(skipFlagName), skipConfigKey)

	flags.StringArrayVar(&onlyFlag, onlyFlagName, nil, "only keep mutants whose code matches regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(onlyFlagName), onlyConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// An interrupt cancels the running command, which still reports what it finished.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// targetArgs collects the file selection shared by list and run.
func targetArgs(args []string) domain.TargetArgs {
	return domain.TargetArgs{
		Paths:       parsePaths(args),
		TargetsFile: m.Path(viper.GetString(targetsConfigKey)),
		Exclude:     viper.GetStringSlice(excludeConfigKey),
	}
}

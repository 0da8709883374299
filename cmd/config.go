package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"mutest.dev/pkg/mutest/internal/adapter"
	m "mutest.dev/pkg/mutest/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "mutest"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName    = "output"
	excludeFlagName   = "exclude"
	targetsFlagName   = "targets"
	verboseFlagName   = "verbose"
	logFileFlagName   = "log-file"
	linesFlagName     = "lines"
	idsFlagName       = "ids"
	ignoreIDsFlagName = "ignore-ids"
	skipFlagName      = "skip"
	onlyFlagName      = "only"

	runParallelFlagName          = "parallel"
	runShardFlagName             = "shard"
	runIDFlagName                = "run-id"
	runTimeoutFlagName           = "timeout"
	runSurvivedThresholdFlagName = "survived-threshold"
	runKilledThresholdFlagName   = "killed-threshold"
	runKillOnFailureFlagName     = "kill-on-first-failure"
	runAllTestsFlagName          = "all-tests"
	runDiagnosticsFlagName       = "diagnostics"
	runSinceFlagName             = "since"
	runCoverageFlagName          = "coverage"
	runCoverageFormatFlagName    = "coverage-format"

	excludeConfigKey   = "paths.exclude"
	targetsConfigKey   = "paths.targets"
	linesConfigKey     = "filter.lines"
	idsConfigKey       = "filter.ids"
	ignoreIDsConfigKey = "filter.ignore_ids"
	skipConfigKey      = "filter.skip"
	onlyConfigKey      = "filter.only"

	runParallelConfigKey          = "run.parallel"
	runTimeoutConfigKey           = "run.test_timeout"
	runSurvivedThresholdConfigKey = "run.survived_threshold"
	runKilledThresholdConfigKey   = "run.killed_threshold"
	runKillOnFailureConfigKey     = "run.kill_on_first_failure"
	runAllTestsConfigKey          = "run.execute_all_tests"
	runDiagnosticsConfigKey       = "run.diagnostics"
	runSinceConfigKey             = "run.since"
	runMutatorsConfigKey          = "run.mutators"
	runCoverageConfigKey          = "coverage.paths"
	runCoverageFormatConfigKey    = "coverage.format"

	objectStoreEndpointKey  = "reports.s3.endpoint"
	objectStoreAccessKey    = "reports.s3.access_key"
	objectStoreSecretKey    = "reports.s3.secret_key"
	objectStoreRegionKey    = "reports.s3.region"
	objectStoreBucketKey    = "reports.s3.bucket"
	objectStorePrefixKey    = "reports.s3.prefix"
	objectStoreUseSSLKey    = "reports.s3.use_ssl"
	historyURLKey           = "reports.history.url"
	historyPingTimeoutKey   = "reports.history.ping_timeout"
	defaultHistoryPingDelay = 5 * time.Second

	defaultReportsDir     = ".mutest-reports"
	defaultCoverageFormat = "profile"

	envPrefix = "MUTEST"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".mutest.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// configErr records a config file that exists but cannot be read.
var configErr error

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return
		}

		configErr = m.NewConfigError(configFileName, err)
	}
}

func setDefaults() {
	settings := m.DefaultExecutionSettings()

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(targetsConfigKey, "")

	viper.SetDefault(linesConfigKey, []string{})
	viper.SetDefault(idsConfigKey, []int{})
	viper.SetDefault(ignoreIDsConfigKey, []int{})
	viper.SetDefault(skipConfigKey, []string{})
	viper.SetDefault(onlyConfigKey, []string{})

	viper.SetDefault(runParallelConfigKey, settings.Parallelism)
	viper.SetDefault(runTimeoutConfigKey, settings.TestTimeout)
	viper.SetDefault(runSurvivedThresholdConfigKey, settings.SurvivedThreshold)
	viper.SetDefault(runKilledThresholdConfigKey, settings.KilledThreshold)
	viper.SetDefault(runKillOnFailureConfigKey, settings.KillOnFirstFailure)
	viper.SetDefault(runAllTestsConfigKey, settings.ExecuteAllTests)
	viper.SetDefault(runDiagnosticsConfigKey, settings.EnableDiagnostics)
	viper.SetDefault(runSinceConfigKey, "")
	viper.SetDefault(runMutatorsConfigKey, []string{})
	viper.SetDefault(runCoverageConfigKey, []string{})
	viper.SetDefault(runCoverageFormatConfigKey, defaultCoverageFormat)

	viper.SetDefault(objectStoreEndpointKey, "")
	viper.SetDefault(objectStoreAccessKey, "")
	viper.SetDefault(objectStoreSecretKey, "")
	viper.SetDefault(objectStoreRegionKey, "")
	viper.SetDefault(objectStoreBucketKey, "")
	viper.SetDefault(objectStorePrefixKey, "")
	viper.SetDefault(objectStoreUseSSLKey, true)
	viper.SetDefault(historyURLKey, "")
	viper.SetDefault(historyPingTimeoutKey, defaultHistoryPingDelay)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// executionSettings reads the engine settings from flags, env and config.
func executionSettings() m.ExecutionSettings {
	return m.ExecutionSettings{
		Parallelism:        viper.GetInt(runParallelConfigKey),
		SurvivedThreshold:  viper.GetFloat64(runSurvivedThresholdConfigKey),
		KilledThreshold:    viper.GetFloat64(runKilledThresholdConfigKey),
		TestTimeout:        viper.GetDuration(runTimeoutConfigKey),
		KillOnFirstFailure: viper.GetBool(runKillOnFailureConfigKey),
		ExecuteAllTests:    viper.GetBool(runAllTestsConfigKey),
		EnableDiagnostics:  viper.GetBool(runDiagnosticsConfigKey),
	}
}

// mapperOptions reads the mutant filters. Malformed ranges or patterns are
// reported as configuration errors.
func mapperOptions() (m.MapperOptions, error) {
	options := m.MapperOptions{
		IgnoreIDs:       viper.GetIntSlice(ignoreIDsConfigKey),
		SpecificIDs:     viper.GetIntSlice(idsConfigKey),
		ExecuteAllTests: viper.GetBool(runAllTestsConfigKey),
	}

	for _, value := range viper.GetStringSlice(linesConfigKey) {
		lineRange, err := m.ParseLineRange(value)
		if err != nil {
			return m.MapperOptions{}, m.NewConfigError(linesFlagName, err)
		}

		options.SpecificLines = append(options.SpecificLines, lineRange)
	}

	var err error

	if options.SkipPatterns, err = compilePatterns(skipFlagName, viper.GetStringSlice(skipConfigKey)); err != nil {
		return m.MapperOptions{}, err
	}

	if options.SpecificPatterns, err = compilePatterns(onlyFlagName, viper.GetStringSlice(onlyConfigKey)); err != nil {
		return m.MapperOptions{}, err
	}

	return options, nil
}

func compilePatterns(key string, values []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(values))

	for _, value := range values {
		re, err := regexp.Compile(value)
		if err != nil {
			return nil, m.NewConfigError(key, fmt.Errorf("invalid pattern %q: %w", value, err))
		}

		patterns = append(patterns, re)
	}

	return patterns, nil
}

// objectStoreConfig returns the S3 mirror settings and whether the mirror is enabled.
func objectStoreConfig() (adapter.ObjectStoreConfig, bool) {
	cfg := adapter.ObjectStoreConfig{
		Endpoint:  viper.GetString(objectStoreEndpointKey),
		AccessKey: viper.GetString(objectStoreAccessKey),
		SecretKey: viper.GetString(objectStoreSecretKey),
		Region:    viper.GetString(objectStoreRegionKey),
		Bucket:    viper.GetString(objectStoreBucketKey),
		Prefix:    viper.GetString(objectStorePrefixKey),
		UseSSL:    viper.GetBool(objectStoreUseSSLKey),
	}

	return cfg, strings.TrimSpace(cfg.Endpoint) != ""
}

// historyConfig returns the Postgres history settings and whether history is enabled.
func historyConfig() (adapter.HistoryConfig, bool) {
	cfg := adapter.HistoryConfig{
		URL:         viper.GetString(historyURLKey),
		PingTimeout: viper.GetDuration(historyPingTimeoutKey),
	}

	return cfg, strings.TrimSpace(cfg.URL) != ""
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

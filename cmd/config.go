package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "codeaug"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName          = "output"
	statsFlagName           = "stats"
	codeKeyFlagName         = "code-key"
	tokensKeyFlagName       = "tokens-key"
	languageFlagName        = "language"
	minChangesFlagName      = "min-changes"
	maxExtraRoundsFlagName  = "max-extra-rounds"
	swapOperandsFlagName    = "swap-operands"
	renameVariablesFlagName = "rename-variables"
	swapStatementsFlagName  = "swap-statements"
	runParallelFlagName     = "parallel"
	runSeedFlagName         = "seed"
	interactiveFlagName     = "interactive"
	quietFlagName           = "quiet"
	verboseFlagName         = "verbose"

	outputConfigKey          = "output"
	statsConfigKey           = "stats"
	codeKeyConfigKey         = "record.code_key"
	tokensKeyConfigKey       = "record.tokens_key"
	languageConfigKey        = "record.language"
	minChangesConfigKey      = "augment.min_changes"
	maxExtraRoundsConfigKey  = "augment.max_extra_rounds"
	swapOperandsConfigKey    = "augment.swap_operands"
	renameVariablesConfigKey = "augment.rename_variables"
	swapStatementsConfigKey  = "augment.swap_statements"
	runParallelConfigKey     = "run.parallel"
	runSeedConfigKey         = "run.seed"

	defaultCodeKey        = "code"
	defaultLanguage       = "java"
	defaultMinChanges     = 1
	defaultMaxExtraRounds = 3
	defaultRunParallel    = 0
	defaultRunSeed        = 0

	envPrefix = "CODEAUG"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".codeaug.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputConfigKey, "")
	viper.SetDefault(statsConfigKey, "")
	viper.SetDefault(codeKeyConfigKey, defaultCodeKey)
	viper.SetDefault(tokensKeyConfigKey, "")
	viper.SetDefault(languageConfigKey, defaultLanguage)
	viper.SetDefault(minChangesConfigKey, defaultMinChanges)
	viper.SetDefault(maxExtraRoundsConfigKey, defaultMaxExtraRounds)
	viper.SetDefault(swapOperandsConfigKey, true)
	viper.SetDefault(renameVariablesConfigKey, true)
	viper.SetDefault(swapStatementsConfigKey, true)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(runSeedConfigKey, defaultRunSeed)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
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
	if verbose {
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

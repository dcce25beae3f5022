package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ApplyEnvOverrides applies environment variable overrides to the options.
// Pattern: CORPUS_[KEY] (e.g. CORPUS_OUTPUT, CORPUS_MAX_DEPTH). List values
// are comma separated.
func ApplyEnvOverrides(cfg *Options, logger *slog.Logger) {
	setEnvList(&cfg.Directories, "CORPUS_DIRECTORIES", logger)
	setEnvList(&cfg.Extensions, "CORPUS_EXTENSIONS", logger)
	setEnvList(&cfg.ExcludeExtensions, "CORPUS_EXCLUDE_EXTENSIONS", logger)
	setEnvList(&cfg.Patterns, "CORPUS_GLOB", logger)
	setEnvList(&cfg.ExcludePatterns, "CORPUS_EXCLUDE_PATTERNS", logger)
	setEnvList(&cfg.IgnoreDirs, "CORPUS_IGNORE_DIRS", logger)

	setEnvBool(&cfg.IncludeAll, "CORPUS_ALL", logger)
	setEnvBool(&cfg.IncludeHidden, "CORPUS_HIDDEN", logger)
	setEnvBool(&cfg.IncludeBinary, "CORPUS_INCLUDE_BINARY", logger)
	setEnvInt(&cfg.MaxDepth, "CORPUS_MAX_DEPTH", logger)

	setEnvString(&cfg.Output, "CORPUS_OUTPUT", logger)
	setEnvBool(&cfg.Outline, "CORPUS_OUTLINE", logger)
	setEnvBool(&cfg.NoDump, "CORPUS_NO_DUMP", logger)
	setEnvBool(&cfg.Manifest, "CORPUS_MANIFEST", logger)
	setEnvBool(&cfg.NoTree, "CORPUS_NO_TREE", logger)
	setEnvBool(&cfg.CleanContent, "CORPUS_CLEAN_CONTENT", logger)
	setEnvString(&cfg.Archive, "CORPUS_ARCHIVE", logger)

	setEnvFloat64(&cfg.ReadRate, "CORPUS_READ_RATE", logger)
	setEnvBool(&cfg.Verbose, "CORPUS_VERBOSE", logger)
}

func setEnvString(target *string, key string, logger *slog.Logger) {
	if val, ok := os.LookupEnv(key); ok {
		logger.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvList(target *[]string, key string, logger *slog.Logger) {
	if val, ok := os.LookupEnv(key); ok {
		logger.Debug("applying env override", "key", key, "value", val)
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		*target = out
	}
}

func setEnvBool(target *bool, key string, logger *slog.Logger) {
	if val, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			logger.Warn("ignoring invalid env override", "key", key, "value", val)
			return
		}
		logger.Debug("applying env override", "key", key, "value", parsed)
		*target = parsed
	}
}

func setEnvInt(target *int, key string, logger *slog.Logger) {
	if val, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			logger.Warn("ignoring invalid env override", "key", key, "value", val)
			return
		}
		logger.Debug("applying env override", "key", key, "value", parsed)
		*target = parsed
	}
}

func setEnvFloat64(target *float64, key string, logger *slog.Logger) {
	if val, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			logger.Warn("ignoring invalid env override", "key", key, "value", val)
			return
		}
		logger.Debug("applying env override", "key", key, "value", parsed)
		*target = parsed
	}
}

package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/koron-go/agingbloom"
)

// Config holds the settings shared by all subcommands.
type Config struct {
	Variant           string
	ExpectedInserts   uint64
	FalsePositiveRate float64
	BitResetRate      float64
	Generations       int
	Hasher            string
	Seed              int64
	LogLevel          string
}

func bindFlags(fs *pflag.FlagSet) {
	fs.String("variant", "plain", "filter variant: plain, counting, decay, generational, a2buffering")
	fs.Uint64("expected", agingbloom.DefaultExpectedInserts, "expected inserts (per generation)")
	fs.Float64("rate", agingbloom.DefaultFalsePositiveRate, "target false positive rate")
	fs.Float64("bit-reset-rate", agingbloom.DefaultBitResetRate, "fraction of bits cleared per decay")
	fs.Int("generations", agingbloom.DefaultGenerations, "number of generations")
	fs.String("hasher", "murmur3", "index hash: murmur3, metro, xxh3")
	fs.Int64("seed", 1, "random seed for decay")
	fs.String("log-level", "info", "log level")
}

// loadConfig reads flags, overridable by BLOOMCHECK_* environment variables.
func loadConfig(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BLOOMCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, errs.Wrap(err)
	}
	return Config{
		Variant:           v.GetString("variant"),
		ExpectedInserts:   v.GetUint64("expected"),
		FalsePositiveRate: v.GetFloat64("rate"),
		BitResetRate:      v.GetFloat64("bit-reset-rate"),
		Generations:       v.GetInt("generations"),
		Hasher:            v.GetString("hasher"),
		Seed:              v.GetInt64("seed"),
		LogLevel:          v.GetString("log-level"),
	}, nil
}

// loggerConfig returns a development config for debug level and a
// production config for info and above.
func loggerConfig(level string) (zap.Config, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.Config{}, errs.Wrap(err)
	}
	cfg := zap.NewProductionConfig()
	if lvl < zapcore.InfoLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg, err := loggerConfig(level)
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}

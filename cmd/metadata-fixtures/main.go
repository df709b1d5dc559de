package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/arch/metadata"
)

const fixturesFileName = "metadata_instructions.json"

type config struct {
	LogLevel  string `mapstructure:"log_level"`
	ProgramId string `mapstructure:"program_id"`
	OutDir    string `mapstructure:"out_fixtures_dir"`

	// Check compares the generated vectors with the file on disk instead of
	// overwriting it.
	Check bool `mapstructure:"check"`
}

var defaultConfig = config{
	LogLevel: "info",
	OutDir:   filepath.Join("pkg", "arch", "metadata", "testdata"),
}

var (
	configPath = flag.String("config", "config.yaml", "configuration file path")
	checkOnly  = flag.Bool("check", false, "fail if the fixture file is out of date")
)

func init() {
	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	_ = viper.BindEnv("program_id", "PROGRAM_ID")
	_ = viper.BindEnv("out_fixtures_dir", "OUT_FIXTURES_DIR")
	_ = viper.BindEnv("check", "CHECK")
}

func main() {
	flag.Parse()

	log := logrus.StandardLogger().WithField("type", "cmd/metadata-fixtures")

	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Error("failed to load config")
		os.Exit(1)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		log.WithError(err).Warn("invalid log level, using info")
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("failure generating fixtures")
		os.Exit(1)
	}
}

func loadConfig() (config, error) {
	if _, err := os.Stat(*configPath); err == nil {
		viper.SetConfigFile(*configPath)
	} else if !os.IsNotExist(err) {
		return config{}, errors.Wrap(err, "error checking config file")
	}

	err := viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); err != nil && !ok {
		return config{}, errors.Wrap(err, "error reading config file")
	}

	cfg := defaultConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return config{}, errors.Wrap(err, "error unmarshalling config")
	}
	if *checkOnly {
		cfg.Check = true
	}
	return cfg, nil
}

func run(cfg config, log *logrus.Entry) error {
	program := metadata.ProgramKey
	if len(cfg.ProgramId) > 0 {
		parsed, err := arch.ParsePubkey(cfg.ProgramId)
		if err != nil {
			return errors.Wrap(err, "invalid program id")
		}
		program = parsed
	}

	fixtures, err := metadata.BuildFixtures(program)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(fixtures, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error encoding fixtures")
	}
	encoded = append(encoded, '\n')

	path := filepath.Join(cfg.OutDir, fixturesFileName)
	log = log.WithFields(logrus.Fields{
		"program": program.String(),
		"path":    path,
	})

	if cfg.Check {
		existing, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "error reading existing fixtures")
		}
		if !bytes.Equal(existing, encoded) {
			return errors.Errorf("%s is out of date", path)
		}
		log.Info("fixtures are up to date")
		return nil
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return errors.Wrap(err, "error creating output directory")
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return errors.Wrap(err, "error writing fixtures")
	}

	log.Info("wrote fixtures")
	return nil
}

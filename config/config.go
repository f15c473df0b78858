// Package config holds the runtime configuration. Values come from, in
// increasing precedence: built-in defaults, an optional config.yaml in
// the working directory, and CROSSHATCH_* environment variables.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DataPath                  string
	DefaultLexicon            string
	DefaultLetterDistribution string
	StrategiesPath            string
	MovegenWorkers            int
	CacheFractionOfMem        float64
	Debug                     bool
}

// Load populates the config. A missing config file is fine; any other
// read error is returned.
func (c *Config) Load() error {
	v := viper.New()
	v.SetEnvPrefix("crosshatch")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("data-path", "./data")
	v.SetDefault("default-lexicon", "CSW21")
	v.SetDefault("default-letter-distribution", "english")
	v.SetDefault("strategies-path", "./data/strategies.yaml")
	// 0 means one movegen worker per CPU.
	v.SetDefault("movegen-workers", 0)
	v.SetDefault("cache-fraction-of-mem", 0.25)
	v.SetDefault("debug", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	c.DataPath = v.GetString("data-path")
	c.DefaultLexicon = v.GetString("default-lexicon")
	c.DefaultLetterDistribution = v.GetString("default-letter-distribution")
	c.StrategiesPath = v.GetString("strategies-path")
	c.MovegenWorkers = v.GetInt("movegen-workers")
	c.CacheFractionOfMem = v.GetFloat64("cache-fraction-of-mem")
	c.Debug = v.GetBool("debug")
	return nil
}

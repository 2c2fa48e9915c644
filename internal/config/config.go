package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env         string `mapstructure:"ENV"`
	Port        string `mapstructure:"PORT"`
	SilBase     string `mapstructure:"SIL_BASE"`
	PersonaFile string `mapstructure:"PERSONA_FILE"`
	CORSAllowed string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Scheduler binary.
	DryRun           bool          `mapstructure:"DRY_RUN"`
	SchedInterval    time.Duration `mapstructure:"SCHED_INTERVAL"`
	SchedOnce        bool          `mapstructure:"SCHED_ONCE"`
	SchedMode        string        `mapstructure:"SCHED_MODE"`
	SchedMetricsPort string        `mapstructure:"SCHED_METRICS_PORT"`
	CountersPath     string        `mapstructure:"COUNTERS_PATH"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "9090")
	v.SetDefault("SIL_BASE", "")
	v.SetDefault("PERSONA_FILE", "persona.json")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DRY_RUN", true)
	v.SetDefault("SCHED_INTERVAL", "5s")
	v.SetDefault("SCHED_ONCE", false)
	v.SetDefault("SCHED_MODE", "run")
	v.SetDefault("SCHED_METRICS_PORT", "9091")
	v.SetDefault("COUNTERS_PATH", "metrics.db")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

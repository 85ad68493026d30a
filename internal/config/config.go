package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Output format: table, markdown, json, or yaml.
	Format string `mapstructure:"format" yaml:"format"`
	// MaxRows caps ingestion; 0 means unlimited.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows"`

	// Profiling thresholds.
	OutlierZ         float64 `mapstructure:"outlier_z" yaml:"outlier_z"`
	MissingWarnRatio float64 `mapstructure:"missing_warn_ratio" yaml:"missing_warn_ratio"`
	UniqueWarnRatio  float64 `mapstructure:"unique_warn_ratio" yaml:"unique_warn_ratio"`
	NearConstantEps  float64 `mapstructure:"near_constant_eps" yaml:"near_constant_eps"`

	// Correlations enables pairwise correlation tracking by default.
	Correlations bool `mapstructure:"correlations" yaml:"correlations"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".datainspect"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.datainspect/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATAINSPECT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("format", "table")
	v.SetDefault("max_rows", 0)
	v.SetDefault("outlier_z", 5.0)
	v.SetDefault("missing_warn_ratio", 0.05)
	v.SetDefault("unique_warn_ratio", 0.95)
	v.SetDefault("near_constant_eps", 1e-12)
	v.SetDefault("correlations", false)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

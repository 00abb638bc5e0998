package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Assets  AssetsConfig
	Flow    FlowConfig
	Audio   AudioConfig
	Dossier DossierConfig
}

// AssetsConfig holds media lookup settings.
type AssetsConfig struct {
	Dir string
}

// FlowConfig holds flow timing and gallery shape.
type FlowConfig struct {
	Variant        string
	SplashDelay    time.Duration `mapstructure:"splash_delay"`
	RevealInterval time.Duration `mapstructure:"reveal_interval"`
	FrameInterval  time.Duration `mapstructure:"frame_interval"`
}

// AudioConfig holds ambient playback settings.
type AudioConfig struct {
	Muted bool
}

// DossierConfig holds the per-variant dossier copy.
type DossierConfig struct {
	TextSolo string `mapstructure:"text_solo"`
	TextDuo  string `mapstructure:"text_duo"`
}

// Load reads configuration from file and env. Env var overrides use prefix MARQUEE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("assets.dir", "assets")
	v.SetDefault("flow.variant", "solo")
	v.SetDefault("flow.splash_delay", "6s")
	v.SetDefault("flow.reveal_interval", "50ms")
	v.SetDefault("flow.frame_interval", "125ms")
	v.SetDefault("audio.muted", false)
	v.SetDefault("dossier.text_solo", "Unit 7. Field operative. Clearance granted for a single reel.")
	v.SetDefault("dossier.text_duo", "Unit 7 and Unit 9. Paired assignment. Second reel pending clearance.")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MARQUEE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "marquee"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MARQUEE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Text picks the dossier copy for the configured variant.
func (d DossierConfig) Text(variant string) string {
	if strings.EqualFold(strings.TrimSpace(variant), "duo") {
		return d.TextDuo
	}
	return d.TextSolo
}

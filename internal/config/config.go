// Package config loads wsgraph settings from wsgraph.toml and WSGRAPH_*
// environment variables.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/matzehuels/wsgraph/pkg/cache"
	"github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/pipeline"
	"github.com/matzehuels/wsgraph/pkg/render/mermaid"
	"github.com/matzehuels/wsgraph/pkg/render/mmdc"
)

// FileName is the config file looked up in the workspace directory.
const FileName = "wsgraph.toml"

// EnvPrefix prefixes environment overrides, e.g. WSGRAPH_DIAGRAM_STYLE.
const EnvPrefix = "WSGRAPH"

// Config holds all application configuration.
type Config struct {
	Diagram  DiagramConfig  `mapstructure:"diagram"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Renderer RendererConfig `mapstructure:"renderer"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Serve    ServeConfig    `mapstructure:"serve"`
	Log      LogConfig      `mapstructure:"log"`

	// Source is the config file that was read, empty if none.
	Source string `mapstructure:"-"`
}

type DiagramConfig struct {
	Style  string `mapstructure:"style"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type AnalysisConfig struct {
	IncludeDev       bool `mapstructure:"include_dev"`
	IncludeBuild     bool `mapstructure:"include_build"`
	RequireWorkspace bool `mapstructure:"require_workspace"`
}

type RendererConfig struct {
	Binary string `mapstructure:"binary"`
}

type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Dir      string        `mapstructure:"dir"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
	Prefix   string        `mapstructure:"prefix"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Diagram: DiagramConfig{
			Style:  mermaid.DefaultStyle,
			Format: pipeline.DefaultFormat,
		},
		Renderer: RendererConfig{Binary: mmdc.DefaultBinary},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     DefaultCacheDir(),
			TTL:     cache.DefaultTTL,
			Prefix:  "wsgraph:",
		},
		Serve: ServeConfig{Addr: ":8080"},
		Log:   LogConfig{Level: "info"},
	}
}

// DefaultCacheDir returns the per-user cache directory for rendered
// artifacts.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "wsgraph")
	}
	return filepath.Join(os.TempDir(), "wsgraph")
}

// Validate checks values that would fail later in the run.
func (c *Config) Validate() error {
	if _, err := mermaid.ParseStyle(c.Diagram.Style); err != nil {
		return err
	}
	if err := errors.ValidateFormat(c.Diagram.Format, pipeline.ValidFormats); err != nil {
		return err
	}
	if c.Diagram.Output != "" {
		if err := errors.ValidateOutputPath(c.Diagram.Output); err != nil {
			return err
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level %q", c.Log.Level)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Renderer.Binary == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "renderer.binary must not be empty")
	}
	return nil
}

// Load reads configuration from path, or from dir/wsgraph.toml when path is
// empty, and applies WSGRAPH_* environment overrides. A missing
// dir/wsgraph.toml is not an error; a missing explicit path is.
func Load(dir, path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	source := path
	if source == "" {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			source = candidate
		}
	}
	if source != "" {
		v.SetConfigFile(source)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if stderrors.As(err, &notFound) || stderrors.Is(err, os.ErrNotExist) {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s not found", source)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config %s", source)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "unmarshalling config")
	}
	cfg.Source = source
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("diagram.style", d.Diagram.Style)
	v.SetDefault("diagram.format", d.Diagram.Format)
	v.SetDefault("diagram.output", d.Diagram.Output)
	v.SetDefault("analysis.include_dev", d.Analysis.IncludeDev)
	v.SetDefault("analysis.include_build", d.Analysis.IncludeBuild)
	v.SetDefault("analysis.require_workspace", d.Analysis.RequireWorkspace)
	v.SetDefault("renderer.binary", d.Renderer.Binary)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.redis_url", d.Cache.RedisURL)
	v.SetDefault("cache.prefix", d.Cache.Prefix)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("log.level", d.Log.Level)
}

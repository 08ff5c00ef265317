package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/lumen/engine/core"
)

// Environment variables overriding the configuration file.
const (
	ENV_LOG_LEVEL  = "LUMEN_LOG_LEVEL"
	ENV_ASSETS_DIR = "LUMEN_ASSETS_DIR"
	ENV_HEADLESS   = "LUMEN_HEADLESS"
	ENV_MAX_FRAMES = "LUMEN_MAX_FRAMES"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Run without a window.
	Headless bool `toml:"headless"`
	// Stop after this many frames, 0 runs until quit. Only honoured headless.
	MaxFrames uint64 `toml:"max_frames"`
	// 0 leaves the frame rate unlimited.
	TargetFPS float64 `toml:"target_fps"`

	Assets   AssetsConfig   `toml:"assets"`
	Messages MessagesConfig `toml:"messages"`
	Jobs     JobsConfig     `toml:"jobs"`
	Textures TexturesConfig `toml:"textures"`
}

type AssetsConfig struct {
	Directory string `toml:"directory"`
	HotReload bool   `toml:"hot_reload"`
	FlipY     bool   `toml:"flip_y"`
}

type MessagesConfig struct {
	// Normal priority deliveries per frame.
	PerUpdate int `toml:"per_update"`
}

type JobsConfig struct {
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`
}

type TexturesConfig struct {
	MaxTextureCount uint32 `toml:"max_texture_count"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  1280,
		StartHeight: 720,
		Name:        "Lumen",
		LogLevel:    "info",
		TargetFPS:   60,
		Assets: AssetsConfig{
			Directory: "assets",
		},
		Messages: MessagesConfig{
			PerUpdate: core.DEFAULT_MESSAGES_PER_UPDATE,
		},
		Jobs: JobsConfig{
			Workers:   2,
			QueueSize: 64,
		},
		Textures: TexturesConfig{
			MaxTextureCount: 1024,
		},
	}
}

// LoadApplicationConfig builds the configuration from the defaults, a .env
// file in the working directory, the TOML file at path and finally the
// LUMEN_* environment variables. An empty path skips the file.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	config := DefaultApplicationConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) applyEnv() error {
	if v, ok := os.LookupEnv(ENV_LOG_LEVEL); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(ENV_ASSETS_DIR); ok {
		c.Assets.Directory = v
	}
	if v, ok := os.LookupEnv(ENV_HEADLESS); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value '%s': %w", ENV_HEADLESS, v, err)
		}
		c.Headless = b
	}
	if v, ok := os.LookupEnv(ENV_MAX_FRAMES); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value '%s': %w", ENV_MAX_FRAMES, v, err)
		}
		c.MaxFrames = n
	}
	return nil
}

func (c *ApplicationConfig) Validate() error {
	if c.StartWidth == 0 || c.StartHeight == 0 {
		return fmt.Errorf("window size must be > 0: %w", core.ErrInvalidConfig)
	}
	if c.Messages.PerUpdate <= 0 {
		return fmt.Errorf("messages.per_update must be > 0: %w", core.ErrInvalidConfig)
	}
	if c.Jobs.Workers <= 0 {
		return fmt.Errorf("jobs.workers must be > 0: %w", core.ErrInvalidConfig)
	}
	if c.Textures.MaxTextureCount == 0 {
		return fmt.Errorf("textures.max_texture_count must be > 0: %w", core.ErrInvalidConfig)
	}
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level '%s': %w", c.LogLevel, core.ErrInvalidConfig)
	}
	return nil
}

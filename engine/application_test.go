package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/lumen/engine/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lumen.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadApplicationConfigDefaults(t *testing.T) {
	config, err := LoadApplicationConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if config.Messages.PerUpdate != core.DEFAULT_MESSAGES_PER_UPDATE {
		t.Errorf("expected the default message budget, got %d", config.Messages.PerUpdate)
	}
	if config.StartWidth != 1280 || config.StartHeight != 720 {
		t.Errorf("unexpected default window %dx%d", config.StartWidth, config.StartHeight)
	}
}

func TestLoadApplicationConfigFromTOML(t *testing.T) {
	path := writeConfig(t, `
name = "test"
start_width = 640
start_height = 480
log_level = "warn"

[assets]
directory = "data"
flip_y = true

[messages]
per_update = 25

[textures]
max_texture_count = 4
`)

	config, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.Name != "test" || config.StartWidth != 640 || config.StartHeight != 480 {
		t.Errorf("unexpected window config %+v", config)
	}
	if config.Assets.Directory != "data" || !config.Assets.FlipY {
		t.Errorf("unexpected assets config %+v", config.Assets)
	}
	if config.Messages.PerUpdate != 25 || config.Textures.MaxTextureCount != 4 {
		t.Errorf("unexpected system config %+v %+v", config.Messages, config.Textures)
	}
	// untouched keys keep their defaults
	if config.Jobs.Workers != 2 {
		t.Errorf("expected default workers, got %d", config.Jobs.Workers)
	}
}

func TestLoadApplicationConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `headless = false`)
	t.Setenv(ENV_HEADLESS, "true")
	t.Setenv(ENV_MAX_FRAMES, "12")
	t.Setenv(ENV_ASSETS_DIR, "/tmp/assets")
	t.Setenv(ENV_LOG_LEVEL, "debug")

	config, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !config.Headless || config.MaxFrames != 12 || config.Assets.Directory != "/tmp/assets" || config.LogLevel != "debug" {
		t.Errorf("environment not applied: %+v", config)
	}
}

func TestLoadApplicationConfigErrors(t *testing.T) {
	if _, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}

	if _, err := LoadApplicationConfig(writeConfig(t, `start_width = "wide"`)); err == nil {
		t.Error("expected a parse error")
	}

	_, err := LoadApplicationConfig(writeConfig(t, "[messages]\nper_update = 0\n"))
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for a zero budget, got %v", err)
	}

	_, err = LoadApplicationConfig(writeConfig(t, `log_level = "loud"`))
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for an unknown log level, got %v", err)
	}

	t.Setenv(ENV_MAX_FRAMES, "many")
	if _, err := LoadApplicationConfig(""); err == nil {
		t.Error("expected an error for a malformed environment override")
	}
}

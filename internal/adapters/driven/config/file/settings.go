package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
)

// DefaultName is the settings file looked up in the tree root when no
// explicit path is given.
const DefaultName = "helpsync.toml"

// Load reads settings from the TOML file at path.
func Load(path string) (domain.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var settings domain.Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}

	// Relative tree roots resolve against the settings file, so a
	// checkout works from any working directory.
	if settings.Root != "" && !filepath.IsAbs(settings.Root) {
		settings.Root = filepath.Join(filepath.Dir(path), settings.Root)
	}
	return settings, nil
}

// Save writes settings to the TOML file at path with restricted
// permissions; the file holds credentials.
func Save(path string, settings domain.Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

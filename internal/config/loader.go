package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

const (
	kitchenFile = "kitchen.yaml"
	recipesFile = "recipes.yaml"
)

// LoadKitchen loads the game configuration. Keys missing from the file keep
// their default values.
// Search order: customPath -> ~/.kitchen/configs/kitchen.yaml -> ./configs/kitchen.yaml -> embedded default
func LoadKitchen(customPath string) (KitchenConfig, error) {
	cfg := DefaultKitchenConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths(kitchenFile) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultKitchenConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultKitchenYAML, &cfg); err != nil {
		return DefaultKitchenConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadCatalog loads the recipe catalog and reports the file it came from,
// or "" for the embedded catalog.
// Search order: customPath -> ~/.kitchen/configs/recipes.yaml -> ./configs/recipes.yaml -> embedded default
func LoadCatalog(customPath string) (*kitchen.Catalog, string, error) {
	// Try custom path first
	if customPath != "" {
		cat, err := LoadCatalogFile(customPath)
		if err != nil {
			return nil, "", err
		}
		return cat, customPath, nil
	}

	for _, path := range searchPaths(recipesFile) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if cat, err := LoadCatalogFile(path); err == nil {
			return cat, path, nil
		}
	}

	// Use embedded default YAML
	cat, err := ParseCatalog(defaultRecipesYAML)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse embedded recipes: %w", err)
	}
	return cat, "", nil
}

// LoadCatalogFile reads and validates one recipe file.
func LoadCatalogFile(path string) (*kitchen.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cat, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cat, nil
}

// searchPaths lists the user and local locations of a config file.
func searchPaths(filename string) []string {
	var paths []string
	if p := userConfigPath(filename); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", filename))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kitchen", "configs", filename)
}

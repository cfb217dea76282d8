package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadWeights loads decision-engine behavior weights.
// Search order: customPath -> ~/.botcircuit/configs/weights.yaml ->
// ./configs/weights.yaml -> built-in defaults.
func LoadWeights(customPath string) (BehaviorWeights, error) {
	cfg := DefaultWeights()

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

	for _, path := range searchPaths("weights.yaml") {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	return cfg, nil
}

// LoadTuning loads simulation physics and timing constants.
// Search order mirrors LoadWeights with tuning.yaml.
func LoadTuning(customPath string) (Tuning, error) {
	cfg := DefaultTuning()

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

	for _, path := range searchPaths("tuning.yaml") {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	return cfg, nil
}

// partsFile is the YAML shape of an authored part catalog.
type partsFile struct {
	Parts []Part `yaml:"parts"`
}

// LoadCatalog loads the part catalog.
// Search order mirrors LoadWeights with parts.yaml; falls back to the
// built-in catalog.
func LoadCatalog(customPath string) (*Catalog, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", customPath, err)
		}
		var pf partsFile
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", customPath, err)
		}
		return NewCatalog(pf.Parts)
	}

	for _, path := range searchPaths("parts.yaml") {
		if data, err := os.ReadFile(path); err == nil {
			var pf partsFile
			if err := yaml.Unmarshal(data, &pf); err == nil {
				if c, err := NewCatalog(pf.Parts); err == nil {
					return c, nil
				}
			}
		}
	}

	return DefaultCatalog(), nil
}

// searchPaths returns the user and local config paths for a filename.
func searchPaths(filename string) []string {
	paths := make([]string, 0, 2)
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".botcircuit", "configs", filename))
	}
	paths = append(paths, filepath.Join("configs", filename))
	return paths
}

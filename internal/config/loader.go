package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, scores and logs.
const AppDir = ".pipes"

// LoadPipes loads the pipes configuration.
// Search order: customPath -> ~/.pipes/configs/pipes.yaml -> ./configs/pipes.yaml -> embedded default
func LoadPipes(customPath string) (PipesConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PipesConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parsePipes(data)
		if err != nil {
			return PipesConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("pipes.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parsePipes(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "pipes.yaml")); err == nil {
		if cfg, err := parsePipes(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parsePipes(defaultPipesYAML)
	if err != nil {
		return DefaultPipesConfig(), nil // embedded file broken, use hardcoded values
	}
	return cfg, nil
}

// parsePipes decodes YAML on top of the hardcoded defaults so partial files work,
// then rejects values the game cannot run with.
func parsePipes(data []byte) (PipesConfig, error) {
	cfg := DefaultPipesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PipesConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PipesConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is playable.
func (c PipesConfig) Validate() error {
	switch {
	case c.Board.Cols < 1 || c.Board.Rows < 1:
		return fmt.Errorf("board size must be positive, got %dx%d", c.Board.Cols, c.Board.Rows)
	case c.Flow.Speed <= 0:
		return fmt.Errorf("flow speed must be positive, got %v", c.Flow.Speed)
	case c.Flow.Delay < 0:
		return fmt.Errorf("flow delay must not be negative, got %v", c.Flow.Delay)
	case c.Flow.FastMultiplier < 1:
		return fmt.Errorf("fast multiplier must be at least 1, got %v", c.Flow.FastMultiplier)
	case c.Generator.MaxCarveSteps < 0:
		return fmt.Errorf("max carve steps must not be negative, got %d", c.Generator.MaxCarveSteps)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// UserDir returns ~/.pipes, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir)
}

// ApplyPipesPreset modifies the config based on a difficulty preset.
func ApplyPipesPreset(cfg *PipesConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the flow based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Flow.Delay *= 1.5
		cfg.Flow.Speed *= 0.75
	case DifficultyHard:
		cfg.Flow.Delay *= 0.5
		cfg.Flow.Speed *= 1.5
	}
}

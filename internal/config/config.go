// Package config provides YAML-based game configuration loading and
// difficulty management for the pipes game.
package config

// PipesConfig contains all configuration for the pipes game.
type PipesConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Flow       FlowConfig       `yaml:"flow"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the board size used by endless mode and generated levels.
type BoardConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// FlowConfig defines how the flow advances.
type FlowConfig struct {
	Speed          float64 `yaml:"speed"`           // tiles per second
	Delay          float64 `yaml:"delay"`           // seconds before the flow starts
	FastMultiplier float64 `yaml:"fast_multiplier"` // speed multiplier while fast-forwarding
}

// GeneratorConfig defines maze generation parameters.
type GeneratorConfig struct {
	MaxCarveSteps int  `yaml:"max_carve_steps"`
	Scramble      bool `yaml:"scramble"`
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	TilePoints      int `yaml:"tile_points"`      // per tile filled by the flow
	CompletionBonus int `yaml:"completion_bonus"` // per completed board
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "boards", "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // boards/score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // multiplier added to flow speed at max difficulty
	DelayReduction  float64 `yaml:"delay_reduction"`  // seconds removed from the delay at max difficulty
	SizeGrowth      int     `yaml:"size_growth"`      // columns and rows added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

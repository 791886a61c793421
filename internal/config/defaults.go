package config

import (
	_ "embed"
)

//go:embed defaults/pipes.yaml
var defaultPipesYAML []byte

// DefaultPipesConfig returns the built-in pipes configuration.
func DefaultPipesConfig() PipesConfig {
	return PipesConfig{
		Board: BoardConfig{
			Cols: 10,
			Rows: 7,
		},
		Flow: FlowConfig{
			Speed:          0.25,
			Delay:          10,
			FastMultiplier: 8,
		},
		Generator: GeneratorConfig{
			MaxCarveSteps: 100,
			Scramble:      true,
		},
		Scoring: ScoringConfig{
			TilePoints:      10,
			CompletionBonus: 100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "boards",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
				DelayReduction:  6,
				SizeGrowth:      4,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPipesYAML
}

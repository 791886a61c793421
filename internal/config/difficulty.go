package config

import "math"

// Minimum values difficulty scaling never goes below.
const (
	minFlowDelay = 1.0
)

// DifficultyManager calculates dynamic game parameters from progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Progress is the state difficulty is measured against.
type Progress struct {
	Boards int // boards completed
	Score  int
	Ticks  int
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "boards":
		progress = float64(p.Boards) / maxAt
	case "score":
		progress = float64(p.Score) / maxAt
	case "time":
		progress = float64(p.Ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the flow speed for the current difficulty.
func (d *DifficultyManager) Speed(baseSpeed float64, p Progress) float64 {
	return baseSpeed * (1.0 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier)
}

// Delay returns the pre-flow delay for the current difficulty.
func (d *DifficultyManager) Delay(baseDelay float64, p Progress) float64 {
	result := baseDelay - d.Level(p)*d.cfg.Scaling.DelayReduction
	return math.Max(result, math.Min(baseDelay, minFlowDelay))
}

// BoardSize returns the board dimensions for the current difficulty.
func (d *DifficultyManager) BoardSize(cols, rows int, p Progress) (int, int) {
	growth := int(d.Level(p) * float64(d.cfg.Scaling.SizeGrowth))
	return cols + growth, rows + growth
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

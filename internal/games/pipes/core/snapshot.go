package core

// Snapshot is the serializable state of a Board. The flow path and the
// completion flag are derived and never stored.
type Snapshot struct {
	Cols                int     `yaml:"cols"`
	Rows                int     `yaml:"rows"`
	Tiles               []Mask  `yaml:"tiles"`
	Start               Coord   `yaml:"start"`
	End                 *Coord  `yaml:"end,omitempty"`
	FlowLength          float64 `yaml:"flow_length"`
	FlowSpeedMultiplier float64 `yaml:"flow_speed_multiplier"`
	TimeUntilFlow       float64 `yaml:"time_until_flow"`
	Defeated            bool    `yaml:"defeated"`
}

// Snapshot returns a deep copy of the board state.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Cols:                b.grid.Cols,
		Rows:                b.grid.Rows,
		Tiles:               b.Tiles(),
		Start:               b.start,
		FlowLength:          b.flowLength,
		FlowSpeedMultiplier: b.flowSpeedMultiplier,
		TimeUntilFlow:       b.timeUntilFlow,
		Defeated:            b.defeated,
	}
	if b.hasEnd {
		end := b.end
		s.End = &end
	}
	return s
}

// Config converts the snapshot into a construction config. Tuning fields
// (FlowSpeed, FlowDelay, MaxCarveSteps, Scramble, Seed, Rand) are left for
// the caller.
func (s Snapshot) Config() Config {
	start := s.Start
	multiplier := s.FlowSpeedMultiplier
	timeUntilFlow := s.TimeUntilFlow
	cfg := Config{
		Cols:                s.Cols,
		Rows:                s.Rows,
		Tiles:               append([]Mask(nil), s.Tiles...),
		Start:               &start,
		FlowLength:          s.FlowLength,
		FlowSpeedMultiplier: &multiplier,
		TimeUntilFlow:       &timeUntilFlow,
		Defeated:            s.Defeated,
	}
	if cfg.Tiles == nil {
		cfg.Tiles = []Mask{}
	}
	if s.End != nil {
		end := *s.End
		cfg.End = &end
	}
	return cfg
}

// Restore builds a board from a snapshot with the given tuning.
func Restore(s Snapshot, tuning Config) (*Board, error) {
	cfg := s.Config()
	cfg.FlowSpeed = tuning.FlowSpeed
	cfg.FlowDelay = tuning.FlowDelay
	cfg.MaxCarveSteps = tuning.MaxCarveSteps
	cfg.Scramble = tuning.Scramble
	cfg.Seed = tuning.Seed
	cfg.Rand = tuning.Rand
	return NewBoard(cfg)
}

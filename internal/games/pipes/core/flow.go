package core

// Outcome is the result of walking the flow.
type Outcome uint8

const (
	OutcomeFlowing   Outcome = iota // Flow is still advancing
	OutcomeDefeated                 // Flow left the board or hit a closed side
	OutcomeCompleted                // Flow filled the end tile
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeFlowing:
		return "flowing"
	case OutcomeDefeated:
		return "defeated"
	case OutcomeCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// DefeatReason explains a defeat.
type DefeatReason uint8

const (
	DefeatNone        DefeatReason = iota
	DefeatOutOfBounds              // Flow left the board
	DefeatBlocked                  // Next tile has no connector on the entry side
	DefeatDeadEnd                  // Tile has no way out
)

// String returns the string representation of a defeat reason.
func (r DefeatReason) String() string {
	switch r {
	case DefeatNone:
		return "none"
	case DefeatOutOfBounds:
		return "out of bounds"
	case DefeatBlocked:
		return "blocked"
	case DefeatDeadEnd:
		return "dead end"
	default:
		return "unknown"
	}
}

// FlowStep is one tile occupied by the flow.
type FlowStep struct {
	Cell     Coord
	Entry    Side    // SideNone for the start tile
	Exit     Side    // SideNone when the tile has no way out
	Progress float64 // Filled fraction of this tile, in (0, 1]
}

// FlowResult is the full outcome of a flow walk.
type FlowResult struct {
	Steps    []FlowStep
	Outcome  Outcome
	Reason   DefeatReason
	DefeatAt Coord // Cell where the defeat was detected (may be off-board)
}

// Head returns the leading step of the flow, if any.
func (r FlowResult) Head() (FlowStep, bool) {
	if len(r.Steps) == 0 {
		return FlowStep{}, false
	}
	return r.Steps[len(r.Steps)-1], true
}

// FilledCount returns the number of tiles completely filled by the flow.
func (r FlowResult) FilledCount() int {
	n := 0
	for _, s := range r.Steps {
		if s.Progress >= 1 {
			n++
		}
	}
	return n
}

// walkLimit bounds the number of steps of a single walk. A trajectory is
// fully determined by (cell, entry side), so past this many steps it repeats.
func walkLimit(g Grid) int {
	return 4*g.Len() + 1
}

// WalkFlow recomputes the flow from scratch for the given flow length.
// Tile i along the path is entered once flowLength exceeds i. The walk is a
// pure function of its inputs; end may be nil when the board has no end.
//
// At each entered tile the exit is chosen straight first, then left, then
// right, so a cross tile always passes the flow straight through.
func WalkFlow(g Grid, tiles []Mask, start Coord, end *Coord, flowLength float64) FlowResult {
	var res FlowResult
	if !(flowLength > 0) {
		return res
	}
	if !g.InBounds(start) {
		res.Outcome = OutcomeDefeated
		res.Reason = DefeatOutOfBounds
		res.DefeatAt = start
		return res
	}

	cell := start
	exit, _ := tileAt(g, tiles, start).StartSide()
	res.Steps = append(res.Steps, FlowStep{
		Cell:     start,
		Entry:    SideNone,
		Exit:     exit,
		Progress: minF(1, flowLength),
	})

	limit := walkLimit(g)
	for i := 1; float64(i) < flowLength; i++ {
		if i > limit {
			break
		}

		if exit == SideNone {
			if end != nil && cell == *end && len(res.Steps) > 1 {
				res.Outcome = OutcomeCompleted
			} else {
				res.Outcome = OutcomeDefeated
				res.Reason = DefeatDeadEnd
				res.DefeatAt = cell
			}
			return res
		}

		next := cell.Step(exit)
		if !g.InBounds(next) {
			res.Outcome = OutcomeDefeated
			res.Reason = DefeatOutOfBounds
			res.DefeatAt = next
			return res
		}

		entry := exit.Opposite()
		mask := tileAt(g, tiles, next)
		if !mask.Has(entry) {
			res.Outcome = OutcomeDefeated
			res.Reason = DefeatBlocked
			res.DefeatAt = next
			return res
		}

		cell = next
		exit = pickExit(mask, entry)
		res.Steps = append(res.Steps, FlowStep{
			Cell:     cell,
			Entry:    entry,
			Exit:     exit,
			Progress: minF(1, flowLength-float64(i)),
		})
	}

	return res
}

// pickExit returns the way out of a tile entered through entry:
// straight, then left, then right. SideNone if none is open.
func pickExit(m Mask, entry Side) Side {
	for _, s := range [3]Side{entry.Opposite(), entry.Left(), entry.Right()} {
		if m.Has(s) {
			return s
		}
	}
	return SideNone
}

// tileAt returns the tile at c, or MaskEmpty when c or its index is out of range.
func tileAt(g Grid, tiles []Mask, c Coord) Mask {
	idx, ok := g.Index(c)
	if !ok || idx >= len(tiles) {
		return MaskEmpty
	}
	return tiles[idx]
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

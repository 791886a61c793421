// Package core provides the connectivity and flow engine for the Pipes puzzle.
// This package is UI-agnostic and deterministic given its random source.
package core

import (
	"fmt"
	"math/bits"
)

// Side identifies one edge of a tile. The numeric value is the bit index
// of that side inside a Mask.
type Side uint8

const (
	SideNorth Side = iota
	SideWest
	SideSouth
	SideEast

	// SideNone marks the origin of the flow, which starts at the tile center.
	SideNone Side = 255
)

// String returns the string representation of a side.
func (s Side) String() string {
	switch s {
	case SideNorth:
		return "North"
	case SideWest:
		return "West"
	case SideSouth:
		return "South"
	case SideEast:
		return "East"
	case SideNone:
		return "None"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the four real sides.
func (s Side) Valid() bool {
	return s <= SideEast
}

// Opposite returns the side facing s.
func (s Side) Opposite() Side {
	if !s.Valid() {
		return s
	}
	return (s + 2) % 4
}

// Left returns the side reached by turning left when entering through s.
func (s Side) Left() Side {
	if !s.Valid() {
		return s
	}
	return (s + 3) % 4
}

// Right returns the side reached by turning right when entering through s.
func (s Side) Right() Side {
	if !s.Valid() {
		return s
	}
	return (s + 1) % 4
}

// Delta returns the (dcol, drow) offset of the neighbor across this side.
// North decreases the row (screen coordinates).
func (s Side) Delta() (dcol, drow int) {
	switch s {
	case SideNorth:
		return 0, -1
	case SideWest:
		return -1, 0
	case SideSouth:
		return 0, 1
	case SideEast:
		return 1, 0
	default:
		return 0, 0
	}
}

// Sides lists the four sides in bit order.
var Sides = [4]Side{SideNorth, SideWest, SideSouth, SideEast}

// Mask is a 4-bit connector set. Bit i set means side i is open.
type Mask uint8

const (
	MaskEmpty Mask = 0
	MaskNorth Mask = 1 << SideNorth
	MaskWest  Mask = 1 << SideWest
	MaskSouth Mask = 1 << SideSouth
	MaskEast  Mask = 1 << SideEast

	MaskVertical   = MaskNorth | MaskSouth
	MaskHorizontal = MaskWest | MaskEast
	MaskCross      = MaskNorth | MaskWest | MaskSouth | MaskEast

	maskBits = 0x0F
)

// PlaceableMasks holds every tile shape eligible for random fill:
// the six two-connector tiles and the cross.
var PlaceableMasks = []Mask{
	MaskNorth | MaskWest,
	MaskVertical,
	MaskNorth | MaskEast,
	MaskWest | MaskSouth,
	MaskHorizontal,
	MaskSouth | MaskEast,
	MaskCross,
}

// MaskOf returns the mask with only side s open.
func MaskOf(s Side) Mask {
	if !s.Valid() {
		return MaskEmpty
	}
	return 1 << s
}

// Has reports whether side s is open.
func (m Mask) Has(s Side) bool {
	return s.Valid() && m&MaskOf(s) != 0
}

// With returns m with side s opened.
func (m Mask) With(s Side) Mask {
	return m | MaskOf(s)
}

// Rotate cyclically shifts the connectors by turns quarter turns.
// One turn maps North to West (counter-clockwise on screen); three turns
// rotate clockwise. Any integer is accepted and reduced modulo 4.
func (m Mask) Rotate(turns int) Mask {
	turns = ((turns % 4) + 4) % 4
	m &= maskBits
	if turns == 0 {
		return m
	}
	return (m<<turns | m>>(4-turns)) & maskBits
}

// Count returns the number of open connectors.
func (m Mask) Count() int {
	return bits.OnesCount8(uint8(m & maskBits))
}

// IsEmpty reports whether no connector is open.
func (m Mask) IsEmpty() bool {
	return m&maskBits == 0
}

// IsStart reports whether exactly one connector is open.
func (m Mask) IsStart() bool {
	return m.Count() == 1
}

// IsCross reports whether all four connectors are open.
func (m Mask) IsCross() bool {
	return m == MaskCross
}

// IsPlaceable reports whether m is a two-connector tile or the cross.
func (m Mask) IsPlaceable() bool {
	if m&^maskBits != 0 {
		return false
	}
	return m.Count() == 2 || m.IsCross()
}

// IsValid reports whether m is a shape the game can produce: empty,
// single-connector, two-connector or cross. Three-connector masks and
// masks with bits above bit 3 are invalid.
func (m Mask) IsValid() bool {
	if m&^maskBits != 0 {
		return false
	}
	return m.Count() != 3
}

// OpenSides returns the open sides in bit order.
func (m Mask) OpenSides() []Side {
	sides := make([]Side, 0, 4)
	for _, s := range Sides {
		if m.Has(s) {
			sides = append(sides, s)
		}
	}
	return sides
}

// StartSide returns the index of the single open connector.
// ok is false unless exactly one bit is set.
func (m Mask) StartSide() (s Side, ok bool) {
	if !m.IsStart() {
		return SideNone, false
	}
	return Side(bits.TrailingZeros8(uint8(m))), true
}

// String renders the mask as its four bits, East first (e.g. "1010").
func (m Mask) String() string {
	return fmt.Sprintf("%04b", uint8(m&maskBits))
}

package world

import "github.com/cory-johannsen/circlemud/internal/game/command"

// Direction is an exit slot of a room. Negative values are the BFS
// sentinels returned by FindFirstStep.
type Direction int

// Exit directions.
const (
	North Direction = iota
	East
	South
	West
	Up
	Down
	NumDirs = 6
)

var dirNames = [NumDirs]string{"north", "east", "south", "west", "up", "down"}

// Valid reports whether d names a real exit slot.
func (d Direction) Valid() bool { return d >= 0 && d < NumDirs }

func (d Direction) String() string {
	switch {
	case d.Valid():
		return dirNames[d]
	case d == BFSAlreadyThere:
		return "already-there"
	case d == BFSNoPath:
		return "no-path"
	default:
		return "bfs-error"
	}
}

// Opposite returns the reverse direction.
//
// Precondition: d.Valid().
func (d Direction) Opposite() Direction {
	return [NumDirs]Direction{South, West, North, East, Down, Up}[d]
}

// ParseDirection resolves a full or abbreviated direction name.
func ParseDirection(s string) (Direction, bool) {
	i := command.SearchBlock(s, dirNames[:], false)
	if i < 0 {
		return 0, false
	}
	return Direction(i), true
}

// DirectionNames returns the direction names in slot order.
func DirectionNames() []string { return dirNames[:] }

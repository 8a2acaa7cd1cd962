package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

func TestFindFirstStep_Sentinels(t *testing.T) {
	w := newKeep(t)
	temple := w.RealRoom(3001)

	assert.Equal(t, world.BFSAlreadyThere, w.FindFirstStep(temple, temple, false))
	assert.Equal(t, world.BFSError, w.FindFirstStep(temple, 99, false))
	assert.Equal(t, world.BFSError, w.FindFirstStep(world.Nowhere, temple, false))
	assert.Equal(t, world.BFSNoPath, w.FindFirstStep(temple, w.RealRoom(3005), true))
}

func TestFindFirstStep_Corridor(t *testing.T) {
	w := newKeep(t)
	temple, tower := w.RealRoom(3001), w.RealRoom(3004)

	assert.Equal(t, world.North, w.FindFirstStep(temple, tower, false))
	assert.Equal(t, world.Down, w.FindFirstStep(tower, temple, false))
	assert.Equal(t, world.South, w.FindFirstStep(w.RealRoom(3002), temple, false))
}

func TestFindFirstStep_ClosedDoors(t *testing.T) {
	w := newKeep(t)
	w.ResetZone(0)
	temple, tower := w.RealRoom(3001), w.RealRoom(3004)

	assert.Equal(t, world.BFSNoPath, w.FindFirstStep(temple, tower, false))
	assert.Equal(t, world.North, w.FindFirstStep(temple, tower, true))
}

func TestFindFirstStep_RepeatedSearchesAgree(t *testing.T) {
	w := newKeep(t)
	temple, tower := w.RealRoom(3001), w.RealRoom(3004)
	for range 1000 {
		assert.Equal(t, world.North, w.FindFirstStep(temple, tower, false))
	}
}

// distances computes BFS hop counts to target over reversed edges.
func distances(w *world.World, target world.Rnum) []int {
	dist := make([]int, len(w.Rooms))
	for i := range dist {
		dist[i] = -1
	}
	dist[target] = 0
	queue := []world.Rnum{target}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for r := range w.Rooms {
			for _, ex := range w.Rooms[r].Exits {
				if ex != nil && ex.ToRoom == cur && dist[r] < 0 {
					dist[r] = dist[cur] + 1
					queue = append(queue, world.Rnum(r))
				}
			}
		}
	}
	return dist
}

func TestFindFirstStep_Property_StepShortensPath(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "rooms")
		w := world.New(nil, nil)
		w.Rooms = make([]world.Room, n)
		for r := range n {
			for d := range world.Direction(world.NumDirs) {
				if rapid.Bool().Draw(rt, "has_exit") {
					to := rapid.IntRange(0, n-1).Draw(rt, "to")
					w.Rooms[r].Exits[d] = &world.Exit{ToRoom: world.Rnum(to), Key: world.NoVnum}
				}
			}
		}
		src := world.Rnum(rapid.IntRange(0, n-1).Draw(rt, "src"))
		dst := world.Rnum(rapid.IntRange(0, n-1).Draw(rt, "dst"))
		dist := distances(w, dst)

		got := w.FindFirstStep(src, dst, false)
		switch {
		case src == dst:
			if got != world.BFSAlreadyThere {
				rt.Fatalf("expected already-there, got %v", got)
			}
		case dist[src] < 0:
			if got != world.BFSNoPath {
				rt.Fatalf("expected no path, got %v", got)
			}
		default:
			if !got.Valid() {
				rt.Fatalf("expected a direction, got %v", got)
			}
			next := w.Rooms[src].Exits[got].ToRoom
			if dist[next] != dist[src]-1 {
				rt.Fatalf("step %v leads to distance %d from %d", got, dist[next], dist[src])
			}
		}
	})
}

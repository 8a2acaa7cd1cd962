package world

// BFS sentinels returned by FindFirstStep in place of a direction.
const (
	BFSError        Direction = -1
	BFSAlreadyThere Direction = -2
	BFSNoPath       Direction = -3
)

type bfsNode struct {
	room Rnum
	dir  Direction
}

// beginSearch starts a new visited generation. Rooms stamped with an
// older generation count as unvisited, so no per-search clearing pass is
// needed.
func (w *World) beginSearch() {
	if len(w.visited) != len(w.Rooms) {
		w.visited = make([]uint32, len(w.Rooms))
		w.visitGen = 0
	}
	w.visitGen++
	if w.visitGen == 0 {
		clear(w.visited)
		w.visitGen = 1
	}
}

func (w *World) mark(r Rnum)                     { w.visited[r] = w.visitGen }
func (w *World) marked(r Rnum) bool              { return w.visited[r] == w.visitGen }
func (w *World) toRoom(r Rnum, d Direction) Rnum { return w.Rooms[r].Exits[d].ToRoom }

func (w *World) validEdge(r Rnum, d Direction, throughDoors bool) bool {
	ex := w.Rooms[r].Exits[d]
	if ex == nil || !w.ValidRoom(ex.ToRoom) {
		return false
	}
	if !throughDoors && ex.IsClosed() {
		return false
	}
	if w.Rooms[ex.ToRoom].Flags.Has(RoomNoTrack) {
		return false
	}
	return !w.marked(ex.ToRoom)
}

// FindFirstStep returns the direction of the first step on a shortest path
// from src to target, or one of BFSError, BFSAlreadyThere and BFSNoPath.
// Closed doors block the path unless throughDoors is set.
func (w *World) FindFirstStep(src, target Rnum, throughDoors bool) Direction {
	if !w.ValidRoom(src) || !w.ValidRoom(target) {
		w.Logger.Error("SYSERR: illegal value passed to find_first_step")
		return BFSError
	}
	if src == target {
		return BFSAlreadyThere
	}

	w.beginSearch()
	w.mark(src)

	var queue []bfsNode
	for d := range Direction(NumDirs) {
		if w.validEdge(src, d, throughDoors) {
			next := w.toRoom(src, d)
			w.mark(next)
			queue = append(queue, bfsNode{room: next, dir: d})
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.room == target {
			return cur.dir
		}
		for d := range Direction(NumDirs) {
			if w.validEdge(cur.room, d, throughDoors) {
				next := w.toRoom(cur.room, d)
				w.mark(next)
				queue = append(queue, bfsNode{room: next, dir: cur.dir})
			}
		}
	}
	return BFSNoPath
}

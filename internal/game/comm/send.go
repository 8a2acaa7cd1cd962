// Package comm delivers text to characters: direct sends, act() messages
// and the pager.
package comm

import (
	"fmt"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// descOf returns the descriptor attached to ch, if any.
func descOf(w *world.World, ch world.CharID) (*world.Descriptor, bool) {
	c, ok := w.Chars.Lookup(ch)
	if !ok || c.Desc.IsZero() {
		return nil, false
	}
	return w.Descs.Lookup(c.Desc)
}

// SendToChar queues msg on ch's connection. Characters without one (NPCs,
// linkless players) drop it.
func SendToChar(w *world.World, ch world.CharID, msg string) {
	if d, ok := descOf(w, ch); ok {
		d.Write(msg)
	}
}

// SendToCharf is SendToChar with formatting.
func SendToCharf(w *world.World, ch world.CharID, format string, args ...any) {
	if d, ok := descOf(w, ch); ok {
		d.Write(fmt.Sprintf(format, args...))
	}
}

// SendToDesc writes msg to a descriptor by handle.
func SendToDesc(w *world.World, id world.DescID, msg string) {
	if d, ok := w.Descs.Lookup(id); ok {
		d.Write(msg)
	}
}

// SendToRoom sends msg to every connected occupant of r.
func SendToRoom(w *world.World, r world.Rnum, msg string) {
	if !w.ValidRoom(r) {
		return
	}
	for _, ch := range w.Room(r).People {
		SendToChar(w, ch, msg)
	}
}

// SendToAll sends msg to every playing connection.
func SendToAll(w *world.World, msg string) {
	for _, id := range w.Playing() {
		w.Desc(id).Write(msg)
	}
}

// SendToOutdoor sends msg to awake players standing outdoors.
func SendToOutdoor(w *world.World, msg string) {
	for _, id := range w.Playing() {
		d := w.Desc(id)
		c, ok := w.Chars.Lookup(d.Character)
		if !ok || !c.Awake() || !w.ValidRoom(c.InRoom) || !w.IsOutdoors(c.InRoom) {
			continue
		}
		d.Write(msg)
	}
}

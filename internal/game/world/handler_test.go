package world_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

func addPlayer(w *world.World, name string, r world.Rnum) world.CharID {
	c := world.NewPlayer(name)
	c.Abilities = world.Abilities{Str: 16, Int: 12, Wis: 12, Dex: 14, Con: 14, Cha: 12}
	c.Level = 5
	id := w.AddCharacter(c)
	w.CharToRoom(id, r)
	return id
}

func TestCharToRoom_Occupancy(t *testing.T) {
	w := newKeep(t)
	temple, court := w.RealRoom(3001), w.RealRoom(3002)
	bob := addPlayer(w, "Bob", temple)

	assert.Equal(t, []world.CharID{bob}, w.Room(temple).People)
	assert.Panics(t, func() { w.CharToRoom(bob, court) })

	w.MoveChar(bob, court)
	assert.Empty(t, w.Room(temple).People)
	assert.Equal(t, []world.CharID{bob}, w.Room(court).People)
	assert.Equal(t, court, w.Ch(bob).InRoom)

	w.CharFromRoom(bob)
	assert.Panics(t, func() { w.CharFromRoom(bob) })
}

func TestCharToRoom_CarriesLight(t *testing.T) {
	w := newKeep(t)
	court := w.RealRoom(3002)
	bob := addPlayer(w, "Bob", w.RealRoom(3001))
	lantern := w.ReadObject(w.RealObject(3022))
	require.True(t, w.EquipChar(lantern, bob, world.WearLight))

	w.MoveChar(bob, court)
	assert.Equal(t, 1, w.Room(court).Light)
	w.UnequipChar(bob, world.WearLight)
	assert.Equal(t, 0, w.Room(court).Light)
}

// objHolders counts the containers that list o.
func objHolders(w *world.World, o world.ObjID) int {
	n := 0
	for i := range w.Rooms {
		if slices.Contains(w.Rooms[i].Contents, o) {
			n++
		}
	}
	for _, id := range w.CharList {
		c := w.Ch(id)
		if slices.Contains(c.Carrying, o) {
			n++
		}
		if slices.Contains(c.Equipment[:], o) {
			n++
		}
	}
	for _, h := range w.Objs.Handles() {
		if slices.Contains(w.Obj(h).Contains, o) {
			n++
		}
	}
	return n
}

func TestObjectLocation_Property_SingleHolder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := world.New(nil, nil)
		w.Rooms = make([]world.Room, 3)
		bob := w.AddCharacter(world.NewPlayer("Bob"))
		w.CharToRoom(bob, 0)
		bag := w.CreateObject(world.Object{Name: "bag", Type: world.ItemContainer, Weight: 1})
		w.ObjToRoom(bag, 1)
		gem := w.CreateObject(world.Object{Name: "gem", Weight: 2, WearFlags: world.FlagsOf(world.ItemWearHold)})

		for range rapid.IntRange(1, 40).Draw(rt, "steps") {
			w.ObjFromAnywhere(gem)
			switch rapid.IntRange(0, 4).Draw(rt, "dest") {
			case 0:
				w.ObjToRoom(gem, world.Rnum(rapid.IntRange(0, 2).Draw(rt, "room")))
			case 1:
				w.ObjToChar(gem, bob)
			case 2:
				w.EquipChar(gem, bob, world.WearHold)
			case 3:
				w.ObjToObj(gem, bag)
			case 4:
			}
			g := w.Obj(gem)
			want := 1
			if g.Loc.Kind == world.LocNowhere {
				want = 0
			}
			if got := objHolders(w, gem); got != want {
				rt.Fatalf("gem at %v listed by %d holders", g.Loc.Kind, got)
			}
			wantBag := 1
			if g.Loc.Kind == world.LocContainer {
				wantBag = 3
			}
			if w.Obj(bag).Weight != wantBag {
				rt.Fatalf("bag weight %d, want %d", w.Obj(bag).Weight, wantBag)
			}
		}
	})
}

func TestObjToObj_WeightPropagatesToCarrier(t *testing.T) {
	w := newKeep(t)
	bob := addPlayer(w, "Bob", w.RealRoom(3001))
	bag := w.ReadObject(w.RealObject(3021))
	w.ObjToChar(bag, bob)
	sword := w.ReadObject(w.RealObject(3020))
	w.ObjToObj(sword, bag)

	assert.Equal(t, 10, w.Obj(bag).Weight)
	assert.Equal(t, 10, w.Ch(bob).CarryWeight)

	w.ObjFromObj(sword)
	assert.Equal(t, 2, w.Ch(bob).CarryWeight)
	assert.Panics(t, func() { w.ObjToObj(bag, bag) })
}

func TestExtractObj_Recursive(t *testing.T) {
	w := newKeep(t)
	bag := w.ReadObject(w.RealObject(3021))
	w.ObjToRoom(bag, 0)
	lantern := w.ReadObject(w.RealObject(3022))
	w.ObjToObj(lantern, bag)

	w.ExtractObj(bag)
	assert.False(t, w.Objs.Valid(bag))
	assert.False(t, w.Objs.Valid(lantern))
	assert.Empty(t, w.Room(0).Contents)
	assert.Equal(t, 0, w.ObjProtos[w.RealObject(3022)].Count)
}

func TestEquipChar_SlotTaken(t *testing.T) {
	w := newKeep(t)
	bob := addPlayer(w, "Bob", 0)
	a := w.ReadObject(w.RealObject(3020))
	b := w.ReadObject(w.RealObject(3020))
	assert.True(t, w.EquipChar(a, bob, world.WearWield))
	assert.False(t, w.EquipChar(b, bob, world.WearWield))
	assert.Equal(t, world.LocNowhere, w.Obj(b).Loc.Kind)
}

func TestExtractChar_Deferred(t *testing.T) {
	w := newKeep(t)
	w.ResetZone(0)
	temple := w.RealRoom(3001)
	guard := w.Room(temple).People[0]
	bob := addPlayer(w, "Bob", temple)
	w.Ch(bob).Fighting = guard
	w.Ch(guard).Fighting = bob

	w.ExtractChar(guard)
	w.ExtractChar(guard)
	assert.True(t, w.PendingExtraction(guard))
	assert.True(t, w.Chars.Valid(guard), "still resolvable until the sweep")
	assert.Contains(t, w.Room(temple).People, guard)

	var before, detached int
	n := w.ExtractPendingChars(world.ExtractHooks{
		Before:   func(world.CharID) { before++ },
		Detached: func(world.CharID) { detached++ },
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, before)
	assert.Equal(t, 1, detached)

	assert.False(t, w.Chars.Valid(guard))
	assert.Equal(t, []world.CharID{bob}, w.Room(temple).People)
	assert.NotContains(t, w.CharList, guard)
	assert.True(t, w.Ch(bob).Fighting.IsZero())
	assert.Len(t, w.Room(temple).Contents, 2, "sword and bag dropped")
	assert.Equal(t, 0, w.MobProtos[0].Count)

	assert.Zero(t, w.ExtractPendingChars(world.ExtractHooks{}))
}

func TestExtractChar_PlayerWithDescriptorSurvives(t *testing.T) {
	w := newKeep(t)
	bob := addPlayer(w, "Bob", 0)
	d := w.AddDescriptor(world.Descriptor{State: world.ConPlaying, Character: bob})
	w.Ch(bob).Desc = d

	w.ExtractChar(bob)
	w.ExtractPendingChars(world.ExtractHooks{})

	require.True(t, w.Chars.Valid(bob))
	assert.Equal(t, world.Nowhere, w.Ch(bob).InRoom)
	assert.NotContains(t, w.CharList, bob)
	assert.False(t, w.PendingExtraction(bob))

	w.FreeChar(bob)
	assert.False(t, w.Chars.Valid(bob))
}

func TestAddFollower_Loops(t *testing.T) {
	w := newKeep(t)
	a := addPlayer(w, "Alice", 0)
	b := addPlayer(w, "Bob", 0)
	c := addPlayer(w, "Carol", 0)

	assert.ErrorIs(t, w.AddFollower(a, a), world.ErrSelfFollow)
	require.NoError(t, w.AddFollower(b, a))
	require.NoError(t, w.AddFollower(c, b))
	assert.ErrorIs(t, w.AddFollower(a, c), world.ErrFollowLoop)
	assert.ErrorIs(t, w.AddFollower(b, c), world.ErrAlreadyLeader)

	var stopped []world.CharID
	w.OnStopFollow = func(f, _ world.CharID) { stopped = append(stopped, f) }
	w.DieFollower(b)
	assert.ElementsMatch(t, []world.CharID{b, c}, stopped)
	assert.Empty(t, w.Ch(a).Followers)
	assert.True(t, w.Ch(c).Master.IsZero())
}

func TestAffects(t *testing.T) {
	w := newKeep(t)
	bob := addPlayer(w, "Bob", 0)
	w.AffectToChar(bob, world.Affect{Type: "bless", Duration: 1, Modifier: 2, Location: world.ApplyHitroll})
	w.AffectToChar(bob, world.Affect{Type: "invisibility", Duration: -1, Bits: world.AffInvisible})

	assert.Equal(t, 2, w.Ch(bob).Points.Hitroll)
	assert.True(t, w.Ch(bob).AffFlags.Has(world.AffInvisible))
	assert.True(t, w.AffectedBy(bob, "bless"))

	var worn []string
	for range 3 {
		w.AffectUpdate(func(_ world.CharID, af world.Affect) { worn = append(worn, af.Type) })
	}
	assert.Equal(t, []string{"bless"}, worn)
	assert.Equal(t, 0, w.Ch(bob).Points.Hitroll)
	assert.True(t, w.Ch(bob).AffFlags.Has(world.AffInvisible), "permanent affects stay")

	w.AffectFromChar(bob, "invisibility")
	assert.False(t, w.Ch(bob).AffFlags.Has(world.AffInvisible))
}

func TestVisibility(t *testing.T) {
	w := newKeep(t)
	a := addPlayer(w, "Alice", 0)
	b := addPlayer(w, "Bob", 0)
	assert.Equal(t, "Bob", w.Pers(b, a))

	w.Ch(b).AffFlags.Set(world.AffInvisible)
	assert.False(t, w.CanSee(a, b))
	assert.Equal(t, "someone", w.Pers(b, a))
	w.Ch(a).AffFlags.Set(world.AffDetectInvis)
	assert.True(t, w.CanSee(a, b))

	w.Ch(b).Player.InvisLevel = 31
	assert.False(t, w.CanSee(a, b))
	w.Ch(a).Level = 34
	assert.True(t, w.CanSee(a, b))
	assert.True(t, w.CanSee(b, b))
}

func TestGetCharRoomVis_Numbered(t *testing.T) {
	w := newKeep(t)
	temple := w.RealRoom(3001)
	w.ResetZone(0)
	w.MobProtos[0].Count = 0
	w.ResetZone(0)
	viewer := addPlayer(w, "Alice", temple)

	first, ok := w.GetCharRoomVis(viewer, "guard")
	require.True(t, ok)
	second, ok := w.GetCharRoomVis(viewer, "2.guard")
	require.True(t, ok)
	assert.NotEqual(t, first, second)

	_, ok = w.GetCharRoomVis(viewer, "3.guard")
	assert.False(t, ok)
	self, ok := w.GetCharRoomVis(viewer, "self")
	assert.True(t, ok)
	assert.Equal(t, viewer, self)
}

func TestDescriptorWrite_Overflow(t *testing.T) {
	var d world.Descriptor
	chunk := string(make([]byte, 1000))
	for range 40 {
		d.Write(chunk)
	}
	assert.True(t, d.Overflow)
	assert.LessOrEqual(t, len(d.Output), world.LargeBufSize)
	assert.Contains(t, string(d.Output), "**OVERFLOW**")

	n := len(d.Output)
	d.Write("more")
	assert.Equal(t, n, len(d.Output))
}

func TestDescriptorQueue(t *testing.T) {
	var d world.Descriptor
	d.Queue("look", false)
	d.QueueFront([]string{"n", "e"}, true)

	l, ok := d.Dequeue()
	require.True(t, ok)
	assert.Equal(t, world.InputLine{Text: "n", Aliased: true}, l)
	l, _ = d.Dequeue()
	assert.Equal(t, "e", l.Text)
	l, _ = d.Dequeue()
	assert.Equal(t, "look", l.Text)
	_, ok = d.Dequeue()
	assert.False(t, ok)
}

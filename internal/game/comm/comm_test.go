package comm_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

type fixture struct {
	w    *world.World
	logs *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	w := world.New(nil, zap.New(core))
	w.Rooms = make([]world.Room, 2)
	w.Rooms[1].Sector = world.SectField
	return &fixture{w: w, logs: logs}
}

func (f *fixture) connect(name string, sex world.Sex, r world.Rnum) world.CharID {
	d := f.w.AddDescriptor(world.Descriptor{State: world.ConPlaying})
	c := world.NewPlayer(name)
	c.Sex = sex
	c.Desc = d
	id := f.w.AddCharacter(c)
	f.w.Desc(d).Character = id
	f.w.CharToRoom(id, r)
	return id
}

// drain returns and clears ch's pending output.
func (f *fixture) drain(ch world.CharID) string {
	d := f.w.Desc(f.w.Ch(ch).Desc)
	out := string(d.Output)
	d.Output = nil
	return out
}

func TestAct_HitsScenario(t *testing.T) {
	f := newFixture(t)
	bob := f.connect("Bob", world.SexMale, 0)
	alice := f.connect("Alice", world.SexFemale, 0)
	carol := f.connect("Carol", world.SexFemale, 0)

	comm.Act(f.w, "$n hits $N!", false, bob, world.ObjID{}, alice, comm.ToRoom)
	assert.Empty(t, f.drain(bob))
	assert.Equal(t, "Bob hits Alice!\r\n", f.drain(alice))
	assert.Equal(t, "Bob hits Alice!\r\n", f.drain(carol))

	comm.Act(f.w, "$n hits $N!", false, bob, world.ObjID{}, alice, comm.ToNotVict)
	assert.Empty(t, f.drain(bob))
	assert.Empty(t, f.drain(alice))
	assert.Equal(t, "Bob hits Alice!\r\n", f.drain(carol))

	comm.Act(f.w, "You hit $N.", false, bob, world.ObjID{}, alice, comm.ToChar)
	assert.Equal(t, "You hit Alice.\r\n", f.drain(bob))

	comm.Act(f.w, "$n hits you.", false, bob, world.ObjID{}, alice, comm.ToVict)
	assert.Equal(t, "Bob hits you.\r\n", f.drain(alice))
	assert.Empty(t, f.drain(carol))
}

func TestAct_SleepingAndWriting(t *testing.T) {
	f := newFixture(t)
	bob := f.connect("Bob", world.SexMale, 0)
	sleeper := f.connect("Sam", world.SexMale, 0)
	writer := f.connect("Wendy", world.SexFemale, 0)
	f.w.Ch(sleeper).Position = world.PosSleeping
	f.w.Ch(writer).PlrFlags.Set(world.PlrWriting)

	comm.Act(f.w, "$n sneezes.", false, bob, world.ObjID{}, nil, comm.ToRoom)
	assert.Empty(t, f.drain(sleeper))
	assert.Empty(t, f.drain(writer))

	comm.Act(f.w, "$n shouts.", false, bob, world.ObjID{}, nil, comm.ToRoom|comm.ToSleep)
	assert.Equal(t, "Bob shouts.\r\n", f.drain(sleeper))
	assert.Empty(t, f.drain(writer))
}

func TestAct_HideInvisible(t *testing.T) {
	f := newFixture(t)
	bob := f.connect("Bob", world.SexMale, 0)
	alice := f.connect("Alice", world.SexFemale, 0)
	f.w.Ch(bob).AffFlags.Set(world.AffInvisible)

	comm.Act(f.w, "$n waves.", true, bob, world.ObjID{}, nil, comm.ToRoom)
	assert.Empty(t, f.drain(alice))

	comm.Act(f.w, "$n waves.", false, bob, world.ObjID{}, nil, comm.ToRoom)
	assert.Equal(t, "Someone waves.\r\n", f.drain(alice))
}

func TestFormatAct_Tokens(t *testing.T) {
	f := newFixture(t)
	bob := f.connect("Bob", world.SexMale, 0)
	alice := f.connect("Alice", world.SexFemale, 0)
	sword := f.w.CreateObject(world.Object{Name: "sword long", ShortDescr: "a long sword"})
	apple := f.w.CreateObject(world.Object{Name: "apple red", ShortDescr: "a red apple"})

	tests := []struct {
		tmpl string
		vict any
		want string
	}{
		{"$n gives $s $o to $N.", alice, "Bob gives his sword to Alice."},
		{"$e looks at $M and $S eyes; $E blinks.", alice, "He looks at her and her eyes; she blinks."},
		{"$n wields $p.", nil, "Bob wields a long sword."},
		{"$n eats $A $O ($P).", apple, "Bob eats an apple (a red apple)."},
		{"$n says, '$T'", "hello there", "Bob says, 'hello there'"},
		{"$n opens the $F.", "gate door", "Bob opens the gate."},
		{"it costs 5$$.", nil, "It costs 5$."},
		{"$n hums$u.", nil, "Bob Hums."},
		{"oh $Uwell.", nil, "Oh Well."},
		{"$N is missing.", nil, "<NULL> is missing."},
	}
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			assert.Equal(t, tt.want, comm.FormatAct(f.w, tt.tmpl, bob, sword, tt.vict, alice))
		})
	}
}

func TestFormatAct_IllegalCodeLogs(t *testing.T) {
	f := newFixture(t)
	bob := f.connect("Bob", world.SexMale, 0)

	assert.Equal(t, "Bob  waits.", comm.FormatAct(f.w, "$n $q waits.", bob, world.ObjID{}, nil, bob))
	assert.Equal(t, 1, f.logs.FilterMessage("SYSERR: Illegal $-code to act()").Len())

	assert.Equal(t, "Trailing ", comm.FormatAct(f.w, "trailing $", bob, world.ObjID{}, nil, bob))
	assert.Equal(t, 2, f.logs.FilterMessage("SYSERR: Illegal $-code to act()").Len())
}

func TestAct_Property_ActorNeverHearsRoomMessage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := &fixture{w: world.New(nil, zap.NewNop())}
		f.w.Rooms = make([]world.Room, 1)
		n := rapid.IntRange(2, 8).Draw(rt, "people")
		ids := make([]world.CharID, n)
		for i := range n {
			ids[i] = f.connect(fmt.Sprintf("P%d", i), world.SexNeutral, 0)
		}
		actor := ids[rapid.IntRange(0, n-1).Draw(rt, "actor")]
		vict := ids[rapid.IntRange(0, n-1).Draw(rt, "vict")]
		notVict := rapid.Bool().Draw(rt, "notvict")
		to := comm.ToRoom
		if notVict {
			to = comm.ToNotVict
		}

		comm.Act(f.w, "$n pokes $N.", false, actor, world.ObjID{}, vict, to)
		for _, id := range ids {
			got := f.drain(id)
			want := id != actor && !(notVict && id == vict)
			if want != (got != "") {
				rt.Fatalf("recipient %v: got %q, want delivery=%v", id, got, want)
			}
		}
	})
}

func TestSendToOutdoor(t *testing.T) {
	f := newFixture(t)
	in := f.connect("Inez", world.SexFemale, 0)
	out := f.connect("Otto", world.SexMale, 1)
	napper := f.connect("Ned", world.SexMale, 1)
	f.w.Ch(napper).Position = world.PosSleeping

	comm.SendToOutdoor(f.w, "The sun rises in the east.\r\n")
	assert.Empty(t, f.drain(in))
	assert.Equal(t, "The sun rises in the east.\r\n", f.drain(out))
	assert.Empty(t, f.drain(napper))

	comm.SendToAll(f.w, "Shutting down.\r\n")
	for _, id := range []world.CharID{in, out, napper} {
		assert.Equal(t, "Shutting down.\r\n", f.drain(id))
	}

	comm.SendToRoom(f.w, 1, "Thunder.\r\n")
	assert.Empty(t, f.drain(in))
	assert.Equal(t, "Thunder.\r\n", f.drain(napper))
}

func TestPaginate(t *testing.T) {
	var lines []string
	for i := range 50 {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	pages := comm.Paginate(strings.Join(lines, "\r\n")+"\r\n", 22, 80)
	require.Len(t, pages, 3)
	assert.True(t, strings.HasPrefix(pages[0], "line 0\r\n"))
	assert.True(t, strings.HasPrefix(pages[1], "line 22\r\n"))
	assert.Equal(t, 22, strings.Count(pages[0], "\r\n"))
	assert.Equal(t, 6, strings.Count(pages[2], "\r\n"))

	assert.Nil(t, comm.Paginate("", 22, 80))
}

func TestPaginate_WrapsLongLines(t *testing.T) {
	long := strings.Repeat("word ", 40)
	pages := comm.Paginate(long, 22, 20)
	require.Len(t, pages, 1)
	for _, l := range strings.Split(strings.TrimRight(pages[0], "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(strings.TrimRight(l, " ")), 20)
	}
}

func TestShowString(t *testing.T) {
	var d world.Descriptor
	var b strings.Builder
	for i := range 60 {
		fmt.Fprintf(&b, "row %d\r\n", i)
	}
	comm.PageString(&d, b.String(), 22, 80)
	require.NotNil(t, d.Pager)
	assert.Contains(t, string(d.Output), "row 0\r\n")
	assert.Equal(t, 1, d.Pager.Page)
	assert.Contains(t, comm.PagerPrompt(&d), "(1/3)")

	d.Output = nil
	comm.ShowString(&d, "x")
	assert.Equal(t, "Valid commands while paging are RETURN, Q, R, B, or a numeric value.\r\n", string(d.Output))

	d.Output = nil
	comm.ShowString(&d, "r")
	assert.Contains(t, string(d.Output), "row 0\r\n")

	d.Output = nil
	comm.ShowString(&d, "3")
	assert.Contains(t, string(d.Output), "row 44\r\n")
	assert.Nil(t, d.Pager, "last page ends paging")

	comm.PageString(&d, b.String(), 22, 80)
	comm.ShowString(&d, "q")
	assert.Nil(t, d.Pager)
}

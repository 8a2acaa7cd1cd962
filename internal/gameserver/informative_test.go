package gameserver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

func TestLook_Room(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()

	out := h.do(mort, "look")
	assert.Contains(t, out, "The Temple")
	assert.Contains(t, out, "A quiet stone temple.")
	assert.Contains(t, out, "A loaf of bread lies here.")
	assert.Contains(t, out, "Zara")
	assert.NotContains(t, out, "Bob")
}

func TestLook_ExtraDescsAndDirections(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()

	assert.Contains(t, h.do(mort, "look altar"), "A plain stone altar.")
	assert.Contains(t, h.do(mort, "look north"), "You see nothing special.")
	assert.Contains(t, h.do(mort, "look west"), "Nothing special there...")
	assert.Contains(t, h.do(mort, "look unicorn"), "You do not see that here.")

	h.do(mort, "north")
	assert.Contains(t, h.do(mort, "look east"), "The gate is closed.")
}

func TestLook_AtCharacter(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()
	bob := h.g.world.Ch(h.char("Bob"))
	bob.Points.Hit = bob.Points.MaxHit

	out := h.do(imm, "look at bob")
	assert.Contains(t, out, "You see nothing special about him.")
	assert.Contains(t, out, "Bob is in excellent condition.")
	assert.Contains(t, mort.Drain(), "Zara looks at you.")

	assert.Contains(t, h.do(imm, "diagnose bob"), "Bob is in excellent condition.")
	bob.Points.Hit = bob.Points.MaxHit / 5
	assert.Contains(t, h.do(imm, "diagnose bob"), "Bob looks pretty hurt.")
	assert.Contains(t, h.do(imm, "diagnose"), "Diagnose who?")
}

func TestBriefAndAutoExits(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()

	assert.Contains(t, h.do(mort, "brief"), "Brief mode on.")
	out := h.do(mort, "north")
	assert.Contains(t, out, "The Market Square")
	assert.NotContains(t, out, "Stalls line the square.")
	assert.Contains(t, h.do(mort, "look"), "Stalls line the square.")
	assert.Contains(t, h.do(mort, "brief"), "Brief mode off.")

	h.do(mort, "south")
	assert.Contains(t, h.do(mort, "autoexit"), "Autoexits enabled.")
	assert.Contains(t, h.do(mort, "look"), "[ Exits: n s u ]")
}

func TestExits(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()

	out := h.do(mort, "exits")
	assert.Contains(t, out, "Obvious exits:")
	assert.Contains(t, out, "north - The Market Square")
	assert.Contains(t, out, "up    - The Board Room")
	assert.Contains(t, h.do(imm, "exits"), "north - [ 3002] The Market Square")

	h.moveTo(h.char("Bob"), 3098)
	assert.Contains(t, h.do(mort, "exits"), " None.")
}

func TestScoreAndGold(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	h.g.world.Ch(h.char("Bob")).Points.Gold = 0

	out := h.do(mort, "score")
	assert.Contains(t, out, "This ranks you as Bob")
	assert.Contains(t, out, "(level 1)")
	assert.Contains(t, out, "You are standing.")
	assert.Contains(t, out, "and have 0 gold coins.")
	assert.Contains(t, h.do(mort, "gold"), "You're broke!")

	h.g.world.Ch(h.char("Bob")).Points.Gold = 1
	assert.Contains(t, h.do(mort, "gold"), "You have one miserable little gold coin.")
}

func TestTitle(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	assert.Contains(t, h.do(mort, "title the Brave"), "Okay, you're now Bob the Brave.")
	assert.Contains(t, h.do(mort, "title (bad)"), "Titles can't contain the ( or ) characters.")
	assert.Equal(t, "the Brave", h.g.world.Ch(h.char("Bob")).Title)
}

func TestWho(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()

	out := h.do(mort, "who")
	assert.Contains(t, out, "Players")
	assert.Contains(t, out, "[34 Wa] Zara")
	assert.Contains(t, out, "[ 1 Wa] Bob")
	assert.Contains(t, out, "2 characters displayed.")
	assert.Contains(t, h.do(mort, "who zar"), "One lonely character displayed.")
	assert.Contains(t, h.do(mort, "who xyz"), "Nobody at all!")

	h.do(mort, "notell")
	assert.Contains(t, h.do(mort, "who bob"), "(notell)")
}

func TestWhere(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()
	h.moveTo(h.char("Zara"), 3004)

	out := h.do(mort, "where")
	assert.Contains(t, out, "Players in your Zone")
	assert.Contains(t, out, "The Post Office")
	assert.Contains(t, h.do(mort, "where zara"), "The Post Office")
	assert.Contains(t, h.do(mort, "where nobody"), "No-one around by that name.")

	out = h.do(imm, "where bread")
	assert.Contains(t, out, "a loaf of bread")
	assert.Contains(t, out, "[ 3001] The Temple")
	assert.Contains(t, h.do(imm, "where postmaster"), "the Postmaster")
	assert.Contains(t, h.do(imm, "where unicorn"), "Couldn't find any such thing.")
}

func TestTimeAndWeather(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	w := h.g.world
	w.Time = world.MudTime{Hours: 13, Day: 0, Month: 0, Year: 650}

	out := h.do(mort, "time")
	assert.Contains(t, out, "It is 1 o'clock pm, on the Day of the Bull.")
	assert.Contains(t, out, "The 1st Day of the Month of Winter, Year 650.")

	assert.Contains(t, h.do(mort, "weather"), "You have no feeling about the weather at all.")
	h.moveTo(h.char("Bob"), 3003)
	assert.Contains(t, h.do(mort, "weather"), "The sky is")
}

func TestCommandLists(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()

	out := h.do(mort, "commands")
	assert.Contains(t, out, "The following commands are available to you:")
	assert.Contains(t, out, "look")
	assert.NotContains(t, out, "wiznet")

	assert.Contains(t, h.do(mort, "socials"), "smile")
	out = h.do(imm, "wizhelp")
	assert.Contains(t, out, "The following privileged commands are available to you:")
	assert.Contains(t, out, "wiznet")
	assert.Contains(t, h.do(mort, "commands zara"), "You can't see the commands of people above your level.")
}

func TestFixedTexts(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	assert.Contains(t, h.do(mort, "version"), "CircleMUD, version 3.00")
	assert.Contains(t, h.do(mort, "whoami"), "Bob")
	assert.Contains(t, h.do(mort, "credits"), "Credits.")
	assert.Contains(t, h.do(mort, "news"), "No news.")
}

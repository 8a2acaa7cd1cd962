package gameserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_WriteReadRemove(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()
	h.do(mort, "up")
	h.do(imm, "up")

	look := h.do(mort, "look board")
	assert.Contains(t, look, "This is a bulletin board.")
	assert.Contains(t, look, "The board is empty.")

	assert.Contains(t, h.do(mort, "write"), "We must have a headline!")
	assert.Contains(t, h.do(mort, "write Lost sword"), "Write your message.  Terminate with a @ on a new line.")
	assert.Contains(t, imm.Drain(), "Bob starts to write a message.")
	h.do(mort, "Has anyone seen it?")
	h.do(mort, "It was long.")
	h.do(mort, "@")

	msgs, err := h.store.ListBoard("mort")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Heading, "(Bob)")
	assert.Contains(t, msgs[0].Heading, ":: Lost sword")
	assert.Equal(t, "Has anyone seen it?\r\nIt was long.\r\n", msgs[0].Body)

	look = h.do(imm, "look board")
	assert.Contains(t, look, "There are 1 messages on the board.")
	assert.Contains(t, look, " 1 : ")

	read := h.do(imm, "read 1")
	assert.Contains(t, read, "Message 1 : ")
	assert.Contains(t, read, "It was long.")
	assert.Contains(t, h.do(imm, "read 7"), "That message exists only in your imagination.")

	h.do(imm, "write Rules")
	h.do(imm, "Be nice.")
	h.do(imm, "@")
	assert.Contains(t, h.do(mort, "remove 2"), "You are not holy enough to remove other people's messages.")
	assert.Contains(t, h.do(mort, "remove 1"), "Message removed.")
	assert.Contains(t, imm.Drain(), "Bob just removed message 1.")

	msgs, err = h.store.ListBoard("mort")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Heading, "(Zara)")
}

func TestBoard_AbortedPostIsDropped(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	h.do(mort, "up")

	h.do(mort, "write Draft")
	h.do(mort, "some text")
	assert.Contains(t, h.do(mort, "/c"), "Text cleared.")
	assert.Contains(t, h.do(mort, "/a"), "Edit aborted.")

	msgs, err := h.store.ListBoard("mort")
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.Contains(t, h.do(mort, "look"), "The Board Room")
}

func TestBoard_OutsideTheRoomIsNotHere(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	assert.Contains(t, h.do(mort, "write Hello"), "Sorry, but you cannot do that here!")
}

func TestMail_SendCheckReceive(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()
	w := h.g.world
	bob := w.Ch(h.char("Bob"))
	h.moveTo(h.char("Bob"), 3004)

	assert.Contains(t, h.do(mort, "mail zara"), "Sorry, you have to be level 2 to send mail!")
	bob.Level = 2
	bob.Points.Gold = 10
	assert.Contains(t, h.do(mort, "mail zara"), "...which I see you can't afford.")
	bob.Points.Gold = 200
	assert.Contains(t, h.do(mort, "mail"), "You need to specify an addressee!")
	assert.Contains(t, h.do(mort, "mail nobody"), "No one by that name is registered here!")

	out := h.do(mort, "mail zara")
	assert.Contains(t, out, "I'll take 150 coins for the stamp.")
	assert.Equal(t, 50, bob.Points.Gold)
	h.do(mort, "Dear Zara, the gate sticks.")
	assert.Contains(t, h.do(mort, "@"), "Message sent!")

	h.moveTo(h.char("Zara"), 3004)
	assert.Contains(t, h.do(imm, "check"), "You have mail waiting.")
	assert.Contains(t, h.do(imm, "receive"), "The Postmaster gives you a piece of mail.")
	assert.Len(t, w.Ch(h.char("Zara")).Carrying, 1)

	letter := h.do(imm, "read mail")
	assert.Contains(t, letter, "Midgaard Mail System")
	assert.Contains(t, letter, "From: Bob")
	assert.Contains(t, letter, "Dear Zara, the gate sticks.")

	assert.Contains(t, h.do(imm, "check"), "Sorry, you don't have any mail waiting.")
}

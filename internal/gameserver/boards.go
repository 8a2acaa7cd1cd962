package gameserver

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/storage"
)

const (
	maxBoardMessageLength = 4096
	maxBoardHeading       = 80
)

// boardInfo is the access policy of one bulletin board object.
type boardInfo struct {
	name   string
	read   int
	write  int
	remove int
}

var boards = map[world.Vnum]boardInfo{
	3099: {"mort", 0, 0, world.LvlGod},
	3098: {"immort", world.LvlImmort, world.LvlImmort, world.LvlGrGod},
	3097: {"freeze", world.LvlImmort, world.LvlFreeze, world.LvlImpl},
	3096: {"social", 0, 0, world.LvlImmort},
}

// boardFor returns the policy for a board object. Boards not in the table
// are open to everyone and named after their vnum.
func boardFor(vnum world.Vnum) boardInfo {
	if b, ok := boards[vnum]; ok {
		return b
	}
	return boardInfo{name: strconv.Itoa(int(vnum)), remove: world.LvlGod}
}

// specBulletinBoard implements read, write, remove and look for a board
// object.
func specBulletinBoard(g *Game, ch world.CharID, self SpecOwner, cmd int, arg string) bool {
	w := g.world
	c, ok := w.Chars.Lookup(ch)
	if !ok || c.Desc.IsZero() || self.Obj.IsZero() {
		return false
	}
	board := boardFor(w.Obj(self.Obj).Vnum)
	switch {
	case g.cmdIs(cmd, "write"):
		return g.boardWrite(ch, board, arg)
	case g.cmdIs(cmd, "look"), g.cmdIs(cmd, "examine"):
		return g.boardShow(ch, self.Obj, board, arg)
	case g.cmdIs(cmd, "read"):
		return g.boardRead(ch, self.Obj, board, arg)
	case g.cmdIs(cmd, "remove"):
		return g.boardRemove(ch, board, arg)
	}
	return false
}

func (g *Game) boardList(ch world.CharID, board boardInfo) ([]storage.BoardMessage, bool) {
	msgs, err := g.stores.Boards.ListBoard(board.name)
	if err != nil {
		g.logger.Error("listing board", zap.String("board", board.name), zap.Error(err))
		comm.SendToChar(g.world, ch, "Sorry, the board isn't working.\r\n")
		return nil, false
	}
	return msgs, true
}

func (g *Game) boardWrite(ch world.CharID, board boardInfo, arg string) bool {
	w := g.world
	c := w.Ch(ch)
	if c.Level < board.write {
		comm.SendToChar(w, ch, "You are not holy enough to write on this board.\r\n")
		return true
	}
	msgs, ok := g.boardList(ch, board)
	if !ok {
		return true
	}
	if len(msgs) >= storage.MaxBoardMessages {
		comm.SendToChar(w, ch, "The board is full.\r\n")
		return true
	}
	heading := command.DeleteDoubleDollar(strings.TrimLeft(arg, " \t"))
	if len(heading) > maxBoardHeading {
		heading = heading[:maxBoardHeading]
	}
	if heading == "" {
		comm.SendToChar(w, ch, "We must have a headline!\r\n")
		return true
	}
	heading = fmt.Sprintf("%-10s %-12s :: %s", ctime(g.now()), "("+c.Name+")", heading)

	comm.SendToChar(w, ch, "Write your message.  Terminate with a @ on a new line.\r\n\r\n")
	comm.Act(w, "$n starts to write a message.", true, ch, world.ObjID{}, nil, comm.ToRoom)
	g.startEdit(c.Desc, world.EditState{Kind: world.EditBoard, Board: board.name, Title: heading}, maxBoardMessageLength)
	return true
}

func (g *Game) boardShow(ch world.CharID, o world.ObjID, board boardInfo, arg string) bool {
	w := g.world
	c := w.Ch(ch)
	name, _ := command.OneArgument(arg)
	if name == "" || !command.IsName(name, w.Obj(o).Name) {
		return false
	}
	if c.Level < board.read {
		comm.SendToChar(w, ch, "You try but fail to understand the holy words.\r\n")
		return true
	}
	comm.Act(w, "$n studies the board.", true, ch, world.ObjID{}, nil, comm.ToRoom)

	msgs, ok := g.boardList(ch, board)
	if !ok {
		return true
	}
	const usage = "This is a bulletin board.  Usage: READ/REMOVE <messg #>, WRITE <header>.\r\n"
	if len(msgs) == 0 {
		comm.SendToChar(w, ch, usage+"The board is empty.\r\n")
		return true
	}
	var b strings.Builder
	b.WriteString(usage)
	fmt.Fprintf(&b, "There are %d messages on the board.\r\n", len(msgs))
	for i, m := range msgs {
		fmt.Fprintf(&b, "%2d : %s\r\n", i+1, m.Heading)
	}
	comm.PageString(w.Desc(c.Desc), b.String(), g.pageLength(), g.pageWidth())
	return true
}

// boardMessageNumber parses a message number argument. Anything else,
// such as "2.mail", is left to the regular command.
func boardMessageNumber(arg string) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

func (g *Game) boardRead(ch world.CharID, o world.ObjID, board boardInfo, arg string) bool {
	w := g.world
	c := w.Ch(ch)
	number, _ := command.OneArgument(arg)
	if number == "" {
		return false
	}
	if command.IsName(number, w.Obj(o).Name) {
		return g.boardShow(ch, o, board, arg)
	}
	n, ok := boardMessageNumber(number)
	if !ok {
		return false
	}
	if c.Level < board.read {
		comm.SendToChar(w, ch, "You try but fail to understand the holy words.\r\n")
		return true
	}
	msgs, ok := g.boardList(ch, board)
	if !ok {
		return true
	}
	switch {
	case len(msgs) == 0:
		comm.SendToChar(w, ch, "The board is empty!\r\n")
	case n < 1 || n > len(msgs):
		comm.SendToChar(w, ch, "That message exists only in your imagination.\r\n")
	case msgs[n-1].Body == "":
		comm.SendToChar(w, ch, "That message seems to be empty.\r\n")
	default:
		m := msgs[n-1]
		comm.PageString(w.Desc(c.Desc), fmt.Sprintf("Message %d : %s\r\n\r\n%s\r\n", n, m.Heading, m.Body),
			g.pageLength(), g.pageWidth())
	}
	return true
}

func (g *Game) boardRemove(ch world.CharID, board boardInfo, arg string) bool {
	w := g.world
	c := w.Ch(ch)
	number, _ := command.OneArgument(arg)
	n, ok := boardMessageNumber(number)
	if !ok {
		return false
	}
	msgs, ok := g.boardList(ch, board)
	if !ok {
		return true
	}
	switch {
	case len(msgs) == 0:
		comm.SendToChar(w, ch, "The board is empty!\r\n")
		return true
	case n < 1 || n > len(msgs):
		comm.SendToChar(w, ch, "That message exists only in your imagination.\r\n")
		return true
	}
	m := msgs[n-1]
	if c.Level < board.remove && !strings.Contains(m.Heading, "("+c.Name+")") {
		comm.SendToChar(w, ch, "You are not holy enough to remove other people's messages.\r\n")
		return true
	}
	if c.Level < m.Level {
		comm.SendToChar(w, ch, "You can't remove a message holier than yourself.\r\n")
		return true
	}
	if err := g.stores.Boards.RemovePost(board.name, n); err != nil {
		g.logger.Error("removing board message", zap.String("board", board.name), zap.Int("message", n), zap.Error(err))
		comm.SendToChar(w, ch, "That message is majorly screwed up.\r\n")
		return true
	}
	comm.SendToChar(w, ch, "Message removed.\r\n")
	comm.Act(w, fmt.Sprintf("$n just removed message %d.", n), false, ch, world.ObjID{}, nil, comm.ToRoom)
	return true
}

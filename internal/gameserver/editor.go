package gameserver

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/storage"
)

// startEdit redirects the descriptor's input into a fresh text buffer.
func (g *Game) startEdit(id world.DescID, es world.EditState, maxLen int) {
	w := g.world
	d := w.Desc(id)
	es.Text = w.NewText("", maxLen)
	d.Edit = &es
	if c, ok := w.Chars.Lookup(d.Character); ok && !c.IsNPC() {
		c.PlrFlags.Set(world.PlrWriting)
	}
}

// stringAdd feeds one input line to the descriptor's edit buffer. A line
// starting with '@' finishes the edit.
//
// Precondition: d.Edit is not nil.
func (g *Game) stringAdd(id world.DescID, line string) {
	w := g.world
	d := w.Desc(id)
	t := w.Txt(d.Edit.Text)

	switch strings.TrimSpace(line) {
	case "/c":
		t.Clear()
		d.Write("Text cleared.\r\n")
		return
	case "/s":
		g.finishEdit(id, false)
		return
	case "/a":
		d.Write("Edit aborted.\r\n")
		g.finishEdit(id, true)
		return
	}

	line = command.DeleteDoubleDollar(line)
	done := strings.HasPrefix(line, "@")
	if done {
		line = ""
	}
	line = strings.ReplaceAll(line, "~", " ")

	if line != "" || !done {
		if !t.Append(line) {
			if t.Body == "" {
				d.Write("String too long - Truncated.\r\n")
				if max := t.MaxLen - 2; max > 0 && len(line) > max {
					t.Append(line[:max])
				}
			} else {
				d.Write("String too long.  Last line skipped.\r\n")
			}
			done = true
		}
	}
	if done {
		g.finishEdit(id, false)
	}
}

// finishEdit closes the edit and, unless aborted, hands the text to its
// destination.
func (g *Game) finishEdit(id world.DescID, abort bool) {
	w := g.world
	d := w.Desc(id)
	es := d.Edit
	body := w.Texts.Take(es.Text).Body
	d.Edit = nil

	c, hasChar := w.Chars.Lookup(d.Character)
	if hasChar && !c.IsNPC() {
		c.PlrFlags.Clear(world.PlrWriting | world.PlrMailing)
	}

	switch es.Kind {
	case world.EditDescription:
		if hasChar && !abort {
			c.Description = body
		}
		if d.State == world.ConExtraDesc {
			d.Write(mainMenu)
			d.State = world.ConMenu
		}
	case world.EditBoard:
		if abort || !hasChar {
			return
		}
		msg := storage.BoardMessage{
			Author:  c.Name,
			Level:   c.Level,
			Heading: es.Title,
			Body:    body,
			Posted:  g.now(),
		}
		if err := g.stores.Boards.Post(es.Board, msg); err != nil {
			if errors.Is(err, storage.ErrBoardFull) {
				d.Write("The board is full.\r\n")
				return
			}
			g.logger.Error("posting to board", zap.String("board", es.Board), zap.Error(err))
			d.Write("The board is malfunctioning - sorry.\r\n")
		}
	case world.EditMail:
		if abort || !hasChar {
			return
		}
		if err := g.stores.Mail.SendMail(es.MailTo, c.IDNum, body); err != nil {
			g.logger.Error("storing mail", zap.Int64("to", es.MailTo), zap.Error(err))
			d.Write("Sorry, the mail system is having technical difficulties.\r\n")
			return
		}
		d.Write("Message sent!\r\n")
	}
}

// ctime formats t the way message headers show dates.
func ctime(t time.Time) string { return t.Format(time.ANSIC) }

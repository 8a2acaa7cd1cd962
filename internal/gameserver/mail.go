package gameserver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/storage"
)

const (
	minMailLevel = 2
	stampPrice   = 150
	maxMailSize  = 4096
)

// specPostmaster runs the post office: mail, check and receive.
func specPostmaster(g *Game, ch world.CharID, self SpecOwner, cmd int, arg string) bool {
	w := g.world
	c, ok := w.Chars.Lookup(ch)
	if !ok || c.Desc.IsZero() || c.IsNPC() || self.Mob.IsZero() {
		return false
	}
	if !g.cmdIs(cmd, "mail") && !g.cmdIs(cmd, "check") && !g.cmdIs(cmd, "receive") {
		return false
	}
	if g.stores.Mail == nil {
		comm.SendToChar(w, ch, "Sorry, the mail system is having technical difficulties.\r\n")
		return false
	}
	switch {
	case g.cmdIs(cmd, "mail"):
		g.postmasterSend(ch, self.Mob, arg)
	case g.cmdIs(cmd, "check"):
		g.postmasterCheck(ch, self.Mob)
	default:
		g.postmasterReceive(ch, self.Mob)
	}
	return true
}

func (g *Game) mailmanTells(mailman, ch world.CharID, msg string) {
	comm.Act(g.world, msg, false, mailman, world.ObjID{}, ch, comm.ToVict)
}

func (g *Game) postmasterSend(ch, mailman world.CharID, arg string) {
	w := g.world
	c := w.Ch(ch)
	if c.Level < minMailLevel {
		g.mailmanTells(mailman, ch, fmt.Sprintf("$n tells you, 'Sorry, you have to be level %d to send mail!'", minMailLevel))
		return
	}
	name, _ := command.OneArgument(arg)
	if name == "" {
		g.mailmanTells(mailman, ch, "$n tells you, 'You need to specify an addressee!'")
		return
	}
	if c.Points.Gold < stampPrice {
		g.mailmanTells(mailman, ch, fmt.Sprintf("$n tells you, 'A stamp costs %d coins.'\r\n"+
			"$n tells you, '...which I see you can't afford.'", stampPrice))
		return
	}
	rec, err := g.loadPlayer(name)
	if err != nil {
		g.logger.Warn("looking up mail recipient", zap.String("name", name), zap.Error(err))
	}
	if rec == nil || rec.Deleted() {
		g.mailmanTells(mailman, ch, "$n tells you, 'No one by that name is registered here!'")
		return
	}
	comm.Act(w, "$n starts to write some mail.", true, ch, world.ObjID{}, nil, comm.ToRoom)
	g.mailmanTells(mailman, ch, fmt.Sprintf("$n tells you, 'I'll take %d coins for the stamp.'\r\n"+
		"$n tells you, 'Write your message, use @ on a new line when done.'", stampPrice))
	c.Points.Gold -= stampPrice
	c.PlrFlags.Set(world.PlrMailing)
	g.startEdit(c.Desc, world.EditState{Kind: world.EditMail, MailTo: rec.IDNum}, maxMailSize)
}

func (g *Game) hasMail(ch world.CharID) bool {
	has, err := g.stores.Mail.HasMail(g.world.Ch(ch).IDNum)
	if err != nil {
		g.logger.Warn("checking mail", zap.Error(err))
	}
	return err == nil && has
}

func (g *Game) postmasterCheck(ch, mailman world.CharID) {
	if g.hasMail(ch) {
		g.mailmanTells(mailman, ch, "$n tells you, 'You have mail waiting.'")
		return
	}
	g.mailmanTells(mailman, ch, "$n tells you, 'Sorry, you don't have any mail waiting.'")
}

func (g *Game) postmasterReceive(ch, mailman world.CharID) {
	w := g.world
	if !g.hasMail(ch) {
		g.mailmanTells(mailman, ch, "$n tells you, 'Sorry, you don't have any mail waiting.'")
		return
	}
	c := w.Ch(ch)
	letters, err := g.stores.Mail.ReceiveMail(c.IDNum)
	if err != nil {
		g.logger.Error("receiving mail", zap.Int64("idnum", c.IDNum), zap.Error(err))
		letters = []storage.MailMessage{{To: c.IDNum, Sent: g.now(), Body: "Mail system error - please report.  Error #11.\r\n"}}
	}
	for _, m := range letters {
		o := w.CreateObject(world.Object{
			Name:        "mail paper letter",
			ShortDescr:  "a piece of mail",
			Description: "Someone has left a piece of mail here.",
			ActionDescr: g.formatLetter(m),
			Type:        world.ItemNote,
			WearFlags:   world.FlagsOf(world.ItemWearTake, world.ItemWearHold),
			Weight:      1,
			Cost:        30,
			Rent:        10,
		})
		w.ObjToChar(o, ch)
		comm.Act(w, "$n gives you a piece of mail.", false, mailman, world.ObjID{}, ch, comm.ToVict)
		comm.Act(w, "$N gives $n a piece of mail.", false, ch, world.ObjID{}, mailman, comm.ToRoom)
	}
}

func (g *Game) formatLetter(m storage.MailMessage) string {
	from := "Unknown"
	if m.From != 0 {
		from = g.playerName(m.From)
	}
	return fmt.Sprintf(" * * * * Midgaard Mail System * * * *\r\n"+
		"Date: %s\r\n"+
		"  To: %s\r\n"+
		"From: %s\r\n"+
		"\r\n"+
		"%s", ctime(m.Sent), g.playerName(m.To), from, m.Body)
}

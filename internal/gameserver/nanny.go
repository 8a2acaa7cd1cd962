package gameserver

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/auth"
	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/storage"
	"github.com/cory-johannsen/circlemud/internal/textfiles"
)

const mainMenu = "\r\n" +
	"Welcome to CircleMUD!\r\n" +
	"0) Exit from CircleMUD.\r\n" +
	"1) Enter the game.\r\n" +
	"2) Enter description.\r\n" +
	"3) Read the background story.\r\n" +
	"4) Change password.\r\n" +
	"5) Delete this character.\r\n" +
	"\r\n" +
	"   Make your choice: "

const welcomeMessage = "\r\nWelcome to the land of CircleMUD!  May your visit here be... Interesting.\r\n\r\n"

const startMessage = "Welcome.  This is your new CircleMUD character!  You can now earn gold,\r\n" +
	"gain experience, find weapons and equipment, and much more -- while\r\n" +
	"meeting people from around the world!\r\n"

const (
	pressReturn     = "\r\n*** PRESS RETURN: "
	maxPasswordLen  = 10
	minPasswordLen  = 3
	descriptionSize = 240
)

// nanny handles one line from a connection that is not playing.
func (g *Game) nanny(id world.DescID, line string) {
	d := g.world.Desc(id)
	arg := strings.TrimSpace(line)

	switch d.State {
	case world.ConGetName:
		g.nannyGetName(id, arg)
	case world.ConNameConfirm:
		g.nannyNameConfirm(id, arg)
	case world.ConPassword:
		g.nannyPassword(id, arg)
	case world.ConNewPassword, world.ConChpwdGetNew:
		g.nannyNewPassword(id, arg)
	case world.ConConfirmPassword, world.ConChpwdVerify:
		g.nannyConfirmPassword(id, arg)
	case world.ConQuerySex:
		g.nannyQuerySex(id, arg)
	case world.ConQueryClass:
		g.nannyQueryClass(id, arg)
	case world.ConReadMotd:
		d.Write(mainMenu)
		d.State = world.ConMenu
	case world.ConMenu:
		g.nannyMenu(id, arg)
	case world.ConChpwdGetOld:
		g.nannyChpwdGetOld(id, arg)
	case world.ConDeleteConfirm1:
		g.nannyDeleteConfirm1(id, arg)
	case world.ConDeleteConfirm2:
		g.nannyDeleteConfirm2(id, arg)
	case world.ConClose:
	default:
		name := ""
		if c, ok := g.world.Chars.Lookup(d.Character); ok {
			name = c.Name
		}
		g.logger.Error(fmt.Sprintf("SYSERR: Nanny: illegal state of con'ness (%d) for '%s'; closing connection.",
			d.State, name))
		d.State = world.ConDisconnect
	}
}

// nameInUse reports whether another connection is logging in as name.
// A player already in the game does not count; logging in again takes
// the body over.
func (g *Game) nameInUse(self world.DescID, name string) bool {
	w := g.world
	for _, id := range w.DescList {
		if id == self {
			continue
		}
		d := w.Desc(id)
		c, ok := w.Chars.Lookup(d.Character)
		if ok && !d.Playing() && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (g *Game) nannyGetName(id world.DescID, arg string) {
	w := g.world
	d := w.Desc(id)
	if arg == "" {
		d.State = world.ConClose
		return
	}

	name, ok := command.ValidName(arg, g.cfg.MaxNameLength)
	if !ok || command.FillWord(name) || command.ReservedWord(name) ||
		g.texts.InvalidName(name) || g.nameInUse(id, name) {
		d.Write("Invalid name, please try another.\r\nName: ")
		return
	}

	rec, err := g.loadPlayer(name)
	if err != nil {
		g.logger.Error("SYSERR: nanny", zap.Error(err))
		d.Write("Invalid name, please try another.\r\nName: ")
		return
	}

	if rec != nil && !rec.Deleted() {
		c := charFromRecord(rec)
		c.PlrFlags.Clear(world.PlrWriting | world.PlrMailing | world.PlrCryo)
		c.AffFlags.Clear(world.AffGroup)
		c.Desc = id
		ch := w.StoreCharacter(c)
		g.applySavedAffects(ch, rec)
		d = w.Desc(id)
		d.Character = ch
		d.Write("Password: ")
		d.WriteBytes(d.Conn.EchoOff())
		d.IdleTics = 0
		d.State = world.ConPassword
		return
	}

	c := world.NewPlayer(command.Cap(strings.ToLower(name)))
	if rec != nil {
		// A self-deleted player's idnum is reused by whoever takes the name.
		c.IDNum = rec.IDNum
	}
	c.Desc = id
	ch := w.StoreCharacter(c)
	d = w.Desc(id)
	d.Character = ch
	d.Write(fmt.Sprintf("Did I get that right, %s (Y/N)? ", w.Ch(ch).Name))
	d.State = world.ConNameConfirm
}

func (g *Game) nannyNameConfirm(id world.DescID, arg string) {
	w := g.world
	d := w.Desc(id)
	c := w.Ch(d.Character)
	switch {
	case strings.HasPrefix(strings.ToLower(arg), "y"):
		if g.isBanned(d.Host) >= storage.BanNew {
			g.mudlog(logNrm, world.LvlGod,
				fmt.Sprintf("Request for new char %s denied from [%s] (siteban)", c.Name, d.Host))
			d.Write("Sorry, new characters are not allowed from your site!\r\n")
			d.State = world.ConClose
			return
		}
		if g.restrict > 0 {
			g.mudlog(logNrm, world.LvlGod,
				fmt.Sprintf("Request for new char %s denied from [%s] (wizlock)", c.Name, d.Host))
			d.Write("Sorry, new players can't be created at the moment.\r\n")
			d.State = world.ConClose
			return
		}
		d.Write(fmt.Sprintf("New character.\r\nGive me a password for %s: ", c.Name))
		d.WriteBytes(d.Conn.EchoOff())
		d.State = world.ConNewPassword
	case strings.HasPrefix(strings.ToLower(arg), "n"):
		d.Write("Okay, what IS it, then? ")
		w.FreeChar(d.Character)
		d.Character = world.CharID{}
		d.State = world.ConGetName
	default:
		d.Write("Please type Yes or No: ")
	}
}

func (g *Game) nannyPassword(id world.DescID, arg string) {
	w := g.world
	d := w.Desc(id)
	d.WriteBytes(d.Conn.EchoOn())
	d.Write("\r\n")
	if arg == "" {
		d.State = world.ConClose
		return
	}

	ch := d.Character
	c := w.Ch(ch)
	if !auth.Verify(c.Name, arg, c.Player.Password) {
		g.mudlog(logBrf, world.LvlGod, fmt.Sprintf("Bad PW: %s [%s]", c.Name, d.Host))
		c.Player.BadPws++
		g.saveChar(ch)
		if g.metrics != nil {
			g.metrics.BadPasswords.Inc()
		}
		d.BadPws++
		if d.BadPws >= g.cfg.MaxBadPasswords {
			d.Write("Wrong password... disconnecting.\r\n")
			d.State = world.ConClose
			return
		}
		d.Write("Wrong password.\r\nPassword: ")
		d.WriteBytes(d.Conn.EchoOff())
		return
	}

	failures := c.Player.BadPws
	c.Player.BadPws = 0
	d.BadPws = 0

	if g.isBanned(d.Host) == storage.BanSelect && !c.PlrFlags.Has(world.PlrSiteOK) {
		d.Write("Sorry, this char has not been cleared for login from your site!\r\n")
		d.State = world.ConClose
		g.mudlog(logNrm, world.LvlGod,
			fmt.Sprintf("Connection attempt for %s denied from %s", c.Name, d.Host))
		return
	}
	if c.Level < g.restrict {
		d.Write("The game is temporarily restricted.. try again later.\r\n")
		d.State = world.ConClose
		g.mudlog(logNrm, world.LvlGod,
			fmt.Sprintf("Request for login denied for %s [%s] (wizlock)", c.Name, d.Host))
		return
	}

	if g.dupeCheck(id) {
		return
	}

	d = w.Desc(id)
	c = w.Ch(ch)
	if c.Level >= world.LvlImmort {
		d.Write(g.texts.Get(textfiles.Imotd, len(w.Playing())))
	} else {
		d.Write(g.texts.Get(textfiles.Motd, len(w.Playing())))
	}
	g.mudlog(logBrf, max(world.LvlImmort, c.InvisLevel()),
		fmt.Sprintf("%s [%s] has connected.", c.Name, d.Host))
	if g.metrics != nil {
		g.metrics.Logins.Inc()
	}

	if failures > 0 {
		plural := ""
		if failures > 1 {
			plural = "S"
		}
		d.Write(fmt.Sprintf("\r\n\r\n\007\007\007%d LOGIN FAILURE%s SINCE LAST SUCCESSFUL LOGIN.\r\n",
			failures, plural))
		c.Player.BadPws = 0
	}
	d.Write(pressReturn)
	d.State = world.ConReadMotd
}

// illegalPassword reports whether pw may not be used by name.
func illegalPassword(name, pw string) bool {
	return len(pw) > maxPasswordLen || len(pw) < minPasswordLen || strings.EqualFold(pw, name)
}

func (g *Game) nannyNewPassword(id world.DescID, arg string) {
	w := g.world
	d := w.Desc(id)
	c := w.Ch(d.Character)
	if arg == "" || illegalPassword(c.Name, arg) {
		d.Write("\r\nIllegal password.\r\nPassword: ")
		return
	}
	hash, err := auth.Hash(g.cfg.PasswordScheme, c.Name, arg)
	if err != nil {
		g.logger.Error("SYSERR: hashing password", zap.String("name", c.Name), zap.Error(err))
		d.Write("\r\nIllegal password.\r\nPassword: ")
		return
	}
	c.Player.Password = hash
	d.Write("\r\nPlease retype password: ")
	if d.State == world.ConNewPassword {
		d.State = world.ConConfirmPassword
	} else {
		d.State = world.ConChpwdVerify
	}
}

func (g *Game) nannyConfirmPassword(id world.DescID, arg string) {
	w := g.world
	d := w.Desc(id)
	c := w.Ch(d.Character)
	if !auth.Verify(c.Name, arg, c.Player.Password) {
		d.Write("\r\nPasswords don't match... start over.\r\nPassword: ")
		if d.State == world.ConConfirmPassword {
			d.State = world.ConNewPassword
		} else {
			d.State = world.ConChpwdGetNew
		}
		return
	}
	d.WriteBytes(d.Conn.EchoOn())

	if d.State == world.ConConfirmPassword {
		d.Write("\r\nWhat is your sex (M/F)? ")
		d.State = world.ConQuerySex
		return
	}
	g.saveChar(d.Character)
	d.Write("\r\nDone.\r\n" + mainMenu)
	d.State = world.ConMenu
}

func (g *Game) nannyQuerySex(id world.DescID, arg string) {
	w := g.world
	d := w.Desc(id)
	c := w.Ch(d.Character)
	switch strings.ToLower(arg) {
	case "m":
		c.Sex = world.SexMale
	case "f":
		c.Sex = world.SexFemale
	default:
		d.Write("That is not a sex..\r\nWhat IS your sex? ")
		return
	}
	d.Write(world.ClassMenu + "\r\nClass: ")
	d.State = world.ConQueryClass
}

func (g *Game) nannyQueryClass(id world.DescID, arg string) {
	w := g.world
	d := w.Desc(id)
	ch := d.Character
	class := world.ClassUndefined
	if arg != "" {
		class = world.ParseClass(arg[0])
	}
	if class == world.ClassUndefined {
		d.Write("\r\nThat's not a class.\r\nClass: ")
		return
	}
	w.Ch(ch).Class = class

	g.initChar(ch)
	g.saveChar(ch)
	c := w.Ch(ch)
	if c.IDNum == 0 {
		d.Write("\r\nThat name was just taken.  Goodbye.\r\n")
		d.State = world.ConClose
		return
	}
	d.Write(g.texts.Get(textfiles.Motd, len(w.Playing())))
	d.Write(pressReturn)
	d.State = world.ConReadMotd
	g.mudlog(logNrm, world.LvlImmort, fmt.Sprintf("%s [%s] new player.", c.Name, d.Host))
}

func (g *Game) nannyMenu(id world.DescID, arg string) {
	w := g.world
	d := w.Desc(id)
	ch := d.Character
	choice := byte(0)
	if arg != "" {
		choice = arg[len(arg)-1]
	}

	switch choice {
	case '0':
		d.Write("Goodbye.\r\n")
		d.State = world.ConClose
	case '1':
		g.enterGame(id)
	case '2':
		c := w.Ch(ch)
		if c.Description != "" {
			d.Write("Old description:\r\n" + c.Description)
			c.Description = ""
		}
		d.Write("Enter the new text you'd like others to see when they look at you.\r\n" +
			"Terminate with a '@' on a new line.\r\n")
		g.startEdit(id, world.EditState{Kind: world.EditDescription}, descriptionSize)
		d.State = world.ConExtraDesc
	case '3':
		comm.PageString(d, g.texts.Get(textfiles.Background, len(w.Playing())), g.pageLength(), g.pageWidth())
		d.State = world.ConReadMotd
	case '4':
		d.Write("\r\nEnter your old password: ")
		d.WriteBytes(d.Conn.EchoOff())
		d.State = world.ConChpwdGetOld
	case '5':
		d.Write("\r\nEnter your password for verification: ")
		d.WriteBytes(d.Conn.EchoOff())
		d.State = world.ConDeleteConfirm1
	default:
		d.Write("\r\nThat's not a menu choice!\r\n" + mainMenu)
	}
}

// startRoom picks where a player enters the world.
func (g *Game) startRoom(ch world.CharID) world.Rnum {
	w := g.world
	c := w.Ch(ch)
	room := world.Nowhere
	if c.PlrFlags.Has(world.PlrLoadRoom) && c.Player.LoadRoom != world.NoVnum {
		room = w.RealRoom(c.Player.LoadRoom)
	}
	if room == world.Nowhere {
		if c.Level >= world.LvlImmort {
			room = w.RealRoom(world.Vnum(g.cfg.ImmortalStartRoom))
		} else {
			room = w.RealRoom(world.Vnum(g.cfg.MortalStartRoom))
		}
	}
	if c.PlrFlags.Has(world.PlrFrozen) {
		room = w.RealRoom(world.Vnum(g.cfg.FrozenStartRoom))
	}
	if room == world.Nowhere {
		room = w.RealRoom(world.Vnum(g.cfg.MortalStartRoom))
	}
	if room == world.Nowhere {
		room = 0
	}
	return room
}

// enterGame moves the menu character into the world.
func (g *Game) enterGame(id world.DescID) {
	w := g.world
	d := w.Desc(id)
	ch := d.Character
	c := w.Ch(ch)

	c.Position = world.PosStanding
	c.Wait = 0
	c.Timer = 0
	if c.Points.Hit <= 0 {
		c.Points.Hit = 1
	}
	if c.Points.Move <= 0 {
		c.Points.Move = 1
	}
	if c.Points.Mana <= 0 {
		c.Points.Mana = 1
	}
	if aliases, err := g.stores.Aliases.LoadAliases(c.IDNum); err != nil {
		g.logger.Warn("SYSERR: loading aliases", zap.String("name", c.Name), zap.Error(err))
	} else {
		c.Player.Aliases = aliases
	}
	if c.PlrFlags.Has(world.PlrInvStart) {
		c.Player.InvisLevel = c.Level
	}

	room := g.startRoom(ch)
	comm.SendToChar(w, ch, welcomeMessage)
	w.LinkCharacter(ch)
	w.CharToRoom(ch, room)
	g.crashLoad(ch)

	c = w.Ch(ch)
	if !c.PlrFlags.Has(world.PlrLoadRoom) {
		c.Player.LoadRoom = world.NoVnum
	}
	c.Player.LastLogon = g.now()
	g.saveChar(ch)
	comm.Act(w, "$n has entered the game.", true, ch, world.ObjID{}, nil, comm.ToRoom)

	d = w.Desc(id)
	d.State = world.ConPlaying
	if w.Ch(ch).Level == 0 {
		g.doStart(ch)
		comm.SendToChar(w, ch, startMessage)
	}
	g.lookAtRoom(ch, false)

	if has, err := g.stores.Mail.HasMail(w.Ch(ch).IDNum); err == nil && has {
		comm.SendToChar(w, ch, "You have mail waiting.\r\n")
	}
	d = w.Desc(id)
	d.HasPrompt = false
}

func (g *Game) nannyChpwdGetOld(id world.DescID, arg string) {
	w := g.world
	d := w.Desc(id)
	c := w.Ch(d.Character)
	if !auth.Verify(c.Name, arg, c.Player.Password) {
		d.WriteBytes(d.Conn.EchoOn())
		d.Write("\r\nIncorrect password.\r\n" + mainMenu)
		d.State = world.ConMenu
		return
	}
	d.Write("\r\nEnter a new password: ")
	d.State = world.ConChpwdGetNew
}

func (g *Game) nannyDeleteConfirm1(id world.DescID, arg string) {
	w := g.world
	d := w.Desc(id)
	c := w.Ch(d.Character)
	d.WriteBytes(d.Conn.EchoOn())
	if !auth.Verify(c.Name, arg, c.Player.Password) {
		d.Write("\r\nIncorrect password.\r\n" + mainMenu)
		d.State = world.ConMenu
		return
	}
	d.Write("\r\nYOU ARE ABOUT TO DELETE THIS CHARACTER PERMANENTLY.\r\n" +
		"ARE YOU ABSOLUTELY SURE?\r\n\r\n" +
		"Please type \"yes\" to confirm: ")
	d.State = world.ConDeleteConfirm2
}

func (g *Game) nannyDeleteConfirm2(id world.DescID, arg string) {
	w := g.world
	d := w.Desc(id)
	ch := d.Character
	c := w.Ch(ch)
	if arg != "yes" && arg != "YES" {
		d.Write("\r\nCharacter not deleted.\r\n" + mainMenu)
		d.State = world.ConMenu
		return
	}
	if c.PlrFlags.Has(world.PlrFrozen) {
		d.Write("You try to kill yourself, but the ice stops you.\r\n" +
			"Character not deleted.\r\n\r\n")
		d.State = world.ConClose
		return
	}
	if c.Level < world.LvlGrGod {
		c.PlrFlags.Set(world.PlrDeleted)
	}
	g.saveChar(ch)
	ctx, cancel := g.storeCtx()
	if err := g.stores.Rent.DeleteRent(ctx, c.IDNum); err != nil {
		g.logger.Warn("SYSERR: deleting rent", zap.String("name", c.Name), zap.Error(err))
	}
	cancel()
	if err := g.stores.Aliases.SaveAliases(c.IDNum, nil); err != nil {
		g.logger.Warn("SYSERR: deleting aliases", zap.String("name", c.Name), zap.Error(err))
	}
	d.Write(fmt.Sprintf("Character '%s' deleted!\r\nGoodbye.\r\n", c.Name))
	g.mudlog(logNrm, world.LvlGod, fmt.Sprintf("%s (lev %d) has self-deleted.", c.Name, c.Level))
	d.State = world.ConClose
}

func (g *Game) pageLength() int {
	if g.cfg.PageLength > 0 {
		return g.cfg.PageLength
	}
	return comm.PageLength
}

func (g *Game) pageWidth() int {
	if g.cfg.PageWidth > 0 {
		return g.cfg.PageWidth
	}
	return comm.PageWidth
}

package comm

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Audience selects who receives an act() message.
type Audience int

// Audiences. ToSleep may be or-ed with one other audience to reach
// sleeping recipients too.
const (
	ToRoom Audience = iota + 1
	ToVict
	ToNotVict
	ToChar

	ToSleep Audience = 128
)

const actNull = "<NULL>"

// sendOK reports whether c should receive act() output.
func sendOK(w *world.World, c *world.Character, toSleeping bool) bool {
	if c.Desc.IsZero() || !w.Descs.Valid(c.Desc) {
		return false
	}
	if !toSleeping && !c.Awake() {
		return false
	}
	return c.IsNPC() || !c.PlrFlags.Has(world.PlrWriting)
}

// Act formats template for each recipient and delivers it.
//
// vict is the secondary subject: a world.CharID for $N $M $S $E, a
// world.ObjID for $O $P $A, a string for $T $F, or nil. With hideInvis set
// recipients that cannot see ch are skipped.
//
// Tokens: $n $N name, $m $M him/her, $s $S his/her, $e $E he/she, $o $O
// object keyword, $p $P object short description, $a $A article, $T text,
// $F first word of text, $u upper-cases the previous word, $U the next
// one, $$ a literal dollar.
func Act(w *world.World, template string, hideInvis bool, ch world.CharID, obj world.ObjID, vict any, to Audience) {
	if template == "" {
		return
	}
	toSleeping := to&ToSleep != 0
	to &^= ToSleep

	switch to {
	case ToChar:
		if c, ok := w.Chars.Lookup(ch); ok && sendOK(w, c, toSleeping) {
			performAct(w, template, ch, obj, vict, ch)
		}
		return
	case ToVict:
		v, ok := vict.(world.CharID)
		if !ok {
			return
		}
		if c, ok := w.Chars.Lookup(v); ok && sendOK(w, c, toSleeping) {
			performAct(w, template, ch, obj, vict, v)
		}
		return
	}

	var room world.Rnum = world.Nowhere
	if c, ok := w.Chars.Lookup(ch); ok && c.InRoom != world.Nowhere {
		room = c.InRoom
	} else if o, ok := w.Objs.Lookup(obj); ok && o.Loc.Kind == world.LocRoom {
		room = o.Loc.Room
	} else {
		w.Logger.Error("SYSERR: no valid target to act()", zap.String("template", template))
		return
	}

	victCh, _ := vict.(world.CharID)
	for _, id := range append([]world.CharID(nil), w.Room(room).People...) {
		if id == ch {
			continue
		}
		c, ok := w.Chars.Lookup(id)
		if !ok || !sendOK(w, c, toSleeping) {
			continue
		}
		if hideInvis && !ch.IsZero() && !w.CanSee(id, ch) {
			continue
		}
		if to != ToRoom && !victCh.IsZero() && id == victCh {
			continue
		}
		performAct(w, template, ch, obj, vict, id)
	}
}

// FormatAct expands template as recipient would see it, without sending.
func FormatAct(w *world.World, template string, ch world.CharID, obj world.ObjID, vict any, recipient world.CharID) string {
	var b strings.Builder
	upperNext := false

	emit := func(s string) {
		for _, r := range s {
			if upperNext && !unicode.IsSpace(r) {
				r = unicode.ToUpper(r)
				upperNext = false
			}
			b.WriteRune(r)
		}
	}

	for rest := template; rest != ""; {
		k := strings.IndexByte(rest, '$')
		if k < 0 {
			emit(rest)
			break
		}
		emit(rest[:k])
		rest = rest[k+1:]
		if rest == "" {
			w.Logger.Error("SYSERR: Illegal $-code to act()", zap.String("template", template))
			break
		}
		code := rest[0]
		rest = rest[1:]
		switch code {
		case 'n':
			emit(persOrNull(w, ch, recipient))
		case 'N':
			emit(persOrNull(w, asChar(vict), recipient))
		case 'm':
			emit(pronoun(w, ch, (*world.Character).HimHer))
		case 'M':
			emit(pronoun(w, asChar(vict), (*world.Character).HimHer))
		case 's':
			emit(pronoun(w, ch, (*world.Character).HisHer))
		case 'S':
			emit(pronoun(w, asChar(vict), (*world.Character).HisHer))
		case 'e':
			emit(pronoun(w, ch, (*world.Character).HeShe))
		case 'E':
			emit(pronoun(w, asChar(vict), (*world.Character).HeShe))
		case 'o':
			emit(objText(w, obj, func(o world.ObjID) string { return w.ObjKeyword(o, recipient) }))
		case 'O':
			emit(objText(w, asObj(vict), func(o world.ObjID) string { return w.ObjKeyword(o, recipient) }))
		case 'p':
			emit(objText(w, obj, func(o world.ObjID) string { return w.ObjShort(o, recipient) }))
		case 'P':
			emit(objText(w, asObj(vict), func(o world.ObjID) string { return w.ObjShort(o, recipient) }))
		case 'a':
			emit(objText(w, obj, func(o world.ObjID) string { return command.An(w.Obj(o).Name) }))
		case 'A':
			emit(objText(w, asObj(vict), func(o world.ObjID) string { return command.An(w.Obj(o).Name) }))
		case 'T':
			if s, ok := vict.(string); ok {
				emit(s)
			} else {
				emit(actNull)
			}
		case 'F':
			if s, ok := vict.(string); ok {
				first, _, _ := strings.Cut(strings.TrimSpace(s), " ")
				emit(first)
			} else {
				emit(actNull)
			}
		case 'u':
			out := []rune(b.String())
			j := len(out)
			for j > 0 && !unicode.IsSpace(out[j-1]) {
				j--
			}
			if j < len(out) {
				out[j] = unicode.ToUpper(out[j])
				b.Reset()
				b.WriteString(string(out))
			}
		case 'U':
			upperNext = true
		case '$':
			emit("$")
		default:
			w.Logger.Error("SYSERR: Illegal $-code to act()",
				zap.String("code", string(code)), zap.String("template", template))
		}
	}
	return command.Cap(b.String())
}

func performAct(w *world.World, template string, ch world.CharID, obj world.ObjID, vict any, to world.CharID) {
	SendToChar(w, to, FormatAct(w, template, ch, obj, vict, to)+"\r\n")
}

func asChar(v any) world.CharID {
	id, _ := v.(world.CharID)
	return id
}

func asObj(v any) world.ObjID {
	id, _ := v.(world.ObjID)
	return id
}

func persOrNull(w *world.World, ch, viewer world.CharID) string {
	if !w.Chars.Valid(ch) {
		return actNull
	}
	return w.Pers(ch, viewer)
}

func pronoun(w *world.World, ch world.CharID, f func(*world.Character) string) string {
	c, ok := w.Chars.Lookup(ch)
	if !ok {
		return actNull
	}
	return f(c)
}

func objText(w *world.World, o world.ObjID, f func(world.ObjID) string) string {
	if !w.Objs.Valid(o) {
		return actNull
	}
	return f(o)
}

package world

import "go.uber.org/zap"

// ZoneDead is an age beyond which a zone is never reset again.
const ZoneDead = 999

func (w *World) zoneError(z *Zone, cmd ResetCmd, msg string) {
	w.Logger.Error("SYSERR: zone file",
		zap.String("error", msg),
		zap.Int("zone", int(z.Vnum)),
		zap.String("cmd", string(cmd.Command)),
		zap.Int("line", cmd.Line),
	)
}

// ResetZone runs the reset commands of zone z. A command with IfFlag set
// runs only when the previous command did.
func (w *World) ResetZone(z int) {
	zone := &w.Zones[z]
	lastCmd := false
	var mob CharID
	var obj ObjID

	for _, cmd := range zone.Cmds {
		if cmd.IfFlag && !lastCmd {
			continue
		}
		if !cmd.IfFlag {
			mob = CharID{}
		}

		switch cmd.Command {
		case 'M':
			if w.MobProtos[cmd.Arg1].Count < cmd.Arg2 {
				mob = w.ReadMobile(cmd.Arg1)
				w.CharToRoom(mob, Rnum(cmd.Arg3))
				lastCmd = true
			} else {
				lastCmd = false
			}
		case 'O':
			if w.ObjProtos[cmd.Arg1].Count < cmd.Arg2 {
				obj = w.ReadObject(cmd.Arg1)
				w.ObjToRoom(obj, Rnum(cmd.Arg3))
				lastCmd = true
			} else {
				lastCmd = false
			}
		case 'P':
			if w.ObjProtos[cmd.Arg1].Count < cmd.Arg2 {
				to, ok := w.GetObjNum(cmd.Arg3)
				if !ok {
					w.zoneError(zone, cmd, "target obj not found")
					lastCmd = false
					continue
				}
				obj = w.ReadObject(cmd.Arg1)
				w.ObjToObj(obj, to)
				lastCmd = true
			} else {
				lastCmd = false
			}
		case 'G':
			if mob.IsZero() || !w.Chars.Valid(mob) {
				w.zoneError(zone, cmd, "attempt to give obj to non-existant mob")
				lastCmd = false
				continue
			}
			if w.ObjProtos[cmd.Arg1].Count < cmd.Arg2 {
				obj = w.ReadObject(cmd.Arg1)
				w.ObjToChar(obj, mob)
				lastCmd = true
			} else {
				lastCmd = false
			}
		case 'E':
			if mob.IsZero() || !w.Chars.Valid(mob) {
				w.zoneError(zone, cmd, "trying to equip non-existant mob")
				lastCmd = false
				continue
			}
			if w.ObjProtos[cmd.Arg1].Count < cmd.Arg2 {
				if cmd.Arg3 < 0 || cmd.Arg3 >= int(NumWears) {
					w.zoneError(zone, cmd, "invalid equipment pos number")
					lastCmd = false
					continue
				}
				obj = w.ReadObject(cmd.Arg1)
				if !w.EquipChar(obj, mob, WearPos(cmd.Arg3)) {
					w.ObjToChar(obj, mob)
				}
				lastCmd = true
			} else {
				lastCmd = false
			}
		case 'R':
			if o, ok := w.GetObjInListNum(cmd.Arg2, w.Rooms[cmd.Arg1].Contents); ok {
				w.ExtractObj(o)
			}
			lastCmd = true
		case 'D':
			ex := w.Rooms[cmd.Arg1].Exits[cmd.Arg2]
			if ex == nil {
				w.zoneError(zone, cmd, "door does not exist")
				lastCmd = false
				continue
			}
			switch cmd.Arg3 {
			case 0:
				ex.Info.Clear(ExLocked | ExClosed)
			case 1:
				ex.Info.Set(ExClosed)
				ex.Info.Clear(ExLocked)
			case 2:
				ex.Info.Set(ExClosed | ExLocked)
			}
			lastCmd = true
		default:
			w.zoneError(zone, cmd, "unknown cmd in reset table")
			lastCmd = false
		}
	}
	zone.Age = 0
}

// IsZoneEmpty reports whether no playing character stands in zone z.
func (w *World) IsZoneEmpty(z int) bool {
	for _, id := range w.Playing() {
		d := w.Desc(id)
		c, ok := w.Chars.Lookup(d.Character)
		if ok && w.ZoneOf(c.InRoom) == z {
			return false
		}
	}
	return true
}

// AgeZones advances every zone by one game minute and returns the zones
// that are due for a reset.
func (w *World) AgeZones() []int {
	var due []int
	for i := range w.Zones {
		z := &w.Zones[i]
		if z.ResetMode == ResetNever {
			continue
		}
		if z.Age < z.Lifespan {
			z.Age++
		}
		if z.Age >= z.Lifespan && z.Age < ZoneDead {
			due = append(due, i)
		}
	}
	return due
}

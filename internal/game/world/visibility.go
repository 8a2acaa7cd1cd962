package world

// IsDark reports whether room r is dark.
func (w *World) IsDark(r Rnum) bool {
	room := w.Room(r)
	if room.Light > 0 {
		return false
	}
	if room.Flags.Has(RoomDark) {
		return true
	}
	if room.Sector == SectInside || room.Sector == SectCity {
		return false
	}
	return w.Weather.Sunlight == SunSet || w.Weather.Sunlight == SunDark
}

func (w *World) lightOK(sub *Character) bool {
	if sub.AffFlags.Has(AffBlind) {
		return false
	}
	return !w.ValidRoom(sub.InRoom) || !w.IsDark(sub.InRoom) || sub.AffFlags.Has(AffInfravision)
}

func holylight(sub *Character) bool {
	return !sub.IsNPC() && sub.PrefFlags.Has(PrfHolylight)
}

// CanSee reports whether sub can see obj.
func (w *World) CanSee(sub, obj CharID) bool {
	if sub == obj {
		return true
	}
	s, o := w.Ch(sub), w.Ch(obj)
	if s.Level < o.InvisLevel() {
		return false
	}
	if holylight(s) {
		return true
	}
	if !w.lightOK(s) {
		return false
	}
	if o.AffFlags.Has(AffInvisible) && !s.AffFlags.Has(AffDetectInvis) {
		return false
	}
	if o.AffFlags.Has(AffHide) && !s.AffFlags.Has(AffSenseLife) {
		return false
	}
	return true
}

// CanSeeObj reports whether sub can see object o.
func (w *World) CanSeeObj(sub CharID, o ObjID) bool {
	s := w.Ch(sub)
	if holylight(s) {
		return true
	}
	if !w.lightOK(s) {
		return false
	}
	obj := w.Obj(o)
	return !obj.ExtraFlags.Has(ItemInvisible) || s.AffFlags.Has(AffDetectInvis)
}

// Pers is the name of ch as seen by viewer: the display name, or
// "someone" when viewer cannot see ch.
func (w *World) Pers(ch, viewer CharID) string {
	if w.CanSee(viewer, ch) {
		return w.Ch(ch).DisplayName()
	}
	return "someone"
}

// ObjShort is the short description of o as seen by viewer.
func (w *World) ObjShort(o ObjID, viewer CharID) string {
	if w.CanSeeObj(viewer, o) {
		return w.Obj(o).ShortDescr
	}
	return "something"
}

// ObjKeyword is the first keyword of o as seen by viewer.
func (w *World) ObjKeyword(o ObjID, viewer CharID) string {
	if !w.CanSeeObj(viewer, o) {
		return "something"
	}
	name := w.Obj(o).Name
	for i := 0; i < len(name); i++ {
		if name[i] == ' ' {
			return name[:i]
		}
	}
	return name
}

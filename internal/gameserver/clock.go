package gameserver

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Lengths of the game calendar in real seconds.
const (
	secsPerMudDay   = 24 * secsPerMudHour
	secsPerMudMonth = 35 * secsPerMudDay
	secsPerMudYear  = 17 * secsPerMudMonth
)

// beginningOfTime is the real Unix time of hour 0, day 0, month 0, year 0.
const beginningOfTime = 650336715

var weekdays = []string{
	"the Day of the Moon",
	"the Day of the Bull",
	"the Day of the Deception",
	"the Day of Thunder",
	"the Day of Freedom",
	"the Day of the Great Gods",
	"the Day of the Sun",
}

var monthNames = []string{
	"Month of Winter",
	"Month of the Winter Wolf",
	"Month of the Frost Giant",
	"Month of the Old Forces",
	"Month of the Grand Struggle",
	"Month of the Spring",
	"Month of Nature",
	"Month of Futility",
	"Month of the Dragon",
	"Month of the Sun",
	"Month of the Heat",
	"Month of the Battle",
	"Month of the Dark Shades",
	"Month of the Shadows",
	"Month of the Long Shadows",
	"Month of the Ancient Darkness",
	"Month of the Great Evil",
}

// mudTimePassed converts the real time between from and to into game
// hours, days, months and years.
func mudTimePassed(to, from time.Time) world.MudTime {
	secs := int64(to.Sub(from) / time.Second)
	var t world.MudTime
	t.Hours = int((secs / secsPerMudHour) % 24)
	secs -= secsPerMudHour * int64(t.Hours)
	t.Day = int((secs / secsPerMudDay) % 35)
	secs -= secsPerMudDay * int64(t.Day)
	t.Month = int((secs / secsPerMudMonth) % 17)
	secs -= secsPerMudMonth * int64(t.Month)
	t.Year = int(secs / secsPerMudYear)
	return t
}

// age is a player's age in game time. Characters are born seventeen.
func (g *Game) age(c *world.Character) world.MudTime {
	if c.Player == nil {
		return world.MudTime{Year: 17}
	}
	t := mudTimePassed(g.now(), c.Player.Birth)
	t.Year += 17
	return t
}

// resetTime derives the calendar and a plausible weather state from the
// wall clock. It runs at boot.
func (g *Game) resetTime() {
	w := g.world
	w.Time = mudTimePassed(g.now(), time.Unix(beginningOfTime, 0))

	switch h := w.Time.Hours; {
	case h <= 4:
		w.Weather.Sunlight = world.SunDark
	case h == 5:
		w.Weather.Sunlight = world.SunRise
	case h <= 20:
		w.Weather.Sunlight = world.SunLight
	case h == 21:
		w.Weather.Sunlight = world.SunSet
	default:
		w.Weather.Sunlight = world.SunDark
	}

	w.Weather.Pressure = 960
	if w.Time.Month >= 7 && w.Time.Month <= 12 {
		w.Weather.Pressure += w.Dice.Dice(1, 50)
	} else {
		w.Weather.Pressure += w.Dice.Dice(1, 80)
	}
	w.Weather.Change = 0
	switch p := w.Weather.Pressure; {
	case p <= 980:
		w.Weather.Sky = world.SkyLightning
	case p <= 1000:
		w.Weather.Sky = world.SkyRaining
	case p <= 1020:
		w.Weather.Sky = world.SkyCloudy
	default:
		w.Weather.Sky = world.SkyCloudless
	}

	g.logger.Info("current gametime",
		zap.Int("hour", w.Time.Hours),
		zap.Int("day", w.Time.Day),
		zap.Int("month", w.Time.Month),
		zap.Int("year", w.Time.Year),
	)
}

// weatherAndTime advances the clock one game hour. With announce set,
// outdoor players hear about sunrise, sunset and the weather.
func (g *Game) weatherAndTime(announce bool) {
	g.anotherHour(announce)
	if announce {
		g.weatherChange()
	}
}

func (g *Game) anotherHour(announce bool) {
	w := g.world
	t := &w.Time
	t.Hours++

	if announce {
		switch t.Hours {
		case 5:
			w.Weather.Sunlight = world.SunRise
			comm.SendToOutdoor(w, "The sun rises in the east.\r\n")
		case 6:
			w.Weather.Sunlight = world.SunLight
			comm.SendToOutdoor(w, "The day has begun.\r\n")
		case 21:
			w.Weather.Sunlight = world.SunSet
			comm.SendToOutdoor(w, "The sun slowly disappears in the west.\r\n")
		case 22:
			w.Weather.Sunlight = world.SunDark
			comm.SendToOutdoor(w, "The night has begun.\r\n")
		}
	}

	if t.Hours > 23 {
		t.Hours -= 24
		t.Day++
		if t.Day > 34 {
			t.Day = 0
			t.Month++
			if t.Month > 16 {
				t.Month = 0
				t.Year++
			}
		}
	}
}

// weatherChange drifts the pressure and moves the sky one step toward it.
func (g *Game) weatherChange() {
	w := g.world
	wx := &w.Weather
	roll := w.Dice.Dice

	diff := 2
	if w.Time.Month >= 9 && w.Time.Month <= 16 {
		if wx.Pressure > 985 {
			diff = -2
		}
	} else if wx.Pressure > 1015 {
		diff = -2
	}

	wx.Change += roll(1, 4)*diff + roll(2, 6) - roll(2, 6)
	wx.Change = min(max(wx.Change, -12), 12)
	wx.Pressure = min(max(wx.Pressure+wx.Change, 960), 1040)

	change := 0
	p := wx.Pressure
	switch wx.Sky {
	case world.SkyCloudless:
		if p < 990 || (p < 1010 && roll(1, 4) == 1) {
			change = 1
		}
	case world.SkyCloudy:
		switch {
		case p < 970:
			change = 2
		case p < 990:
			if roll(1, 4) == 1 {
				change = 2
			}
		case p > 1030:
			if roll(1, 4) == 1 {
				change = 3
			}
		}
	case world.SkyRaining:
		switch {
		case p < 970:
			if roll(1, 4) == 1 {
				change = 4
			}
		case p > 1030:
			change = 5
		case p > 1010:
			if roll(1, 4) == 1 {
				change = 5
			}
		}
	case world.SkyLightning:
		if p > 1010 || (p > 990 && roll(1, 4) == 1) {
			change = 6
		}
	default:
		wx.Sky = world.SkyCloudless
	}

	switch change {
	case 1:
		comm.SendToOutdoor(w, "The sky starts to get cloudy.\r\n")
		wx.Sky = world.SkyCloudy
	case 2:
		comm.SendToOutdoor(w, "It starts to rain.\r\n")
		wx.Sky = world.SkyRaining
	case 3:
		comm.SendToOutdoor(w, "The clouds disappear.\r\n")
		wx.Sky = world.SkyCloudless
	case 4:
		comm.SendToOutdoor(w, "Lightning starts to show in the sky.\r\n")
		wx.Sky = world.SkyLightning
	case 5:
		comm.SendToOutdoor(w, "The rain stops.\r\n")
		wx.Sky = world.SkyCloudy
	case 6:
		comm.SendToOutdoor(w, "The lightning stops.\r\n")
		wx.Sky = world.SkyRaining
	}
}

package gameserver

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

func TestMudTimePassed(t *testing.T) {
	from := time.Unix(0, 0)
	secs := func(n int) time.Time { return from.Add(time.Duration(n) * time.Second) }

	assert.Equal(t, world.MudTime{}, mudTimePassed(secs(secsPerMudHour-1), from))
	assert.Equal(t, world.MudTime{Hours: 3}, mudTimePassed(secs(3*secsPerMudHour), from))
	assert.Equal(t,
		world.MudTime{Hours: 7, Day: 5, Month: 2, Year: 1},
		mudTimePassed(secs(secsPerMudYear+2*secsPerMudMonth+5*secsPerMudDay+7*secsPerMudHour+30), from),
	)
}

func TestProperty_MudTimePassed_FieldsInRangeAndRecompose(t *testing.T) {
	from := time.Unix(beginningOfTime, 0)
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Int64Range(0, 200*secsPerMudYear).Draw(t, "secs")
		got := mudTimePassed(from.Add(time.Duration(n)*time.Second), from)

		if got.Hours < 0 || got.Hours > 23 || got.Day < 0 || got.Day > 34 || got.Month < 0 || got.Month > 16 {
			t.Fatalf("out of range: %+v", got)
		}
		back := int64(got.Hours)*secsPerMudHour + int64(got.Day)*secsPerMudDay +
			int64(got.Month)*secsPerMudMonth + int64(got.Year)*secsPerMudYear
		if back != n-n%secsPerMudHour {
			t.Fatalf("%d seconds became %+v", n, got)
		}
	})
}

func TestAge_StartsAtSeventeen(t *testing.T) {
	h := newHarness(t)
	h.pair()
	c := h.g.world.Ch(h.char("Bob"))

	assert.Equal(t, 17, h.g.age(c).Year)
	c.Player.Birth = h.now.Add(-2 * secsPerMudYear * time.Second)
	assert.Equal(t, 19, h.g.age(c).Year)
	assert.Equal(t, 17, h.g.age(&world.Character{}).Year)
}

func TestAnotherHour_RollsTheCalendar(t *testing.T) {
	h := newHarness(t)
	w := h.g.world

	w.Time = world.MudTime{Hours: 23, Day: 34, Month: 16, Year: 650}
	h.g.anotherHour(false)
	assert.Equal(t, world.MudTime{Hours: 0, Day: 0, Month: 0, Year: 651}, w.Time)

	w.Time = world.MudTime{Hours: 23, Day: 3, Month: 4, Year: 650}
	h.g.anotherHour(false)
	assert.Equal(t, world.MudTime{Hours: 0, Day: 4, Month: 4, Year: 650}, w.Time)
}

func TestAnotherHour_AnnouncesSunToOutdoorPlayers(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()
	w := h.g.world
	h.moveTo(h.char("Bob"), 3003)

	w.Time.Hours = 4
	h.g.anotherHour(true)
	h.g.Tick(1)
	assert.Equal(t, world.SunRise, w.Weather.Sunlight)
	assert.Contains(t, mort.Drain(), "The sun rises in the east.")
	assert.NotContains(t, imm.Drain(), "The sun rises")

	w.Time.Hours = 20
	h.g.anotherHour(true)
	h.g.Tick(1)
	assert.Equal(t, world.SunSet, w.Weather.Sunlight)
	assert.Contains(t, mort.Drain(), "The sun slowly disappears in the west.")
}

func TestProperty_WeatherChange_StaysInBounds(t *testing.T) {
	h := newHarness(t)
	w := h.g.world
	skies := []int{world.SkyCloudless, world.SkyCloudy, world.SkyRaining, world.SkyLightning}

	rapid.Check(t, func(t *rapid.T) {
		w.Weather.Pressure = rapid.IntRange(960, 1040).Draw(t, "pressure")
		w.Weather.Change = rapid.IntRange(-12, 12).Draw(t, "change")
		w.Weather.Sky = rapid.SampledFrom(skies).Draw(t, "sky")
		w.Time.Month = rapid.IntRange(0, 16).Draw(t, "month")

		for range rapid.IntRange(1, 50).Draw(t, "hours") {
			h.g.weatherChange()
			wx := w.Weather
			if wx.Pressure < 960 || wx.Pressure > 1040 {
				t.Fatalf("pressure %d out of range", wx.Pressure)
			}
			if wx.Change < -12 || wx.Change > 12 {
				t.Fatalf("change %d out of range", wx.Change)
			}
			if !slices.Contains(skies, wx.Sky) {
				t.Fatalf("unknown sky %v", wx.Sky)
			}
		}
	})
}

func TestResetTime_FollowsTheWallClock(t *testing.T) {
	h := newHarness(t)
	w := h.g.world
	h.now = time.Unix(beginningOfTime, 0).Add(12 * secsPerMudHour * time.Second)

	h.g.resetTime()
	assert.Equal(t, world.MudTime{Hours: 12}, w.Time)
	assert.Equal(t, world.SunLight, w.Weather.Sunlight)
	assert.GreaterOrEqual(t, w.Weather.Pressure, 961)
	assert.LessOrEqual(t, w.Weather.Pressure, 1040)

	h.now = time.Unix(beginningOfTime, 0).Add(2 * secsPerMudHour * time.Second)
	h.g.resetTime()
	assert.Equal(t, world.SunDark, w.Weather.Sunlight)
}

package gameserver

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// zoneUpdate runs every zone heartbeat. Once a minute it ages every zone
// and resets those whose time has come. A zone in reset-when-empty mode
// waits until no player is in it.
func (g *Game) zoneUpdate() {
	g.zoneTimer++
	if g.zoneTimer*secsZone < 60 {
		return
	}
	g.zoneTimer = 0

	w := g.world
	for _, z := range w.AgeZones() {
		zone := &w.Zones[z]
		if zone.ResetMode == world.ResetWhenEmpty && !w.IsZoneEmpty(z) {
			continue
		}
		w.ResetZone(z)
		g.logger.Debug("auto zone reset",
			zap.String("zone", zone.Name),
			zap.Int("vnum", int(zone.Vnum)),
		)
		g.mudlog(logCmp, world.LvlGod, "Auto zone reset: "+zone.Name)
		if g.metrics != nil {
			g.metrics.ZoneResets.Inc()
		}
	}
}

package gameplay

import (
	"time"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// DrainBatteries charges powered devices one volt per second of discharge
// rate. A device whose battery runs flat switches itself off.
func DrainBatteries(g *state.Game, dt time.Duration) {
	for _, e := range entity.Collect[entity.Device](g.Store, nil, nil) {
		dev := g.Store.Devices.Get(e)
		if !dev.PwSwitch || dev.BattDischarge <= 0 {
			continue
		}
		dev.Drawn += dt
		seconds := int(dev.Drawn / time.Second)
		if seconds == 0 {
			continue
		}
		dev.Drawn -= time.Duration(seconds) * time.Second
		dev.BattVoltage = max(0, dev.BattVoltage-seconds*dev.BattDischarge)
		if dev.BattVoltage == 0 {
			dev.PwSwitch = false
			dev.Drawn = 0
			logger.For("devices").WithField("entity", g.Store.Serial(e)).Info("battery flat")
			if g.Store.IsHolding(g.Player(), e) {
				tell(g, "The %s's battery is dead.", g.Store.Name(e))
			}
		}
	}
}

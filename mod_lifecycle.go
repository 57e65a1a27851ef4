package starfield

import (
	"time"
)

// LifetimeComponent removes its entity once TimeLeft runs out. On a star
// field entity this unmounts the field.
type LifetimeComponent struct {
	TimeLeft time.Duration
}

type LifecycleModule struct{}

func (mod LifecycleModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(lifetimeSystem).
			InStage(PostUpdate),
	)
}

func lifetimeSystem(time *Time, cmd *Commands) {
	dt := time.Dt
	if dt <= 0 {
		return
	}
	MakeQuery1[LifetimeComponent](cmd).Map(func(eid EntityId, lt *LifetimeComponent) bool {
		lt.TimeLeft -= dt
		if lt.TimeLeft <= 0 {
			cmd.Logger().Debugf("lifetime of entity %v expired", eid)
			cmd.RemoveEntity(eid)
		}
		return true
	})
}

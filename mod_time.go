package starfield

import (
	"time"

	"github.com/benbjohnson/clock"
)

type Time struct {
	Start time.Time
	Time  time.Time
	Dt    time.Duration

	clock clock.Clock
}

// Elapsed is the time since the module was installed.
func (t *Time) Elapsed() time.Duration {
	return t.Time.Sub(t.Start)
}

// TimeModule samples Clock once per frame. A nil Clock means wall time.
type TimeModule struct {
	Clock clock.Clock
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	c := mod.Clock
	if c == nil {
		c = clock.New()
	}
	now := c.Now()
	cmd.AddResources(&Time{
		Start: now,
		Time:  now,
		clock: c,
	})
	app.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time) {
	now := timeResource.clock.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
}

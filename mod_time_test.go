package starfield

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeModule_TracksDtAndElapsed(t *testing.T) {
	mock := clock.NewMock()
	app := NewAppBuilder().UseModule(TimeModule{Clock: mock}).Build()

	tm, ok := Resource[Time](app)
	require.True(t, ok)

	mock.Add(250 * time.Millisecond)
	app.Step()
	assert.Equal(t, 250*time.Millisecond, tm.Dt)
	assert.Equal(t, 250*time.Millisecond, tm.Elapsed())

	mock.Add(time.Second)
	app.Step()
	assert.Equal(t, time.Second, tm.Dt)
	assert.Equal(t, 1250*time.Millisecond, tm.Elapsed())
}

func TestTimeModule_DefaultsToWallClock(t *testing.T) {
	app := NewAppBuilder().UseModule(TimeModule{}).Build()
	tm, _ := Resource[Time](app)

	app.Step()
	assert.GreaterOrEqual(t, tm.Elapsed(), time.Duration(0))
}

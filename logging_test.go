package starfield

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "test", false)

	l.Debugf("hidden %d", 1)
	assert.Zero(t, buf.Len(), "debug is off by default")

	l.Infof("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "test")

	buf.Reset()
	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("now visible")
	assert.Contains(t, buf.String(), "now visible")

	l.SetDebug(false)
	assert.False(t, l.DebugEnabled())
}

func TestApp_LoggerFallsBackToNop(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())
	assert.NotNil(t, NewApp().Logger())
	assert.False(t, NewApp().Logger().DebugEnabled())
}

func TestLoggingModule_InstallsLogger(t *testing.T) {
	var buf bytes.Buffer
	app := NewAppBuilder().UseModule(LoggingModule{Prefix: "sf", Output: &buf}).Build()

	app.Logger().Warnf("careful")
	assert.Contains(t, buf.String(), "careful")
}

func TestLoggingModule_DefaultsToStderrLogger(t *testing.T) {
	app := NewAppBuilder().UseModule(LoggingModule{Prefix: "sf", Debug: true}).Build()

	l, ok := Resource[DefaultLogger](app)
	assert.True(t, ok)
	assert.True(t, l.DebugEnabled())
	assert.Same(t, l, app.Logger())
}

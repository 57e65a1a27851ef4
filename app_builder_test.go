package starfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingModule struct {
	name  string
	order *[]string
}

func (m recordingModule) Install(app *App, cmd *Commands) {
	*m.order = append(*m.order, m.name)
}

func TestAppBuilder_InstallsModulesInOrder(t *testing.T) {
	var order []string
	app := NewAppBuilder().
		UseModule(recordingModule{"a", &order}).
		UseModule(recordingModule{"b", &order}, recordingModule{"c", &order}).
		Build()

	assert.NotNil(t, app)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

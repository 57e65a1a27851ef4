package starfield

// AxesHelper draws the world X, Y and Z axes in red, green and blue.
type AxesHelper struct {
	Size    float32
	Visible bool
}

// AxesHelperModule must be installed before ClientModule to be drawn.
type AxesHelperModule struct {
	Size   float32
	Hidden bool
}

func (m AxesHelperModule) Install(app *App, cmd *Commands) {
	size := m.Size
	if size <= 0 {
		size = 1
	}
	cmd.AddResources(&AxesHelper{Size: size, Visible: !m.Hidden})
	ensureResource(app, &Input{})

	app.UseSystem(
		System(axesToggleSystem).
			InStage(Update),
	)
}

func axesToggleSystem(axes *AxesHelper, input *Input) {
	if input.JustPressed[KeyH] {
		axes.Visible = !axes.Visible
	}
}

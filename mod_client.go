package starfield

import (
	"github.com/gekko3d/starfield/starfieldrt/rt/gpu"

	app_rt "github.com/gekko3d/starfield/starfieldrt/rt/app"
)

// ClientModule opens a window and draws every mounted star field with
// WebGPU. Install after StarFieldModule and OrbitCameraModule.
type ClientModule struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
}

type starFieldPass struct {
	mounted *MountedStarField
	pass    *gpu.StarFieldRenderPass
	version uint64
}

type ClientState struct {
	RtApp  *app_rt.App
	passes map[EntityId]*starFieldPass

	axes     *AxesHelper
	axesPass *gpu.AxesRenderPass
}

func (s *ClientState) FPS() float64 {
	return s.RtApp.FPS
}

func (mod ClientModule) Install(app *App, cmd *Commands) {
	NewPlatformWindow(mod.WindowWidth, mod.WindowHeight, mod.WindowTitle).Install(app, cmd)
	InputModule{}.Install(app, cmd)

	windowState, _ := Resource[WindowState](app)
	rtApp := app_rt.NewApp(windowState.windowGlfw)
	if err := rtApp.Init(); err != nil {
		panic(err)
	}

	state := &ClientState{
		RtApp:  rtApp,
		passes: make(map[EntityId]*starFieldPass),
	}
	if axes, ok := Resource[AxesHelper](app); ok {
		state.axes = axes
	}
	cmd.AddResources(state)
	app.OnShutdown(state.release)

	app.UseSystem(
		System(fadeToggleSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(clientSyncSystem).
			InStage(PreRender),
	)
	app.UseSystem(
		System(clientRenderSystem).
			InStage(Render),
	)
}

// clientSyncSystem mirrors StarFields onto GPU passes: creates passes for
// new fields, re-uploads regenerated clouds, releases unmounted ones and
// writes this frame's uniforms.
func clientSyncSystem(state *ClientState, fields *StarFields, cam *OrbitCamera, ws *WindowState, cmd *Commands) {
	log := cmd.Logger()
	rt := state.RtApp

	w, h := ws.windowGlfw.GetFramebufferSize()
	if cw, ch := rt.Size(); uint32(w) != cw || uint32(h) != ch {
		rt.Resize(w, h)
		ws.WindowWidth, ws.WindowHeight = ws.windowGlfw.GetSize()
	}
	width, height := rt.Size()

	for eid, p := range state.passes {
		if m, ok := fields.Get(eid); !ok || m != p.mounted {
			log.Debugf("releasing GPU pass %s", p.pass.Label)
			p.pass.Release()
			delete(state.passes, eid)
		}
	}

	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	camera := gpu.PackCamera(cam.GetViewMatrix(), cam.GetProjectionMatrix(aspect), width, height)

	fields.Each(func(m *MountedStarField) {
		p, ok := state.passes[m.Entity]
		if !ok {
			pass, err := gpu.NewStarFieldRenderPass(rt.Device, rt.Format(), m.Material.Strategy(), string(m.Id))
			if err != nil {
				log.Errorf("star field %s: %v", m.Id, err)
				return
			}
			if err := pass.Upload(rt.Queue, m.Cloud); err != nil {
				log.Errorf("star field %s: %v", m.Id, err)
				pass.Release()
				return
			}
			p = &starFieldPass{mounted: m, pass: pass, version: m.Version}
			state.passes[m.Entity] = p
		} else if p.version != m.Version {
			if err := p.pass.Upload(rt.Queue, m.Cloud); err != nil {
				log.Errorf("star field %s: %v", m.Id, err)
				return
			}
			p.version = m.Version
		}

		if err := p.pass.Update(rt.Queue, camera, gpu.PackUniforms(m.Material.Uniforms())); err != nil {
			log.Errorf("star field %s: %v", m.Id, err)
		}
	})

	if state.axes != nil && state.axes.Visible {
		if state.axesPass == nil {
			pass, err := gpu.NewAxesRenderPass(rt.Device, rt.Format(), state.axes.Size)
			if err != nil {
				log.Errorf("axes helper: %v", err)
				state.axes.Visible = false
				return
			}
			state.axesPass = pass
		}
		if err := state.axesPass.Update(rt.Queue, camera); err != nil {
			log.Errorf("axes helper: %v", err)
		}
	}
}

// fadeToggleSystem flips Fade on every star field when F is pressed.
func fadeToggleSystem(input *Input, cmd *Commands) {
	if !input.JustPressed[KeyF] {
		return
	}
	MakeQuery1[StarFieldComponent](cmd).Map(func(eid EntityId, sf *StarFieldComponent) bool {
		sf.Config.Fade = !sf.Config.Fade
		return true
	})
}

func clientRenderSystem(state *ClientState, cmd *Commands) {
	ids := sortedKeys(state.passes)
	passes := make([]app_rt.Drawer, 0, len(ids)+1)
	for _, eid := range ids {
		passes = append(passes, state.passes[eid].pass)
	}
	if state.axesPass != nil && state.axes.Visible {
		passes = append(passes, state.axesPass)
	}
	if err := state.RtApp.Render(passes); err != nil {
		cmd.Logger().Warnf("frame skipped: %v", err)
	}
}

func (s *ClientState) release() {
	for eid, p := range s.passes {
		p.pass.Release()
		delete(s.passes, eid)
	}
	if s.axesPass != nil {
		s.axesPass.Release()
		s.axesPass = nil
	}
	s.RtApp.Release()
}

package starfield

import (
	"github.com/gekko3d/starfield/starfieldrt/rt/core"

	"github.com/google/uuid"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// StarFieldComponent mounts a star field on its entity. Editing Config in
// place takes effect on the next frame.
type StarFieldComponent struct {
	Config core.StarFieldConfig
}

type StarFieldOption func(*core.StarFieldConfig)

func NewStarField(opts ...StarFieldOption) StarFieldComponent {
	cfg := core.DefaultStarFieldConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return StarFieldComponent{Config: cfg}
}

func WithConfig(c core.StarFieldConfig) StarFieldOption {
	return func(cfg *core.StarFieldConfig) { *cfg = c }
}

func WithRadius(r float32) StarFieldOption {
	return func(cfg *core.StarFieldConfig) { cfg.Radius = r }
}

func WithDepth(d float32) StarFieldOption {
	return func(cfg *core.StarFieldConfig) { cfg.Depth = d }
}

func WithCount(n int) StarFieldOption {
	return func(cfg *core.StarFieldConfig) { cfg.Count = n }
}

func WithSaturation(s float32) StarFieldOption {
	return func(cfg *core.StarFieldConfig) { cfg.Saturation = s }
}

func WithFactor(f float32) StarFieldOption {
	return func(cfg *core.StarFieldConfig) { cfg.Factor = f }
}

func WithFade(on bool) StarFieldOption {
	return func(cfg *core.StarFieldConfig) { cfg.Fade = on }
}

func WithSpeed(s float32) StarFieldOption {
	return func(cfg *core.StarFieldConfig) { cfg.Speed = s }
}

func WithSeed(seed int64) StarFieldOption {
	return func(cfg *core.StarFieldConfig) { cfg.Seed = seed }
}

// WithDrift switches to directional drift motion.
func WithDrift(direction [3]float32, movementSpeed float32) StarFieldOption {
	return func(cfg *core.StarFieldConfig) {
		cfg.Motion = core.MotionDrift
		cfg.Direction = direction
		cfg.MovementSpeed = movementSpeed
	}
}

// MountedStarField is the live state behind one StarFieldComponent.
type MountedStarField struct {
	Id     AssetId
	Entity EntityId
	// Config is the configuration Cloud was last generated from.
	Config   core.StarFieldConfig
	Cloud    *core.PointCloud
	Material *core.StarFieldMaterial
	// Version increments whenever Cloud is replaced.
	Version uint64
}

type StarFields struct {
	mounted   map[EntityId]*MountedStarField
	newSource func(seed int64) core.RandomSource
}

func (s *StarFields) Get(eid EntityId) (*MountedStarField, bool) {
	m, ok := s.mounted[eid]
	return m, ok
}

func (s *StarFields) Len() int {
	return len(s.mounted)
}

// Each visits mounted fields in entity order.
func (s *StarFields) Each(fn func(*MountedStarField)) {
	for _, eid := range sortedKeys(s.mounted) {
		fn(s.mounted[eid])
	}
}

func (s *StarFields) generate(cfg core.StarFieldConfig) *core.PointCloud {
	return core.GeneratePointCloud(cfg, s.newSource(cfg.Seed))
}

type StarFieldModule struct {
	// RandomSource overrides the per-generation source. Defaults to
	// core.NewRandomSource.
	RandomSource func(seed int64) core.RandomSource
}

func (m StarFieldModule) Install(app *App, cmd *Commands) {
	newSource := m.RandomSource
	if newSource == nil {
		newSource = core.NewRandomSource
	}
	cmd.AddResources(&StarFields{
		mounted:   make(map[EntityId]*MountedStarField),
		newSource: newSource,
	})
	app.UseSystem(
		System(starFieldMountSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(starFieldTickSystem).
			InStage(PostUpdate),
	)
}

// starFieldMountSystem mounts new fields, regenerates buffers when a
// geometry input changed and forgets fields whose entity is gone.
func starFieldMountSystem(fields *StarFields, cmd *Commands) {
	log := cmd.Logger()
	seen := make(map[EntityId]struct{}, len(fields.mounted))

	MakeQuery1[StarFieldComponent](cmd).Map(func(eid EntityId, sf *StarFieldComponent) bool {
		seen[eid] = struct{}{}

		mounted, ok := fields.mounted[eid]
		if !ok {
			mounted = &MountedStarField{
				Id:       makeAssetId(),
				Entity:   eid,
				Config:   sf.Config,
				Cloud:    fields.generate(sf.Config),
				Material: core.NewStarFieldMaterial(sf.Config),
			}
			fields.mounted[eid] = mounted
			log.Infof("mounted star field %s: %d stars, radius %.1f, motion %s",
				mounted.Id, mounted.Cloud.Count, sf.Config.Radius, mounted.Material.Strategy().Motion())
			return true
		}

		if mounted.Config.GeometryKey() != sf.Config.GeometryKey() {
			mounted.Cloud = fields.generate(sf.Config)
			mounted.Version++
			log.Debugf("regenerated star field %s (v%d): %d stars", mounted.Id, mounted.Version, mounted.Cloud.Count)
		}
		mounted.Config = sf.Config
		return true
	})

	for eid, mounted := range fields.mounted {
		if _, ok := seen[eid]; !ok {
			delete(fields.mounted, eid)
			log.Infof("unmounted star field %s", mounted.Id)
		}
	}
}

// starFieldTickSystem writes the per-frame uniforms.
func starFieldTickSystem(fields *StarFields, t *Time, cmd *Commands) {
	elapsed := t.Elapsed()
	MakeQuery1[StarFieldComponent](cmd).Map(func(eid EntityId, sf *StarFieldComponent) bool {
		if mounted, ok := fields.mounted[eid]; ok {
			mounted.Material.SetFade(sf.Config.Fade)
			mounted.Material.Tick(elapsed, sf.Config.Speed)
		}
		return true
	})
}

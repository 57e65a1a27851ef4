package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/starfieldrt/rt/core"
	"github.com/gekko3d/starfield/starfieldrt/rt/shaders"
)

// verticesPerStar is one quad drawn as two triangles.
const verticesPerStar = 6

// StarFieldRenderPass draws one star field as instanced billboards.
type StarFieldRenderPass struct {
	Label    string
	Motion   core.Motion
	Pipeline *wgpu.RenderPipeline
	Layout   *wgpu.BindGroupLayout

	BindGroup     *wgpu.BindGroup
	CameraBuffer  *wgpu.Buffer
	UniformBuffer *wgpu.Buffer

	InstanceBuffer *wgpu.Buffer
	InstanceCount  uint32
	InstanceCap    uint32

	Device *wgpu.Device
}

func NewStarFieldRenderPass(device *wgpu.Device, format wgpu.TextureFormat, strategy core.OffsetStrategy, label string) (*StarFieldRenderPass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.StarFieldWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("star field shader: %w", err)
	}
	defer shaderModule.Release()

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label + " BGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: cameraUniformsSize,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: starUniformsSize,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("star field bind group layout: %w", err)
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label + " Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		bgl.Release()
		return nil, fmt.Errorf("star field pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: strategy.VertexEntryPoint(),
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: starInstanceSize,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32, Offset: 12, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: shaders.StarFieldFragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					// Additive
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOne,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOne,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil, // stars never write depth
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		bgl.Release()
		return nil, fmt.Errorf("star field pipeline: %w", err)
	}

	p := &StarFieldRenderPass{
		Label:    label,
		Motion:   strategy.Motion(),
		Pipeline: pipeline,
		Layout:   bgl,
		Device:   device,
	}

	p.CameraBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Camera UBO",
		Size:  cameraUniformsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("star field camera buffer: %w", err)
	}
	p.UniformBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Stars UBO",
		Size:  starUniformsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("star field uniform buffer: %w", err)
	}

	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " BG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.CameraBuffer, Size: cameraUniformsSize},
			{Binding: 1, Buffer: p.UniformBuffer, Size: starUniformsSize},
		},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("star field bind group: %w", err)
	}
	return p, nil
}

// Upload replaces the instance data. The buffer only grows.
func (p *StarFieldRenderPass) Upload(queue *wgpu.Queue, pc *core.PointCloud) error {
	instances := PackInstances(pc)
	count := uint32(len(instances))
	p.InstanceCount = count
	if count == 0 {
		return nil
	}

	if p.InstanceBuffer == nil || p.InstanceCap < count {
		if p.InstanceBuffer != nil {
			p.InstanceBuffer.Release()
		}
		buf, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: p.Label + " Instances",
			Size:  uint64(count) * starInstanceSize,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.InstanceBuffer, p.InstanceCap, p.InstanceCount = nil, 0, 0
			return fmt.Errorf("star field instance buffer: %w", err)
		}
		p.InstanceBuffer = buf
		p.InstanceCap = count
	}
	return queue.WriteBuffer(p.InstanceBuffer, 0, sliceBytes(instances))
}

// Update writes this frame's camera and material uniforms.
func (p *StarFieldRenderPass) Update(queue *wgpu.Queue, cam CameraUniforms, stars StarUniforms) error {
	if err := queue.WriteBuffer(p.CameraBuffer, 0, asBytes(&cam)); err != nil {
		return err
	}
	return queue.WriteBuffer(p.UniformBuffer, 0, asBytes(&stars))
}

func (p *StarFieldRenderPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.InstanceBuffer == nil || p.InstanceCount == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.InstanceBuffer, 0, uint64(p.InstanceCount)*starInstanceSize)
	pass.Draw(verticesPerStar, p.InstanceCount, 0, 0)
}

func (p *StarFieldRenderPass) Release() {
	if p.BindGroup != nil {
		p.BindGroup.Release()
		p.BindGroup = nil
	}
	if p.InstanceBuffer != nil {
		p.InstanceBuffer.Release()
		p.InstanceBuffer = nil
	}
	if p.UniformBuffer != nil {
		p.UniformBuffer.Release()
		p.UniformBuffer = nil
	}
	if p.CameraBuffer != nil {
		p.CameraBuffer.Release()
		p.CameraBuffer = nil
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
		p.Pipeline = nil
	}
	if p.Layout != nil {
		p.Layout.Release()
		p.Layout = nil
	}
	p.InstanceCount, p.InstanceCap = 0, 0
}

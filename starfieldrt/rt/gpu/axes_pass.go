package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/starfieldrt/rt/core"
	"github.com/gekko3d/starfield/starfieldrt/rt/shaders"
)

// AxesVertex matches VertexInput in axes.wgsl
type AxesVertex struct {
	Pos   [3]float32
	Color [4]float32
}

const axesVertexSize = uint64(unsafe.Sizeof(AxesVertex{}))

// PackAxes turns each axis into a line-list vertex pair.
func PackAxes(lines []core.AxisLine) []AxesVertex {
	out := make([]AxesVertex, 0, 2*len(lines))
	for _, l := range lines {
		c := [4]float32{l.Color[0], l.Color[1], l.Color[2], 1}
		out = append(out,
			AxesVertex{Pos: [3]float32(l.From), Color: c},
			AxesVertex{Pos: [3]float32(l.To), Color: c},
		)
	}
	return out
}

type AxesRenderPass struct {
	Pipeline     *wgpu.RenderPipeline
	Layout       *wgpu.BindGroupLayout
	BindGroup    *wgpu.BindGroup
	CameraBuffer *wgpu.Buffer
	VertexBuffer *wgpu.Buffer
	VertexCount  uint32
	Device       *wgpu.Device
}

func NewAxesRenderPass(device *wgpu.Device, format wgpu.TextureFormat, size float32) (*AxesRenderPass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "AxesShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.AxesWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("axes shader: %w", err)
	}
	defer shaderModule.Release()

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "AxesCameraBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: cameraUniformsSize,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("axes bind group layout: %w", err)
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		bgl.Release()
		return nil, fmt.Errorf("axes pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "AxesPipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: axesVertexSize,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		bgl.Release()
		return nil, fmt.Errorf("axes pipeline: %w", err)
	}

	p := &AxesRenderPass{
		Pipeline: pipeline,
		Layout:   bgl,
		Device:   device,
	}

	vertices := PackAxes(core.AxesLines(size))
	p.VertexCount = uint32(len(vertices))
	p.VertexBuffer, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "AxesVertices",
		Contents: sliceBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("axes vertex buffer: %w", err)
	}

	p.CameraBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "AxesCameraUBO",
		Size:  cameraUniformsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("axes camera buffer: %w", err)
	}

	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "AxesBG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.CameraBuffer, Size: cameraUniformsSize},
		},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("axes bind group: %w", err)
	}
	return p, nil
}

func (p *AxesRenderPass) Update(queue *wgpu.Queue, cam CameraUniforms) error {
	return queue.WriteBuffer(p.CameraBuffer, 0, asBytes(&cam))
}

func (p *AxesRenderPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.VertexBuffer == nil {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, uint64(p.VertexCount)*axesVertexSize)
	pass.Draw(p.VertexCount, 1, 0, 0)
}

func (p *AxesRenderPass) Release() {
	if p.BindGroup != nil {
		p.BindGroup.Release()
		p.BindGroup = nil
	}
	if p.CameraBuffer != nil {
		p.CameraBuffer.Release()
		p.CameraBuffer = nil
	}
	if p.VertexBuffer != nil {
		p.VertexBuffer.Release()
		p.VertexBuffer = nil
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
		p.Pipeline = nil
	}
	if p.Layout != nil {
		p.Layout.Release()
		p.Layout = nil
	}
}

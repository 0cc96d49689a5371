package models

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/graphics"
	renderer "scene-viewer/internal/graphics/renderer"
	"scene-viewer/internal/profiling"
	"scene-viewer/internal/scene"
)

// Must match MAX_POINT_LIGHTS and MAX_SPOT_LIGHTS in the model shader.
const (
	maxPointLights = 4
	maxSpotLights  = 4
)

// Models draws every visible mesh in the scene graph with the lit model shader.
// GPU buffers are created the first time a mesh is seen.
type Models struct {
	textures *graphics.TextureCache
	shader   *graphics.Shader
	white    *graphics.Texture
	meshes   map[*scene.Mesh]*graphics.GPUMesh
}

func NewModels(textures *graphics.TextureCache) *Models {
	return &Models{
		textures: textures,
		meshes:   make(map[*scene.Mesh]*graphics.GPUMesh),
	}
}

func (m *Models) Init() error {
	var err error
	m.shader, err = graphics.LoadShader("model")
	if err != nil {
		return err
	}
	m.white = graphics.WhiteTexture()
	return nil
}

func (m *Models) gpu(mesh *scene.Mesh) *graphics.GPUMesh {
	g, ok := m.meshes[mesh]
	if !ok {
		g = graphics.UploadMesh(mesh)
		m.meshes[mesh] = g
	}
	return g
}

func (m *Models) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.Models")()

	m.shader.Use()
	m.shader.SetMatrix4("view", ctx.View)
	m.shader.SetMatrix4("projection", ctx.Proj)
	m.shader.SetInt("baseMap", 0)
	m.applyLights(ctx.Scene)
	ctx.ApplyFog(m.shader)
	ctx.ApplyToneMapping(m.shader)

	ctx.Scene.Meshes(func(n *scene.Node, world mgl32.Mat4) {
		g := m.gpu(n.Mesh)
		lo, hi := graphics.TransformAABB(world, g.Min, g.Max)
		if !ctx.Frustum.IntersectsAABB(lo, hi) {
			ctx.Stats.Culled++
			return
		}

		m.shader.SetMatrix4("model", world)
		m.shader.SetMatrix3("normalMatrix", world.Mat3().Inv().Transpose())

		mat := n.Mesh.Material
		if mat == nil {
			mat = scene.DefaultMaterial()
		}
		m.shader.SetVec4("baseColor", mat.BaseColor)
		if mat.Texture != nil {
			m.textures.Image(mat.Texture, graphics.TextureOptions{Repeat: true, Mipmaps: true}).Bind(0)
		} else {
			m.white.Bind(0)
		}

		translucent := mat.BaseColor.W() < 1
		if translucent {
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		}
		g.Draw()
		if translucent {
			gl.Disable(gl.BLEND)
		}
		ctx.Stats.Draw(g.Triangles())
	})
}

func (m *Models) applyLights(s *scene.Scene) {
	sh := m.shader

	sh.SetBool("hemiEnabled", s.Hemisphere != nil)
	if h := s.Hemisphere; h != nil {
		up := h.Up
		if up.Len() == 0 {
			up = mgl32.Vec3{0, 1, 0}
		}
		sh.SetVec3("hemiSky", h.Sky.Vec3().Mul(h.Intensity))
		sh.SetVec3("hemiGround", h.Ground.Vec3().Mul(h.Intensity))
		sh.SetVec3("hemiUp", up.Normalize())
	}

	var ambient mgl32.Vec3
	if a := s.Ambient; a != nil {
		ambient = a.Color.Vec3().Mul(a.Intensity)
	}
	sh.SetVec3("ambient", ambient)

	points := s.Points[:min(len(s.Points), maxPointLights)]
	sh.SetInt("pointCount", int32(len(points)))
	for i, p := range points {
		sh.SetVec3(indexed("pointPosition", i), p.Position)
		sh.SetVec3(indexed("pointColor", i), p.Color.Vec3().Mul(p.Intensity))
		sh.SetFloat(indexed("pointDistance", i), p.Distance)
		sh.SetFloat(indexed("pointDecay", i), p.Decay)
	}

	spots := s.Spots[:min(len(s.Spots), maxSpotLights)]
	sh.SetInt("spotCount", int32(len(spots)))
	for i, sp := range spots {
		inner, outer := spotCone(sp)
		sh.SetVec3(indexed("spotPosition", i), sp.Position)
		sh.SetVec3(indexed("spotDirection", i), spotDirection(sp))
		sh.SetVec3(indexed("spotColor", i), sp.Color.Vec3().Mul(sp.Intensity))
		sh.SetFloat(indexed("spotDistance", i), sp.Distance)
		sh.SetFloat(indexed("spotDecay", i), sp.Decay)
		sh.SetFloat(indexed("spotCosOuter", i), outer)
		sh.SetFloat(indexed("spotCosInner", i), inner)
	}
}

func (m *Models) SetViewport(width, height int) {}

func (m *Models) Dispose() {
	for mesh, g := range m.meshes {
		g.Delete()
		delete(m.meshes, mesh)
	}
	if m.white != nil {
		m.white.Delete()
	}
	if m.shader != nil {
		m.shader.Delete()
	}
}

package renderer

import (
	"Scrapbook3D/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type OpenGLRenderer struct {
	ClearColor      mgl32.Vec3
	AmbientStrength float32

	defaultShader Shader
	uniforms      *UniformCache
	meshes        []*Mesh
}

func NewOpenGLRenderer(clearColor mgl32.Vec3) *OpenGLRenderer {
	return &OpenGLRenderer{
		ClearColor:      clearColor,
		AmbientStrength: 0.5,
	}
}

func (rend *OpenGLRenderer) Init(width, height int32) {
	if err := gl.Init(); err != nil {
		logger.Log.Error("OpenGL initialization failed", zap.Error(err))
		return
	}

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.Viewport(0, 0, width, height)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	rend.defaultShader = InitShader()
	if err := rend.defaultShader.Compile(); err != nil {
		logger.Log.Error("Default shader unavailable", zap.Error(err))
		return
	}
	rend.uniforms = NewUniformCache(rend.defaultShader.Program())
	logger.Log.Info("OpenGL render initialized", zap.Int32("width", width), zap.Int32("height", height))
}

// Upload creates GPU buffers for every mesh in the subtree that has none yet.
func (rend *OpenGLRenderer) Upload(root *Node) {
	uploaded := 0
	root.Traverse(func(n *Node) bool {
		if n.Mesh != nil && n.Mesh.VAO == 0 {
			rend.uploadMesh(n.Mesh)
			uploaded++
		}
		return true
	})
	if uploaded > 0 {
		logger.Log.Info("Meshes uploaded", zap.Int("count", uploaded))
	}
}

func (rend *OpenGLRenderer) uploadMesh(mesh *Mesh) {
	data := mesh.Interleaved()
	if len(data) == 0 || len(mesh.Indices) == 0 {
		return
	}

	gl.GenVertexArrays(1, &mesh.VAO)
	gl.BindVertexArray(mesh.VAO)

	gl.GenBuffers(1, &mesh.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &mesh.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	stride := int32(8 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	rend.meshes = append(rend.meshes, mesh)
}

func (rend *OpenGLRenderer) Render(camera *Camera, root *Node, lights []*Light) {
	gl.ClearColor(rend.ClearColor.X(), rend.ClearColor.Y(), rend.ClearColor.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if root == nil || camera == nil || rend.uniforms == nil {
		return
	}

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if FaceCullingEnabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	var frustum Frustum
	if FrustumCullingEnabled {
		frustum = camera.CalculateFrustum()
	}

	rend.defaultShader.Use()
	uc := rend.uniforms
	uc.SetMat4("viewProjection", camera.GetViewProjection())
	uc.SetVec3("viewPos", camera.Position)
	uc.SetFloat("ambientStrength", rend.AmbientStrength)
	setLightUniforms(uc, lights)

	rend.drawNode(root, mgl32.Ident4(), &frustum)

	gl.BindVertexArray(0)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
}

func (rend *OpenGLRenderer) drawNode(n *Node, parent mgl32.Mat4, frustum *Frustum) {
	if !n.Visible {
		return
	}
	world := parent.Mul4(n.LocalMatrix())

	if n.Mesh != nil && n.Mesh.VAO != 0 {
		center := mgl32.TransformCoordinate(n.Mesh.BoundsCenter, world)
		radius := n.Mesh.BoundsRadius * maxAxisScale(world)
		if !FrustumCullingEnabled || frustum.IntersectsSphere(center, radius) {
			mat := n.Material
			if mat == nil {
				mat = DefaultMaterial
			}
			uc := rend.uniforms
			uc.SetMat4("model", world)
			uc.SetColor("diffuseColor", mat.DiffuseColor)
			uc.SetColor("specularColor", mat.SpecularColor)
			uc.SetFloat("shininess", mat.Shininess)
			uc.SetFloat("alpha", mat.Alpha)

			gl.BindVertexArray(n.Mesh.VAO)
			gl.DrawElements(gl.TRIANGLES, int32(len(n.Mesh.Indices)), gl.UNSIGNED_INT, nil)
		}
	}

	for _, c := range n.Children {
		rend.drawNode(c, world, frustum)
	}
}

func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (rend *OpenGLRenderer) Cleanup() {
	for _, m := range rend.meshes {
		gl.DeleteVertexArrays(1, &m.VAO)
		gl.DeleteBuffers(1, &m.VBO)
		gl.DeleteBuffers(1, &m.EBO)
		m.VAO, m.VBO, m.EBO = 0, 0, 0
	}
	rend.meshes = nil
	rend.defaultShader.Delete()
	logger.Log.Info("OpenGL renderer cleaned up")
}

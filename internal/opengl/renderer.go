// Package opengl is the OpenGL 4.1 core backend. It owns shader programs,
// GPU mesh buffers and the HUD sub-viewport state.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"viewport-chrome/core"
	"viewport-chrome/math"
	"viewport-chrome/scene"
)

// GPUMesh is the uploaded form of a scene mesh.
type GPUMesh struct {
	VAO, VBO, EBO uint32
	IndexCount    int32
	VertexCount   int32
	Mode          uint32
}

const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;

uniform mat4 mvp;
uniform mat4 model;

out vec3 fragNormal;
out vec2 fragUV;
out vec4 fragColor;

void main() {
    gl_Position = mvp * vec4(inPosition, 1.0);
    fragNormal  = mat3(model) * inNormal;
    fragUV      = inUV;
    fragColor   = inColor;
}
` + "\x00"

const fragSrc = `
#version 410 core
in vec3 fragNormal;
in vec2 fragUV;
in vec4 fragColor;

uniform vec4 tint;
uniform bool overrideColor;
uniform bool useTexture;
uniform bool unlit;
uniform vec3 lightDir;
uniform sampler2D albedoTex;

out vec4 outColor;

void main() {
    vec4 base = overrideColor ? tint : fragColor * tint;
    if (useTexture) {
        vec4 texel = texture(albedoTex, fragUV);
        base = vec4(mix(base.rgb, texel.rgb, texel.a), base.a);
    }
    float shade = 1.0;
    if (!unlit) {
        vec3 n = normalize(fragNormal);
        shade = 0.55 + 0.45 * max(dot(n, normalize(-lightDir)), 0.0);
    }
    outColor = vec4(base.rgb * shade, base.a);
}
` + "\x00"

// Renderer draws scene meshes and the HUD overlay with a single flat-shaded
// program.
type Renderer struct {
	program uint32

	mvpLoc           int32
	modelLoc         int32
	tintLoc          int32
	overrideColorLoc int32
	useTextureLoc    int32
	unlitLoc         int32
	lightDirLoc      int32
	albedoTexLoc     int32

	viewportW, viewportH int32

	gpuMeshes  map[*scene.Mesh]*GPUMesh
	highlights map[string]*GPUMesh
}

// NewRenderer initialises OpenGL. Must be called after the window context is
// made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r := &Renderer{
		program: prog,

		mvpLoc:           gl.GetUniformLocation(prog, gl.Str("mvp\x00")),
		modelLoc:         gl.GetUniformLocation(prog, gl.Str("model\x00")),
		tintLoc:          gl.GetUniformLocation(prog, gl.Str("tint\x00")),
		overrideColorLoc: gl.GetUniformLocation(prog, gl.Str("overrideColor\x00")),
		useTextureLoc:    gl.GetUniformLocation(prog, gl.Str("useTexture\x00")),
		unlitLoc:         gl.GetUniformLocation(prog, gl.Str("unlit\x00")),
		lightDirLoc:      gl.GetUniformLocation(prog, gl.Str("lightDir\x00")),
		albedoTexLoc:     gl.GetUniformLocation(prog, gl.Str("albedoTex\x00")),

		gpuMeshes:  make(map[*scene.Mesh]*GPUMesh),
		highlights: make(map[string]*GPUMesh),
	}

	gl.UseProgram(prog)
	gl.Uniform1i(r.albedoTexLoc, 0)
	gl.Uniform3f(r.lightDirLoc, -0.4, 0.3, -0.85)

	return r, nil
}

// SetViewport resizes the OpenGL viewport and stores the dimensions for
// restoring after the HUD pass.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetLightDir sets the directional light for the lit path.
func (r *Renderer) SetLightDir(dir math.Vec3) {
	gl.UseProgram(r.program)
	gl.Uniform3f(r.lightDirLoc, dir.X, dir.Y, dir.Z)
}

// BeginFrame clears the framebuffer and binds the program.
func (r *Renderer) BeginFrame(clear core.Color) {
	gl.Viewport(0, 0, r.viewportW, r.viewportH)
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

// DrawMesh draws a mesh with the given transforms and tint. A zero texture
// id draws untextured. Line meshes render unlit.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, mvp, model math.Mat4, tint core.Color, texture uint32) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, (*float32)(unsafe.Pointer(&mvp[0][0])))
	gl.UniformMatrix4fv(r.modelLoc, 1, false, (*float32)(unsafe.Pointer(&model[0][0])))
	gl.Uniform4f(r.tintLoc, tint.R, tint.G, tint.B, tint.A)
	setBool(r.overrideColorLoc, false)
	setBool(r.unlitLoc, gpu.Mode == gl.LINES)
	setBool(r.useTextureLoc, texture != 0)
	if texture != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, texture)
	}

	gl.BindVertexArray(gpu.VAO)
	if gpu.EBO != 0 {
		gl.DrawElements(gpu.Mode, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gpu.Mode, 0, gpu.VertexCount)
	}
	gl.BindVertexArray(0)
}

// BeginHUD scopes drawing to a sub-rectangle given in window client
// coordinates (Y down). Depth is cleared so the overlay draws over the
// scene.
func (r *Renderer) BeginHUD(rect core.Rect) {
	x := int32(rect.X)
	y := r.viewportH - int32(rect.Y+rect.Height)
	w := int32(rect.Width)
	h := int32(rect.Height)

	gl.Viewport(x, y, w, h)
	gl.Scissor(x, y, w, h)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

// EndHUD restores the full-window viewport.
func (r *Renderer) EndHUD() {
	gl.Disable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, r.viewportW, r.viewportH)
}

// BeginOverlay disables depth testing for screen-space chrome drawn on top
// of everything.
func (r *Renderer) BeginOverlay() {
	gl.Disable(gl.DEPTH_TEST)
}

// EndOverlay restores depth testing.
func (r *Renderer) EndOverlay() {
	gl.Enable(gl.DEPTH_TEST)
}

// UploadHighlight caches a position-only triangle soup under a key for
// hover feedback overlays.
func (r *Renderer) UploadHighlight(key string, positions []float32) {
	if _, ok := r.highlights[key]; ok || len(positions) == 0 {
		return
	}

	gpu := &GPUMesh{
		VertexCount: int32(len(positions) / 3),
		Mode:        gl.TRIANGLES,
	}
	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 12, gl.PtrOffset(0))

	gl.BindVertexArray(0)
	r.highlights[key] = gpu
}

// DrawHighlight draws a cached highlight mesh in a flat override color.
func (r *Renderer) DrawHighlight(key string, mvp math.Mat4, color core.Color) {
	gpu, ok := r.highlights[key]
	if !ok {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, (*float32)(unsafe.Pointer(&mvp[0][0])))
	gl.Uniform4f(r.tintLoc, color.R, color.G, color.B, color.A)
	setBool(r.overrideColorLoc, true)
	setBool(r.unlitLoc, true)
	setBool(r.useTextureLoc, false)

	// Bias the highlight over the base surface.
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(-1, -1)

	gl.BindVertexArray(gpu.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, gpu.VertexCount)
	gl.BindVertexArray(0)

	gl.Disable(gl.POLYGON_OFFSET_FILL)
}

// ReleaseMesh frees a mesh's GPU buffers.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	gpu, ok := r.gpuMeshes[mesh]
	if !ok {
		return
	}
	deleteGPUMesh(gpu)
	delete(r.gpuMeshes, mesh)
	mesh.GPUData = nil
}

// Destroy frees every GPU resource the renderer owns.
func (r *Renderer) Destroy() {
	for mesh, gpu := range r.gpuMeshes {
		deleteGPUMesh(gpu)
		mesh.GPUData = nil
	}
	r.gpuMeshes = make(map[*scene.Mesh]*GPUMesh)

	for _, gpu := range r.highlights {
		deleteGPUMesh(gpu)
	}
	r.highlights = make(map[string]*GPUMesh)

	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

func deleteGPUMesh(gpu *GPUMesh) {
	if gpu.EBO != 0 {
		gl.DeleteBuffers(1, &gpu.EBO)
	}
	gl.DeleteBuffers(1, &gpu.VBO)
	gl.DeleteVertexArrays(1, &gpu.VAO)
}

func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	mode := uint32(gl.TRIANGLES)
	if mesh.DrawMode == scene.DrawLines {
		mode = gl.LINES
	}
	gpu := &GPUMesh{
		IndexCount:  int32(len(mesh.Indices)),
		VertexCount: int32(len(mesh.Vertices)),
		Mode:        mode,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))
	colorOff := int(unsafe.Offsetof(v.Color))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 4, gl.FLOAT, false, stride, gl.PtrOffset(colorOff))

	if len(mesh.Indices) > 0 {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

func setBool(loc int32, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(loc, i)
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}

package glbackend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/chxry/u/engine/core"
	"github.com/chxry/u/engine/ui"
)

// RendererGL composites two passes into the window surface: a procedural
// background drawn with a single full-screen triangle (no vertex buffers),
// and the UI draw list with alpha blending and the font atlas sampled.
type RendererGL struct {
	win core.Window

	bgProg      uint32
	bgScreenLoc int32
	bgVAO       uint32

	uiProg      uint32
	uiScreenLoc int32
	uiVAO       uint32
	uiVBO       uint32
	uiEBO       uint32

	atlasTex uint32
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	var err error
	r.bgProg, err = makeProgram(bgVertexSource, bgFragmentSource)
	if err != nil {
		return fmt.Errorf("background pipeline: %w", err)
	}
	r.bgScreenLoc = gl.GetUniformLocation(r.bgProg, gl.Str("uScreenSize\x00"))
	// Core profile requires a bound VAO even for bufferless draws.
	gl.GenVertexArrays(1, &r.bgVAO)

	r.uiProg, err = makeProgram(uiVertexSource, uiFragmentSource)
	if err != nil {
		return fmt.Errorf("ui pipeline: %w", err)
	}
	r.uiScreenLoc = gl.GetUniformLocation(r.uiProg, gl.Str("uScreenSize\x00"))

	gl.GenVertexArrays(1, &r.uiVAO)
	gl.BindVertexArray(r.uiVAO)
	gl.GenBuffers(1, &r.uiVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.uiVBO)
	gl.GenBuffers(1, &r.uiEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.uiEBO)

	// Interleaved vertex contract: pos at 0, uv at 8, color at 16, stride 28.
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, ui.VertexStride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, ui.VertexStride, unsafe.Pointer(uintptr(8)))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, ui.VertexStride, unsafe.Pointer(uintptr(16)))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	// Present srgb-encoded as required by the output surface contract.
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	return nil
}

func (r *RendererGL) Shutdown() {
	if r.uiEBO != 0 {
		gl.DeleteBuffers(1, &r.uiEBO)
	}
	if r.uiVBO != 0 {
		gl.DeleteBuffers(1, &r.uiVBO)
	}
	if r.uiVAO != 0 {
		gl.DeleteVertexArrays(1, &r.uiVAO)
	}
	if r.bgVAO != 0 {
		gl.DeleteVertexArrays(1, &r.bgVAO)
	}
	if r.atlasTex != 0 {
		gl.DeleteTextures(1, &r.atlasTex)
	}
	if r.uiProg != 0 {
		gl.DeleteProgram(r.uiProg)
	}
	if r.bgProg != 0 {
		gl.DeleteProgram(r.bgProg)
	}
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

// UploadFontAtlas uploads the RGBA8 coverage atlas once after startup. It is
// never updated per frame.
func (r *RendererGL) UploadFontAtlas(w, h int, pix []byte) error {
	if w < 1 || h < 1 || len(pix) != 4*w*h {
		return fmt.Errorf("font atlas: bad dimensions %dx%d for %d bytes", w, h, len(pix))
	}
	if r.atlasTex == 0 {
		gl.GenTextures(1, &r.atlasTex)
	}
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// Render draws the background pass, then the UI pass over it. The draw list
// buffers are reallocated every frame; nothing is retained across frames.
func (r *RendererGL) Render(consts ui.Consts, list ui.DrawList) {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.bgProg)
	gl.Uniform2f(r.bgScreenLoc, consts.ScreenSize[0], consts.ScreenSize[1])
	gl.BindVertexArray(r.bgVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	if len(list.Indices) > 0 {
		vtx := list.VertexBytes()
		idx := list.IndexBytes()

		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

		gl.UseProgram(r.uiProg)
		gl.Uniform2f(r.uiScreenLoc, consts.ScreenSize[0], consts.ScreenSize[1])
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)

		gl.BindVertexArray(r.uiVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.uiVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(vtx), gl.Ptr(vtx), gl.STREAM_DRAW)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.uiEBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx), gl.Ptr(idx), gl.STREAM_DRAW)
		gl.DrawElements(gl.TRIANGLES, int32(len(list.Indices)), gl.UNSIGNED_INT, nil)

		gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// --- Shaders ---

// Background: full-screen triangle generated in the vertex stage, fragment
// stage parameterized only by the screen size.
const bgVertexSource = `
#version 330 core
void main() {
    vec2 p = vec2(float((gl_VertexID << 1) & 2), float(gl_VertexID & 2));
    gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
` + "\x00"

const bgFragmentSource = `
#version 330 core
uniform vec2 uScreenSize;
out vec4 FragColor;

void main() {
    vec2 uv = (gl_FragCoord.xy * 2.0 - uScreenSize) / uScreenSize.y;
    vec3 ro = vec3(0.0, 0.0, 1.5);
    vec3 rd = normalize(vec3(uv, -1.0));

    // sky gradient
    vec3 col = mix(vec3(0.85, 0.90, 1.00), vec3(0.25, 0.45, 0.85), uv.y * 0.5 + 0.5);

    // one analytic sphere
    vec3 ce = vec3(0.0, 0.0, -1.5);
    vec3 oc = ro - ce;
    float b = dot(oc, rd);
    float c = dot(oc, oc) - 1.0;
    float disc = b * b - c;
    if (disc > 0.0) {
        float t = -b - sqrt(disc);
        if (t > 0.0) {
            vec3 n = normalize(ro + rd * t - ce);
            float diff = max(dot(n, normalize(vec3(0.6, 0.8, 0.4))), 0.0);
            col = vec3(0.9, 0.3, 0.3) * (0.15 + 0.85 * diff);
        }
    }
    FragColor = vec4(col, 1.0);
}
` + "\x00"

// UI: pixel-space positions mapped to clip space with the same screen size,
// font atlas coverage in the alpha channel.
const uiVertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec2 aUV;
layout(location=2) in vec3 aColor;
uniform vec2 uScreenSize;
out vec2 vUV;
out vec3 vColor;
void main() {
    vUV = aUV;
    vColor = aColor;
    vec2 ndc = vec2(aPos.x / uScreenSize.x * 2.0 - 1.0, 1.0 - aPos.y / uScreenSize.y * 2.0);
    gl_Position = vec4(ndc, 0.0, 1.0);
}
` + "\x00"

const uiFragmentSource = `
#version 330 core
uniform sampler2D uFontTex;
in vec2 vUV;
in vec3 vColor;
out vec4 FragColor;
void main() {
    FragColor = vec4(vColor, texture(uFontTex, vUV).a);
}
` + "\x00"

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}

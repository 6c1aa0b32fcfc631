package deepsea

import "github.com/hajimehoshi/ebiten/v2"

// --- Kage shader sources ---
// All shaders use //kage:unit pixels and are drawn with DrawRectShader without
// source images, so srcPos spans (0,0)-(Size). Output is premultiplied and
// scaled by the draw's ColorScale (the color argument).

const bubbleShaderSrc = `//kage:unit pixels
package main

var Time float
var Size float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	p := srcPos/Size*2.0 - vec2(1.0)

	// Wobble the silhouette so the bubble breathes.
	distortion := sin(p.y*10.0+Time)*0.03 + cos(p.x*8.0+Time*0.5)*0.03
	d := length(p) * (1.0 - distortion)
	if d >= 1.0 {
		return vec4(0)
	}

	nz := sqrt(1.0 - d*d)
	fresnel := pow(1.0-nz, 2.0)

	uv := srcPos / Size
	base := vec3(0.5, 0.8, 1.0)
	rainbow := vec3(0.5) + 0.5*cos(vec3(Time*0.5)+vec3(uv.x, uv.y, uv.x)*3.0+vec3(0.0, 2.0, 4.0))
	rgb := mix(base, rainbow, 0.3) + vec3(fresnel*0.5)

	// Mostly opaque body thinning toward the rim, anti-aliased edge.
	a := (0.9 - 0.2*fresnel) * (1.0 - smoothstep(0.94, 1.0, d))
	return vec4(clamp(rgb, 0.0, 1.0)*a, a) * color
}
`

const backgroundShaderSrc = `//kage:unit pixels
package main

var Time float
var Base vec3
var Resolution vec2

func hash(p vec2) float {
	return fract(sin(dot(p, vec2(127.1, 311.7))) * 43758.5453)
}

func noise(p vec2) float {
	i := floor(p)
	f := fract(p)
	u := f * f * (vec2(3.0) - 2.0*f)
	a := hash(i)
	b := hash(i + vec2(1.0, 0.0))
	c := hash(i + vec2(0.0, 1.0))
	d := hash(i + vec2(1.0, 1.0))
	return mix(mix(a, b, u.x), mix(c, d, u.x), u.y)
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	uv := srcPos / Resolution
	height := 1.0 - uv.y

	n := (noise(uv*3.0+vec2(Time*0.1)) - 0.5) * 0.2
	deep := Base * 0.35
	rgb := mix(deep, Base, clamp(height+n, 0.0, 1.0))

	// Faint drifting currents.
	flow := (noise(uv*5.0+vec2(Time*0.2, -Time*0.05)) - 0.5) * 0.1
	rgb += Base * flow
	return vec4(clamp(rgb, 0.0, 1.0), 1.0) * color
}
`

// --- Lazy shader compilation ---

var (
	bubbleShader     *ebiten.Shader
	backgroundShader *ebiten.Shader
)

func ensureBubbleShader() *ebiten.Shader {
	if bubbleShader == nil {
		s, err := ebiten.NewShader([]byte(bubbleShaderSrc))
		if err != nil {
			panic("deepsea: failed to compile bubble shader: " + err.Error())
		}
		bubbleShader = s
	}
	return bubbleShader
}

func ensureBackgroundShader() *ebiten.Shader {
	if backgroundShader == nil {
		s, err := ebiten.NewShader([]byte(backgroundShaderSrc))
		if err != nil {
			panic("deepsea: failed to compile background shader: " + err.Error())
		}
		backgroundShader = s
	}
	return backgroundShader
}

// ShaderKind selects one of the built-in Kage programs.
type ShaderKind uint8

const (
	ShaderBubble     ShaderKind = iota // fresnel + iridescent sphere
	ShaderBackground                   // gradient with noise currents
)

// Uniforms holds the values a material owns. The renderer copies them into
// the shared program uniforms right before the material's draw call.
type Uniforms struct {
	Time float32
}

// Material pairs a shader program with per-object uniform values, so many
// objects can share one compiled program while keeping independent state.
type Material struct {
	Kind     ShaderKind
	Uniforms Uniforms
}

// NewBubbleMaterial returns a material for bubble and fragment shading.
func NewBubbleMaterial() *Material {
	return &Material{Kind: ShaderBubble}
}

// NewBackgroundMaterial returns a material for the full-screen backdrop.
func NewBackgroundMaterial() *Material {
	return &Material{Kind: ShaderBackground}
}

// SetTime updates the Time uniform.
func (m *Material) SetTime(t float64) {
	m.Uniforms.Time = float32(t)
}

// shader returns the compiled program for the material's kind.
func (m *Material) shader() *ebiten.Shader {
	switch m.Kind {
	case ShaderBackground:
		return ensureBackgroundShader()
	default:
		return ensureBubbleShader()
	}
}

// shaderUniforms is the program-side uniform map reused across draw calls.
type shaderUniforms struct {
	values     map[string]any
	base       [3]float32
	resolution [2]float32
}

func newShaderUniforms() *shaderUniforms {
	return &shaderUniforms{values: make(map[string]any, 4)}
}

// loadBubble copies a bubble material's uniforms for a sprite of the given
// pixel diameter.
func (u *shaderUniforms) loadBubble(m *Material, size float64) map[string]any {
	clear(u.values)
	u.values["Time"] = m.Uniforms.Time
	u.values["Size"] = float32(size)
	return u.values
}

// loadBackground copies the backdrop uniforms.
func (u *shaderUniforms) loadBackground(m *Material, base Color, w, h int) map[string]any {
	clear(u.values)
	u.base = [3]float32{float32(base.R), float32(base.G), float32(base.B)}
	u.resolution = [2]float32{float32(w), float32(h)}
	u.values["Time"] = m.Uniforms.Time
	u.values["Base"] = u.base[:]
	u.values["Resolution"] = u.resolution[:]
	return u.values
}

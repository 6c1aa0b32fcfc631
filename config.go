package deepsea

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// RiseConfig controls the one-shot fast-rise population.
type RiseConfig struct {
	// Count is the pool size.
	Count int `toml:"count"`
	// X, Y, and Z are the spawn ranges in world units. Y starts below the
	// visible area so the burst enters from the bottom.
	X Range `toml:"x"`
	Y Range `toml:"y"`
	Z Range `toml:"z"`
	// Speed is the per-tick rise in world units.
	Speed Range `toml:"speed"`
	// FinalSpeed is recorded on each bubble but not applied; see DESIGN.md.
	FinalSpeed   Range `toml:"final_speed"`
	WobbleSpeed  Range `toml:"wobble_speed"`
	WobbleAmount Range `toml:"wobble_amount"`
	Radius       Range `toml:"radius"`
	// WobbleFactor scales the sine wobble added to X each tick.
	WobbleFactor float64 `toml:"wobble_factor"`
	// TopBound deactivates bubbles that rise past it.
	TopBound float64 `toml:"top_bound"`
}

// AmbientConfig controls the slow, endlessly recycled population.
type AmbientConfig struct {
	Count     int     `toml:"count"`
	BaselineY float64 `toml:"baseline_y"`
	X         Range   `toml:"x"`
	Z         Range   `toml:"z"`
	// Speed is the per-tick rise in world units.
	Speed        Range   `toml:"speed"`
	WobbleSpeed  Range   `toml:"wobble_speed"`
	WobbleAmount Range   `toml:"wobble_amount"`
	WobbleFactor float64 `toml:"wobble_factor"`
	Radius       Range   `toml:"radius"`
	// Lifespan is in seconds of simulated age.
	Lifespan Range `toml:"lifespan"`
	// Tick is the age added per update, independent of the frame clock.
	Tick float64 `toml:"tick"`
	// BurstFactor is the per-tick burst chance reached at the end of a lifespan.
	BurstFactor float64 `toml:"burst_factor"`
	// TopBound forces a burst once a bubble rises past it.
	TopBound      float64 `toml:"top_bound"`
	TargetOpacity Range   `toml:"target_opacity"`
	FadeIn        float64 `toml:"fade_in"`
	FadeInDelay   Range   `toml:"fade_in_delay"`
}

// BurstConfig controls the swell-and-vanish animation of a bursting bubble.
type BurstConfig struct {
	Scale    float64 `toml:"scale"`
	Duration float64 `toml:"duration"`
}

// FragmentConfig controls the debris spawned by a burst.
type FragmentConfig struct {
	Count        IntRange `toml:"count"`
	RadiusFactor Range    `toml:"radius_factor"`
	Jitter       float64  `toml:"jitter"`
	// Lift is the range of the upward component before normalization.
	Lift     Range   `toml:"lift"`
	Distance Range   `toml:"distance"`
	Duration Range   `toml:"duration"`
	EndScale float64 `toml:"end_scale"`
}

// PhaseConfig times the opening choreography. All values are seconds.
type PhaseConfig struct {
	Background         Color   `toml:"background"`
	BackgroundDuration float64 `toml:"background_duration"`
	FadeOutDelay       float64 `toml:"fade_out_delay"`
	FadeOutDuration    float64 `toml:"fade_out_duration"`
	LightDuration      float64 `toml:"light_duration"`
}

// BeamConfig controls the light shafts revealed after the opening.
type BeamConfig struct {
	Count int `toml:"count"`
	// Anchor is the horizontal spawn range as a fraction of surface width.
	Anchor Range `toml:"anchor"`
	// Width is in pixels at device scale 1.
	Width Range `toml:"width"`
	// Length is a fraction of surface height.
	Length    Range   `toml:"length"`
	Angle     Range   `toml:"angle"`
	Sway      Range   `toml:"sway"`
	SwaySpeed Range   `toml:"sway_speed"`
	Intensity Range   `toml:"intensity"`
	Color     Color   `toml:"color"`
	FadeIn    float64 `toml:"fade_in"`
}

// CameraConfig sets up the perspective projection.
type CameraConfig struct {
	FOV  float64 `toml:"fov"` // vertical field of view in degrees
	Near float64 `toml:"near"`
	Far  float64 `toml:"far"`
	Z    float64 `toml:"z"`
}

// Config is the full scene configuration. DefaultConfig returns the values
// the scene is tuned for; LoadConfig overlays a TOML file on top of them.
type Config struct {
	// Seed feeds the random source. Zero picks a time-based seed.
	Seed uint64 `toml:"seed"`
	// FixedStep, when positive, replaces the sampled frame delta so runs are
	// reproducible.
	FixedStep float64 `toml:"fixed_step"`
	// MaxStep caps a sampled frame delta after stalls.
	MaxStep float64 `toml:"max_step"`

	Rise      RiseConfig     `toml:"rise"`
	Ambient   AmbientConfig  `toml:"ambient"`
	Burst     BurstConfig    `toml:"burst"`
	Fragments FragmentConfig `toml:"fragments"`
	Phases    PhaseConfig    `toml:"phases"`
	Beams     BeamConfig     `toml:"beams"`
	Camera    CameraConfig   `toml:"camera"`

	// TimeSource returns monotonic seconds. Nil uses the wall clock since
	// the scene started.
	TimeSource func() float64 `toml:"-"`
}

// DefaultConfig returns the tuned scene configuration.
func DefaultConfig() Config {
	return Config{
		MaxStep: 0.1,
		Rise: RiseConfig{
			Count:        300,
			X:            Range{-5, 5},
			Y:            Range{-15, -5},
			Z:            Range{-2.5, 2.5},
			Speed:        Range{0.04, 0.34},
			FinalSpeed:   Range{0.04, 0.2},
			WobbleSpeed:  Range{0.01, 0.03},
			WobbleAmount: Range{0.1, 0.3},
			Radius:       Range{0.1, 0.6},
			WobbleFactor: 0.01,
			TopBound:     50,
		},
		Ambient: AmbientConfig{
			Count:         30,
			BaselineY:     -2.5,
			X:             Range{-4, 4},
			Z:             Range{-0.5, 0.5},
			Speed:         Range{0.002, 0.007},
			WobbleSpeed:   Range{0.02, 0.07},
			WobbleAmount:  Range{0.05, 0.15},
			WobbleFactor:  0.02,
			Radius:        Range{0.03, 0.1},
			Lifespan:      Range{10, 30},
			Tick:          1.0 / 60.0,
			BurstFactor:   0.01,
			TopBound:      5,
			TargetOpacity: Range{0.5, 0.9},
			FadeIn:        1,
			FadeInDelay:   Range{0, 0.5},
		},
		Burst: BurstConfig{
			Scale:    1.1,
			Duration: 0.2,
		},
		Fragments: FragmentConfig{
			Count:        IntRange{3, 5},
			RadiusFactor: Range{0.15, 0.35},
			Jitter:       0.05,
			Lift:         Range{0.5, 1.0},
			Distance:     Range{0.1, 0.2},
			Duration:     Range{0.2, 0.3},
			EndScale:     0.1,
		},
		Phases: PhaseConfig{
			Background:         Color{0, 0.02, 0.05, 1},
			BackgroundDuration: 2,
			FadeOutDelay:       1.1,
			FadeOutDuration:    2,
			LightDuration:      1.4,
		},
		Beams: BeamConfig{
			Count:     5,
			Anchor:    Range{0.1, 0.9},
			Width:     Range{40, 120},
			Length:    Range{0.8, 1.3},
			Angle:     Range{-0.35, 0.35},
			Sway:      Range{0.02, 0.08},
			SwaySpeed: Range{0.1, 0.3},
			Intensity: Range{0.08, 0.18},
			Color:     Color{0.62, 0.85, 1, 1},
			FadeIn:    3,
		},
		Camera: CameraConfig{
			FOV:  45,
			Near: 1,
			Far:  1000,
			Z:    5,
		},
	}
}

// LoadConfig reads a TOML file and decodes it with ParseConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
// Keys missing from the document keep their default values; unknown keys
// are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every inconsistent setting, joined into one error.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	ranges := map[string]Range{
		"rise.x": c.Rise.X, "rise.y": c.Rise.Y, "rise.z": c.Rise.Z,
		"rise.speed": c.Rise.Speed, "rise.final_speed": c.Rise.FinalSpeed,
		"rise.wobble_speed": c.Rise.WobbleSpeed, "rise.wobble_amount": c.Rise.WobbleAmount,
		"rise.radius": c.Rise.Radius,
		"ambient.x": c.Ambient.X, "ambient.z": c.Ambient.Z, "ambient.speed": c.Ambient.Speed,
		"ambient.wobble_speed": c.Ambient.WobbleSpeed, "ambient.wobble_amount": c.Ambient.WobbleAmount,
		"ambient.radius": c.Ambient.Radius, "ambient.lifespan": c.Ambient.Lifespan,
		"ambient.target_opacity": c.Ambient.TargetOpacity, "ambient.fade_in_delay": c.Ambient.FadeInDelay,
		"fragments.radius_factor": c.Fragments.RadiusFactor, "fragments.lift": c.Fragments.Lift,
		"fragments.distance": c.Fragments.Distance, "fragments.duration": c.Fragments.Duration,
		"beams.anchor": c.Beams.Anchor, "beams.width": c.Beams.Width, "beams.length": c.Beams.Length,
		"beams.angle": c.Beams.Angle, "beams.sway": c.Beams.Sway, "beams.sway_speed": c.Beams.SwaySpeed,
		"beams.intensity": c.Beams.Intensity,
	}
	for name, r := range ranges {
		check(r.Min <= r.Max, "%s: min %g > max %g", name, r.Min, r.Max)
	}
	check(c.Rise.Count >= 0, "rise.count: negative")
	check(c.Ambient.Count >= 0, "ambient.count: negative")
	check(c.Beams.Count >= 0, "beams.count: negative")
	check(c.Ambient.Lifespan.Min > 0, "ambient.lifespan: must be positive")
	check(c.Ambient.Tick > 0, "ambient.tick: must be positive")
	check(c.Fragments.Count.Min >= 0 && c.Fragments.Count.Min <= c.Fragments.Count.Max,
		"fragments.count: bad range [%d, %d]", c.Fragments.Count.Min, c.Fragments.Count.Max)
	check(c.FixedStep >= 0, "fixed_step: negative")
	check(c.MaxStep > 0, "max_step: must be positive")
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera: need 0 < near < far")
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov: out of range")
	return errors.Join(errs...)
}

// UnmarshalText parses "#rrggbb" so colors can be written as hex strings in
// TOML.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHexColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText formats the color as "#rrggbb".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

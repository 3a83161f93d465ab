// Package config loads the game's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid value")

// Obstacle kinds.
const (
	KindBlockade     = "blockade"
	KindDestructible = "destructible"
)

// RunLogOff as Config.RunLog turns off run logging.
const RunLogOff = "off"

// Input modes.
const (
	InputKeys  = "keys"
	InputTouch = "touch"
)

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Physics struct {
	Gravity            Vec  `yaml:"gravity"`
	VelocityIterations int  `yaml:"velocity_iterations"`
	PositionIterations int  `yaml:"position_iterations"`
	Sleep              bool `yaml:"sleep"`
}

type Frame struct {
	// MaxDelta caps the seconds simulated by a single frame.
	MaxDelta float64 `yaml:"max_delta"`
	FPS      int     `yaml:"fps"`
	// Scale is the number of terminal cells per world unit.
	Scale float64 `yaml:"scale"`
}

type Input struct {
	Mode                 string        `yaml:"mode"`
	KeySpeed             float64       `yaml:"key_speed"`
	Cooldown             time.Duration `yaml:"cooldown"`
	TouchSpeedMultiplier float64       `yaml:"touch_speed_multiplier"`
	MaxTouch             time.Duration `yaml:"max_touch"`
	// KeyHold is how long a key counts as held after its last press
	// event; terminals report repeats, not releases.
	KeyHold time.Duration `yaml:"key_hold"`
}

type Player struct {
	Start         Vec     `yaml:"start"`
	Size          float64 `yaml:"size"`
	Anchor        float64 `yaml:"anchor"`
	Radius        float64 `yaml:"radius"`
	Density       float64 `yaml:"density"`
	MovementForce float64 `yaml:"movement_force"`
	MaxSpeed      float64 `yaml:"max_speed"`
}

type Obstacle struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type Obstacles struct {
	Items []Obstacle `yaml:"items"`
	// Repeat is the length of the course after which Items repeat.
	// Zero places them once.
	Repeat float64 `yaml:"repeat"`
	// Ahead is how far in front of the player obstacles are spawned.
	Ahead float64 `yaml:"ahead"`
	// LimitDistance is how far behind the player obstacles are culled.
	LimitDistance float64 `yaml:"limit_distance"`
}

type Log struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Config is the complete game configuration.
type Config struct {
	Physics   Physics   `yaml:"physics"`
	Frame     Frame     `yaml:"frame"`
	Input     Input     `yaml:"input"`
	Player    Player    `yaml:"player"`
	Obstacles Obstacles `yaml:"obstacles"`
	Log       Log       `yaml:"log"`
	// Atlas is an optional YAML sprite atlas merged over the built-in one.
	Atlas string `yaml:"atlas"`
	// RunLog is the file finished runs are appended to. Empty uses
	// $XDG_DATA_HOME/swipe/runs.jsonl and RunLogOff disables it.
	RunLog string `yaml:"run_log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Physics: Physics{
			VelocityIterations: 6,
			PositionIterations: 2,
		},
		Frame: Frame{
			MaxDelta: 0.1,
			FPS:      60,
			Scale:    1,
		},
		Input: Input{
			Mode:                 InputKeys,
			KeySpeed:             5,
			Cooldown:             500 * time.Millisecond,
			TouchSpeedMultiplier: 40,
			MaxTouch:             1000 * time.Millisecond,
			KeyHold:              150 * time.Millisecond,
		},
		Player: Player{
			Size:          2,
			Anchor:        0.5,
			Radius:        0.5,
			Density:       1,
			MovementForce: 20,
			MaxSpeed:      18,
		},
		Obstacles: Obstacles{
			Items: []Obstacle{
				{Kind: KindBlockade, X: 12, Y: 2},
				{Kind: KindDestructible, X: 20, Y: -3},
				{Kind: KindBlockade, X: 28, Y: -1},
				{Kind: KindDestructible, X: 34, Y: 4},
				{Kind: KindBlockade, X: 40, Y: 5},
			},
			Repeat:        40,
			Ahead:         60,
			LimitDistance: 30,
		},
		Log: Log{
			Level: "info",
			Path:  "swipe.log",
		},
	}
}

// Parse decodes YAML from r over Default and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the YAML file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field string, value any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s = %v: %w", field, value, ErrInvalid))
		}
	}

	check(c.Physics.VelocityIterations > 0, "physics.velocity_iterations", c.Physics.VelocityIterations)
	check(c.Physics.PositionIterations > 0, "physics.position_iterations", c.Physics.PositionIterations)
	check(c.Frame.MaxDelta > 0, "frame.max_delta", c.Frame.MaxDelta)
	check(c.Frame.FPS > 0, "frame.fps", c.Frame.FPS)
	check(c.Frame.Scale > 0, "frame.scale", c.Frame.Scale)
	check(c.Input.Mode == InputKeys || c.Input.Mode == InputTouch, "input.mode", c.Input.Mode)
	check(c.Input.Cooldown >= 0, "input.cooldown", c.Input.Cooldown)
	check(c.Input.MaxTouch > 0, "input.max_touch", c.Input.MaxTouch)
	check(c.Input.KeyHold >= 0, "input.key_hold", c.Input.KeyHold)
	check(c.Player.Size > 0, "player.size", c.Player.Size)
	check(c.Player.Anchor >= 0 && c.Player.Anchor <= 1, "player.anchor", c.Player.Anchor)
	check(c.Player.Radius > 0, "player.radius", c.Player.Radius)
	check(c.Player.Density > 0, "player.density", c.Player.Density)
	check(c.Player.MaxSpeed >= 0, "player.max_speed", c.Player.MaxSpeed)
	check(c.Obstacles.Repeat >= 0, "obstacles.repeat", c.Obstacles.Repeat)
	check(c.Obstacles.LimitDistance >= 0, "obstacles.limit_distance", c.Obstacles.LimitDistance)
	for i, o := range c.Obstacles.Items {
		check(o.Kind == KindBlockade || o.Kind == KindDestructible, fmt.Sprintf("obstacles.items[%d].kind", i), o.Kind)
	}

	return errors.Join(errs...)
}

// FrameDuration returns the target time between frames.
func (c Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.Frame.FPS)
}

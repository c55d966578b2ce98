package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/portal2d/scene"
	"gopkg.in/yaml.v3"
)

const (
	PlayerFile  = "player.yaml"
	CubeFile    = "cube.yaml"
	PaletteFile = "palette.yaml"
)

var ErrInvalidTuning = errors.New("prefabs: invalid tuning")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type BodySpec struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Friction float64 `yaml:"friction"`
}

func (b BodySpec) tuning(name string) (scene.BodyTuning, error) {
	if b.Width <= 0 || b.Height <= 0 {
		return scene.BodyTuning{}, fmt.Errorf("%w: %s body is %dx%d", ErrInvalidTuning, name, b.Width, b.Height)
	}
	if b.Friction < 0 || b.Friction > 1 {
		return scene.BodyTuning{}, fmt.Errorf("%w: %s friction %v outside [0,1]", ErrInvalidTuning, name, b.Friction)
	}
	return scene.BodyTuning{Width: b.Width, Height: b.Height, Friction: b.Friction}, nil
}

type PlayerSpec struct {
	Name      string     `yaml:"name"`
	Body      BodySpec   `yaml:"body"`
	MoveSpeed float64    `yaml:"move_speed"`
	JumpSpeed float64    `yaml:"jump_speed"`
	Color     *YAMLColor `yaml:"color"`
}

type CubeSpec struct {
	Name       string     `yaml:"name"`
	Body       BodySpec   `yaml:"body"`
	HoldOffset float64    `yaml:"hold_offset"`
	Color      *YAMLColor `yaml:"color"`
}

// PaletteSpec colours the frontend. Missing entries keep their defaults.
type PaletteSpec struct {
	Background  *YAMLColor `yaml:"background"`
	Friendly    *YAMLColor `yaml:"friendly"`
	Resistant   *YAMLColor `yaml:"resistant"`
	Conditional *YAMLColor `yaml:"conditional"`
	PortalA     *YAMLColor `yaml:"portal_a"`
	PortalB     *YAMLColor `yaml:"portal_b"`
	Door        *YAMLColor `yaml:"door"`
	Button      *YAMLColor `yaml:"button"`
	ButtonOn    *YAMLColor `yaml:"button_on"`
	Text        *YAMLColor `yaml:"text"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadCubeSpec() (*CubeSpec, error) {
	spec, err := LoadSpec[CubeSpec](CubeFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadPaletteSpec() (*PaletteSpec, error) {
	spec, err := LoadSpec[PaletteSpec](PaletteFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadTuning reads the player and cube prefabs into scene tuning.
func LoadTuning() (scene.Tuning, error) {
	player, err := LoadPlayerSpec()
	if err != nil {
		return scene.Tuning{}, err
	}
	cube, err := LoadCubeSpec()
	if err != nil {
		return scene.Tuning{}, err
	}
	return Tuning(player, cube)
}

func Tuning(player *PlayerSpec, cube *CubeSpec) (scene.Tuning, error) {
	pb, err := player.Body.tuning(PlayerFile)
	if err != nil {
		return scene.Tuning{}, err
	}
	if player.MoveSpeed <= 0 || player.JumpSpeed <= 0 {
		return scene.Tuning{}, fmt.Errorf("%w: %s speeds must be positive", ErrInvalidTuning, PlayerFile)
	}
	cb, err := cube.Body.tuning(CubeFile)
	if err != nil {
		return scene.Tuning{}, err
	}
	return scene.Tuning{
		Player: scene.PlayerTuning{BodyTuning: pb, MoveSpeed: player.MoveSpeed, JumpSpeed: player.JumpSpeed},
		Cube:   scene.CubeTuning{BodyTuning: cb, HoldOffset: cube.HoldOffset},
	}, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns the parsed colour, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/milk9111/portal2d/physics"
	"github.com/milk9111/portal2d/scene"
)

//go:embed *.json
var LevelsFS embed.FS

type Level struct {
	Name            string     `json:"name"`
	Width           int        `json:"width"`
	Height          int        `json:"height"`
	Start           Point      `json:"start"`
	Door            Point      `json:"door"`
	Help            Point      `json:"help"`
	Tip             string     `json:"tip,omitempty"`
	Obstacles       []Obstacle `json:"obstacles"`
	Cubes           []Point    `json:"cubes,omitempty"`
	FloorButtons    []Button   `json:"floor_buttons,omitempty"`
	PedestalButtons []Button   `json:"pedestal_buttons,omitempty"`
	Rules           []Rule     `json:"rules,omitempty"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Obstacle struct {
	Name   string               `json:"name"`
	X      float64              `json:"x"`
	Y      float64              `json:"y"`
	Width  int                  `json:"width"`
	Height int                  `json:"height"`
	Kind   physics.ObstacleKind `json:"kind"`
}

type Button struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Rule switches a conditional obstacle on while When evaluates to true.
type Rule struct {
	Obstacle string `json:"obstacle"`
	When     string `json:"when"`
}

// Names lists the embedded level files in play order.
func Names() []string {
	entries, err := fs.Glob(LevelsFS, "level*.json")
	if err != nil {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i]) != len(entries[j]) {
			return len(entries[i]) < len(entries[j])
		}
		return entries[i] < entries[j]
	})
	return entries
}

// NormalizeName accepts "level3", "level3.json" or "3".
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if !strings.HasPrefix(name, "level") {
		name = "level" + name
	}
	if path.Ext(name) != ".json" {
		name += ".json"
	}
	return name
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, NormalizeName(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	return &lvl, nil
}

// Layout converts the decoded level into a scene layout.
func (l *Level) Layout() scene.Layout {
	out := scene.Layout{
		Name:   l.Name,
		Width:  l.Width,
		Height: l.Height,
		Start:  scene.Point(l.Start),
		Door:   scene.Point(l.Door),
		Help:   scene.Point(l.Help),
		Tip:    l.Tip,
	}
	for _, o := range l.Obstacles {
		out.Obstacles = append(out.Obstacles, scene.ObstacleDef{
			Name:   o.Name,
			X:      o.X,
			Y:      o.Y,
			Width:  o.Width,
			Height: o.Height,
			Kind:   o.Kind,
		})
	}
	for _, c := range l.Cubes {
		out.Cubes = append(out.Cubes, scene.Point(c))
	}
	for _, b := range l.FloorButtons {
		out.FloorButtons = append(out.FloorButtons, scene.ButtonDef(b))
	}
	for _, b := range l.PedestalButtons {
		out.PedestalButtons = append(out.PedestalButtons, scene.ButtonDef(b))
	}
	for _, r := range l.Rules {
		out.Rules = append(out.Rules, scene.RuleDef(r))
	}
	return out
}

// LoadLayout reads an embedded level and converts it.
func LoadLayout(name string) (scene.Layout, error) {
	lvl, err := LoadLevelFromFS(name)
	if err != nil {
		return scene.Layout{}, err
	}
	return lvl.Layout(), nil
}

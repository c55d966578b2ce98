package levels

import (
	"testing"

	"github.com/milk9111/portal2d/physics"
	"github.com/milk9111/portal2d/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"level1.json", "level2.json", "level3.json",
		"level4.json", "level5.json", "level6.json",
	}, Names())
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"3":           "level3.json",
		"level3":      "level3.json",
		"level3.json": "level3.json",
		" 4 ":         "level4.json",
		"":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in), in)
	}
}

func TestAllLevelsBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			layout, err := LoadLayout(name)
			require.NoError(t, err)
			assert.Equal(t, 1000, layout.Width)
			assert.Equal(t, 600, layout.Height)
			assert.NotEmpty(t, layout.Tip)

			s, err := scene.Build(layout, scene.DefaultTuning())
			require.NoError(t, err)

			for i := 0; i < 30; i++ {
				res := s.Tick(nil)
				require.Equal(t, scene.None, res.Outcome)
			}
		})
	}
}

func TestLevelFour(t *testing.T) {
	layout, err := LoadLayout("4")
	require.NoError(t, err)

	require.Len(t, layout.Cubes, 1)
	assert.Equal(t, scene.Point{X: 100, Y: 324}, layout.Cubes[0])
	require.Len(t, layout.Rules, 2)

	kinds := map[string]physics.ObstacleKind{}
	for _, o := range layout.Obstacles {
		kinds[o.Name] = o.Kind
	}
	assert.Equal(t, physics.Conditional, kinds["toggle wall 1"])
	assert.Equal(t, physics.Resistant, kinds["central divider"])
	assert.Equal(t, physics.Friendly, kinds["floor"])

	s, err := scene.Build(layout, scene.DefaultTuning())
	require.NoError(t, err)
	assert.True(t, s.ObstaclePresent("toggle wall 1"))
	assert.True(t, s.ObstaclePresent("toggle wall 2"))
}

func TestLevelFiveDoorWallStartsOff(t *testing.T) {
	layout, err := LoadLayout("level5")
	require.NoError(t, err)
	s, err := scene.Build(layout, scene.DefaultTuning())
	require.NoError(t, err)

	assert.False(t, s.ObstaclePresent("door access toggle wall"))
	assert.True(t, s.ObstaclePresent("cube toggle wall"))
}

func TestMissingLevel(t *testing.T) {
	_, err := LoadLayout("level99")
	assert.Error(t, err)
}

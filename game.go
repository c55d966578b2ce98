package main

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/portal2d/common"
	"github.com/milk9111/portal2d/levels"
	"github.com/milk9111/portal2d/physics"
	"github.com/milk9111/portal2d/prefabs"
	"github.com/milk9111/portal2d/scene"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	screenWidth  = 1000
	screenHeight = 600

	fadeSeconds = 0.75
	tipWidth    = 40

	// ebitenutil debug font metrics
	debugCharWidth  = 6
	debugLineHeight = 16
)

type Game struct {
	frames int
	debug  bool

	levels  []string
	index   int
	scene   *scene.Scene
	tuning  scene.Tuning
	palette palette
	watcher *prefabs.Watcher
	changes *prefabs.ChangeTracker

	tip      string
	tipImage *ebiten.Image

	fade      *gween.Tween
	fadeAlpha float32
}

func NewGame(levelName string, debug, watch bool) (*Game, error) {
	g := &Game{
		debug:  debug,
		levels: levels.Names(),
	}
	if len(g.levels) == 0 {
		return nil, fmt.Errorf("no levels embedded")
	}

	if levelName != "" {
		want := levels.NormalizeName(levelName)
		g.index = -1
		for i, name := range g.levels {
			if name == want {
				g.index = i
			}
		}
		if g.index < 0 {
			return nil, fmt.Errorf("unknown level %q", levelName)
		}
	}

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return nil, err
	}
	g.tuning = tuning

	if g.palette, err = loadPalette(); err != nil {
		log.WithError(err).Warn("using default palette")
	}

	if watch {
		w, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			log.WithError(err).Warn("prefab hot reload disabled")
		} else {
			g.watcher = w
			g.changes = prefabs.NewChangeTracker()
		}
	}

	if err := g.load(g.index); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) load(index int) error {
	name := g.levels[index]
	layout, err := levels.LoadLayout(name)
	if err != nil {
		return err
	}
	s, err := scene.Build(layout, g.tuning, scene.WithLogger(log.WithField("level", layout.Name)))
	if err != nil {
		return fmt.Errorf("build %s: %w", name, err)
	}
	g.index = index
	g.scene = s
	g.fade = nil
	g.fadeAlpha = 0
	log.WithField("level", layout.Name).Info("level loaded")
	return nil
}

func (g *Game) Update() error {
	g.frames++
	g.pollPrefabs()

	if g.fade != nil {
		alpha, done := g.fade.Update(1.0 / float32(ebiten.DefaultTPS))
		g.fadeAlpha = alpha
		if done {
			return g.load((g.index + 1) % len(g.levels))
		}
		return nil
	}

	in := readInput()
	if in.restart {
		log.Info("back to first level")
		return g.load(0)
	}

	res := g.scene.Tick(in.intents())
	for _, e := range res.Events {
		log.WithField("level", g.scene.Name()).Debugf("%s %+v", e.Kind, e.Data)
	}

	switch res.Outcome {
	case scene.BodyWonLevel:
		log.WithField("level", g.scene.Name()).Info("level complete")
		g.fade = gween.New(0, 1, fadeSeconds, ease.InOutQuad)
	case scene.BodyFellOutOfBounds:
		log.WithField("level", g.scene.Name()).Info("fell out of the level, reloading")
		return g.load(g.index)
	}
	return nil
}

// pollPrefabs applies any prefab edits reported since the last frame.
func (g *Game) pollPrefabs() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.prefabChanged(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.WithError(err).Warn("prefab watcher")
		default:
			return
		}
	}
}

func (g *Game) prefabChanged(name string) {
	entry := log.WithField("prefab", name)
	if g.changes != nil && !g.changes.Changed(name) {
		entry.Debug("prefab unchanged")
		return
	}
	if !prefabs.AffectsTuning(name) {
		p, err := loadPalette()
		if err != nil {
			entry.WithError(err).Warn("palette reload failed")
			return
		}
		g.palette = p
		entry.Info("palette reloaded")
		return
	}

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		entry.WithError(err).Warn("tuning reload failed")
		return
	}
	g.tuning = tuning
	if p, err := loadPalette(); err == nil {
		g.palette = p
	}
	if err := g.load(g.index); err != nil {
		entry.WithError(err).Warn("level reload failed")
		return
	}
	entry.Info("tuning reloaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	p := g.palette
	s := g.scene
	screen.Fill(p.background)

	door := s.Door()
	fillRect(screen, door, p.door)

	for _, o := range s.Obstacles() {
		fillRect(screen, o.Rect, p.obstacle(o.Kind))
	}
	for _, b := range s.FloorButtons() {
		fillRect(screen, b.Rect, buttonColor(p, b.On))
	}
	for _, b := range s.PedestalButtons() {
		fillRect(screen, b.Rect, buttonColor(p, b.On))
	}

	for _, c := range [...]physics.Color{physics.ColorA, physics.ColorB} {
		ps := s.PortalState(c)
		if !ps.OnScreen {
			continue
		}
		r := common.NewRect(ps.Pos.X-common.Half(ps.Width), ps.Pos.Y-common.Half(ps.Height), ps.Width, ps.Height)
		fillRect(screen, r, p.portal(c))
	}
	for _, pr := range s.Projectiles() {
		half := float32(pr.Size) / 2
		vector.FillCircle(screen, float32(pr.Pos.X), float32(pr.Pos.Y), half, p.portal(pr.Color), true)
	}

	for _, b := range s.Bodies() {
		clr := p.cube
		if b.ID == scene.PlayerID {
			clr = p.player
		}
		r := common.NewRect(b.Pos.X, b.Pos.Y, b.Width, b.Height)
		fillRect(screen, r, clr)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, p.friendly, false)
	}

	help, tip, visible := s.Help()
	if tip != "" {
		ebitenutil.DebugPrintAt(screen, "?", help.X, help.Y)
	}
	if visible {
		img := g.tipText(tip)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(help.X), float64(help.Y-img.Bounds().Dy()-debugLineHeight))
		op.ColorScale.ScaleWithColor(p.text)
		screen.DrawImage(img, op)
	}

	if g.debug {
		player, _ := s.BodyAt(scene.PlayerID)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"%s  tick %d  FPS %.1f\npos (%.1f, %.1f) vel (%.2f, %.2f) grounded %v",
			s.Name(), s.Ticks(), ebiten.ActualFPS(),
			player.Pos.X, player.Pos.Y, player.Vel.X, player.Vel.Y, player.Grounded,
		), 40, 40)
	}

	if g.fadeAlpha > 0 {
		a := uint8(255 * min(g.fadeAlpha, 1))
		vector.FillRect(screen, 0, 0, screenWidth, screenHeight, color.NRGBA{A: a}, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// tipText renders the wrapped tip once per level. Debug text is white, so the
// palette colour is applied when the image is drawn.
func (g *Game) tipText(tip string) *ebiten.Image {
	if g.tipImage != nil && g.tip == tip {
		return g.tipImage
	}
	lines := wrapText(tip, tipWidth)
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	img := ebiten.NewImage(max(width*debugCharWidth, 1), max(len(lines)*debugLineHeight, 1))
	ebitenutil.DebugPrintAt(img, strings.Join(lines, "\n"), 0, 0)
	if g.tipImage != nil {
		g.tipImage.Deallocate()
	}
	g.tip, g.tipImage = tip, img
	return img
}

func fillRect(screen *ebiten.Image, r common.Rect, clr color.Color) {
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, false)
}

func buttonColor(p palette, on bool) color.Color {
	if on {
		return p.buttonOn
	}
	return p.button
}

// wrapText breaks s into lines of at most width runes, splitting on spaces.
// A single word longer than width gets a line of its own.
func wrapText(s string, width int) []string {
	var lines []string
	var line strings.Builder
	n := 0
	for _, word := range strings.Fields(s) {
		w := utf8.RuneCountInString(word)
		if n > 0 && n+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
			n = 0
		}
		if n > 0 {
			line.WriteByte(' ')
			n++
		}
		line.WriteString(word)
		n += w
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// Package overlay is the desktop window the fox lives in: a frameless,
// floating, transparent ebiten window that draws the current frame and the
// speech bubble, and turns mouse and keyboard input into engine events.
package overlay

import (
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/sethgrid/foxpet/internal/art"
	"github.com/sethgrid/foxpet/internal/geometry"
	"github.com/sethgrid/foxpet/internal/mood"
	"github.com/sethgrid/foxpet/internal/pet"
	"github.com/sethgrid/foxpet/internal/storage"
)

type Options struct {
	Frames art.Frames
	Size   geometry.Size
	Logger *slog.Logger
	Player storage.PlayerState

	// Watcher, when set, delivers config file changes; Reload turns a
	// changed file into a config for the engine.
	Watcher *Watcher
	Reload  func(path string) (pet.Config, error)
}

// Game implements ebiten.Game, pet.Surface and pet.Dialogs. Attach must be
// called before ebiten runs it.
type Game struct {
	engine  *pet.Engine
	layout  Layout
	frames  map[art.Sprite][]*ebiten.Image
	face    *text.GoXFace
	log     *slog.Logger
	player  storage.PlayerState
	watcher *Watcher
	reload  func(string) (pet.Config, error)

	current art.Ref
	hidden  bool
	bubble  []string
	prompt  *ratingPrompt

	dragging  bool
	lastGrab  geometry.Point
	lastLocal geometry.Point
	lastWin   geometry.Point
}

func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	g := &Game{
		layout:  NewLayout(opts.Size),
		frames:  make(map[art.Sprite][]*ebiten.Image),
		face:    text.NewGoXFace(basicfont.Face7x13),
		log:     opts.Logger,
		player:  opts.Player,
		watcher: opts.Watcher,
		reload:  opts.Reload,
	}
	for sprite, imgs := range opts.Frames {
		for _, img := range imgs {
			g.frames[sprite] = append(g.frames[sprite], ebiten.NewImageFromImage(img))
		}
	}
	return g
}

func (g *Game) Attach(e *pet.Engine) {
	g.engine = e
}

// Run configures the window and blocks until it closes.
func (g *Game) Run() error {
	ebiten.SetWindowTitle("foxpet")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowSize(g.layout.Width, g.layout.Height())
	ebiten.SetRunnableOnUnfocused(true)
	return ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{ScreenTransparent: true})
}

// Surface

func (g *Game) Display(ref art.Ref) {
	g.current = ref
}

func (g *Game) MoveWindowTo(x, y int) {
	p := g.layout.WindowPos(geometry.Point{X: x, Y: y})
	ebiten.SetWindowPosition(p.X, p.Y)
}

func (g *Game) SetWindowVisible(visible bool) {
	g.hidden = !visible
	ebiten.SetWindowMousePassthrough(!visible)
}

func (g *Game) AvailableBounds() geometry.Rect {
	w, h := ebiten.Monitor().Size()
	return geometry.Rect{Width: w, Height: h}
}

// Dialogs

func (g *Game) ShowBubble(msg string, wrap bool) {
	if wrap {
		g.bubble = wrapText(msg, bubbleChars)
		return
	}
	g.bubble = []string{msg}
}

func (g *Game) HideBubble() {
	g.bubble = nil
}

func (g *Game) AskRating(question string) {
	g.prompt = newRatingPrompt(question)
}

// Update is called every tick by ebiten.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.drainWatcher()
	g.handleKeys()
	g.handleMouse()
	g.engine.Advance(time.Now())
	return nil
}

func (g *Game) drainWatcher() {
	for g.watcher != nil && g.reload != nil {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			cfg, err := g.reload(name)
			if err != nil {
				g.log.Warn("config reload failed", "path", name, "err", err)
				continue
			}
			g.engine.SetConfig(cfg)
			g.log.Info("config reloaded", "path", name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("config watcher", "err", err)
		default:
			return
		}
	}
}

var ratingKeys = map[ebiten.Key]mood.Rating{
	ebiten.KeyDigit1: mood.RatingAwful,
	ebiten.KeyDigit2: mood.RatingBad,
	ebiten.KeyDigit3: mood.RatingMeh,
	ebiten.KeyDigit4: mood.RatingGood,
	ebiten.KeyDigit5: mood.RatingGreat,
}

func (g *Game) handleKeys() {
	pressed := inpututil.AppendJustPressedKeys(nil)
	if len(pressed) == 0 {
		return
	}
	g.engine.NotifyActivity()

	for _, key := range pressed {
		if g.prompt != nil {
			if g.handlePromptKey(key) {
				continue
			}
		}
		switch key {
		case ebiten.KeyC:
			g.togglePanel(pet.PanelChat)
		case ebiten.KeyM:
			g.togglePanel(pet.PanelMusic)
		case ebiten.KeyH:
			g.engine.ToggleVisible()
		}
	}
}

// handlePromptKey reports whether the open rating prompt consumed key.
func (g *Game) handlePromptKey(key ebiten.Key) bool {
	if r, ok := ratingKeys[key]; ok {
		g.submit(r)
		return true
	}
	switch key {
	case ebiten.KeyArrowLeft:
		g.prompt.move(-1)
	case ebiten.KeyArrowRight:
		g.prompt.move(1)
	case ebiten.KeyEnter:
		g.submit(g.prompt.selected)
	case ebiten.KeyEscape:
		g.prompt = nil
		g.engine.DismissRating()
	default:
		return false
	}
	return true
}

func (g *Game) submit(r mood.Rating) {
	g.prompt = nil
	reply := g.engine.SubmitMoodRating(int(r))
	g.log.Info("mood rating", "rating", int(r), "label", r.Label(), "reply", reply)
}

func (g *Game) togglePanel(panel pet.Panel) {
	if ctx, ok := g.engine.Suspended(); ok && ctx.Panel == panel {
		g.engine.Resume(panel)
		return
	}
	g.engine.Suspend(panel)
}

func (g *Game) handleMouse() {
	cx, cy := ebiten.CursorPosition()
	wx, wy := ebiten.WindowPosition()
	local := geometry.Point{X: cx, Y: cy}
	win := geometry.Point{X: wx, Y: wy}
	global := win.Add(local)

	// The cursor only counts as user activity when it moved over a window
	// that stayed put; walking moves the window under a resting cursor.
	if local != g.lastLocal && win == g.lastWin {
		g.engine.NotifyActivity()
	}
	g.lastLocal, g.lastWin = local, win

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.engine.NotifyActivity()
		if g.hidden || !g.layout.InSprite(local) {
			return
		}
		g.dragging = true
		g.lastGrab = global
		g.engine.OnDragStart(global)
	case g.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.dragging = false
		g.engine.OnDragEnd()
	case g.dragging:
		if delta := global.Sub(g.lastGrab); delta != (geometry.Point{}) {
			g.engine.OnDragMove(delta)
			g.lastGrab = global
		}
	}
}

var (
	bubbleFill   = color.White
	bubbleBorder = color.Black
	bubbleText   = color.Black
)

func (g *Game) Draw(screen *ebiten.Image) {
	if g.hidden {
		return
	}

	if lines := g.bubbleLines(); len(lines) > 0 {
		g.drawBubble(screen, lines)
	}

	if img := g.frame(g.current); img != nil {
		off := g.layout.SpriteOffset()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(off.X), float64(off.Y))
		screen.DrawImage(img, op)
	}
}

// bubbleLines picks what the bubble shows: the rating prompt first, then
// the current speech, then the panel that holds the pet.
func (g *Game) bubbleLines() []string {
	if g.prompt != nil {
		return g.prompt.lines()
	}
	if len(g.bubble) > 0 {
		return g.bubble
	}
	if ctx, ok := g.engine.Suspended(); ok {
		return []string{panelStatus(ctx.Panel, g.player)}
	}
	return nil
}

func (g *Game) drawBubble(screen *ebiten.Image, lines []string) {
	x, y, w, h := g.layout.bubbleBox(lines)
	fill(screen, image.Rect(x, y, x+w, y+h), bubbleBorder)
	fill(screen, image.Rect(x+1, y+1, x+w-1, y+h-1), bubbleFill)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x+bubblePadding), float64(y+bubblePadding+i*lineHeight))
		op.ColorScale.ScaleWithColor(bubbleText)
		text.Draw(screen, line, g.face, op)
	}
}

func fill(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	dst.SubImage(r).(*ebiten.Image).Fill(c)
}

func (g *Game) frame(ref art.Ref) *ebiten.Image {
	imgs := g.frames[ref.Sprite]
	if len(imgs) == 0 {
		return nil
	}
	return imgs[ref.Frame%len(imgs)]
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.layout.Width, g.layout.Height()
}

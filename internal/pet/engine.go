// Package pet is the fox's behavior engine: a timer-driven state machine
// that decides what the pet does and which sprite frame the surface shows.
//
// The engine is not safe for concurrent use. Every method must be called
// from the single event loop that also calls Advance.
package pet

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/sethgrid/foxpet/internal/art"
	"github.com/sethgrid/foxpet/internal/geometry"
	"github.com/sethgrid/foxpet/internal/mood"
	"github.com/sethgrid/foxpet/internal/timer"
)

// Surface is the window the pet lives in.
type Surface interface {
	Display(ref art.Ref)
	MoveWindowTo(x, y int)
	SetWindowVisible(visible bool)
	AvailableBounds() geometry.Rect
}

// Dialogs shows the onboarding conversation. AskRating must eventually be
// answered with SubmitMoodRating or DismissRating.
type Dialogs interface {
	ShowBubble(text string, wrap bool)
	HideBubble()
	AskRating(question string)
}

// Random is satisfied by *rand.Rand.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// FrameCounter reports how many frames a sprite has. *art.Sheet satisfies
// it.
type FrameCounter interface {
	FrameCount(s art.Sprite) int
}

const (
	catState      timer.Category = "state"
	catStep       timer.Category = "step"
	catLogic      timer.Category = "logic"
	catAnim       timer.Category = "anim"
	catDisplay    timer.Category = "display"
	catInactivity timer.Category = "inactivity"
	catIntro      timer.Category = "intro"
)

// PauseContext is what an external suspend saved.
type PauseContext struct {
	Prior      State
	Panel      Panel
	StateTimer timer.Pending
	StepTimer  timer.Pending

	hasState bool
	hasStep  bool
}

type dragContext struct {
	prior      State
	stateTimer timer.Pending
	hasState   bool
}

type Options struct {
	Config  Config
	Frames  FrameCounter
	Size    geometry.Size
	Surface Surface
	Dialogs Dialogs
	Rand    Random
	Logger  *slog.Logger
	Now     time.Time

	// Direction is the initial facing. Zero picks one at random.
	Direction Direction
}

type Engine struct {
	cfg     Config
	frames  FrameCounter
	size    geometry.Size
	surface Surface
	dialogs Dialogs
	rnd     Random
	log     *slog.Logger
	sched   *timer.Scheduler

	state   State
	dir     Direction
	pos     geometry.Point
	bounds  geometry.Rect
	frame   int
	visible bool

	introStarted bool
	question     string

	turnStep    int
	turnTarget  Direction
	wonderCount int
	walkTicks   int
	napDue      bool

	pause *PauseContext
	drag  *dragContext
}

func New(opts Options) *Engine {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Frames == nil {
		opts.Frames = singleFrames{}
	}
	if opts.Dialogs == nil {
		opts.Dialogs = noDialogs{}
	}

	e := &Engine{
		cfg:     opts.Config.Normalized(),
		frames:  opts.Frames,
		size:    opts.Size,
		surface: opts.Surface,
		dialogs: opts.Dialogs,
		rnd:     opts.Rand,
		log:     opts.Logger,
		sched:   timer.New(opts.Now),
		state:   Intro,
		dir:     Right,
		visible: true,
	}
	switch {
	case opts.Direction != 0:
		e.dir = opts.Direction
	case e.rnd.Intn(2) == 0:
		e.dir = Left
	}

	e.bounds = e.surface.AvailableBounds()
	startX := e.bounds.Width - e.size.Width - e.cfg.StartRightMargin
	e.pos = geometry.Place(startX, e.bounds, e.size, e.cfg.BottomMargin, e.cfg.ResetRightMargin)
	e.surface.MoveWindowTo(e.pos.X, e.pos.Y)
	e.surface.Display(art.Ref{Sprite: art.SpriteIdle})
	return e
}

// Advance fires every timer due at or before now.
func (e *Engine) Advance(now time.Time) int {
	return e.sched.Advance(now)
}

func (e *Engine) Now() time.Time {
	return e.sched.Now()
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Direction() Direction {
	return e.dir
}

func (e *Engine) Position() geometry.Point {
	return e.pos
}

func (e *Engine) Config() Config {
	return e.cfg
}

// SetConfig applies new tuning. Timers already running keep their delay;
// everything scheduled afterwards uses cfg.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg.Normalized()
	switch {
	case e.cfg.InactivityTimeout.Duration <= 0:
		e.sched.Cancel(catInactivity)
	case !e.sched.Active(catInactivity) && e.watchesInactivity():
		// Inactivity was just turned on.
		e.resetInactivity()
	}
	e.log.Info("config applied", "name", e.cfg.Name, "dragRelease", string(e.cfg.DragRelease))
}

func (e *Engine) setState(to State) {
	from := e.state
	if from == to {
		return
	}
	if !CanTransition(from, to) {
		e.log.Error("undefined transition", "from", from.String(), "to", to.String())
	}
	e.state = to
	e.log.Debug("state change",
		"from", from.String(),
		"to", to.String(),
		"direction", e.dir.String(),
		"x", e.pos.X,
	)
}

func (e *Engine) ignore(event string) {
	e.log.Debug("ignored event", "event", event, "state", e.state.String())
}

// expect wraps fn so it only runs while the engine is still in s. A timer
// that fires after the state moved on is dropped.
func (e *Engine) expect(s State, name string, fn func()) func() {
	return func() {
		if e.state != s {
			e.log.Debug("stale timer", "timer", name, "expected", s.String(), "state", e.state.String())
			return
		}
		fn()
	}
}

// Onboarding

// StartIntro greets the user and, after a short exchange, asks for a mood
// rating.
func (e *Engine) StartIntro() {
	if e.state != Intro || e.introStarted {
		e.ignore("start-intro")
		return
	}
	e.introStarted = true
	e.frame = 0
	e.display(art.SpriteIdle)
	e.dialogs.ShowBubble(mood.Greeting(e.sched.Now()), true)
	e.sched.Every(catAnim, "idle", e.cfg.SlowFrame.Duration, e.TickAnimation)
	e.sched.Schedule(catIntro, "question", e.cfg.GreetingHold.Duration, e.expect(Intro, "question", e.askQuestion))
}

func (e *Engine) askQuestion() {
	e.question = mood.Question(e.rnd)
	e.dialogs.ShowBubble(e.question, false)
	e.sched.Schedule(catIntro, "rating", e.cfg.QuestionHold.Duration, e.expect(Intro, "rating", func() {
		e.dialogs.HideBubble()
		e.dialogs.AskRating(e.question)
	}))
}

// SubmitMoodRating answers the mood check. It returns the pet's reply, or
// "" when the rating is out of range, which counts as a dismissal.
func (e *Engine) SubmitMoodRating(rating int) string {
	if e.state != Intro {
		e.ignore("rating")
		return ""
	}
	text, ok := mood.Response(mood.Rating(rating), e.rnd)
	if !ok {
		e.DismissRating()
		return ""
	}
	e.sched.Cancel(catIntro)
	e.dialogs.ShowBubble(text, true)
	e.setState(PostIntroIdle)
	e.sched.Schedule(catIntro, "lifecycle", e.cfg.ResponseHold.Duration, e.expect(PostIntroIdle, "lifecycle", e.startMainLifecycle))
	return text
}

// DismissRating skips the reply and goes straight to the main lifecycle.
func (e *Engine) DismissRating() {
	if e.state != Intro {
		e.ignore("dismiss-rating")
		return
	}
	e.startMainLifecycle()
}

// EnterMainLifecycle ends onboarding.
func (e *Engine) EnterMainLifecycle() {
	if e.state != Intro && e.state != PostIntroIdle {
		e.ignore("main-lifecycle")
		return
	}
	e.startMainLifecycle()
}

func (e *Engine) startMainLifecycle() {
	e.sched.Cancel(catIntro)
	e.dialogs.HideBubble()
	e.drag = nil
	e.sched.Every(catDisplay, "bounds", e.cfg.DisplayCheck.Duration, e.RefreshBounds)
	e.resetInactivity()
	e.enterWalking()
}

// Walking and its micro-behaviors

func (e *Engine) enterWalking() {
	e.setState(Walking)
	e.napDue = false
	e.sched.Schedule(catState, "walk", e.cfg.WalkDuration.Pick(e.rnd), e.switchState)
	e.runTickers(Walking)
}

// resumeWalking returns from a micro-behavior. The walk's state timer kept
// running underneath.
func (e *Engine) resumeWalking() {
	e.setState(Walking)
	if e.napDue {
		e.beginNap()
		return
	}
	e.runTickers(Walking)
}

func (e *Engine) resumeFrom(s State) func() {
	return e.expect(s, "resume-walk", e.resumeWalking)
}

// switchState is the state timer: walking naps, sleeping wakes.
func (e *Engine) switchState() {
	switch {
	case e.state == Walking:
		e.beginNap()
	case e.state.walkingFamily():
		// Finish the current micro-behavior first.
		e.napDue = true
	case e.state == Sleeping:
		e.setState(WakingUp)
		e.sched.Cancel(catAnim)
		e.showPosture()
		e.sched.Schedule(catStep, "wake", e.cfg.WakeUp.Pick(e.rnd), e.expect(WakingUp, "wake", e.enterWalking))
	default:
		e.log.Debug("stale timer", "timer", "state", "state", e.state.String())
	}
}

func (e *Engine) beginNap() {
	e.napDue = false
	e.setState(Idling)
	e.sched.Cancel(catLogic, catAnim)
	e.showPosture()
	e.sched.Schedule(catStep, "drowsy", e.cfg.Drowsy.Pick(e.rnd), e.expect(Idling, "drowsy", e.enterSleeping))
}

func (e *Engine) enterSleeping() {
	e.setState(Sleeping)
	e.sched.Cancel(catLogic)
	e.frame = 0
	e.display(art.SpriteSleep)
	e.sched.Schedule(catState, "sleep", e.cfg.SleepDuration.Pick(e.rnd), e.switchState)
	e.runTickers(Sleeping)
}

func (e *Engine) walkLogic() {
	if e.state != Walking {
		return
	}
	e.walkTicks++

	t := e.cfg.Thresholds
	r := e.rnd.Float64()
	switch {
	case r < t.Wag:
		e.initiateWagging()
	case r < t.Pause:
		e.initiatePause()
	case r < t.Wonder:
		e.initiateWondering()
	case r < t.Turn:
		e.initiateTurn(e.dir.Flip())
	case e.walkTicks > e.cfg.MaxWalkTicks:
		e.initiateTurn(e.dir.Flip())
	}
}

func (e *Engine) initiatePause() {
	if e.state != Walking {
		return
	}
	e.setState(Pausing)
	e.sched.Cancel(catLogic, catAnim)
	e.showPosture()
	e.sched.Schedule(catStep, "pause", e.cfg.PauseHold.Pick(e.rnd), e.resumeFrom(Pausing))
}

func (e *Engine) initiateWagging() {
	if e.state != Walking {
		return
	}
	e.setState(Wagging)
	e.sched.Cancel(catLogic)
	e.runTickers(Wagging)
	e.sched.Schedule(catStep, "wag", e.cfg.WagHold.Pick(e.rnd), e.resumeFrom(Wagging))
}

func (e *Engine) initiateTurn(target Direction) {
	if e.state != Walking {
		return
	}
	e.setState(Turning)
	e.sched.Cancel(catLogic, catAnim)
	e.turnTarget = target
	e.turnStep = 0
	e.advanceTurn()
}

// advanceTurn runs one step of the turn: face the old way, face the new
// way, walk on. Each step is its own timer so a drag can cut in between.
func (e *Engine) advanceTurn() {
	if e.state != Turning {
		return
	}
	switch e.turnStep {
	case 0:
		e.showPosture()
		e.turnStep = 1
		e.sched.Schedule(catStep, "turn", e.cfg.TurnPause.Pick(e.rnd), e.advanceTurn)
	case 1:
		e.dir = e.turnTarget
		e.showPosture()
		e.turnStep = 2
		e.sched.Schedule(catStep, "turn", e.cfg.TurnPause.Pick(e.rnd), e.advanceTurn)
	default:
		e.turnStep = 0
		e.resumeWalking()
	}
}

func (e *Engine) initiateWondering() {
	if e.state != Walking {
		return
	}
	e.setState(Wondering)
	e.sched.Cancel(catLogic, catAnim)
	e.wonderCount = 1 + e.rnd.Intn(e.cfg.WonderMax)
	e.wonderStep()
}

func (e *Engine) wonderStep() {
	if e.state != Wondering {
		return
	}
	e.wonderCount--
	e.dir = e.dir.Flip()
	e.showPosture()
	if e.wonderCount > 0 {
		e.sched.Schedule(catStep, "wonder", e.cfg.WonderStep.Pick(e.rnd), e.wonderStep)
		return
	}
	e.sched.Schedule(catStep, "wonder-settle", e.cfg.WonderSettle.Pick(e.rnd), e.resumeFrom(Wondering))
}

// Animation

// TickAnimation advances the current animation by one frame. While walking
// it also moves the window and turns at the screen edges.
func (e *Engine) TickAnimation() {
	switch e.state {
	case Walking:
		maxX := geometry.MaxX(e.bounds, e.size)
		if e.pos.X >= maxX && e.dir == Right {
			e.initiateTurn(Left)
			return
		}
		if e.pos.X <= 0 && e.dir == Left {
			e.initiateTurn(Right)
			return
		}
		e.pos.X = geometry.Clamp(e.pos.X+e.cfg.Speed*int(e.dir), 0, maxX)
		e.surface.MoveWindowTo(e.pos.X, e.pos.Y)
		e.step(art.Walk(e.dir.Right()))
	case PostTrauma:
		e.step(art.Trauma(e.dir.Right()))
	case Intro, PostIntroIdle, Wagging:
		e.step(art.SpriteIdle)
	case Sleeping, InactivitySleep:
		e.step(art.SpriteSleep)
	}
}

func (e *Engine) step(s art.Sprite) {
	e.frame = (e.frame + 1) % e.frames.FrameCount(s)
	e.display(s)
}

func (e *Engine) display(s art.Sprite) {
	e.frame %= e.frames.FrameCount(s)
	e.surface.Display(art.Ref{Sprite: s, Frame: e.frame})
}

func (e *Engine) showPosture() {
	e.surface.Display(art.Ref{Sprite: art.Posture(e.dir.Right())})
}

// runTickers starts the periodic timers state s runs on.
func (e *Engine) runTickers(s State) {
	switch s {
	case Walking:
		e.walkTicks = 0
		e.sched.Every(catAnim, "walk", e.cfg.WalkFrame.Duration, e.TickAnimation)
		e.sched.Every(catLogic, "walk", e.cfg.LogicInterval.Duration, e.walkLogic)
	case Intro, PostIntroIdle, Wagging:
		e.sched.Every(catAnim, "idle", e.cfg.SlowFrame.Duration, e.TickAnimation)
	case PostTrauma:
		e.sched.Every(catAnim, "trauma", e.cfg.SlowFrame.Duration, e.TickAnimation)
	case Sleeping, InactivitySleep:
		e.sched.Every(catAnim, "sleep", e.cfg.SleepFrame.Duration, e.TickAnimation)
	}
}

// redraw shows the sprite state s starts with.
func (e *Engine) redraw(s State) {
	switch s {
	case Walking:
		e.display(art.Walk(e.dir.Right()))
	case Intro, PostIntroIdle, Wagging:
		e.display(art.SpriteIdle)
	case Sleeping, InactivitySleep:
		e.display(art.SpriteSleep)
	case Dragging:
		e.surface.Display(art.Ref{Sprite: art.Shock(e.dir.Right())})
	case PostTrauma:
		e.display(art.Trauma(e.dir.Right()))
	default:
		e.showPosture()
	}
}

// Dragging

// OnDragStart picks the pet up. Whatever it was doing is interrupted.
func (e *Engine) OnDragStart(pointer geometry.Point) {
	if e.state == Intro || e.state == Dragging {
		e.ignore("drag-start")
		return
	}
	if e.drag == nil {
		ctx := &dragContext{prior: e.state}
		ctx.stateTimer, ctx.hasState = e.sched.Detach(catState)
		e.drag = ctx
	}
	e.sched.Cancel(catState, catStep, catLogic, catAnim, catInactivity, catIntro)
	e.turnStep = 0
	e.wonderCount = 0

	e.setState(Dragging)
	e.redraw(Dragging)
	e.log.Debug("picked up", "pointer.x", pointer.X, "pointer.y", pointer.Y, "prior", e.drag.prior.String())
}

// OnDragMove moves the window by delta while the pet is held.
func (e *Engine) OnDragMove(delta geometry.Point) {
	if e.state != Dragging {
		return
	}
	e.pos = e.pos.Add(delta)
	e.surface.MoveWindowTo(e.pos.X, e.pos.Y)
}

// OnDragEnd drops the pet back onto the baseline and plays the recovery.
func (e *Engine) OnDragEnd() {
	if e.state != Dragging {
		e.ignore("drag-end")
		return
	}
	e.pos.X = geometry.Clamp(e.pos.X, 0, geometry.MaxX(e.bounds, e.size))
	e.pos.Y = geometry.Baseline(e.bounds, e.size, e.cfg.BottomMargin)
	e.surface.MoveWindowTo(e.pos.X, e.pos.Y)

	e.setState(PostTrauma)
	e.frame = 0
	e.redraw(PostTrauma)
	e.runTickers(PostTrauma)
	e.sched.Schedule(catStep, "trauma", e.cfg.Trauma.Pick(e.rnd), e.expect(PostTrauma, "trauma", e.recoverFromTrauma))
}

func (e *Engine) recoverFromTrauma() {
	e.setState(Recovering)
	e.sched.Cancel(catAnim)
	e.showPosture()
	e.sched.Schedule(catStep, "recover", e.cfg.Recover.Pick(e.rnd), e.expect(Recovering, "recover", e.finishRecovery))
}

func (e *Engine) finishRecovery() {
	ctx := e.drag
	e.drag = nil
	if ctx == nil {
		e.startMainLifecycle()
		return
	}

	if ctx.prior == Talking {
		// The panel that suspended us is still open.
		e.setState(Talking)
		e.showPosture()
		return
	}

	e.resetInactivity()
	if e.cfg.DragRelease == DragReleaseRestart {
		e.startMainLifecycle()
		return
	}

	switch {
	case ctx.prior.walkingFamily():
		e.setState(Walking)
		if ctx.hasState {
			e.sched.Rearm(catState, ctx.stateTimer)
		} else {
			e.sched.Schedule(catState, "walk", e.cfg.WalkDuration.Pick(e.rnd), e.switchState)
		}
		if e.napDue {
			// The walk ran out while the pet was busy before the drag.
			e.beginNap()
			return
		}
		e.redraw(Walking)
		e.runTickers(Walking)
	case ctx.prior == Sleeping:
		e.setState(Sleeping)
		if ctx.hasState {
			e.sched.Rearm(catState, ctx.stateTimer)
		} else {
			e.sched.Schedule(catState, "sleep", e.cfg.SleepDuration.Pick(e.rnd), e.switchState)
		}
		e.frame = 0
		e.redraw(Sleeping)
		e.runTickers(Sleeping)
	case ctx.prior == Idling:
		e.enterSleeping()
	default:
		e.startMainLifecycle()
	}
}

// External panels

// Suspend freezes the pet while panel has the user's attention. It is a
// no-op while already suspended, and ignored during onboarding and drags.
func (e *Engine) Suspend(panel Panel) {
	if e.pause != nil {
		e.ignore("suspend")
		return
	}
	switch e.state {
	case Intro, Dragging, PostTrauma, Recovering, Talking:
		e.ignore("suspend")
		return
	}

	ctx := &PauseContext{Prior: e.state, Panel: panel}
	ctx.StateTimer, ctx.hasState = e.sched.Detach(catState)
	ctx.StepTimer, ctx.hasStep = e.sched.Detach(catStep)
	if intro, ok := e.sched.Detach(catIntro); ok && !ctx.hasStep {
		// PostIntroIdle keeps its hold in the intro category.
		ctx.StepTimer, ctx.hasStep = intro, true
	}
	e.sched.Cancel(catLogic, catAnim, catInactivity)
	e.pause = ctx

	e.setState(Talking)
	e.showPosture()
	e.log.Debug("suspended", "panel", string(panel), "prior", ctx.Prior.String(), "remaining", ctx.StateTimer.Remaining)
}

// Resume undoes the matching Suspend. Without one it does nothing.
func (e *Engine) Resume(panel Panel) {
	ctx := e.pause
	if ctx == nil || ctx.Panel != panel {
		e.ignore("resume")
		return
	}
	e.pause = nil

	if e.state != Talking {
		// Picked up while suspended: recovery resumes what the panel
		// interrupted instead.
		if e.drag != nil && e.drag.prior == Talking {
			e.drag.prior = ctx.Prior
			e.drag.stateTimer, e.drag.hasState = ctx.StateTimer, ctx.hasState
		}
		return
	}

	e.setState(ctx.Prior)
	if ctx.hasState {
		e.sched.Rearm(catState, ctx.StateTimer)
	}
	if ctx.hasStep {
		cat := catStep
		if ctx.Prior == PostIntroIdle {
			cat = catIntro
		}
		e.sched.Rearm(cat, ctx.StepTimer)
	}
	e.redraw(ctx.Prior)
	e.runTickers(ctx.Prior)
	if ctx.Prior != PostIntroIdle && ctx.Prior != InactivitySleep {
		e.resetInactivity()
	}
	e.log.Debug("resumed", "panel", string(panel), "state", e.state.String())
}

// Suspended reports the saved context while a panel holds the pet.
func (e *Engine) Suspended() (PauseContext, bool) {
	if e.pause == nil {
		return PauseContext{}, false
	}
	return *e.pause, true
}

// Inactivity

// NotifyActivity tells the engine the user is around. It wakes the pet from
// an inactivity nap.
func (e *Engine) NotifyActivity() {
	switch {
	case e.state == InactivitySleep:
		e.setState(WakingUp)
		e.sched.Cancel(catAnim)
		e.showPosture()
		e.sched.Schedule(catStep, "wake", e.cfg.WakeUp.Pick(e.rnd), e.expect(WakingUp, "wake", e.enterWalking))
		e.resetInactivity()
	case e.sched.Active(catInactivity):
		e.resetInactivity()
	}
}

func (e *Engine) resetInactivity() {
	if e.cfg.InactivityTimeout.Duration <= 0 {
		e.sched.Cancel(catInactivity)
		return
	}
	e.sched.Schedule(catInactivity, "nap", e.cfg.InactivityTimeout.Duration, e.onInactive)
}

// watchesInactivity reports states that keep the inactivity timer armed.
func (e *Engine) watchesInactivity() bool {
	switch {
	case e.state.walkingFamily():
		return true
	case e.state == Idling, e.state == Sleeping, e.state == WakingUp:
		return true
	}
	return false
}

func (e *Engine) onInactive() {
	if !e.state.walkingFamily() && e.state != Idling {
		// Busy sleeping or waking; look again later.
		e.resetInactivity()
		return
	}
	e.setState(InactivitySleep)
	e.sched.Cancel(catState, catStep, catLogic, catAnim)
	e.napDue = false
	e.turnStep = 0
	e.wonderCount = 0
	e.frame = 0
	e.redraw(InactivitySleep)
	e.runTickers(InactivitySleep)
}

// Window

// RefreshBounds re-reads the available screen area and, if it changed,
// puts the window back on screen at the baseline.
func (e *Engine) RefreshBounds() {
	b := e.surface.AvailableBounds()
	if b == e.bounds || b.Empty() {
		return
	}
	e.bounds = b
	e.log.Info("display changed", "width", b.Width, "height", b.Height)
	if e.state == Dragging {
		return
	}
	e.pos = geometry.Place(e.pos.X, b, e.size, e.cfg.BottomMargin, e.cfg.ResetRightMargin)
	e.surface.MoveWindowTo(e.pos.X, e.pos.Y)
}

func (e *Engine) SetVisible(visible bool) {
	e.visible = visible
	e.surface.SetWindowVisible(visible)
}

func (e *Engine) ToggleVisible() {
	e.SetVisible(!e.visible)
}

func (e *Engine) Visible() bool {
	return e.visible
}

// Snapshot is a read-only view of the engine for logs and tests.
// StateTimer is the time left on the macro-phase timer, zero if none.
type Snapshot struct {
	State       State
	Direction   Direction
	Position    geometry.Point
	Frame       int
	TurnStep    int
	WonderCount int
	WalkTicks   int
	NapDue      bool
	Suspended   bool
	Visible     bool
	StateTimer  time.Duration
	Pending     []string
}

func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		State:       e.state,
		Direction:   e.dir,
		Position:    e.pos,
		Frame:       e.frame,
		TurnStep:    e.turnStep,
		WonderCount: e.wonderCount,
		WalkTicks:   e.walkTicks,
		NapDue:      e.napDue,
		Suspended:   e.pause != nil,
		Visible:     e.visible,
		Pending:     e.sched.Names(),
	}
	if p, ok := e.sched.Pending(catState); ok {
		snap.StateTimer = p.Remaining
	}
	return snap
}

type singleFrames struct{}

func (singleFrames) FrameCount(art.Sprite) int { return 1 }

type noDialogs struct{}

func (noDialogs) ShowBubble(string, bool) {}
func (noDialogs) HideBubble()             {}
func (noDialogs) AskRating(string)        {}

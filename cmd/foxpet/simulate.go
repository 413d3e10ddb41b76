package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/sethgrid/foxpet/internal/art"
	"github.com/sethgrid/foxpet/internal/geometry"
	"github.com/sethgrid/foxpet/internal/mood"
	"github.com/sethgrid/foxpet/internal/pet"
)

const simStep = 50 * time.Millisecond

var simBounds = geometry.Rect{Width: 1920, Height: 1080}

type simulationOptions struct {
	Config   pet.Config
	Seed     int64
	Rating   int
	Drags    []time.Duration
	Suspends []time.Duration
	Verbose  bool
	Start    time.Time
}

// simulation drives the engine on a virtual clock with a headless surface
// and prints a timeline of what the fox does.
type simulation struct {
	out      io.Writer
	opts     simulationOptions
	engine   *pet.Engine
	asked    bool
	answered bool
}

type simEvent struct {
	at time.Duration
	fn func()
}

func newSimulation(out io.Writer, opts simulationOptions) *simulation {
	s := &simulation{out: out, opts: opts}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	sheet, _ := art.Placeholder(placeholderSize)
	s.engine = pet.New(pet.Options{
		Config:  opts.Config,
		Frames:  sheet,
		Size:    geometry.Size{Width: sheet.Size.Width, Height: sheet.Size.Height},
		Surface: s,
		Dialogs: s,
		Rand:    rand.New(rand.NewSource(opts.Seed)),
		Logger:  slog.New(&timelineHandler{out: out, level: level, elapsed: s.elapsed}),
		Now:     opts.Start,
	})
	return s
}

func (s *simulation) elapsed() time.Duration {
	if s.engine == nil {
		return 0
	}
	return s.engine.Now().Sub(s.opts.Start)
}

func (s *simulation) printf(format string, args ...any) {
	fmt.Fprintf(s.out, "%9s  %s\n", stamp(s.elapsed()), fmt.Sprintf(format, args...))
}

func stamp(d time.Duration) string {
	return fmt.Sprintf("+%.2fs", d.Seconds())
}

func (s *simulation) events() []simEvent {
	var events []simEvent
	for _, at := range s.opts.Drags {
		events = append(events,
			simEvent{at: at, fn: func() {
				s.printf("user picks the fox up")
				s.engine.OnDragStart(s.engine.Position())
			}},
			simEvent{at: at + 500*time.Millisecond, fn: func() {
				s.engine.OnDragMove(geometry.Point{X: -150, Y: -200})
			}},
			simEvent{at: at + time.Second, fn: func() {
				s.printf("user drops the fox")
				s.engine.OnDragEnd()
			}},
		)
	}
	for _, at := range s.opts.Suspends {
		events = append(events,
			simEvent{at: at, fn: func() {
				s.printf("user opens the chat panel")
				s.engine.Suspend(pet.PanelChat)
			}},
			simEvent{at: at + 10*time.Second, fn: func() {
				s.printf("user closes the chat panel")
				s.engine.Resume(pet.PanelChat)
			}},
		)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].at < events[j].at })
	return events
}

func (s *simulation) Run(d time.Duration) {
	events := s.events()
	s.engine.StartIntro()

	for t := time.Duration(0); t <= d; t += simStep {
		s.engine.Advance(s.opts.Start.Add(t))

		if s.asked && !s.answered {
			s.answered = true
			if r := mood.Rating(s.opts.Rating); r.Valid() {
				s.printf("user answers %d (%s)", r, r.Label())
				s.engine.SubmitMoodRating(int(r))
			} else {
				s.printf("user dismisses the prompt")
				s.engine.DismissRating()
			}
		}

		for len(events) > 0 && events[0].at <= t {
			events[0].fn()
			events = events[1:]
		}
	}

	snap := s.engine.Snapshot()
	s.printf("done: %s facing %s at x=%d", snap.State, snap.Direction, snap.Position.X)
}

// Surface

func (s *simulation) Display(art.Ref)                {}
func (s *simulation) MoveWindowTo(x, y int)          {}
func (s *simulation) SetWindowVisible(bool)          {}
func (s *simulation) AvailableBounds() geometry.Rect { return simBounds }

// Dialogs

func (s *simulation) ShowBubble(text string, wrap bool) {
	s.printf("says %q", text)
}

func (s *simulation) HideBubble() {}

func (s *simulation) AskRating(question string) {
	s.printf("asks for a rating: %q", question)
	s.asked = true
}

// timelineHandler prints state changes as timeline rows and everything else
// at or above level as key=value lines.
type timelineHandler struct {
	out     io.Writer
	level   slog.Level
	elapsed func() time.Duration
}

func (h *timelineHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *timelineHandler) WithAttrs([]slog.Attr) slog.Handler       { return h }
func (h *timelineHandler) WithGroup(string) slog.Handler            { return h }

func (h *timelineHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]string)
	var pairs []string
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		pairs = append(pairs, a.Key+"="+a.Value.String())
		return true
	})

	if r.Message == "state change" {
		_, err := fmt.Fprintf(h.out, "%9s  %-16s -> %-16s facing %-5s x=%s\n",
			stamp(h.elapsed()), attrs["from"], attrs["to"], attrs["direction"], attrs["x"])
		return err
	}
	if r.Level < h.level {
		return nil
	}
	_, err := fmt.Fprintf(h.out, "%9s  %s: %s %s\n", stamp(h.elapsed()), r.Level, r.Message, strings.Join(pairs, " "))
	return err
}

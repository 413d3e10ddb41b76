package overlay

import (
	"fmt"
	"strings"

	"github.com/sethgrid/foxpet/internal/geometry"
	"github.com/sethgrid/foxpet/internal/mood"
	"github.com/sethgrid/foxpet/internal/pet"
	"github.com/sethgrid/foxpet/internal/storage"
)

const (
	glyphWidth    = 7
	lineHeight    = 15
	bubblePadding = 10
	bubbleGap     = 5
	bubbleMaxText = 270

	bubbleChars = bubbleMaxText / glyphWidth
	bandHeight  = 90
	windowWidth = bubbleMaxText + 2*bubblePadding + 10
)

// wrapText breaks text into lines of at most width characters at spaces.
// Words longer than width get a line of their own.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var (
		lines []string
		line  strings.Builder
	)
	for _, w := range words {
		if line.Len() > 0 && line.Len()+1+len(w) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
	}
	return append(lines, line.String())
}

// ratingPrompt is the in-window mood check. It starts on the middle rating.
type ratingPrompt struct {
	question string
	selected mood.Rating
}

func newRatingPrompt(question string) *ratingPrompt {
	return &ratingPrompt{question: question, selected: mood.RatingMeh}
}

func (p *ratingPrompt) move(delta int) {
	r := p.selected + mood.Rating(delta)
	if r.Valid() {
		p.selected = r
	}
}

func (p *ratingPrompt) lines() []string {
	var choices []string
	for r := mood.RatingAwful; r <= mood.RatingGreat; r++ {
		if r == p.selected {
			choices = append(choices, fmt.Sprintf("[%d]", r))
		} else {
			choices = append(choices, fmt.Sprintf(" %d ", r))
		}
	}
	return []string{
		p.question,
		strings.Join(choices, " ") + "  " + p.selected.Label(),
		"enter: rate  esc: skip",
	}
}

// panelStatus is the line shown while a panel holds the pet.
func panelStatus(panel pet.Panel, player storage.PlayerState) string {
	switch panel {
	case pet.PanelChat:
		return "chatting..."
	case pet.PanelMusic:
		track := player.Track
		if track == "" {
			track = "no track"
		}
		if player.Muted {
			return fmt.Sprintf("music: %s (muted)", track)
		}
		return fmt.Sprintf("music: %s %d%%", track, int(player.Volume*100+0.5))
	}
	return ""
}

// Layout places the sprite at the bottom of a window wide enough for the
// speech bubble, with the bubble band above it.
type Layout struct {
	Sprite geometry.Size
	Width  int
	Band   int
}

func NewLayout(sprite geometry.Size) Layout {
	return Layout{
		Sprite: sprite,
		Width:  max(sprite.Width, windowWidth),
		Band:   bandHeight,
	}
}

func (l Layout) Height() int {
	return l.Band + l.Sprite.Height
}

func (l Layout) SpriteOffset() geometry.Point {
	return geometry.Point{X: (l.Width - l.Sprite.Width) / 2, Y: l.Band}
}

// WindowPos converts the pet's position into the window's.
func (l Layout) WindowPos(petPos geometry.Point) geometry.Point {
	return petPos.Sub(l.SpriteOffset())
}

// InSprite reports whether a window-local point is over the sprite.
func (l Layout) InSprite(p geometry.Point) bool {
	o := l.SpriteOffset()
	return p.X >= o.X && p.X < o.X+l.Sprite.Width && p.Y >= o.Y && p.Y < o.Y+l.Sprite.Height
}

// bubbleBox is the bubble's rectangle for the given lines, centered over
// the sprite and ending bubbleGap above it.
func (l Layout) bubbleBox(lines []string) (x, y, w, h int) {
	longest := 0
	for _, line := range lines {
		longest = max(longest, len(line))
	}
	w = min(longest*glyphWidth, bubbleMaxText) + 2*bubblePadding
	h = len(lines)*lineHeight + 2*bubblePadding
	x = (l.Width - w) / 2
	y = max(0, l.Band-bubbleGap-h)
	return x, y, w, h
}

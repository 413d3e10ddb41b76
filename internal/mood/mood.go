// Package mood holds the onboarding conversation: the greeting, the
// mood-check question and the canned answers for each rating.
package mood

import (
	"time"
)

// Rating is the user's answer to the mood check, 1 (awful) to 5 (great).
type Rating int

const (
	RatingAwful Rating = iota + 1
	RatingBad
	RatingMeh
	RatingGood
	RatingGreat
)

func (r Rating) Valid() bool {
	return r >= RatingAwful && r <= RatingGreat
}

// Label is the short text shown next to the rating key in the prompt.
func (r Rating) Label() string {
	switch r {
	case RatingAwful:
		return "awful"
	case RatingBad:
		return "bad"
	case RatingMeh:
		return "meh"
	case RatingGood:
		return "good"
	case RatingGreat:
		return "great"
	}
	return "?"
}

// Chooser picks an index in [0, n).
type Chooser interface {
	Intn(n int) int
}

var questions = []string{
	"How's your day going?",
	"How are you doing?",
	"How's your day been?",
}

var responses = map[Rating][]string{
	RatingAwful: {
		"I know it's hard right now, but keep going!",
		"A bad day doesn't mean a bad life. You've got this!",
		"I'm always here for you!",
		"Take a deep breath, you got this!",
	},
	RatingBad: {
		"Don't worry, you have me by your side.",
		"Let's find something to make you smile!",
		"It may be hard but you've got this!",
	},
	RatingMeh: {
		"Let's make the rest of the day a great one!",
		"Keep it up, you're doing well!",
		"Not bad, let's see how we can make it better!",
	},
	RatingGood: {
		"That's great to hear! Let's keep it up.",
		"Awesome! You're doing great.",
		"Let's celebrate your day!",
	},
	RatingGreat: {
		"Wow, how amazing! I'm happy for you.",
		"That's fantastic!",
		"Let's celebrate!",
		"I'm so glad to hear that! Keep shining!",
	},
}

// Greeting depends on the hour of t: morning from 5 to noon, afternoon until
// 18, evening otherwise.
func Greeting(t time.Time) string {
	hour := t.Hour()
	switch {
	case 5 <= hour && hour < 12:
		return "Good morning!"
	case 12 <= hour && hour < 18:
		return "Good afternoon!"
	default:
		return "Good evening!"
	}
}

func Question(c Chooser) string {
	return questions[c.Intn(len(questions))]
}

// Response picks one of the answers for r. It reports false for a rating
// outside 1..5.
func Response(r Rating, c Chooser) (string, bool) {
	set, ok := responses[r]
	if !ok || len(set) == 0 {
		return "", false
	}
	return set[c.Intn(len(set))], true
}

// Responses returns a copy of the answers for r.
func Responses(r Rating) []string {
	return append([]string(nil), responses[r]...)
}

func Questions() []string {
	return append([]string(nil), questions...)
}

package pet

// State is the pet's current behavior.
type State int

const (
	Intro State = iota
	PostIntroIdle
	Walking
	Pausing
	Turning
	Wondering
	Wagging
	Idling
	Sleeping
	WakingUp
	Dragging
	PostTrauma
	Recovering
	Talking
	InactivitySleep
)

var stateNames = map[State]string{
	Intro:           "intro",
	PostIntroIdle:   "post-intro-idle",
	Walking:         "walking",
	Pausing:         "pausing",
	Turning:         "turning",
	Wondering:       "wondering",
	Wagging:         "wagging",
	Idling:          "idling",
	Sleeping:        "sleeping",
	WakingUp:        "waking-up",
	Dragging:        "dragging",
	PostTrauma:      "post-trauma",
	Recovering:      "recovering",
	Talking:         "talking",
	InactivitySleep: "inactivity-sleep",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// walkingFamily reports states that run on top of a walk and share its
// state timer.
func (s State) walkingFamily() bool {
	switch s {
	case Walking, Pausing, Turning, Wondering, Wagging:
		return true
	}
	return false
}

// transitions lists every defined edge. Anything else is a bug in the
// engine.
var transitions = map[State][]State{
	Intro:           {PostIntroIdle, Walking},
	PostIntroIdle:   {Walking, Dragging, Talking},
	Walking:         {Wagging, Pausing, Wondering, Turning, Idling, Dragging, Talking, InactivitySleep},
	Pausing:         {Walking, Dragging, Talking, InactivitySleep},
	Turning:         {Walking, Dragging, Talking, InactivitySleep},
	Wondering:       {Walking, Dragging, Talking, InactivitySleep},
	Wagging:         {Walking, Dragging, Talking, InactivitySleep},
	Idling:          {Sleeping, Dragging, Talking, InactivitySleep},
	Sleeping:        {WakingUp, Dragging, Talking},
	WakingUp:        {Walking, Dragging, Talking},
	InactivitySleep: {WakingUp, Dragging, Talking},
	Dragging:        {PostTrauma},
	PostTrauma:      {Recovering, Dragging},
	Recovering:      {Walking, Sleeping, Talking, Dragging},
	Talking: {
		PostIntroIdle, Walking, Pausing, Turning, Wondering, Wagging,
		Idling, Sleeping, WakingUp, InactivitySleep, Dragging,
	},
}

// CanTransition reports whether to may follow from.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Direction is which way the pet faces: -1 left, +1 right.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) Right() bool {
	return d > 0
}

func (d Direction) Flip() Direction {
	return -d
}

func (d Direction) String() string {
	if d.Right() {
		return "right"
	}
	return "left"
}

// Panel is an auxiliary surface that can hold the pet's attention.
type Panel string

const (
	PanelChat  Panel = "chat"
	PanelMusic Panel = "music"
)

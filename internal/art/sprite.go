package art

import "fmt"

// Sprite names one animation in a sheet.
type Sprite string

const (
	SpriteIdle         Sprite = "idle"
	SpriteWalkLeft     Sprite = "walk_left"
	SpriteWalkRight    Sprite = "walk_right"
	SpritePostureLeft  Sprite = "posture_left"
	SpritePostureRight Sprite = "posture_right"
	SpriteShockLeft    Sprite = "shock_left"
	SpriteShockRight   Sprite = "shock_right"
	SpriteTraumaLeft   Sprite = "trauma_left"
	SpriteTraumaRight  Sprite = "trauma_right"
	SpriteSleep        Sprite = "sleep"
)

// Sprites lists every sprite a sheet must provide.
var Sprites = []Sprite{
	SpriteIdle,
	SpriteWalkLeft,
	SpriteWalkRight,
	SpritePostureLeft,
	SpritePostureRight,
	SpriteShockLeft,
	SpriteShockRight,
	SpriteTraumaLeft,
	SpriteTraumaRight,
	SpriteSleep,
}

// Ref is one frame of one sprite.
type Ref struct {
	Sprite Sprite
	Frame  int
}

func (r Ref) String() string {
	return fmt.Sprintf("%s#%d", r.Sprite, r.Frame)
}

func facing(right bool, left, rightSprite Sprite) Sprite {
	if right {
		return rightSprite
	}
	return left
}

func Walk(right bool) Sprite    { return facing(right, SpriteWalkLeft, SpriteWalkRight) }
func Posture(right bool) Sprite { return facing(right, SpritePostureLeft, SpritePostureRight) }
func Shock(right bool) Sprite   { return facing(right, SpriteShockLeft, SpriteShockRight) }
func Trauma(right bool) Sprite  { return facing(right, SpriteTraumaLeft, SpriteTraumaRight) }

package art

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/colornames"
)

var placeholderColors = map[Sprite]color.RGBA{
	SpriteIdle:         colornames.Darkorange,
	SpriteWalkLeft:     colornames.Orange,
	SpriteWalkRight:    colornames.Orange,
	SpritePostureLeft:  colornames.Coral,
	SpritePostureRight: colornames.Coral,
	SpriteShockLeft:    colornames.Gold,
	SpriteShockRight:   colornames.Gold,
	SpriteTraumaLeft:   colornames.Orchid,
	SpriteTraumaRight:  colornames.Orchid,
	SpriteSleep:        colornames.Slateblue,
}

// Placeholder builds a complete sheet of flat shapes so the pet can run
// without installed art. Facing is marked with an eye on the left or right
// half; frames of the same sprite differ in body height.
func Placeholder(size FrameSize) (*Sheet, Frames) {
	sh := &Sheet{Name: "placeholder", Size: size, Sprites: make(map[Sprite][]string)}
	frames := make(Frames)

	counts := map[Sprite]int{
		SpriteIdle:        2,
		SpriteWalkLeft:    2,
		SpriteWalkRight:   2,
		SpriteTraumaLeft:  2,
		SpriteTraumaRight: 2,
		SpriteSleep:       3,
	}

	for _, s := range Sprites {
		n := counts[s]
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			sh.Sprites[s] = append(sh.Sprites[s], fmt.Sprintf("%s-%d.png", s, i+1))
			frames[s] = append(frames[s], placeholderFrame(size, s, i))
		}
	}
	return sh, frames
}

func placeholderFrame(size FrameSize, s Sprite, i int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))

	bob := (i % 2) * size.Height / 16
	body := image.Rect(size.Width/8, size.Height/3+bob, size.Width*7/8, size.Height)
	draw.Draw(img, body, &image.Uniform{C: placeholderColors[s]}, image.Point{}, draw.Src)

	eye := size.Width / 10
	if eye < 2 {
		eye = 2
	}
	ex := size.Width * 3 / 4
	switch s {
	case SpriteWalkLeft, SpritePostureLeft, SpriteShockLeft, SpriteTraumaLeft:
		ex = size.Width / 4
	case SpriteIdle, SpriteSleep:
		ex = size.Width / 2
	}
	ey := body.Min.Y + size.Height/10
	eyeRect := image.Rect(ex-eye/2, ey, ex+eye/2, ey+eye)
	if s != SpriteSleep {
		draw.Draw(img, eyeRect, &image.Uniform{C: colornames.Black}, image.Point{}, draw.Src)
	}
	return img
}

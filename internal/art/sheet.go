package art

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the sheet description expected at the root of an asset
// directory.
const ManifestFile = "sheet.yaml"

var ErrMissingSprite = errors.New("sprite has no frames")

type FrameSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Sheet describes a character: its frame size and, for every sprite, the
// image files of its frames in order.
type Sheet struct {
	Name    string              `yaml:"name"`
	Size    FrameSize           `yaml:"size"`
	Sprites map[Sprite][]string `yaml:"sprites"`
}

// FrameCount reports how many frames s has. Unknown sprites have one frame
// so frame arithmetic never divides by zero.
func (sh *Sheet) FrameCount(s Sprite) int {
	if n := len(sh.Sprites[s]); n > 0 {
		return n
	}
	return 1
}

// Validate checks that every sprite has at least one frame and that the
// frame size is usable.
func (sh *Sheet) Validate() error {
	if sh.Size.Width <= 0 || sh.Size.Height <= 0 {
		return fmt.Errorf("sheet %q: invalid frame size %dx%d", sh.Name, sh.Size.Width, sh.Size.Height)
	}
	for _, s := range Sprites {
		if len(sh.Sprites[s]) == 0 {
			return fmt.Errorf("sheet %q: %s: %w", sh.Name, s, ErrMissingSprite)
		}
	}
	return nil
}

func ParseSheet(data []byte) (*Sheet, error) {
	var sh Sheet
	if err := yaml.Unmarshal(data, &sh); err != nil {
		return nil, fmt.Errorf("failed to parse sheet: %w", err)
	}
	if err := sh.Validate(); err != nil {
		return nil, err
	}
	return &sh, nil
}

// LoadSheet reads ManifestFile from fsys.
func LoadSheet(fsys fs.FS) (*Sheet, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}
	return ParseSheet(data)
}

// Frames maps every sprite of a sheet to its decoded images.
type Frames map[Sprite][]image.Image

func (f Frames) Frame(r Ref) image.Image {
	frames := f[r.Sprite]
	if len(frames) == 0 {
		return nil
	}
	return frames[r.Frame%len(frames)]
}

// LoadFrames decodes every frame the sheet lists. File names are relative to
// the root of fsys.
func LoadFrames(fsys fs.FS, sh *Sheet) (Frames, error) {
	frames := make(Frames, len(sh.Sprites))
	for sprite, files := range sh.Sprites {
		for _, name := range files {
			data, err := fs.ReadFile(fsys, path.Clean(name))
			if err != nil {
				return nil, fmt.Errorf("failed to read %s frame %s: %w", sprite, name, err)
			}
			img, _, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("failed to decode %s frame %s: %w", sprite, name, err)
			}
			frames[sprite] = append(frames[sprite], img)
		}
	}
	return frames, nil
}

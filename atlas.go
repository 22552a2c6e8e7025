package canopy

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// PlaceholderSheetID is the texture id of the 1×1 magenta image backends
// register so that missing sprites stay visible.
const PlaceholderSheetID = "__placeholder__"

var placeholderSprite = Sprite{
	ID:      PlaceholderSheetID,
	SheetID: PlaceholderSheetID,
	Width:   1,
	Height:  1,
	SheetW:  1,
	SheetH:  1,
}

// SpriteAtlas maps sprite ids to regions of one or more sheet textures.
type SpriteAtlas struct {
	// Sheets lists the sheet texture ids in page order.
	Sheets  []string
	sprites map[string]*Sprite
}

// NewSpriteAtlas returns an empty atlas for registering sprites in code.
func NewSpriteAtlas() *SpriteAtlas {
	return &SpriteAtlas{sprites: make(map[string]*Sprite)}
}

// Add registers s under s.ID.
func (a *SpriteAtlas) Add(s *Sprite) {
	a.sprites[s.ID] = s
}

// Has reports whether id is registered.
func (a *SpriteAtlas) Has(id string) bool {
	_, ok := a.sprites[id]
	return ok
}

// Len returns the number of sprites.
func (a *SpriteAtlas) Len() int { return len(a.sprites) }

// Sprite returns the sprite for id. A missing id logs a warning once and
// returns a magenta placeholder.
func (a *SpriteAtlas) Sprite(id string) *Sprite {
	if a != nil {
		if s, ok := a.sprites[id]; ok {
			return s
		}
	}
	WarnOnce("sprite:"+id, "sprite not found, using placeholder", "sprite", id)
	return &placeholderSprite
}

// LoadSpriteAtlas parses TexturePacker JSON. Both the hash format (single
// "frames" object) and the array format ("textures" array with per-page
// frame lists) are supported. Sheet ids are the page image names without
// extension; sprite ids are frame names without extension.
func LoadSpriteAtlas(jsonData []byte) (*SpriteAtlas, error) {
	var header struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
		Meta     jsonMeta        `json:"meta"`
	}
	if err := json.Unmarshal(jsonData, &header); err != nil {
		return nil, fmt.Errorf("canopy: failed to parse atlas JSON: %w", err)
	}

	atlas := NewSpriteAtlas()
	switch {
	case header.Textures != nil:
		var pages []jsonTexturePage
		if err := json.Unmarshal(header.Textures, &pages); err != nil {
			return nil, fmt.Errorf("canopy: failed to parse atlas textures array: %w", err)
		}
		for _, p := range pages {
			sheet := trimExt(p.Image)
			atlas.Sheets = append(atlas.Sheets, sheet)
			for name, f := range p.Frames {
				atlas.Add(frameToSprite(name, f, sheet, p.Size))
			}
		}
	case header.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(header.Frames, &frames); err != nil {
			return nil, fmt.Errorf("canopy: failed to parse atlas frames: %w", err)
		}
		sheet := trimExt(header.Meta.Image)
		atlas.Sheets = append(atlas.Sheets, sheet)
		for name, f := range frames {
			atlas.Add(frameToSprite(name, f, sheet, header.Meta.Size))
		}
	default:
		return nil, fmt.Errorf("canopy: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return atlas, nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonMeta struct {
	Image string   `json:"image"`
	Size  jsonSize `json:"size"`
}

type jsonFrame struct {
	Frame jsonRect `json:"frame"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Size   jsonSize             `json:"size"`
	Frames map[string]jsonFrame `json:"frames"`
}

func frameToSprite(name string, f jsonFrame, sheet string, size jsonSize) *Sprite {
	return &Sprite{
		ID:      trimExt(name),
		SheetID: sheet,
		X:       f.Frame.X,
		Y:       f.Frame.Y,
		Width:   f.Frame.W,
		Height:  f.Frame.H,
		SheetW:  size.W,
		SheetH:  size.H,
	}
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

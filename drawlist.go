package canopy

// Vertex is one corner of a textured quad. X and Y are in draw-list units
// and multiplied by the list's scale at submission; U and V are normalized
// texture coordinates.
type Vertex struct {
	X, Y float32
	U, V float32
}

// QuadIndices is the triangle index pattern for one quad stored as
// top-left, top-right, bottom-left, bottom-right.
var QuadIndices = [6]uint16{0, 1, 2, 1, 3, 2}

// DrawList is a batch of quads that all sample one texture. Lists are built
// per draw call and never retained across frames.
type DrawList struct {
	TextureID string
	Vertices  []Vertex
	Color     Color
	ScaleX    float32
	ScaleY    float32
	MinFilter TextureFilter
	MagFilter TextureFilter
}

// NewDrawList returns an empty list for textureID with unit scale and no
// tint.
func NewDrawList(textureID string) *DrawList {
	return &DrawList{
		TextureID: textureID,
		Color:     ColorWhite,
		ScaleX:    1,
		ScaleY:    1,
	}
}

// IsEmpty reports whether the list holds no quads.
func (d *DrawList) IsEmpty() bool { return len(d.Vertices) == 0 }

// NumQuads returns the number of quads in the list.
func (d *DrawList) NumQuads() int { return len(d.Vertices) / 4 }

// Reset drops all quads, keeping capacity.
func (d *DrawList) Reset() {
	d.Vertices = d.Vertices[:0]
}

// SetScale sets the multiplier applied to vertex positions.
func (d *DrawList) SetScale(sx, sy float32) {
	d.ScaleX, d.ScaleY = sx, sy
}

// SetColor sets the tint applied to every quad.
func (d *DrawList) SetColor(c Color) {
	d.Color = c
}

// AddQuad appends a quad covering (x, y, w, h) that samples the normalized
// texture rectangle (u0, v0)-(u1, v1).
func (d *DrawList) AddQuad(x, y, w, h, u0, v0, u1, v1 float32) {
	d.Vertices = append(d.Vertices,
		Vertex{x, y, u0, v0},
		Vertex{x + w, y, u1, v0},
		Vertex{x, y + h, u0, v1},
		Vertex{x + w, y + h, u1, v1},
	)
}

// AddTextureQuad appends a quad covering the whole texture.
func (d *DrawList) AddTextureQuad(x, y, w, h float32) {
	d.AddQuad(x, y, w, h, 0, 0, 1, 1)
}

// Append merges other's quads into d. Lists for different textures cannot
// be merged; the append is rejected with a warning and false is returned.
// An empty d adopts other's texture.
func (d *DrawList) Append(other *DrawList) bool {
	if other == nil || other.IsEmpty() {
		return true
	}
	if d.IsEmpty() && d.TextureID == "" {
		d.TextureID = other.TextureID
	}
	if d.TextureID != other.TextureID {
		WarnOnce("drawlist-append:"+d.TextureID+":"+other.TextureID,
			"cannot append draw list with a different texture",
			"texture", d.TextureID, "other", other.TextureID)
		return false
	}
	d.Vertices = append(d.Vertices, other.Vertices...)
	return true
}

// Sprite is a named region of a sprite sheet texture.
type Sprite struct {
	ID      string
	SheetID string
	X, Y    int
	Width   int
	Height  int
	SheetW  int
	SheetH  int
}

// TexCoords returns the sprite's normalized texture rectangle.
func (s *Sprite) TexCoords() (u0, v0, u1, v1 float32) {
	if s.SheetW == 0 || s.SheetH == 0 {
		return 0, 0, 1, 1
	}
	sw, sh := float32(s.SheetW), float32(s.SheetH)
	return float32(s.X) / sw, float32(s.Y) / sh,
		float32(s.X+s.Width) / sw, float32(s.Y+s.Height) / sh
}

// AppendTo adds a quad drawing the sprite at (x, y, w, h). Sprites from a
// different sheet than the list's texture are rejected like Append.
func (s *Sprite) AppendTo(d *DrawList, x, y, w, h float32) bool {
	if d.IsEmpty() && d.TextureID == "" {
		d.TextureID = s.SheetID
	}
	if d.TextureID != s.SheetID {
		WarnOnce("drawlist-sprite:"+d.TextureID+":"+s.SheetID,
			"sprite is on a different sheet than the draw list",
			"sprite", s.ID, "sheet", s.SheetID, "texture", d.TextureID)
		return false
	}
	u0, v0, u1, v1 := s.TexCoords()
	d.AddQuad(x, y, w, h, u0, v0, u1, v1)
	return true
}

// NewSpriteDrawList returns a list holding one quad of s.
func NewSpriteDrawList(s *Sprite, x, y, w, h float32) *DrawList {
	d := NewDrawList(s.SheetID)
	s.AppendTo(d, x, y, w, h)
	return d
}

// Package ebitenrender draws canopy scenes with Ebitengine. Renderer
// implements canopy.GraphicsRenderer and canopy.FontRenderer over ebiten
// images; Game drives a scene from the Ebitengine main loop.
package ebitenrender

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/canopy"
)

// DefaultFontSize is the text size in UI units.
const DefaultFontSize = 8

type texture struct {
	img      *ebiten.Image
	min, mag canopy.TextureFilter
}

// Renderer maps canopy draw lists onto ebiten images. Display draws are in
// UI units and multiplied by the pixel scale; texture draws are in pixels.
type Renderer struct {
	screen   *ebiten.Image
	textures map[string]*texture

	width, height int
	scale         float64

	face       *text.GoTextFace
	lineHeight float64

	verts []ebiten.Vertex
	inds  []uint32
}

// NewRenderer returns a renderer for a width×height UI-unit display drawn
// at scale pixels per unit, with Go Regular as the font.
func NewRenderer(width, height, scale int) (*Renderer, error) {
	r := &Renderer{
		textures: make(map[string]*texture),
		width:    width,
		height:   height,
		scale:    float64(max(scale, 1)),
	}
	if err := r.SetFont(goregular.TTF, DefaultFontSize); err != nil {
		return nil, err
	}
	return r, nil
}

// SetFont replaces the font with TTF or OTF data at size UI units.
func (r *Renderer) SetFont(ttf []byte, size float64) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return fmt.Errorf("ebitenrender: failed to parse font: %w", err)
	}
	r.face = &text.GoTextFace{Source: src, Size: size * r.scale}
	m := r.face.Metrics()
	r.lineHeight = m.HAscent + m.HDescent + m.HLineGap
	return nil
}

// SetScreen sets the image Draw renders to, normally once per frame.
func (r *Renderer) SetScreen(screen *ebiten.Image) { r.screen = screen }

// Scale returns the pixels per UI unit.
func (r *Renderer) Scale() float64 { return r.scale }

// Texture returns the image registered as id.
func (r *Renderer) Texture(id string) (*ebiten.Image, bool) {
	t, ok := r.textures[id]
	if !ok {
		return nil, false
	}
	return t.img, true
}

func (r *Renderer) RegisterTexture(id string, img *image.RGBA, min, mag canopy.TextureFilter) {
	if old, ok := r.textures[id]; ok {
		old.img.Deallocate()
	}
	r.textures[id] = &texture{img: ebiten.NewImageFromImage(img), min: min, mag: mag}
}

func (r *Renderer) HasTexture(id string) bool {
	_, ok := r.textures[id]
	return ok
}

func (r *Renderer) ClearTexture(id string) {
	if t, ok := r.textures[id]; ok {
		t.img.Clear()
	}
}

func (r *Renderer) ClearTextureRegion(id string, x, y, w, h int) {
	t, ok := r.textures[id]
	if !ok {
		return
	}
	sub, ok := t.img.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image)
	if ok {
		sub.Clear()
	}
}

func (r *Renderer) DrawToTexture(id string, list *canopy.DrawList) {
	t, ok := r.textures[id]
	if !ok {
		canopy.WarnOnce("draw-to-missing:"+id, "draw to unregistered texture", "texture", id)
		return
	}
	r.drawList(t.img, list, 1)
}

func (r *Renderer) Draw(list *canopy.DrawList) {
	if r.screen == nil {
		return
	}
	r.drawList(r.screen, list, r.scale)
}

func (r *Renderer) DisplaySize() (int, int) { return r.width, r.height }

// source returns the image and filter for a list's texture. Unknown
// textures draw as the magenta placeholder.
func (r *Renderer) source(id string) (*ebiten.Image, ebiten.Filter) {
	if t, ok := r.textures[id]; ok {
		return t.img, ebitenFilter(t.mag)
	}
	canopy.WarnOnce("texture-missing:"+id, "texture not registered; drawing placeholder", "texture", id)
	return magentaImage(), ebiten.FilterNearest
}

// drawList submits list as one DrawTriangles32 call. unit converts list
// units to target pixels.
func (r *Renderer) drawList(target *ebiten.Image, list *canopy.DrawList, unit float64) {
	if list == nil || list.IsEmpty() {
		return
	}
	src, filter := r.source(list.TextureID)
	b := src.Bounds()
	r.verts, r.inds = appendQuads(r.verts[:0], r.inds[:0], list, float32(b.Dx()), float32(b.Dy()), float32(unit))

	var op ebiten.DrawTrianglesOptions
	op.Filter = filter
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(r.verts, r.inds, src, &op)
}

// appendQuads converts list to ebiten vertices and indices. Texture
// coordinates become source pixels; colors are premultiplied.
func appendQuads(verts []ebiten.Vertex, inds []uint32, list *canopy.DrawList, srcW, srcH, unit float32) ([]ebiten.Vertex, []uint32) {
	c := list.Color
	a := float32(c.A)
	cr, cg, cb := float32(c.R)*a, float32(c.G)*a, float32(c.B)*a
	sx, sy := list.ScaleX*unit, list.ScaleY*unit

	for q := 0; q+3 < len(list.Vertices); q += 4 {
		base := uint32(len(verts))
		for _, v := range list.Vertices[q : q+4] {
			verts = append(verts, ebiten.Vertex{
				DstX:   v.X * sx,
				DstY:   v.Y * sy,
				SrcX:   v.U * srcW,
				SrcY:   v.V * srcH,
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: a,
			})
		}
		for _, i := range canopy.QuadIndices {
			inds = append(inds, base+uint32(i))
		}
	}
	return verts, inds
}

func ebitenFilter(f canopy.TextureFilter) ebiten.Filter {
	if f == canopy.FilterLinear {
		return ebiten.FilterLinear
	}
	return ebiten.FilterNearest
}

var magenta *ebiten.Image

func magentaImage() *ebiten.Image {
	if magenta == nil {
		magenta = ebiten.NewImage(1, 1)
		magenta.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magenta
}

// --- Text ---

func (r *Renderer) DrawText(s string, x, y float64, c canopy.Color) {
	if r.screen == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x*r.scale, y*r.scale)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.LineSpacing = r.lineHeight
	text.Draw(r.screen, s, r.face, op)
}

func (r *Renderer) MeasureText(s string) (w, h float64) {
	w, h = text.Measure(s, r.face, r.lineHeight)
	return w / r.scale, h / r.scale
}

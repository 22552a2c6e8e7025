package canopy

import "image"

// GraphicsRenderer is the pixel backend. Draw takes positions in UI units;
// DrawToTexture takes positions in texture pixels.
type GraphicsRenderer interface {
	// RegisterTexture creates or replaces the texture id from img.
	RegisterTexture(id string, img *image.RGBA, min, mag TextureFilter)
	HasTexture(id string) bool
	// ClearTexture makes every pixel of id transparent.
	ClearTexture(id string)
	// ClearTextureRegion makes the pixel rectangle of id transparent.
	ClearTextureRegion(id string, x, y, w, h int)
	// DrawToTexture renders list into the texture id.
	DrawToTexture(id string, list *DrawList)
	// Draw renders list to the display.
	Draw(list *DrawList)
	// DisplaySize returns the display extent in UI units.
	DisplaySize() (w, h int)
}

// FontRenderer is implemented by graphics backends that can draw text.
type FontRenderer interface {
	DrawText(text string, x, y float64, c Color)
	// MeasureText returns the extent of text in UI units.
	MeasureText(text string) (w, h float64)
}

// TextStyle hints how a text-mode cell run should be decorated.
type TextStyle uint8

const (
	StyleNormal TextStyle = iota
	StyleActive
	StyleDisabled
	StyleHover
)

// TextRenderer is the character grid backend.
type TextRenderer interface {
	SetCursorPos(x, y int)
	RenderString(s string)
	DisplaySize() (w, h int)
}

// StyledTextRenderer is implemented by text backends that can decorate runs.
type StyledTextRenderer interface {
	TextRenderer
	RenderStyledString(s string, style TextStyle)
}

// RenderText writes s at the cursor, styled when the backend supports it.
func RenderText(r TextRenderer, s string, style TextStyle) {
	if sr, ok := r.(StyledTextRenderer); ok && style != StyleNormal {
		sr.RenderStyledString(s, style)
		return
	}
	r.RenderString(s)
}

// StyleFor picks the text style that reflects w's state flags.
func StyleFor(w *Widget) TextStyle {
	switch {
	case !w.State.enabled:
		return StyleDisabled
	case w.State.active:
		return StyleActive
	case w.State.mouseInside:
		return StyleHover
	default:
		return StyleNormal
	}
}

// NewImageBuffer returns a transparent RGBA image for RegisterTexture.
func NewImageBuffer(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// DrawSprite draws the atlas sprite id stretched over rect. Empty ids draw
// nothing; unknown ids draw the placeholder.
func DrawSprite(r GraphicsRenderer, atlas *SpriteAtlas, id string, rect Rect, c Color) {
	if id == "" {
		return
	}
	sp := atlas.Sprite(id)
	list := NewSpriteDrawList(sp, float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height))
	list.SetColor(c)
	r.Draw(list)
}

// DrawBackground draws w's theme background over its outer bounds, then
// the foreground over its inner bounds.
func DrawBackground(r GraphicsRenderer, w *Widget) {
	t := w.Theme()
	if t.Background == "" && t.Foreground == "" {
		return
	}
	var atlas *SpriteAtlas
	if s := w.Scene(); s != nil {
		atlas = s.atlas
	}
	DrawSprite(r, atlas, t.Background, w.State.Bounds(), ColorWhite)
	DrawSprite(r, atlas, t.Foreground, w.State.InnerBounds(), ColorWhite)
}

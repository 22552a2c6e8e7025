package ebitenrender

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/canopy"
)

// Screenshot queues a labeled capture of the next drawn frame. The PNG is
// written to ScreenshotDir with a timestamped name.
func (g *Game) Screenshot(label string) {
	g.shots = append(g.shots, label)
}

// flushScreenshots writes every queued capture of screen.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.shots) == 0 {
		return
	}
	defer func() { g.shots = g.shots[:0] }()

	if err := os.MkdirAll(g.ScreenshotDir, 0o755); err != nil {
		canopy.Logger().Error("screenshot: mkdir failed", "dir", g.ScreenshotDir, "err", err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	seen := make(map[string]int, len(g.shots))
	for _, label := range g.shots {
		path := screenshotPath(g.ScreenshotDir, stamp, label, seen)
		if err := savePNG(path, img); err != nil {
			canopy.Logger().Error("screenshot failed", "err", err)
			continue
		}
		canopy.Logger().Info("screenshot saved", "path", path)
	}
}

// unpremultiply converts premultiplied RGBA pixels to straight alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

// screenshotPath names a capture "<stamp>_<label>.png" inside dir. Runs
// of characters other than letters, digits, '-' and '.' collapse to one
// '_'; a blank label becomes "frame". Labels repeated within one flush,
// tracked in seen, get a "-2", "-3" suffix.
func screenshotPath(dir, stamp, label string, seen map[string]int) string {
	var b strings.Builder
	gap := false
	for _, r := range strings.TrimSpace(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			b.WriteRune(r)
			gap = false
			continue
		}
		if !gap {
			b.WriteByte('_')
			gap = true
		}
	}
	name := b.String()
	if name == "" {
		name = "frame"
	}
	seen[name]++
	if n := seen[name]; n > 1 {
		name += "-" + strconv.Itoa(n)
	}
	return filepath.Join(dir, stamp+"_"+name+".png")
}

// savePNG encodes img in memory, then writes the file.
func savePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

package window

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

const screenshotPrefix = "ubiengine"

// RequestScreenshot captures the next presented frame as a PNG under dir.
func (w *Window) RequestScreenshot(dir string) {
	w.screenshotDir = dir
}

// captureScreenshot reads the back buffer before it is swapped.
func (w *Window) captureScreenshot() {
	dir := w.screenshotDir
	w.screenshotDir = ""

	width, height := w.sdlWindow.GLGetDrawableSize()
	pixels := make([]byte, int(width)*int(height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := savePixels(dir, screenshotPrefix, pixels, int(width), int(height), time.Now())
	if err != nil {
		w.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	w.log.Info("screenshot saved", zap.String("path", path))
}

// savePixels writes bottom-up RGBA rows, as OpenGL returns them, to a
// timestamped PNG in dir.
func savePixels(dir, prefix string, pixels []byte, width, height int, now time.Time) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating screenshot dir: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", prefix, now.Format("2006-01-02_15-04-05.000")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}

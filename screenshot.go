package deepsea

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// capture is a screenshot request stamped with the scene state at the time
// it was made.
type capture struct {
	label string
	frame uint64
	time  float64
	phase Phase
}

// name builds the file name: frame, scene time, and phase first so that a
// directory listing sorts in playback order.
func (c capture) name() string {
	return fmt.Sprintf("f%06d_t%07.3f_%s_%s.png", c.frame, c.time, c.phase, sanitizeLabel(c.label))
}

// Screenshot queues a PNG capture of the frame being drawn. The file lands in
// ScreenshotDir once Draw finishes, named after the frame number, scene time,
// phase, and label. No-op after Teardown.
func (s *Scene) Screenshot(label string) {
	if s.torn {
		return
	}
	s.screenshotQueue = append(s.screenshotQueue, capture{
		label: label,
		frame: s.frames,
		time:  s.clock.Now(),
		phase: s.phases.Phase(),
	})
}

func (s *Scene) flushScreenshots(screen image.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		s.warnf("screenshot: %v", err)
		return
	}
	img := toNRGBA(screen)
	for _, c := range s.screenshotQueue {
		if err := writePNG(filepath.Join(s.ScreenshotDir, c.name()), img); err != nil {
			s.warnf("screenshot: %v", err)
		}
	}
}

// toNRGBA copies src into a straight-alpha image. draw.Draw does the
// un-premultiply.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', and maps everything else
// to '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}

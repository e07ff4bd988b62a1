package overlay

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/example/parkboard/internal/render"
)

// DirSource streams pre-decoded video frames from a directory of raw
// 8-bit RGB files (one frame per .rgb file, lexical order). Decoding the
// container ahead of time keeps the render loop free of codec work on
// small boards. An optional "fps" file in the directory overrides the
// 30fps default.
type DirSource struct {
	w, h  int
	fps   float64
	files []string
	pos   int
}

// OpenDir scans dir for frame files. Returns an error when the
// directory is missing or holds no frames.
func OpenDir(dir string, w, h int) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	s := &DirSource{w: w, h: h, fps: 30}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".rgb") {
			s.files = append(s.files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(s.files)
	if len(s.files) == 0 {
		return nil, fmt.Errorf("overlay: no frames in %s", dir)
	}
	if b, err := os.ReadFile(filepath.Join(dir, "fps")); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64); err == nil && v > 0 {
			s.fps = v
		}
	}
	return s, nil
}

func (s *DirSource) FPS() float64 { return s.fps }

func (s *DirSource) Next() (*render.Frame, bool) {
	if s.pos >= len(s.files) {
		return nil, false
	}
	path := s.files[s.pos]
	s.pos++
	b, err := os.ReadFile(path)
	if err != nil {
		// A vanished or short frame is skipped, not fatal.
		return s.Next()
	}
	f := render.NewFrame(s.w, s.h)
	n := len(b) / 3
	if n > len(f.Pix) {
		n = len(f.Pix)
	}
	for i := 0; i < n; i++ {
		f.Pix[i] = render.Color{
			R: float32(b[i*3+0]) / 255,
			G: float32(b[i*3+1]) / 255,
			B: float32(b[i*3+2]) / 255,
		}
	}
	return f, true
}

func (s *DirSource) Rewind() { s.pos = 0 }

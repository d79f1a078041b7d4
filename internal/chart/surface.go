package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// surface is the drawing target of a single render. It exists only for
// the duration of withSurface.
type surface struct {
	canvas vg.CanvasWriterTo
}

func (r *Renderer) newSurface() (*surface, error) {
	size := r.cfg.size()
	switch r.cfg.Format {
	case FormatPNG:
		c := vgimg.NewWith(
			vgimg.UseWH(size, size),
			vgimg.UseDPI(r.cfg.DPI),
			vgimg.UseBackgroundColor(color.Transparent),
		)
		return &surface{canvas: vgimg.PngCanvas{Canvas: c}}, nil
	case FormatSVG:
		return &surface{canvas: vgsvg.New(size, size)}, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", r.cfg.Format)
	}
}

func (s *surface) draw(p *plot.Plot) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("draw: %v", rec)
		}
	}()
	p.Draw(draw.New(s.canvas))
	return nil
}

// withSurface acquires a surface, lets fn draw on it and writes the
// result to path through a temporary file in the same directory. The
// surface is dropped whether or not fn succeeds; on failure no file
// appears at path.
func (r *Renderer) withSurface(path string, fn func(*surface) error) error {
	s, err := r.newSurface()
	if err != nil {
		return err
	}
	defer func() { s.canvas = nil }()

	if err := fn(s); err != nil {
		return err
	}
	return writeAtomic(path, s)
}

func writeAtomic(path string, s *surface) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := s.canvas.WriteTo(tmp); err != nil {
		cleanup()
		return fmt.Errorf("encode image: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		cleanup()
		return fmt.Errorf("chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

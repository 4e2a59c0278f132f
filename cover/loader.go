// Package cover turns cover references into decoded, screen-sized images.
//
// References are resolved against a local covers directory; online cover
// URLs map to their path under that directory, so a directory mirroring the
// cover CDN serves them without network access.
package cover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/milk9111/roombg/background"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNoCover           = errors.New("cover: no cover reference")
	ErrUnsupportedFormat = errors.New("cover: unsupported format")
	ErrNoEmbeddedArt     = errors.New("cover: audio file has no embedded picture")
)

var audioExts = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".mp4":  true,
	".ogg":  true,
}

// Loader implements background.Loader for local cover files.
type Loader struct {
	root   string
	width  int
	height int
	log    *slog.Logger
	flight singleflight.Group
}

type Option func(*Loader)

func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// NewLoader resolves relative references under root and scales decoded
// covers to fill width x height. A non-positive size keeps the source size.
func NewLoader(root string, width, height int, opts ...Option) *Loader {
	l := &Loader{root: root, width: width, height: height, log: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ background.Loader = (*Loader)(nil)

// Load decodes the cover for id.
func (l *Loader) Load(ctx context.Context, id background.Identity) (*background.Artifact, error) {
	if id.IsEmpty() {
		return nil, ErrNoCover
	}
	img, err := l.Decode(ctx, id.Cover())
	if err != nil {
		return nil, err
	}
	return background.NewArtifact(id, img), nil
}

// Decode returns the scaled image for ref. Concurrent requests for the same
// file share one decode; a caller whose ctx ends stops waiting for it.
func (l *Loader) Decode(ctx context.Context, ref string) (image.Image, error) {
	p, err := l.Path(ref)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := l.flight.DoChan(p, func() (interface{}, error) {
		return l.decodeFile(p)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return res.Val.(image.Image), nil
	}
}

// Path maps a cover reference to a file on disk.
func (l *Loader) Path(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNoCover
	}

	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		switch strings.ToLower(u.Scheme) {
		case "file":
			return filepath.FromSlash(u.Path), nil
		case "http", "https":
			rel := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
			if rel == "" {
				return "", fmt.Errorf("cover: reference %q has no file name: %w", ref, ErrNoCover)
			}
			return filepath.Join(l.root, filepath.FromSlash(rel)), nil
		default:
			return "", fmt.Errorf("cover: reference %q: scheme %q: %w", ref, u.Scheme, ErrUnsupportedFormat)
		}
	}

	if filepath.IsAbs(ref) {
		return filepath.Clean(ref), nil
	}
	return filepath.Join(l.root, filepath.FromSlash(ref)), nil
}

func (l *Loader) decodeFile(p string) (image.Image, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("cover: open %s: %w", p, err)
	}
	defer f.Close()

	var src image.Image
	if audioExts[strings.ToLower(filepath.Ext(p))] {
		src, err = decodeEmbedded(f)
	} else {
		src, err = decodeImage(f)
	}
	if err != nil {
		return nil, fmt.Errorf("cover: decode %s: %w", p, err)
	}

	out := Fill(src, l.width, l.height)
	l.log.Debug("cover decoded", "path", p, "src", src.Bounds().Size(), "dst", out.Bounds().Size())
	return out, nil
}

func decodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupportedFormat
	}
	return img, err
}

func decodeEmbedded(r io.ReadSeeker) (image.Image, error) {
	m, err := tag.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, ErrNoEmbeddedArt
	}
	return decodeImage(bytes.NewReader(pic.Data))
}

// Fill scales src to cover w x h, cropping the overflow evenly. Non-positive
// sizes return src unchanged.
func Fill(src image.Image, w, h int) image.Image {
	if src == nil || w <= 0 || h <= 0 {
		return src
	}
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw <= 0 || sh <= 0 {
		return src
	}

	// Largest source rect with the target aspect ratio.
	crop := sb
	if sw*h > sh*w {
		cw := sh * w / h
		crop.Min.X = sb.Min.X + (sw-cw)/2
		crop.Max.X = crop.Min.X + cw
	} else {
		ch := sw * h / w
		crop.Min.Y = sb.Min.Y + (sh-ch)/2
		crop.Max.Y = crop.Min.Y + ch
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}

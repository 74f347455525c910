package catalog

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// DefaultThumbWidth is the thumbnail width in pixels; height follows the
// image's aspect ratio.
const DefaultThumbWidth = 320

// GenerateThumbnails builds missing thumbnails for every gallery image,
// in parallel. Existing thumbnails are left untouched, so repeat scans are
// cheap.
func (c *Catalog) GenerateThumbnails(ctx context.Context, width int) error {
	if width <= 0 {
		width = DefaultThumbWidth
	}
	dir := filepath.Join(c.root, thumbsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for name := range c.images {
		thumbPath := filepath.Join(dir, thumbName(name))
		if _, err := os.Stat(thumbPath); err == nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			srcPath, err := c.ImagePath(name)
			if err != nil {
				return err
			}
			return makeThumbnail(srcPath, thumbPath, width)
		})
	}
	return g.Wait()
}

func makeThumbnail(srcPath, dstPath string, width int) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decoding %s: %w", srcPath, err)
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return fmt.Errorf("degenerate image %s", srcPath)
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return writePNG(dstPath, dst)
}

// thumbName maps any image name onto a PNG thumbnail name.
func thumbName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "_thumb.png"
}

package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Optimizer rewrites raster images into smaller files.
type Optimizer struct {
	// MaxWidth is the widest an image may stay; wider images are downscaled
	// proportionally. Zero or negative disables scaling.
	MaxWidth int

	// JPEGQuality is the re-encode quality for JPEG sources.
	JPEGQuality int
}

// Optimize re-encodes the image at path in place, downscaling anything wider
// than MaxWidth. The original is backed up first and restored if any step
// fails, so a failed optimization never leaves a corrupted file behind.
//
// Animated GIFs are left untouched; re-encoding would keep only the first
// frame.
func (o *Optimizer) Optimize(path string) error {
	backup := path + ".bak"
	if err := copyFile(path, backup); err != nil {
		return fmt.Errorf("backing up %s: %w", path, err)
	}

	if err := o.reencode(path); err != nil {
		if rerr := os.Rename(backup, path); rerr != nil {
			slog.Error("restoring image backup failed", "path", path, "error", rerr)
		}
		return fmt.Errorf("optimizing %s: %w", path, err)
	}

	return os.Remove(backup)
}

func (o *Optimizer) reencode(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	if format == "gif" {
		return nil
	}

	img = o.scale(img)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: o.JPEGQuality})
	case "png":
		err = png.Encode(&buf, img)
	default:
		// Unknown raster format: leave the file alone.
		return nil
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}

	if buf.Len() >= len(data) {
		// Re-encoding did not help; keep the original bytes.
		return nil
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ConvertWebP writes a WebP copy of the image next to the original and
// returns its path. The original file is left untouched. Animated GIFs are
// skipped, reported by the empty return path.
func (o *Optimizer) ConvertWebP(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	if format == "gif" {
		return "", nil
	}

	img = o.scale(img)

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return "", fmt.Errorf("encoding %s as webp: %w", path, err)
	}

	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".webp"
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return out, nil
}

// scale downscales img to MaxWidth if it is wider, preserving aspect ratio.
func (o *Optimizer) scale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if o.MaxWidth <= 0 || w <= o.MaxWidth {
		return img
	}

	newH := h * o.MaxWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, o.MaxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

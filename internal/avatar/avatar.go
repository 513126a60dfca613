// Package avatar turns image files into self-contained data URLs so member
// avatars never reference external storage.
package avatar

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels bounds the longer edge of an embedded avatar.
const DefaultMaxPixels = 256

var ErrNotImage = errors.New("avatar: not an image")

// IsReference reports whether s already is an avatar reference (a web URL or a
// data URL) rather than a local file path.
func IsReference(s string) bool {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:")
}

// Resolve returns input unchanged when it is already a reference, and otherwise
// reads the file it names and embeds it.
func Resolve(input string, maxPixels int) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" || IsReference(input) {
		return input, nil
	}
	return FromFile(expandHome(input), maxPixels)
}

// FromFile reads an image file and returns it as a data URL.
func FromFile(path string, maxPixels int) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return FromBytes(b, maxPixels)
}

// FromBytes embeds image bytes as a data URL, downscaling images whose longer
// edge exceeds maxPixels (0 disables scaling).
func FromBytes(b []byte, maxPixels int) (string, error) {
	mt := mimetype.Detect(b)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}
	mime := mt.String()
	if maxPixels > 0 {
		if scaled, scaledMime, ok := downscale(b, maxPixels); ok {
			b, mime = scaled, scaledMime
		}
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

// downscale re-encodes b when it decodes and is larger than maxPixels. JPEG
// input stays JPEG; everything else becomes PNG.
func downscale(b []byte, maxPixels int) ([]byte, string, bool) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil || (cfg.Width <= maxPixels && cfg.Height <= maxPixels) {
		return nil, "", false
	}
	src, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", false
	}

	w, h := cfg.Width, cfg.Height
	if w >= h {
		h = max(1, h*maxPixels/w)
		w = maxPixels
	} else {
		w = max(1, w*maxPixels/h)
		h = maxPixels
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if format == "jpeg" {
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", false
		}
		return buf.Bytes(), "image/jpeg", true
	}
	if err := png.Encode(&buf, dst); err != nil {
		return nil, "", false
	}
	return buf.Bytes(), "image/png", true
}

// MediaType returns the MIME type of a data URL avatar, or "" for other references.
func MediaType(ref string) string {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return ""
	}
	mt, _, _ := strings.Cut(rest, ";")
	return mt
}

// Summary describes an avatar reference in a single short line.
func Summary(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "(none)"
	}
	if mt := MediaType(ref); mt != "" {
		_, payload, _ := strings.Cut(ref, ",")
		n := base64.StdEncoding.DecodedLen(len(payload))
		return fmt.Sprintf("embedded %s, %s", mt, humanBytes(n))
	}
	return ref
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

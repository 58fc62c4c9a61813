package prepare

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Decode reads an image in any of the registered formats: PNG, JPEG, GIF, BMP,
// TIFF and WebP.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("prepare: error decoding image: %w", err)
	}
	logf("decoded %s image of %s", format, img.Bounds().Size())
	return img, nil
}

// DecodeFile reads the image at path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// PrepareFile decodes the image at path and prepares it.
func (p *Preprocessor) PrepareFile(path string, dither bool) (*Image, error) {
	src, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return p.Prepare(src, dither)
}

// Encode writes the preview in the named format: png, bmp, tiff, jpeg or gif.
// GIF previews keep the palette indices as they are.
func (img *Image) Encode(w io.Writer, format string) error {
	format, err := previewFormat(format)
	if err != nil {
		return err
	}
	switch format {
	case "bmp":
		return bmp.Encode(w, img.Preview)
	case "tiff":
		return tiff.Encode(w, img.Preview, &tiff.Options{Compression: tiff.Deflate})
	case "jpeg":
		return jpeg.Encode(w, img.Preview, &jpeg.Options{Quality: 95})
	case "gif":
		return gif.Encode(w, img.paletted(), nil)
	default:
		return png.Encode(w, img.Preview)
	}
}

// Save writes the preview to path, the format is derived from the file extension.
// Nothing is written for unsupported formats.
func (img *Image) Save(path string) (err error) {
	var format string
	if format, err = previewFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err != nil {
		return
	}

	var f *os.File
	if f, err = os.Create(path); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return img.Encode(f, format)
}

func previewFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "png":
		return "png", nil
	case "bmp":
		return "bmp", nil
	case "tif", "tiff":
		return "tiff", nil
	case "jpg", "jpeg":
		return "jpeg", nil
	case "gif":
		return "gif", nil
	default:
		return "", fmt.Errorf("prepare: unsupported image format %q", format)
	}
}

func (img *Image) paletted() *image.Paletted {
	var (
		cm      = img.Indexed.ColorMap
		palette = make(color.Palette, cm.Len())
	)
	for i := range palette {
		palette[i], _ = cm.Lookup(i)
	}
	return &image.Paletted{
		Pix:     img.Indexed.Pix,
		Stride:  img.Indexed.Stride,
		Rect:    img.Indexed.Rect,
		Palette: palette,
	}
}

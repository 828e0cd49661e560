package loaders

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ImageWriter encodes a frame buffer to w
type ImageWriter func(w io.Writer, fb *renderer.FrameBuffer) error

// WritePPM writes fb as a binary PPM: a "P6 <w> <h> 255" header followed by
// the raw RGB triples in a single write
func WritePPM(w io.Writer, fb *renderer.FrameBuffer) error {
	if _, err := fmt.Fprintf(w, "P6 %d %d %d\n", fb.Width, fb.Height, 255); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}
	if _, err := w.Write(fb.Pix); err != nil {
		return fmt.Errorf("write ppm pixels: %w", err)
	}
	return nil
}

// WritePNG writes fb as an opaque PNG
func WritePNG(w io.Writer, fb *renderer.FrameBuffer) error {
	if err := png.Encode(w, fb.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriterFor picks an encoder from the file extension
func WriterFor(filename string) (ImageWriter, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".ppm":
		return WritePPM, nil
	case ".png":
		return WritePNG, nil
	default:
		return nil, fmt.Errorf("unsupported file extension %q (supported: ppm, png)", ext)
	}
}

// SaveImage writes fb to filename in the format named by its extension
func SaveImage(filename string, fb *renderer.FrameBuffer) error {
	write, err := WriterFor(filename)
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := write(file, fb); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadImage reads a PNG or binary PPM back into a frame buffer
func LoadImage(filename string) (*renderer.FrameBuffer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(filename), ".ppm") {
		return ReadPPM(file)
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	fb := renderer.NewFrameBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			fb.Set(x, y, [3]byte{byte(r >> 8), byte(g >> 8), byte(b >> 8)})
		}
	}
	return fb, nil
}

// ReadPPM decodes a binary PPM with a maximum value of 255
func ReadPPM(r io.Reader) (*renderer.FrameBuffer, error) {
	br := bufio.NewReader(r)

	var magic string
	var width, height, maxVal int
	if _, err := fmt.Fscan(br, &magic, &width, &height, &maxVal); err != nil {
		return nil, fmt.Errorf("read ppm header: %w", err)
	}
	if magic != "P6" || maxVal != 255 {
		return nil, fmt.Errorf("unsupported ppm: magic %q, max value %d", magic, maxVal)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid ppm size %dx%d", width, height)
	}

	// Exactly one whitespace byte separates the header from the pixels
	if _, err := br.ReadByte(); err != nil {
		return nil, fmt.Errorf("read ppm header: %w", err)
	}

	fb := renderer.NewFrameBuffer(width, height)
	if _, err := io.ReadFull(br, fb.Pix); err != nil {
		return nil, fmt.Errorf("read ppm pixels: %w", err)
	}
	return fb, nil
}

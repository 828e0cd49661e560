package renderer

import (
	"fmt"
	"image"
	"image/color"
)

// FrameBuffer holds 8-bit RGB triples in row-major order, origin top-left
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrameBuffer allocates a black frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, 3*width*height),
	}
}

func (fb *FrameBuffer) offset(x, y int) int {
	return (x + y*fb.Width) * 3
}

// Set writes the pixel at (x, y). Distinct pixels never share bytes, so
// concurrent writers to different pixels need no locking.
func (fb *FrameBuffer) Set(x, y int, rgb [3]byte) {
	i := fb.offset(x, y)
	fb.Pix[i+0] = rgb[0]
	fb.Pix[i+1] = rgb[1]
	fb.Pix[i+2] = rgb[2]
}

// At returns the pixel at (x, y)
func (fb *FrameBuffer) At(x, y int) [3]byte {
	i := fb.offset(x, y)
	return [3]byte{fb.Pix[i+0], fb.Pix[i+1], fb.Pix[i+2]}
}

// CountDiff returns the number of pixels that differ from other. Frames of
// different sizes cannot be compared.
func (fb *FrameBuffer) CountDiff(other *FrameBuffer) (int, error) {
	if fb.Width != other.Width || fb.Height != other.Height {
		return 0, fmt.Errorf("frame size %dx%d does not match %dx%d", fb.Width, fb.Height, other.Width, other.Height)
	}
	diff := 0
	for i := 0; i < len(fb.Pix); i += 3 {
		if fb.Pix[i] != other.Pix[i] || fb.Pix[i+1] != other.Pix[i+1] || fb.Pix[i+2] != other.Pix[i+2] {
			diff++
		}
	}
	return diff, nil
}

// ToImage copies the buffer into an opaque RGBA image
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			rgb := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}

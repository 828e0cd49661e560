package renderer

import (
	"image/color"
	"testing"
)

func TestFrameBuffer_SetAt(t *testing.T) {
	fb := NewFrameBuffer(4, 3)
	if len(fb.Pix) != 36 {
		t.Fatalf("Expected 36 bytes, got %d", len(fb.Pix))
	}

	fb.Set(3, 2, [3]byte{10, 20, 30})
	fb.Set(0, 1, [3]byte{1, 2, 3})

	if got := fb.At(3, 2); got != [3]byte{10, 20, 30} {
		t.Errorf("Expected (10, 20, 30), got %v", got)
	}
	// Row-major: (0, 1) starts right after the first row
	if fb.Pix[12] != 1 || fb.Pix[13] != 2 || fb.Pix[14] != 3 {
		t.Errorf("Expected pixel (0, 1) at offset 12, got %v", fb.Pix[12:15])
	}
	if got := fb.At(1, 1); got != [3]byte{0, 0, 0} {
		t.Errorf("Expected untouched pixel to stay black, got %v", got)
	}
}

func TestFrameBuffer_ToImage(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.Set(1, 0, [3]byte{255, 128, 0})

	img := fb.ToImage()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("Expected 2x2 image, got %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("Expected orange opaque pixel, got %v", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{A: 255}) {
		t.Errorf("Expected opaque black pixel, got %v", got)
	}
}

func TestFrameBuffer_CountDiff(t *testing.T) {
	reference := NewFrameBuffer(3, 2)
	frame := NewFrameBuffer(3, 2)

	tests := []struct {
		name     string
		other    *FrameBuffer
		modify   func()
		expected int
		hasError bool
	}{
		{"identical", frame, func() {}, 0, false},
		{"one channel", frame, func() { frame.Set(1, 0, [3]byte{0, 0, 1}) }, 1, false},
		{"two pixels", frame, func() { frame.Set(2, 1, [3]byte{255, 0, 0}) }, 2, false},
		{"size mismatch", NewFrameBuffer(2, 3), func() {}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.modify()
			diff, err := reference.CountDiff(tt.other)
			if tt.hasError {
				if err == nil {
					t.Error("Expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if diff != tt.expected {
				t.Errorf("Expected %d differing pixels, got %d", tt.expected, diff)
			}
		})
	}
}

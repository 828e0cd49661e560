package core

import "github.com/chewxy/math32"

// Color is an RGB triple. Channels are unbounded while light is being
// accumulated and only clamped when converted to bytes.
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

// NewColor creates a new Color
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every channel by a scalar
func (c Color) Multiply(scalar float32) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the channel-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// IsBlack reports whether every channel is zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// ToRGB8 maps [0,1] channels to bytes, clamping to [0,255] and truncating
func (c Color) ToRGB8() [3]byte {
	return [3]byte{channelToByte(c.R), channelToByte(c.G), channelToByte(c.B)}
}

func channelToByte(v float32) byte {
	return byte(math32.Max(0, math32.Min(255, v*255.0)))
}

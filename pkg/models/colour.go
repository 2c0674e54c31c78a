package models

// RGB components are in the 0..1 range.
type RGB struct {
	R, G, B float64
}

var (
	White        = RGB{1, 1, 1}
	Black        = RGB{0, 0, 0}
	FallbackGray = RGB{0.5, 0.5, 0.5}
)

// Bytes converts the colour to 0..255 components, clamping out of range values.
func (c RGB) Bytes() (r, g, b int) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return int(v*255 + 0.5)
}

// ColorScheme maps a lower-cased domain key to its frame colour.
type ColorScheme struct {
	Name    string
	Domains map[string]RGB
}

// Lookup returns the domain colour, or FallbackGray and false when the
// scheme has no entry for the domain.
func (s ColorScheme) Lookup(domain string) (RGB, bool) {
	c, ok := s.Domains[domain]
	if !ok {
		return FallbackGray, false
	}
	return c, true
}

// Package layout resolves declarative frame layouts into card, spread and
// sheet geometry. All lengths are centimetres with the origin at the top-left
// corner of the page.
package layout

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf8"
)

type Arrangement string

const (
	Spread Arrangement = "spread"
	Single Arrangement = "single"
	FourUp Arrangement = "four-up"
)

func ParseArrangement(s string) (Arrangement, error) {
	switch a := Arrangement(s); a {
	case Spread, Single, FourUp:
		return a, nil
	}
	return "", &ConfigError{Field: "arrangement", Reason: fmt.Sprintf("unknown arrangement %q", s)}
}

type FooterMode string

const (
	FooterText  FooterMode = "text"
	FooterIndex FooterMode = "index"
)

type Border struct {
	Top               float64 `yaml:"top"`
	Right             float64 `yaml:"right"`
	Bottom            float64 `yaml:"bottom"`
	Left              float64 `yaml:"left"`
	OuterCornerRadius float64 `yaml:"outer_corner_radius"`
	InnerCornerRadius float64 `yaml:"inner_corner_radius"`
}

type Content struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type KeyRing struct {
	Radius float64 `yaml:"radius"`
}

type Footer struct {
	Mode FooterMode `yaml:"mode"`
	// Text replaces every face's own footer when set.
	Text        string  `yaml:"text"`
	IndexHeight float64 `yaml:"index_height"`
}

// HeaderStep selects Size (points) for headers of at most MaxLength runes.
type HeaderStep struct {
	MaxLength int     `yaml:"max_length"`
	Size      float64 `yaml:"size"`
}

var DefaultHeaderSteps = []HeaderStep{
	{MaxLength: 20, Size: 20},
	{MaxLength: 30, Size: 16},
	{MaxLength: 45, Size: 12},
}

// Inputs is the declarative part of a frame layout as read from a preset.
type Inputs struct {
	Border      Border       `yaml:"border"`
	Content     Content      `yaml:"content"`
	KeyRing     KeyRing      `yaml:"key_ring"`
	Arrangement Arrangement  `yaml:"arrangement"`
	Footer      Footer       `yaml:"footer"`
	HeaderSteps []HeaderStep `yaml:"header_steps"`
}

type Size struct {
	Width  float64
	Height float64
}

// Spec is a resolved layout. Derived sizes are only reachable through
// methods so they can never disagree with the inputs.
type Spec struct {
	in     Inputs
	face   Size
	spread Size
	sheet  Size
}

// Resolve validates in and derives the face, spread and sheet sizes.
// It has no side effects and returns equal Specs for equal Inputs.
func Resolve(in Inputs) (Spec, error) {
	in.HeaderSteps = slices.Clone(in.HeaderSteps)
	if len(in.HeaderSteps) == 0 {
		in.HeaderSteps = slices.Clone(DefaultHeaderSteps)
	}
	if in.Arrangement == "" {
		in.Arrangement = Spread
	}
	if in.Footer.Mode == "" {
		in.Footer.Mode = FooterText
	}
	if in.Footer.Mode == FooterIndex && in.Footer.IndexHeight == 0 {
		in.Footer.IndexHeight = in.Border.Bottom
	}

	if err := validate(in); err != nil {
		return Spec{}, err
	}

	face := Size{
		Width:  in.Border.Left + in.Content.Width + in.Border.Right,
		Height: in.Border.Top + in.Content.Height + in.Border.Bottom,
	}
	return Spec{
		in:     in,
		face:   face,
		spread: Size{Width: 2 * face.Width, Height: face.Height},
		sheet:  Size{Width: 2 * face.Width, Height: 2 * face.Height},
	}, nil
}

func validate(in Inputs) error {
	nonNegative := []struct {
		field string
		value float64
	}{
		{"border.top", in.Border.Top},
		{"border.right", in.Border.Right},
		{"border.bottom", in.Border.Bottom},
		{"border.left", in.Border.Left},
		{"border.outer_corner_radius", in.Border.OuterCornerRadius},
		{"border.inner_corner_radius", in.Border.InnerCornerRadius},
		{"content.width", in.Content.Width},
		{"content.height", in.Content.Height},
		{"key_ring.radius", in.KeyRing.Radius},
		{"footer.index_height", in.Footer.IndexHeight},
	}
	for _, d := range nonNegative {
		if d.value < 0 || math.IsNaN(d.value) {
			return &ConfigError{Field: d.field, Reason: fmt.Sprintf("must not be negative, got %g", d.value)}
		}
	}

	faceW := in.Border.Left + in.Content.Width + in.Border.Right
	faceH := in.Border.Top + in.Content.Height + in.Border.Bottom
	if faceW == 0 || faceH == 0 {
		return &ConfigError{Field: "content", Reason: "card face has no area"}
	}
	if r := in.Border.OuterCornerRadius; r > math.Min(faceW, faceH)/2 {
		return &ConfigError{Field: "border.outer_corner_radius", Reason: fmt.Sprintf("%g exceeds half of the smaller face dimension", r)}
	}
	if r := in.Border.InnerCornerRadius; r > math.Min(in.Content.Width, in.Content.Height)/2 {
		return &ConfigError{Field: "border.inner_corner_radius", Reason: fmt.Sprintf("%g exceeds half of the smaller panel dimension", r)}
	}

	if _, err := ParseArrangement(string(in.Arrangement)); err != nil {
		return err
	}
	switch in.Footer.Mode {
	case FooterText:
	case FooterIndex:
		if in.Footer.IndexHeight > in.Border.Bottom {
			return &ConfigError{Field: "footer.index_height", Reason: "index strip must fit inside the bottom border"}
		}
	default:
		return &ConfigError{Field: "footer.mode", Reason: fmt.Sprintf("unknown footer mode %q", in.Footer.Mode)}
	}

	for i, step := range in.HeaderSteps {
		if step.Size <= 0 {
			return &ConfigError{Field: "header_steps", Reason: fmt.Sprintf("step %d has no font size", i)}
		}
		if i > 0 && step.MaxLength <= in.HeaderSteps[i-1].MaxLength {
			return &ConfigError{Field: "header_steps", Reason: "max_length must be strictly ascending"}
		}
	}
	return nil
}

// WithArrangement re-resolves the layout for another output arrangement.
func (s Spec) WithArrangement(a Arrangement) (Spec, error) {
	in := s.Inputs()
	in.Arrangement = a
	return Resolve(in)
}

func (s Spec) Inputs() Inputs {
	in := s.in
	in.HeaderSteps = slices.Clone(s.in.HeaderSteps)
	return in
}

func (s Spec) Border() Border             { return s.in.Border }
func (s Spec) Content() Content           { return s.in.Content }
func (s Spec) KeyRingRadius() float64     { return s.in.KeyRing.Radius }
func (s Spec) Arrangement() Arrangement   { return s.in.Arrangement }
func (s Spec) FooterMode() FooterMode     { return s.in.Footer.Mode }
func (s Spec) FooterText() string         { return s.in.Footer.Text }
func (s Spec) FooterIndexHeight() float64 { return s.in.Footer.IndexHeight }

func (s Spec) Face() Size   { return s.face }
func (s Spec) Spread() Size { return s.spread }
func (s Spec) Sheet() Size  { return s.sheet }

// PageSize is the physical page size of the resolved arrangement.
func (s Spec) PageSize() Size {
	switch s.in.Arrangement {
	case Single:
		return s.face
	case FourUp:
		return s.sheet
	}
	return s.spread
}

// HeaderSize picks the header font size from the header's rune count. It does
// not measure glyphs, so very wide headers can still overflow.
func (s Spec) HeaderSize(header string) float64 {
	n := utf8.RuneCountInString(header)
	for _, step := range s.in.HeaderSteps {
		if n <= step.MaxLength {
			return step.Size
		}
	}
	return s.in.HeaderSteps[len(s.in.HeaderSteps)-1].Size
}

package layout

import "github.com/alping/medrefcards/pkg/models"

// Distances from the face edges to the text baselines.
const (
	CaptionOffset = 0.47
	HeaderOffset  = 1.23
	FooterOffset  = 0.15
)

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

type Circle struct {
	X, Y, R float64
}

type Line struct {
	X1, Y1, X2, Y2 float64
}

type KeyRingPosition int

const (
	NoKeyRing KeyRingPosition = iota
	KeyRingTopLeft
	KeyRingTopRight
)

// FaceGeometry holds the absolute position of every element of one face.
// Optional elements are nil when they are not drawn.
type FaceGeometry struct {
	Frame       Rect
	FrameRadius float64
	Panel       Rect
	PanelRadius float64
	CornerPatch *Rect
	KeyRing     *Circle
	Tab         *Rect

	CenterX  float64
	CaptionY float64
	HeaderY  float64
	FooterY  float64
}

// Geometry places a face at origin. rank and count describe the card's
// domain within the current domain index and only matter in footer index
// mode.
func (s Spec) Geometry(origin Point, side models.FaceSide, rank, count int, ring KeyRingPosition) FaceGeometry {
	b := s.in.Border
	g := FaceGeometry{
		Frame:       Rect{X: origin.X, Y: origin.Y, W: s.face.Width, H: s.face.Height},
		FrameRadius: b.OuterCornerRadius,
		Panel: Rect{
			X: origin.X + b.Left,
			Y: origin.Y + b.Top,
			W: s.in.Content.Width,
			H: s.in.Content.Height,
		},
		PanelRadius: b.InnerCornerRadius,
		CenterX:     origin.X + s.face.Width/2,
		CaptionY:    origin.Y + CaptionOffset,
		HeaderY:     origin.Y + HeaderOffset,
		FooterY:     origin.Y + s.face.Height - FooterOffset,
	}

	if s.in.Footer.Mode == FooterIndex && count > 0 {
		strip := s.in.Footer.IndexHeight
		g.Frame.H -= strip

		x0, x1 := FooterTab(s.face.Width, side, rank, count)
		g.Tab = &Rect{X: origin.X + x0, Y: origin.Y + s.face.Height - strip, W: x1 - x0, H: strip}

		if (rank == 0 && side == models.Front) || (rank == count-1 && side == models.Back) {
			r := b.OuterCornerRadius
			g.CornerPatch = &Rect{X: origin.X, Y: g.Frame.Bottom() - r, W: r, H: r}
		}
	}

	if r := s.in.KeyRing.Radius; r > 0 {
		switch ring {
		case KeyRingTopLeft:
			g.KeyRing = &Circle{X: origin.X, Y: origin.Y, R: r}
		case KeyRingTopRight:
			g.KeyRing = &Circle{X: origin.X + s.face.Width, Y: origin.Y, R: r}
		}
	}
	return g
}

// FooterTab returns the horizontal span of a domain's index tab relative to
// the face's left edge. Front faces count up from the left edge, back faces
// count down from the right edge. Spans of adjacent ranks share their edge.
func FooterTab(width float64, side models.FaceSide, rank, count int) (x0, x1 float64) {
	edge := func(i int) float64 {
		if i >= count {
			return width
		}
		return width * float64(i) / float64(count)
	}
	if side == models.Back {
		return width - edge(rank+1), width - edge(rank)
	}
	return edge(rank), edge(rank + 1)
}

// SheetSlots is the number of cards on one four-up sheet.
const SheetSlots = 4

type Quadrant struct {
	Row, Col int
}

// FrontQuadrant maps the i-th card of a batch to its quadrant on the front
// sheet. Slots are filled in reverse order, bottom-right first.
func FrontQuadrant(i int) Quadrant {
	slot := SheetSlots - 1 - i
	return Quadrant{Row: slot / 2, Col: slot % 2}
}

// BackQuadrant mirrors FrontQuadrant left to right so that each back lands
// behind its front after a duplex flip along the long edge.
func BackQuadrant(i int) Quadrant {
	q := FrontQuadrant(i)
	q.Col = 1 - q.Col
	return q
}

func (s Spec) QuadrantOrigin(q Quadrant) Point {
	return Point{X: float64(q.Col) * s.face.Width, Y: float64(q.Row) * s.face.Height}
}

// GuideLines are the cut lines through the middle of a four-up sheet.
func (s Spec) GuideLines() []Line {
	return []Line{
		{X1: s.face.Width, Y1: 0, X2: s.face.Width, Y2: s.sheet.Height},
		{X1: 0, Y1: s.face.Height, X2: s.sheet.Width, Y2: s.face.Height},
	}
}

package pdf

import (
	"github.com/alping/medrefcards/internal/layout"
	"github.com/alping/medrefcards/pkg/models"
)

// Font sizes are in points, everything else in layout units (cm).
type Font struct {
	Family string
	Style  string
	Size   float64
}

// Corner selectors for FillRoundedRect, clockwise from top-left.
const AllCorners = "1234"

// Surface is the output document a render run draws on. It is owned by one
// run at a time and must not be shared between concurrent runs.
type Surface interface {
	// AddPage finalizes the current page, if any, starts a new page of the
	// given size and returns its 1-based number.
	AddPage(size layout.Size) int
	// PageNo is the number of the page being drawn, 0 before the first page.
	PageNo() int

	FillRoundedRect(r layout.Rect, radius float64, corners string, c models.RGB)
	FillRect(r layout.Rect, c models.RGB)
	FillCircle(c layout.Circle, col models.RGB)
	Line(l layout.Line, width float64, c models.RGB)
	CenteredText(x, baseline float64, font Font, c models.RGB, text string)

	// EmbedPage composites the first page of content with its top-left
	// corner at the given point, unscaled.
	EmbedPage(content Content, at layout.Point) error

	// Bookmark attaches an outline entry to the current page.
	Bookmark(title string, level int, collapsed bool)
}

// ContentSource resolves a face's content reference to an embeddable page.
type ContentSource interface {
	Resolve(ref string) (Content, bool)
}

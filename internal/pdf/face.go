package pdf

import (
	"golang.org/x/text/cases"

	"github.com/alping/medrefcards/internal/layout"
	"github.com/alping/medrefcards/pkg/logger"
	"github.com/alping/medrefcards/pkg/models"
)

var (
	captionFont = Font{Family: "Helvetica", Size: 10}
	headerFont  = Font{Family: "Helvetica", Style: "B"}
	footerFont  = Font{Family: "Helvetica", Size: 8}
)

// Placement says where and how a face is drawn on the current page.
type Placement struct {
	Side    models.FaceSide
	Origin  layout.Point
	KeyRing layout.KeyRingPosition
	// Rank and Count locate the card's domain in the domain index.
	Rank  int
	Count int
}

// FaceRenderer draws card faces for a single render run.
type FaceRenderer struct {
	spec    layout.Spec
	colors  models.ColorScheme
	content ContentSource
	caser   cases.Caser
	report  *Report
	logger  *logger.Logger
	warned  map[string]bool
}

func NewFaceRenderer(spec layout.Spec, colors models.ColorScheme, content ContentSource, caser cases.Caser, report *Report, logger *logger.Logger) *FaceRenderer {
	return &FaceRenderer{
		spec:    spec,
		colors:  colors,
		content: content,
		caser:   caser,
		report:  report,
		logger:  logger,
		warned:  make(map[string]bool),
	}
}

// Render draws one face onto s. An unknown domain colour falls back to gray
// with a warning and a missing content page leaves the panel blank; neither
// affects other faces.
func (r *FaceRenderer) Render(s Surface, face models.CardFace, domain string, p Placement) {
	g := r.spec.Geometry(p.Origin, p.Side, p.Rank, p.Count, p.KeyRing)
	colour := r.colour(domain)

	s.FillRoundedRect(g.Frame, g.FrameRadius, AllCorners, colour)
	if g.CornerPatch != nil {
		s.FillRect(*g.CornerPatch, colour)
	}
	s.FillRoundedRect(g.Panel, g.PanelRadius, AllCorners, models.White)
	if g.KeyRing != nil {
		s.FillCircle(*g.KeyRing, models.White)
	}

	s.CenteredText(g.CenterX, g.CaptionY, captionFont, models.White, "- "+r.caser.String(domain)+" -")

	font := headerFont
	font.Size = r.spec.HeaderSize(face.Header)
	s.CenteredText(g.CenterX, g.HeaderY, font, models.White, face.Header)

	if g.Tab != nil {
		s.FillRect(*g.Tab, colour)
	} else if r.spec.FooterMode() == layout.FooterText {
		footer := r.spec.FooterText()
		if footer == "" {
			footer = face.Footer
		}
		s.CenteredText(g.CenterX, g.FooterY, footerFont, models.White, footer)
	}

	r.embed(s, face, p.Side, layout.Point{X: g.Panel.X, Y: g.Panel.Y})
}

func (r *FaceRenderer) colour(domain string) models.RGB {
	c, ok := r.colors.Lookup(domain)
	if !ok && !r.warned[domain] {
		r.warned[domain] = true
		r.report.warn(r.logger, "colour scheme %q has no colour for domain %q, using gray", r.colors.Name, domain)
	}
	return c
}

func (r *FaceRenderer) embed(s Surface, face models.CardFace, side models.FaceSide, at layout.Point) {
	content, ok := r.content.Resolve(face.Content)
	if !ok {
		r.report.MissingContent = append(r.report.MissingContent, face.Content)
		r.logger.Debug("No content for %s face %q, leaving panel blank", side, face.Header)
		return
	}

	panel := r.spec.Content()
	if !MatchesDimensions(content.Size, models.PageDimensions{Width: panel.Width, Height: panel.Height}) {
		r.logger.Trace("Content %s is %.2f x %.2f cm, panel is %.2f x %.2f cm",
			content.Path, content.Size.Width, content.Size.Height, panel.Width, panel.Height)
	}

	if err := s.EmbedPage(content, at); err != nil {
		r.report.MissingContent = append(r.report.MissingContent, face.Content)
		r.report.warn(r.logger, "%v", err)
	}
}

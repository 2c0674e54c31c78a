package pdf

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alping/medrefcards/internal/deck"
	"github.com/alping/medrefcards/internal/layout"
	"github.com/alping/medrefcards/pkg/logger"
	"github.com/alping/medrefcards/pkg/models"
)

const (
	DefaultTitle = "Medical Reference Cards"
	guideWidth   = 0.01
)

var (
	titleFont    = Font{Family: "Helvetica", Style: "B", Size: 24}
	subtitleFont = Font{Family: "Helvetica", Size: 12}
	guideColour  = models.RGB{R: 0.75, G: 0.75, B: 0.75}
)

type Options struct {
	Title  string
	Locale string
}

// Composer lays a deck out on pages in the arrangement of its layout. It
// holds only read-only inputs, so one Composer may serve several concurrent
// runs as long as each run has its own Surface.
type Composer struct {
	spec    layout.Spec
	colors  models.ColorScheme
	content ContentSource
	title   string
	locale  string
	tag     language.Tag
	logger  *logger.Logger
}

func NewComposer(spec layout.Spec, colors models.ColorScheme, content ContentSource, opts Options, logger *logger.Logger) *Composer {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	tag := language.Und
	if opts.Locale != "" {
		parsed, err := language.Parse(opts.Locale)
		if err != nil {
			logger.Debug("Unknown locale %q, using neutral casing", opts.Locale)
		} else {
			tag = parsed
		}
	}
	return &Composer{
		spec:    spec,
		colors:  colors,
		content: content,
		title:   title,
		locale:  opts.Locale,
		tag:     tag,
		logger:  logger,
	}
}

func (c *Composer) Spec() layout.Spec { return c.spec }
func (c *Composer) Title() string     { return c.title }

// Compose draws a title page followed by every card of d, in deck order.
// The deck is expected to be filtered and sorted already.
func (c *Composer) Compose(s Surface, d *deck.Deck) (*Report, error) {
	report := &Report{Arrangement: c.spec.Arrangement()}
	r := &run{
		Composer: c,
		surface:  s,
		outline:  NewOutline(s),
		report:   report,
		// cases.Caser is stateful and a run must not share it
		faces:   NewFaceRenderer(c.spec, c.colors, c.content, cases.Title(c.tag), report, c.logger),
		deck:    d,
		domains: d.Domains(),
	}

	c.logger.Debug("Composing %d cards as %s", d.Len(), c.spec.Arrangement())

	if err := r.titlePage(); err != nil {
		return nil, err
	}

	var err error
	switch c.spec.Arrangement() {
	case layout.Single:
		err = r.single()
	case layout.FourUp:
		err = r.fourUp()
	default:
		err = r.spread()
	}
	if err != nil {
		return nil, err
	}

	report.Pages = s.PageNo()
	report.Cards = d.Len()
	return report, nil
}

// run is the state of one document: the current domain and the outline.
type run struct {
	*Composer
	surface Surface
	outline *Outline
	report  *Report
	faces   *FaceRenderer
	deck    *deck.Deck
	domains []string

	lastDomain string
	domainSeq  int
}

func (r *run) titlePage() error {
	size := r.spec.PageSize()
	page := r.surface.AddPage(size)

	r.surface.CenteredText(size.Width/2, size.Height/2, titleFont, models.Black, r.title)
	subtitle := fmt.Sprintf("%d cards", r.deck.Len())
	if r.locale != "" {
		subtitle = fmt.Sprintf("%s (%s)", subtitle, r.locale)
	}
	r.surface.CenteredText(size.Width/2, size.Height/2+1, subtitleFont, models.Black, subtitle)

	return r.outline.Add(page, r.title, "title", LevelTitle, false)
}

func (r *run) spread() error {
	face := r.spec.Face()
	for i, card := range r.deck.Cards() {
		page := r.surface.AddPage(r.spec.PageSize())
		if err := r.cardEntries(page, i, card); err != nil {
			return err
		}

		r.drawFace(card, models.Front, layout.Point{}, layout.KeyRingTopLeft)
		if err := r.faceEntries(page, i, card, models.Front); err != nil {
			return err
		}
		r.drawFace(card, models.Back, layout.Point{X: face.Width}, layout.KeyRingTopRight)
		if err := r.faceEntries(page, i, card, models.Back); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) single() error {
	for i, card := range r.deck.Cards() {
		page := r.surface.AddPage(r.spec.PageSize())
		if err := r.cardEntries(page, i, card); err != nil {
			return err
		}
		r.drawFace(card, models.Front, layout.Point{}, layout.NoKeyRing)
		if err := r.faceEntries(page, i, card, models.Front); err != nil {
			return err
		}

		page = r.surface.AddPage(r.spec.PageSize())
		r.drawFace(card, models.Back, layout.Point{}, layout.NoKeyRing)
		if err := r.faceEntries(page, i, card, models.Back); err != nil {
			return err
		}
	}
	return nil
}

// fourUp prints batches of up to four cards on a front sheet and a back
// sheet. Only the front sheet carries outline entries: the back sheet's
// faces would otherwise nest under the batch's last card.
func (r *run) fourUp() error {
	var cards []*models.Card
	for _, card := range r.deck.Cards() {
		cards = append(cards, card)
	}

	for start := 0; start < len(cards); start += layout.SheetSlots {
		batch := cards[start:min(start+layout.SheetSlots, len(cards))]

		page := r.surface.AddPage(r.spec.PageSize())
		r.guides()
		for i, card := range batch {
			if err := r.cardEntries(page, start+i, card); err != nil {
				return err
			}
			origin := r.spec.QuadrantOrigin(layout.FrontQuadrant(i))
			r.drawFace(card, models.Front, origin, layout.KeyRingTopLeft)
			if err := r.faceEntries(page, start+i, card, models.Front); err != nil {
				return err
			}
		}

		r.surface.AddPage(r.spec.PageSize())
		r.guides()
		for i, card := range batch {
			origin := r.spec.QuadrantOrigin(layout.BackQuadrant(i))
			r.drawFace(card, models.Back, origin, layout.KeyRingTopRight)
		}
	}
	return nil
}

func (r *run) guides() {
	for _, l := range r.spec.GuideLines() {
		r.surface.Line(l, guideWidth, guideColour)
	}
}

func (r *run) drawFace(card *models.Card, side models.FaceSide, origin layout.Point, ring layout.KeyRingPosition) {
	r.faces.Render(r.surface, card.Face(side), card.Domain, Placement{
		Side:    side,
		Origin:  origin,
		KeyRing: ring,
		Rank:    r.deck.DomainRank(card.Domain),
		Count:   len(r.domains),
	})
}

// cardEntries adds a domain entry when the domain changes, then the card.
func (r *run) cardEntries(page, i int, card *models.Card) error {
	if card.Domain != r.lastDomain || r.domainSeq == 0 {
		r.lastDomain = card.Domain
		r.domainSeq++
		key := fmt.Sprintf("domain:%d:%s", r.domainSeq, card.Domain)
		title := r.faces.caser.String(card.Domain)
		if title == "" {
			title = "-"
		}
		if err := r.outline.Add(page, title, key, LevelDomain, false); err != nil {
			return err
		}
	}

	title := card.Front.Header
	if title == "" {
		title = card.ID
	}
	return r.outline.Add(page, title, fmt.Sprintf("card:%d", i), LevelCard, true)
}

func (r *run) faceEntries(page, i int, card *models.Card, side models.FaceSide) error {
	face := card.Face(side)
	title := face.Header
	if title == "" {
		title = r.faces.caser.String(side.String())
	}
	faceKey := fmt.Sprintf("card:%d:%s", i, side)
	if err := r.outline.Add(page, title, faceKey, LevelFace, true); err != nil {
		return err
	}

	for j, section := range face.Sections() {
		if err := r.outline.Add(page, section, fmt.Sprintf("%s:%d", faceKey, j), LevelSection, false); err != nil {
			return err
		}
	}
	return nil
}

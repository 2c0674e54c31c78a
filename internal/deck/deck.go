// Package deck holds the ordered, domain grouped collection of cards that a
// render run iterates.
package deck

import (
	"fmt"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alping/medrefcards/pkg/models"
)

// MissingFieldError is returned by Load when a record lacks a required field.
type MissingFieldError struct {
	Source string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("card %s: missing required field %q", e.Source, e.Field)
}

type SortKey string

const (
	ByDomain   SortKey = "domain"
	ByCategory SortKey = "category"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case ByDomain, ByCategory:
		return k, nil
	case "":
		return ByDomain, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

type Deck struct {
	cards   []*models.Card
	domains []string
}

// Load builds a deck from records in the order given. Any record missing a
// required field fails the whole load.
func Load(records []models.Record) (*Deck, error) {
	cards := make([]*models.Card, 0, len(records))
	for i, rec := range records {
		card, err := newCard(rec, i)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return newDeck(cards), nil
}

func newDeck(cards []*models.Card) *Deck {
	d := &Deck{cards: cards}
	d.reindex()
	return d
}

func newCard(rec models.Record, i int) (*models.Card, error) {
	source := rec.Source
	if source == "" {
		source = fmt.Sprintf("#%d", i)
	}

	required := []struct {
		name  string
		value *string
	}{
		{"domain", rec.Domain},
		{"category", rec.Category},
		{"front_header", rec.FrontHeader},
		{"front_footer", rec.FrontFooter},
		{"front_content", rec.FrontContent},
		{"back_header", rec.BackHeader},
		{"back_footer", rec.BackFooter},
		{"back_content", rec.BackContent},
	}
	for _, f := range required {
		if f.value == nil {
			return nil, &MissingFieldError{Source: source, Field: f.name}
		}
	}

	return &models.Card{
		ID:       cardID(rec.Source, i),
		Domain:   canonical(*rec.Domain),
		Category: canonical(*rec.Category),
		Front: models.CardFace{
			Header:          *rec.FrontHeader,
			Footer:          *rec.FrontFooter,
			Content:         *rec.FrontContent,
			TableOfContents: slices.Clone(rec.FrontTOC),
			References:      rec.FrontReferences,
		},
		Back: models.CardFace{
			Header:          *rec.BackHeader,
			Footer:          *rec.BackFooter,
			Content:         *rec.BackContent,
			TableOfContents: slices.Clone(rec.BackTOC),
			References:      rec.BackReferences,
		},
		Provenance: models.Provenance{
			ModifiedDate: rec.ModifiedDate,
			VerifiedDate: rec.VerifiedDate,
			VerifiedBy:   rec.VerifiedBy,
		},
	}, nil
}

func cardID(source string, i int) string {
	if source == "" {
		return fmt.Sprintf("card-%d", i)
	}
	return strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
}

func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (d *Deck) Len() int { return len(d.cards) }

// Cards yields the cards in current deck order.
func (d *Deck) Cards() iter.Seq2[int, *models.Card] {
	return slices.All(d.cards)
}

// Domains is the domain index: distinct domains in current deck order.
func (d *Deck) Domains() []string {
	return slices.Clone(d.domains)
}

// DomainRank returns the position of domain in the domain index, or -1.
func (d *Deck) DomainRank(domain string) int {
	return slices.Index(d.domains, domain)
}

// Sort orders the deck by key. Cards with equal keys keep their relative
// order, and the domain index is rebuilt afterwards.
func (d *Deck) Sort(key SortKey, reverse bool) {
	field := func(c *models.Card) string { return c.Domain }
	if key == ByCategory {
		field = func(c *models.Card) string { return c.Category }
	}
	slices.SortStableFunc(d.cards, func(a, b *models.Card) int {
		cmp := strings.Compare(field(a), field(b))
		if reverse {
			return -cmp
		}
		return cmp
	})
	d.reindex()
}

// Filter lazily yields the cards accepted by f without touching the deck.
func (d *Deck) Filter(f Filter) iter.Seq[*models.Card] {
	return func(yield func(*models.Card) bool) {
		for _, c := range d.cards {
			if f.Match(c) && !yield(c) {
				return
			}
		}
	}
}

// Select returns a new deck holding the cards accepted by f, with its own
// domain index. The receiver is left unchanged.
func (d *Deck) Select(f Filter) *Deck {
	return newDeck(slices.Collect(d.Filter(f)))
}

func (d *Deck) reindex() {
	d.domains = d.domains[:0]
	for _, c := range d.cards {
		if !slices.Contains(d.domains, c.Domain) {
			d.domains = append(d.domains, c.Domain)
		}
	}
}

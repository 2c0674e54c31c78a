package deck

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/alping/medrefcards/pkg/models"
)

var ErrInvalidFilter = errors.New("invalid card filter")

// Filter selects cards by domain and category. A nil allow list lets every
// value through; Invert turns an allow list into a deny list.
type Filter struct {
	Domains        []string
	InvertDomain   bool
	Categories     []string
	InvertCategory bool
}

func (f Filter) Match(c *models.Card) bool {
	return match(f.Domains, f.InvertDomain, c.Domain) && match(f.Categories, f.InvertCategory, c.Category)
}

func match(allow []string, invert bool, value string) bool {
	if allow == nil {
		return true
	}
	return slices.Contains(allow, value) != invert
}

// ParseFilter reads a filter expression such as
//
//	domain=cardiology,trauma category!=pediatrics
//
// An empty expression or "all" matches every card.
func ParseFilter(expr string) (Filter, error) {
	var f Filter
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.EqualFold(expr, "all") {
		return f, nil
	}

	for _, term := range strings.Fields(expr) {
		key, values, invert, err := splitTerm(term)
		if err != nil {
			return Filter{}, err
		}
		switch key {
		case "domain":
			if f.Domains != nil {
				return Filter{}, fmt.Errorf("%w: domain given twice", ErrInvalidFilter)
			}
			f.Domains, f.InvertDomain = values, invert
		case "category":
			if f.Categories != nil {
				return Filter{}, fmt.Errorf("%w: category given twice", ErrInvalidFilter)
			}
			f.Categories, f.InvertCategory = values, invert
		default:
			return Filter{}, fmt.Errorf("%w: unknown key %q", ErrInvalidFilter, key)
		}
	}
	return f, nil
}

func splitTerm(term string) (key string, values []string, invert bool, err error) {
	key, list, ok := strings.Cut(term, "=")
	if !ok {
		return "", nil, false, fmt.Errorf("%w: %q has no '='", ErrInvalidFilter, term)
	}
	if strings.HasSuffix(key, "!") {
		key, invert = strings.TrimSuffix(key, "!"), true
	}

	values = []string{}
	for _, v := range strings.Split(list, ",") {
		if v = canonical(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return "", nil, false, fmt.Errorf("%w: %q lists no values", ErrInvalidFilter, term)
	}
	return canonical(key), values, invert, nil
}

package pdf

import (
	"errors"
	"fmt"
)

// Outline nesting levels.
const (
	LevelTitle = iota
	LevelDomain
	LevelCard
	LevelFace
	LevelSection
)

var (
	ErrStalePage    = errors.New("outline entry does not target the current page")
	ErrDuplicateKey = errors.New("duplicate outline key")
	ErrLevelJump    = errors.New("outline level skips its parent")
)

// Outline builds the bookmark tree of one document. Entries are attached to
// pages by handle: the page passed to Add must be the page the surface is
// drawing, which makes out of order calls an error instead of a silently
// misplaced bookmark.
type Outline struct {
	surface Surface
	keys    map[string]int
	last    int
}

func NewOutline(surface Surface) *Outline {
	return &Outline{
		surface: surface,
		keys:    make(map[string]int),
		last:    -1,
	}
}

// Add appends an entry. Empty titles are placeholders and are skipped. Keys
// must be unique within the document and a level may only go one deeper
// than the previous entry.
func (o *Outline) Add(page int, title, key string, level int, collapsed bool) error {
	if title == "" {
		return nil
	}
	if current := o.surface.PageNo(); page != current {
		return fmt.Errorf("%w: %q targets page %d, current page is %d", ErrStalePage, key, page, current)
	}
	if prev, ok := o.keys[key]; ok {
		return fmt.Errorf("%w: %q already targets page %d", ErrDuplicateKey, key, prev)
	}
	if level < 0 || level > o.last+1 {
		return fmt.Errorf("%w: %q at level %d after level %d", ErrLevelJump, key, level, o.last)
	}

	o.keys[key] = page
	o.last = level
	o.surface.Bookmark(title, level, collapsed)
	return nil
}

// Target returns the page an entry was attached to.
func (o *Outline) Target(key string) (int, bool) {
	page, ok := o.keys[key]
	return page, ok
}

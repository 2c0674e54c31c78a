package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alping/medrefcards/pkg/logger"
	"github.com/alping/medrefcards/pkg/models"
)

const CardExt = ".yml"

var ErrNoCards = errors.New("no card metadata found")

type CardScanner struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *CardScanner {
	return &CardScanner{logger: logger}
}

// FindCards walks root and returns every card metadata file below it in
// lexical order.
func (s *CardScanner) FindCards(ctx context.Context, root string) ([]string, error) {
	var cards []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			s.logger.Trace("Scanning directory: %s", path)
			return nil
		}

		if filepath.Ext(path) != CardExt {
			return nil
		}

		s.logger.Debug("Found card: %s", path)
		cards = append(cards, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("%w in %s or its subdirectories", ErrNoCards, root)
	}

	slices.Sort(cards)
	return cards, nil
}

// ReadRecord decodes one metadata file. Content references that are absent
// default to <name>-front.pdf and <name>-back.pdf next to the file; relative
// ones are taken relative to the file's directory.
func ReadRecord(path string) (models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Record{}, fmt.Errorf("reading card %s: %w", path, err)
	}

	var rec models.Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return models.Record{}, fmt.Errorf("decoding card %s: %w", path, err)
	}
	rec.Source = path

	dir := filepath.Dir(path)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rec.FrontContent = contentRef(dir, rec.FrontContent, name+"-front.pdf")
	rec.BackContent = contentRef(dir, rec.BackContent, name+"-back.pdf")
	return rec, nil
}

func contentRef(dir string, ref *string, fallback string) *string {
	p := fallback
	if ref != nil {
		if *ref == "" {
			return ref
		}
		p = *ref
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return &p
}

// LoadRecords finds and decodes every card below root.
func (s *CardScanner) LoadRecords(ctx context.Context, root string) ([]models.Record, error) {
	paths, err := s.FindCards(ctx, root)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := ReadRecord(path)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	s.logger.Info("Loaded %d cards from %s", len(records), root)
	return records, nil
}

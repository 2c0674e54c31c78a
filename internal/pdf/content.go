package pdf

import (
	"math"
	"os"
	"sync"

	"github.com/patrickmn/go-cache"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/alping/medrefcards/pkg/logger"
	"github.com/alping/medrefcards/pkg/models"
)

const (
	PointsPerCm = 72 / 2.54

	// DimensionTolerance is how far (cm) a content page may differ from the
	// content panel before it is reported.
	DimensionTolerance = 0.05
)

// Content is the first page of a pre-rendered content PDF. Size is in cm.
type Content struct {
	Path string
	Size models.PageDimensions
}

type probe struct {
	content Content
	ok      bool
}

var disableConfigDir sync.Once

// ContentResolver checks content references with pdfcpu and remembers the
// result, so concurrent runs over the same deck probe each file once.
type ContentResolver struct {
	probes *cache.Cache
	logger *logger.Logger
}

func NewContentResolver(logger *logger.Logger) *ContentResolver {
	disableConfigDir.Do(api.DisableConfigDir)
	return &ContentResolver{
		probes: cache.New(cache.NoExpiration, 0),
		logger: logger,
	}
}

// Resolve reports false when ref is empty, absent, or not a readable PDF
// with at least one page. Additional pages are ignored.
func (r *ContentResolver) Resolve(ref string) (Content, bool) {
	if ref == "" {
		return Content{}, false
	}
	if cached, found := r.probes.Get(ref); found {
		p := cached.(probe)
		return p.content, p.ok
	}

	content, ok := r.probe(ref)
	r.probes.SetDefault(ref, probe{content: content, ok: ok})
	return content, ok
}

func (r *ContentResolver) probe(ref string) (Content, bool) {
	info, err := os.Stat(ref)
	if err != nil || info.IsDir() {
		r.logger.Debug("Content page not found: %s", ref)
		return Content{}, false
	}

	dims, err := api.PageDimsFile(ref)
	if err != nil {
		r.logger.Debug("Content page unreadable: %s: %v", ref, err)
		return Content{}, false
	}
	if len(dims) == 0 {
		r.logger.Debug("Content page has no pages: %s", ref)
		return Content{}, false
	}
	if len(dims) > 1 {
		r.logger.Trace("Content %s has %d pages, embedding the first", ref, len(dims))
	}

	return Content{
		Path: ref,
		Size: models.PageDimensions{
			Width:  dims[0].Width / PointsPerCm,
			Height: dims[0].Height / PointsPerCm,
		},
	}, true
}

// MatchesDimensions reports whether a content page fits a panel within
// DimensionTolerance.
func MatchesDimensions(page, panel models.PageDimensions) bool {
	return math.Abs(page.Width-panel.Width) <= DimensionTolerance &&
		math.Abs(page.Height-panel.Height) <= DimensionTolerance
}

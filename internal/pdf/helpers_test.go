package pdf_test

import (
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alping/medrefcards/internal/layout"
	"github.com/alping/medrefcards/internal/pdf"
	"github.com/alping/medrefcards/pkg/logger"
	"github.com/alping/medrefcards/pkg/models"
)

func pdfTestLogger() *logger.Logger {
	log := logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[pdf-test] "),
		logger.WithFlags(0),
	)
	log.SetVerbose(true)
	log.SetLevel(logger.LevelTrace)
	return log
}

type op struct {
	kind    string
	page    int
	rect    layout.Rect
	radius  float64
	circle  layout.Circle
	line    layout.Line
	colour  models.RGB
	font    pdf.Font
	text    string
	x, y    float64
	content pdf.Content
}

type bookmark struct {
	title     string
	level     int
	page      int
	collapsed bool
}

// recordingSurface keeps every drawing call so specs can assert on them.
type recordingSurface struct {
	sizes     []layout.Size
	ops       []op
	bookmarks []bookmark
	embedErr  error
}

func (s *recordingSurface) AddPage(size layout.Size) int {
	s.sizes = append(s.sizes, size)
	return len(s.sizes)
}

func (s *recordingSurface) PageNo() int { return len(s.sizes) }

func (s *recordingSurface) FillRoundedRect(r layout.Rect, radius float64, corners string, c models.RGB) {
	s.ops = append(s.ops, op{kind: "roundrect", page: s.PageNo(), rect: r, radius: radius, colour: c})
}

func (s *recordingSurface) FillRect(r layout.Rect, c models.RGB) {
	s.ops = append(s.ops, op{kind: "rect", page: s.PageNo(), rect: r, colour: c})
}

func (s *recordingSurface) FillCircle(c layout.Circle, col models.RGB) {
	s.ops = append(s.ops, op{kind: "circle", page: s.PageNo(), circle: c, colour: col})
}

func (s *recordingSurface) Line(l layout.Line, width float64, c models.RGB) {
	s.ops = append(s.ops, op{kind: "line", page: s.PageNo(), line: l, colour: c})
}

func (s *recordingSurface) CenteredText(x, baseline float64, font pdf.Font, c models.RGB, text string) {
	s.ops = append(s.ops, op{kind: "text", page: s.PageNo(), x: x, y: baseline, font: font, colour: c, text: text})
}

func (s *recordingSurface) EmbedPage(content pdf.Content, at layout.Point) error {
	if s.embedErr != nil {
		return s.embedErr
	}
	s.ops = append(s.ops, op{kind: "embed", page: s.PageNo(), content: content, x: at.X, y: at.Y})
	return nil
}

func (s *recordingSurface) Bookmark(title string, level int, collapsed bool) {
	s.bookmarks = append(s.bookmarks, bookmark{title: title, level: level, page: s.PageNo(), collapsed: collapsed})
}

func (s *recordingSurface) find(kind string, page int) []op {
	var out []op
	for _, o := range s.ops {
		if o.kind == kind && (page == 0 || o.page == page) {
			out = append(out, o)
		}
	}
	return out
}

func (s *recordingSurface) texts(page int) []string {
	var out []string
	for _, o := range s.find("text", page) {
		out = append(out, o.text)
	}
	return out
}

// staticContent resolves every reference except those listed as missing.
type staticContent struct {
	size    models.PageDimensions
	missing map[string]bool
}

func (c staticContent) Resolve(ref string) (pdf.Content, bool) {
	if ref == "" || c.missing[ref] {
		return pdf.Content{}, false
	}
	return pdf.Content{Path: ref, Size: c.size}, true
}

var errBrokenPage = errors.New("broken page")

func testInputs() layout.Inputs {
	return layout.Inputs{
		Border: layout.Border{
			Top: 1.5, Right: 0.25, Bottom: 0.5, Left: 0.25,
			OuterCornerRadius: 0.5, InnerCornerRadius: 0.2,
		},
		Content: layout.Content{Width: 10, Height: 13},
		KeyRing: layout.KeyRing{Radius: 1.2},
	}
}

func testSpec(mutate func(*layout.Inputs)) layout.Spec {
	in := testInputs()
	if mutate != nil {
		mutate(&in)
	}
	spec, err := layout.Resolve(in)
	Expect(err).NotTo(HaveOccurred())
	return spec
}

func testColours() models.ColorScheme {
	return models.ColorScheme{
		Name: "test",
		Domains: map[string]models.RGB{
			"cardiology": {R: 0.8, G: 0.1, B: 0.1},
			"trauma":     {R: 0.1, G: 0.1, B: 0.8},
			"pediatrics": {R: 0.1, G: 0.7, B: 0.1},
		},
	}
}

func ptr(s string) *string { return &s }

func testRecord(name, domain string) models.Record {
	return models.Record{
		Source:       fmt.Sprintf("%s.yml", name),
		Domain:       ptr(domain),
		Category:     ptr("adult"),
		FrontHeader:  ptr(name + " front"),
		FrontFooter:  ptr(name + " front footer"),
		FrontContent: ptr(name + "-front.pdf"),
		FrontTOC:     []string{"Assessment", "", "Treatment"},
		BackHeader:   ptr(name + " back"),
		BackFooter:   ptr(name + " back footer"),
		BackContent:  ptr(name + "-back.pdf"),
		BackTOC:      []string{"Doses"},
	}
}

// writeContentPDF writes a one page PDF of the given size in cm.
func writeContentPDF(path string, width, height float64, pages int) {
	f := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "cm",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	f.SetFont("Helvetica", "", 10)
	for i := 0; i < pages; i++ {
		f.AddPage()
		f.Text(0.5, 1, fmt.Sprintf("content page %d", i+1))
	}
	Expect(f.OutputFileAndClose(path)).To(Succeed())
}

package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"

	"github.com/alping/medrefcards/internal/layout"
	"github.com/alping/medrefcards/pkg/models"
	"github.com/alping/medrefcards/pkg/version"
)

// FPDFSurface draws onto an fpdf document measured in centimetres.
type FPDFSurface struct {
	pdf      *fpdf.Fpdf
	importer *gofpdi.Importer
	tr       func(string) string
}

func NewFPDFSurface(title string) *FPDFSurface {
	f := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "cm",
		Size:           fpdf.SizeType{Wd: 21, Ht: 29.7},
	})
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(0, 0, 0)
	f.SetTitle(title, true)
	f.SetCreator(version.GetVersionInfo(), true)

	return &FPDFSurface{
		pdf:      f,
		importer: gofpdi.NewImporter(),
		// core fonts are cp1252 encoded
		tr: f.UnicodeTranslatorFromDescriptor(""),
	}
}

func (s *FPDFSurface) AddPage(size layout.Size) int {
	s.pdf.AddPageFormat("P", fpdf.SizeType{Wd: size.Width, Ht: size.Height})
	return s.pdf.PageNo()
}

func (s *FPDFSurface) PageNo() int {
	return s.pdf.PageNo()
}

func (s *FPDFSurface) FillRoundedRect(r layout.Rect, radius float64, corners string, c models.RGB) {
	s.setFill(c)
	if radius <= 0 {
		s.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
		return
	}
	s.pdf.RoundedRect(r.X, r.Y, r.W, r.H, radius, corners, "F")
}

func (s *FPDFSurface) FillRect(r layout.Rect, c models.RGB) {
	s.setFill(c)
	s.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
}

func (s *FPDFSurface) FillCircle(c layout.Circle, col models.RGB) {
	s.setFill(col)
	s.pdf.Circle(c.X, c.Y, c.R, "F")
}

func (s *FPDFSurface) Line(l layout.Line, width float64, c models.RGB) {
	r, g, b := c.Bytes()
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetLineWidth(width)
	s.pdf.Line(l.X1, l.Y1, l.X2, l.Y2)
}

func (s *FPDFSurface) CenteredText(x, baseline float64, font Font, c models.RGB, text string) {
	if text == "" {
		return
	}
	r, g, b := c.Bytes()
	s.pdf.SetFont(font.Family, font.Style, font.Size)
	s.pdf.SetTextColor(r, g, b)
	text = s.tr(text)
	s.pdf.Text(x-s.pdf.GetStringWidth(text)/2, baseline, text)
}

// EmbedPage recovers from importer panics on malformed files so that one
// broken content page only blanks its own face.
func (s *FPDFSurface) EmbedPage(content Content, at layout.Point) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to import %s: %v", content.Path, r)
		}
	}()

	tpl := s.importer.ImportPage(s.pdf, content.Path, 1, "/MediaBox")
	s.importer.UseImportedTemplate(s.pdf, tpl, at.X, at.Y, content.Size.Width, content.Size.Height)
	return nil
}

// Bookmark ignores collapsed: fpdf writes every outline item closed.
func (s *FPDFSurface) Bookmark(title string, level int, collapsed bool) {
	s.pdf.Bookmark(s.tr(title), level, 0)
}

func (s *FPDFSurface) Write(w io.Writer) error {
	if err := s.pdf.Error(); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return s.pdf.Output(w)
}

func (s *FPDFSurface) setFill(c models.RGB) {
	r, g, b := c.Bytes()
	s.pdf.SetFillColor(r, g, b)
}

// Package document lays out the printable order, quote and blank order form
// PDFs. Layouts draw on a Surface so positions can be checked without
// producing a real file; NewPDF returns the go-pdf/fpdf backed implementation.
package document

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Align is the horizontal anchor for Surface.TextAligned.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// RGB is a colour triple.
type RGB struct{ R, G, B int }

// Rect styles.
const (
	Fill   = "F"
	Stroke = "D"
)

// Surface is the drawing capability the layouts need. Coordinates are in
// millimetres from the top left corner; text y is the baseline.
type Surface interface {
	AddPage()
	PageHeight() float64
	SetFont(style string, size float64)
	SetTextColor(c RGB)
	SetFillColor(c RGB)
	SetDrawColor(c RGB)
	SetLineWidth(w float64)
	Text(x, y float64, txt string)
	TextAligned(x, y float64, txt string, align Align)
	Line(x1, y1, x2, y2 float64)
	Rect(x, y, w, h float64, style string)
	SplitText(txt string, width float64) []string
	RegisterImage(name, imageType string, data []byte) error
	Image(name string, x, y, w, h float64)
}

// Canvas is a Surface that can be serialised.
type Canvas interface {
	Surface
	Output(w io.Writer) error
}

const fontFamily = "Helvetica"

type pdfSurface struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewPDF returns an empty A4 portrait document.
func NewPDF() Canvas {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		SizeStr:        "A4",
	})
	pdf.SetMargins(marginLeft, 20, 20)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(fontFamily, "", 10)
	return &pdfSurface{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (s *pdfSurface) AddPage() { s.pdf.AddPage() }

func (s *pdfSurface) PageHeight() float64 {
	_, h := s.pdf.GetPageSize()
	return h
}

func (s *pdfSurface) SetFont(style string, size float64) {
	s.pdf.SetFont(fontFamily, style, size)
}

func (s *pdfSurface) SetTextColor(c RGB) { s.pdf.SetTextColor(c.R, c.G, c.B) }
func (s *pdfSurface) SetFillColor(c RGB) { s.pdf.SetFillColor(c.R, c.G, c.B) }
func (s *pdfSurface) SetDrawColor(c RGB) { s.pdf.SetDrawColor(c.R, c.G, c.B) }
func (s *pdfSurface) SetLineWidth(w float64) {
	s.pdf.SetLineWidth(w)
}

func (s *pdfSurface) Text(x, y float64, txt string) {
	s.pdf.Text(x, y, s.tr(txt))
}

func (s *pdfSurface) TextAligned(x, y float64, txt string, align Align) {
	txt = s.tr(txt)
	w := s.pdf.GetStringWidth(txt)
	switch align {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	s.pdf.Text(x, y, txt)
}

func (s *pdfSurface) Line(x1, y1, x2, y2 float64) { s.pdf.Line(x1, y1, x2, y2) }

func (s *pdfSurface) Rect(x, y, w, h float64, style string) {
	s.pdf.Rect(x, y, w, h, style)
}

// SplitText wraps words to width. Widths are measured on the cp1252 form
// that is actually drawn; the returned lines are still UTF-8.
func (s *pdfSurface) SplitText(txt string, width float64) []string {
	return wrapWords(txt, width, func(line string) float64 {
		return s.pdf.GetStringWidth(s.tr(line))
	})
}

func (s *pdfSurface) RegisterImage(name, imageType string, data []byte) error {
	s.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if err := s.pdf.Error(); err != nil {
		return fmt.Errorf("pdf: register image %s: %w", name, err)
	}
	return nil
}

func (s *pdfSurface) Image(name string, x, y, w, h float64) {
	s.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{}, 0, "")
}

func (s *pdfSurface) Output(w io.Writer) error {
	if err := s.pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write: %w", err)
	}
	return nil
}

package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownLayout  = errors.New("document: unknown layout")
	ErrMissingLeasing = errors.New("document: leasing layout without leasing row")
)

const logoName = "logo"

// Renderer turns orders and blank form requests into PDF bytes.
type Renderer struct {
	company   Company
	logoPaths []string
	now       func() time.Time
	newCanvas func() Canvas
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogoPaths sets the candidate logo files, tried in order.
func WithLogoPaths(paths ...string) Option {
	return func(r *Renderer) { r.logoPaths = paths }
}

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// WithCanvas overrides the drawing backend.
func WithCanvas(fn func() Canvas) Option {
	return func(r *Renderer) { r.newCanvas = fn }
}

// NewRenderer creates a renderer printing the given company identity.
func NewRenderer(company Company, opts ...Option) *Renderer {
	r := &Renderer{
		company:   company,
		now:       time.Now,
		newCanvas: NewPDF,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// loadLogo registers the first readable candidate image on s and returns its
// name, or "" when none could be used. Failures never abort rendering.
func (r *Renderer) loadLogo(s Surface) string {
	for _, path := range r.logoPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		_, kind, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("logo is not a valid image")
			continue
		}
		if err := s.RegisterImage(logoName, strings.ToUpper(kind), data); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("logo could not be embedded")
			continue
		}
		return logoName
	}
	if len(r.logoPaths) > 0 {
		log.Warn().Strs("paths", r.logoPaths).Msg("no logo found, rendering without it")
	}
	return ""
}

// RenderOrder draws copies pages of an order or quote on s.
func (r *Renderer) RenderOrder(s Surface, layout Layout, o *Order, copies int) error {
	sections, ok := orderLayouts[layout]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayout, layout)
	}
	if layout == LayoutQuoteLeasing && o.Leasing == nil {
		return ErrMissingLeasing
	}

	generated := r.now()
	logo := r.loadLogo(s)
	page := &orderPage{
		order:     o,
		company:   r.company,
		generated: generated,
		logo:      logo,
		quote:     layout != LayoutOrder,
	}
	page.footer = func() { drawOrderFooter(s, r.company, generated) }

	for i := 0; i < max(copies, 1); i++ {
		s.AddPage()
		y := 0.0
		for _, section := range sections {
			y = section(page, s, y)
		}
		page.footer()
	}
	return nil
}

// RenderBlankForm draws copies pages of a blank order form on s.
func (r *Renderer) RenderBlankForm(s Surface, layout Layout, f *BlankForm, copies int) error {
	sections, ok := blankLayouts[layout]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayout, layout)
	}

	page := &blankPage{form: f, company: r.company, logo: r.loadLogo(s)}
	for i := 0; i < max(copies, 1); i++ {
		s.AddPage()
		y := 0.0
		for _, section := range sections {
			y = section(page, s, y)
		}
		drawBlankFooter(s, r.company)
	}
	return nil
}

// OrderPDF renders an order layout to PDF bytes.
func (r *Renderer) OrderPDF(layout Layout, o *Order, copies int) ([]byte, error) {
	c := r.newCanvas()
	if err := r.RenderOrder(c, layout, o, copies); err != nil {
		return nil, err
	}
	return output(c)
}

// BlankFormPDF renders a blank form layout to PDF bytes.
func (r *Renderer) BlankFormPDF(layout Layout, f *BlankForm, copies int) ([]byte, error) {
	c := r.newCanvas()
	if err := r.RenderBlankForm(c, layout, f, copies); err != nil {
		return nil, err
	}
	return output(c)
}

func output(c Canvas) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName is the download name of an order or quote, e.g.
// "Preventivo_0042_Fiori Rossi_copie2.pdf".
func FileName(quote bool, number int, customer string, copies int) string {
	prefix := "Ordine"
	if quote {
		prefix = "Preventivo"
	}
	if strings.TrimSpace(customer) == "" {
		customer = "Cliente"
	}
	suffix := ""
	if copies > 1 {
		suffix = fmt.Sprintf("_copie%d", copies)
	}
	return fmt.Sprintf("%s_%04d_%s%s.pdf", prefix, number, safeName(customer), suffix)
}

// BlankFormFileName is the download name of a blank form, e.g.
// "Modulo_Gemme_3copie.pdf".
func BlankFormFileName(tipo string, copies int) string {
	return fmt.Sprintf("Modulo_%s_%dcopie.pdf", safeName(tipo), max(copies, 1))
}

func safeName(s string) string {
	return strings.NewReplacer("/", "-", "\\", "-", "\"", "").Replace(s)
}

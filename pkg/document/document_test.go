package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textOp struct {
	page int
	x, y float64
	txt  string
}

type rectOp struct {
	page       int
	x, y, w, h float64
	style      string
}

// recorder is a Surface that remembers what was drawn.
type recorder struct {
	pages  int
	texts  []textOp
	rects  []rectOp
	images []string
}

func (r *recorder) AddPage() { r.pages++ }
func (r *recorder) PageHeight() float64 { return 297 }
func (r *recorder) SetFont(string, float64) {}
func (r *recorder) SetTextColor(RGB) {}
func (r *recorder) SetFillColor(RGB) {}
func (r *recorder) SetDrawColor(RGB) {}
func (r *recorder) SetLineWidth(float64) {}
func (r *recorder) Line(_, _, _, _ float64) {}

func (r *recorder) Text(x, y float64, txt string) {
	r.texts = append(r.texts, textOp{r.pages, x, y, txt})
}

func (r *recorder) TextAligned(x, y float64, txt string, _ Align) {
	r.Text(x, y, txt)
}

func (r *recorder) Rect(x, y, w, h float64, style string) {
	r.rects = append(r.rects, rectOp{r.pages, x, y, w, h, style})
}

// SplitText assumes 2mm per character.
func (r *recorder) SplitText(txt string, width float64) []string {
	return wrapWords(txt, width, func(s string) float64 { return float64(len([]rune(s))) * 2 })
}

func (r *recorder) RegisterImage(name, _ string, _ []byte) error { return nil }
func (r *recorder) Image(name string, _, _, _, _ float64) { r.images = append(r.images, name) }
func (r *recorder) Output(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%%PDF pages=%d", r.pages)
	return err
}

func (r *recorder) find(txt string) []textOp {
	var out []textOp
	for _, t := range r.texts {
		if t.txt == txt {
			out = append(out, t)
		}
	}
	return out
}

func (r *recorder) has(prefix string) bool {
	for _, t := range r.texts {
		if strings.HasPrefix(t.txt, prefix) {
			return true
		}
	}
	return false
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var fixedNow = time.Date(2025, 4, 12, 10, 30, 0, 0, time.UTC)

func newTestRenderer() *Renderer {
	return NewRenderer(DefaultCompany, WithClock(func() time.Time { return fixedNow }))
}

func sampleOrder() *Order {
	pct := dec("10")
	return &Order{
		Number: 42,
		Event:  "Myplant 2025",
		Date:   time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
		Status: "confermato",
		Customer: &Customer{
			Name:     "Fiori Rossi Srl",
			Referent: "Mario Rossi",
			City:     "Rimini",
			Province: "RN",
			Mobile:   "333 1234567",
			VAT:      "01234567890",
		},
		HasDisplayUnits: true,
		SaleMode:        "diretto",
		Lines: []Line{
			{Code: "ESP-001", Name: "Espositore Leo IV Plus", Unit: "pz", Quantity: dec("2"), UnitPrice: dec("100"), Subtotal: dec("200")},
			{Code: "GEM-001", Name: "Gemme", Quantity: dec("1"), UnitPrice: dec("50"), Subtotal: dec("50")},
		},
		Subtotal:       dec("250"),
		DiscountAmount: dec("25"),
		DiscountPct:    &pct,
		Total:          dec("225"),
	}
}

func TestOrderLayout_HeaderAndCustomerBlock(t *testing.T) {
	r := &recorder{}
	require.NoError(t, newTestRenderer().RenderOrder(r, LayoutOrder, sampleOrder(), 1))

	title := r.find("ORDINE #0042")
	require.Len(t, title, 1)
	assert.Equal(t, 20.0, title[0].x)
	assert.Equal(t, 50.0, title[0].y)

	require.Len(t, r.find("FIOR D'ACQUA"), 1)
	assert.Len(t, r.find("Myplant 2025"), 1)
	assert.Len(t, r.find("20/02/2025"), 1)
	assert.Len(t, r.find("CONFERMATO"), 1)

	assert.Len(t, r.find("Ref: Mario Rossi"), 1)
	assert.Len(t, r.find("Rimini RN"), 1)
	assert.Len(t, r.find("Tel: 333 1234567"), 1)
	assert.Len(t, r.find("P.IVA: 01234567890"), 1)
	assert.False(t, r.has("C.F.:"), "empty tax code must not be printed")

	assert.Len(t, r.find("ESPOSITORI - VENDITA DIRETTA"), 1)
	assert.Len(t, r.find("2 pz"), 1)
	assert.Len(t, r.find("1 pz"), 1, "missing unit defaults to pz")
}

func TestOrderLayout_TotalsPositions(t *testing.T) {
	r := &recorder{}
	o := sampleOrder()
	require.NoError(t, newTestRenderer().RenderOrder(r, LayoutOrder, o, 1))

	sub := r.find("Subtotale:")
	require.Len(t, sub, 1)
	disc := r.find("Sconto (10%):")
	require.Len(t, disc, 1)
	tot := r.find("TOTALE:")
	require.Len(t, tot, 1)

	assert.Equal(t, totalsLabelX, sub[0].x)
	assert.InDelta(t, sub[0].y+6, disc[0].y, 1e-9)
	assert.InDelta(t, sub[0].y+12, tot[0].y, 1e-9)
	assert.Len(t, r.find("- € 25,00"), 1)
	assert.Len(t, r.find("€ 225,00"), 1)

	r = &recorder{}
	o.DiscountAmount = decimal.Zero
	o.DiscountPct = nil
	o.Total = o.Subtotal
	require.NoError(t, newTestRenderer().RenderOrder(r, LayoutOrder, o, 1))

	sub = r.find("Subtotale:")
	tot = r.find("TOTALE:")
	require.Len(t, sub, 1)
	require.Len(t, tot, 1)
	assert.False(t, r.has("Sconto"))
	assert.InDelta(t, sub[0].y+6, tot[0].y, 1e-9)
}

func TestOrderLayout_AbsoluteDiscountLabel(t *testing.T) {
	o := sampleOrder()
	o.DiscountPct = nil
	o.DiscountAmount = dec("30")
	assert.Equal(t, "Sconto:", DiscountLabel(o))
}

func TestOrderLayout_NoBannerWithoutDisplayUnits(t *testing.T) {
	r := &recorder{}
	o := sampleOrder()
	o.HasDisplayUnits = false
	require.NoError(t, newTestRenderer().RenderOrder(r, LayoutQuote, o, 1))

	assert.False(t, r.has("ESPOSITORI -"))
	assert.Len(t, r.find("PREVENTIVO #0042"), 1)
}

func TestOrderLayout_NotesWrapped(t *testing.T) {
	r := &recorder{}
	o := sampleOrder()
	o.Notes = strings.Repeat("consegna ", 30)
	require.NoError(t, newTestRenderer().RenderOrder(r, LayoutOrder, o, 1))

	note := r.find("Note:")
	require.Len(t, note, 1)
	tot := r.find("TOTALE:")
	assert.InDelta(t, tot[0].y+8, note[0].y, 1e-9)

	var wrapped int
	for _, tx := range r.texts {
		if strings.HasPrefix(tx.txt, "consegna") {
			wrapped++
			assert.LessOrEqual(t, len(tx.txt)*2, int(notesWidth))
		}
	}
	assert.Greater(t, wrapped, 1)
}

func TestOrderLayout_LongNotesStayAboveFooter(t *testing.T) {
	r := &recorder{}
	o := sampleOrder()
	o.Notes = strings.Repeat("consegna entro fine mese\n", 60)
	require.NoError(t, newTestRenderer().RenderOrder(r, LayoutOrder, o, 1))

	assert.Greater(t, r.pages, 1)
	var lines int
	for _, tx := range r.texts {
		if tx.txt == "consegna entro fine mese" {
			lines++
			assert.LessOrEqual(t, tx.y, 297-orderFooterHeight-notesLineHeight, "page %d", tx.page)
		}
	}
	assert.Equal(t, 60, lines)
	assert.Len(t, r.find("Fior di Verbena di Zanotti Leonardo"), r.pages, "every page carries the footer")
}

func TestOrderLayout_Footer(t *testing.T) {
	r := &recorder{}
	require.NoError(t, newTestRenderer().RenderOrder(r, LayoutOrder, sampleOrder(), 1))

	footer := r.find("Fior di Verbena di Zanotti Leonardo")
	require.Len(t, footer, 1)
	assert.Equal(t, 297.0-32, footer[0].y)
	assert.Len(t, r.find("IBAN: SM 63 L 08540 09800 000060191115"), 1)
	assert.Len(t, r.find("Documento generato il 12/04/2025 10:30"), 1)

	var band bool
	for _, rc := range r.rects {
		if rc.y == 297-orderFooterHeight && rc.h == orderFooterHeight && rc.style == Fill {
			band = true
		}
	}
	assert.True(t, band)
}

func TestOrderLayout_CopiesAndPageBreaks(t *testing.T) {
	r := &recorder{}
	require.NoError(t, newTestRenderer().RenderOrder(r, LayoutOrder, sampleOrder(), 3))
	assert.Equal(t, 3, r.pages)
	assert.Len(t, r.find("ORDINE #0042"), 3)
	assert.Len(t, r.find("Fior di Verbena di Zanotti Leonardo"), 3)

	o := sampleOrder()
	for i := 0; i < 60; i++ {
		o.Lines = append(o.Lines, Line{Code: fmt.Sprintf("R-%02d", i), Name: "Ricambio", Quantity: dec("1"), UnitPrice: dec("1"), Subtotal: dec("1")})
	}
	r = &recorder{}
	require.NoError(t, newTestRenderer().RenderOrder(r, LayoutOrder, o, 1))
	assert.Greater(t, r.pages, 1)
	assert.Len(t, r.find("Fior di Verbena di Zanotti Leonardo"), r.pages, "every page carries the footer")
	assert.Len(t, r.find("Codice"), r.pages, "table header repeats on each page")
}

func TestQuoteLeasingLayout(t *testing.T) {
	o := sampleOrder()
	o.SaleMode = "leasing"
	terms := strings.Repeat("parola ", 60)
	o.Leasing = &LeasingRow{
		Code:        "ESP-004",
		Model:       "Espositore Leo IV Plus",
		Quantity:    dec("1"),
		UnitPrice:   dec("1000"),
		DiscountPct: dec("5"),
		Subtotal:    dec("950"),
		Terms:       terms,
	}

	r := &recorder{}
	require.NoError(t, newTestRenderer().RenderOrder(r, LayoutQuoteLeasing, o, 1))

	assert.Len(t, r.find("PREVENTIVO #0042"), 1)
	assert.Len(t, r.find("ESPOSITORI - LEASING GRENKE"), 1)
	assert.Len(t, r.find("Modello"), 1)
	assert.Len(t, r.find("5%"), 1)
	assert.Len(t, r.find("€ 950,00"), 1)
	assert.Empty(t, r.find("Prodotto"), "line table is replaced by the model row")

	label := r.find("Condizioni Leasing:")
	require.Len(t, label, 1)

	lines := r.SplitText(terms, contentWidth-termsPadding*2)
	var box *rectOp
	for i := range r.rects {
		if r.rects[i].style == Fill && r.rects[i].w == contentWidth && r.rects[i].y == label[0].y-termsPadding-4 {
			box = &r.rects[i]
		}
	}
	require.NotNil(t, box)
	assert.Equal(t, float64(len(lines))*4+2*3+4, box.h)

	tot := r.find("Subtotale:")
	require.Len(t, tot, 1)
	assert.InDelta(t, box.y+box.h+6, tot[0].y, 1e-9)
}

func TestQuoteLeasingRequiresRow(t *testing.T) {
	err := newTestRenderer().RenderOrder(&recorder{}, LayoutQuoteLeasing, sampleOrder(), 1)
	assert.ErrorIs(t, err, ErrMissingLeasing)

	err = newTestRenderer().RenderOrder(&recorder{}, LayoutBlankForm, sampleOrder(), 1)
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestBlankForm(t *testing.T) {
	form := &BlankForm{
		Type:  "Gemme",
		Event: "Flormart 2025",
		Products: []BlankProduct{
			{Code: "GEM-001", Name: "Gemme rosse", Price: dec("12.5")},
		},
	}
	r := &recorder{}
	require.NoError(t, newTestRenderer().RenderBlankForm(r, LayoutBlankForm, form, 2))

	assert.Equal(t, 2, r.pages)
	assert.Len(t, r.find("MODULO ORDINE GEMME"), 2)
	assert.Len(t, r.find("Flormart 2025"), 2)
	assert.Len(t, r.find("12,50"), 2)
	assert.Len(t, r.find("Franco Destino"), 2)
	assert.Len(t, r.find("Porto Assegnato"), 2)
	assert.False(t, r.has("Condizioni Leasing"))

	footer := r.find("Fior di Verbena di Zanotti Leonardo")
	require.Len(t, footer, 2)
	assert.Equal(t, 297.0-blankFooterHeight+4, footer[0].y)
	assert.False(t, r.has("Documento generato"))
}

func TestBlankRows(t *testing.T) {
	rows := BlankRows(nil)
	assert.Len(t, rows, BlankFormMinRows)

	var products []BlankProduct
	for i := 0; i < 25; i++ {
		products = append(products, BlankProduct{Code: fmt.Sprint(i), Name: "x"})
	}
	assert.Len(t, BlankRows(products), 25)
}

func TestBlankFormLeasing(t *testing.T) {
	form := &BlankForm{Type: "Espositori", LeasingModel: "leo4", LeasingTerms: "Condizioni di prova"}
	r := &recorder{}
	require.NoError(t, newTestRenderer().RenderBlankForm(r, LayoutBlankFormLeasing, form, 1))

	assert.Len(t, r.find("Condizioni Leasing:"), 1)
	assert.Len(t, r.find("Condizioni di prova"), 1)
	assert.Len(t, r.find("Modello leasing: leo4"), 1)
}

func TestBlankForm_EventLineWhenUnset(t *testing.T) {
	r := &recorder{}
	require.NoError(t, newTestRenderer().RenderBlankForm(r, LayoutBlankForm, &BlankForm{Type: "Nido"}, 1))
	assert.Len(t, r.find("Evento:"), 1)
	assert.Len(t, r.find("MODULO ORDINE NIDO"), 1)
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "Ordine_0042_Fiori Rossi.pdf", FileName(false, 42, "Fiori Rossi", 1))
	assert.Equal(t, "Preventivo_0007_Cliente_copie3.pdf", FileName(true, 7, "", 3))
	assert.Equal(t, "Ordine_12345_A-B.pdf", FileName(false, 12345, "A/B", 1))
	assert.Equal(t, "Modulo_Espositori_2copie.pdf", BlankFormFileName("Espositori", 2))
	assert.Equal(t, "Modulo_Nido_1copie.pdf", BlankFormFileName("Nido", 0))
}

func TestOrderPDFUsesCanvas(t *testing.T) {
	r := NewRenderer(DefaultCompany, WithCanvas(func() Canvas { return &recorder{} }))
	out, err := r.OrderPDF(LayoutOrder, sampleOrder(), 2)
	require.NoError(t, err)
	assert.Equal(t, "%PDF pages=2", string(out))
}

func TestMissingLogoIsNotFatal(t *testing.T) {
	r := NewRenderer(DefaultCompany,
		WithLogoPaths("/nonexistent/logo.png", "/also/missing.png"),
		WithCanvas(func() Canvas { return &recorder{} }))
	_, err := r.BlankFormPDF(LayoutBlankForm, &BlankForm{Type: "Ricambi"}, 1)
	require.NoError(t, err)
}

func TestRealPDFOutput(t *testing.T) {
	out, err := newTestRenderer().OrderPDF(LayoutOrder, sampleOrder(), 1)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	out, err = newTestRenderer().BlankFormPDF(LayoutBlankForm, &BlankForm{Type: "Espositori"}, 1)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/fabioverbena/Event-Manager/pkg/format"
)

const (
	orderFooterHeight = 39.0
	totalsLabelX      = 130.0
	totalsValueX      = 185.0
	notesWidth        = 170.0
	notesLineHeight   = 5.0
	termsPadding      = 3.0
	termsLineHeight   = 4.0
)

// orderPage carries what every section of an order or quote page needs.
type orderPage struct {
	order     *Order
	company   Company
	generated time.Time
	logo      string
	quote     bool
	// footer draws the footer band on the current page.
	footer func()
}

type orderSection func(p *orderPage, s Surface, y float64) float64

// orderLayouts lists the sections for each order layout in drawing order.
var orderLayouts = map[Layout][]orderSection{
	LayoutOrder: {
		(*orderPage).header, (*orderPage).title, (*orderPage).eventAndDate,
		(*orderPage).customer, (*orderPage).saleModeBanner, (*orderPage).lineTable,
		(*orderPage).totals,
	},
	LayoutQuote: {
		(*orderPage).header, (*orderPage).title, (*orderPage).eventAndDate,
		(*orderPage).customer, (*orderPage).saleModeBanner, (*orderPage).lineTable,
		(*orderPage).totals,
	},
	LayoutQuoteLeasing: {
		(*orderPage).header, (*orderPage).title, (*orderPage).eventAndDate,
		(*orderPage).customer, (*orderPage).saleModeBanner, (*orderPage).leasingTable,
		(*orderPage).leasingTerms, (*orderPage).totals,
	},
}

func (p *orderPage) header(s Surface, _ float64) float64 {
	if p.logo != "" {
		s.Image(p.logo, 20, 14, 60, 18)
	}

	s.SetTextColor(colorBlack)
	s.SetFont("B", 20)
	s.Text(95, 20, p.company.Brand)

	s.SetFont("", 10)
	s.Text(95, 27, p.company.Tagline)
	s.Text(95, 32, p.company.Website)

	s.SetDrawColor(colorBlack)
	s.SetLineWidth(0.5)
	s.Line(20, 40, 190, 40)
	return 50
}

// Title formats the document heading, e.g. "PREVENTIVO #0042".
func Title(quote bool, number int) string {
	label := "ORDINE"
	if quote {
		label = "PREVENTIVO"
	}
	return fmt.Sprintf("%s #%04d", label, number)
}

func (p *orderPage) title(s Surface, y float64) float64 {
	s.SetFont("B", 16)
	s.Text(20, y, Title(p.quote, p.order.Number))
	return y + 10
}

func (p *orderPage) eventAndDate(s Surface, y float64) float64 {
	o := p.order
	if o.Event != "" {
		s.SetFont("B", 10)
		s.Text(20, y, "Evento:")
		s.SetFont("", 10)
		s.Text(50, y, o.Event)
		y += 6
	}

	s.SetFont("B", 10)
	s.Text(20, y, "Data:")
	s.SetFont("", 10)
	s.Text(50, y, format.Date(o.Date))

	s.SetFont("B", 10)
	s.Text(120, y, "Stato:")
	s.SetFont("", 10)
	s.Text(140, y, strings.ToUpper(o.Status))
	return y + 10
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func (p *orderPage) customer(s Surface, y float64) float64 {
	s.SetFont("B", 12)
	s.Text(20, y, "CLIENTE")
	y += 7

	c := p.order.Customer
	if c != nil {
		s.SetFont("B", 10)
		s.Text(20, y, c.Name)
		y += 6
		s.SetFont("", 10)

		rows := []string{
			prefixed("Ref: ", c.Referent),
			c.Address,
			joinNonEmpty(" ", c.CAP, c.City, c.Province),
			prefixed("Tel: ", joinNonEmpty(" / ", c.Phone, c.Mobile)),
			prefixed("P.IVA: ", c.VAT),
			prefixed("C.F.: ", c.TaxCode),
		}
		for _, r := range rows {
			if r == "" {
				continue
			}
			s.Text(20, y, r)
			y += 5
		}
	}
	return y + 5
}

func prefixed(prefix, v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return prefix + v
}

// SaleModeLabel is the banner text for a display-unit sale mode.
func SaleModeLabel(mode string) string {
	if mode == "leasing" {
		return "ESPOSITORI - LEASING GRENKE"
	}
	return "ESPOSITORI - VENDITA DIRETTA"
}

func (p *orderPage) saleModeBanner(s Surface, y float64) float64 {
	o := p.order
	if !o.HasDisplayUnits || o.SaleMode == "" {
		return y
	}
	s.SetFillColor(colorBlue)
	s.Rect(20, y-4, contentWidth, 8, Fill)
	s.SetTextColor(colorWhite)
	s.SetFont("B", 10)
	s.TextAligned(105, y, SaleModeLabel(o.SaleMode), AlignCenter)
	s.SetTextColor(colorBlack)
	return y + 10
}

func (p *orderPage) table(cols []column) gridTable {
	return gridTable{
		x:            marginLeft,
		columns:      cols,
		headFontSize: 9,
		fontSize:     9,
		padding:      1.76,
		lineColor:    colorBlack,
		bottomMargin: orderFooterHeight + 5,
		beforeBreak:  p.footer,
	}
}

func (p *orderPage) lineTable(s Surface, y float64) float64 {
	rows := make([][]string, 0, len(p.order.Lines))
	for _, l := range p.order.Lines {
		unit := l.Unit
		if unit == "" {
			unit = "pz"
		}
		rows = append(rows, []string{
			l.Code,
			l.Name,
			format.Quantity(l.Quantity) + " " + unit,
			format.Money(l.UnitPrice),
			format.Money(l.Subtotal),
		})
	}

	t := p.table([]column{
		{header: "Codice", width: 30},
		{header: "Prodotto", width: 70, wrap: true},
		{header: "Q.tà", width: 25, align: AlignCenter},
		{header: "Prezzo Unit.", width: 30, align: AlignRight},
		{header: "Totale", width: 30, align: AlignRight},
	})
	return t.draw(s, y, rows) + 10
}

func (p *orderPage) leasingTable(s Surface, y float64) float64 {
	r := p.order.Leasing
	if r == nil {
		return y
	}
	t := p.table([]column{
		{header: "Codice", width: 25},
		{header: "Modello", width: 60, wrap: true},
		{header: "Q.tà", width: 15, align: AlignCenter},
		{header: "Prezzo Unit.", width: 25, align: AlignRight},
		{header: "Sconto %", width: 15, align: AlignRight},
		{header: "Subtotale", width: 30, align: AlignRight},
	})
	row := []string{
		r.Code,
		r.Model,
		format.Quantity(r.Quantity),
		format.Money(r.UnitPrice),
		format.Percent(r.DiscountPct) + "%",
		format.Money(r.Subtotal),
	}
	return t.draw(s, y, [][]string{row}) + 6
}

// TermsBoxHeight is the height of a terms box holding n wrapped lines.
func TermsBoxHeight(lines int) float64 {
	return float64(lines)*termsLineHeight + termsPadding*2 + 4
}

func drawTermsBox(s Surface, y float64, terms string) float64 {
	s.SetFont("", 10)
	lines := s.SplitText(terms, contentWidth-termsPadding*2)
	h := TermsBoxHeight(len(lines))

	s.SetFillColor(colorTermsBg)
	s.Rect(marginLeft, y, contentWidth, h, Fill)
	s.SetDrawColor(colorTermsLine)
	s.SetLineWidth(0.1)
	s.Rect(marginLeft, y, contentWidth, h, Stroke)

	s.SetFont("B", 10)
	s.Text(marginLeft+termsPadding, y+termsPadding+4, "Condizioni Leasing:")
	s.SetFont("", 10)
	ly := y + termsPadding + 9
	for _, l := range lines {
		s.Text(marginLeft+termsPadding, ly, l)
		ly += termsLineHeight
	}
	s.SetDrawColor(colorBlack)
	return y + h + 6
}

func (p *orderPage) leasingTerms(s Surface, y float64) float64 {
	if p.order.Leasing == nil {
		return y
	}
	return drawTermsBox(s, y, p.order.Leasing.Terms)
}

// DiscountLabel is the caption of the discount row in the totals block.
func DiscountLabel(o *Order) string {
	if o.DiscountPct != nil && o.DiscountPct.IsPositive() {
		return fmt.Sprintf("Sconto (%s%%):", format.Percent(*o.DiscountPct))
	}
	return "Sconto:"
}

// totals draws subtotal, the optional discount and the total, then the notes.
// The total moves up when there is no discount row.
func (p *orderPage) totals(s Surface, y float64) float64 {
	o := p.order
	// keep the block together with the footer clear
	if y+20 > s.PageHeight()-orderFooterHeight {
		y = p.breakPage(s)
	}

	s.SetFont("", 10)
	s.Text(totalsLabelX, y, "Subtotale:")
	s.TextAligned(totalsValueX, y, format.Money(o.Subtotal), AlignRight)

	hasDiscount := o.DiscountAmount.IsPositive()
	if hasDiscount {
		s.Text(totalsLabelX, y+6, DiscountLabel(o))
		s.TextAligned(totalsValueX, y+6, "- "+format.Money(o.DiscountAmount), AlignRight)
	}

	totalY := y + 6
	if hasDiscount {
		totalY = y + 12
	}
	s.SetFont("B", 12)
	s.Text(totalsLabelX, totalY, "TOTALE:")
	s.TextAligned(totalsValueX, totalY, format.Money(o.Total), AlignRight)

	return p.notes(s, totalY+8)
}

func (p *orderPage) notes(s Surface, y float64) float64 {
	if strings.TrimSpace(p.order.Notes) == "" {
		return y
	}
	// no line may reach into the footer band
	limit := s.PageHeight() - orderFooterHeight - notesLineHeight
	if y+notesLineHeight > limit {
		y = p.breakPage(s)
	}
	s.SetFont("B", 10)
	s.Text(20, y, "Note:")
	s.SetFont("", 10)
	ly := y + notesLineHeight
	for _, l := range s.SplitText(p.order.Notes, notesWidth) {
		if ly > limit {
			ly = p.breakPage(s)
			s.SetFont("", 10)
		}
		s.Text(20, ly, l)
		ly += notesLineHeight
	}
	return ly
}

// breakPage closes the current page with the footer and returns the first
// usable y on the next one.
func (p *orderPage) breakPage(s Surface) float64 {
	if p.footer != nil {
		p.footer()
	}
	s.AddPage()
	return topMargin + 10
}

// drawOrderFooter pins the company band to the bottom of the current page.
func drawOrderFooter(s Surface, c Company, generated time.Time) {
	h := s.PageHeight()
	top := h - orderFooterHeight

	s.SetFillColor(colorFooterBg)
	s.Rect(0, top, pageWidth, orderFooterHeight, Fill)
	s.SetDrawColor(colorGreen)
	s.SetLineWidth(0.5)
	s.Line(0, top, pageWidth, top)

	s.SetTextColor(colorBlack)
	s.SetFont("B", 8)
	y := h - 32
	s.TextAligned(105, y, c.LegalName, AlignCenter)
	s.SetFont("", 8)
	for _, line := range []string{c.Address, c.Phones, c.Emails, c.IBAN} {
		y += 4
		s.TextAligned(105, y, line, AlignCenter)
	}

	y += 5
	s.SetFont("", 7)
	s.SetTextColor(colorGrey)
	s.TextAligned(105, y, "Documento generato il "+format.DateTime(generated), AlignCenter)
	s.SetTextColor(colorBlack)
	s.SetDrawColor(colorBlack)
}

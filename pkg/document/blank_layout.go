package document

import (
	"strings"

	"github.com/fabioverbena/Event-Manager/pkg/format"
)

const (
	// BlankFormMinRows is the minimum number of product rows on a blank form.
	BlankFormMinRows      = 18
	blankFormBottomMargin = 45.0
	blankFooterHeight     = 18.0
	// space needed under the table for totals, transport and notes
	blankTailHeight = 35.0
)

type blankPage struct {
	form    *BlankForm
	company Company
	logo    string
}

type blankSection func(p *blankPage, s Surface, y float64) float64

var blankLayouts = map[Layout][]blankSection{
	LayoutBlankForm: {
		(*blankPage).header, (*blankPage).eventAndDate, (*blankPage).customerLines,
		(*blankPage).productTable, (*blankPage).totalLines, (*blankPage).transport,
		(*blankPage).notes,
	},
	LayoutBlankFormLeasing: {
		(*blankPage).header, (*blankPage).eventAndDate, (*blankPage).customerLines,
		(*blankPage).productTable, (*blankPage).totalLines, (*blankPage).transport,
		(*blankPage).notes, (*blankPage).leasingTerms,
	},
}

// BlankFormTitle is the heading of a blank form, e.g. "MODULO ORDINE GEMME".
func BlankFormTitle(tipo string) string {
	return "MODULO ORDINE " + strings.ToUpper(tipo)
}

func (p *blankPage) header(s Surface, _ float64) float64 {
	if p.logo != "" {
		s.Image(p.logo, 20, 8, 60, 18)
	}
	s.SetTextColor(colorBlack)
	s.SetFont("B", 18)
	s.Text(95, 16, BlankFormTitle(p.form.Type))

	s.SetFont("", 9)
	s.Text(95, 22, p.company.FormTagline)

	s.SetDrawColor(colorBlack)
	s.SetLineWidth(0.5)
	s.Line(20, 28, 190, 28)
	return 36
}

func (p *blankPage) eventAndDate(s Surface, y float64) float64 {
	s.SetFont("B", 10)
	s.Text(20, y, "Evento:")
	s.SetLineWidth(0.1)
	if p.form.Event != "" {
		s.Text(42, y, p.form.Event)
	} else {
		s.Line(40, y, 110, y)
	}

	s.SetFont("B", 10)
	s.Text(120, y, "Data:")
	s.Line(135, y, 190, y)
	return y + 10
}

// fillLine is a label followed by a rule to write on.
type fillLine struct {
	label          string
	labelX, x1, x2 float64
}

func (p *blankPage) customerLines(s Surface, y float64) float64 {
	s.SetFont("B", 11)
	s.Text(20, y, "DATI CLIENTE")
	y += 7

	s.SetFont("", 9)
	s.SetLineWidth(0.1)
	rows := [][]fillLine{
		{{"Ragione Sociale:", 20, 50, 190}},
		{{"Referente:", 20, 40, 110}, {"Tel:", 120, 130, 190}},
		{{"Indirizzo:", 20, 40, 190}},
		{{"Città:", 20, 35, 100}, {"CAP:", 110, 122, 150}, {"Prov:", 160, 173, 190}},
		{{"P.IVA:", 20, 35, 100}, {"Email:", 110, 125, 190}},
	}
	for i, row := range rows {
		for _, f := range row {
			s.Text(f.labelX, y, f.label)
			s.Line(f.x1, y, f.x2, y)
		}
		if i < len(rows)-1 {
			y += 6
		}
	}
	return y + 10
}

// BlankRows pads the catalog rows with empty ones up to BlankFormMinRows.
func BlankRows(products []BlankProduct) [][]string {
	rows := make([][]string, 0, max(len(products), BlankFormMinRows))
	for _, p := range products {
		rows = append(rows, []string{p.Code, p.Name, "", format.Amount(p.Price), ""})
	}
	for len(rows) < BlankFormMinRows {
		rows = append(rows, []string{"", "", "", "", ""})
	}
	return rows
}

func (p *blankPage) productTable(s Surface, y float64) float64 {
	s.SetFont("B", 9)
	s.Text(20, y, "PRODOTTI")
	y += 3

	t := gridTable{
		x: marginLeft,
		columns: []column{
			{header: "Codice", width: 25},
			{header: "Descrizione Prodotto", width: 82},
			{header: "Q.tà", width: 18, align: AlignCenter},
			{header: "Prezzo €", width: 22, align: AlignRight},
			{header: "Totale €", width: 23, align: AlignRight},
		},
		headFontSize: 9,
		fontSize:     8,
		padding:      1.2,
		minRowHeight: 5.5,
		lineColor:    colorGrey,
		bottomMargin: blankFormBottomMargin,
		beforeBreak:  func() { drawBlankFooter(s, p.company) },
	}
	y = t.draw(s, y, BlankRows(p.form.Products)) + 5

	if y+blankTailHeight > s.PageHeight()-blankFooterHeight {
		drawBlankFooter(s, p.company)
		s.AddPage()
		y = topMargin + 5
	}
	return y
}

func (p *blankPage) totalLines(s Surface, y float64) float64 {
	s.SetFont("", 9)
	s.SetLineWidth(0.1)
	s.Text(130, y, "Subtotale:")
	s.Line(155, y, 190, y)

	s.Text(130, y+6, "Sconto (%):")
	s.Line(155, y+6, 165, y+6)
	s.Text(170, y+6, "€:")
	s.Line(175, y+6, 190, y+6)

	s.SetFont("B", 10)
	s.Text(130, y+12, "TOTALE:")
	s.SetLineWidth(0.3)
	s.Line(155, y+12, 190, y+12)
	return y + 15
}

func (p *blankPage) transport(s Surface, y float64) float64 {
	s.SetFont("B", 9)
	s.Text(20, y, "CONDIZIONI TRASPORTO:")

	s.SetFont("", 9)
	s.SetLineWidth(0.1)
	s.Rect(20, y+2, 3, 3, Stroke)
	s.Text(25, y+5, "Franco Destino")
	s.Rect(70, y+2, 3, 3, Stroke)
	s.Text(75, y+5, "Porto Assegnato")
	return y + 11
}

func (p *blankPage) notes(s Surface, y float64) float64 {
	s.SetFont("B", 9)
	s.Text(20, y, "Note:")
	s.SetLineWidth(0.1)
	s.Line(20, y+2, 190, y+2)
	s.Line(20, y+7, 190, y+7)
	return y + 12
}

func (p *blankPage) leasingTerms(s Surface, y float64) float64 {
	if strings.TrimSpace(p.form.LeasingTerms) == "" {
		return y
	}
	s.SetFont("", 10)
	h := TermsBoxHeight(len(s.SplitText(p.form.LeasingTerms, contentWidth-termsPadding*2)))
	if y+h > s.PageHeight()-blankFooterHeight {
		drawBlankFooter(s, p.company)
		s.AddPage()
		y = topMargin
	}
	if p.form.LeasingModel != "" {
		s.SetFont("B", 9)
		s.Text(20, y, "Modello leasing: "+p.form.LeasingModel)
		y += 3
	}
	return drawTermsBox(s, y, p.form.LeasingTerms)
}

func drawBlankFooter(s Surface, c Company) {
	h := s.PageHeight()
	top := h - blankFooterHeight

	s.SetFillColor(colorFooterBg)
	s.Rect(0, top, pageWidth, blankFooterHeight, Fill)
	s.SetDrawColor(colorGreen)
	s.SetLineWidth(0.5)
	s.Line(0, top, pageWidth, top)

	s.SetTextColor(colorBlack)
	s.SetFont("B", 6)
	y := top + 4
	s.TextAligned(105, y, c.LegalName, AlignCenter)
	s.SetFont("", 6)
	for _, line := range []string{c.Address, c.Phones, c.Emails, c.IBAN} {
		y += 3
		s.TextAligned(105, y, line, AlignCenter)
	}
	s.SetDrawColor(colorBlack)
}

package document

const (
	marginLeft   = 20.0
	contentWidth = 170.0
	pageWidth    = 210.0
	topMargin    = 20.0
	// millimetres per point, used to turn font sizes into line heights
	ptToMM = 25.4 / 72
)

var (
	colorBlack     = RGB{0, 0, 0}
	colorWhite     = RGB{255, 255, 255}
	colorGreen     = RGB{34, 139, 34}
	colorBlue      = RGB{59, 130, 246}
	colorFooterBg  = RGB{240, 240, 240}
	colorTermsBg   = RGB{245, 245, 245}
	colorTermsLine = RGB{200, 200, 200}
	colorGrey      = RGB{100, 100, 100}
)

type column struct {
	header string
	width  float64
	align  Align
	wrap   bool
}

// gridTable draws a bordered table with a filled header row, breaking onto
// new pages when a row would cross the bottom margin.
type gridTable struct {
	x            float64
	columns      []column
	headFontSize float64
	fontSize     float64
	padding      float64
	minRowHeight float64
	lineColor    RGB
	bottomMargin float64
	// beforeBreak runs on the page being left, before AddPage.
	beforeBreak func()
}

func (t gridTable) lineHeight(size float64) float64 {
	return size * 1.15 * ptToMM
}

func (t gridTable) rowHeight(lines int, size float64) float64 {
	if lines < 1 {
		lines = 1
	}
	h := float64(lines)*t.lineHeight(size) + 2*t.padding
	if h < t.minRowHeight {
		h = t.minRowHeight
	}
	return h
}

func (t gridTable) drawRow(s Surface, y float64, cells [][]string, size float64, head bool) float64 {
	maxLines := 1
	for _, c := range cells {
		if len(c) > maxLines {
			maxLines = len(c)
		}
	}
	h := t.rowHeight(maxLines, size)

	s.SetLineWidth(0.1)
	s.SetDrawColor(t.lineColor)
	if head {
		s.SetFillColor(colorGreen)
		s.SetTextColor(colorWhite)
		s.SetFont("B", size)
	} else {
		s.SetTextColor(colorBlack)
		s.SetFont("", size)
	}

	x := t.x
	for i, col := range t.columns {
		if head {
			s.Rect(x, y, col.width, h, Fill)
		}
		s.Rect(x, y, col.width, h, Stroke)

		baseline := y + t.padding + t.lineHeight(size)*0.8
		for _, line := range cells[i] {
			switch col.align {
			case AlignCenter:
				s.TextAligned(x+col.width/2, baseline, line, AlignCenter)
			case AlignRight:
				s.TextAligned(x+col.width-t.padding, baseline, line, AlignRight)
			default:
				s.Text(x+t.padding, baseline, line)
			}
			baseline += t.lineHeight(size)
		}
		x += col.width
	}
	s.SetTextColor(colorBlack)
	return y + h
}

func (t gridTable) cells(s Surface, row []string, head bool) [][]string {
	out := make([][]string, len(t.columns))
	for i, col := range t.columns {
		v := ""
		if i < len(row) {
			v = row[i]
		}
		switch {
		case v == "":
			out[i] = nil
		case col.wrap && !head:
			s.SetFont("", t.fontSize)
			out[i] = s.SplitText(v, col.width-2*t.padding)
		default:
			out[i] = []string{v}
		}
	}
	return out
}

// draw renders the header and rows starting at y and returns the y just
// below the last row.
func (t gridTable) draw(s Surface, y float64, rows [][]string) float64 {
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.header
	}
	headCells := t.cells(s, headers, true)
	y = t.drawRow(s, y, headCells, t.headFontSize, true)

	for _, row := range rows {
		cells := t.cells(s, row, false)
		maxLines := 1
		for _, c := range cells {
			if len(c) > maxLines {
				maxLines = len(c)
			}
		}
		if y+t.rowHeight(maxLines, t.fontSize) > s.PageHeight()-t.bottomMargin {
			if t.beforeBreak != nil {
				t.beforeBreak()
			}
			s.AddPage()
			y = t.drawRow(s, topMargin, headCells, t.headFontSize, true)
		}
		y = t.drawRow(s, y, cells, t.fontSize, false)
	}
	return y
}

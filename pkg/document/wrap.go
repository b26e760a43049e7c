package document

import "strings"

// wrapWords breaks txt into lines no wider than width according to measure.
// Explicit newlines are kept; a single word wider than width gets its own line.
func wrapWords(txt string, width float64, measure func(string) float64) []string {
	txt = strings.TrimRight(txt, "\n")
	if strings.TrimSpace(txt) == "" {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(txt, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			candidate := cur + " " + w
			if measure(candidate) > width {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = candidate
		}
		lines = append(lines, cur)
	}
	return lines
}

package pdftext

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ledongthuc/pdf"
)

// fragment is one positioned text run lifted from a page content stream.
type fragment struct {
	x, y float64
	text string
}

// Extractor pulls plain text out of raw PDF bytes. It is stateless and safe
// for concurrent use.
type Extractor struct{}

func NewExtractor() Extractor {
	return Extractor{}
}

// Extract returns the document text in reading order: fragments are grouped
// into rows by vertical position, rows ordered top to bottom, and fragments
// within a row ordered left to right. The positioned-fragment handling stays
// internal; callers only see the finished text.
func (Extractor) Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var out bytes.Buffer
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		frags := make([]fragment, 0, len(content.Text))
		for _, t := range content.Text {
			if t.S == "" {
				continue
			}
			frags = append(frags, fragment{x: t.X, y: t.Y, text: t.S})
		}

		if out.Len() > 0 && len(frags) > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(assembleRows(frags))
	}

	return out.String(), nil
}

// assembleRows joins positioned fragments into line-ordered text. PDF Y grows
// bottom-up, so rows sort by descending Y to read top to bottom.
func assembleRows(frags []fragment) string {
	rows := make(map[float64][]fragment)
	for _, f := range frags {
		rows[f.y] = append(rows[f.y], f)
	}

	ys := make([]float64, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ys)))

	var out bytes.Buffer
	for i, y := range ys {
		row := rows[y]
		sort.Slice(row, func(a, b int) bool { return row[a].x < row[b].x })

		if i > 0 {
			out.WriteByte('\n')
		}
		for j, f := range row {
			if j > 0 {
				out.WriteByte(' ')
			}
			out.WriteString(f.text)
		}
	}
	return out.String()
}

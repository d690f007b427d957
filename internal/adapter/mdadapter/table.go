package mdadapter

import (
	"strings"

	"github.com/jgivc/challtable/internal/entity"
)

var cellEscaper = strings.NewReplacer(
	"|", `\|`,
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// Header returns the column row and the separator row, each ending in a newline.
func Header(s *Schema) string {
	titles := make([]string, len(s.Columns))
	dashes := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		titles[i] = " " + c.Title + " "
		dashes[i] = strings.Repeat("-", len(c.Title)+2)
	}

	return "|" + strings.Join(titles, "|") + "|\n" +
		"|" + strings.Join(dashes, "|") + "|\n"
}

// Row formats one record as a table row ending in a newline.
func Row(s *Schema, r *entity.Record, style Style) string {
	cells := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		cells[i] = cellEscaper.Replace(c.Value(r, style))
	}

	return "| " + strings.Join(cells, " | ") + " |\n"
}

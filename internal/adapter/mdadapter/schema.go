package mdadapter

import (
	"fmt"
	"strings"

	"github.com/jgivc/challtable/internal/entity"
)

const (
	SchemaMinimal  = "minimal"
	SchemaExtended = "extended"

	glyphTested   = "✅"
	glyphUntested = "❌"
)

const (
	StyleWord Style = iota
	StyleGlyph
)

// Style selects how the tested flag is printed.
type Style int

func (s Style) String() string {
	return [...]string{"word", "glyph"}[s]
}

func ParseStyle(name string) (Style, error) {
	switch name {
	case StyleWord.String():
		return StyleWord, nil
	case StyleGlyph.String():
		return StyleGlyph, nil
	}

	return StyleWord, fmt.Errorf("unknown tested style: %q", name)
}

// Column is one report column: a title and how to pull its cell out of a record.
type Column struct {
	Title string
	Value func(r *entity.Record, style Style) string
}

// Schema describes the report layout and its default file name.
type Schema struct {
	Name     string
	FileName string
	Columns  []Column
}

var (
	columnTested = Column{"tested", func(r *entity.Record, style Style) string {
		return formatTested(r.Tested.Tested, style)
	}}
	columnName = Column{"name", func(r *entity.Record, _ Style) string {
		return r.Challenge.Name
	}}
	columnAuthor = Column{"author", func(r *entity.Record, _ Style) string {
		return r.Challenge.Author
	}}
	columnCategory = Column{"category", func(r *entity.Record, _ Style) string {
		return r.Challenge.Category
	}}
	columnTags = Column{"tags", func(r *entity.Record, _ Style) string {
		return strings.Join(r.Challenge.Tags, ", ")
	}}
	columnTester = Column{"tester", func(r *entity.Record, _ Style) string {
		return r.Tested.Tester
	}}
	columnTestedURL = Column{"tested_url", func(r *entity.Record, _ Style) string {
		return r.Tested.TestedURL
	}}
)

func MinimalSchema() *Schema {
	return &Schema{
		Name:     SchemaMinimal,
		FileName: "README.md",
		Columns:  []Column{columnTested, columnName, columnAuthor, columnCategory, columnTags},
	}
}

// ExtendedSchema adds the tester columns. Solver is required in tested.yml
// but has no column.
func ExtendedSchema() *Schema {
	return &Schema{
		Name:     SchemaExtended,
		FileName: "TESTED.md",
		Columns: []Column{
			columnTested, columnName, columnAuthor, columnCategory, columnTags,
			columnTester, columnTestedURL,
		},
	}
}

func SchemaByName(name string) (*Schema, error) {
	switch name {
	case SchemaMinimal:
		return MinimalSchema(), nil
	case SchemaExtended:
		return ExtendedSchema(), nil
	}

	return nil, fmt.Errorf("unknown schema: %q", name)
}

func formatTested(tested bool, style Style) string {
	if style == StyleGlyph {
		if tested {
			return glyphTested
		}

		return glyphUntested
	}

	return fmt.Sprint(tested)
}

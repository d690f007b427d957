package mdadapter

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const (
	classTested   = "tested"
	classUntested = "untested"
)

// TestedRowExtension marks table body rows with class="tested" or
// class="untested", judged by the first cell.
type TestedRowExtension struct{}

func NewTestedRowExtension() goldmark.Extender {
	return &TestedRowExtension{}
}

func (e *TestedRowExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&testedRowTransformer{}, 500),
		),
	)
}

type testedRowTransformer struct{}

func (t *testedRowTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != extast.KindTableRow {
			return ast.WalkContinue, nil
		}

		if cell := n.FirstChild(); cell != nil {
			switch string(cellText(cell, source)) {
			case "true", glyphTested:
				n.SetAttributeString("class", []byte(classTested))
			case "false", glyphUntested:
				n.SetAttributeString("class", []byte(classUntested))
			}
		}

		return ast.WalkSkipChildren, nil
	})
}

func cellText(cell ast.Node, source []byte) []byte {
	var buf bytes.Buffer

	_ = ast.Walk(cell, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(source))
		case *ast.String:
			buf.Write(v.Value)
		}

		return ast.WalkContinue, nil
	})

	return bytes.TrimSpace(buf.Bytes())
}

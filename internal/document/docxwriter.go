package document

import (
	"strings"

	"github.com/gomutex/godocx"
)

const (
	docxFontName = "Yu Gothic"
	docxColor    = "000000"
)

// docxBackend writes Word documents. Word reflows text itself, so pages are
// kept apart with explicit page breaks and items are indented with spaces.
type docxBackend struct {
	layout   Layout
	measurer cellMeasurer
}

func newDOCXBackend(layout Layout) *docxBackend {
	return &docxBackend{layout: layout, measurer: newCellMeasurer()}
}

func (b *docxBackend) Extension() string { return ".docx" }

func (b *docxBackend) Measure(text string, style Style) float64 {
	return b.measurer.Measure(text, style)
}

func (b *docxBackend) Write(pages []Page, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	indent := strings.Repeat(" ", int(b.layout.ItemIndent/b.layout.BodySize*2))
	for i, page := range pages {
		if i > 0 {
			doc.AddPageBreak()
		}
		for _, line := range page.Lines {
			text := line.Text
			if line.Kind == KindItem {
				text = indent + text
			}
			run := doc.AddParagraph("").AddText(text).
				Font(docxFontName).
				Size(uint64(line.Style.Size)).
				Color(docxColor)
			if line.Style.Bold {
				run.Bold(true)
			}
		}
	}

	return doc.SaveTo(path)
}

package document

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/sfnt"
)

const pdfFontFamily = "minutes"

var (
	// ErrFontRequired means PDF output was requested without a font file.
	ErrFontRequired = errors.New("document.font_path is required for PDF output")
	// ErrFontCoverage means the font cannot draw Japanese text.
	ErrFontCoverage = errors.New("font has no Japanese glyphs")
)

// coverageRunes must all be present in every PDF font.
var coverageRunes = []rune{'議', '題', 'あ', 'ア'}

type pdfBackend struct {
	layout  Layout
	regular []byte
	bold    []byte

	mu       sync.Mutex
	measurer *fpdf.Fpdf
}

// newPDFBackend loads TrueType fonts from disk. The regular font doubles as
// the bold one when no bold path is given.
func newPDFBackend(layout Layout, regularPath, boldPath string) (*pdfBackend, error) {
	if regularPath == "" {
		return nil, fmt.Errorf("%w: point it at a TrueType font with Japanese glyphs, e.g. IPAexGothic", ErrFontRequired)
	}

	regular, err := readFont(regularPath)
	if err != nil {
		return nil, err
	}
	bold := regular
	if boldPath != "" {
		if bold, err = readFont(boldPath); err != nil {
			return nil, err
		}
	}

	return loadPDFBackend(layout, regular, bold)
}

func readFont(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	if err := checkCoverage(data); err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	return data, nil
}

// checkCoverage fails unless every coverage rune maps to a real glyph.
// fpdf would otherwise draw nothing for them and measure each at half an em.
func checkCoverage(data []byte) error {
	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	var buf sfnt.Buffer
	for _, r := range coverageRunes {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return fmt.Errorf("look up %q: %w", r, err)
		}
		if idx == 0 {
			return fmt.Errorf("%w (missing %q)", ErrFontCoverage, r)
		}
	}
	return nil
}

func loadPDFBackend(layout Layout, regular, bold []byte) (*pdfBackend, error) {
	b := &pdfBackend{layout: layout, regular: regular, bold: bold}
	b.measurer = b.newDocument()
	if err := b.measurer.Error(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	return b, nil
}

func (b *pdfBackend) newDocument() *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: b.layout.PageWidth, Ht: b.layout.PageHeight},
	})
	pdf.SetMargins(b.layout.Margin, b.layout.Margin, b.layout.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", b.regular)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", b.bold)
	return pdf
}

func (b *pdfBackend) Extension() string { return ".pdf" }

func (b *pdfBackend) Measure(text string, style Style) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.measurer.SetFont(pdfFontFamily, fontStyle(style), style.Size)
	return b.measurer.GetStringWidth(text)
}

func (b *pdfBackend) Write(pages []Page, path string) error {
	pdf := b.newDocument()

	for _, page := range pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			if line.Text == "" {
				continue
			}
			pdf.SetFont(pdfFontFamily, fontStyle(line.Style), line.Style.Size)
			pdf.Text(line.X, line.Y, line.Text)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func fontStyle(s Style) string {
	if s.Bold {
		return "B"
	}
	return ""
}

package converters

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

const (
	pdfFormat      = "pdf"
	pdfPageWidth   = 190.0
	pdfMarginLeft  = 10.0
	pdfMarginTop   = 10.0
	pdfMarginRight = 10.0
	pdfLineHeight  = 5.0
)

var methodColors = map[string][3]int{
	"GET":     {97, 175, 254},  // Blue
	"POST":    {73, 204, 144},  // Green
	"PUT":     {252, 161, 48},  // Orange
	"DELETE":  {249, 62, 62},   // Red
	"PATCH":   {80, 227, 194},  // Teal
	"HEAD":    {144, 97, 249},  // Purple
	"OPTIONS": {128, 128, 128}, // Gray
}

// PDFConverter renders a collection catalog as a PDF document.
type PDFConverter struct {
	pdf      *gofpdf.Fpdf
	tocItems []tocItem
}

type tocItem struct {
	title  string
	level  int
	linkID int
}

// NewPDFConverter creates a new PDF converter.
func NewPDFConverter() *PDFConverter {
	return &PDFConverter{}
}

// Format returns the output format name.
func (c *PDFConverter) Format() string {
	return pdfFormat
}

// Convert writes the catalog as PDF.
func (c *PDFConverter) Convert(catalog *domain.Catalog, output io.Writer) error {
	c.pdf = gofpdf.New("P", "mm", "A4", "")
	c.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	c.pdf.SetDrawColor(180, 180, 180) // Light gray for all borders
	c.tocItems = nil

	groups := groupByFolder(catalog)

	// First pass: one link per folder and per request, in content order
	c.collectTOC(groups)

	c.addTitlePage(catalog)
	c.addTableOfContents()
	c.addContent(groups)

	if err := c.pdf.Output(output); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	return nil
}

func (c *PDFConverter) collectTOC(groups []folderGroup) {
	for _, group := range groups {
		c.tocItems = append(c.tocItems, tocItem{title: group.name, level: 1, linkID: c.pdf.AddLink()})

		for _, entry := range group.entries {
			c.tocItems = append(c.tocItems, tocItem{title: entry.Name, level: 2, linkID: c.pdf.AddLink()})
		}
	}
}

func (c *PDFConverter) addTitlePage(catalog *domain.Catalog) {
	c.pdf.AddPage()

	c.pdf.SetFont("Arial", "B", 28)
	c.pdf.Ln(40)
	c.pdf.CellFormat(pdfPageWidth, 15, catalog.Title, "", 1, "C", false, 0, "")
	c.pdf.Ln(5)

	c.pdf.SetFont("Arial", "", 14)
	c.pdf.SetTextColor(100, 100, 100)
	c.pdf.CellFormat(pdfPageWidth, 8, fmt.Sprintf("Version %s", catalog.Version), "", 1, "C", false, 0, "")
	c.pdf.CellFormat(pdfPageWidth, 8, fmt.Sprintf("%d requests", len(catalog.Entries)), "", 1, "C", false, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.Ln(30)

	c.pdf.SetFont("Arial", "", 10)
	c.pdf.SetTextColor(128, 128, 128)
	c.pdf.CellFormat(pdfPageWidth, 6, "Bruno Collection Catalog", "", 1, "C", false, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
}

func (c *PDFConverter) addTableOfContents() {
	c.pdf.AddPage()

	c.pdf.SetFont("Arial", "B", 20)
	c.pdf.CellFormat(pdfPageWidth, 10, "Table of Contents", "", 1, "", false, 0, "")
	c.pdf.Ln(8)

	for _, item := range c.tocItems {
		indent := float64(item.level-1) * 8

		if item.level == 1 {
			c.pdf.SetFont("Arial", "B", 11)
		} else {
			c.pdf.SetFont("Arial", "", 9)
		}

		c.pdf.SetX(pdfMarginLeft + indent)
		c.pdf.CellFormat(pdfPageWidth-indent, pdfLineHeight, truncate(item.title, 60), "", 1, "", false, item.linkID, "")
	}
}

func (c *PDFConverter) addContent(groups []folderGroup) {
	tocIndex := 0

	for _, group := range groups {
		c.pdf.AddPage()
		c.setLinkDest(tocIndex)
		tocIndex++

		// Folder header
		c.pdf.SetFont("Arial", "B", 14)
		c.pdf.SetFillColor(240, 240, 240)
		c.pdf.CellFormat(pdfPageWidth, 8, group.name, "", 1, "", true, 0, "")
		c.pdf.Ln(4)

		c.addFolderSummary(group.entries, tocIndex)
		c.pdf.Ln(6)

		for _, entry := range group.entries {
			c.checkPageBreak(40)
			c.setLinkDest(tocIndex)
			tocIndex++

			c.addEntry(entry)
		}
	}
}

func (c *PDFConverter) setLinkDest(tocIndex int) {
	if tocIndex < len(c.tocItems) {
		c.pdf.SetLink(c.tocItems[tocIndex].linkID, -1, -1)
	}
}

func (c *PDFConverter) addFolderSummary(entries []domain.CatalogEntry, startTocIndex int) {
	c.pdf.SetFont("Arial", "B", 9)
	c.pdf.SetFillColor(245, 245, 245)

	colWidths := []float64{15, 85, 75, 15}
	headers := []string{"Seq", "Name", "File", "Method"}

	for i, header := range headers {
		c.pdf.CellFormat(colWidths[i], 6, header, "1", 0, "", true, 0, "")
	}
	c.pdf.Ln(-1)

	c.pdf.SetFont("Arial", "", 9)

	for i, entry := range entries {
		contents := []string{fmt.Sprint(entry.Seq), truncate(entry.Name, 60), entry.File, formatMethod(entry.Method)}
		aligns := []string{"C", "L", "L", "C"}

		var linkIDs []int
		if idx := startTocIndex + i; idx < len(c.tocItems) {
			linkID := c.tocItems[idx].linkID
			linkIDs = []int{linkID, linkID, linkID, linkID}
		}

		c.addTableRow(colWidths, contents, aligns, linkIDs)
	}
}

func (c *PDFConverter) addEntry(entry domain.CatalogEntry) {
	method := formatMethod(entry.Method)

	color, ok := methodColors[method]
	if !ok {
		color = [3]int{128, 128, 128}
	}

	// Method badge
	c.pdf.SetFont("Arial", "B", 11)
	c.pdf.SetFillColor(color[0], color[1], color[2])
	c.pdf.SetTextColor(255, 255, 255)
	methodWidth := float64(len(method)*3) + 8
	c.pdf.CellFormat(methodWidth, 7, method, "", 0, "C", true, 0, "")

	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.CellFormat(pdfPageWidth-methodWidth, 7, " "+entry.URL, "", 1, "", false, 0, "")
	c.pdf.Ln(2)

	if entry.Summary != "" {
		c.pdf.SetFont("Arial", "B", 10)
		c.pdf.MultiCell(pdfPageWidth, 5, entry.Summary, "", "", false)
	}

	c.pdf.SetFont("Arial", "", 8)
	c.pdf.SetTextColor(128, 128, 128)
	c.pdf.CellFormat(pdfPageWidth, 4, fmt.Sprintf("File: %s   Seq: %d   Auth: %s", entry.File, entry.Seq, formatAuth(entry.Auth)), "", 1, "", false, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.Ln(2)

	if len(entry.Query) > 0 {
		c.addQueryTable(entry.Query)
	}

	// Separator
	c.pdf.SetDrawColor(220, 220, 220)
	c.pdf.Line(pdfMarginLeft, c.pdf.GetY(), pdfMarginLeft+pdfPageWidth, c.pdf.GetY())
	c.pdf.SetDrawColor(180, 180, 180)
	c.pdf.Ln(6)
}

func (c *PDFConverter) addQueryTable(query []domain.KeyValue) {
	c.pdf.SetFont("Arial", "B", 8)
	c.pdf.SetFillColor(245, 245, 245)

	colWidths := []float64{70, 90, 30}
	headers := []string{"Query", "Default", "Required"}

	for i, header := range headers {
		c.pdf.CellFormat(colWidths[i], 6, header, "1", 0, "", true, 0, "")
	}
	c.pdf.Ln(-1)

	c.pdf.SetFont("Arial", "", 8)

	for _, q := range query {
		required := "No"
		if q.Enabled {
			required = "Yes"
		}

		c.addTableRow(colWidths, []string{q.Name, q.Value, required}, []string{"L", "L", "C"}, nil)
	}
	c.pdf.Ln(3)
}

func (c *PDFConverter) addTableRow(colWidths []float64, contents []string, aligns []string, linkIDs []int) {
	// Row height follows the cell that wraps the most
	maxLines := 1
	for i, content := range contents {
		lines := c.pdf.SplitLines([]byte(content), colWidths[i])
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}

	rowHeight := float64(maxLines) * pdfLineHeight

	c.checkPageBreak(rowHeight)

	startX := c.pdf.GetX()
	startY := c.pdf.GetY()

	for i, content := range contents {
		width := colWidths[i]

		linkID := 0
		if len(linkIDs) > i {
			linkID = linkIDs[i]
		}

		if linkID > 0 {
			c.pdf.SetTextColor(0, 102, 204)
		}

		c.pdf.SetXY(startX, startY)
		c.pdf.MultiCell(width, pdfLineHeight, content, "0", aligns[i], false)

		if linkID > 0 {
			c.pdf.Link(startX, startY, width, rowHeight, linkID)
			c.pdf.SetTextColor(0, 0, 0)
		}

		c.pdf.Rect(startX, startY, width, rowHeight, "D")
		startX += width
	}

	c.pdf.SetXY(pdfMarginLeft, startY+rowHeight)
}

func (c *PDFConverter) checkPageBreak(height float64) {
	_, pageHeight := c.pdf.GetPageSize()
	_, _, _, bottomMargin := c.pdf.GetMargins()

	if c.pdf.GetY()+height > pageHeight-bottomMargin-10 {
		c.pdf.AddPage()
	}
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) > limit {
		return s[:limit-3] + "..."
	}

	return s
}

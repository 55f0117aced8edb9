package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(rows int) Table {
	t := Table{
		Title: "Section Performance Report",
		Columns: []Column{
			{Header: "القسم", Width: 40, Align: AlignRight},
			{Header: "المعدل", Width: 25, Align: AlignCenter},
		},
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, []string{fmt.Sprintf("3A-%d", i), "82.5%"})
	}
	return t
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter(PDFOptions{}).Render(sampleTable(3))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFExporterPaginates(t *testing.T) {
	exporter := NewPDFExporter(PDFOptions{})
	short, err := exporter.Render(sampleTable(2))
	require.NoError(t, err)
	long, err := exporter.Render(sampleTable(120))
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count(short, []byte("/Type /Page\n")))
	assert.Greater(t, bytes.Count(long, []byte("/Type /Page\n")), 1)
}

func TestPDFExporterRejectsRaggedRows(t *testing.T) {
	table := sampleTable(1)
	table.Rows = append(table.Rows, []string{"only one"})
	_, err := NewPDFExporter(PDFOptions{}).Render(table)
	assert.Error(t, err)
}

func TestPDFExporterMissingFontFallsBack(t *testing.T) {
	exporter := NewPDFExporter(PDFOptions{FontPath: "/nonexistent/font.ttf"})
	assert.False(t, exporter.UTF8())

	out, err := exporter.Render(sampleTable(1))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	assert.False(t, NewPDFExporter(PDFOptions{}).UTF8())
}

func wideTable(widths ...float64) Table {
	t := Table{Title: "Leaderboard"}
	row := make([]string, 0, len(widths))
	for i, w := range widths {
		t.Columns = append(t.Columns, Column{Header: fmt.Sprintf("c%d", i), Width: w, Align: AlignCenter})
		row = append(row, "x")
	}
	t.Rows = [][]string{row}
	return t
}

func TestPDFExporterLayoutKeepsTableOnPage(t *testing.T) {
	exporter := NewPDFExporter(PDFOptions{})

	cases := []struct {
		name        string
		table       Table
		orientation string
		scale       float64
	}{
		{"narrow table is centered on portrait", sampleTable(1), "P", 1},
		{"leaderboard width switches to landscape", wideTable(15, 40, 25, 25, 20, 20, 20, 30, 20), "L", 1},
		{"wider than landscape is scaled", wideTable(200, 200), "L", (297.0 - 2*pageMargin) / 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := exporter.layout(tc.table)
			assert.Equal(t, tc.orientation, l.orientation)
			assert.InDelta(t, tc.scale, l.scale, 0.001)
			assert.GreaterOrEqual(t, l.offset, pageMargin-0.001)
			assert.LessOrEqual(t, l.offset+tc.table.Width()*l.scale, l.pageWidth-pageMargin+0.001)
		})
	}

	narrow := exporter.layout(sampleTable(1))
	assert.InDelta(t, (narrow.pageWidth-sampleTable(1).Width())/2, narrow.offset, 0.001)
}

func TestPDFExporterRendersWideTableLandscape(t *testing.T) {
	out, err := NewPDFExporter(PDFOptions{}).Render(wideTable(15, 40, 25, 25, 20, 20, 20, 30, 20))
	require.NoError(t, err)
	assert.Contains(t, string(out), "/MediaBox [0 0 841.89 595.28]")
}

func TestRenderCertificate(t *testing.T) {
	exporter := NewPDFExporter(PDFOptions{})
	out, err := exporter.RenderCertificate(Certificate{StudentName: "Amina", BadgeName: "Reader", DateAwarded: "2025-05-01"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	_, err = exporter.RenderCertificate(Certificate{StudentName: "Amina"})
	assert.Error(t, err)
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleTable(2))
	require.NoError(t, err)
	text := strings.TrimPrefix(string(out), "\ufeff")
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "القسم,المعدل", lines[0])
	assert.Equal(t, "3A-0,82.5%", lines[1])
}

func TestIsRTL(t *testing.T) {
	assert.True(t, IsRTL("أحمد"))
	assert.False(t, IsRTL("Ahmed 12"))
}

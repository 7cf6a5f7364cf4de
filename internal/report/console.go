package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const bytesPerKb = 1000.0

// printer formats numbers with English thousand separators
var printer = message.NewPrinter(language.English)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	totalStyle  = lipgloss.NewStyle().Bold(true)
)

var columns = []struct {
	title string
	width int
}{
	{"PACKAGE", 28},
	{"VERSION", 12},
	{"DOWNLOADS", 16},
	{"SIZE (kB)", 14},
	{"kWh", 18},
	{"kg CO2", 16},
	{"t CO2", 10},
}

// ConsoleSink prints the document as a table.
type ConsoleSink struct {
	Out io.Writer
}

func (s ConsoleSink) Write(_ context.Context, doc Document) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("npm download footprint %s → %s", doc.Start, doc.End)))
	b.WriteString("\n\n")

	header := make([]string, 0, len(columns))
	for _, c := range columns {
		header = append(header, cell(headerStyle, c.width, c.title))
	}
	b.WriteString(strings.Join(header, " "))
	b.WriteString("\n")

	for _, e := range doc.Packages {
		b.WriteString(formatEntry(e))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(totalStyle.Render(fmt.Sprintf("Total: %s kWh, %s kg CO2 (%s t)",
		FormatFloat(doc.Total.ConsumedKWh, 6),
		FormatFloat(doc.Total.Kg, 6),
		FormatFloat(doc.Total.T, 2))))
	b.WriteString("\n")
	if failed := doc.Failed(); failed > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d of %d packages failed", failed, len(doc.Packages))))
		b.WriteString("\n")
	}

	_, err := io.WriteString(s.Out, b.String())
	return err
}

func formatEntry(e Entry) string {
	plain := lipgloss.NewStyle()
	cells := []string{
		cell(plain, columns[0].width, e.Name),
		cell(plain, columns[1].width, e.Version),
	}
	if e.Error != "" {
		cells = append(cells, errorStyle.Render("error: "+e.Error))
		return strings.Join(cells, " ")
	}

	downloads, size := "-", "-"
	if e.Downloads != nil {
		downloads = FormatNumber(*e.Downloads)
	}
	if e.SizeBytes != nil {
		size = FormatFloat(float64(*e.SizeBytes)/bytesPerKb, 2)
	}
	kwh, kg, t := "-", "-", "-"
	if e.Footprint != nil {
		kwh = FormatFloat(e.Footprint.ConsumedKWh, 6)
		kg = FormatFloat(e.Footprint.Kg, 6)
		t = FormatFloat(e.Footprint.T, 2)
	}
	cells = append(cells,
		cell(plain, columns[2].width, downloads),
		cell(plain, columns[3].width, size),
		cell(plain, columns[4].width, kwh),
		cell(plain, columns[5].width, kg),
		cell(plain, columns[6].width, t),
	)
	return strings.Join(cells, " ")
}

// cell pads text to width, cutting it first so it never wraps
func cell(style lipgloss.Style, width int, text string) string {
	if len(text) >= width {
		text = text[:width-2] + "…"
	}
	return style.Width(width).Render(text)
}

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with thousand separators and at most precision
// decimals, dropping trailing zeros.
func FormatFloat(f float64, precision int) string {
	format := fmt.Sprintf("%%.%df", precision)
	s := printer.Sprintf(format, f)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

package visualization

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/classify"
	"github.com/recargos/internal/report"
	"github.com/recargos/internal/surcharge"
)

type Visualizer struct{}

func New() *Visualizer {
	return &Visualizer{}
}

func categoryColor(c classify.Category) string {
	switch c.Day() {
	case calendar.Holiday:
		if c.Night() {
			return "#C62828"
		}
		return "#F44336"
	case calendar.Sunday:
		if c.Night() {
			return "#E65100"
		}
		return "#FF9800"
	}
	if c.Night() {
		return "#1565C0"
	}
	return "#4CAF50"
}

// GenerateCategorySVG draws one horizontal bar per nonzero category.
func (v *Visualizer) GenerateCategorySVG(title string, hours classify.Hours) string {
	width := 700
	padding := 40
	labelWidth := 230
	rowHeight := 28
	top := 80

	cats := hours.Nonzero()
	height := top + len(cats)*rowHeight + padding
	if len(cats) == 0 {
		height = top + rowHeight + padding
	}

	maxMinutes := 0
	for _, c := range cats {
		if m := hours.Minutes(c); m > maxMinutes {
			maxMinutes = m
		}
	}
	barSpace := float64(width - 2*padding - labelWidth - 60)

	var bars strings.Builder
	for i, c := range cats {
		m := hours.Minutes(c)
		barWidth := float64(m) / float64(maxMinutes) * barSpace
		y := top + i*rowHeight

		bars.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="12" fill="#333">%s</text>
    <rect x="%d" y="%d" width="%.0f" height="%d" fill="%s" rx="4"/>
    <text x="%.0f" y="%d" font-size="12" fill="#333">%.1fh</text>
    `,
			padding, y+16, c.Label(),
			padding+labelWidth, y+2, barWidth, rowHeight-8, categoryColor(c),
			float64(padding+labelWidth)+barWidth+6, y+16, hours.Hours(c)))
	}
	if len(cats) == 0 {
		bars.WriteString(fmt.Sprintf(`<text x="%d" y="%d" text-anchor="middle" font-size="12" fill="#7f8c8d">No hours recorded</text>`,
			width/2, top+16))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">
  <defs>
    <linearGradient id="bgGrad" x1="0%%" y1="0%%" x2="0%%" y2="100%%">
      <stop offset="0%%" style="stop-color:#f5f7fa"/>
      <stop offset="100%%" style="stop-color:#e4e8ec"/>
    </linearGradient>
  </defs>
  <rect width="%d" height="%d" fill="url(#bgGrad)" rx="10"/>
  <text x="%d" y="30" text-anchor="middle" font-size="18" font-weight="bold" fill="#2c3e50">%s</text>
  <text x="%d" y="55" text-anchor="middle" font-size="12" fill="#7f8c8d">Total: %.1fh | With surcharge: %.1fh</text>

  <!-- Bars -->
  %s
</svg>`,
		width, height, width, height,
		width, height,
		width/2, html.EscapeString(title),
		width/2, float64(hours.Total())/60, float64(hours.SurchargedMinutes())/60,
		bars.String(),
	)
}

// GenerateHTMLReport renders the consolidated totals with the category chart
// embedded.
func (v *Visualizer) GenerateHTMLReport(c surcharge.Consolidated, now time.Time) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Recargos - Surcharge Report</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 40px; background: #f5f7fa; }
    .container { max-width: 800px; margin: 0 auto; }
    .card { background: white; border-radius: 10px; padding: 24px; margin-bottom: 20px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); }
    h1 { color: #2c3e50; margin-bottom: 8px; }
    h2 { color: #34495e; font-size: 18px; margin-bottom: 16px; }
    .subtitle { color: #7f8c8d; margin-bottom: 30px; }
    .stat { display: inline-block; text-align: center; padding: 20px; margin: 10px; background: #f8f9fa; border-radius: 8px; min-width: 120px; }
    .stat-value { font-size: 24px; font-weight: bold; color: #3498DB; }
    .stat-label { font-size: 12px; color: #7f8c8d; margin-top: 4px; }
    table { width: 100%%; border-collapse: collapse; margin-top: 16px; }
    th, td { padding: 12px; text-align: left; border-bottom: 1px solid #eee; }
    th { color: #7f8c8d; font-weight: 500; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Surcharge Report</h1>
    <p class="subtitle">%s | Generated on %s</p>

    <div class="card">
      <div class="stat">
        <div class="stat-value">%s</div>
        <div class="stat-label">Gross Total</div>
      </div>
      <div class="stat">
        <div class="stat-value">%s</div>
        <div class="stat-label">Surcharge Total</div>
      </div>
      <div class="stat">
        <div class="stat-value">%.2fh</div>
        <div class="stat-label">Hours With Surcharge</div>
      </div>
    </div>

    <div class="card">
      <h2>Categories</h2>
      %s
    </div>

    <div class="card">
      <h2>Employees</h2>
      <table>
        <tr><th>Employee</th><th>Shifts</th><th>Gross</th><th>Surcharge</th></tr>
        %s
      </table>
    </div>
  </div>
</body>
</html>`,
		html.EscapeString(c.Range.String()),
		now.Format("Monday, January 2, 2006"),
		report.Money(c.GrossTotal),
		report.Money(c.SurchargeTotal),
		float64(c.SurchargedMinutes())/60,
		v.inlineSVG(v.GenerateCategorySVG("Hours by category", c.Hours)),
		v.formatEmployeeRows(c),
	)
}

// inlineSVG drops the XML declaration so the chart can sit inside HTML.
func (v *Visualizer) inlineSVG(svg string) string {
	if i := strings.Index(svg, "<svg"); i >= 0 {
		return svg[i:]
	}
	return svg
}

func (v *Visualizer) formatEmployeeRows(c surcharge.Consolidated) string {
	var rows []string
	for _, sum := range c.Employees {
		rows = append(rows, fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(sum.Employee), len(sum.Shifts), report.Money(sum.GrossTotal), report.Money(sum.SurchargeTotal)))
	}
	return strings.Join(rows, "\n")
}

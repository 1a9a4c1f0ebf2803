package view

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"bmi-tracker/internal/bmi"
	"bmi-tracker/internal/domain"
)

const emptyTable = "no records yet"

// RenderHome draws the latest BMI badge. A zero value renders as "0".
func RenderHome(latest bmi.Value) string {
	value := "0"
	if !latest.IsZero() {
		value = latest.String()
	}
	return badgeStyle.Render(value + "\n" + MutedStyle.Render("BMI"))
}

// RenderTable draws the history table, newest first. The row at selected is
// highlighted; pass -1 for none.
func RenderTable(recs []domain.Record, selected int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("ID", "Date", "Weight", "Height", "BMI")

	if len(recs) == 0 {
		t.Row("", emptyTable, "", "", "")
	}
	for _, r := range recs {
		t.Row(
			strconv.FormatInt(r.RecordID, 10),
			r.RecordDate,
			formatMeasure(r.Weight),
			formatMeasure(r.Height),
			r.BMI.String(),
		)
	}

	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row == selected && len(recs) > 0:
			return selectedCellStyle
		default:
			return cellStyle
		}
	})

	return t.String()
}

func formatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderChart plots points as a terminal line chart height rows tall. Each
// point takes a fixed-width column; the y-axis spans the observed range.
func RenderChart(points []Point, height int) string {
	if len(points) == 0 {
		return MutedStyle.Render("record a measurement to see the trend")
	}
	if height < 2 {
		height = 2
	}

	const colWidth = 3

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		v := p.BMI.Float64()
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	rowOf := func(v float64) int {
		if hi == lo {
			return height / 2
		}
		// Row 0 is the top line.
		return height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(height-1)))
	}

	width := len(points) * colWidth
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	prevRow := -1
	for i, p := range points {
		row := rowOf(p.BMI.Float64())
		col := i*colWidth + colWidth/2

		// Connect to the previous sample with a vertical run in the gap.
		if prevRow >= 0 && prevRow != row {
			step := 1
			if row < prevRow {
				step = -1
			}
			for r := prevRow + step; r != row; r += step {
				grid[r][col-colWidth/2-1] = '│'
			}
		}
		if prevRow >= 0 {
			for c := col - colWidth + 1; c < col; c++ {
				if grid[row][c] == ' ' {
					grid[row][c] = '─'
				}
			}
		}
		grid[row][col] = '●'
		prevRow = row
	}

	labelWidth := len(fmt.Sprintf("%.2f", hi))
	var b strings.Builder
	for i, line := range grid {
		label := strings.Repeat(" ", labelWidth)
		switch {
		case i == 0:
			label = fmt.Sprintf("%*.2f", labelWidth, hi)
		case i == height-1:
			label = fmt.Sprintf("%*.2f", labelWidth, lo)
		}
		b.WriteString(MutedStyle.Render(label + " ┤"))
		b.WriteString(chartLineStyle.Render(string(line)))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", labelWidth+1) + "└" + strings.Repeat("─", width) + "\n")

	first, last := points[0].Date, points[len(points)-1].Date
	axis := strings.Repeat(" ", labelWidth+2) + first
	if len(points) > 1 {
		gap := max(labelWidth+2+width-len(axis)-len(last), 1)
		axis += strings.Repeat(" ", gap) + last
	}
	b.WriteString(MutedStyle.Render(axis))

	return b.String()
}

// Package chart renders the capacity-sweep results as an ASCII chart,
// one column per staffing level, with the SLA target drawn as a
// horizontal reference line.
package chart

import (
	"fmt"
	"math"
	"strings"
)

const (
	defaultHeight = 20
	labelWidth    = 7 // y-axis label plus the "|" gutter
)

// Point is one sweep observation: staffing level and its mean total time.
type Point struct {
	Drivers   int
	MeanTotal float64
}

// Generator generates ASCII charts.
type Generator struct {
	height int
}

// NewGenerator creates a new chart generator.
func NewGenerator() *Generator {
	return &Generator{height: defaultHeight}
}

// MeanTotalChart plots mean total delivery time against the number of
// drivers. slaTarget is drawn as a dashed horizontal line when it falls
// inside the value range.
func (g *Generator) MeanTotalChart(points []Point, slaTarget float64) string {
	if len(points) == 0 {
		return "No data to display"
	}

	// Value range covers every point and the SLA line.
	minVal, maxVal := slaTarget, slaTarget
	for _, p := range points {
		minVal = math.Min(minVal, p.MeanTotal)
		maxVal = math.Max(maxVal, p.MeanTotal)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	width := labelWidth + len(points)*4

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("Mean Total Delivery Time vs Drivers\n")
	sb.WriteString(strings.Repeat("=", width))
	sb.WriteString("\n\n")

	// row ry of a value: top row is maxVal, bottom row is minVal
	rowOf := func(v float64) int {
		frac := (v - minVal) / (maxVal - minVal)
		return int(math.Round(frac * float64(g.height-1)))
	}
	slaRow := rowOf(slaTarget)

	for row := g.height - 1; row >= 0; row-- {
		rowVal := minVal + (maxVal-minVal)*float64(row)/float64(g.height-1)
		sb.WriteString(fmt.Sprintf("%5.0f |", rowVal))

		for _, p := range points {
			cell := "   "
			if row == slaRow {
				cell = "---"
			}
			if rowOf(p.MeanTotal) == row {
				cell = " * "
			}
			sb.WriteString(cell)
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	// X-axis
	sb.WriteString("      +")
	sb.WriteString(strings.Repeat("-", len(points)*4))
	sb.WriteString("\n")
	sb.WriteString("       ")
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("%-4d", p.Drivers))
	}
	sb.WriteString("\n")

	// Legend
	sb.WriteString("\n")
	sb.WriteString("Legend:\n")
	sb.WriteString("    *  - mean total time at this staffing level\n")
	sb.WriteString(fmt.Sprintf("    -- - SLA target (%.0f min)\n", slaTarget))
	sb.WriteString("\n")

	return sb.String()
}

package tui

import (
	"errors"
	"math"
	"strconv"

	"github.com/guptarohit/asciigraph"

	"github.com/aretw0/algoviz/pkg/domain"
)

// ErrNotNumeric is returned by FormatChart when a frame holds no numeric items.
var ErrNotNumeric = errors.New("frame has no numeric items")

// FormatChart plots the numeric items of a frame as a line chart, in item order.
// Non-numeric items (null markers, blanks, NaN, Inf) are skipped.
func FormatChart(frame domain.Frame, width int) (string, error) {
	data := make([]float64, 0, len(frame.Items))
	for _, item := range frame.Items {
		v, err := strconv.ParseFloat(item, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		data = append(data, v)
	}
	if len(data) == 0 {
		return "", ErrNotNumeric
	}
	if width <= 0 {
		width = 80
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.Caption(frame.Caption),
	), nil
}

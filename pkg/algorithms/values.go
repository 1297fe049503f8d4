package algorithms

import (
	"math"
	"strconv"
	"strings"
)

// splitValues breaks an insert field into its values. Commas and spaces separate.
func splitValues(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

// number parses s as a finite number. "NaN" and "Inf" are words.
func number(s string) (float64, bool) {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

// Compare orders numbers numerically and everything else lexically.
// Numbers sort before words.
func Compare(a, b string) int {
	x, numA := number(a)
	y, numB := number(b)
	switch {
	case numA && numB:
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case numA:
		return -1
	case numB:
		return 1
	}
	return strings.Compare(a, b)
}

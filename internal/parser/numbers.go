package parser

import (
	"strconv"
	"strings"
)

// parseAmount normalizes a money token (thousands commas stripped) and parses
// it as a float. A token that does not convert yields nil for that field only,
// never an error.
func parseAmount(s string) *float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

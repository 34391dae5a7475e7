package store

import (
	"math"
	"strconv"
	"strings"
)

// ParseDecimal разбирает числовое поле формы. Мусор, пустая строка и
// отрицательные значения молча превращаются в 0 — запрос из-за кривого
// числа не падает. Это осознанное поведение, на него завязаны вызывающие.
func ParseDecimal(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseActive трактует сигнал чекбокса из формы.
func ParseActive(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1":
		return true
	}
	return false
}

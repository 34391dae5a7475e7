package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog/internal/store"
)

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1250.50", 1250.5},
		{"  3.5 ", 3.5},
		{"1250,50", 1250.5}, // запятая как десятичный разделитель
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
		{"-5", 0}, // отрицательные значения поглощаются так же, как мусор
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, store.ParseDecimal(tc.in))
		})
	}
}

func TestParseActive(t *testing.T) {
	assert.True(t, store.ParseActive("on"))
	assert.True(t, store.ParseActive("true"))
	assert.True(t, store.ParseActive("1"))
	assert.True(t, store.ParseActive(" On "))
	assert.False(t, store.ParseActive(""))
	assert.False(t, store.ParseActive("off"))
	assert.False(t, store.ParseActive("0"))
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateWorkOrderNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := GenerateWorkOrderNumber(i)
		assert.True(t, strings.HasPrefix(n, "RWO-"))
		assert.False(t, seen[n], "collision: %s", n)
		seen[n] = true
	}
}

func TestGenerateInvoiceNumber(t *testing.T) {
	n := GenerateInvoiceNumber()
	assert.True(t, strings.HasPrefix(n, "INV-"))
	assert.NotEqual(t, n, GenerateInvoiceNumber())
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 42, ParseInt("42", 0))
	assert.Equal(t, 42, ParseInt(" 42 ", 0))
	assert.Equal(t, 7, ParseInt("nope", 7))
	assert.Equal(t, 7, ParseInt("", 7))
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 12.5, ParseFloat("12.5", 0))
	assert.Equal(t, 1.0, ParseFloat("oops", 1.0))
}

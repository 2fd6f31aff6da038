package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateUUID generates a UUID v4 string.
func GenerateUUID() string {
	return uuid.New().String()
}

// RandomHex generates a random hex string of n bytes.
func RandomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// GenerateInvoiceNumber generates a unique invoice number.
func GenerateInvoiceNumber() string {
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), strings.ToUpper(RandomHex(3)))
}

// GenerateWorkOrderNumber generates a globally unique work-order number for
// an import row. The row index keeps numbers distinct even when many rows of
// one batch land in the same millisecond; the random suffix covers batches
// started in the same millisecond.
func GenerateWorkOrderNumber(rowIndex int) string {
	return fmt.Sprintf("RWO-%d-%d-%s", time.Now().UnixMilli(), rowIndex, strings.ToUpper(RandomHex(3)))
}

// ParseInt safely converts string to int with a default value.
func ParseInt(s string, defaultVal int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultVal
	}
	return v
}

// ParseFloat safely converts string to float64 with a default value.
func ParseFloat(s string, defaultVal float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return defaultVal
	}
	return v
}

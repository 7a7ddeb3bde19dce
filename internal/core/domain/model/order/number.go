package order

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const numberSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewOrderNumber generates a human-readable order number of the form
// ORD-<base36 timestamp>-<random suffix>, uppercased.
//
// Order numbers are intended for display and kitchen tickets. They are
// not guaranteed to be globally unique; the order ID remains the only
// identity of the aggregate.
func NewOrderNumber(t time.Time) string {
	timestamp := strconv.FormatInt(t.UnixMilli(), 36)

	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = numberSuffixAlphabet[rand.IntN(len(numberSuffixAlphabet))]
	}

	return strings.ToUpper(fmt.Sprintf("ORD-%s-%s", timestamp, suffix))
}

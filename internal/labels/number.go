package labels

import (
	"fmt"
	"regexp"
	"strconv"
)

// barcodeIDPattern matches a well-formed barcode id: a lowercase m followed
// by one or more digits. Anything else is treated as "no start code".
var barcodeIDPattern = regexp.MustCompile(`^m\d+$`)

// ParseStartCode extracts the numeric suffix of a barcode id. Malformed or
// empty codes yield 0, so numbering falls back to the beginning of the
// space instead of failing the batch.
func ParseStartCode(code string) int64 {
	if !barcodeIDPattern.MatchString(code) {
		return 0
	}
	n, err := strconv.ParseInt(code[1:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatBarcodeID renders a sequence number as a barcode id, zero-padded to
// ten digits.
func FormatBarcodeID(n int64) string {
	return fmt.Sprintf("m%010d", n)
}

// NextStartCode returns the start code that continues numbering after the
// given barcode id. An empty or malformed id returns "", meaning there is
// nothing to continue from and numbering starts at zero.
func NextStartCode(latest string) string {
	if !barcodeIDPattern.MatchString(latest) {
		return ""
	}
	return FormatBarcodeID(ParseStartCode(latest) + 1)
}

package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Receipt upload limits
const (
	MaxReceiptSizeMB    = 5
	MaxReceiptSizeBytes = MaxReceiptSizeMB * 1024 * 1024
)

// AllowedReceiptTypes are the accepted receipt image MIME types
var AllowedReceiptTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/webp",
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks basic email format
func Email(email string) bool {
	return emailRegex.MatchString(email)
}

// Required checks a free-text field is non-empty after trimming
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// Amount parses a currency amount and checks it is a finite number > 0
func Amount(value string) (float64, bool) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	return amount, amount > 0
}

// ReceiptType checks the receipt MIME type is an accepted image type
func ReceiptType(contentType string) bool {
	for _, t := range AllowedReceiptTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// ReceiptSize checks the receipt is under the upload ceiling
func ReceiptSize(sizeBytes int64) bool {
	return sizeBytes <= MaxReceiptSizeBytes
}

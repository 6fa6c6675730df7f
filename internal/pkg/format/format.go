package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency formats a USD amount for display, e.g. 25.5 -> "$25.50"
func Currency(amount float64) string {
	if amount < 0 {
		return "-" + Currency(-amount)
	}
	return "$" + groupThousands(fmt.Sprintf("%.2f", amount))
}

// groupThousands inserts comma separators into the integer part
func groupThousands(s string) string {
	intPart, fracPart, _ := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return intPart + "." + fracPart
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + "." + fracPart
}

// FileSize formats a byte count for display, e.g. 2097152 -> "2 MB"
func FileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	// Round to two decimals, then drop trailing zeros: "2.50" -> "2.5"
	s := strings.TrimRight(fmt.Sprintf("%.2f", value), "0")
	s = strings.TrimSuffix(s, ".")
	return s + " " + units[i]
}

// Truncate shortens text to maxLength runes with an ellipsis
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}

package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMinor renders an integer minor-unit amount as a major-unit
// string with thousand separators, e.g. 1234550 -> "12,345.50".
func FormatMinor(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	major := amount / 100
	cents := amount % 100
	return fmt.Sprintf("%s%s.%02d", sign, formatThousand(major), cents)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}

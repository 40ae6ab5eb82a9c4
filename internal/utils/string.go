// Package utils implements small internal formatting helpers used by the
// CLI.
package utils

import "fmt"

// FormatWithCommas formats an integer with comma separators, used by
// internal/cli to print term handles readably.
func FormatWithCommas(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	str := fmt.Sprintf("%d", n)
	result := ""
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(char)
	}
	return result
}

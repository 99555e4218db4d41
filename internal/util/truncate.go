package util

import "fmt"

// DefaultLogMaxLen caps upstream bodies echoed into logs.
const DefaultLogMaxLen = 512

// TruncateLog shortens s to maxLen bytes and notes the original size.
func TruncateLog(s string, maxLen int) string {
	if maxLen < 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + fmt.Sprintf("... [truncated, %d bytes total]", len(s))
}

// TruncateBytes is TruncateLog with DefaultLogMaxLen for raw bodies.
func TruncateBytes(b []byte) string {
	return TruncateLog(string(b), DefaultLogMaxLen)
}

// MaskSecret keeps only the last four characters of a credential.
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return "..." + s[len(s)-4:]
}

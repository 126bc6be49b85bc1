package helpers

// Truncate returns at most n runes of s, used for short display titles
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

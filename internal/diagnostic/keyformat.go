package diagnostic

import (
	"strings"
	"unicode/utf8"
)

const (
	// KeyPrefix is the prefix Google API keys are issued with.
	KeyPrefix = "AIza"
	// MinKeyLength counts characters, not bytes.
	MinKeyLength = 20
)

// CheckKeyFormat is a local heuristic; it does not prove the key works.
func CheckKeyFormat(key string) ProbeResult {
	if utf8.RuneCountInString(key) < MinKeyLength {
		return failed(ProbeKeyFormat, StatusInvalidKey, "⚠️  WARNING: API key looks too short or invalid")
	}
	if strings.HasPrefix(key, KeyPrefix) {
		return passed(ProbeKeyFormat, "✅ API key format appears valid")
	}
	return failed(ProbeKeyFormat, StatusUnusualFormat, "⚠️  WARNING: API key format looks unusual")
}

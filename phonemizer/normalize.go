package phonemizer

import (
	"regexp"
	"strings"
)

// Patterns and character sets used to normalize raw espeak phoneme output.
// Initialized once at package scope and never mutated.
var (
	// langSwitchPattern matches inline language-switching flags espeak
	// embeds when the input mixes languages, e.g. "(en)".
	langSwitchPattern = regexp.MustCompile(`\([^)]*\)`)

	// stressPattern matches IPA primary/secondary stress diacritics.
	stressPattern = regexp.MustCompile(`[ˈˌ]`)
)

// DefaultClauseBreakers are the punctuation characters espeak treats as
// clause terminators.
const DefaultClauseBreakers = ",;:.!?"

// StripStress removes primary/secondary stress markers from an IPA string.
func StripStress(s string) string {
	return stressPattern.ReplaceAllString(s, "")
}

// StripLanguageFlags removes inline language-switching flags, e.g. "(en)",
// from a phoneme string. When keep is true the input is returned unchanged.
func StripLanguageFlags(s string, keep bool) string {
	if keep {
		return s
	}
	return langSwitchPattern.ReplaceAllString(s, "")
}

// IsClauseBreaker reports whether r is a member of the configured
// clause-breaker set.
func IsClauseBreaker(r rune, breakers string) bool {
	return strings.ContainsRune(breakers, r)
}

// CollectClauseBreakers scans text in order and returns every clause-breaking
// character it contains. The result zips positionally with the clause events
// produced by a synthesis call over the same text.
func CollectClauseBreakers(text, breakers string) []rune {
	var found []rune
	for _, r := range text {
		if IsClauseBreaker(r, breakers) {
			found = append(found, r)
		}
	}
	return found
}

// collapseSeparator reduces runs of the phoneme separator to a single
// occurrence. espeak emits the separator between every phoneme pair, which
// doubles up at clause joins.
func collapseSeparator(s, sep string) string {
	if sep == "" {
		return s
	}
	pattern := regexp.MustCompile("[" + regexp.QuoteMeta(sep) + "]+")
	return pattern.ReplaceAllString(s, sep)
}

package phonemizer

// Options control the formatting of one Phonemize call. The zero value is
// not useful; start from DefaultOptions.
type Options struct {
	// Voice overrides the instance's default voice for this call.
	Voice string

	// KeepClauseBreakers retains clause-breaking punctuation in the output.
	KeepClauseBreakers bool

	// PhonemeSeparator joins phonemes within a word. Empty means the
	// engine's native spacing. Must be a single character when set.
	PhonemeSeparator string

	// WordSeparator joins words within and across clauses.
	WordSeparator string

	// PunctuationSeparator follows each retained clause breaker.
	PunctuationSeparator string

	// KeepLanguageFlags passes through inline language-switching flags.
	KeepLanguageFlags bool

	// NoStress removes primary/secondary stress markers.
	NoStress bool

	// SSML interprets the input text as SSML.
	SSML bool
}

// DefaultOptions returns the standard formatting options: words joined by a
// single space, native phoneme spacing, punctuation dropped.
func DefaultOptions() Options {
	return Options{
		WordSeparator:        " ",
		PunctuationSeparator: "",
	}
}

// separatorRune returns the phoneme separator as a rune, or zero when unset.
func (o Options) separatorRune() rune {
	for _, r := range o.PhonemeSeparator {
		return r
	}
	return 0
}

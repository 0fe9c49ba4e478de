package phonemizer

import "strings"

// Assemble folds an ordered buffer of clause events and the caller's
// formatting options into the final phoneme string.
//
// For each clause, in order: language flags are stripped (unless kept),
// stress markers are stripped (when requested), words are split on the
// engine's native boundaries and rejoined with the word separator, and the
// clause's terminator is re-appended followed by the punctuation separator
// when breakers are kept. Clauses are joined with the word separator, with
// no trailing separator after the final clause.
//
// An empty buffer yields an empty string. A clause with empty phoneme text
// still participates in joining: it contributes no text, but its terminator,
// if kept, is preserved.
func Assemble(events []ClauseEvent, opts Options) string {
	if len(events) == 0 {
		return ""
	}

	clauses := make([]string, 0, len(events))
	for _, ev := range events {
		text := StripLanguageFlags(ev.Phonemes, opts.KeepLanguageFlags)
		if opts.NoStress {
			text = StripStress(text)
		}

		// espeak delimits words with plain spaces regardless of the
		// configured phoneme separator.
		text = strings.Join(strings.Fields(text), opts.WordSeparator)

		if opts.KeepClauseBreakers && ev.HasTerminator() {
			text += string(ev.Terminator) + opts.PunctuationSeparator
		}

		clauses = append(clauses, text)
	}

	out := strings.Join(clauses, opts.WordSeparator)

	if opts.PhonemeSeparator != "" {
		out = collapseSeparator(out, opts.PhonemeSeparator)
	}

	return out
}

// attachTerminators zips clause-breaking characters found in the input text
// onto the clause events, by ordinal. espeak segments clauses on the same
// characters it strips from phoneme output, so position i in the breaker
// scan corresponds to clause i.
func attachTerminators(events []ClauseEvent, breakers []rune) {
	for i := range events {
		if i < len(breakers) {
			events[i].Terminator = breakers[i]
		}
	}
}

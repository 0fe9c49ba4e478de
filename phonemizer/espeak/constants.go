// Package espeak provides the native libespeak-ng engine handle used by the
// phonemizer facade. Audio output is configured to the synchronous retrieval
// mode and discarded; only the phoneme trace is consumed.
package espeak

// Numeric flags from espeak-ng's speak_lib.h. Mirrored here so flag math is
// testable without the native library.
const (
	// eeOK is the espeak_ERROR success value.
	eeOK = 0

	// phonemesIPA selects IPA notation in the phoneme trace.
	phonemesIPA = 0x02

	// charsAuto lets the engine detect the input text encoding.
	charsAuto = 0

	// flagSSML enables SSML interpretation of the input text.
	flagSSML = 0x10

	// flagPhonemes enables phoneme trace output during synthesis.
	flagPhonemes = 0x100
)

// phonemeTraceFlags builds the espeak_SetPhonemeTrace mode word. A non-zero
// separator is inserted by the engine between phonemes; espeak encodes it in
// the high bits of the mode.
func phonemeTraceFlags(separator rune) int {
	flags := phonemesIPA
	if separator > 0 {
		flags |= int(separator) << 8
	}
	return flags
}

// synthFlags builds the espeak_Synth flags word.
func synthFlags(ssml bool) int {
	flags := charsAuto | flagPhonemes
	if ssml {
		flags |= flagSSML
	}
	return flags
}

package phonemizer

import "testing"

func TestAssembleEmptyBuffer(t *testing.T) {
	if got := Assemble(nil, DefaultOptions()); got != "" {
		t.Errorf("expected empty output for empty buffer, got %q", got)
	}
	if got := Assemble([]ClauseEvent{}, DefaultOptions()); got != "" {
		t.Errorf("expected empty output for zero-length buffer, got %q", got)
	}
}

func TestAssembleSingleClause(t *testing.T) {
	events := []ClauseEvent{
		{Index: 0, Phonemes: "ðɪs ɪz ɐ tˈɛst", Terminator: '.'},
	}

	got := Assemble(events, DefaultOptions())
	if got != "ðɪs ɪz ɐ tˈɛst" {
		t.Errorf("expected period dropped and words space-joined, got %q", got)
	}
}

func TestAssembleSeparators(t *testing.T) {
	events := []ClauseEvent{
		{Index: 0, Phonemes: "t_ˈɛ_s_t w_ˈʌ_n", Terminator: '.'},
	}

	opts := DefaultOptions()
	opts.PhonemeSeparator = "_"
	opts.WordSeparator = "#"

	got := Assemble(events, opts)
	if got != "t_ˈɛ_s_t#w_ˈʌ_n" {
		t.Errorf("expected phonemes joined by _ and words by #, got %q", got)
	}
}

func TestAssembleKeepClauseBreakers(t *testing.T) {
	// "test: 1, 2, 3!" as segmented by the engine
	events := []ClauseEvent{
		{Index: 0, Phonemes: "tˈɛst", Terminator: ':'},
		{Index: 1, Phonemes: "wˈʌn", Terminator: ','},
		{Index: 2, Phonemes: "tˈuː", Terminator: ','},
		{Index: 3, Phonemes: "θɹˈiː", Terminator: '!'},
	}

	tests := []struct {
		name     string
		mutate   func(*Options)
		expected string
	}{
		{
			name:     "breakers kept",
			mutate:   func(o *Options) { o.KeepClauseBreakers = true },
			expected: "tˈɛst: wˈʌn, tˈuː, θɹˈiː!",
		},
		{
			name:     "breakers dropped",
			mutate:   func(o *Options) {},
			expected: "tˈɛst wˈʌn tˈuː θɹˈiː",
		},
		{
			name: "breakers kept without stress",
			mutate: func(o *Options) {
				o.KeepClauseBreakers = true
				o.NoStress = true
			},
			expected: "tɛst: wʌn, tuː, θɹiː!",
		},
		{
			name: "punctuation separator follows breaker",
			mutate: func(o *Options) {
				o.KeepClauseBreakers = true
				o.PunctuationSeparator = "|"
			},
			expected: "tˈɛst:| wˈʌn,| tˈuː,| θɹˈiː!|",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)

			if got := Assemble(events, opts); got != tt.expected {
				t.Errorf("Assemble() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAssembleLanguageFlags(t *testing.T) {
	events := []ClauseEvent{
		{Index: 0, Phonemes: "(en)lˈaɪbɹəɹi(fr)"},
	}

	opts := DefaultOptions()
	if got := Assemble(events, opts); got != "lˈaɪbɹəɹi" {
		t.Errorf("expected language flags removed, got %q", got)
	}

	opts.KeepLanguageFlags = true
	if got := Assemble(events, opts); got != "(en)lˈaɪbɹəɹi(fr)" {
		t.Errorf("expected language flags kept, got %q", got)
	}
}

func TestAssembleEmptyClauseKeepsTerminator(t *testing.T) {
	events := []ClauseEvent{
		{Index: 0, Phonemes: "tˈɛst", Terminator: '.'},
		{Index: 1, Phonemes: "", Terminator: '!'},
	}

	opts := DefaultOptions()
	opts.KeepClauseBreakers = true

	got := Assemble(events, opts)
	if got != "tˈɛst. !" {
		t.Errorf("expected degraded clause to contribute its terminator, got %q", got)
	}
}

func TestAssembleNoTrailingSeparator(t *testing.T) {
	events := []ClauseEvent{
		{Index: 0, Phonemes: "wˈʌn", Terminator: ','},
		{Index: 1, Phonemes: "tˈuː"},
	}

	opts := DefaultOptions()
	opts.WordSeparator = "#"
	opts.PhonemeSeparator = "_"

	got := Assemble(events, opts)
	if got != "wˈʌn#tˈuː" {
		t.Errorf("expected no trailing separator, got %q", got)
	}
}

func TestAssembleCollapsesSeparatorRuns(t *testing.T) {
	// The engine emits a separator after the last phoneme of a clause,
	// which doubles with the one opening the next clause.
	events := []ClauseEvent{
		{Index: 0, Phonemes: "t_ˈɛ_s_t_"},
		{Index: 1, Phonemes: "_w_ˈʌ_n"},
	}

	opts := DefaultOptions()
	opts.PhonemeSeparator = "_"
	opts.WordSeparator = "_"

	got := Assemble(events, opts)
	if got != "t_ˈɛ_s_t_w_ˈʌ_n" {
		t.Errorf("expected separator runs collapsed, got %q", got)
	}
}

func TestAttachTerminators(t *testing.T) {
	events := []ClauseEvent{{Index: 0}, {Index: 1}, {Index: 2}}
	attachTerminators(events, []rune{',', '.'})

	if events[0].Terminator != ',' || events[1].Terminator != '.' {
		t.Errorf("terminators not zipped in order: %+v", events)
	}
	if events[2].HasTerminator() {
		t.Errorf("clause without matching breaker should have no terminator")
	}
}

package phonemizer

import "testing"

func TestStripStress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "primary stress",
			input:    "tˈɛst",
			expected: "tɛst",
		},
		{
			name:     "secondary stress",
			input:    "ˌʌndɚstˈænd",
			expected: "ʌndɚstænd",
		},
		{
			name:     "no stress markers",
			input:    "tɛst",
			expected: "tɛst",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only stress markers",
			input:    "ˈˌˈ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripStress(tt.input); got != tt.expected {
				t.Errorf("StripStress(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripLanguageFlags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		keep     bool
		expected string
	}{
		{
			name:     "single flag removed",
			input:    "(en)lˈaɪbɹəɹi",
			keep:     false,
			expected: "lˈaɪbɹəɹi",
		},
		{
			name:     "flags on both sides removed",
			input:    "(en)lˈaɪbɹəɹi(fr)",
			keep:     false,
			expected: "lˈaɪbɹəɹi",
		},
		{
			name:     "flags kept verbatim",
			input:    "(en)lˈaɪbɹəɹi(fr)",
			keep:     true,
			expected: "(en)lˈaɪbɹəɹi(fr)",
		},
		{
			name:     "no flags present",
			input:    "tˈɛst",
			keep:     false,
			expected: "tˈɛst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripLanguageFlags(tt.input, tt.keep); got != tt.expected {
				t.Errorf("StripLanguageFlags(%q, %v) = %q, want %q", tt.input, tt.keep, got, tt.expected)
			}
		})
	}
}

func TestIsClauseBreaker(t *testing.T) {
	for _, r := range DefaultClauseBreakers {
		if !IsClauseBreaker(r, DefaultClauseBreakers) {
			t.Errorf("expected %q to be a clause breaker", r)
		}
	}

	for _, r := range "abc '-" {
		if IsClauseBreaker(r, DefaultClauseBreakers) {
			t.Errorf("expected %q not to be a clause breaker", r)
		}
	}
}

func TestCollectClauseBreakers(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "mixed breakers in order",
			text:     "test: 1, 2, 3!",
			expected: ":,,!",
		},
		{
			name:     "no breakers",
			text:     "just words here",
			expected: "",
		},
		{
			name:     "trailing period",
			text:     "This is a test.",
			expected: ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(CollectClauseBreakers(tt.text, DefaultClauseBreakers))
			if got != tt.expected {
				t.Errorf("CollectClauseBreakers(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestCollapseSeparator(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sep      string
		expected string
	}{
		{
			name:     "doubled separator collapses",
			input:    "t_ˈɛ__s_t",
			sep:      "_",
			expected: "t_ˈɛ_s_t",
		},
		{
			name:     "empty separator is a no-op",
			input:    "t__t",
			sep:      "",
			expected: "t__t",
		},
		{
			name:     "regex metacharacter separator",
			input:    "a..b",
			sep:      ".",
			expected: "a.b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collapseSeparator(tt.input, tt.sep); got != tt.expected {
				t.Errorf("collapseSeparator(%q, %q) = %q, want %q", tt.input, tt.sep, got, tt.expected)
			}
		})
	}
}

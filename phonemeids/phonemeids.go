// Package phonemeids maps phoneme strings to integer ids, the input format
// expected by neural TTS models trained on espeak phonemes.
//
// Usage is two-phase: feed every phoneme line through Learn, then call
// Assign to give ids to the collected phonemes in sorted order, then convert
// lines with MapLine. Ids may also be preloaded from an "ID PHONEME" text
// file, in which case learned phonemes extend the existing table.
package phonemeids

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// stressMarkers are the IPA primary/secondary stress glyphs, in sorted order.
var stressMarkers = []string{"ˈ", "ˌ"}

// punctuationMap folds clause punctuation into "," and "." when simple
// punctuation is enabled.
var punctuationMap = map[string]string{
	";": ",",
	":": ",",
	"?": ".",
	"!": ".",
}

// Config controls phoneme splitting and id assignment.
type Config struct {
	// PhonemeSeparator splits phonemes within a word. Empty splits into
	// individual runes.
	PhonemeSeparator string

	// WordSeparator splits words in a phoneme line.
	WordSeparator string

	// IDSeparator joins ids within a word in the output.
	IDSeparator string

	// Pad, when set, is assigned id 0 (phoneme used for padding).
	Pad string

	// BOS, when set, is prepended to every mapped line.
	BOS string

	// EOS, when set, is appended to every mapped line.
	EOS string

	// AddBlank treats the word separator itself as a phoneme and inserts
	// its id between words.
	AddBlank bool

	// SeparateStress pulls leading stress markers out of a phoneme and
	// maps them as standalone phonemes.
	SeparateStress bool

	// SimplePunctuation folds all punctuation phonemes into "," and ".".
	SimplePunctuation bool
}

// DefaultConfig returns the standard splitting configuration.
func DefaultConfig() Config {
	return Config{
		WordSeparator: " ",
		IDSeparator:   " ",
	}
}

// Mapper assigns and applies phoneme ids.
type Mapper struct {
	cfg Config

	ids map[string]int

	// learned collects phonemes seen by Learn that have no id yet.
	learned map[string]struct{}

	// reserved is set once the special symbols have claimed their ids.
	reserved bool
}

// NewMapper creates a Mapper. Reserved symbols (pad, bos, eos, blank, stress)
// claim the lowest free ids, in that order, before any learned phoneme but
// after any table preloaded with Load.
func NewMapper(cfg Config) *Mapper {
	if cfg.WordSeparator == "" {
		cfg.WordSeparator = " "
	}
	if cfg.IDSeparator == "" {
		cfg.IDSeparator = " "
	}

	return &Mapper{
		cfg:     cfg,
		ids:     make(map[string]int),
		learned: make(map[string]struct{}),
	}
}

// reserve claims ids for the configured special symbols. Deferred until first
// use so a table preloaded with Load keeps its assignments; symbols the table
// already names are left alone.
func (m *Mapper) reserve() {
	if m.reserved {
		return
	}
	m.reserved = true

	if m.cfg.Pad != "" {
		m.claim(m.cfg.Pad)
	}
	if m.cfg.BOS != "" {
		m.claim(m.cfg.BOS)
	}
	if m.cfg.EOS != "" {
		m.claim(m.cfg.EOS)
	}
	if m.cfg.AddBlank {
		m.claim(m.cfg.WordSeparator)
	}
	if m.cfg.SeparateStress {
		for _, stress := range stressMarkers {
			m.claim(stress)
		}
	}
	if m.cfg.SimplePunctuation {
		m.learned[","] = struct{}{}
		m.learned["."] = struct{}{}
	}
}

func (m *Mapper) claim(phoneme string) {
	if _, ok := m.ids[phoneme]; !ok {
		m.ids[phoneme] = len(m.ids)
	}
}

// Load reads an "ID PHONEME" table, one entry per line. Blank lines and
// lines starting with "#" are skipped. Loaded entries take precedence over
// reserved symbols, so Load must run before any other Mapper call.
func (m *Mapper) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, " ") {
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid phoneme id %q: %w", parts[0], err)
		}
		m.ids[parts[1]] = id
	}
	return scanner.Err()
}

// Save writes the id table in "ID PHONEME" format, ordered by id.
func (m *Mapper) Save(w io.Writer) error {
	m.reserve()

	type entry struct {
		phoneme string
		id      int
	}
	entries := make([]entry, 0, len(m.ids))
	for phoneme, id := range m.ids {
		entries = append(entries, entry{phoneme, id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.id, e.phoneme); err != nil {
			return err
		}
	}
	return nil
}

// Learn collects the phonemes in one line so Assign can give them ids.
func (m *Mapper) Learn(phonemes string) {
	m.reserve()

	for _, word := range m.splitWords(phonemes) {
		for _, phoneme := range word {
			phoneme = m.normalize(phoneme)
			if phoneme == "" {
				continue
			}
			if _, ok := m.ids[phoneme]; !ok {
				m.learned[phoneme] = struct{}{}
			}
		}
	}
}

// Assign gives ids to all learned phonemes in sorted order. Idempotent.
func (m *Mapper) Assign() {
	m.reserve()

	pending := make([]string, 0, len(m.learned))
	for phoneme := range m.learned {
		if _, ok := m.ids[phoneme]; !ok {
			pending = append(pending, phoneme)
		}
	}
	sort.Strings(pending)

	for _, phoneme := range pending {
		m.ids[phoneme] = len(m.ids)
	}
	m.learned = make(map[string]struct{})
}

// MapLine converts a phoneme line into an id string. Phonemes without an id
// are dropped; call Learn and Assign over the corpus first.
func (m *Mapper) MapLine(phonemes string) string {
	m.reserve()

	var wordIDs [][]int

	if m.cfg.BOS != "" {
		wordIDs = append(wordIDs, []int{m.ids[m.cfg.BOS]})
	}

	for _, word := range m.splitWords(phonemes) {
		var ids []int
		for _, phoneme := range word {
			if m.cfg.SeparateStress {
				for {
					stress, size := decodeStressPrefix(phoneme)
					if size == 0 {
						break
					}
					if id, ok := m.ids[stress]; ok {
						ids = append(ids, id)
					}
					phoneme = phoneme[size:]
				}
			}

			if phoneme == "" {
				continue
			}
			if m.cfg.SimplePunctuation {
				if folded, ok := punctuationMap[phoneme]; ok {
					phoneme = folded
				}
			}
			if id, ok := m.ids[phoneme]; ok {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			wordIDs = append(wordIDs, ids)
		}
	}

	if m.cfg.EOS != "" {
		wordIDs = append(wordIDs, []int{m.ids[m.cfg.EOS]})
	}

	wordSep := m.cfg.WordSeparator
	if m.cfg.AddBlank {
		wordSep = fmt.Sprintf(" %d ", m.ids[m.cfg.WordSeparator])
	}

	words := make([]string, 0, len(wordIDs))
	for _, ids := range wordIDs {
		strs := make([]string, len(ids))
		for i, id := range ids {
			strs[i] = strconv.Itoa(id)
		}
		words = append(words, strings.Join(strs, m.cfg.IDSeparator))
	}

	return strings.Join(words, wordSep)
}

// IDs returns a copy of the phoneme id table.
func (m *Mapper) IDs() map[string]int {
	m.reserve()

	out := make(map[string]int, len(m.ids))
	for phoneme, id := range m.ids {
		out[phoneme] = id
	}
	return out
}

// splitWords splits a phoneme line into words and each word into phonemes.
func (m *Mapper) splitWords(line string) [][]string {
	wordStrs := strings.Split(line, m.cfg.WordSeparator)
	words := make([][]string, 0, len(wordStrs))

	for _, word := range wordStrs {
		var phonemes []string
		if m.cfg.PhonemeSeparator != "" {
			phonemes = strings.Split(word, m.cfg.PhonemeSeparator)
		} else {
			for _, r := range word {
				phonemes = append(phonemes, string(r))
			}
		}
		words = append(words, phonemes)
	}
	return words
}

// normalize applies stress stripping and punctuation folding to one phoneme,
// for the learning phase. Stress markers themselves already hold reserved
// ids when SeparateStress is on.
func (m *Mapper) normalize(phoneme string) string {
	if m.cfg.SeparateStress {
		for {
			_, size := decodeStressPrefix(phoneme)
			if size == 0 {
				break
			}
			phoneme = phoneme[size:]
		}
	}
	if phoneme == "" {
		return ""
	}
	if m.cfg.SimplePunctuation {
		if folded, ok := punctuationMap[phoneme]; ok {
			return folded
		}
	}
	return phoneme
}

// decodeStressPrefix returns the stress marker at the start of s and its
// byte length, or a zero length when s does not start with one.
func decodeStressPrefix(s string) (string, int) {
	for _, stress := range stressMarkers {
		if strings.HasPrefix(s, stress) {
			return stress, len(stress)
		}
	}
	return "", 0
}

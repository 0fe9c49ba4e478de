package phonemeids

import (
	"strings"
	"testing"
)

func TestLearnAssignMap(t *testing.T) {
	m := NewMapper(DefaultConfig())

	m.Learn("tɛst")
	m.Assign()

	// Runes sorted: t < ɛ < s? No: sorted order of {t, ɛ, s} is s, t, ɛ.
	ids := m.IDs()
	if ids["s"] != 0 || ids["t"] != 1 || ids["ɛ"] != 2 {
		t.Fatalf("unexpected id assignment: %v", ids)
	}

	if got := m.MapLine("tɛst"); got != "1 2 0 1" {
		t.Errorf("MapLine = %q, want %q", got, "1 2 0 1")
	}
}

func TestMapLineWords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PhonemeSeparator = "_"

	m := NewMapper(cfg)
	m.Learn("t_ɛ_s_t w_ʌ_n")
	m.Assign()

	out := m.MapLine("t_ɛ_s_t w_ʌ_n")
	words := strings.Split(out, " ")
	// Words are separated by the word separator; phonemes inside a word by
	// the id separator, which here are both spaces: 4 + 3 ids total.
	if len(words) != 7 {
		t.Errorf("expected 7 ids, got %d (%q)", len(words), out)
	}
}

func TestReservedSymbols(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pad = "_"
	cfg.BOS = "^"
	cfg.EOS = "$"

	m := NewMapper(cfg)
	ids := m.IDs()

	if ids["_"] != 0 {
		t.Errorf("pad must be phoneme 0, got %d", ids["_"])
	}
	if ids["^"] != 1 || ids["$"] != 2 {
		t.Errorf("bos/eos not reserved in order: %v", ids)
	}

	m.Learn("ab")
	m.Assign()

	out := m.MapLine("ab")
	if !strings.HasPrefix(out, "1 ") || !strings.HasSuffix(out, " 2") {
		t.Errorf("bos/eos not wrapped around line: %q", out)
	}
}

func TestAddBlank(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddBlank = true

	m := NewMapper(cfg)
	m.Learn("ab cd")
	m.Assign()

	// The word separator itself holds id 0.
	if m.IDs()[" "] != 0 {
		t.Fatalf("blank symbol not reserved: %v", m.IDs())
	}

	out := m.MapLine("ab cd")
	if !strings.Contains(out, " 0 ") {
		t.Errorf("blank id not inserted between words: %q", out)
	}
}

func TestSimplePunctuation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimplePunctuation = true

	m := NewMapper(cfg)
	m.Learn("a! b; c")
	m.Assign()

	ids := m.IDs()
	if _, ok := ids["!"]; ok {
		t.Error("raw punctuation should be folded away")
	}
	if _, ok := ids["."]; !ok {
		t.Error("folded '.' missing from table")
	}
	if _, ok := ids[","]; !ok {
		t.Error("folded ',' missing from table")
	}

	if m.MapLine("a!") != m.MapLine("a.") {
		t.Error("'!' and '.' should map to the same ids")
	}
}

func TestSeparateStress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PhonemeSeparator = "_"
	cfg.SeparateStress = true

	m := NewMapper(cfg)

	ids := m.IDs()
	if ids["ˈ"] != 0 || ids["ˌ"] != 1 {
		t.Fatalf("stress symbols not reserved: %v", ids)
	}

	m.Learn("ˈɛ_s")
	m.Assign()

	// The stressed phoneme is learned without its stress prefix.
	if _, ok := m.IDs()["ˈɛ"]; ok {
		t.Error("stress prefix should be split from the phoneme")
	}

	out := m.MapLine("ˈɛ_s")
	if !strings.HasPrefix(out, "0 ") {
		t.Errorf("stress id not emitted separately: %q", out)
	}
}

func TestLoadSave(t *testing.T) {
	table := "0 _\n1 a\n2 b\n# comment\n\n3 tʃ\n"

	m := NewMapper(DefaultConfig())
	if err := m.Load(strings.NewReader(table)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	ids := m.IDs()
	if ids["_"] != 0 || ids["a"] != 1 || ids["b"] != 2 || ids["tʃ"] != 3 {
		t.Fatalf("loaded table wrong: %v", ids)
	}

	var sb strings.Builder
	if err := m.Save(&sb); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if sb.String() != "0 _\n1 a\n2 b\n3 tʃ\n" {
		t.Errorf("Save output = %q", sb.String())
	}
}

func TestLoadRejectsBadID(t *testing.T) {
	m := NewMapper(DefaultConfig())
	if err := m.Load(strings.NewReader("x a\n")); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestLoadedTableKeepsIdsUnderReservedSymbols(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pad = "_"

	m := NewMapper(cfg)
	if err := m.Load(strings.NewReader("0 a\n1 b\n")); err != nil {
		t.Fatal(err)
	}

	ids := m.IDs()
	if ids["a"] != 0 || ids["b"] != 1 {
		t.Fatalf("loaded ids changed: %v", ids)
	}
	if ids["_"] != 2 {
		t.Errorf("pad should extend the loaded table, got id %d", ids["_"])
	}
}

func TestLoadedTableAlreadyNamesReservedSymbol(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pad = "_"

	m := NewMapper(cfg)
	if err := m.Load(strings.NewReader("0 _\n1 a\n")); err != nil {
		t.Fatal(err)
	}

	m.Learn("ab")
	m.Assign()

	ids := m.IDs()
	if ids["_"] != 0 || ids["a"] != 1 {
		t.Fatalf("loaded ids changed: %v", ids)
	}
	if ids["b"] != 2 {
		t.Errorf("learned phoneme should take the next free id, got %d", ids["b"])
	}
}

func TestLearnedPhonemesExtendLoadedTable(t *testing.T) {
	m := NewMapper(DefaultConfig())
	if err := m.Load(strings.NewReader("0 a\n1 b\n")); err != nil {
		t.Fatal(err)
	}

	m.Learn("abc")
	m.Assign()

	if m.IDs()["c"] != 2 {
		t.Errorf("new phoneme should extend the table: %v", m.IDs())
	}
}

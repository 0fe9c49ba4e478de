// Package batch feeds record streams through a phonemize call: plain text
// lines, or CSV rows whose final column is the text and which gain the
// phonemes as a new final column. Identifier columns pass through untouched.
package batch

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// PhonemizeFunc converts one text to its phoneme string.
type PhonemizeFunc func(text string) (string, error)

// Processor runs a PhonemizeFunc over a record stream.
type Processor struct {
	// Phonemize is applied to each record's text. Required.
	Phonemize PhonemizeFunc

	// PrintInput echoes the input text before the phonemes in line mode.
	PrintInput bool

	// OutputSeparator separates input text and phonemes when PrintInput
	// is set.
	OutputSeparator string
}

// Run reads text line-by-line from r and writes one phoneme line per input
// line to w. Empty lines are skipped.
func (p *Processor) Run(r io.Reader, w io.Writer) error {
	if p.Phonemize == nil {
		return fmt.Errorf("batch: no phonemize function configured")
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		phonemes, err := p.Phonemize(text)
		if err != nil {
			return fmt.Errorf("phonemize %q: %w", text, err)
		}

		if p.PrintInput {
			sep := p.OutputSeparator
			if sep == "" {
				sep = " "
			}
			if _, err := fmt.Fprintln(w, text+sep+phonemes); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintln(w, phonemes); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// RunCSV reads delimiter-separated rows from r, phonemizes the final column
// of each row, and writes the row back to w with the phonemes appended as a
// new final column.
func (p *Processor) RunCSV(r io.Reader, w io.Writer, delimiter rune) error {
	if p.Phonemize == nil {
		return fmt.Errorf("batch: no phonemize function configured")
	}
	if delimiter == 0 {
		delimiter = '|'
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	writer := csv.NewWriter(w)
	writer.Comma = delimiter
	defer writer.Flush()

	rows := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read csv row: %w", err)
		}
		if len(row) == 0 {
			continue
		}

		text := row[len(row)-1]
		phonemes, err := p.Phonemize(text)
		if err != nil {
			return fmt.Errorf("phonemize %q: %w", text, err)
		}

		if err := writer.Write(append(row, phonemes)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
		rows++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	log.Debug("batch complete", "rows", rows)
	return nil
}

package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rhasspy/espeak-phonemizer-go/phonemeids"
)

var (
	idsReadPhonemes  string
	idsWritePhonemes string
	idsPhonemeSep    string
	idsWordSep       string
	idsIDSep         string
	idsPad           string
	idsBOS           string
	idsEOS           string
	idsAddBlank      bool
	idsSimplePunct   bool
	idsSeparateStr   bool
	idsCSV           bool
	idsCSVDelimiter  string
	idsPrintInput    bool
	idsOutputSep     string

	idsCmd = &cobra.Command{
		Use:   "ids",
		Short: "Convert phoneme strings to integer ids",
		Long: paragraph(
			fmt.Sprintf("\nRead phoneme strings on stdin and write %s per line, the input format expected by phoneme-based TTS models.", keyword("phoneme ids")),
		),
		Example: "  echo 'This is a test.' | espeak-phonemizer -v en-us | espeak-phonemizer ids --pad _",
		Args:    cobra.NoArgs,
		RunE:    executeIDs,
	}
)

func executeIDs(*cobra.Command, []string) error {
	cfg := phonemeids.Config{
		PhonemeSeparator:  idsPhonemeSep,
		WordSeparator:     idsWordSep,
		IDSeparator:       idsIDSep,
		Pad:               idsPad,
		BOS:               idsBOS,
		EOS:               idsEOS,
		AddBlank:          idsAddBlank,
		SeparateStress:    idsSeparateStr,
		SimplePunctuation: idsSimplePunct,
	}
	mapper := phonemeids.NewMapper(cfg)

	if idsReadPhonemes != "" {
		f, err := os.Open(idsReadPhonemes)
		if err != nil {
			return fmt.Errorf("unable to open phonemes file: %w", err)
		}
		err = mapper.Load(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("unable to read phonemes file: %w", err)
		}
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		log.Info("Reading phonemes from stdin...")
	}

	// Id assignment is corpus-wide and sorted, so the whole input is read
	// before any line is mapped.
	var err error
	if idsCSV {
		err = idsRunCSV(mapper, os.Stdin, os.Stdout)
	} else {
		err = idsRun(mapper, os.Stdin, os.Stdout)
	}
	if err != nil {
		return err
	}

	if idsWritePhonemes != "" {
		f, err := os.Create(idsWritePhonemes)
		if err != nil {
			return fmt.Errorf("unable to create phonemes file: %w", err)
		}
		err = mapper.Save(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("unable to write phonemes file: %w", err)
		}
	}

	return nil
}

func idsRun(mapper *phonemeids.Mapper, r io.Reader, w io.Writer) error {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
		mapper.Learn(line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	mapper.Assign()

	for _, line := range lines {
		ids := mapper.MapLine(line)
		if idsPrintInput {
			if _, err := fmt.Fprintln(w, line+idsOutputSep+ids); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, ids); err != nil {
			return err
		}
	}
	return nil
}

func idsRunCSV(mapper *phonemeids.Mapper, r io.Reader, w io.Writer) error {
	reader := csv.NewReader(r)
	reader.Comma = delimiterRune(idsCSVDelimiter)
	reader.FieldsPerRecord = -1

	var rows [][]string
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
		rows = append(rows, row)
		mapper.Learn(row[len(row)-1])
	}

	mapper.Assign()

	writer := csv.NewWriter(w)
	writer.Comma = delimiterRune(idsCSVDelimiter)
	for _, row := range rows {
		ids := mapper.MapLine(row[len(row)-1])
		if err := writer.Write(append(row, ids)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func init() {
	idsCmd.Flags().StringVar(&idsReadPhonemes, "read-phonemes", "", "read phoneme ids from a text file (ID PHONEME)")
	idsCmd.Flags().StringVar(&idsWritePhonemes, "write-phonemes", "", "path to write phoneme ids text file (ID PHONEME)")
	idsCmd.Flags().StringVarP(&idsPhonemeSep, "phoneme-separator", "p", "", "separator character between phonemes")
	idsCmd.Flags().StringVarP(&idsWordSep, "word-separator", "w", " ", "separator character between words")
	idsCmd.Flags().StringVar(&idsIDSep, "id-separator", " ", "separator string between phoneme ids")
	idsCmd.Flags().StringVar(&idsPad, "pad", "", "phoneme for padding (phoneme 0)")
	idsCmd.Flags().StringVar(&idsBOS, "bos", "", "phoneme to put at beginning of sentence")
	idsCmd.Flags().StringVar(&idsEOS, "eos", "", "phoneme to put at end of sentence")
	idsCmd.Flags().BoolVar(&idsAddBlank, "add-blank", false, "word separator is a phoneme")
	idsCmd.Flags().BoolVar(&idsSimplePunct, "simple-punctuation", false, "map all punctuation into ',' and '.'")
	idsCmd.Flags().BoolVar(&idsSeparateStr, "separate-stress", false, "pull primary/secondary stress out as separate phonemes")
	idsCmd.Flags().BoolVar(&idsCSV, "csv", false, "input and output is CSV; phoneme ids are added as a final column")
	idsCmd.Flags().StringVar(&idsCSVDelimiter, "csv-delimiter", "|", "delimiter in CSV input and output")
	idsCmd.Flags().BoolVar(&idsPrintInput, "print-input", false, "print input phonemes before phoneme ids")
	idsCmd.Flags().StringVar(&idsOutputSep, "output-separator", "|", "separator string between input phonemes and phoneme ids")
}

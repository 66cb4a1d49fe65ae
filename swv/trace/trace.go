package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Column labels as written by the instrument export.
const (
	CurrentColumn   = "<I>/mA"
	PotentialColumn = "Ewe/V"
)

var (
	// ErrNoHeader indicates an empty file or missing header row.
	ErrNoHeader = errors.New("trace: missing header row")
	// ErrMissingColumn indicates a required column absent from the header.
	ErrMissingColumn = errors.New("trace: required column missing")
	// ErrNoSamples indicates a table with a header but no data rows.
	ErrNoSamples = errors.New("trace: no data rows")
)

// Trace holds one measurement file's sample columns.
type Trace struct {
	// Current in mA, alternating forward/backward samples.
	Current []float64
	// Potential of the working electrode in V.
	Potential []float64
}

// Len returns the number of samples.
func (t *Trace) Len() int { return len(t.Current) }

// ParseFile reads and parses a measurement export.
func ParseFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	defer f.Close()

	tr, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}

	return tr, nil
}

// ParseReader parses a Windows-1252 encoded tab-delimited table from r.
func ParseReader(r io.Reader) (*Trace, error) {
	sc := bufio.NewScanner(charmap.Windows1252.NewDecoder().Reader(r))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("trace: %w", err)
		}
		return nil, ErrNoHeader
	}

	header := strings.Split(strings.TrimRight(sc.Text(), "\r\n"), "\t")
	currentIdx, potentialIdx := -1, -1
	for i, label := range header {
		switch strings.TrimSpace(label) {
		case CurrentColumn:
			currentIdx = i
		case PotentialColumn:
			potentialIdx = i
		}
	}

	if currentIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, CurrentColumn)
	}
	if potentialIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, PotentialColumn)
	}

	tr := &Trace{}
	line := 1

	for sc.Scan() {
		line++

		row := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(row) == "" {
			continue
		}

		fields := strings.Split(row, "\t")
		if len(fields) <= currentIdx || len(fields) <= potentialIdx {
			return nil, fmt.Errorf("trace: line %d: %d fields, need %d",
				line, len(fields), max(currentIdx, potentialIdx)+1)
		}

		i, err := parseFloat(fields[currentIdx])
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: current: %w", line, err)
		}

		e, err := parseFloat(fields[potentialIdx])
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: potential: %w", line, err)
		}

		tr.Current = append(tr.Current, i)
		tr.Potential = append(tr.Potential, e)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	if tr.Len() == 0 {
		return nil, ErrNoSamples
	}

	return tr, nil
}

// parseFloat handles instrument exports that use a decimal comma.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}

	return strconv.ParseFloat(s, 64)
}

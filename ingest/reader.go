package ingest

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
)

// RecordError reports a record that failed to parse, with its line number
// in the input.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// maxLineSize bounds a single record line. Messages are free text but a
// megabyte is far beyond anything the payment feed produces.
const maxLineSize = 1 << 20

// Reader streams payment records from CSV input. The first line is
// treated as the feed header and skipped; blank lines are ignored.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	header  bool
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	return &Reader{scanner: scanner, header: true}
}

// Next returns the next payment record. It returns io.EOF at end of input
// and a *RecordError wrapping ErrMalformedRecord for lines that do not
// parse.
func (r *Reader) Next() (Payment, error) {
	for r.scanner.Scan() {
		r.line++

		line := r.scanner.Text()
		if r.header {
			r.header = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		p, err := ParseRecord(line)
		if err != nil {
			return Payment{}, &RecordError{Line: r.line, Err: err}
		}
		return p, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Payment{}, err
	}
	return Payment{}, io.EOF
}

// All iterates the remaining records. Iteration stops after the first
// error; io.EOF is not surfaced.
func (r *Reader) All() iter.Seq2[Payment, error] {
	return func(yield func(Payment, error) bool) {
		for {
			p, err := r.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Payment{}, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

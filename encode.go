package capgains

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/PaesslerAG/jsonpath"
)

// A stream is a sequence of lines, each line holding one JSON array of
// transactions resolved independently of the others:
//
//	[{"operation":"buy", "unit-cost":10.00, "quantity": 100}, ...]
//
// The matching output has one JSON array of taxes per input line:
//
//	[{"amount":"0.00"}, ...]
//
// Blank lines are skipped.

// maxLineSize bounds a single input line.
const maxLineSize = 16 << 20

// DecodeTransactions parses one JSON array of transactions.
func DecodeTransactions(data []byte) ([]Transaction, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: expecting a JSON array: %w", ErrInvalidTransaction, err)
	}
	txs := make([]Transaction, len(raws))
	for i, raw := range raws {
		if err := json.Unmarshal(raw, &txs[i]); err != nil {
			return nil, fmt.Errorf("%w at index %d: %w", ErrInvalidTransaction, i, err)
		}
	}
	return txs, nil
}

// DecodeTransactionsAt parses the JSON array of transactions selected by a
// JSONPath expression (e.g. "$.transactions") inside a larger document.
// An empty path or "$" selects the document itself.
func DecodeTransactionsAt(data []byte, path string) ([]Transaction, error) {
	if path == "" || path == "$" {
		return DecodeTransactions(data)
	}
	// numbers are kept as literals so unit costs are not turned into floats.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON document: %w", ErrInvalidTransaction, err)
	}
	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: selecting %q: %w", ErrInvalidTransaction, path, err)
	}
	raw, err := json.Marshal(selected)
	if err != nil {
		return nil, fmt.Errorf("%w: selecting %q: %w", ErrInvalidTransaction, path, err)
	}
	return DecodeTransactions(raw)
}

// EncodeTaxes writes taxes as a single JSON array followed by a newline.
func EncodeTaxes(w io.Writer, taxes []Tax) error {
	if taxes == nil {
		taxes = []Tax{}
	}
	data, err := json.Marshal(taxes)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Line is a decoded line of a stream.
type Line struct {
	Number       int // 1-based, blank lines included
	Transactions []Transaction
}

// ScanLines decodes r line by line, selecting the transaction array of each
// line with path (see DecodeTransactionsAt). It stops after the first error.
func ScanLines(r io.Reader, path string) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		n := 0
		for scanner.Scan() {
			n++
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			txs, err := DecodeTransactionsAt(line, path)
			if err != nil {
				yield(Line{Number: n}, fmt.Errorf("line %d: %w", n, err))
				return
			}
			if !yield(Line{Number: n, Transactions: txs}, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Line{Number: n}, fmt.Errorf("line %d: %w", n+1, err))
		}
	}
}

// ProcessOption configures Process.
type ProcessOption func(*processor)

type processor struct {
	path    string
	observe func(Line, []Tax)
}

// WithPath selects the transaction array of each line with a JSONPath expression.
func WithPath(path string) ProcessOption {
	return func(p *processor) { p.path = path }
}

// WithObserver registers a function called after each line is resolved.
func WithObserver(f func(Line, []Tax)) ProcessOption {
	return func(p *processor) { p.observe = f }
}

// Process resolves every line of r with taxer and writes the matching tax
// arrays to w, one line at a time. It stops on the first decoding error, or
// when ctx is done.
func Process(ctx context.Context, r io.Reader, w io.Writer, taxer Taxer, opts ...ProcessOption) error {
	var p processor
	for _, opt := range opts {
		opt(&p)
	}
	for line, err := range ScanLines(r, p.path) {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		taxes := taxer.Taxes(line.Transactions)
		if err := EncodeTaxes(w, taxes); err != nil {
			return fmt.Errorf("line %d: writing taxes: %w", line.Number, err)
		}
		if p.observe != nil {
			p.observe(line, taxes)
		}
	}
	return nil
}

package claimio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/gyeh/claimmap/internal/model"
)

// Decoder reads raw claim records from either a JSON array of objects or a
// stream of concatenated objects (JSON Lines). Numbers decode as json.Number
// so identifiers and amounts keep their exact text.
type Decoder struct {
	br      *bufio.Reader
	dec     *json.Decoder
	inArray bool
	done    bool
	index   int64
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{br: bufio.NewReader(r)}
}

// Next returns the next raw record, or io.EOF when the input is exhausted.
func (d *Decoder) Next() (model.RawRecord, error) {
	if d.done {
		return nil, io.EOF
	}
	if d.dec == nil {
		if err := d.start(); err != nil {
			return nil, err
		}
	}

	if d.inArray && !d.dec.More() {
		if _, err := d.dec.Token(); err != nil {
			return nil, fmt.Errorf("read closing bracket: %w", unexpectedEOF(err))
		}
		if tok, err := d.dec.Token(); !errors.Is(err, io.EOF) {
			if err != nil {
				return nil, fmt.Errorf("after closing bracket: %w", err)
			}
			return nil, fmt.Errorf("unexpected %v after closing bracket", tok)
		}
		d.done = true
		return nil, io.EOF
	}

	var v any
	if err := d.dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) && !d.inArray {
			d.done = true
			return nil, io.EOF
		}
		return nil, fmt.Errorf("decode record %d: %w", d.index, unexpectedEOF(err))
	}
	idx := d.index
	d.index++

	rec, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("record %d: expected JSON object, got %T", idx, v)
	}
	return rec, nil
}

// start skips a byte order mark and leading whitespace, then peeks at the first byte to tell an
// array from a record stream.
func (d *Decoder) start() error {
	if b, _ := d.br.Peek(len(utf8BOM)); bytes.Equal(b, utf8BOM) {
		if _, err := d.br.Discard(len(utf8BOM)); err != nil {
			return fmt.Errorf("skip byte order mark: %w", err)
		}
	}
	for {
		b, err := d.br.Peek(1)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("peek input: %w", err)
		}
		if b[0] == '[' {
			d.inArray = true
			break
		}
		if !unicode.IsSpace(rune(b[0])) {
			break
		}
		if _, err := d.br.ReadByte(); err != nil {
			return fmt.Errorf("skip whitespace: %w", err)
		}
	}

	d.dec = json.NewDecoder(d.br)
	d.dec.UseNumber()
	if d.inArray {
		if _, err := d.dec.Token(); err != nil {
			return fmt.Errorf("read opening bracket: %w", err)
		}
	}
	return nil
}

// unexpectedEOF keeps a truncated input from reading as a clean end of stream.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

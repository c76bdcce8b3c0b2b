package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/blockpool/pool"
)

type opKind uint8

const (
	opAlloc opKind = iota
	opFree
	opReset
)

// op is one parsed command-line operation.
type op struct {
	kind opKind
	arg  int // size for opAlloc, allocation index for opFree
	text string
}

// parseOps parses aSIZE, fINDEX and reset tokens.
func parseOps(args []string) ([]op, error) {
	ops := make([]op, 0, len(args))
	for _, a := range args {
		tok := strings.ToLower(strings.TrimSpace(a))
		if tok == "reset" {
			ops = append(ops, op{kind: opReset, text: tok})
			continue
		}
		if len(tok) < 2 {
			return nil, fmt.Errorf("invalid operation %q (want aSIZE, fINDEX or reset)", a)
		}

		n, err := strconv.Atoi(tok[1:])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid operation %q: bad number", a)
		}
		switch tok[0] {
		case 'a':
			ops = append(ops, op{kind: opAlloc, arg: n, text: tok})
		case 'f':
			ops = append(ops, op{kind: opFree, arg: n, text: tok})
		default:
			return nil, fmt.Errorf("invalid operation %q (want aSIZE, fINDEX or reset)", a)
		}
	}
	return ops, nil
}

// stepResult records the outcome of one operation.
type stepResult struct {
	Op    string   `json:"op"`
	Ref   pool.Ref `json:"ref,omitempty"`
	Size  int      `json:"size,omitempty"` // recorded size after a successful alloc
	Error string   `json:"error,omitempty"`
}

// applyOps runs ops against p. Alloc and free failures are recorded per step;
// only a corrupt chain aborts the run.
func applyOps(p *pool.Pool, ops []op) ([]stepResult, error) {
	var refs []pool.Ref
	results := make([]stepResult, 0, len(ops))

	for _, o := range ops {
		res := stepResult{Op: o.text}
		var err error

		switch o.kind {
		case opAlloc:
			var ref pool.Ref
			var payload []byte
			ref, payload, err = p.Alloc(o.arg)
			if err == nil {
				refs = append(refs, ref)
				res.Ref = ref
				res.Size = len(payload)
			}
		case opFree:
			if o.arg >= len(refs) {
				err = fmt.Errorf("no allocation #%d (have %d)", o.arg, len(refs))
				break
			}
			res.Ref = refs[o.arg]
			err = p.Free(refs[o.arg])
		case opReset:
			p.Reset()
			refs = refs[:0]
		}

		if err != nil {
			res.Error = err.Error()
			if errors.Is(err, pool.ErrCorrupt) {
				results = append(results, res)
				return results, err
			}
		}
		results = append(results, res)
	}
	return results, nil
}

package main

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/eigerco/ldb/internal/engine"
	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/serialization/codec"
	"github.com/eigerco/ldb/pkg/store"
)

type command struct {
	kind   engine.Kind
	path   string
	opts   db.Options
	text   textFormat
	stdout io.Writer
	stderr io.Writer
}

// textFormat converts command line arguments to raw bytes and back.
type textFormat struct {
	hex bool
}

func (f textFormat) parse(s string) ([]byte, error) {
	if !f.hex {
		return []byte(s), nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}

func (f textFormat) format(b []byte) string {
	if f.hex {
		return hex.EncodeToString(b)
	}
	return fmt.Sprintf("%q", b)
}

func (c *command) open() (*store.Database[[]byte, []byte], error) {
	kv, err := engine.Open(c.kind, c.path, c.opts)
	if err != nil {
		return nil, err
	}
	return store.New[[]byte, []byte](kv, codec.Bytes{}, codec.Bytes{}), nil
}

func (c *command) args(name string, args []string, n int) ([][]byte, error) {
	if len(args) != n {
		fmt.Fprintf(c.stderr, "%s takes %d argument(s), got %d\n", name, n, len(args))
		return nil, errUsage
	}
	out := make([][]byte, n)
	for i, a := range args {
		b, err := c.text.parse(a)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func (c *command) get(args []string) error {
	parsed, err := c.args("get", args, 1)
	if err != nil {
		return err
	}
	d, err := c.open()
	if err != nil {
		return err
	}
	defer d.Close() //nolint:errcheck

	value, err := d.Get(parsed[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, c.text.format(value))
	return err
}

func (c *command) put(args []string) error {
	parsed, err := c.args("put", args, 2)
	if err != nil {
		return err
	}
	d, err := c.open()
	if err != nil {
		return err
	}
	defer d.Close() //nolint:errcheck

	return d.Put(parsed[0], parsed[1])
}

func (c *command) delete(args []string) error {
	parsed, err := c.args("delete", args, 1)
	if err != nil {
		return err
	}
	d, err := c.open()
	if err != nil {
		return err
	}
	defer d.Close() //nolint:errcheck

	return d.Delete(parsed[0])
}

// rangeFlags narrow a snapshot the way the store does, in flag order:
// prefix first, then the lower and upper bounds.
type rangeFlags struct {
	prefix, from, after, to, through string
	reverse, noncaching, checksummed bool
	limit                            int
}

func newRangeFlags(name string, stderr io.Writer) (*flag.FlagSet, *rangeFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	r := &rangeFlags{}
	fs.StringVar(&r.prefix, "prefix", "", "keep keys starting with this prefix")
	fs.StringVar(&r.from, "from", "", "keep keys greater than or equal to this key")
	fs.StringVar(&r.after, "after", "", "keep keys greater than this key")
	fs.StringVar(&r.to, "to", "", "keep keys less than this key")
	fs.StringVar(&r.through, "through", "", "keep keys less than or equal to this key")
	fs.BoolVar(&r.reverse, "reverse", false, "iterate from the last key")
	fs.BoolVar(&r.noncaching, "noncaching", false, "do not fill the block cache")
	fs.BoolVar(&r.checksummed, "checksummed", false, "verify block checksums")
	fs.IntVar(&r.limit, "limit", 0, "stop after this many pairs, 0 for all")
	return fs, r
}

func (c *command) parseRange(name string, args []string) (*rangeFlags, map[string]bool, error) {
	fs, r := newRangeFlags(name, c.stderr)
	if err := fs.Parse(args); err != nil {
		return nil, nil, errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(c.stderr, "%s takes no arguments\n", name)
		return nil, nil, errUsage
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return r, set, nil
}

func (c *command) view(snap store.Snapshot[[]byte, []byte], r *rangeFlags, set map[string]bool) (store.Snapshot[[]byte, []byte], error) {
	bounds := []struct {
		name   string
		value  string
		narrow func(key []byte)
	}{
		{"prefix", r.prefix, func(key []byte) { snap = snap.Prefixed(key) }},
		{"from", r.from, func(key []byte) { snap = snap.From(key) }},
		{"after", r.after, func(key []byte) { snap = snap.After(key) }},
		{"to", r.to, func(key []byte) { snap = snap.To(key) }},
		{"through", r.through, func(key []byte) { snap = snap.Through(key) }},
	}
	for _, b := range bounds {
		if !set[b.name] {
			continue
		}
		key, err := c.text.parse(b.value)
		if err != nil {
			return snap, err
		}
		b.narrow(key)
	}

	if r.reverse {
		snap = snap.Reversed()
	}
	if r.noncaching {
		snap = snap.Noncaching()
	}
	if r.checksummed {
		snap = snap.Checksummed()
	}
	return snap, nil
}

// each calls fn for every pair of the range selected by args.
func (c *command) each(name string, args []string, fn func(key, value []byte) error) error {
	r, set, err := c.parseRange(name, args)
	if err != nil {
		return err
	}
	d, err := c.open()
	if err != nil {
		return err
	}
	defer d.Close() //nolint:errcheck

	snap, err := d.Snapshot()
	if err != nil {
		return err
	}
	defer snap.Release() //nolint:errcheck

	snap, err = c.view(snap, r, set)
	if err != nil {
		return err
	}

	it, err := snap.NewIterator()
	if err != nil {
		return err
	}
	defer it.Close() //nolint:errcheck

	for n := 0; (r.limit <= 0 || n < r.limit) && it.Next(); n++ {
		if err := fn(it.Key(), it.Value()); err != nil {
			return err
		}
	}
	return it.Err()
}

func (c *command) scan(args []string) error {
	return c.each("scan", args, func(key, value []byte) error {
		_, err := fmt.Fprintf(c.stdout, "%s\t%s\n", c.text.format(key), c.text.format(value))
		return err
	})
}

// hash digests every pair as its length-prefixed key followed by its
// length-prefixed value.
func (c *command) hash(args []string) error {
	h, err := blake2b.New256(nil)
	if err != nil {
		return err
	}
	var (
		count int
		buf   []byte
	)
	err = c.each("hash", args, func(key, value []byte) error {
		buf = binary.AppendUvarint(buf[:0], uint64(len(key)))
		buf = append(buf, key...)
		buf = binary.AppendUvarint(buf, uint64(len(value)))
		buf = append(buf, value...)
		count++
		_, err := h.Write(buf)
		return err
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.stdout, "%x\t%d\n", h.Sum(nil), count)
	return err
}

func (c *command) size(args []string) error {
	r, set, err := c.parseRange("size", args)
	if err != nil {
		return err
	}
	if r.reverse || r.limit != 0 {
		return errors.New("size does not take -reverse or -limit")
	}
	d, err := c.open()
	if err != nil {
		return err
	}
	defer d.Close() //nolint:errcheck

	snap, err := d.Snapshot()
	if err != nil {
		return err
	}
	defer snap.Release() //nolint:errcheck

	snap, err = c.view(snap, r, set)
	if err != nil {
		return err
	}
	size, err := d.ApproximateSizeOf(snap.Interval())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, size)
	return err
}

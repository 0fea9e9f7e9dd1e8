// Package buffer holds the bytes being edited.
//
// A Buffer is either read into memory or, with Options.Mmap, memory-mapped
// read/write with MAP_SHARED. Every mutation widens the buffer's dirty
// tracker. Save writes back only the dirty span: through the file for
// in-memory buffers, through msync for mapped ones.
//
// NOT thread-safe.
package buffer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/joshuapare/hexkit/hex/dirty"
	"github.com/joshuapare/hexkit/internal/buf"
)

// Options configures Open.
type Options struct {
	// ReadOnly opens the file without write access. Mutations fail.
	ReadOnly bool

	// Mmap maps the file instead of reading it. Edits to a shared mapping
	// reach the page cache immediately; Save makes them durable. Ignored on
	// platforms without mmap.
	Mmap bool

	// FlushMode controls how hard Save syncs. Default: dirty.FlushAuto.
	FlushMode dirty.FlushMode

	// Log receives diagnostics. Nil discards them.
	Log *slog.Logger
}

// Buffer is the editable data buffer.
type Buffer struct {
	path    string
	f       *os.File
	data    []byte
	mapping []byte // full mmap'd region when mapped, for munmap
	opts    Options
	log     *slog.Logger
	dirty   *dirty.Tracker
	closed  bool
}

// Open loads the file at path.
func Open(path string, opts Options) (*Buffer, error) {
	flag := os.O_RDWR
	if opts.ReadOnly {
		flag = os.O_RDONLY
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}

	b := &Buffer{path: path, f: f, opts: opts, log: discardIfNil(opts.Log)}
	if err := b.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	b.dirty = dirty.NewTracker(b, b.log)
	b.log.Info("buffer: opened", "path", path, "len", len(b.data), "mapped", b.mapping != nil)
	return b, nil
}

// FromBytes wraps data in a buffer with no backing file. Save and Reload
// return ErrNoFile.
func FromBytes(data []byte, opts Options) *Buffer {
	b := &Buffer{data: data, opts: opts, log: discardIfNil(opts.Log)}
	b.dirty = dirty.NewTracker(b, b.log)
	return b
}

func discardIfNil(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return log
}

// load fills b.data from b.f, mapping it when requested.
func (b *Buffer) load() error {
	st, err := b.f.Stat()
	if err != nil {
		return err
	}
	sz := st.Size()
	if sz > math.MaxInt {
		return fmt.Errorf("buffer: file too large (%d bytes)", sz)
	}

	if b.opts.Mmap && sz > 0 {
		data, err := mapFile(b.f, int(sz), !b.opts.ReadOnly)
		switch {
		case err == nil:
			b.mapping = data
			b.data = data
			return nil
		case errors.Is(err, errMmapUnsupported):
			b.log.Debug("buffer: mmap unsupported, reading into memory", "path", b.path)
		default:
			return fmt.Errorf("buffer: mmap failed: %w", err)
		}
	}

	data := make([]byte, sz)
	if _, err := b.f.ReadAt(data, 0); err != nil && err != io.EOF {
		return err
	}
	b.data = data
	return nil
}

func (b *Buffer) unload() error {
	var err error
	if b.mapping != nil {
		err = unmapFile(b.mapping)
		b.mapping = nil
	}
	b.data = nil
	return err
}

// Path returns the backing file path, empty for FromBytes buffers.
func (b *Buffer) Path() string { return b.path }

// Bytes returns the live contents. The slice is invalidated by Truncate,
// Save after a truncation, Reload and Close.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the current length.
func (b *Buffer) Len() int { return len(b.data) }

// FD returns the backing file descriptor, or -1.
func (b *Buffer) FD() int {
	if b == nil || b.f == nil {
		return -1
	}
	return int(b.f.Fd())
}

// Mapped reports whether the buffer is memory-mapped.
func (b *Buffer) Mapped() bool { return b.mapping != nil }

// Dirty returns the buffer's dirty tracker.
func (b *Buffer) Dirty() *dirty.Tracker { return b.dirty }

// Byte returns the byte at off.
func (b *Buffer) Byte(off int) (byte, bool) {
	if off < 0 || off >= len(b.data) {
		return 0, false
	}
	return b.data[off], true
}

func (b *Buffer) writable() error {
	switch {
	case b.closed:
		return ErrClosed
	case b.opts.ReadOnly:
		return ErrReadOnly
	}
	return nil
}

// SetByte overwrites one byte.
func (b *Buffer) SetByte(off int, v byte) error {
	if err := b.writable(); err != nil {
		return err
	}
	if off < 0 || off >= len(b.data) {
		return fmt.Errorf("buffer: set byte at %d (len %d): %w", off, len(b.data), ErrOutOfRange)
	}
	if b.data[off] == v {
		return nil
	}
	b.data[off] = v
	b.dirty.Widen(dirty.Single(off))
	return nil
}

// WriteAt overwrites len(p) bytes at off. Writes never grow the buffer.
func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	if err := b.writable(); err != nil {
		return 0, err
	}
	if off < 0 || off > math.MaxInt {
		return 0, fmt.Errorf("buffer: write at %d: %w", off, ErrOutOfRange)
	}
	dst, ok := buf.Slice(b.data, int(off), len(p))
	if !ok {
		return 0, fmt.Errorf("buffer: write %d bytes at %d (len %d): %w", len(p), off, len(b.data), ErrOutOfRange)
	}
	n := copy(dst, p)
	b.dirty.Widen(dirty.Range(int(off), int(off)+n))
	return n, nil
}

// ReadAt implements io.ReaderAt.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}
	if off < 0 || off > int64(len(b.data)) {
		return 0, ErrOutOfRange
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Truncate shrinks the buffer to n bytes. The file is truncated on the next
// Save.
func (b *Buffer) Truncate(n int) error {
	if err := b.writable(); err != nil {
		return err
	}
	if n < 0 || n > len(b.data) {
		return fmt.Errorf("buffer: truncate to %d (len %d): %w", n, len(b.data), ErrOutOfRange)
	}
	b.data = b.data[:n]
	return nil
}

// Save writes the dirty span back to the file, applies any pending
// truncation, and marks the buffer clean.
func (b *Buffer) Save(ctx context.Context) error {
	if err := b.writable(); err != nil {
		return err
	}
	if b.f == nil {
		return ErrNoFile
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	span, isDirty := b.dirty.Current()
	truncated := b.dirty.Truncated()

	if b.mapping != nil {
		if err := b.dirty.Flush(ctx, b, b.opts.FlushMode); err != nil {
			return fmt.Errorf("buffer: flush: %w", err)
		}
		if truncated {
			if err := b.truncateMapped(len(b.data)); err != nil {
				return err
			}
		}
	} else {
		if isDirty {
			span = span.Clamp(len(b.data))
			if !span.IsEmpty() {
				if _, err := b.f.WriteAt(b.data[span.Begin:span.End+1], int64(span.Begin)); err != nil {
					return fmt.Errorf("buffer: write dirty span %s: %w", span, err)
				}
			}
		}
		if truncated {
			if err := b.f.Truncate(int64(len(b.data))); err != nil {
				return fmt.Errorf("buffer: truncate file: %w", err)
			}
		}
		if b.opts.FlushMode != dirty.FlushDataOnly && (isDirty || truncated) {
			if err := b.f.Sync(); err != nil {
				return fmt.Errorf("buffer: sync: %w", err)
			}
		}
	}

	b.log.Info("buffer: saved", "path", b.path, "dirty", isDirty, "span", span.String(), "truncated", truncated)
	b.dirty.Undirty()
	return nil
}

// truncateMapped shrinks the file and remaps it at the new size.
func (b *Buffer) truncateMapped(n int) error {
	if err := b.unload(); err != nil {
		return fmt.Errorf("buffer: unmap before truncate: %w", err)
	}
	if err := b.f.Truncate(int64(n)); err != nil {
		// Try to remap to recover
		_ = b.load()
		return fmt.Errorf("buffer: truncate file: %w", err)
	}
	if err := b.load(); err != nil {
		return fmt.Errorf("buffer: remap after truncate: %w", err)
	}
	return nil
}

// Reload discards unsaved state and re-reads the file. A shared mapping
// already mirrors the file, so for mapped buffers only the length and the
// dirty state are refreshed.
func (b *Buffer) Reload() error {
	if b.closed {
		return ErrClosed
	}
	if b.f == nil {
		return ErrNoFile
	}
	if err := b.unload(); err != nil {
		return err
	}
	if err := b.load(); err != nil {
		return err
	}
	b.dirty.Undirty()
	b.log.Info("buffer: reloaded", "path", b.path, "len", len(b.data))
	return nil
}

// Close releases the mapping and the file. Unsaved edits of an in-memory
// buffer are lost.
func (b *Buffer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	err := b.unload()
	if b.f != nil {
		if cerr := b.f.Close(); err == nil {
			err = cerr
		}
		b.f = nil
	}
	return err
}

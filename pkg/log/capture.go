package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Capture file identification.
const (
	Magic         = "BLOG"
	FormatVersion = 1
)

// Capture file errors.
var (
	ErrNotCapture         = errors.New("not a blelink capture file")
	ErrUnsupportedVersion = errors.New("unsupported capture format version")
)

// Header is the first record of every capture file. It describes the link
// the events were recorded on.
type Header struct {
	Magic   string    `cbor:"0,keyasint"`
	Version uint8     `cbor:"1,keyasint"`
	Created time.Time `cbor:"2,keyasint"`

	Node       string   `cbor:"3,keyasint,omitempty"`
	Interfaces []string `cbor:"4,keyasint,omitempty"`

	// MTU is the radio payload size per write, header included.
	MTU int `cbor:"5,keyasint,omitempty"`

	Service        string `cbor:"6,keyasint,omitempty"`
	Characteristic string `cbor:"7,keyasint,omitempty"`
}

var encMode, decMode = modes()

func modes() (cbor.EncMode, cbor.DecMode) {
	eo := cbor.CoreDetEncOptions()
	eo.Time = cbor.TimeRFC3339Nano
	em, err := eo.EncMode()
	if err != nil {
		panic(fmt.Sprintf("log: cbor encode mode: %v", err))
	}
	dm, err := cbor.DecOptions{DupMapKey: cbor.DupMapKeyQuiet}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("log: cbor decode mode: %v", err))
	}
	return em, dm
}

// FileOption configures a FileLogger.
type FileOption func(*FileLogger)

// WithHeader sets the header written at the start of each capture file.
// Magic, Version and Created are filled in by the logger.
func WithHeader(h Header) FileOption {
	return func(l *FileLogger) { l.header = h }
}

// WithRotation starts a new file once the current one reaches maxBytes.
// Up to keep older files are retained as path.1 (newest) to path.N.
// With keep 0 the full file is discarded.
func WithRotation(maxBytes int64, keep int) FileOption {
	return func(l *FileLogger) {
		l.maxBytes = maxBytes
		l.keep = max(keep, 0)
	}
}

// FileLogger appends events to a CBOR capture file. It is safe for
// concurrent use. Write failures never reach the caller of Log; the first
// one is kept for Err.
type FileLogger struct {
	mu sync.Mutex

	path     string
	header   Header
	maxBytes int64
	keep     int

	file   *os.File
	enc    *cbor.Encoder
	size   int64
	err    error
	closed bool
}

// NewFileLogger opens path for appending, creating it if needed. A new or
// empty file starts with a Header.
func NewFileLogger(path string, opts ...FileOption) (*FileLogger, error) {
	l := &FileLogger{path: path}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.open(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *FileLogger) open() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	l.file = f
	l.size = info.Size()
	l.enc = encMode.NewEncoder(sizeCounter{w: f, n: &l.size})
	if l.size > 0 {
		return nil
	}

	h := l.header
	h.Magic = Magic
	h.Version = FormatVersion
	h.Created = time.Now()
	return l.enc.Encode(h)
}

// Log appends event and rotates the file when it has grown past the limit.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.file == nil {
		return
	}
	if err := l.enc.Encode(event); err != nil {
		l.fail(err)
		return
	}
	if l.maxBytes > 0 && l.size >= l.maxBytes {
		l.fail(l.rotate())
	}
}

func (l *FileLogger) rotate() error {
	err := l.file.Close()
	l.file = nil
	if err != nil {
		return err
	}

	if l.keep == 0 {
		if err := os.Remove(l.path); err != nil {
			return err
		}
		return l.open()
	}

	os.Remove(backupName(l.path, l.keep))
	for i := l.keep - 1; i >= 1; i-- {
		if err := os.Rename(backupName(l.path, i), backupName(l.path, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	if err := os.Rename(l.path, backupName(l.path, 1)); err != nil {
		return err
	}
	return l.open()
}

func (l *FileLogger) fail(err error) {
	if err != nil && l.err == nil {
		l.err = err
	}
}

// Err returns the first write or rotation failure, if any.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close closes the current file. Later calls to Log are ignored and later
// calls to Close return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func backupName(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}

type sizeCounter struct {
	w io.Writer
	n *int64
}

func (c sizeCounter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	*c.n += int64(n)
	return n, err
}

var _ Logger = (*FileLogger)(nil)

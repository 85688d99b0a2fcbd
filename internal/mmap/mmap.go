// Package mmap supplies read-only memory-mapped files as byte buffers for
// record views. The mapping owns the bytes: every view built over it is
// invalid after Close, which is the caller's lifetime contract to keep.
package mmap

import (
	"errors"
	"fmt"
	"os"
)

// ErrEmptyFile is returned when mapping a zero-length file.
var ErrEmptyFile = errors.New("mmap: empty file")

// Mapping is a read-only mapping of a whole file.
type Mapping struct {
	data []byte
	f    *os.File
}

// Open maps path read-only.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap: %w", err)
	}
	if fi.Size() == 0 {
		f.Close()
		return nil, ErrEmptyFile
	}
	data, err := mapFile(f, int(fi.Size()))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &Mapping{data: data, f: f}, nil
}

// Bytes returns the mapped file contents. The slice is only valid until
// Close and must be treated as immutable.
func (m *Mapping) Bytes() []byte { return m.data }

// Len returns the mapped size.
func (m *Mapping) Len() int { return len(m.data) }

// Close unmaps the file and releases the descriptor.
func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}
	err := unmapFile(m.data)
	m.data = nil
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}

package logging

import (
	"fmt"
	"os"
	"sync"
)

// rollingFile is an append-only log file that is moved aside to path.1 once the
// next record would push it past maxBytes. Older rolls shift up to path.keep and
// the oldest is dropped. With keep == 0 the file is simply started over.
//
// Records are never split: a single write larger than maxBytes lands alone in a
// fresh file.
type rollingFile struct {
	path     string
	maxBytes int64
	keep     int

	mu   sync.Mutex
	f    *os.File
	size int64
}

func openRollingFile(path string, maxBytes int64, keep int) (*rollingFile, error) {
	r := &rollingFile{path: path, maxBytes: maxBytes, keep: keep}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *rollingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}
	if r.size > 0 && r.size+int64(len(p)) > r.maxBytes {
		if err := r.roll(); err != nil {
			return 0, err
		}
	}
	n, err := r.f.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *rollingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

func (r *rollingFile) open() error {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	r.f = f
	r.size = info.Size()
	return nil
}

func (r *rollingFile) roll() error {
	if err := r.f.Close(); err != nil {
		return err
	}
	r.f = nil
	if r.keep == 0 {
		if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return r.open()
	}
	for i := r.keep - 1; i >= 1; i-- {
		if err := os.Rename(r.rolled(i), r.rolled(i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	if err := os.Rename(r.path, r.rolled(1)); err != nil {
		return err
	}
	return r.open()
}

func (r *rollingFile) rolled(i int) string {
	return fmt.Sprintf("%s.%d", r.path, i)
}

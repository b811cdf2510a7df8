// Package lock serializes concurrent mkpasswd processes appending to the
// same output file.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// ErrAlreadyLocked is returned when another mkpasswd process is writing to
// the same output file.
var ErrAlreadyLocked = errors.New("another mkpasswd command is writing to this file")

// Suffix is appended to the output path to name its lock file.
const Suffix = ".lock"

// Flocker abstracts the subset of flock.Flock used for advisory locking.
type Flocker interface {
	TryLock() (bool, error)
	Unlock() error
}

// Lock wraps a Flocker to provide fail-fast advisory locking.
type Lock struct {
	flocker Flocker
}

// New creates a Lock from the given Flocker.
func New(f Flocker) *Lock {
	return &Lock{flocker: f}
}

// NewFromPath creates a Lock backed by a file at the given path.
func NewFromPath(path string) *Lock {
	return New(flock.New(path))
}

// TryLock attempts a non-blocking lock acquisition.
func (l *Lock) TryLock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ok, err := l.flocker.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	if !ok {
		return ErrAlreadyLocked
	}
	return nil
}

// Unlock releases the advisory lock.
func (l *Lock) Unlock() error {
	if err := l.flocker.Unlock(); err != nil {
		return fmt.Errorf("releasing lock: %w", err)
	}
	return nil
}

// File is an output file opened for appending while its lock is held.
type File struct {
	*os.File
	lock *Lock
}

// OpenAppend locks path+Suffix and opens path for appending, creating it
// with owner-only permissions if needed.
func OpenAppend(ctx context.Context, path string) (*File, error) {
	return openAppend(ctx, path, NewFromPath(path+Suffix))
}

func openAppend(ctx context.Context, path string, l *Lock) (*File, error) {
	if err := l.TryLock(ctx); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		_ = l.Unlock()
		return nil, fmt.Errorf("opening output file: %w", err)
	}
	return &File{File: f, lock: l}, nil
}

// Close closes the file and releases its lock.
func (f *File) Close() error {
	closeErr := f.File.Close()
	unlockErr := f.lock.Unlock()
	if closeErr != nil {
		return fmt.Errorf("closing output file: %w", closeErr)
	}
	return unlockErr
}

package orchestrators

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff"
	"gopkg.in/yaml.v3"

	"loadbench/internal/shared/loggers"
)

const (
	lockPrefix        = "loadbench_"
	lockSuffix        = ".lock"
	lockRetryInterval = 2 * time.Second
)

// ErrLockHeld means a live process owns a lock file in the lock directory.
var ErrLockHeld = errors.New("another run holds the lock")

// lockInfo is the YAML body of a lock file. The PID lets a later run detect
// and reap locks left behind by a crashed process.
type lockInfo struct {
	PID       int       `yaml:"pid"`
	RunID     string    `yaml:"run_id"`
	CreatedAt time.Time `yaml:"created_at"`
}

// RunLock is a held process-level lock preventing concurrent runs on the
// same host from fighting over ports and target capacity.
type RunLock struct {
	path   string
	logger loggers.Logger
}

// AcquireLock scans dir for live lock files, reaps stale ones (dead PID),
// and creates this run's lock. With wait > 0 acquisition is retried on a
// constant backoff until the wait budget is spent.
func AcquireLock(dir, runID string, wait time.Duration, logger loggers.Logger) (*RunLock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating lock dir %q: %w", dir, err)
	}

	var lock *RunLock
	operation := func() error {
		acquired, err := tryAcquire(dir, runID, logger)
		if err != nil {
			if errors.Is(err, ErrLockHeld) {
				return err // retryable
			}
			return backoff.Permanent(err)
		}
		lock = acquired
		return nil
	}

	var policy backoff.BackOff = &backoff.StopBackOff{}
	if wait > 0 {
		policy = backoff.WithMaxRetries(backoff.NewConstantBackOff(lockRetryInterval), uint64(wait/lockRetryInterval))
	}
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return lock, nil
}

func tryAcquire(dir, runID string, logger loggers.Logger) (*RunLock, error) {
	if err := scanLocks(dir, logger); err != nil {
		return nil, err
	}

	file, err := os.CreateTemp(dir, lockPrefix+"*"+lockSuffix)
	if err != nil {
		return nil, fmt.Errorf("creating lock file: %w", err)
	}
	path := file.Name()

	body, err := yaml.Marshal(lockInfo{
		PID:       os.Getpid(),
		RunID:     runID,
		CreatedAt: time.Now().UTC(),
	})
	if err == nil {
		_, err = file.Write(body)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(path, 0644)
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("writing lock file %q: %w", path, err)
	}

	logger.Debug().Str(loggers.FieldArtifact, path).Msg("lock acquired")
	return &RunLock{path: path, logger: logger}, nil
}

// scanLocks returns ErrLockHeld if any lock in dir belongs to a live
// process. Locks whose PID no longer exists are removed. An unreadable lock
// counts as held: better to refuse a run than to trample one.
func scanLocks(dir string, logger loggers.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading lock dir %q: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, lockPrefix) || !strings.HasSuffix(name, lockSuffix) {
			continue
		}
		path := filepath.Join(dir, name)

		body, err := os.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str(loggers.FieldArtifact, path).Msg("unreadable lock file")
			return fmt.Errorf("%w: %s", ErrLockHeld, path)
		}
		var info lockInfo
		if err := yaml.Unmarshal(body, &info); err != nil {
			logger.Warn().Err(err).Str(loggers.FieldArtifact, path).Msg("malformed lock file")
			return fmt.Errorf("%w: %s", ErrLockHeld, path)
		}

		if pidAlive(info.PID) {
			logger.Warn().
				Int("pid", info.PID).
				Str(loggers.FieldRunID, info.RunID).
				Str(loggers.FieldArtifact, path).
				Msg("lock file present")
			return fmt.Errorf("%w: %s (pid %d)", ErrLockHeld, path, info.PID)
		}

		logger.Debug().
			Int("pid", info.PID).
			Str(loggers.FieldArtifact, path).
			Msg("removing stale lock of dead process")
		if err := os.Remove(path); err != nil {
			logger.Warn().Err(err).Str(loggers.FieldArtifact, path).Msg("failed to remove stale lock")
		}
	}
	return nil
}

// Release removes the lock file. Safe to call once the run is over.
func (l *RunLock) Release() {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		l.logger.Warn().Err(err).Str(loggers.FieldArtifact, l.path).Msg("failed to release lock")
		return
	}
	l.logger.Debug().Str(loggers.FieldArtifact, l.path).Msg("lock released")
}

// Path returns the lock file location, mainly for tests.
func (l *RunLock) Path() string { return l.path }

func pidAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM means the process exists but belongs to another user.
	return errors.Is(err, syscall.EPERM)
}

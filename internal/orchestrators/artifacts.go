package orchestrators

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"loadbench/internal/shared/loggers"
)

// NewArtifactDir resolves the run's artifact directory: the configured name
// under baseDir, or a fresh timestamped directory when no name is given.
func NewArtifactDir(baseDir, dirName string) (string, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return "", fmt.Errorf("creating artifacts base dir %q: %w", baseDir, err)
	}

	var dir string
	if dirName != "" {
		dir = filepath.Join(baseDir, dirName)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating artifacts dir %q: %w", dir, err)
		}
	} else {
		stamp := time.Now().Format("2006-01-02_15-04-05") + "."
		created, err := os.MkdirTemp(baseDir, stamp)
		if err != nil {
			return "", fmt.Errorf("creating artifacts dir: %w", err)
		}
		dir = created
	}

	if err := os.Chmod(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Abs(dir)
}

// ArtifactCollector gathers files produced during the run (config copy,
// generator logs) into the artifact directory at post-process time.
type ArtifactCollector struct {
	dir    string
	logger loggers.Logger

	mu    sync.Mutex
	files map[string]bool // path -> keep original
}

func NewArtifactCollector(dir string, logger loggers.Logger) *ArtifactCollector {
	return &ArtifactCollector{
		dir:    dir,
		logger: logger,
		files:  make(map[string]bool),
	}
}

// Dir returns the artifact directory.
func (c *ArtifactCollector) Dir() string { return c.dir }

// Add registers a file to collect. With keepOriginal the file is copied,
// otherwise moved.
func (c *ArtifactCollector) Add(path string, keepOriginal bool) {
	if path == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger.Debug().
		Str(loggers.FieldArtifact, path).
		Bool("keep", keepOriginal).
		Msg("registered artifact file")
	c.files[path] = keepOriginal
}

// Collect moves or copies every registered file into the artifact dir with
// 0644 permissions. Failures are accumulated; one bad file does not stop
// the rest.
func (c *ArtifactCollector) Collect() error {
	c.mu.Lock()
	files := make(map[string]bool, len(c.files))
	for path, keep := range c.files {
		files[path] = keep
	}
	c.mu.Unlock()

	var errs *multierror.Error
	for path, keep := range files {
		if err := c.collectFile(path, keep); err != nil {
			c.logger.Warn().Err(err).Str(loggers.FieldArtifact, path).Msg("failed to collect artifact")
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

func (c *ArtifactCollector) collectFile(path string, keepOriginal bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			c.logger.Warn().Str(loggers.FieldArtifact, path).Msg("artifact file not found")
			return nil
		}
		return err
	}

	dest := filepath.Join(c.dir, filepath.Base(path))
	if dest == path {
		// Already produced inside the artifact dir.
		return os.Chmod(dest, 0644)
	}
	if _, err := os.Stat(dest); err == nil {
		c.logger.Warn().Str(loggers.FieldArtifact, dest).Msg("artifact already exists, skipping")
		return nil
	}

	if keepOriginal {
		if err := copyFile(path, dest); err != nil {
			return err
		}
	} else if err := os.Rename(path, dest); err != nil {
		// Rename fails across filesystems; fall back to copy+remove.
		if err := copyFile(path, dest); err != nil {
			return err
		}
		_ = os.Remove(path)
	}

	return os.Chmod(dest, 0644)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

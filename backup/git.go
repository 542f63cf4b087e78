/*
Package backup commits the data directory to a local git repository.

PURPOSE:
The tracker's records are a handful of small JSON and YAML files. A git
repository in the data directory gives free history and, when an origin
remote is configured, off-machine copies. Backup is an explicit user
action, never automatic.

BEHAVIOR:
  - the repository is initialized on first use
  - every file in the data directory is staged
  - the commit message carries a timestamp
  - a clean tree is reported, not treated as an error
  - push happens only when an origin remote exists

SEE ALSO:
  - session: dispatches backup requests to this package
*/
package backup

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoDataDir is returned when the backup target does not exist.
var ErrNoDataDir = errors.New("backup: data directory does not exist")

// Git runs git against a data directory. The zero value is usable.
type Git struct {
	// run executes git with the given arguments inside dir and returns
	// the combined output. Replaced in tests.
	run func(dir string, args ...string) (string, error)

	// Clock supplies commit timestamps. Nil means time.Now.
	Clock func() time.Time
}

func NewGit() *Git {
	return &Git{}
}

func (g *Git) exec(dir string, args ...string) (string, error) {
	if g.run != nil {
		return g.run(dir, args...)
	}
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (g *Git) now() time.Time {
	if g.Clock != nil {
		return g.Clock()
	}
	return time.Now()
}

// SetRemote points the origin remote at url, creating the repository and
// the remote as needed.
func (g *Git) SetRemote(dir, url string) error {
	if _, err := os.Stat(dir); err != nil {
		return ErrNoDataDir
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		if out, err := g.exec(dir, "init"); err != nil {
			return fmt.Errorf("git init: %w: %s", err, strings.TrimSpace(out))
		}
	}
	if _, err := g.exec(dir, "remote", "get-url", "origin"); err != nil {
		if out, err := g.exec(dir, "remote", "add", "origin", url); err != nil {
			return fmt.Errorf("git remote add: %w: %s", err, strings.TrimSpace(out))
		}
		return nil
	}
	if out, err := g.exec(dir, "remote", "set-url", "origin", url); err != nil {
		return fmt.Errorf("git remote set-url: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// Backup stages and commits everything under dir, pushing afterwards if
// an origin remote is configured. It returns a one-line summary for the
// status bar.
func (g *Git) Backup(dir string) (string, error) {
	if _, err := os.Stat(dir); err != nil {
		return "", ErrNoDataDir
	}

	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		if out, err := g.exec(dir, "init"); err != nil {
			return "", fmt.Errorf("git init: %w: %s", err, strings.TrimSpace(out))
		}
	}

	if out, err := g.exec(dir, "add", "-A"); err != nil {
		return "", fmt.Errorf("git add: %w: %s", err, strings.TrimSpace(out))
	}

	msg := "backup " + g.now().Format("2006-01-02 15:04:05")
	out, err := g.exec(dir, "commit", "-m", msg)
	if err != nil {
		// a clean tree makes git commit exit nonzero
		if strings.Contains(out, "nothing to commit") {
			return "backup: nothing to commit", nil
		}
		return "", fmt.Errorf("git commit: %w: %s", err, strings.TrimSpace(out))
	}

	if _, err := g.exec(dir, "remote", "get-url", "origin"); err != nil {
		return "backup committed (no origin remote, not pushed)", nil
	}
	if out, err := g.exec(dir, "push", "origin", "HEAD"); err != nil {
		return "", fmt.Errorf("git push: %w: %s", err, strings.TrimSpace(out))
	}
	return "backup committed and pushed", nil
}

// Package gitops wraps the git subprocess operations the tool needs: change
// snapshots, the add/commit/push sequence, and remote URL derivation for
// opening the repository's web pages. Authentication is git's problem; the
// tool never touches credentials.
package gitops

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/logging"
)

// Change is one porcelain status line split into its two-letter code and
// the affected path.
type Change struct {
	Code string `json:"code"`
	Path string `json:"path"`
}

// Client runs git with a fixed working directory (the repo root).
type Client struct {
	dir string
	log *logrus.Entry
}

func New(dir string) *Client {
	return &Client{dir: dir, log: logging.NewLogger("git")}
}

func (c *Client) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	c.log.WithField("args", strings.Join(args, " ")).Debug("running git")
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %s", args[0], msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

// Status returns the working tree changes. An empty slice means a clean
// tree.
func (c *Client) Status() ([]Change, error) {
	out, err := c.run("status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return ParsePorcelain(out), nil
}

// ParsePorcelain splits `git status --porcelain` output into changes.
// Lines too short to carry a code and path are dropped.
func ParsePorcelain(out string) []Change {
	changes := []Change{}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if len(line) < 4 {
			continue
		}
		changes = append(changes, Change{Code: line[:2], Path: line[3:]})
	}
	return changes
}

// AddAll stages every change, tracked or not.
func (c *Client) AddAll() error {
	_, err := c.run("add", "-A")
	return err
}

func (c *Client) Commit(message string) error {
	_, err := c.run("commit", "-m", message)
	return err
}

// Push sends the current branch upstream. Failures carry git's stderr so
// the user sees the rejection reason.
func (c *Client) Push() error {
	_, err := c.run("push")
	return err
}

// RemoteURL returns the configured URL of the origin remote.
func (c *Client) RemoteURL() (string, error) {
	out, err := c.run("config", "--get", "remote.origin.url")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ActionsURL returns the GitHub Actions page of the origin remote, where
// the firmware build artifacts land.
func (c *Client) ActionsURL() (string, error) {
	remote, err := c.RemoteURL()
	if err != nil {
		return "", err
	}
	web := WebURL(remote)
	if web == "" {
		return "", fmt.Errorf("origin remote has no usable URL")
	}
	return web + "/actions", nil
}

// WebURL converts a git remote URL to its https web form. SSH-style
// addresses (git@host:owner/repo.git) become https://host/owner/repo; a
// trailing .git is dropped either way.
func WebURL(remote string) string {
	remote = strings.TrimSpace(remote)
	if strings.HasPrefix(remote, "git@") {
		if host, path, ok := strings.Cut(strings.TrimPrefix(remote, "git@"), ":"); ok {
			remote = "https://" + host + "/" + path
		}
	}
	return strings.TrimSuffix(remote, ".git")
}

// Package version carries build metadata and checks GitHub for newer releases.
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Repo is the GitHub repository consulted for release checks.
const Repo = "AlexK-Notable/zmk-config-offsetkey"

const githubAPI = "https://api.github.com"

// Checker queries the GitHub releases API.
type Checker struct {
	client  *http.Client
	baseURL string
}

func NewChecker() *Checker {
	return &Checker{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: githubAPI,
	}
}

// Latest returns the tag name of the newest published release.
func (c *Checker) Latest(repo string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, repo)
	resp, err := c.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to query releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to query releases: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode release response: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("release response has no tag name")
	}
	return release.TagName, nil
}

// Compare reports whether latest is newer than current. Development builds
// carry non-semver versions and cannot be compared.
func Compare(current, latest string) (bool, error) {
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("cannot compare version %q: %w", current, err)
	}
	lat, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("cannot compare version %q: %w", latest, err)
	}
	return lat.GreaterThan(cur), nil
}

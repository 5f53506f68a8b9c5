package storage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/manifest"
)

const defaultGitHubAPI = "https://api.github.com"

// GitHubSource reads manifests committed to a GitHub repository through the contents API.
// The manifest of an environment is <dir>/<environment>.hcl at the configured ref.
type GitHubSource struct {
	apiURL      string
	owner       string
	repo        string
	dir         string
	ref         string
	client      *http.Client
	log         *slog.Logger
	locationURI string
}

// GitHubContent represents a file object from GitHub's contents API
type GitHubContent struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
}

// NewGitHubSource creates a new GitHub manifest source. An empty ref uses the default branch.
func NewGitHubSource(owner, repo, dir, ref string, log *slog.Logger) *GitHubSource {
	dir = strings.Trim(dir, "/")
	uri := fmt.Sprintf("github://%s/%s", owner, repo)
	if dir != "" {
		uri += "/" + dir
	}
	if ref != "" {
		uri += "?ref=" + url.QueryEscape(ref)
	}

	return &GitHubSource{
		apiURL:      defaultGitHubAPI,
		owner:       owner,
		repo:        repo,
		dir:         dir,
		ref:         ref,
		client:      &http.Client{Timeout: 30 * time.Second},
		log:         log,
		locationURI: uri,
	}
}

// WithAPIURL points the source at a different API endpoint, e.g. GitHub Enterprise.
func (s *GitHubSource) WithAPIURL(apiURL string) *GitHubSource {
	s.apiURL = strings.TrimSuffix(apiURL, "/")
	return s
}

// Fetch retrieves the manifest of env from the repository.
func (s *GitHubSource) Fetch(ctx context.Context, env interfaces.Environment) ([]byte, error) {
	filePath := path.Join(s.dir, manifest.FileName(env))

	content, err := s.fetchContent(ctx, filePath)
	if err != nil {
		return nil, err
	}

	if content.Type != "" && content.Type != "file" {
		return nil, fmt.Errorf("%s is a %s, not a file", filePath, content.Type)
	}
	if content.Encoding != "base64" {
		return nil, fmt.Errorf("unexpected content encoding: %s", content.Encoding)
	}

	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}

	s.log.Debug("Fetched manifest from GitHub",
		slog.String("path", filePath),
		slog.String("sha", content.SHA),
		slog.Int("size", len(data)))

	return data, nil
}

// Available checks if the repository is accessible.
func (s *GitHubSource) Available(ctx context.Context) bool {
	reqURL := fmt.Sprintf("%s/repos/%s/%s", s.apiURL, s.owner, s.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		s.log.Debug("Failed to create request", "err", err)
		return false
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debug("GitHub source unavailable", "err", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Debug("GitHub source unavailable", slog.String("status", resp.Status))
		return false
	}

	return true
}

// Name returns a unique identifier for this source.
func (s *GitHubSource) Name() string {
	return fmt.Sprintf("github-%s-%s", s.owner, s.repo)
}

// LocationURI returns the URI that identifies this source.
func (s *GitHubSource) LocationURI() string {
	return s.locationURI
}

func (s *GitHubSource) fetchContent(ctx context.Context, filePath string) (*GitHubContent, error) {
	reqURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.apiURL, s.owner, s.repo, filePath)
	if s.ref != "" {
		reqURL += "?ref=" + url.QueryEscape(s.ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrManifestNotFound, filePath)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GitHub API error: %s, %s", resp.Status, string(body))
	}

	var content GitHubContent
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}

	return &content, nil
}

package recipes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-github/v72/github"
)

// LatestVersion requests the newest recipe set a source offers.
const LatestVersion = "latest"

// ErrUpdateFetch is returned when a recipe set cannot be fetched or parsed.
var ErrUpdateFetch = errors.New("failed to fetch update recipes")

// Source provides versioned recipe sets.
type Source interface {
	// ResolveVersion maps a requested recipe set version to a concrete one.
	// An empty or "latest" request selects the newest set.
	ResolveVersion(ctx context.Context, requested string) (string, error)
	// ReadFile reads a file of a recipe set.
	ReadFile(ctx context.Context, version, name string) ([]byte, error)
}

// DirSource reads recipe sets from <Root>/<version>/.
type DirSource struct {
	Root string
}

// NewDirSource creates a source reading recipe sets below root.
func NewDirSource(root string) *DirSource {
	return &DirSource{Root: root}
}

// ResolveVersion returns requested when its directory exists. "latest" selects the
// highest semver directory name.
func (s *DirSource) ResolveVersion(_ context.Context, requested string) (string, error) {
	if requested != "" && requested != LatestVersion {
		info, err := os.Stat(filepath.Join(s.Root, requested))
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("%w: recipe set %s not found in %s", ErrUpdateFetch, requested, s.Root)
		}

		return requested, nil
	}

	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return "", fmt.Errorf("%w: failed to list %s: %w", ErrUpdateFetch, s.Root, err)
	}

	var (
		latest    string
		latestVer *semver.Version
	)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		version, parseErr := semver.NewVersion(entry.Name())
		if parseErr != nil {
			continue
		}

		if latestVer == nil || version.GreaterThan(latestVer) {
			latest, latestVer = entry.Name(), version
		}
	}

	if latestVer == nil {
		return "", fmt.Errorf("%w: no recipe sets in %s", ErrUpdateFetch, s.Root)
	}

	return latest, nil
}

// ReadFile reads <Root>/<version>/<name>. Names must stay inside the set directory.
func (s *DirSource) ReadFile(_ context.Context, version, name string) ([]byte, error) {
	if !filepath.IsLocal(version) || !filepath.IsLocal(name) {
		return nil, fmt.Errorf("%w: invalid recipe path %s/%s", ErrUpdateFetch, version, name)
	}

	//nolint:gosec // path is validated to stay below the recipe root
	data, err := os.ReadFile(filepath.Join(s.Root, version, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFetch, err)
	}

	return data, nil
}

// GitHubSource reads recipe sets from a GitHub repository. Versions are release
// tags; files are read from Dir at the tag.
type GitHubSource struct {
	Client *github.Client
	Owner  string
	Repo   string
	Dir    string
}

// NewGitHubSource creates a source for owner/repo. A non-empty token authenticates
// the requests.
func NewGitHubSource(httpClient *http.Client, token, owner, repo, dir string) *GitHubSource {
	client := github.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &GitHubSource{Client: client, Owner: owner, Repo: repo, Dir: dir}
}

// ResolveVersion returns requested as a tag, or the tag of the latest release.
func (s *GitHubSource) ResolveVersion(ctx context.Context, requested string) (string, error) {
	if requested != "" && requested != LatestVersion {
		return requested, nil
	}

	release, _, err := s.Client.Repositories.GetLatestRelease(ctx, s.Owner, s.Repo)
	if err != nil {
		return "", fmt.Errorf("%w: failed to get latest release of %s/%s: %w", ErrUpdateFetch, s.Owner, s.Repo, err)
	}

	tag := release.GetTagName()
	if tag == "" {
		return "", fmt.Errorf("%w: latest release of %s/%s has no tag", ErrUpdateFetch, s.Owner, s.Repo)
	}

	return tag, nil
}

// ReadFile reads Dir/name at the version tag.
func (s *GitHubSource) ReadFile(ctx context.Context, version, name string) ([]byte, error) {
	filePath := path.Join(s.Dir, name)

	file, _, _, err := s.Client.Repositories.GetContents(
		ctx,
		s.Owner,
		s.Repo,
		filePath,
		&github.RepositoryContentGetOptions{Ref: version},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get %s@%s: %w", ErrUpdateFetch, filePath, version, err)
	}

	if file == nil {
		return nil, fmt.Errorf("%w: %s@%s is a directory", ErrUpdateFetch, filePath, version)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s@%s: %w", ErrUpdateFetch, filePath, version, err)
	}

	return []byte(content), nil
}

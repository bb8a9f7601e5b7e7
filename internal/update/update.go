// Package update checks GitHub for a newer etowers release.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

const (
	defaultRepo = "appengine-ltd/electron-towers"
	githubAPI   = "https://api.github.com"

	maxReleaseBytes = 1 << 20
)

var repoPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// Status is the outcome of a release check.
type Status struct {
	Current   string `json:"current" yaml:"current"`
	Latest    string `json:"latest" yaml:"latest"`
	Available bool   `json:"available" yaml:"available"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
}

func (s Status) String() string {
	switch {
	case s.Available:
		return fmt.Sprintf("Update available: v%s → v%s (%s)", s.Current, s.Latest, s.URL)
	case s.Current == s.Latest:
		return fmt.Sprintf("Up to date (v%s).", s.Latest)
	default:
		return fmt.Sprintf("Latest release is v%s.", s.Latest)
	}
}

// Checker queries the latest release of a repository.
type Checker struct {
	Repo         string
	APIBase      string
	Client       *http.Client
	AllowedHosts map[string]struct{}
}

// NewChecker returns a checker aimed at the public etowers repository.
func NewChecker() *Checker {
	return &Checker{
		Repo:         defaultRepo,
		APIBase:      githubAPI,
		Client:       &http.Client{Timeout: 20 * time.Second},
		AllowedHosts: map[string]struct{}{"api.github.com": {}},
	}
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check compares current against the latest published release. Development
// builds ("dev" or empty) always report the latest tag without an update.
func (c *Checker) Check(ctx context.Context, current string) (Status, error) {
	rel, err := c.fetchLatestRelease(ctx)
	if err != nil {
		return Status{}, err
	}
	st := Status{
		Current: strings.TrimPrefix(current, "v"),
		Latest:  strings.TrimPrefix(rel.TagName, "v"),
		URL:     rel.HTMLURL,
	}
	if st.Current == "" || st.Current == "dev" {
		return st, nil
	}

	cur, err := semver.NewVersion(st.Current)
	if err != nil {
		return st, errors.Wrapf(err, "current version %q", current)
	}
	latest, err := semver.NewVersion(st.Latest)
	if err != nil {
		return st, errors.Wrapf(err, "release tag %q", rel.TagName)
	}
	st.Available = latest.GreaterThan(cur)
	return st, nil
}

func (c *Checker) fetchLatestRelease(ctx context.Context) (*githubRelease, error) {
	if err := validateRepo(c.Repo); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimSuffix(c.APIBase, "/"), c.Repo)
	if err := validateHTTPSURL(endpoint, c.AllowedHosts); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build release request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	// #nosec G107 -- URL scheme and host are validated above.
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "github latest release")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errors.Newf("github latest release: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	var rel githubRelease
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReleaseBytes)).Decode(&rel); err != nil {
		return nil, errors.Wrap(err, "decode release")
	}
	if rel.TagName == "" {
		return nil, errors.New("latest release has no tag_name")
	}
	return &rel, nil
}

func validateRepo(repo string) error {
	if !repoPattern.MatchString(repo) {
		return errors.Newf("invalid repository format: %q", repo)
	}
	return nil
}

func validateHTTPSURL(raw string, allowedHosts map[string]struct{}) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return errors.Wrap(err, "parse url")
	}
	if !strings.EqualFold(parsed.Scheme, "https") {
		return errors.Newf("unsupported URL scheme: %s", parsed.Scheme)
	}
	host := strings.ToLower(parsed.Hostname())
	if _, ok := allowedHosts[host]; !ok {
		return errors.Newf("unsupported URL host: %s", host)
	}
	return nil
}

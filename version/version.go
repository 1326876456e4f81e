package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/animeverse/animeverse/filesystem"
	"github.com/animeverse/animeverse/log"
	"github.com/animeverse/animeverse/network"
	"github.com/animeverse/animeverse/util"
	"github.com/animeverse/animeverse/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the GitHub endpoint describing the latest release.
var ReleasesURL = "https://api.github.com/repos/animeverse/animeverse/releases/latest"

const cacheLifetime = 2 * 24 * time.Hour

func cachePath() string {
	return filepath.Join(where.Cache(), "version.json")
}

func newCacher() *gache.Cache[string] {
	return gache.New[string](&gache.Options{
		Path:       cachePath(),
		Lifetime:   cacheLifetime,
		FileSystem: &filesystem.GacheFs{},
	})
}

// Latest returns the newest released version without the leading v.
// The answer is cached for two days.
func Latest(ctx context.Context) (string, error) {
	cacher := newCacher()

	cached, expired, err := cacher.Get()
	if err != nil {
		log.Warnf("reading version cache: %v", err)
	} else if !expired && cached != "" {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("checking latest release: %w", err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checking latest release: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decoding latest release: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if err := cacher.Set(latest); err != nil {
		log.Warnf("writing version cache: %v", err)
	}
	return latest, nil
}

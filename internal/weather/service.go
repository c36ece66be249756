// Weather service: resolves a station name for a (region, city) pair and
// keeps the corresponding EPW archive cached locally, downloading it on
// first use. The download cache is guarded against concurrent batch workers
// resolving the same station at once.

package weather

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultArchiveURL is the public archive the EPW bundles download from.
const DefaultArchiveURL = "https://climate.onebuilding.org/WMO_Region_4_North_and_Central_America/CAN_Canada"

// Service implements the translation core's weather resolver.
type Service struct {
	cacheDir   string
	archiveURL string
	client     *http.Client

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithArchiveURL overrides the download archive base URL. An empty URL
// disables downloading; lookups then only consult the station table and the
// local cache.
func WithArchiveURL(url string) Option {
	return func(s *Service) { s.archiveURL = url }
}

// WithClient overrides the HTTP client used for downloads.
func WithClient(client *http.Client) Option {
	return func(s *Service) { s.client = client }
}

// NewService returns a resolver caching weather files under cacheDir.
func NewService(cacheDir string, opts ...Option) *Service {
	s := &Service{
		cacheDir:   cacheDir,
		archiveURL: DefaultArchiveURL,
		client:     &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the station name for a region and city, ensuring the
// station's weather archive is present in the local cache.
func (s *Service) Resolve(region, city string) (string, error) {
	station, ok := Station(region, city)
	if !ok {
		return "", fmt.Errorf("no weather station for %s / %s", region, city)
	}
	if s.archiveURL == "" {
		return station, nil
	}
	if err := s.ensureCached(station); err != nil {
		return "", fmt.Errorf("weather data for %s: %w", station, err)
	}
	return station, nil
}

// ensureCached downloads the station archive unless it is already on disk.
func (s *Service) ensureCached(station string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := filepath.Join(s.cacheDir, station+".zip")
	if _, err := os.Stat(target); err == nil {
		return nil
	}

	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return err
	}

	url := s.archiveURL + "/" + station + ".zip"
	resp, err := s.client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: HTTP %d", url, resp.StatusCode)
	}

	// Write through a temp file so a failed download never leaves a
	// truncated archive behind.
	tmp, err := os.CreateTemp(s.cacheDir, station+".*.part")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}

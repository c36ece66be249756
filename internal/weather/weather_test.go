package weather

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationLookupNormalizes(t *testing.T) {
	station, ok := Station("Ontario", " ottawa ")
	require.True(t, ok)
	assert.Equal(t, "CAN_ON_Ottawa.Intl.AP.716280_CWEC2020", station)

	_, ok = Station("ONTARIO", "ATLANTIS")
	assert.False(t, ok)
	_, ok = Station("NARNIA", "OTTAWA")
	assert.False(t, ok)
}

func TestResolveWithoutArchive(t *testing.T) {
	svc := NewService(t.TempDir(), WithArchiveURL(""))

	station, err := svc.Resolve("QUEBEC", "MONTREAL")
	require.NoError(t, err)
	assert.Equal(t, "CAN_QC_Montreal-Trudeau.Intl.AP.716270_CWEC2020", station)

	_, err = svc.Resolve("QUEBEC", "ATLANTIS")
	assert.Error(t, err)
}

func TestResolveDownloadsAndCaches(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("zip-bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	svc := NewService(dir, WithArchiveURL(server.URL), WithClient(server.Client()))

	station, err := svc.Resolve("ONTARIO", "TORONTO")
	require.NoError(t, err)

	cached := filepath.Join(dir, station+".zip")
	data, err := os.ReadFile(cached)
	require.NoError(t, err)
	assert.Equal(t, "zip-bytes", string(data))
	assert.Equal(t, 1, hits)

	// Second resolve hits the cache, not the archive.
	_, err = svc.Resolve("ONTARIO", "TORONTO")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestResolveDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	svc := NewService(t.TempDir(), WithArchiveURL(server.URL), WithClient(server.Client()))
	_, err := svc.Resolve("ONTARIO", "TORONTO")
	assert.Error(t, err)
}

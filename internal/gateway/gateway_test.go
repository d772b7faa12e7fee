package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastebot/internal/platform/logger"
)

func newEchoUpstream(t *testing.T, tag string, paths *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if paths != nil {
			*paths = append(*paths, r.URL.Path)
		}
		w.Header().Set("X-Upstream", tag)
		_, _ = w.Write([]byte(r.URL.Path))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRewriteStripsPrefixAndSubstitutes(t *testing.T) {
	var seen []string
	upstream := newEchoUpstream(t, "waste", &seen)

	proxy, err := New(DefaultRoutes(), map[string][]string{
		"waste-service": {upstream.URL},
	}, logger.New())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/waste/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, seen, 1)
	assert.Equal(t, "/api/wastes/stats", seen[0])
}

func TestBarePrefixLeavesNoTrailingSlash(t *testing.T) {
	var seen []string
	upstream := newEchoUpstream(t, "waste", &seen)

	proxy, err := New(DefaultRoutes(), map[string][]string{
		"waste-service": {upstream.URL},
	}, logger.New())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/waste", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, seen, 1)
	assert.Equal(t, "/api/wastes", seen[0])
}

func TestLongestPrefixWins(t *testing.T) {
	var shortSeen, longSeen []string
	short := newEchoUpstream(t, "short", &shortSeen)
	long := newEchoUpstream(t, "long", &longSeen)

	routes := []Route{
		{Prefix: "/waste", Service: "short", Rewrite: "/api/wastes/${segment}"},
		{Prefix: "/waste/special", Service: "long", Rewrite: "/api/special/${segment}"},
	}
	proxy, err := New(routes, map[string][]string{
		"short": {short.URL},
		"long":  {long.URL},
	}, logger.New())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/waste/special/42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, shortSeen)
	require.Len(t, longSeen, 1)
	assert.Equal(t, "/api/special/42", longSeen[0])
}

func TestUnmatchedPrefixIs404(t *testing.T) {
	proxy, err := New(DefaultRoutes(), map[string][]string{}, logger.New())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nothing/here", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoundRobinUpstreamSelection(t *testing.T) {
	first := newEchoUpstream(t, "one", nil)
	second := newEchoUpstream(t, "two", nil)

	proxy, err := New(DefaultRoutes(), map[string][]string{
		"waste-service": {first.URL, second.URL},
	}, logger.New())
	require.NoError(t, err)

	var tags []string
	for range 4 {
		rec := httptest.NewRecorder()
		proxy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/waste/stats", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		tags = append(tags, rec.Header().Get("X-Upstream"))
	}
	assert.Equal(t, []string{"one", "two", "one", "two"}, tags)
}

func TestMissingUpstreamIs502(t *testing.T) {
	proxy, err := New(DefaultRoutes(), map[string][]string{}, logger.New())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/waste/stats", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

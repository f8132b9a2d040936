package swipe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mingl_server/models"
	"mingl_server/swipe"
)

// photoServer counts photo fetches per path.
type photoServer struct {
	*httptest.Server
	mu   sync.Mutex
	hits map[string]int
}

func newPhotoServer() *photoServer {
	ps := &photoServer{hits: make(map[string]int)}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.mu.Lock()
		ps.hits[r.URL.Path]++
		ps.mu.Unlock()
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	return ps
}

func (ps *photoServer) count(path string) int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.hits[path]
}

func photoCard(ps *photoServer, id string, photoCount int) models.CandidateCard {
	c := card(id)
	for i := 0; i < photoCount; i++ {
		n := strconv.Itoa(i + 1)
		c.Photos = append(c.Photos, models.Photo{
			PhotoID: id + "-p" + n,
			URL:     ps.URL + "/" + id + "/p" + n,
		})
	}
	return c
}

func TestPrefetcherWarmsFirstThreePhotosExactlyOnce(t *testing.T) {
	server := newPhotoServer()
	defer server.Close()

	prefetcher := swipe.NewPrefetcher(server.Client())
	c := photoCard(server, "u1", 4)

	prefetcher.WarmCard(context.Background(), c)
	prefetcher.WarmCard(context.Background(), c)

	require.Eventually(t, func() bool {
		return server.count("/u1/p1") >= 1 &&
			server.count("/u1/p2") >= 1 &&
			server.count("/u1/p3") >= 1
	}, 2*time.Second, 10*time.Millisecond)

	// Give any stray fetch a moment to land before the negative checks.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, server.count("/u1/p1"), "warmed URLs are fetched once")
	assert.Equal(t, 1, server.count("/u1/p2"), "warmed URLs are fetched once")
	assert.Equal(t, 1, server.count("/u1/p3"), "warmed URLs are fetched once")
	assert.Equal(t, 0, server.count("/u1/p4"), "only the first three photos are warmed")
}

func TestPrefetcherSkipsEmptyURLs(t *testing.T) {
	server := newPhotoServer()
	defer server.Close()

	prefetcher := swipe.NewPrefetcher(server.Client())
	c := card("u1")
	c.Photos = []models.Photo{
		{PhotoID: "u1-p1", URL: ""},
		{PhotoID: "u1-p2", URL: server.URL + "/u1/p2"},
	}

	prefetcher.WarmCard(context.Background(), c)

	require.Eventually(t, func() bool {
		return server.count("/u1/p2") == 1
	}, 2*time.Second, 10*time.Millisecond)
}

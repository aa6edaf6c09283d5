package watch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solverops/rangectl/pkg/models"
)

// stubReader serves a mutable session summary.
type stubReader struct {
	mu      sync.Mutex
	summary models.SessionSummary
	missing bool
}

func (r *stubReader) Get(id string) (models.SessionSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.missing || id != r.summary.SessionID {
		return models.SessionSummary{}, errSessionNotFound
	}
	return r.summary, nil
}

func (r *stubReader) setStatus(status models.SessionStatus, lastError string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.Status = status
	r.summary.LastError = lastError
}

var errSessionNotFound = errors.New("session not found")

func newWatchTest(t *testing.T, reader *stubReader) (*httptest.Server, func(id string) (*websocket.Conn, *http.Response, error)) {
	t.Helper()

	server := NewServer(reader)
	server.interval = 10 * time.Millisecond

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/sessions/")
		id = strings.TrimSuffix(id, "/watch")
		server.HandleWatch(w, r, id)
	}))
	t.Cleanup(ts.Close)

	dial := func(id string) (*websocket.Conn, *http.Response, error) {
		url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sessions/" + id + "/watch"
		return websocket.DefaultDialer.Dial(url, nil)
	}
	return ts, dial
}

func TestWatchUnknownSessionRejected(t *testing.T) {
	reader := &stubReader{missing: true}
	_, dial := newWatchTest(t, reader)

	_, resp, err := dial("unknown")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWatchStreamsTransitionsUntilTerminal(t *testing.T) {
	reader := &stubReader{summary: models.SessionSummary{
		SessionID: "abc",
		Status:    models.StatusLaunching,
	}}
	_, dial := newWatchTest(t, reader)

	conn, _, err := dial("abc")
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))

	var event StatusEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, models.StatusLaunching, event.Status)

	reader.setStatus(models.StatusActive, "")
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, models.StatusActive, event.Status)

	reader.setStatus(models.StatusError, "navigation timeout")
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, models.StatusError, event.Status)
	assert.Equal(t, "navigation timeout", event.LastError)

	// Terminal status ends the stream.
	err = conn.ReadJSON(&event)
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func TestWatchSkipsUnchangedStatus(t *testing.T) {
	reader := &stubReader{summary: models.SessionSummary{
		SessionID: "abc",
		Status:    models.StatusLaunching,
	}}
	_, dial := newWatchTest(t, reader)

	conn, _, err := dial("abc")
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(time.Second))

	var event StatusEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, models.StatusLaunching, event.Status)

	// No transition: no further event arrives before the deadline.
	err = conn.ReadJSON(&event)
	require.Error(t, err)
	assert.False(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

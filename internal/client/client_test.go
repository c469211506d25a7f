package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/leapstack-labs/askql/internal/client/clienttest"
	"github.com/leapstack-labs/askql/internal/result"
	"github.com/leapstack-labs/askql/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*clienttest.Server, *Client) {
	t.Helper()
	srv := clienttest.New(t)
	cl := New(
		WithBaseURL(srv.URL+"/"),
		WithHTTPClient(srv.Client()),
		WithLogger(testutil.NewTestLogger(t)),
	)
	return srv, cl
}

func TestNew_Defaults(t *testing.T) {
	cl := New()
	assert.Equal(t, DefaultBaseURL, cl.BaseURL)
	assert.NotNil(t, cl.HTTPClient)
	assert.NotNil(t, cl.Logger)

	cl = New(WithBaseURL("  "), WithHTTPClient(nil), WithLogger(nil))
	assert.Equal(t, DefaultBaseURL, cl.BaseURL, "blank base URL keeps the default")
	assert.NotNil(t, cl.HTTPClient)
	assert.NotNil(t, cl.Logger)
}

func TestGenerateSQL(t *testing.T) {
	srv, cl := newTestClient(t)
	srv.Generates("SELECT * FROM users")

	got, err := cl.GenerateSQL(context.Background(), "all users")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users", got)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, clienttest.RouteGenerate, calls[0].Route)
	assert.Equal(t, "all users", calls[0].Prompt)
	assert.Equal(t, "application/json", calls[0].Header.Get("Content-Type"))
	assert.Equal(t, "askql", calls[0].Header.Get("User-Agent"))
	assert.Empty(t, calls[0].Header.Get("Authorization"))
}

func TestGenerateSQL_MissingFieldIsEmpty(t *testing.T) {
	srv, cl := newTestClient(t)
	srv.Handle(clienttest.RouteGenerate, func(string) clienttest.Response {
		return clienttest.Response{Status: http.StatusOK, Body: map[string]string{}}
	})

	got, err := cl.GenerateSQL(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunSQL(t *testing.T) {
	srv, cl := newTestClient(t)
	srv.Runs(`[
		{"statement": "SELECT id, name FROM users", "rows": [{"id": 1, "name": "Ada"}]},
		{"statement": "DROP TABLE x", "error": "no such table"}
	]`)

	entries, err := cl.RunSQL(context.Background(), "SELECT id, name FROM users; DROP TABLE x")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, result.KindRowSet, entries[0].Kind())
	assert.Equal(t, []string{"id", "name"}, entries[0].Columns())
	assert.Equal(t, result.KindError, entries[1].Kind())

	assert.Equal(t, "SELECT id, name FROM users; DROP TABLE x", srv.Calls()[0].Query)
}

func TestRunSQL_EmptyQueryIsSent(t *testing.T) {
	srv, cl := newTestClient(t)
	srv.Runs(`[]`)

	entries, err := cl.RunSQL(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.Equal(t, 1, srv.CallCount(clienttest.RouteRun))
	assert.Empty(t, srv.Calls()[0].Query)
}

func TestExplain(t *testing.T) {
	tests := []struct {
		name string
		body any
		want result.Explanation
	}{
		{"text", "Counts rows.", result.TextExplanation("Counts rows.")},
		{"points", []string{"Reads users", "Counts rows"}, result.ListExplanation("Reads users", "Counts rows")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, cl := newTestClient(t)
			srv.Explains(tt.body)

			got, err := cl.Explain(context.Background(), "SELECT COUNT(*) FROM users")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "SELECT COUNT(*) FROM users", srv.Calls()[0].Query)
		})
	}
}

func TestNon2xxIsAPIError(t *testing.T) {
	srv, cl := newTestClient(t)
	srv.Fails(clienttest.RouteGenerate, http.StatusInternalServerError, "model unavailable")

	_, err := cl.GenerateSQL(context.Background(), "x")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "model unavailable", apiErr.Message)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, 1, srv.CallCount(clienttest.RouteGenerate), "no retries")
}

func TestUnconfiguredRouteIs404(t *testing.T) {
	_, cl := newTestClient(t)

	_, err := cl.Explain(context.Background(), "SELECT 1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestInvalidJSONIsDecodeError(t *testing.T) {
	srv, cl := newTestClient(t)
	srv.Handle(clienttest.RouteRun, func(string) clienttest.Response {
		return clienttest.Response{Status: http.StatusOK, Body: "<html>oops</html>"}
	})

	_, err := cl.RunSQL(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestNetworkFailure(t *testing.T) {
	srv, cl := newTestClient(t)
	srv.Close()

	_, err := cl.GenerateSQL(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POST "+srv.URL+RouteGenerate)
}

func TestContextCancellation(t *testing.T) {
	srv, cl := newTestClient(t)
	srv.Generates("SELECT 1")
	arrived, release := srv.Block(clienttest.RouteGenerate)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := cl.GenerateSQL(ctx, "x")
		errc <- err
	}()

	<-arrived
	cancel()

	select {
	case err := <-errc:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("call did not return after cancellation")
	}
}

func TestParseAPIError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
		wantErr string
	}{
		{"detail string", `{"detail": "bad prompt"}`, "bad prompt", "askql service 400: bad prompt"},
		{"detail object", `{"detail": [{"loc": ["body"]}]}`, `[{"loc": ["body"]}]`, ""},
		{"error field", `{"error": "boom"}`, "boom", "askql service 400: boom"},
		{"plain text", "Bad Request", "", "askql service 400: Bad Request"},
		{"empty", "", "", "askql service 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := parseAPIError(http.StatusBadRequest, []byte(tt.body))
			assert.Equal(t, tt.wantMsg, e.Message)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, e.Error())
			}
		})
	}
}

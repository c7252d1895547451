package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"klondike/communication"
	"klondike/placement"
	"klondike/searcher"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const kingPosition = `{"waste_pile":true,"tableaus":[{"hidden":2,"cards":["13H"]}]}`

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestStatelessSuggest(t *testing.T) {
	h := New().Handler()

	for i := 0; i < 2; i++ {
		w := serve(t, h, http.MethodPost, "/suggest", kingPosition)
		require.Equal(t, http.StatusOK, w.Code)
		s := decode[searcher.Suggestion](t, w)
		require.Equal(t, searcher.CategoryKing, s.Category, "no session means no resume")
		require.Equal(t, "Flyt Hjerter Konge til et tomt felt", s.Message)
	}

	w := serve(t, h, http.MethodPost, "/suggest", `{"waste":"77Z"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[communication.ErrorResponse](t, w)
	require.Contains(t, resp.Error, "malformed")
	require.Equal(t, communication.CodeMalformedInput, resp.Code)

	w = serve(t, h, http.MethodPost, "/suggest", `{"tableaus":[{},{},{},{},{},{},{},{}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, communication.CodeInvalidSlotIndex, decode[communication.ErrorResponse](t, w).Code)
}

func TestSessionRoutes(t *testing.T) {
	srv := New()
	h := srv.Handler()

	w := serve(t, h, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[communication.SessionResponse](t, w).ID
	require.NotEmpty(t, id)

	w = serve(t, h, http.MethodPost, "/sessions/"+id+"/another", "")
	require.Equal(t, http.StatusConflict, w.Code, "nothing submitted yet")

	w = serve(t, h, http.MethodPost, "/sessions/"+id+"/suggest", kingPosition)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, searcher.CategoryKing, decode[searcher.Suggestion](t, w).Category)

	w = serve(t, h, http.MethodPost, "/sessions/"+id+"/suggest", kingPosition)
	require.Equal(t, searcher.CategoryDrawWaste, decode[searcher.Suggestion](t, w).Category)

	w = serve(t, h, http.MethodPost, "/sessions/"+id+"/another", "")
	require.Equal(t, http.StatusOK, w.Code)
	s := decode[searcher.Suggestion](t, w)
	require.Equal(t, searcher.KindNoNewMove, s.Kind)

	w = serve(t, h, http.MethodPost, "/sessions/"+id+"/reset", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	w = serve(t, h, http.MethodPost, "/sessions/"+id+"/another", "")
	require.Equal(t, http.StatusConflict, w.Code)

	w = serve(t, h, http.MethodGet, "/status", "")
	require.Equal(t, 1, decode[communication.StatusResponse](t, w).Sessions)

	w = serve(t, h, http.MethodDelete, "/sessions/"+id, "")
	require.Equal(t, http.StatusNoContent, w.Code)
	w = serve(t, h, http.MethodPost, "/sessions/"+id+"/suggest", kingPosition)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = serve(t, h, http.MethodDelete, "/sessions/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateLimit(t *testing.T) {
	h := New(WithRateLimit(rate.Every(time.Hour), 1)).Handler()

	require.Equal(t, http.StatusOK, serve(t, h, http.MethodGet, "/status", "").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(t, h, http.MethodGet, "/status", "").Code)
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, StatusFor(placement.ErrInvalidSlotIndex))
	require.Equal(t, http.StatusInternalServerError, StatusFor(http.ErrServerClosed))
}

package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"friender/services/gateway/handler"
	"friender/services/gateway/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstream(name string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", name)
		io.WriteString(w, r.Method+" "+r.URL.RequestURI()+" "+r.Header.Get("Authorization"))
	}))
}

func TestGatewayRouting(t *testing.T) {
	auth, match, notify := upstream("auth"), upstream("match"), upstream("notify")
	defer auth.Close()
	defer match.Close()
	defer notify.Close()

	h, err := handler.NewGatewayHandler(handler.Upstreams{Auth: auth.URL, Match: match.URL, Notify: notify.URL})
	require.NoError(t, err)
	gw := httptest.NewServer(transport.NewRouter(h))
	defer gw.Close()

	tests := []struct {
		method   string
		path     string
		upstream string
	}{
		{http.MethodPost, "/signup", "auth"},
		{http.MethodPost, "/login", "auth"},
		{http.MethodGet, "/users/1/available-user?x=1", "match"},
		{http.MethodPost, "/users/like/2", "match"},
		{http.MethodPatch, "/users/1", "match"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, gw.URL+tt.path, strings.NewReader("{}"))
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer abc")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.upstream, resp.Header.Get("X-Upstream"))
			assert.Equal(t, tt.method+" "+tt.path+" Bearer abc", string(body))
		})
	}
}

func TestGateway_UnknownPathAndBadUpstream(t *testing.T) {
	_, err := handler.NewGatewayHandler(handler.Upstreams{Auth: "::bad", Match: "http://m", Notify: "http://n"})
	assert.Error(t, err)

	h, err := handler.NewGatewayHandler(handler.Upstreams{Auth: "http://a", Match: "http://m", Notify: "http://n"})
	require.NoError(t, err)
	gw := httptest.NewServer(transport.NewRouter(h))
	defer gw.Close()

	resp, err := http.Get(gw.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClientWithConfig(&ClientConfig{
		ChatURL: srv.URL + "/api/v2/detail_response",
		PingURL: srv.URL + "/ping",
		Timeout: 2 * time.Second,
	})
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestClient_SendPostsMessage(t *testing.T) {
	requests := make(chan *http.Request, 1)
	bodies := make(chan SendRequest, 1)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body SendRequest
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		requests <- r
		bodies <- body
		_, _ = w.Write([]byte("**hi** there"))
	})

	reply, err := client.Send(context.Background(), "hello")
	require.NoError(t, err)

	req := <-requests
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "hello", (<-bodies).Message)
	assert.Equal(t, "**hi** there", reply)
}

func TestClient_SendReturnsBodyVerbatim(t *testing.T) {
	// JSON-looking replies are not decoded.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"42"}`))
	})

	reply, err := client.Send(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, `{"answer":"42"}`, reply)
}

func TestClient_SendReplyCap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "at limit",
			body: strings.Repeat("a", MaxReplyBytes),
			want: strings.Repeat("a", MaxReplyBytes),
		},
		{
			name: "ascii over limit",
			body: strings.Repeat("a", MaxReplyBytes) + "Z",
			want: strings.Repeat("a", MaxReplyBytes),
		},
		{
			name: "cut inside multibyte rune",
			body: strings.Repeat("a", MaxReplyBytes-1) + "é",
			want: strings.Repeat("a", MaxReplyBytes-1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			reply, err := client.Send(context.Background(), "q")
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), len(reply))
			assert.True(t, reply == tt.want)
			assert.True(t, utf8.ValidString(reply))
		})
	}
}

func TestTruncateReply(t *testing.T) {
	assert.Equal(t, []byte("ab"), truncateReply([]byte("abc"), 2))
	assert.Equal(t, []byte("a"), truncateReply([]byte("a€"), 3))
	assert.Equal(t, []byte("a€"), truncateReply([]byte("a€b"), 4))
}

func TestClient_SendErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: ErrStatus,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			want: ErrStatus,
		},
		{
			name: "binary body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
			},
			want: ErrInvalidResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, tc.handler)
			_, err := client.Send(context.Background(), "x")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestClient_SendConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClientWithConfig(&ClientConfig{ChatURL: url, Timeout: time.Second})
	_, err := client.Send(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnection), "got %v", err)
}

func TestClient_SendTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client := NewClientWithConfig(&ClientConfig{ChatURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := client.Send(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
}

func TestClient_SendNoTimeoutUsesCallerContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	client.config.Timeout = 0

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Send(ctx, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
}

// =============================================================================
// PING TESTS
// =============================================================================

func TestClient_Ping(t *testing.T) {
	var hits atomic.Int32
	methods := make(chan string, 1)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ping" {
			hits.Add(1)
			methods <- r.Method
		}
		_, _ = w.Write([]byte("ok"))
	})

	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, http.MethodGet, <-methods)
}

func TestClient_PingFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	assert.Error(t, client.Ping(context.Background()))
}

func TestClient_PingDisabled(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{ChatURL: "http://127.0.0.1:1"})
	assert.NoError(t, client.Ping(context.Background()))
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	client := NewClientWithConfig(nil)
	assert.Equal(t, DefaultChatURL, client.ChatURL())
	assert.Equal(t, DefaultTimeout, client.Timeout())
}

func TestClientError_Message(t *testing.T) {
	err := &ClientError{Type: ErrTypeConnection, Message: "could not reach endpoint", Cause: errors.New("dial tcp")}
	assert.Equal(t, "could not reach endpoint: dial tcp", err.Error())
	assert.Equal(t, "connection", err.Type.String())
}

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = RetryPolicy{
	InitialInterval: 5 * time.Millisecond,
	MaxInterval:     10 * time.Millisecond,
	MaxElapsedTime:  time.Second,
}

func TestRealHTTPClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "hello", in["msg"])

		_, _ = w.Write([]byte(`{"echo":"hello"}`))
	}))
	defer srv.Close()

	c := NewHTTPClientWithRetry(time.Second, fastRetry)

	var out struct {
		Echo string `json:"echo"`
	}
	err := c.PostJSON(context.Background(), srv.URL, map[string]string{"Authorization": "Bearer secret"},
		map[string]string{"msg": "hello"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Echo)
}

func TestRealHTTPClient_RetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewHTTPClientWithRetry(time.Second, fastRetry)

	body, err := c.Post(context.Background(), srv.URL, nil, "text/plain", []byte("payload"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestRealHTTPClient_StatusErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("already linked"))
	}))
	defer srv.Close()

	c := NewHTTPClientWithRetry(time.Second, fastRetry)

	var out map[string]any
	err := c.GetJSON(context.Background(), srv.URL, nil, &out)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusConflict))
	assert.False(t, IsStatus(err, http.StatusNotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRealHTTPClient_NoRetryMakesOneAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	c := NewHTTPClientWithRetry(time.Second, NoRetry)

	_, err := c.Post(context.Background(), srv.URL, nil, "text/plain", []byte("payload"))
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusTooManyRequests))
	assert.Equal(t, int32(1), calls.Load())
}

func TestCanonicalizer_SortsKeys(t *testing.T) {
	c := NewCanonicalizer()

	a, err := c.Canonicalize(map[string]any{"b": 1, "a": []string{"x", "y"}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":["x","y"],"b":1}`, string(a))

	b, err := c.Canonicalize(struct {
		B int      `json:"b"`
		A []string `json:"a"`
	}{B: 1, A: []string{"x", "y"}})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

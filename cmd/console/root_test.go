package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/customer-admin/internal/config"
	"github.com/unclebandit/customer-admin/internal/model"
)

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(c string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, c)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func newAPI(t *testing.T, deleteStatus int) (*httptest.Server, *callLog) {
	t.Helper()
	calls := &callLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.add(r.Method + " " + r.URL.RequestURI())
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]model.Customer{{
				ID:          1,
				Name:        "Ada",
				Email:       "ada@example.com",
				SocialMedia: []model.SocialMedia{{SocialMediaName: "GitHub", Username: "ada"}},
			}})
		case http.MethodDelete:
			w.WriteHeader(deleteStatus)
			w.Write([]byte(`{"message":"ok"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	srv, calls := newAPI(t, http.StatusOK)

	out, err := execute(t, "list", "--api-url", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Social Media Name: GitHub")
	assert.Equal(t, []string{"GET /api/customers?includes=socialMedia"}, calls.all())
}

func TestDeleteCommandRefetches(t *testing.T) {
	srv, calls := newAPI(t, http.StatusOK)

	out, err := execute(t, "delete", "1", "--api-url", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "ada@example.com")
	assert.Equal(t, []string{
		"DELETE /api/customers/1",
		"GET /api/customers?includes=socialMedia",
	}, calls.all())
}

func TestDeleteCommandFailureStillPrintsTable(t *testing.T) {
	srv, calls := newAPI(t, http.StatusNotFound)

	out, err := execute(t, "delete", "9", "--api-url", srv.URL)
	require.Error(t, err)

	assert.Contains(t, out, "Ada")
	assert.Len(t, calls.all(), 2)
}

func TestDeleteCommandRejectsBadID(t *testing.T) {
	_, err := execute(t, "delete", "abc")
	assert.EqualError(t, err, `invalid customer id "abc"`)
}

func TestPageConfig(t *testing.T) {
	c := pageConfig(config.PageConfig{})
	assert.Equal(t, 1200*time.Millisecond, c.SuccessNotification)
	assert.Equal(t, 1900*time.Millisecond, c.FailureNotification)
	assert.False(t, c.ResetDraftOnOpen)

	c = pageConfig(config.PageConfig{
		SuccessNotification: time.Second,
		ResetDraftOnOpen:    true,
		SeverityFromOutcome: true,
	})
	assert.Equal(t, time.Second, c.SuccessNotification)
	assert.Equal(t, 1900*time.Millisecond, c.FailureNotification)
	assert.True(t, c.ResetDraftOnOpen)
	assert.True(t, c.SeverityFromOutcome)
}

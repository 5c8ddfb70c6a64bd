package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventJSON = `{
  "date": "10-01-2024",
  "time": "20:00",
  "signups": [
    {"name": "Ragnar", "userid": "u1", "class": "Warrior", "spec": "Protection", "role": "Tanks"},
    {"name": "Away", "userid": "u2", "class": "Mage", "spec": "Fire", "role": "Absence"},
    {"name": "Benched", "userid": "u3", "class": "Bench", "spec": "", "role": "Ranged"}
  ]
}`

func TestEvent_FetchesAndParses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/event/123", r.URL.Path)
		w.Write([]byte(eventJSON))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	event, err := client.Event(context.Background(), "123")
	require.NoError(t, err)

	when, err := event.When()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC), when)
	assert.Len(t, event.Signups, 3)
}

func TestEvent_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Event(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEvent_FailedStatusPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "failed"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Event(context.Background(), "123")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEvent_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Event(context.Background(), "123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEventNotFound)
}

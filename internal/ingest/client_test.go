package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/desk-metrics/internal/config"
)

func TestClientFetchTicketsPaginates(t *testing.T) {
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var gotAppToken string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tickets", r.URL.Path)
		gotAppToken = r.Header.Get("App-Token")

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		assert.Equal(t, 2, limit)

		// Three tickets total: a full first page then a short one.
		var page []sourceTicket
		for id := offset + 1; id <= offset+limit && id <= 3; id++ {
			page = append(page, sourceTicket{
				ID: id, Status: "new", Priority: "low", OpenedAt: opened, UpdatedAt: opened,
			})
		}
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	client := NewClient(config.UpstreamConfig{
		BaseURL:        server.URL,
		AppToken:       "app-secret",
		PageSize:       2,
		TimeoutSeconds: 5,
	})

	tickets, err := client.FetchTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, 1, tickets[0].ID)
	assert.Equal(t, 3, tickets[2].ID)
	assert.Equal(t, "app-secret", gotAppToken)
}

func TestClientFetchTicketsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(config.UpstreamConfig{BaseURL: server.URL, PageSize: 10, TimeoutSeconds: 5})

	_, err := client.FetchTickets(context.Background())
	require.Error(t, err)
}

package v1

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchdeck.com/punchdeck/security"
)

const testSecret = "IxrAjDoa2FqElO7IhrSrUJELhUckePEPVpaePlS/Xaw="

func testToken(t *testing.T) string {
	token, err := security.CreateIdentityToken(&security.Identity{
		ID:         5,
		UniqueName: "dev",
		SID:        "sid-5",
	}, testSecret, 3600)
	require.NoError(t, err)
	return token
}

func TestPunchEndpointCreate(t *testing.T) {
	token := testToken(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/punches", r.URL.Path)
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"punch":{"id":7,"userId":"MANUAL_USER","eventType":"IN","timestamp":"2025-03-03T17:00:00Z","externalId":"manual_abc","rawText":"MANUAL_IN"}}}`))
	}))
	defer srv.Close()

	client := NewPunchdeckClient(srv.URL, token)

	punch, err := client.Punches.Create("IN", "2025-03-03T09:00:00")
	require.NoError(t, err)
	assert.Equal(t, uint(7), punch.ID)
	assert.Equal(t, "IN", punch.EventType)
	assert.True(t, strings.HasPrefix(punch.ExternalID, "manual_"))
}

func TestPayPeriodEndpointCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pay-period/current", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"start":"2025-03-01T08:00:00Z","end":"2025-03-15T07:59:59.999Z","label":"March 1-14, 2025","current":true}}`))
	}))
	defer srv.Close()

	client := NewPunchdeckClient(srv.URL, "")

	period, err := client.PayPeriods.Current()
	require.NoError(t, err)
	assert.Equal(t, "March 1-14, 2025", period.Label)
	assert.True(t, period.Current)
}

func TestTransportErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Punch not found"}`))
	}))
	defer srv.Close()

	client := NewPunchdeckClient(srv.URL, "")

	err := client.Punches.Delete("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Punch not found")
}

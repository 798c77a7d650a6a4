package mail

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/entity"
	worker_task "github.com/Xenn-00/stufen-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type capturedMail struct {
	From struct {
		Email string `json:"email"`
	} `json:"from"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject  string `json:"subject"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

func newTestServer(t *testing.T, status int, got *[]capturedMail, auth *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*auth = r.Header.Get("Authorization")
		var m capturedMail
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		*got = append(*got, m)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSendStatusChangeRequested(t *testing.T) {
	var got []capturedMail
	var auth string
	srv := newTestServer(t, http.StatusOK, &got, &auth)

	m := NewMailService("noreply@stufen.test", srv.URL, "secret", rate.NewLimiter(rate.Inf, 1))
	admins := []entity.UserContact{
		{ID: "a1", Email: "a1@example.com", Username: "admin1"},
		{ID: "a2", Email: "a2@example.com", Username: "admin2"},
	}
	err := m.SendStatusChangeRequested(context.Background(), admins, "anna", &worker_task.StatusChangeRequestedPayload{
		TaskTitle:       "Write docs",
		CurrentStatus:   "Assigned",
		RequestedStatus: "Review",
		RequestedAt:     time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "noreply@stufen.test", got[0].From.Email)
	require.Len(t, got[0].To, 2)
	assert.Equal(t, "a2@example.com", got[0].To[1].Email)
	assert.Contains(t, got[0].Subject, "Review")
	assert.Contains(t, got[0].Text, "anna")
}

func TestSendStatusChangeApproved_ServerError(t *testing.T) {
	var got []capturedMail
	var auth string
	srv := newTestServer(t, http.StatusBadGateway, &got, &auth)

	m := NewMailService("noreply@stufen.test", srv.URL, "secret", rate.NewLimiter(rate.Inf, 1))
	err := m.SendStatusChangeApproved(context.Background(), entity.UserContact{Email: "u@example.com", Username: "u"}, "boss", &worker_task.StatusChangeApprovedPayload{
		TaskTitle: "Write docs",
		Status:    "Review",
	})

	assert.ErrorContains(t, err, "status=502")
}

func TestSendPendingRequestsDigest_NoRecipients(t *testing.T) {
	m := NewMailService("noreply@stufen.test", "http://127.0.0.1:0", "secret", rate.NewLimiter(rate.Inf, 1))

	err := m.SendPendingRequestsDigest(context.Background(), nil, "Apollo", []entity.PendingRequestDigest{{TaskTitle: "x"}})
	assert.NoError(t, err)
}

func TestSend_RateLimiterHonoursContext(t *testing.T) {
	m := NewMailService("noreply@stufen.test", "http://127.0.0.1:0", "secret", rate.NewLimiter(rate.Every(time.Hour), 1))
	m.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.SendPendingRequestsDigest(ctx, []entity.UserContact{{Email: "a@example.com"}}, "Apollo", nil)
	assert.Error(t, err)
}

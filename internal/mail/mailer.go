package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/config"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	worker_task "github.com/Xenn-00/stufen-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const timeLayout = "02 Jan 2006 15:04 MST"

type Mailer interface {
	SendStatusChangeRequested(ctx context.Context, admins []entity.UserContact, requester string, p *worker_task.StatusChangeRequestedPayload) error
	SendStatusChangeApproved(ctx context.Context, requester entity.UserContact, approver string, p *worker_task.StatusChangeApprovedPayload) error
	SendPendingRequestsDigest(ctx context.Context, admins []entity.UserContact, projectName string, items []entity.PendingRequestDigest) error
}

// MailService spricht die Mailtrap Send-API an. Der Limiter drosselt alle Sendungen eines Prozesses.
type MailService struct {
	DomainSender string
	MailtrapUrl  string
	MailAPI      string

	client  *http.Client
	limiter *rate.Limiter
}

func NewMailer(cfg *config.AppConfig) Mailer {
	limiter := rate.NewLimiter(rate.Limit(cfg.MAILER.RatePerSecond), cfg.MAILER.Burst)
	if cfg.APP.State == "prod" {
		return NewMailService(cfg.MAILTRAP.API.MailtrapDomain, cfg.MAILTRAP.API.MailtrapURL, cfg.MAILTRAP.API.MailtrapTokenAPI, limiter)
	}
	return NewMailService(cfg.MAILTRAP.Sandbox.SandboxDomain, cfg.MAILTRAP.Sandbox.SandboxURL, cfg.MAILTRAP.Sandbox.SandboxAPI, limiter)
}

func NewMailService(domainSender, url, apiToken string, limiter *rate.Limiter) *MailService {
	return &MailService{
		DomainSender: domainSender,
		MailtrapUrl:  url,
		MailAPI:      apiToken,
		client:       &http.Client{Timeout: 10 * time.Second},
		limiter:      limiter,
	}
}

func (m *MailService) SendStatusChangeRequested(ctx context.Context, admins []entity.UserContact, requester string, p *worker_task.StatusChangeRequestedPayload) error {
	text := fmt.Sprintf(`
		Hi,

		A status change was requested for a task in one of your projects.

		Task		: %s
		Current		: %s
		Requested	: %s
		Requested by	: %s
		Requested at	: %s

		Please review and approve the request if the task is ready to move on.

		— Stufen Meister
		`, p.TaskTitle, p.CurrentStatus, p.RequestedStatus, requester, p.RequestedAt.Format(timeLayout))

	return m.send(ctx, admins, "Statusänderung angefragt",
		fmt.Sprintf("Status change requested: %s → %s", p.TaskTitle, p.RequestedStatus), text, "Status Request")
}

func (m *MailService) SendStatusChangeApproved(ctx context.Context, requester entity.UserContact, approver string, p *worker_task.StatusChangeApprovedPayload) error {
	text := fmt.Sprintf(`
		Hi %s,

		Your status change request was approved.

		Task		: %s
		New status	: %s
		Approved by	: %s
		Approved at	: %s

		— Stufen Meister
		`, requester.Username, p.TaskTitle, p.Status, approver, p.ApprovedAt.Format(timeLayout))

	return m.send(ctx, []entity.UserContact{requester}, "Statusänderung genehmigt",
		fmt.Sprintf("Approved: %s is now %s", p.TaskTitle, p.Status), text, "Status Request")
}

func (m *MailService) SendPendingRequestsDigest(ctx context.Context, admins []entity.UserContact, projectName string, items []entity.PendingRequestDigest) error {
	var lines strings.Builder
	for _, it := range items {
		fmt.Fprintf(&lines, "		- %s → %s (by %s, since %s)\n", it.TaskTitle, it.RequestedStatus, it.RequesterUsername, it.CreatedAt.Format(timeLayout))
	}

	text := fmt.Sprintf(`
		Hi,

		The following status change requests in project "%s" are still waiting for approval:

%s
		— Stufen Meister
		`, projectName, lines.String())

	return m.send(ctx, admins, "Offene Statusanfragen",
		fmt.Sprintf("%d pending status request(s) in %s", len(items), projectName), text, "Status Request Digest")
}

func (m *MailService) send(ctx context.Context, to []entity.UserContact, senderName, subject, text, category string) error {
	if len(to) == 0 {
		return nil
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}

	recipients := make([]map[string]string, 0, len(to))
	for _, c := range to {
		recipients = append(recipients, map[string]string{"email": c.Email})
	}

	payload := map[string]any{
		"from": map[string]string{
			"email": m.DomainSender,
			"name":  "Stufen Meister - " + senderName,
		},
		"to":       recipients,
		"subject":  subject,
		"text":     text,
		"category": category,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Error when marshalling payload body.")
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.MailtrapUrl, bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+m.MailAPI)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Error when get response from server.")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mailtrap send failed: status=%d body=%s",
			resp.StatusCode,
			string(respBody))
	}

	return nil
}

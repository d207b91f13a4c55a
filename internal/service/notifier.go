package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/logger"
)

// mailSender is the part of the SendGrid client the notifier uses.
type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridNotifier struct {
	client     mailSender
	fromEmail  string
	fromName   string
	recipients []string
}

// NewNotifier returns a SendGrid notifier, or a no-op one when apiKey is empty.
func NewNotifier(apiKey, fromEmail, fromName string, recipients []string) Notifier {
	if apiKey == "" {
		logger.Info("SendGrid API key not configured, approval notifications disabled")
		return noopNotifier{}
	}
	return newSendGridNotifier(sendgrid.NewSendClient(apiKey), fromEmail, fromName, recipients)
}

func newSendGridNotifier(client mailSender, fromEmail, fromName string, recipients []string) *sendGridNotifier {
	return &sendGridNotifier{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		recipients: recipients,
	}
}

func (n *sendGridNotifier) PayrollApproved(ctx context.Context, r *domain.PayrollResult) error {
	subject := fmt.Sprintf("Payroll batch %d approved (%s)", r.BatchID, r.Population)
	body := fmt.Sprintf(
		"Payroll batch %d for department %d, competency %s, was approved.\n\nPeople paid: %d\nNet total: %s\nImage rights total: %s\n",
		r.BatchID, r.DepartmentID, r.CompetencyDate.Format("2006-01-02"),
		r.PersonCount, r.NetTotal.StringFixed(2), r.ImageRightsTotal.StringFixed(2),
	)
	return n.send(ctx, "payroll_approved", subject, body)
}

func (n *sendGridNotifier) AssetApproved(ctx context.Context, a *domain.Asset) error {
	subject := fmt.Sprintf("Asset %d registered: %s", a.ID, a.Name)
	body := fmt.Sprintf(
		"Asset %q (%s) was registered and approved for department %d.\n\nValue: %s\nAcquired: %s\n",
		a.Name, a.Category, a.DepartmentID, a.Value.StringFixed(2), a.AcquisitionDate.Format("2006-01-02"),
	)
	return n.send(ctx, "asset_approved", subject, body)
}

func (n *sendGridNotifier) PendingLedgerDigest(ctx context.Context, pending int64) error {
	subject := fmt.Sprintf("%d ledger entries awaiting approval", pending)
	body := fmt.Sprintf(
		"There are %d pending ledger entries waiting for the directive board.\n\nApprove or discard them so the books stay current.\n",
		pending,
	)
	return n.send(ctx, "pending_ledger_digest", subject, body)
}

func (n *sendGridNotifier) send(ctx context.Context, operation, subject, plainText string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	message := n.buildMessage(subject, plainText)
	logger.ExternalServiceCall("sendgrid", operation, "recipients", len(n.recipients))

	response, err := n.client.Send(message)
	if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
		logger.ExternalServiceResult("sendgrid", operation, err)
		return err
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", operation, err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", operation, nil, "status", response.StatusCode)
	return nil
}

func (n *sendGridNotifier) buildMessage(subject, plainText string) *mail.SGMailV3 {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(n.fromName, n.fromEmail))
	message.Subject = subject

	p := mail.NewPersonalization()
	for _, to := range n.recipients {
		p.AddTos(mail.NewEmail("", strings.TrimSpace(to)))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/plain", plainText))
	return message
}

type noopNotifier struct{}

func (noopNotifier) PayrollApproved(context.Context, *domain.PayrollResult) error { return nil }
func (noopNotifier) AssetApproved(context.Context, *domain.Asset) error           { return nil }
func (noopNotifier) PendingLedgerDigest(context.Context, int64) error             { return nil }

// notifyAfterCommit logs notification failures without surfacing them.
func notifyAfterCommit(method string, err error, args ...any) {
	if err != nil {
		allArgs := append([]any{"method", method, "error", err}, args...)
		logger.Warn("Approval notification failed", allArgs...)
	}
}

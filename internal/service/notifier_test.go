package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-finance-backend/internal/domain"
)

type fakeSender struct {
	sent     []*mail.SGMailV3
	response *rest.Response
	err      error
}

func (f *fakeSender) Send(email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	return f.response, f.err
}

func TestNewNotifier_EmptyKeyIsNoop(t *testing.T) {
	n := NewNotifier("", "finance@club.example", "Club Finance", nil)
	assert.IsType(t, noopNotifier{}, n)
	assert.NoError(t, n.PayrollApproved(context.Background(), &domain.PayrollResult{}))
}

func TestSendGridNotifier_PayrollApproved(t *testing.T) {
	sender := &fakeSender{response: &rest.Response{StatusCode: 202}}
	n := newSendGridNotifier(sender, "finance@club.example", "Club Finance", []string{"cfo@club.example", " board@club.example "})

	err := n.PayrollApproved(context.Background(), &domain.PayrollResult{
		BatchID: 40, Population: domain.PopulationAthlete, DepartmentID: 2,
		CompetencyDate: competency, PersonCount: 2,
		NetTotal: dec("3050"), ImageRightsTotal: dec("150"),
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "Payroll batch 40 approved (athlete)", msg.Subject)
	require.Len(t, msg.Personalizations, 1)
	require.Len(t, msg.Personalizations[0].To, 2)
	assert.Equal(t, "board@club.example", msg.Personalizations[0].To[1].Address)
	require.Len(t, msg.Content, 1)
	assert.Contains(t, msg.Content[0].Value, "Net total: 3050.00")
	assert.Contains(t, msg.Content[0].Value, "Image rights total: 150.00")
}

func TestSendGridNotifier_ErrorStatus(t *testing.T) {
	sender := &fakeSender{response: &rest.Response{StatusCode: 401, Body: "unauthorized"}}
	n := newSendGridNotifier(sender, "finance@club.example", "Club Finance", []string{"cfo@club.example"})

	err := n.AssetApproved(context.Background(), &domain.Asset{ID: 1, Name: "Bus", Value: dec("10")})
	assert.ErrorContains(t, err, "status 401")
}

func TestSendGridNotifier_TransportError(t *testing.T) {
	sender := &fakeSender{err: errors.New("dial tcp: timeout")}
	n := newSendGridNotifier(sender, "finance@club.example", "Club Finance", []string{"cfo@club.example"})

	err := n.AssetApproved(context.Background(), &domain.Asset{ID: 1, Name: "Bus", Value: dec("10")})
	assert.ErrorContains(t, err, "failed to send email")
}

func TestSendGridNotifier_PendingLedgerDigest(t *testing.T) {
	sender := &fakeSender{response: &rest.Response{StatusCode: 202}}
	n := newSendGridNotifier(sender, "finance@club.example", "Club Finance", []string{"board@club.example"})

	require.NoError(t, n.PendingLedgerDigest(context.Background(), 4))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "4 ledger entries awaiting approval", sender.sent[0].Subject)
}

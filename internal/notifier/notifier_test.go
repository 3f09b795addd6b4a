package notifier

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"MarketSweep/internal/model"
)

type fakeSender struct {
	sent  []*mail.Msg
	err   error
	calls int
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, msgs ...*mail.Msg) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msgs...)
	return nil
}

func highlights() model.Highlights {
	return model.Highlights{
		Trend:           model.TrendUp,
		AvgChange:       1.2,
		TopGainer:       "dogecoin",
		TopGainerChange: 7.5,
		TopLoser:        "solana",
		TopLoserChange:  -4.25,
		TotalAssets:     250,
	}
}

func TestFormatDailyReport(t *testing.T) {
	body := FormatDailyReport(highlights())
	assert.Contains(t, body, "Overall market trend: UP\n")
	assert.Contains(t, body, "Highest gainer (24h): dogecoin (7.5%)\n")
	assert.Contains(t, body, "Highest loser (24h): solana (-4.25%)\n")
	assert.Contains(t, body, "Total assets analyzed: 250\n")
	assert.Contains(t, body, "Best regards,\nAutomated Crypto ETL System\n")
}

func TestFormatDailyReport_NoMovers(t *testing.T) {
	body := FormatDailyReport(model.Highlights{Trend: model.TrendNeutral, TopGainer: "N/A", TopLoser: ""})
	assert.Contains(t, body, "Overall market trend: NEUTRAL\n")
	assert.Contains(t, body, "Highest gainer (24h): N/A\n")
	assert.Contains(t, body, "Highest loser (24h): N/A\n")
	assert.Contains(t, body, "Total assets analyzed: 0\n")
}

func TestMailNotifier_SendDailyReport(t *testing.T) {
	csv := filepath.Join(t.TempDir(), "crypto_data of 19-10-2026 08-00-00.csv")
	require.NoError(t, os.WriteFile(csv, []byte("id,current_price\nbitcoin,65000.5\n"), 0644))

	fake := &fakeSender{}
	n := &MailNotifier{From: "bot@example.com", To: "ops@example.com", Client: fake}
	require.NoError(t, n.SendDailyReport(context.Background(), highlights(), csv))

	require.Len(t, fake.sent, 1)
	m := fake.sent[0]
	assert.Equal(t, []string{DailySubject}, m.GetGenHeader(mail.HeaderSubject))

	atts := m.GetAttachments()
	require.Len(t, atts, 1)
	assert.Equal(t, filepath.Base(csv), atts[0].Name)

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Overall market trend: UP")
	assert.Contains(t, buf.String(), "ops@example.com")
}

func TestMailNotifier_MissingAttachment(t *testing.T) {
	fake := &fakeSender{}
	n := &MailNotifier{From: "bot@example.com", To: "ops@example.com", Client: fake}
	err := n.SendDailyReport(context.Background(), highlights(), filepath.Join(t.TempDir(), "gone.csv"))
	require.Error(t, err)
	assert.Equal(t, 0, fake.calls)
}

func TestMailNotifier_AuthFailureNotRetried(t *testing.T) {
	authErr := errors.New("535 5.7.8 Username and Password not accepted")
	fake := &fakeSender{err: authErr}
	n := &MailNotifier{From: "bot@example.com", To: "ops@example.com", Client: fake}

	err := n.Send(context.Background(), "s", "b", "")
	require.Error(t, err)
	assert.True(t, model.IsUpstreamError(err))
	assert.ErrorIs(t, err, authErr)
	assert.Equal(t, 1, fake.calls)
}

func TestMailNotifier_BadAddress(t *testing.T) {
	n := &MailNotifier{From: "not an address", To: "ops@example.com", Client: &fakeSender{}}
	err := n.Send(context.Background(), "s", "b", "")
	assert.True(t, model.IsConfigurationError(err))
}

func TestNewMailNotifier(t *testing.T) {
	n, err := NewMailNotifier("smtp.example.com", 587, "bot@example.com", "pw", "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bot@example.com", n.From)
	assert.NotNil(t, n.Client)
}

package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/janitarr/internal/media"
)

type sentMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

// captureMailer returns a Mailer whose SMTP send is recorded instead of
// performed.
func captureMailer(cfg SMTPConfig) (*Mailer, *[]sentMail) {
	var sent []sentMail
	m := NewMailer(cfg)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr: addr, auth: a, from: from, to: to, msg: string(msg)})
		return nil
	}
	return m, &sent
}

func TestMailer_SendReminder(t *testing.T) {
	m, sent := captureMailer(SMTPConfig{
		Host: "mail.example.com",
		Port: 587,
		From: "janitarr@example.com",
	})

	info := &media.Info{Title: "Heat", Poster: "https://img.example/p.jpg"}
	err := m.SendReminder(context.Background(), "viewer@example.com", info, 6)
	require.NoError(t, err)
	require.Len(t, *sent, 1)

	mail := (*sent)[0]
	assert.Equal(t, "mail.example.com:587", mail.addr)
	assert.Equal(t, "janitarr@example.com", mail.from)
	assert.Equal(t, []string{"viewer@example.com"}, mail.to)
	assert.Nil(t, mail.auth, "no auth without a username")

	assert.Contains(t, mail.msg, "To: viewer@example.com\r\n")
	assert.Contains(t, mail.msg, `Subject: Reminder: "Heat" leaves the library in 6 days`)
	assert.Contains(t, mail.msg, "Content-Type: text/html")
	assert.Contains(t, mail.msg, "<strong>Heat</strong>")
	assert.Contains(t, mail.msg, "in 6 days")
	assert.Contains(t, mail.msg, "https://img.example/p.jpg")
}

func TestMailer_SendReminder_SingularDay(t *testing.T) {
	m, sent := captureMailer(SMTPConfig{Host: "mail.example.com", Port: 587, From: "janitarr@example.com"})

	err := m.SendReminder(context.Background(), "viewer@example.com", &media.Info{Title: "Heat"}, 1)
	require.NoError(t, err)
	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].msg, "in 1 day.")
	assert.NotContains(t, (*sent)[0].msg, "in 1 days")
}

func TestMailer_SendDeletion(t *testing.T) {
	m, sent := captureMailer(SMTPConfig{Host: "mail.example.com", Port: 587, From: "janitarr@example.com"})

	err := m.SendDeletion(context.Background(), "viewer@example.com", &media.Info{Title: "Heat"})
	require.NoError(t, err)
	require.Len(t, *sent, 1)

	mail := (*sent)[0]
	assert.Contains(t, mail.msg, `Subject: "Heat" has been removed from the library`)
	assert.Contains(t, mail.msg, "has been removed")
	assert.NotContains(t, mail.msg, "<img", "no poster, no image tag")
}

func TestMailer_UsesPlainAuthWithUsername(t *testing.T) {
	m, sent := captureMailer(SMTPConfig{
		Host:     "mail.example.com",
		Port:     587,
		From:     "janitarr@example.com",
		Username: "janitarr",
		Password: "hunter2",
	})

	err := m.SendDeletion(context.Background(), "viewer@example.com", &media.Info{Title: "Heat"})
	require.NoError(t, err)
	require.Len(t, *sent, 1)
	assert.NotNil(t, (*sent)[0].auth)
}

func TestMailer_EscapesTitles(t *testing.T) {
	m, sent := captureMailer(SMTPConfig{Host: "mail.example.com", Port: 587, From: "janitarr@example.com"})

	info := &media.Info{Title: `<script>alert("x")</script>`}
	err := m.SendDeletion(context.Background(), "viewer@example.com", info)
	require.NoError(t, err)
	require.Len(t, *sent, 1)
	assert.NotContains(t, (*sent)[0].msg, "<script>")
}

func TestMailer_SendFailure(t *testing.T) {
	m := NewMailer(SMTPConfig{Host: "mail.example.com", Port: 587, From: "janitarr@example.com"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.SendReminder(context.Background(), "viewer@example.com", &media.Info{Title: "Heat"}, 3)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "viewer@example.com"))
}

func TestLogNotifier_NeverFails(t *testing.T) {
	n := NewLogNotifier(nil)
	info := &media.Info{Title: "Heat"}
	assert.NoError(t, n.SendReminder(context.Background(), "viewer@example.com", info, 3))
	assert.NoError(t, n.SendDeletion(context.Background(), "viewer@example.com", info))
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/mail-svc/internal/interfaces"
	"github.com/SundayYogurt/projecthub/mail-svc/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	mu   sync.Mutex
	err  error
	sent []interfaces.Mail
}

func (f *fakeSender) Send(ctx context.Context, mail interfaces.Mail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, mail)
	return nil
}

func newHandler(t *testing.T, sender *fakeSender) *MailHandler {
	t.Helper()
	mail, err := services.NewMailService(sender, "https://api.example.com/", "https://app.example.com", zap.NewNop())
	require.NoError(t, err)
	return NewMailHandler(mail, zap.NewNop())
}

func payload(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestHandleMessage_Invitation(t *testing.T) {
	sender := &fakeSender{}
	h := newHandler(t, sender)

	err := h.HandleMessage(context.Background(), dto.EventInvitation, payload(t, dto.InvitationEvent{
		InvitationID: "inv-1",
		Email:        "bob@example.com",
		InviteeName:  "Bob Tester",
		InviterName:  "Alice <Admin>",
		ProjectName:  "Roadmap",
		Role:         "member",
		Token:        "tok.en",
		ExpiresAt:    "2026-01-01T00:00:00Z",
	}))
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	mail := sender.sent[0]
	assert.Equal(t, "bob@example.com", mail.To)
	assert.Equal(t, "Invitation Email", mail.Subject)
	assert.Contains(t, mail.HTML, "https://api.example.com/api/v1/projects/invitation/accept/tok.en/")
	assert.Contains(t, mail.HTML, "https://api.example.com/api/v1/projects/invitation/reject/tok.en/")
	assert.Contains(t, mail.HTML, "Alice &lt;Admin&gt;")
	assert.Contains(t, mail.Text, "Roadmap")
}

func TestHandleMessage_AccountMails(t *testing.T) {
	sender := &fakeSender{}
	h := newHandler(t, sender)
	ctx := context.Background()

	require.NoError(t, h.HandleMessage(ctx, dto.EventActivation, payload(t, dto.ActivationEvent{Email: "a@example.com", FullName: "Ann", Token: "act"})))
	require.NoError(t, h.HandleMessage(ctx, dto.EventChangeEmail, payload(t, dto.ChangeEmailEvent{Email: "new@example.com", Code: "123456"})))
	require.NoError(t, h.HandleMessage(ctx, dto.EventResetPassword, payload(t, dto.ResetPasswordEvent{Email: "a@example.com", Token: "r&t"})))
	require.Len(t, sender.sent, 3)

	assert.Equal(t, "Activation Email", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].HTML, "https://api.example.com/api/v1/accounts/activation/confirm/act/")
	assert.Contains(t, sender.sent[0].HTML, "Welcome, Ann!")

	assert.Equal(t, "new@example.com", sender.sent[1].To)
	assert.Contains(t, sender.sent[1].HTML, "123456")

	assert.Equal(t, "Reset Password", sender.sent[2].Subject)
	assert.Contains(t, sender.sent[2].Text, "https://app.example.com/reset-password?token=r%26t")
}

func TestHandleMessage_Errors(t *testing.T) {
	sender := &fakeSender{}
	h := newHandler(t, sender)
	ctx := context.Background()

	assert.NoError(t, h.HandleMessage(ctx, "something.else", []byte("{}")))
	assert.Error(t, h.HandleMessage(ctx, dto.EventActivation, []byte("not json")))

	sender.err = errors.New("smtp down")
	err := h.HandleMessage(ctx, dto.EventChangeEmail, payload(t, dto.ChangeEmailEvent{Email: "x@example.com", Code: "000000"}))
	assert.ErrorIs(t, err, sender.err)
	assert.Empty(t, sender.sent)
}

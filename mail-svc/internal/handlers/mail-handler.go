package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/mail-svc/internal/services"
	"go.uber.org/zap"
)

type MailHandler struct {
	mail *services.MailService
	log  *zap.Logger
}

func NewMailHandler(mail *services.MailService, log *zap.Logger) *MailHandler {
	return &MailHandler{mail: mail, log: log.Named("handler")}
}

// HandleMessage dispatches on the message key. Unknown keys are skipped.
func (h *MailHandler) HandleMessage(ctx context.Context, key string, value []byte) error {
	switch key {
	case dto.EventActivation:
		var e dto.ActivationEvent
		if err := decode(key, value, &e); err != nil {
			return err
		}
		return h.mail.SendActivation(ctx, e)
	case dto.EventChangeEmail:
		var e dto.ChangeEmailEvent
		if err := decode(key, value, &e); err != nil {
			return err
		}
		return h.mail.SendEmailChangeCode(ctx, e)
	case dto.EventResetPassword:
		var e dto.ResetPasswordEvent
		if err := decode(key, value, &e); err != nil {
			return err
		}
		return h.mail.SendPasswordReset(ctx, e)
	case dto.EventInvitation:
		var e dto.InvitationEvent
		if err := decode(key, value, &e); err != nil {
			return err
		}
		return h.mail.SendInvitation(ctx, e)
	default:
		h.log.Warn("unknown event key, skipping", zap.String("key", key))
		return nil
	}
}

func decode(key string, value []byte, out any) error {
	if err := json.Unmarshal(value, out); err != nil {
		return fmt.Errorf("invalid %s payload: %w", key, err)
	}
	return nil
}

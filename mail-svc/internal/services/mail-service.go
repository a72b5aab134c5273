package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/SundayYogurt/projecthub/internal/dto"
	"github.com/SundayYogurt/projecthub/internal/helper/utils"
	"github.com/SundayYogurt/projecthub/mail-svc/internal/interfaces"
	"github.com/SundayYogurt/projecthub/mail-svc/internal/templates"
	"go.uber.org/zap"
)

const (
	subjectActivation  = "Activation Email"
	subjectChangeEmail = "Change Email"
	subjectReset       = "Reset Password"
	subjectInvitation  = "Invitation Email"
)

type MailService struct {
	sender      interfaces.Sender
	tmpl        *template.Template
	apiBaseURL  string
	frontendURL string
	log         *zap.Logger
}

func NewMailService(sender interfaces.Sender, apiBaseURL, frontendURL string, log *zap.Logger) (*MailService, error) {
	tmpl, err := templates.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &MailService{
		sender:      sender,
		tmpl:        tmpl,
		apiBaseURL:  strings.TrimRight(apiBaseURL, "/"),
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log.Named("mail"),
	}, nil
}

func (s *MailService) SendActivation(ctx context.Context, e dto.ActivationEvent) error {
	link := s.apiBaseURL + "/api/v1/accounts/activation/confirm/" + url.PathEscape(e.Token) + "/"
	return s.send(ctx, e.Email, subjectActivation, "activation.html",
		"Activate your account: "+link,
		map[string]any{"FullName": e.FullName, "Link": link, "ExpiresAt": e.ExpiresAt},
	)
}

func (s *MailService) SendEmailChangeCode(ctx context.Context, e dto.ChangeEmailEvent) error {
	return s.send(ctx, e.Email, subjectChangeEmail, "change-email.html",
		"Your verification code is "+e.Code,
		map[string]any{"Code": e.Code, "ExpiresAt": e.ExpiresAt},
	)
}

func (s *MailService) SendPasswordReset(ctx context.Context, e dto.ResetPasswordEvent) error {
	link := s.frontendURL + "/reset-password?token=" + url.QueryEscape(e.Token)
	return s.send(ctx, e.Email, subjectReset, "reset-password.html",
		"Reset your password: "+link,
		map[string]any{"Link": link, "ExpiresAt": e.ExpiresAt},
	)
}

func (s *MailService) SendInvitation(ctx context.Context, e dto.InvitationEvent) error {
	token := url.PathEscape(e.Token)
	accept := s.apiBaseURL + "/api/v1/projects/invitation/accept/" + token + "/"
	reject := s.apiBaseURL + "/api/v1/projects/invitation/reject/" + token + "/"
	return s.send(ctx, e.Email, subjectInvitation, "invitation.html",
		fmt.Sprintf("%s invited you to %s. Accept: %s Decline: %s", e.InviterName, e.ProjectName, accept, reject),
		map[string]any{
			"InviteeName": e.InviteeName,
			"InviterName": e.InviterName,
			"ProjectName": e.ProjectName,
			"Role":        e.Role,
			"AcceptLink":  accept,
			"RejectLink":  reject,
			"ExpiresAt":   e.ExpiresAt,
		},
	)
}

func (s *MailService) send(ctx context.Context, to, subject, name, text string, data map[string]any) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	if err := s.sender.Send(ctx, interfaces.Mail{To: to, Subject: subject, Text: text, HTML: buf.String()}); err != nil {
		return fmt.Errorf("send %s: %w", name, err)
	}
	s.log.Info("mail sent", zap.String("template", name), zap.String("to", utils.MaskEmail(to)))
	return nil
}

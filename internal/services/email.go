package services

import (
	"context"
	"fmt"
	"log"

	"uconnect/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendAnnouncementNotice sends the announcement notification email using the
// "announcement_notice" template and the given data.
func (s *emailService) SendAnnouncementNotice(ctx context.Context, data *domain.AnnouncementNoticeEmailData) error {
	if data == nil {
		return fmt.Errorf("announcement notice data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("announcement_notice", data)
	if err != nil {
		return fmt.Errorf("failed to render announcement_notice template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send announcement notice email: %w", err)
	}
	log.Printf("[EMAIL] Announcement notice sent to %s", data.Email)
	return nil
}

package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the
// given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// AnnouncementNoticeEmailData holds data for the announcement notification
// email sent to active users.
type AnnouncementNoticeEmailData struct {
	Email      string
	Name       string
	Title      string
	Content    string
	AuthorName string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendAnnouncementNotice(ctx context.Context, data *AnnouncementNoticeEmailData) error
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendApprovalPaymentLink(ctx context.Context, email, name, tier string, checkoutURL string) error {
	subject := "Your membership application has been approved"
	if tier == "" {
		tier = "standard"
	}
	plainText := fmt.Sprintf("Hello %s,\n\nThe board has approved your membership application (%s tier).\n\nComplete your membership by paying your dues here:\n%s\n\nWelcome to the association!", name, tier, checkoutURL)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Application Approved</h2>
				<p>Hello %s,</p>
				<p>The board has approved your membership application (<strong>%s</strong> tier).</p>
				<p><a href="%s">Pay your membership dues</a> to complete your membership.</p>
				<p>Welcome to the association!</p>
			</body>
		</html>
	`, name, tier, checkoutURL)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendRejectionNotice(ctx context.Context, email, name, reason, improvements string, reapplyOn *time.Time) error {
	subject := "Update on your membership application"
	plainText := fmt.Sprintf("Hello %s,\n\nYour membership application was not approved.\n\nReason: %s", name, reason)
	if improvements != "" {
		plainText += fmt.Sprintf("\n\nRecommended improvements: %s", improvements)
	}
	if reapplyOn != nil {
		plainText += fmt.Sprintf("\n\nYou may reapply on or after %s.", reapplyOn.Format("2006-01-02"))
	}
	return s.send(ctx, email, name, subject, plainText, plainText)
}

func (s *emailService) SendReapplicationWindowOpened(ctx context.Context, email, name string) error {
	subject := "You can now reapply for membership"
	plainText := fmt.Sprintf("Hello %s,\n\nYour reapplication window has opened. You are welcome to submit a new membership application.", name)
	return s.send(ctx, email, name, subject, plainText, plainText)
}

func (s *emailService) SendPendingApplicationReminder(ctx context.Context, boardEmail string, pendingCount int) error {
	subject := "Membership applications awaiting board review"
	plainText := fmt.Sprintf("There are %d membership applications that have been awaiting board votes for too long. Please review them.", pendingCount)
	return s.send(ctx, boardEmail, "Board", subject, plainText, plainText)
}

package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendFollowUpReminder(toEmail, company string, followUp time.Time) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendFollowUpReminder mails the rep when a follow-up gets scheduled for an
// account, so the next touchpoint doesn't live only inside the dashboard.
func (s *emailService) SendFollowUpReminder(toEmail, company string, followUp time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Follow-up scheduled: %s", company))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Follow-up scheduled</h2>
			<p>A follow-up with <strong>%s</strong> has been scheduled for:</p>
			<h3>%s</h3>
			<p>Check the account in the dashboard for the latest call notes.</p>
		</div>
	`, company, followUp.Format("Monday, 2 January 2006"))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send follow-up reminder for %s: %v\n", company, err)
		return err
	}

	fmt.Printf("[MAILER] Follow-up reminder sent for %s\n", company)
	return nil
}

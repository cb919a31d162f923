package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type LeadNotification struct {
	FirstName   string
	Email       string
	Phone       string
	Bucket      string
	MeetingType string
	BookingURL  string
}

type IEmailService interface {
	// SendLeadNotification alerts the advisor team that a new lead came in.
	SendLeadNotification(toEmail string, lead LeadNotification) error
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

func (s *emailService) SendLeadNotification(toEmail string, lead LeadNotification) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s (%s)", lead.FirstName, lead.Bucket))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New lead captured</h2>
			<p><strong>Name:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<p><strong>Phone:</strong> %s</p>
			<p><strong>Bucket:</strong> %s</p>
			<p><strong>Meeting type:</strong> %s</p>
			<p><a href="%s">Booking link sent to the prospect</a></p>
		</div>
	`, lead.FirstName, lead.Email, lead.Phone, lead.Bucket, lead.MeetingType, lead.BookingURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send lead notification to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Lead notification sent to %s\n", toEmail)
	return nil
}

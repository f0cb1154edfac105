package services

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"
)

// EmailConfig represents email service configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	ContactEmail string
}

// EmailServiceImpl sends the site's transactional mail over SMTP. Each form
// submission produces two mails: a notification to the house inbox and a
// confirmation to the visitor, both in French.
type EmailServiceImpl struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailServiceImpl {
	if config.ContactEmail == "" {
		config.ContactEmail = config.FromEmail
	}
	return &EmailServiceImpl{config: config}
}

// SendContactMessage forwards a contact form submission to the house inbox
func (s *EmailServiceImpl) SendContactMessage(req *ContactRequest) error {
	subject := fmt.Sprintf("Nouveau message de contact: %s", req.Subject)

	text := fmt.Sprintf("Nouveau message reçu via le formulaire de contact.\n\n"+
		"Nom: %s\nEmail: %s\nTéléphone: %s\nSujet: %s\n\nMessage:\n%s\n",
		req.Name, req.Email, req.Phone, req.Subject, req.Message)

	htmlBody := fmt.Sprintf(`<h2>Nouveau message de contact</h2>
<p><strong>Nom:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Téléphone:</strong> %s</p>
<p><strong>Sujet:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`,
		html.EscapeString(req.Name), html.EscapeString(req.Email),
		html.EscapeString(req.Phone), html.EscapeString(req.Subject),
		nl2br(req.Message))

	return s.send(s.config.ContactEmail, subject, htmlBody, text, req.Email)
}

// SendContactConfirmation acknowledges a contact form submission to the sender
func (s *EmailServiceImpl) SendContactConfirmation(req *ContactRequest) error {
	subject := "Nous avons bien reçu votre message"

	text := fmt.Sprintf("Bonjour %s,\n\n"+
		"Nous avons bien reçu votre message et vous répondrons dans les plus brefs délais.\n\n"+
		"Votre message:\n%s\n\nÀ bientôt,\nL'équipe Esther House\n",
		req.Name, req.Message)

	htmlBody := fmt.Sprintf(`<h2>Merci pour votre message</h2>
<p>Bonjour %s,</p>
<p>Nous avons bien reçu votre message et vous répondrons dans les plus brefs délais.</p>
<blockquote>%s</blockquote>
<p>À bientôt,<br>L'équipe Esther House</p>`,
		html.EscapeString(req.Name), nl2br(req.Message))

	return s.send(req.Email, subject, htmlBody, text, "")
}

// SendBookingInquiry forwards a venue booking inquiry to the house inbox
func (s *EmailServiceImpl) SendBookingInquiry(req *BookingRequest) error {
	subject := fmt.Sprintf("Demande de réservation %s: %s", req.Reference, req.EventType)

	text := fmt.Sprintf("Nouvelle demande de réservation de la salle.\n\n"+
		"Référence: %s\nNom: %s\nEmail: %s\nTéléphone: %s\nSociété: %s\n"+
		"Type d'événement: %s\nDate souhaitée: %s\nNombre d'invités: %d\n\nMessage:\n%s\n",
		req.Reference, req.Name, req.Email, req.Phone, req.Company,
		req.EventType, req.EventDate, req.GuestCount, req.Message)

	htmlBody := fmt.Sprintf(`<h2>Nouvelle demande de réservation</h2>
<p><strong>Référence:</strong> %s</p>
<p><strong>Nom:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Téléphone:</strong> %s</p>
<p><strong>Société:</strong> %s</p>
<p><strong>Type d'événement:</strong> %s</p>
<p><strong>Date souhaitée:</strong> %s</p>
<p><strong>Nombre d'invités:</strong> %d</p>
<p><strong>Message:</strong></p>
<p>%s</p>`,
		html.EscapeString(req.Reference), html.EscapeString(req.Name),
		html.EscapeString(req.Email), html.EscapeString(req.Phone),
		html.EscapeString(req.Company), html.EscapeString(req.EventType),
		html.EscapeString(req.EventDate), req.GuestCount, nl2br(req.Message))

	return s.send(s.config.ContactEmail, subject, htmlBody, text, req.Email)
}

// SendBookingConfirmation acknowledges a booking inquiry to the sender
func (s *EmailServiceImpl) SendBookingConfirmation(req *BookingRequest) error {
	subject := fmt.Sprintf("Votre demande de réservation %s", req.Reference)

	text := fmt.Sprintf("Bonjour %s,\n\n"+
		"Nous avons bien reçu votre demande de réservation (référence %s) pour un événement "+
		"de type \"%s\" le %s.\n\n"+
		"Nous reviendrons vers vous rapidement pour en discuter.\n\nÀ bientôt,\nL'équipe Esther House\n",
		req.Name, req.Reference, req.EventType, req.EventDate)

	htmlBody := fmt.Sprintf(`<h2>Demande de réservation reçue</h2>
<p>Bonjour %s,</p>
<p>Nous avons bien reçu votre demande de réservation (référence <strong>%s</strong>)
pour un événement de type « %s » le %s.</p>
<p>Nous reviendrons vers vous rapidement pour en discuter.</p>
<p>À bientôt,<br>L'équipe Esther House</p>`,
		html.EscapeString(req.Name), html.EscapeString(req.Reference),
		html.EscapeString(req.EventType), html.EscapeString(req.EventDate))

	return s.send(req.Email, subject, htmlBody, text, "")
}

// SendNewsletterNotification tells the house inbox about a new subscriber
func (s *EmailServiceImpl) SendNewsletterNotification(email string) error {
	subject := "Nouvelle inscription à la newsletter"
	text := fmt.Sprintf("Nouvelle inscription à la newsletter: %s\n", email)
	htmlBody := fmt.Sprintf("<p>Nouvelle inscription à la newsletter: <strong>%s</strong></p>",
		html.EscapeString(email))
	return s.send(s.config.ContactEmail, subject, htmlBody, text, "")
}

// SendNewsletterWelcome welcomes a new newsletter subscriber
func (s *EmailServiceImpl) SendNewsletterWelcome(email string) error {
	subject := "Bienvenue dans la newsletter Esther House"
	text := "Bonjour,\n\nMerci de votre inscription à notre newsletter. " +
		"Vous recevrez désormais nos actualités et notre programmation.\n\nÀ bientôt,\nL'équipe Esther House\n"
	htmlBody := `<h2>Bienvenue</h2>
<p>Merci de votre inscription à notre newsletter.
Vous recevrez désormais nos actualités et notre programmation.</p>
<p>À bientôt,<br>L'équipe Esther House</p>`
	return s.send(email, subject, htmlBody, text, "")
}

// TestConnection verifies that the SMTP server is reachable
func (s *EmailServiceImpl) TestConnection() error {
	addr := fmt.Sprintf("%s:%s", s.config.SMTPHost, s.config.SMTPPort)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()
	return client.Quit()
}

// send builds a multipart message and delivers it via SMTP. replyTo, when
// set, lets the house answer a notification directly from their mail client.
func (s *EmailServiceImpl) send(to, subject, htmlBody, textBody, replyTo string) error {
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	addr := fmt.Sprintf("%s:%s", s.config.SMTPHost, s.config.SMTPPort)

	message := s.createMIMEMessage(to, subject, htmlBody, textBody, replyTo)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// createMIMEMessage creates a MIME email message with both HTML and text parts
func (s *EmailServiceImpl) createMIMEMessage(to, subject, htmlBody, textBody, replyTo string) string {
	boundary := "boundary123456789"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	if replyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(textBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.String()
}

func nl2br(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

package services

import "context"

// MockEmailService records sent mail for testing/demo
type MockEmailService struct {
	SendErr error

	ContactMessages      []*ContactRequest
	ContactConfirmations []*ContactRequest
	BookingInquiries     []*BookingRequest
	BookingConfirmations []*BookingRequest
	NewsletterNotified   []string
	NewsletterWelcomed   []string
}

func (m *MockEmailService) SendContactMessage(req *ContactRequest) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.ContactMessages = append(m.ContactMessages, req)
	return nil
}

func (m *MockEmailService) SendContactConfirmation(req *ContactRequest) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.ContactConfirmations = append(m.ContactConfirmations, req)
	return nil
}

func (m *MockEmailService) SendBookingInquiry(req *BookingRequest) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.BookingInquiries = append(m.BookingInquiries, req)
	return nil
}

func (m *MockEmailService) SendBookingConfirmation(req *BookingRequest) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.BookingConfirmations = append(m.BookingConfirmations, req)
	return nil
}

func (m *MockEmailService) SendNewsletterNotification(email string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.NewsletterNotified = append(m.NewsletterNotified, email)
	return nil
}

func (m *MockEmailService) SendNewsletterWelcome(email string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.NewsletterWelcomed = append(m.NewsletterWelcomed, email)
	return nil
}

func (m *MockEmailService) TestConnection() error {
	return m.SendErr
}

// MockNewsletterService records newsletter subscriptions for testing/demo
type MockNewsletterService struct {
	SubscribeErr error
	Subscribed   []string
}

func (m *MockNewsletterService) Subscribe(ctx context.Context, email string) error {
	if m.SubscribeErr != nil {
		return m.SubscribeErr
	}
	m.Subscribed = append(m.Subscribed, email)
	return nil
}

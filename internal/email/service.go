package email

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"
)

type Service interface {
	SendAppointmentReminder(ctx context.Context, to, patientName, date, timeOfDay string) error
	SendInvoice(ctx context.Context, to, patientName, invoiceNumber string, pdf []byte) error
	SendOverdueNotice(ctx context.Context, to, patientName, invoiceNumber string, balance float64) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	cfg    Config
	dialer *gomail.Dialer
}

// NewSMTPService returns a gomail-backed sender. Returns the noop
// service when no host is configured so callers never nil-check.
func NewSMTPService(cfg Config) Service {
	if cfg.Host == "" {
		return NewNoopService()
	}
	return &smtpService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpService) send(m *gomail.Message) error {
	m.SetHeader("From", s.cfg.From)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpService) SendAppointmentReminder(_ context.Context, to, patientName, date, timeOfDay string) error {
	m := gomail.NewMessage()
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Appointment reminder")
	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nThis is a reminder of your appointment on %s at %s.\n\nIf you need to reschedule, please call the clinic.",
		patientName, date, timeOfDay))
	return s.send(m)
}

func (s *smtpService) SendInvoice(_ context.Context, to, patientName, invoiceNumber string, pdf []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Invoice "+invoiceNumber)
	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nPlease find invoice %s attached.",
		patientName, invoiceNumber))
	m.Attach(invoiceNumber+".pdf", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))
	return s.send(m)
}

func (s *smtpService) SendOverdueNotice(_ context.Context, to, patientName, invoiceNumber string, balance float64) error {
	m := gomail.NewMessage()
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Overdue invoice "+invoiceNumber)
	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nInvoice %s has an outstanding balance of $%.2f and is past due. Please contact the clinic to arrange payment.",
		patientName, invoiceNumber, balance))
	return s.send(m)
}

type noopService struct{}

// NewNoopService discards all mail. Used when SMTP is not configured.
func NewNoopService() Service {
	return noopService{}
}

func (noopService) SendAppointmentReminder(context.Context, string, string, string, string) error {
	return nil
}

func (noopService) SendInvoice(context.Context, string, string, string, []byte) error {
	return nil
}

func (noopService) SendOverdueNotice(context.Context, string, string, string, float64) error {
	return nil
}

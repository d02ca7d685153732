package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrDelivery = errors.New("report delivery failed")

// Message is a rendered email.
type Message struct {
	Subject string
	HTML    string
}

type BrevoConfig struct {
	APIURL  string
	APIKey  string
	From    string
	To      string
	Timeout time.Duration
}

// BrevoMailer sends transactional email through the Brevo REST API.
type BrevoMailer struct {
	cfg BrevoConfig
}

func NewBrevoMailer(cfg BrevoConfig) *BrevoMailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &BrevoMailer{cfg: cfg}
}

func (m *BrevoMailer) Recipient() string {
	return m.cfg.To
}

type brevoAddress struct {
	Email string `json:"email"`
}

type brevoRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Send posts msg once. Any transport error or non-2xx answer is returned
// wrapped in ErrDelivery with the provider's message when it has one.
func (m *BrevoMailer) Send(msg Message) error {
	agent := fiber.Post(m.cfg.APIURL)
	agent.Set("api-key", m.cfg.APIKey)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.JSON(brevoRequest{
		Sender:      brevoAddress{Email: m.cfg.From},
		To:          []brevoAddress{{Email: m.cfg.To}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	})
	agent.Timeout(m.cfg.Timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrDelivery, errs[0])
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		var apiErr brevoError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: %s (status %d)", ErrDelivery, apiErr.Message, code)
		}
		return fmt.Errorf("%w: status %d", ErrDelivery, code)
	}
	return nil
}

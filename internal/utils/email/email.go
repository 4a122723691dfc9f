package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/config"
	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/models"
)

// digestLimit caps how many insights a digest email lists.
const digestLimit = 3

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendInsightDigest sends the user's top ranked insights as a weekly digest
func (s *Sender) SendInsightDigest(to, name string, insights []models.Insight) error {
	if len(insights) == 0 {
		return nil
	}
	if len(insights) > digestLimit {
		insights = insights[:digestLimit]
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your weekly financial insights"

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\nHere is what your finances are telling us this week:\n\n", name)
	for _, ins := range insights {
		fmt.Fprintf(&body, "%s %s\n%s\nSuggestion: %s\n\n", ins.Icon, ins.Title, ins.Description, ins.Recommendation)
	}
	body.WriteString("See the full list on your dashboard.\n\nBest regards,\nMeu Bolso")
	e.Text = []byte(body.String())

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", to, err)
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

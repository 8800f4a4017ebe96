package submitter

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/linkopen"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/model"
)

// mailto hands the submission to the visitor's mail client as a prefilled link.
type mailto struct {
	log       *zap.Logger
	recipient string
	subject   string
}

func newMailto(recipient, subject string, log *zap.Logger) *mailto {
	return &mailto{log: log, recipient: recipient, subject: subject}
}

func (m *mailto) Channel() Channel { return ChannelMailto }

// Submit always succeeds: whether the mail client acts on the link is not observed.
func (m *mailto) Submit(_ context.Context, s model.Submission) (Receipt, error) {
	receipt := newReceipt(ChannelMailto)
	receipt.Handoff = MailtoLink(m.recipient, m.subject, s)
	m.log.Info("mail handoff prepared", zap.String("id", receipt.ID))
	return receipt, nil
}

// MailBody renders a submission as "Label: value" lines.
func MailBody(s model.Submission) string {
	var b strings.Builder
	for i, l := range s.Lines() {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(l.Label)
		b.WriteString(": ")
		b.WriteString(l.Value)
	}
	return b.String()
}

// MailtoLink builds a mailto URI with percent-encoded subject and body.
func MailtoLink(recipient, subject string, s model.Submission) string {
	return "mailto:" + recipient +
		"?subject=" + linkopen.Escape(subject) +
		"&body=" + linkopen.Escape(MailBody(s))
}

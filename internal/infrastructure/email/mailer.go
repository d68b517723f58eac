// Package email delivers quotation documents over SMTP.
package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"time"

	financeapp "github.com/OpianKyle/opianrer-sub001/internal/application/finance"
	"github.com/OpianKyle/opianrer-sub001/internal/infrastructure/config"
	"go.uber.org/zap"
)

const mimeBoundary = "quotation-mixed-boundary"

// SMTPMailer sends quotation emails with the rendered PDF attached
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger

	// send is swappable for tests; defaults to smtp.SendMail
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		logger: logger,
		send:   smtp.SendMail,
	}
}

var bodyTemplate = template.Must(template.New("quotation_email").Parse(`<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #1a202c;">
<p>Dear {{.ClientName}},</p>
<p>Please find attached your investment quotation:</p>
<ul>
<li>Amount: <strong>{{.Quotation.Amount.StringFixed 2}}</strong></li>
<li>Term: <strong>{{.Quotation.TermMonths}} months</strong></li>
<li>Annual rate: <strong>{{.Quotation.AnnualRate.StringFixed 2}}%</strong></li>
<li>Value at maturity: <strong>{{.Quotation.MaturityValue.StringFixed 2}}</strong></li>
</ul>
<p>The attached document has the full details. Reply to this email if you
would like to proceed or have any questions.</p>
</body>
</html>`))

// SendQuotation emails the rendered quotation PDF to the client
func (m *SMTPMailer) SendQuotation(ctx context.Context, doc financeapp.QuotationDocument, pdf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, doc); err != nil {
		return fmt.Errorf("failed to build email body: %w", err)
	}

	filename := fmt.Sprintf("quotation-%s.pdf", doc.Quotation.ID)
	msg := m.buildMessage(doc.ClientEmail, "Your investment quotation", body.Bytes(), filename, pdf)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := m.send(addr, auth, m.cfg.From, []string{doc.ClientEmail}, msg); err != nil {
		return fmt.Errorf("failed to send quotation email: %w", err)
	}

	m.logger.Info("Quotation emailed",
		zap.String("quotation_id", doc.Quotation.ID.String()),
		zap.String("to", doc.ClientEmail))
	return nil
}

// buildMessage assembles a multipart MIME message with the PDF attached
func (m *SMTPMailer) buildMessage(to, subject string, htmlBody []byte, filename string, pdf []byte) []byte {
	var buf bytes.Buffer

	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.cfg.FromName), m.cfg.From)
	}

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", mimeBoundary)

	fmt.Fprintf(&buf, "--%s\r\n", mimeBoundary)
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	buf.Write(htmlBody)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", mimeBoundary)
	buf.WriteString("Content-Type: application/pdf\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", filename)

	encoded := base64.StdEncoding.EncodeToString(pdf)
	// RFC 2045 line length limit
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	buf.WriteString("\r\n")
	fmt.Fprintf(&buf, "--%s--\r\n", mimeBoundary)

	return buf.Bytes()
}

// Ensure SMTPMailer implements Mailer
var _ financeapp.Mailer = (*SMTPMailer)(nil)

// Package notifier delivers change notification emails over SMTP.
package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"webwatch/internal/common"
	"webwatch/internal/config"
)

// snippetLength bounds how much of the old and new content an email carries.
const snippetLength = 500

// EmailNotifier composes and sends one email per detected change through an
// authenticated, implicit-TLS SMTP session.
type EmailNotifier struct {
	cfg    *config.EmailConfig
	auth   smtp.Auth
	logger zerolog.Logger
	now    func() time.Time
}

// NewEmailNotifier creates a new EmailNotifier.
func NewEmailNotifier(cfg *config.EmailConfig, logger zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		auth:   smtp.PlainAuth("", cfg.From, cfg.Password, cfg.SMTPHost),
		logger: logger.With().Str("component", "EmailNotifier").Logger(),
		now:    time.Now,
	}
}

// NotifyChange sends a single change notification email for the URL. Delivery
// failures are returned to the caller; no retry is attempted here.
func (n *EmailNotifier) NotifyChange(ctx context.Context, url, oldContent, newContent string) error {
	msg := n.buildMessage(url, oldContent, newContent)

	start := time.Now()
	if err := n.send(ctx, msg); err != nil {
		return common.WrapError(err, fmt.Sprintf("sending change email for %s", url))
	}

	n.logger.Info().
		Str("url", url).
		Str("to", n.cfg.To).
		Dur("elapsed", time.Since(start)).
		Msg("Change notification email sent")
	return nil
}

// buildMessage renders the full RFC 5322 message bytes.
func (n *EmailNotifier) buildMessage(url, oldContent, newContent string) []byte {
	subject := fmt.Sprintf("🌐 Website Change Detected: %s", url)
	body := fmt.Sprintf(`🔔 Website Update Alert
-------------------------------
🖥 Website: %s

🕒 Detected Change at: %s

📜 Old Content (First %d chars):
%s

🆕 New Content (First %d chars):
%s

📌 Check the website for full details: %s
`,
		url,
		n.now().Format("2006-01-02 15:04:05"),
		snippetLength, snippet(oldContent),
		snippetLength, snippet(newContent),
		url,
	)

	var sb strings.Builder
	sb.WriteString("From: " + n.cfg.From + "\r\n")
	sb.WriteString("To: " + n.cfg.To + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}

// send runs one SMTP session over an implicit-TLS connection to the relay.
func (n *EmailNotifier) send(ctx context.Context, msg []byte) error {
	dialer := net.Dialer{Timeout: n.cfg.Timeout()}

	netConn, err := dialer.DialContext(ctx, "tcp", n.cfg.Addr())
	if err != nil {
		return common.WrapError(err, "dialing SMTP relay")
	}

	conn := tls.Client(netConn, &tls.Config{ServerName: n.cfg.SMTPHost})
	if err := conn.HandshakeContext(ctx); err != nil {
		_ = netConn.Close()
		return common.WrapError(err, "TLS handshake with SMTP relay")
	}

	client, err := smtp.NewClient(conn, n.cfg.SMTPHost)
	if err != nil {
		_ = conn.Close()
		return common.WrapError(err, "creating SMTP client")
	}
	defer func() { _ = client.Close() }()

	if ok, _ := client.Extension("AUTH"); ok {
		if err := client.Auth(n.auth); err != nil {
			return common.WrapError(err, "SMTP authentication")
		}
	}
	if err := client.Mail(n.cfg.From); err != nil {
		return common.WrapError(err, "SMTP MAIL FROM")
	}
	if err := client.Rcpt(n.cfg.To); err != nil {
		return common.WrapError(err, "SMTP RCPT TO")
	}
	w, err := client.Data()
	if err != nil {
		return common.WrapError(err, "SMTP DATA")
	}
	if _, err := w.Write(msg); err != nil {
		return common.WrapError(err, "writing SMTP message body")
	}
	if err := w.Close(); err != nil {
		return common.WrapError(err, "closing SMTP message body")
	}
	return client.Quit()
}

// snippet returns the first snippetLength characters of s with a trailing
// ellipsis marker. The marker is appended regardless of whether truncation
// happened, matching the notification format this tool has always produced.
func snippet(s string) string {
	runes := []rune(s)
	if len(runes) > snippetLength {
		runes = runes[:snippetLength]
	}
	return string(runes) + "..."
}

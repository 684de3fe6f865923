package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio-backend/config"

	"github.com/google/uuid"
)

const (
	smtpImplicitTLSPort = 465
	smtpDialTimeout     = 30 * time.Second
	smtpIOTimeout       = 60 * time.Second

	// maxPlainSubject keeps an unencoded "Subject: ..." line within 78 octets
	maxPlainSubject = 78 - len("Subject: ")
	// subjectChunkBytes of input base64-encode to a 75-octet encoded-word
	subjectChunkBytes = 45
)

// SMTPTransport sends mail through an authenticated SMTP relay
type SMTPTransport struct {
	host      string
	port      int
	username  string
	password  string
	dialer    *net.Dialer
	tlsConfig *tls.Config
}

// NewSMTPTransport creates an SMTP transport from the mail configuration
func NewSMTPTransport(cfg config.MailConfig) *SMTPTransport {
	return &SMTPTransport{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.Account,
		password: cfg.Password,
		dialer:   &net.Dialer{Timeout: smtpDialTimeout},
	}
}

func (t *SMTPTransport) Name() string {
	return config.TransportSMTP
}

// Verify opens a session, authenticates and quits without sending anything
func (t *SMTPTransport) Verify(ctx context.Context) error {
	c, err := t.connect(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Quit(); err != nil {
		return fmt.Errorf("smtp quit: %w", err)
	}
	return nil
}

// Send delivers msg and returns the Message-ID header it was sent with
func (t *SMTPTransport) Send(ctx context.Context, msg Message) (string, error) {
	messageID := newMessageID(msg.From.Address)

	raw, err := buildMIME(msg, messageID, time.Now())
	if err != nil {
		return "", err
	}

	c, err := t.connect(ctx)
	if err != nil {
		return "", err
	}
	defer c.Close()

	if err := c.Mail(msg.From.Address); err != nil {
		return "", fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := c.Rcpt(rcpt); err != nil {
			return "", fmt.Errorf("smtp RCPT TO: %w", err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return "", fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return "", fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("smtp end of data: %w", err)
	}

	// The message is accepted once DATA completes; a failed QUIT does not undo that
	_ = c.Quit()

	return messageID, nil
}

// connect dials the relay, upgrades to TLS and authenticates
func (t *SMTPTransport) connect(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(t.host, strconv.Itoa(t.port))

	var conn net.Conn
	var err error
	if t.port == smtpImplicitTLSPort {
		tlsDialer := &tls.Dialer{NetDialer: t.dialer, Config: t.tlsClientConfig()}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = t.dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	_ = conn.SetDeadline(time.Now().Add(smtpIOTimeout))

	c, err := smtp.NewClient(conn, t.host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp greeting: %w", err)
	}

	if t.port != smtpImplicitTLSPort {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(t.tlsClientConfig()); err != nil {
				c.Close()
				return nil, fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}

	if t.username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", t.username, t.password, t.host)
			if err := c.Auth(auth); err != nil {
				c.Close()
				return nil, fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	return c, nil
}

func (t *SMTPTransport) tlsClientConfig() *tls.Config {
	if t.tlsConfig != nil {
		return t.tlsConfig
	}
	return &tls.Config{ServerName: t.host, MinVersion: tls.VersionTLS12}
}

// newMessageID returns an RFC 5322 msg-id scoped to the sender's domain
func newMessageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndexByte(from, '@'); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// buildMIME renders msg as a multipart/alternative message with text and HTML parts
func buildMIME(msg Message, messageID string, date time.Time) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	}
	for _, p := range parts {
		if p.content == "" {
			continue
		}
		pw, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create mime part: %w", err)
		}
		qp := quotedprintable.NewWriter(pw)
		if _, err := qp.Write([]byte(p.content)); err != nil {
			return nil, fmt.Errorf("failed to encode mime part: %w", err)
		}
		if err := qp.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode mime part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close mime writer: %w", err)
	}

	to := make([]string, 0, len(msg.To))
	for _, addr := range msg.To {
		to = append(to, (&mail.Address{Address: sanitizeHeader(addr)}).String())
	}

	var out bytes.Buffer
	writeHeader(&out, "From", msg.From.String())
	writeHeader(&out, "To", strings.Join(to, ", "))
	if msg.ReplyTo != "" {
		writeHeader(&out, "Reply-To", (&mail.Address{Address: sanitizeHeader(msg.ReplyTo)}).String())
	}
	writeHeader(&out, "Subject", encodeSubject(msg.Subject))
	writeHeader(&out, "Date", date.Format(time.RFC1123Z))
	writeHeader(&out, "Message-ID", messageID)
	writeHeader(&out, "MIME-Version", "1.0")
	writeHeader(&out, "Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary()))
	out.WriteString("\r\n")
	out.Write(body.Bytes())

	return out.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

// encodeSubject encodes s for the Subject header, folding it so that no line
// exceeds the RFC 5322 limit however long the submitted name is.
func encodeSubject(s string) string {
	encoded := mime.QEncoding.Encode("UTF-8", s)
	if encoded == s {
		if len(s) <= maxPlainSubject {
			return s
		}
		// mime only encodes when it must; long plain text is forced into words
		encoded = base64Words(s)
	}
	// Encoded-words are separated by a single space, which is safe to fold at
	return strings.ReplaceAll(encoded, "?= =?", "?=\r\n =?")
}

// base64Words splits s into B encoded-words on rune boundaries
func base64Words(s string) string {
	var words []string
	for len(s) > 0 {
		n := len(s)
		if n > subjectChunkBytes {
			n = subjectChunkBytes
			for n > 0 && !utf8.RuneStart(s[n]) {
				n--
			}
			if n == 0 {
				n = subjectChunkBytes
			}
		}
		words = append(words, "=?UTF-8?b?"+base64.StdEncoding.EncodeToString([]byte(s[:n]))+"?=")
		s = s[n:]
	}
	return strings.Join(words, " ")
}

// sanitizeHeader strips line breaks so user input cannot add headers
func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"maps"
	"mime"
	"net"
	"net/mail"
	gosmtp "net/smtp"
	"slices"
	"strings"
	"time"

	"github.com/jaytaylor/html2text"

	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/mailer"
)

var (
	// ErrHostRequired is returned by Send when no server is configured.
	ErrHostRequired = errors.New("smtp: host is required")
	// ErrEmptyMessage is returned for messages without a body.
	ErrEmptyMessage = errors.New("smtp: message has no body")
)

// Config describes the SMTP relay. Port 465 style servers need ImplicitTLS;
// everything else is upgraded with STARTTLS when the server offers it.
type Config struct {
	Host               string
	Port               int
	Username           string
	Password           string
	From               string
	ImplicitTLS        bool
	InsecureSkipVerify bool
	Timeout            time.Duration
	// PlainOnly sends text/plain even when an HTML part exists.
	PlainOnly bool
}

// Adapter relays order emails to an SMTP server.
type Adapter struct {
	name    string
	cfg     Config
	headers map[string]string
	base    mailer.BaseAdapter
}

var _ mailer.Messenger = (*Adapter)(nil)

type Option func(*Adapter)

func WithName(name string) Option {
	return func(a *Adapter) {
		if name = strings.TrimSpace(name); name != "" {
			a.name = name
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(a *Adapter) {
		a.base = mailer.NewBaseAdapter(l)
	}
}

// WithHeaders adds headers to every message. Message headers win on conflict.
func WithHeaders(headers map[string]string) Option {
	return func(a *Adapter) {
		maps.Copy(a.headers, headers)
	}
}

// New builds the adapter. Port defaults to 587 and Timeout to ten seconds.
func New(cfg Config, opts ...Option) *Adapter {
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	a := &Adapter{
		name:    "smtp",
		cfg:     cfg,
		headers: map[string]string{},
		base:    mailer.NewBaseAdapter(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

func (a *Adapter) Name() string { return a.name }

func (a *Adapter) Send(ctx context.Context, msg mailer.Message) error {
	if strings.TrimSpace(a.cfg.Host) == "" {
		return ErrHostRequired
	}
	env, err := a.envelope(msg)
	if err != nil {
		return err
	}
	if err := a.deliver(ctx, env); err != nil {
		a.base.LogFailure(a.name, msg, err)
		return err
	}
	a.base.LogSuccess(a.name, msg)
	return nil
}

// envelope is a fully rendered message plus its SMTP routing addresses.
type envelope struct {
	from    *mail.Address
	to      *mail.Address
	headers map[string]string
	body    string
}

func (a *Adapter) envelope(msg mailer.Message) (envelope, error) {
	if msg.IsEmpty() {
		return envelope{}, ErrEmptyMessage
	}
	from, err := mail.ParseAddress(mailer.FirstNonEmpty(msg.From, a.cfg.From))
	if err != nil {
		return envelope{}, fmt.Errorf("smtp: from address: %w", err)
	}
	to, err := mail.ParseAddress(msg.To)
	if err != nil {
		return envelope{}, fmt.Errorf("smtp: to address: %w", err)
	}

	env := envelope{from: from, to: to, headers: maps.Clone(a.headers)}
	for k, v := range msg.Headers {
		if v != "" {
			env.headers[k] = v
		}
	}
	env.headers["From"] = from.String()
	env.headers["To"] = to.String()
	env.headers["Subject"] = encodeSubject(msg.Subject)
	env.headers["MIME-Version"] = "1.0"

	text := msg.TextBody
	if strings.TrimSpace(text) == "" {
		text = plainFromHTML(msg.HTMLBody)
	}
	if a.cfg.PlainOnly || msg.HTMLBody == "" {
		env.headers["Content-Type"] = "text/plain; charset=UTF-8"
		env.body = text
		return env, nil
	}

	boundary := "print-" + strings.ReplaceAll(msg.ID, "-", "")
	if msg.ID == "" {
		boundary = fmt.Sprintf("print-%x", time.Now().UnixNano())
	}
	env.headers["Content-Type"] = "multipart/alternative; boundary=" + boundary
	var b strings.Builder
	for _, part := range []struct{ kind, body string }{{"text/plain", text}, {"text/html", msg.HTMLBody}} {
		fmt.Fprintf(&b, "--%s\r\nContent-Type: %s; charset=UTF-8\r\n\r\n%s\r\n", boundary, part.kind, part.body)
	}
	b.WriteString("--" + boundary + "--")
	env.body = b.String()
	return env, nil
}

// bytes renders headers in a stable order followed by the body.
func (e envelope) bytes() []byte {
	var b strings.Builder
	for _, key := range slices.Sorted(maps.Keys(e.headers)) {
		b.WriteString(key + ": " + e.headers[key] + "\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(e.body)
	return []byte(b.String())
}

func (a *Adapter) deliver(ctx context.Context, env envelope) error {
	client, err := a.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if !a.cfg.ImplicitTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(a.tlsConfig()); err != nil {
				return fmt.Errorf("smtp: starttls: %w", err)
			}
		}
	}
	if a.cfg.Username != "" {
		if err := client.Auth(gosmtp.PlainAuth("", a.cfg.Username, a.cfg.Password, a.cfg.Host)); err != nil {
			return fmt.Errorf("smtp: auth: %w", err)
		}
	}
	if err := client.Mail(env.from.Address); err != nil {
		return fmt.Errorf("smtp: MAIL FROM: %w", err)
	}
	if err := client.Rcpt(env.to.Address); err != nil {
		return fmt.Errorf("smtp: RCPT TO: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp: DATA: %w", err)
	}
	if _, err := w.Write(env.bytes()); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: DATA close: %w", err)
	}
	return client.Quit()
}

func (a *Adapter) dial(ctx context.Context) (*gosmtp.Client, error) {
	addr := net.JoinHostPort(a.cfg.Host, fmt.Sprint(a.cfg.Port))
	dialer := &net.Dialer{Timeout: a.cfg.Timeout}
	var (
		conn net.Conn
		err  error
	)
	if a.cfg.ImplicitTLS {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: a.tlsConfig()}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("smtp: dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	client, err := gosmtp.NewClient(conn, a.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("smtp: handshake: %w", err)
	}
	return client, nil
}

func (a *Adapter) tlsConfig() *tls.Config {
	return &tls.Config{ServerName: a.cfg.Host, InsecureSkipVerify: a.cfg.InsecureSkipVerify}
}

func plainFromHTML(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	text, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		return html
	}
	return strings.TrimSpace(text)
}

// encodeSubject Q-encodes subjects that are not plain ASCII.
func encodeSubject(subject string) string {
	for _, r := range subject {
		if r > 127 {
			return mime.QEncoding.Encode("utf-8", subject)
		}
	}
	return subject
}

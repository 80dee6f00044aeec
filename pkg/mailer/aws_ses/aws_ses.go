package aws_ses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/mailer"
)

var (
	ErrRecipientRequired = errors.New("aws_ses: recipient is required")
	ErrSenderRequired    = errors.New("aws_ses: sender is required")
	ErrEmptyMessage      = errors.New("aws_ses: message has no body")
)

// Config holds SES settings. DryRun logs instead of calling AWS.
type Config struct {
	From             string
	Region           string
	Profile          string
	ConfigurationSet string
	DryRun           bool
}

// Client is the subset of the SES API the adapter calls.
type Client interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Adapter sends order emails through Amazon SES.
type Adapter struct {
	name string
	cfg  Config
	base mailer.BaseAdapter

	once    sync.Once
	client  Client
	loadErr error
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

// WithClient skips loading AWS credentials and uses c instead.
func WithClient(c Client) Option {
	return func(a *Adapter) {
		a.client = c
	}
}

// New builds the adapter. Region defaults to us-east-1; the AWS client is
// loaded on first send unless WithClient supplied one.
func New(cfg Config, opts ...Option) *Adapter {
	if strings.TrimSpace(cfg.Region) == "" {
		cfg.Region = "us-east-1"
	}
	a := &Adapter{name: "aws_ses", cfg: cfg, base: mailer.NewBaseAdapter(nil)}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

func (a *Adapter) Name() string { return a.name }

func (a *Adapter) Send(ctx context.Context, msg mailer.Message) error {
	input, err := a.input(msg)
	if err != nil {
		return err
	}
	if a.cfg.DryRun {
		a.base.Logger().Info("aws_ses dry run",
			logger.F("subject", msg.Subject),
			logger.F("order_id", msg.Metadata["order_id"]),
		)
		return nil
	}

	client, err := a.sesClient(ctx)
	if err != nil {
		a.base.LogFailure(a.name, msg, err)
		return err
	}
	out, err := client.SendEmail(ctx, input)
	if err != nil {
		err = fmt.Errorf("aws_ses: send: %w", err)
		a.base.LogFailure(a.name, msg, err)
		return err
	}
	a.base.LogSuccess(a.name, msg)
	a.base.Logger().Debug("aws_ses accepted", logger.F("message_id", aws.ToString(out.MessageId)))
	return nil
}

func (a *Adapter) input(msg mailer.Message) (*ses.SendEmailInput, error) {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return nil, ErrRecipientRequired
	}
	from := strings.TrimSpace(mailer.FirstNonEmpty(msg.From, a.cfg.From))
	if from == "" {
		return nil, ErrSenderRequired
	}
	if msg.IsEmpty() {
		return nil, ErrEmptyMessage
	}

	input := &ses.SendEmailInput{
		Source:      aws.String(from),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: utf8(msg.Subject),
			Body:    &types.Body{Text: utf8(msg.TextBody), Html: utf8(msg.HTMLBody)},
		},
	}
	if replyTo := strings.TrimSpace(msg.Headers["Reply-To"]); replyTo != "" {
		input.ReplyToAddresses = []string{replyTo}
	}
	if set := strings.TrimSpace(a.cfg.ConfigurationSet); set != "" {
		input.ConfigurationSetName = aws.String(set)
		if id, ok := msg.Metadata["order_id"].(string); ok && id != "" {
			input.Tags = []types.MessageTag{{Name: aws.String("order_id"), Value: aws.String(id)}}
		}
	}
	return input, nil
}

func (a *Adapter) sesClient(ctx context.Context) (Client, error) {
	a.once.Do(func() {
		if a.client != nil {
			return
		}
		opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(a.cfg.Region)}
		if a.cfg.Profile != "" {
			opts = append(opts, awsconfig.WithSharedConfigProfile(a.cfg.Profile))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			a.loadErr = fmt.Errorf("aws_ses: load aws config: %w", err)
			return
		}
		a.client = ses.NewFromConfig(cfg)
	})
	return a.client, a.loadErr
}

// utf8 returns nil for blank bodies so SES omits that part.
func utf8(body string) *types.Content {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	return &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")}
}

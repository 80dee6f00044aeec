package mailer

import (
	"strings"

	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/masking"
)

// BaseAdapter carries the delivery logging every messenger shares.
// Recipients are masked before they reach the log.
type BaseAdapter struct {
	logger logger.Logger
}

func NewBaseAdapter(l logger.Logger) BaseAdapter {
	if l == nil {
		l = &logger.Nop{}
	}
	return BaseAdapter{logger: l}
}

func (b BaseAdapter) LogSuccess(provider string, msg Message) {
	b.Logger().Info("order email delivered", deliveryFields(provider, msg)...)
}

func (b BaseAdapter) LogFailure(provider string, msg Message, err error) {
	b.Logger().Error("order email failed", append(deliveryFields(provider, msg), logger.Err(err))...)
}

func (b BaseAdapter) Logger() logger.Logger {
	if b.logger == nil {
		return &logger.Nop{}
	}
	return b.logger
}

func deliveryFields(provider string, msg Message) []logger.Field {
	return []logger.Field{
		logger.F("provider", provider),
		logger.F("to", masking.Email(msg.To)),
		logger.F("order_id", msg.Metadata["order_id"]),
	}
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

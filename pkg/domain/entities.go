package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecordMeta captures identifiers and audit fields shared across entities.
type RecordMeta struct {
	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt time.Time `bun:",soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureID assigns a UUID when the struct is about to be persisted.
func (m *RecordMeta) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

// JSONMap persists arbitrary metadata fields as JSON.
type JSONMap map[string]any

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value any) error {
	if m == nil {
		return errors.New("JSONMap: Scan on nil pointer")
	}
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("JSONMap: unsupported type %T", value)
	}
}

// OrderRecord is the persisted order row. Only the fields the print links
// read are modelled; the rest of the order lives with the shop.
type OrderRecord struct {
	bun.BaseModel `bun:"table:orders"`
	RecordMeta

	Reference      string      `bun:",unique,nullzero,notnull" json:"reference"`
	CustomerID     string      `bun:",nullzero" json:"customer_id,omitempty"`
	State          OrderStatus `bun:",nullzero,notnull" json:"status"`
	Email          string      `bun:",nullzero" json:"billing_email,omitempty"`
	Locale         string      `bun:",nullzero" json:"locale,omitempty"`
	PlainTextEmail bool        `bun:",notnull,default:false" json:"plain_text_email"`
	Metadata       JSONMap     `bun:"type:jsonb,nullzero" json:"metadata,omitempty"`
}

var _ Order = (*OrderRecord)(nil)

// OrderID implements Order.
func (o *OrderRecord) OrderID() string {
	if o == nil {
		return ""
	}
	return o.Reference
}

// OrderStatus implements Order.
func (o *OrderRecord) OrderStatus() OrderStatus {
	if o == nil {
		return ""
	}
	return o.State.Normalize()
}

// BillingEmail implements Order.
func (o *OrderRecord) BillingEmail() string {
	if o == nil {
		return ""
	}
	return strings.TrimSpace(o.Email)
}

// MetadataOrderKey is the metadata entry holding the order's guest access key.
const MetadataOrderKey = "order_key"

const orderKeyPrefix = "wc_order_"

// OrderKey returns the guest access key, or "" when none was assigned.
func (o *OrderRecord) OrderKey() string {
	if o == nil {
		return ""
	}
	key, _ := o.Metadata[MetadataOrderKey].(string)
	return strings.TrimSpace(key)
}

// EnsureOrderKey assigns a random access key when the order has none and
// returns the key in effect.
func (o *OrderRecord) EnsureOrderKey() string {
	if key := o.OrderKey(); key != "" {
		return key
	}
	if o.Metadata == nil {
		o.Metadata = JSONMap{}
	}
	key := orderKeyPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	o.Metadata[MetadataOrderKey] = key
	return key
}

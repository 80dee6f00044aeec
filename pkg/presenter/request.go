package presenter

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-delivery-notes/pkg/domain"
)

// ParamOrderEmail is the request parameter carrying the guest email on the
// order-tracking page.
const ParamOrderEmail = "order_email"

// Request describes the page being rendered.
type Request struct {
	Page          domain.Page
	Authenticated bool
	// Params holds the merged query and form values.
	Params url.Values
	Locale string
}

// Param returns the trimmed first value for key.
func (r Request) Param(key string) string {
	if r.Params == nil {
		return ""
	}
	return strings.TrimSpace(r.Params.Get(key))
}

package storefront

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/goliatone/go-router"
)

// HeaderCustomerID carries the signed-in customer for the default authenticator.
const HeaderCustomerID = "X-Customer-ID"

// HeaderAdminToken carries the order API token.
const HeaderAdminToken = "X-Admin-Token"

// Authenticator resolves the signed-in customer for a request. An empty id
// means a guest.
type Authenticator interface {
	CustomerID(c router.Context) string
}

// HeaderAuthenticator trusts a header set by an upstream session layer.
type HeaderAuthenticator struct {
	Header string
}

// CustomerID implements Authenticator.
func (a HeaderAuthenticator) CustomerID(c router.Context) string {
	header := a.Header
	if header == "" {
		header = HeaderCustomerID
	}
	return strings.TrimSpace(c.Header(header))
}

type customerKey struct{}

// WithCustomer stores the customer id on ctx.
func WithCustomer(ctx context.Context, customerID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, customerKey{}, customerID)
}

// CustomerFromContext returns the customer id stored by WithCustomer. It
// matches activity.ActorFunc so print link events carry the viewer.
func CustomerFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(customerKey{}).(string)
	return id
}

// viewer returns the signed-in customer, "" for guests.
func (s *Server) viewer(c router.Context) string {
	return s.auth.CustomerID(c)
}

// requestContext carries the viewer into the presenter so activity events
// name the actor.
func (s *Server) requestContext(c router.Context) context.Context {
	return WithCustomer(c.Context(), s.viewer(c))
}

func (s *Server) requireCustomer(next router.HandlerFunc) router.HandlerFunc {
	return func(c router.Context) error {
		if s.viewer(c) == "" {
			return c.JSON(http.StatusUnauthorized, map[string]any{
				"error": "unauthorized",
			})
		}
		return next(c)
	}
}

func (s *Server) requireAdmin(next router.HandlerFunc) router.HandlerFunc {
	return func(c router.Context) error {
		token := c.Header(HeaderAdminToken)
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			return c.JSON(http.StatusForbidden, map[string]any{
				"error": "admin access required",
			})
		}
		return next(c)
	}
}

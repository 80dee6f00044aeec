package storefront

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-delivery-notes/internal/templates"
	"github.com/goliatone/go-delivery-notes/pkg/commands"
	"github.com/goliatone/go-delivery-notes/pkg/domain"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/store"
	"github.com/goliatone/go-delivery-notes/pkg/masking"
	"github.com/goliatone/go-delivery-notes/pkg/presenter"
	"github.com/goliatone/go-router"
)

// Request parameters read by the storefront pages.
const (
	ParamOrderID  = "order_id"
	ParamOrderKey = "key"
	ParamLocale   = "lang"
)

func (s *Server) orderActions(c router.Context) error {
	ctx := s.requestContext(c)
	order, err := s.ownedOrder(ctx, c, c.Param("id", ""))
	if err != nil {
		return err
	}

	actions := domain.Actions{{
		Key:  "view",
		Name: "View",
		URL:  "/my-account/view-order/" + url.PathEscape(order.Reference),
	}}
	actions, err = s.presenter.AccountActions(ctx, presenter.Request{
		Page:          domain.Page{Kind: domain.PageAccount},
		Authenticated: true,
		Params:        requestParams(c),
		Locale:        s.locale(c, order),
	}, order, actions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"order":   order.Reference,
		"actions": actions,
	})
}

func (s *Server) viewOrder(c router.Context) error {
	order, err := s.ownedOrder(c.Context(), c, c.Param("id", ""))
	if errors.Is(err, store.ErrNotFound) {
		return s.notFound(c)
	}
	if err != nil {
		return err
	}
	return s.renderOrder(c, presenter.Request{
		Page:          domain.Page{Kind: domain.PageViewOrder},
		Authenticated: true,
		Params:        requestParams(c),
		Locale:        s.locale(c, order),
	}, order)
}

// orderReceived shows the thank-you page. Anyone but the owning customer
// must present the order key, since the page links the billing email.
func (s *Server) orderReceived(c router.Context) error {
	order, err := s.orders.GetByReference(c.Context(), c.Param("id", ""))
	if errors.Is(err, store.ErrNotFound) {
		return s.notFound(c)
	}
	if err != nil {
		return err
	}

	viewer := s.viewer(c)
	owner := viewer != "" && viewer == order.CustomerID
	if !owner && !orderKeyMatches(order, c.Query(ParamOrderKey)) {
		s.logger.Info("order received page refused",
			logger.F("order_id", order.Reference),
			logger.F("key_sent", c.Query(ParamOrderKey) != ""),
		)
		return s.notFound(c)
	}

	return s.renderOrder(c, presenter.Request{
		Page:          domain.Page{Kind: domain.PageOrderReceived},
		Authenticated: owner,
		Params:        requestParams(c),
		Locale:        s.locale(c, order),
	}, order)
}

// orderTracking shows the order when the submitted email matches its billing
// email, and the lookup form when no order id was sent.
func (s *Server) orderTracking(c router.Context) error {
	params := requestParams(c)
	reference := strings.TrimSpace(params.Get(ParamOrderID))
	if reference == "" {
		return s.renderPage(c, http.StatusOK, templates.RenderRequest{
			Code:   CodeTrackingForm,
			Locale: c.Query(ParamLocale),
			Data: map[string]any{
				"title":       "Order tracking",
				"action":      "/order-tracking",
				"order_email": params.Get(presenter.ParamOrderEmail),
			},
		})
	}

	order, err := s.orders.GetByReference(c.Context(), reference)
	if errors.Is(err, store.ErrNotFound) {
		return s.notFound(c)
	}
	if err != nil {
		return err
	}
	email := presenter.SanitizeEmail(params.Get(presenter.ParamOrderEmail))
	if email == "" || !strings.EqualFold(email, order.BillingEmail()) {
		s.logger.Info("order tracking mismatch",
			logger.F("order_id", reference),
			logger.F("email", masking.Email(email)),
		)
		return s.notFound(c)
	}

	return s.renderOrder(c, presenter.Request{
		Page: domain.Page{
			ID:   s.presenter.Settings().OrderTrackingPageID,
			Kind: domain.PageOrderTracking,
		},
		Authenticated: s.viewer(c) != "",
		Params:        params,
		Locale:        s.locale(c, order),
	}, order)
}

func (s *Server) saveOrder(c router.Context) error {
	var msg commands.SaveOrder
	if err := c.Bind(&msg); err != nil {
		return ErrInvalidBody
	}
	if err := s.commands.SaveOrder.Execute(s.requestContext(c), msg); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"reference": strings.TrimSpace(msg.Reference),
	})
}

func (s *Server) sendOrderEmail(c router.Context) error {
	var msg commands.SendOrderEmail
	if len(c.Body()) > 0 {
		if err := c.Bind(&msg); err != nil {
			return ErrInvalidBody
		}
	}
	msg.Reference = c.Param("id", "")
	if err := s.commands.SendOrderEmail.Execute(s.requestContext(c), msg); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, map[string]any{
		"reference": msg.Reference,
		"status":    "sent",
	})
}

// ownedOrder loads the order and hides it from customers who do not own it.
func (s *Server) ownedOrder(ctx context.Context, c router.Context, reference string) (*domain.OrderRecord, error) {
	order, err := s.orders.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if order.CustomerID == "" || order.CustomerID != s.viewer(c) {
		return nil, fmt.Errorf("%w: order %s", store.ErrNotFound, reference)
	}
	return order, nil
}

func (s *Server) renderOrder(c router.Context, req presenter.Request, order *domain.OrderRecord) error {
	button, err := s.presenter.OrderButton(s.requestContext(c), req, order)
	if err != nil {
		return err
	}
	return s.renderPage(c, http.StatusOK, templates.RenderRequest{
		Code:   CodeOrderPage,
		Locale: req.Locale,
		Data: map[string]any{
			"title":   "Order #" + order.Reference,
			"order":   order.Reference,
			"page":    string(req.Page.Kind),
			"status":  string(order.OrderStatus()),
			"scripts": presenter.ScriptTags(s.presenter.Scripts(req)),
			"button":  button,
		},
	})
}

func (s *Server) notFound(c router.Context) error {
	return s.renderPage(c, http.StatusNotFound, templates.RenderRequest{
		Code:   CodeNotFoundPage,
		Locale: c.Query(ParamLocale),
		Data:   map[string]any{"title": "Page not found"},
	})
}

func (s *Server) renderPage(c router.Context, status int, req templates.RenderRequest) error {
	result, err := s.pages.Render(c.Context(), req)
	if err != nil {
		return err
	}
	c.SetHeader("Content-Type", "text/html; charset=utf-8")
	return c.Status(status).Send([]byte(result.Body))
}

func (s *Server) locale(c router.Context, order *domain.OrderRecord) string {
	if lang := strings.TrimSpace(c.Query(ParamLocale)); lang != "" {
		return lang
	}
	if order != nil {
		return order.Locale
	}
	return ""
}

// orderKeyMatches reports whether key is the order's key. Orders without a
// key never match.
func orderKeyMatches(order *domain.OrderRecord, key string) bool {
	expected := order.OrderKey()
	if expected == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(key)) == 1
}

// requestParams merges query and form values, the way the shop reads request
// input regardless of method.
func requestParams(c router.Context) url.Values {
	params := url.Values{}
	for key, value := range c.Queries() {
		params.Set(key, value)
	}
	if c.Method() != http.MethodPost {
		return params
	}
	contentType := strings.ToLower(c.Header("Content-Type"))
	if !strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		return params
	}
	form, err := url.ParseQuery(string(c.Body()))
	if err != nil {
		return params
	}
	for key, values := range form {
		params[key] = append(params[key], values...)
	}
	return params
}

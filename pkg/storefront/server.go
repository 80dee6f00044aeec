package storefront

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-delivery-notes/internal/templates"
	"github.com/goliatone/go-delivery-notes/pkg/commands"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/store"
	"github.com/goliatone/go-delivery-notes/pkg/mailer"
	"github.com/goliatone/go-delivery-notes/pkg/presenter"
	"github.com/goliatone/go-router"
)

var (
	// ErrPresenterRequired is returned by New without a presenter.
	ErrPresenterRequired = errors.New("storefront: presenter is required")
	// ErrPagesRequired is returned by New without a page renderer.
	ErrPagesRequired = errors.New("storefront: page renderer is required")
	// ErrOrdersRequired is returned by New without an order repository.
	ErrOrdersRequired = errors.New("storefront: order repository is required")
	// ErrInvalidBody is returned by API handlers for undecodable request bodies.
	ErrInvalidBody = errors.New("invalid request body")
)

// PageRenderer renders the storefront page layouts.
type PageRenderer interface {
	RegisterFragments(fragments ...templates.Fragment)
	Render(ctx context.Context, req templates.RenderRequest) (templates.RenderResult, error)
}

// Dependencies wires the storefront routes.
type Dependencies struct {
	Presenter     *presenter.Presenter
	Pages         PageRenderer
	Orders        store.OrderRepository
	Authenticator Authenticator
	Logger        logger.Logger
	// Commands and AdminToken enable the order API under /api.
	Commands     *commands.Registry
	AdminToken   string
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves the customer facing pages that carry print links.
type Server struct {
	server     router.Server[*fiber.App]
	presenter  *presenter.Presenter
	pages      PageRenderer
	orders     store.OrderRepository
	commands   *commands.Registry
	auth       Authenticator
	logger     logger.Logger
	adminToken string
}

// middleware decorates a route handler.
type middleware func(router.HandlerFunc) router.HandlerFunc

// New builds the router on a fiber adapter and registers every route.
func New(deps Dependencies) (*Server, error) {
	if deps.Presenter == nil {
		return nil, ErrPresenterRequired
	}
	if deps.Pages == nil {
		return nil, ErrPagesRequired
	}
	if deps.Orders == nil {
		return nil, ErrOrdersRequired
	}
	if deps.Authenticator == nil {
		deps.Authenticator = HeaderAuthenticator{}
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.AppName == "" {
		deps.AppName = "go-delivery-notes"
	}

	s := &Server{
		presenter:  deps.Presenter,
		pages:      deps.Pages,
		orders:     deps.Orders,
		commands:   deps.Commands,
		auth:       deps.Authenticator,
		logger:     deps.Logger,
		adminToken: strings.TrimSpace(deps.AdminToken),
	}
	s.pages.RegisterFragments(PageFragments()...)

	s.server = router.NewFiberAdapter(func(*fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:               deps.AppName,
			ReadTimeout:           deps.ReadTimeout,
			WriteTimeout:          deps.WriteTimeout,
			ErrorHandler:          s.handleFiberError,
			DisableStartupMessage: true,
		}))
	})
	s.RegisterRoutes(s.server.Router())
	return s, nil
}

// RegisterRoutes mounts the storefront pages and, when enabled, the order API.
func (s *Server) RegisterRoutes(r router.Router[*fiber.App]) {
	account := r.Group("/my-account")
	account.Get("/orders/:id/actions", s.handle(s.orderActions, s.requireCustomer))
	account.Get("/view-order/:id", s.handle(s.viewOrder, s.requireCustomer))

	r.Get("/checkout/order-received/:id", s.handle(s.orderReceived))
	r.Get("/order-tracking", s.handle(s.orderTracking))
	r.Post("/order-tracking", s.handle(s.orderTracking))

	if s.commands != nil && s.adminToken != "" {
		api := r.Group("/api")
		api.Post("/orders", s.handle(s.saveOrder, s.requireAdmin))
		api.Post("/orders/:id/email", s.handle(s.sendOrderEmail, s.requireAdmin))
	}
}

// App exposes the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.server.WrappedRouter()
}

// Listen serves HTTP on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("storefront listening", logger.F("addr", addr))
	return s.server.Serve(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handle applies mws to h, innermost last, and wraps the result with request
// logging and error rendering.
func (s *Server) handle(h router.HandlerFunc, mws ...middleware) router.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return func(c router.Context) error {
		start := time.Now()
		err := h(c)
		fields := []logger.Field{
			logger.F("method", c.Method()),
			logger.F("path", c.Path()),
			logger.F("duration", time.Since(start).String()),
		}
		if err != nil {
			fields = append(fields, logger.F("status", statusFor(err)))
		}
		s.logger.Debug("request", fields...)
		if err != nil {
			return s.writeError(c, err)
		}
		return nil
	}
}

func (s *Server) writeError(c router.Context, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", logger.F("path", c.Path()), logger.Err(err))
		message = "internal error"
	}
	return c.JSON(status, map[string]any{"error": message})
}

// handleFiberError renders errors raised by fiber itself, such as unknown routes.
func (s *Server) handleFiberError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", logger.F("path", c.Path()), logger.Err(err))
		message = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func statusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrInvalidInput), errors.Is(err, mailer.ErrMessengerNotFound):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

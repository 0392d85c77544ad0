package handler

import (
	"context"
	"time"

	"github.com/deppfellow/grubdash/internal/middleware"
	"github.com/deppfellow/grubdash/internal/server"
	"github.com/deppfellow/grubdash/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Generic typed handler plumbing -----------------------------------------

// Request is satisfied by *R when R is a request struct that validates itself.
//
// The pipeline allocates a fresh R for every request, so nothing is shared
// between concurrent requests.
type Request[R any] interface {
	*R
	validation.Validatable
}

// RoutedRequest is a Request addressing one record through a route param.
type RoutedRequest[R any] interface {
	Request[R]
	RouteID() string
}

// HandlerFunc receives a bound and validated request and returns a response.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// FoundFunc receives a bound and validated request together with the record
// its route id resolved to.
type FoundFunc[Req validation.Validatable, T, Res any] func(c echo.Context, req Req, found *T) (Res, error)

// FoundFuncNoContent is FoundFunc for routes that answer without a body.
type FoundFuncNoContent[Req validation.Validatable, T any] func(c echo.Context, req Req, found *T) error

// Finder resolves a route id to a record. Unknown ids must yield a 404 error.
type Finder[T any] func(ctx context.Context, id string) (*T, error)

// ResponseHandler defines how a successful handler result is written to the
// HTTP response and which observability attributes go with it.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error

	// GetOperation returns an operation name used for structured logging.
	GetOperation() string

	AddAttributes(txn *newrelic.Transaction, result any)
}

// envelope is the success body of every JSON response.
type envelope struct {
	Data any `json:"data"`
}

// JSONResponseHandler writes {"data": result} with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, envelope{Data: result})
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	// http.status_code is already set by tracing middleware (EnhanceTracing).
}

// NoContentResponseHandler writes responses with no body (typically 204).
type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result any) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

// lookupFunc resolves the addressed record before validation runs.
type lookupFunc[Req validation.Validatable] func(c echo.Context, req Req) error

// handleRequest is the shared execution pipeline for all handlers:
//
//  1. bind route params and body into req
//  2. run lookup, when set (an unknown id wins over an invalid payload)
//  3. validate req
//  4. run handler and write its result with responseHandler
//
// Each stage is timed, logged through the request-scoped logger and
// reported to New Relic.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	lookup lookupFunc[Req],
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	fail := func(stage string, err error, elapsed time.Duration) error {
		logger.Debug().
			Err(err).
			Dur(stage+"_duration", elapsed).
			Msgf("request %s failed", stage)

		if txn != nil {
			txn.AddAttribute(stage+".status", "failed")
			txn.AddAttribute(stage+".duration_ms", elapsed.Milliseconds())
		}
		return err
	}

	// ---------------- Binding + lookup phase ---------------------------------
	bindStart := time.Now()
	if err := validation.Bind(c, req); err != nil {
		return fail("binding", err, time.Since(bindStart))
	}

	if lookup != nil {
		lookupStart := time.Now()
		if err := lookup(c, req); err != nil {
			return fail("lookup", err, time.Since(lookupStart))
		}
		if txn != nil {
			txn.AddAttribute("lookup.status", "found")
		}
	}

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()
	if err := validation.Validate(req); err != nil {
		return fail("validation", err, time.Since(validationStart))
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler into an echo.HandlerFunc that binds and
// validates a fresh request per call and writes {"data": result} with status.
//
//	handler.Handle(h.Handler, h.createDish, http.StatusCreated)
func Handle[R any, Req Request[R], Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(R)), nil, func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleFound is Handle for routes addressing a single record. The route id
// is resolved with find before the payload is validated, and the record is
// passed to handler.
func HandleFound[R any, Req RoutedRequest[R], T, Res any](
	h Handler,
	find Finder[T],
	handler FoundFunc[Req, T, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		var found *T
		return handleRequest(c, Req(new(R)), findInto[Req](find, &found), func(c echo.Context, req Req) (any, error) {
			return handler(c, req, found)
		}, JSONResponseHandler{status: status})
	}
}

// HandleFoundNoContent is HandleFound for routes that answer without a body.
func HandleFoundNoContent[R any, Req RoutedRequest[R], T any](
	h Handler,
	find Finder[T],
	handler FoundFuncNoContent[Req, T],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		var found *T
		return handleRequest(c, Req(new(R)), findInto[Req](find, &found), func(c echo.Context, req Req) (any, error) {
			return nil, handler(c, req, found)
		}, NoContentResponseHandler{status: status})
	}
}

func findInto[Req interface {
	validation.Validatable
	RouteID() string
}, T any](find Finder[T], dst **T) lookupFunc[Req] {
	return func(c echo.Context, req Req) error {
		record, err := find(c.Request().Context(), req.RouteID())
		if err != nil {
			return err
		}
		*dst = record
		return nil
	}
}

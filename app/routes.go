package app

import (
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/lo"

	"github.com/km-arc/go-inject/framework/container"
	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/routing"
)

// Handlers serves the demo routes, resolving services per request.
// Resolution on a Container is not safe for concurrent use, so requests
// take turns.
type Handlers struct {
	c  *container.Container
	mu sync.Mutex
}

func NewHandlers(c *container.Container) *Handlers {
	return &Handlers{c: c}
}

// Routes mounts the demo routes on r. It must run before any other route
// is added to r.
//
//	GET /greet/{name}
//	GET /api/status
//	GET /container/tokens
func (h *Handlers) Routes(r *routing.Router) {
	r.Middleware(echoRequestID)
	r.Get("/greet/{name}", h.greet)
	r.Get("/api/status", h.apiStatus)
	r.Prefix("/container", func(r *routing.Router) {
		r.Get("/tokens", h.tokens)
	})
}

func (h *Handlers) greet(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)

	g, err := resolve[*Greeter](h, GreeterClass)
	if err != nil {
		writeResolveError(res, err)
		return
	}

	res.Success(map[string]any{
		"greeting": g.Greet(routing.Param(req, "name")),
		"audit":    len(g.Audit().Entries()),
	})
}

func (h *Handlers) apiStatus(w http.ResponseWriter, _ *http.Request) {
	res := gohttp.NewResponse(w)

	client, err := resolve[*APIClient](h, APIToken)
	if err != nil {
		writeResolveError(res, err)
		return
	}
	res.Success(client.Status())
}

func (h *Handlers) tokens(w http.ResponseWriter, _ *http.Request) {
	res := gohttp.NewResponse(w)
	res.Success(TokenNames(h.c))
}

// resolve serialises resolution on the shared container. The lock is
// released even if a constructor panics.
func resolve[T any](h *Handlers, token container.Token) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return container.Resolve[T](h.c, token)
}

// RequestIDHeader carries the request id assigned by the router.
const RequestIDHeader = "X-Request-Id"

func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if id := middleware.GetReqID(req.Context()); id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		next.ServeHTTP(w, req)
	})
}

// TokenNames lists the registered tokens in their printed form.
func TokenNames(c *container.Container) []string {
	return lo.Map(c.Tokens(), func(t container.Token, _ int) string {
		return t.String()
	})
}

func writeResolveError(res *gohttp.Response, err error) {
	if errors.Is(err, container.ErrNoProvider) {
		res.NotFound(err.Error())
		return
	}
	res.ServerError(err.Error())
}

package identity

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/logger"
)

// callbackPath is where the provider redirects the browser.
const callbackPath = "/callback"

// portSpread is how many ports after the configured one are tried when it is taken.
// Loopback redirect URIs for installed apps may use any port.
const portSpread = 10

// Callback is a one-shot loopback listener for the OAuth redirect. The first
// request that carries a code or an error settles it; later requests only
// get the page.
type Callback struct {
	state  string
	port   int
	once   sync.Once
	result chan callbackResult
	srv    *http.Server
	ln     net.Listener
}

type callbackResult struct {
	code string
	err  error
}

func newCallback(port int, state string) *Callback {
	return &Callback{state: state, port: port, result: make(chan callbackResult, 1)}
}

// ListenCallback binds 127.0.0.1 on port, or one of the next few ports if it
// is busy, and starts serving. Port 0 picks any free port.
func ListenCallback(port int, state string) (*Callback, error) {
	c := newCallback(port, state)

	ln, err := listenLoopback(port)
	if err != nil {
		return nil, err
	}
	c.ln = ln
	c.port = ln.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.Handle(callbackPath, c)
	c.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := c.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.settle(callbackResult{err: err})
		}
	}()
	return c, nil
}

func listenLoopback(port int) (net.Listener, error) {
	last := port
	if port > 0 {
		last = port + portSpread
	}
	var firstErr error
	for p := port; p <= last; p++ {
		ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(p)))
		if err == nil {
			if p != port {
				logger.Debug("identity: port %d busy, using %d", port, p)
			}
			return ln, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("listen for callback on ports %d-%d: %w", port, last, firstErr)
}

// ServeHTTP handles the redirect.
func (c *Callback) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := c.parse(q.Get("state"), q.Get("code"), q.Get("error"), q.Get("error_description"))
	c.settle(res)

	page := callbackPage{Title: "Signed in to Rocket Fuel", Message: "You can close this window and return to the terminal."}
	if res.err != nil {
		page = callbackPage{Title: "Sign-in failed", Message: res.err.Error()}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, page); err != nil {
		logger.Warn("identity: render callback page: %v", err)
	}
}

func (c *Callback) parse(state, code, providerErr, description string) callbackResult {
	switch {
	case providerErr == "access_denied":
		return callbackResult{err: domain.ErrAuthCancelled}
	case providerErr != "":
		return callbackResult{err: fmt.Errorf("%w: %s - %s", domain.ErrAuthInvalid, providerErr, description)}
	case state != c.state:
		return callbackResult{err: fmt.Errorf("%w: state mismatch", domain.ErrAuthInvalid)}
	case code == "":
		return callbackResult{err: fmt.Errorf("%w: no authorization code received", domain.ErrAuthInvalid)}
	}
	return callbackResult{code: code}
}

func (c *Callback) settle(res callbackResult) {
	c.once.Do(func() { c.result <- res })
}

// Wait returns the authorization code once the browser comes back.
func (c *Callback) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case res := <-c.result:
		return res.code, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for authorization callback: %w", ctx.Err())
	}
}

// Close stops the listener. It is safe to call on a Callback that never started.
func (c *Callback) Close() error {
	if c.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.srv.Shutdown(ctx)
}

// Port returns the bound port.
func (c *Callback) Port() int {
	return c.port
}

// RedirectURI is the URI to register with the provider for this listener.
func (c *Callback) RedirectURI() string {
	return "http://" + net.JoinHostPort("127.0.0.1", strconv.Itoa(c.port)) + callbackPath
}

type callbackPage struct {
	Title   string
	Message string
}

var pageTemplate = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Rocket Fuel</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; display: grid; place-items: center; height: 100vh; margin: 0; }
h1 { color: #F97316; font-size: 24px; margin: 0 0 8px; }
p { color: #475569; margin: 0; }
</style>
</head>
<body><main><h1>{{.Title}}</h1><p>{{.Message}}</p></main></body>
</html>`))

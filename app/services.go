package app

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-inject/framework/config"
)

// ── AuditLog ──────────────────────────────────────────────────────────────────

// AuditLog records what the demo services did. It is bound as a singleton,
// so every Greeter shares one log.
type AuditLog struct {
	log zerolog.Logger

	mu      sync.Mutex
	entries []string
}

func NewAuditLog(log zerolog.Logger) *AuditLog {
	return &AuditLog{log: log.With().Str("component", "audit").Logger()}
}

// Record appends msg to the log.
func (a *AuditLog) Record(msg string) {
	a.mu.Lock()
	a.entries = append(a.entries, msg)
	a.mu.Unlock()
	a.log.Info().Msg(msg)
}

// Entries returns a copy of the recorded messages, oldest first.
func (a *AuditLog) Entries() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.entries)
}

// ── Greeter ───────────────────────────────────────────────────────────────────

// Greeter is transient: each resolution builds a new one around the shared
// AuditLog.
type Greeter struct {
	audit *AuditLog
}

func NewGreeter(audit *AuditLog) *Greeter {
	return &Greeter{audit: audit}
}

func (g *Greeter) Greet(name string) string {
	g.audit.Record("greeted " + name)
	return fmt.Sprintf("Hello, %s!", name)
}

// Audit returns the log the greeter writes to.
func (g *Greeter) Audit() *AuditLog { return g.audit }

// ── APIClient ─────────────────────────────────────────────────────────────────

// APIClient is built by a factory on every resolution from the "cfg" value.
type APIClient struct {
	BaseURL string
	key     string
}

func NewAPIClient(cfg *config.APIConfig) *APIClient {
	return &APIClient{BaseURL: cfg.BaseURL, key: cfg.Key}
}

// Status describes the client without exposing the key.
type Status struct {
	BaseURL       string `json:"base_url"`
	Authenticated bool   `json:"authenticated"`
}

func (c *APIClient) Status() Status {
	return Status{BaseURL: c.BaseURL, Authenticated: c.key != ""}
}

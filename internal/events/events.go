// Package events publishes validation problems to NATS for downstream
// processing (dashboards, issue filing).
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/doclink/internal/check"
	"git.home.luguber.info/inful/doclink/internal/config"
	"git.home.luguber.info/inful/doclink/internal/logfields"
)

// ProblemEvent is the JSON payload published for each validation problem.
type ProblemEvent struct {
	RunID      string    `json:"run_id"`
	Root       string    `json:"root"`
	SourceFile string    `json:"source_file"`
	SourceLine int       `json:"source_line"`
	Link       string    `json:"link,omitempty"`
	Message    string    `json:"message"`
	Kind       string    `json:"kind"`
	Timestamp  time.Time `json:"timestamp"`
}

// FromProblem builds the event for one validation problem.
func FromProblem(runID, root string, p check.Problem) *ProblemEvent {
	return &ProblemEvent{
		RunID:      runID,
		Root:       root,
		SourceFile: p.SourceFile,
		SourceLine: p.SourceLine,
		Link:       p.Link,
		Message:    p.Message,
		Kind:       p.Kind.String(),
	}
}

// Publisher manages the NATS connection used for problem events.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS using the events configuration.
func NewPublisher(cfg *config.EventsConfig) (*Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("events config is required")
	}
	if !cfg.Enabled {
		return nil, fmt.Errorf("event publication is disabled")
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("doclink"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	slog.Info("NATS publisher initialized",
		slog.String("url", cfg.URL),
		logfields.Subject(cfg.Subject))

	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// PublishProblem publishes one problem event. The timestamp is stamped here
// so callers can reuse a single event value.
func (p *Publisher) PublishProblem(event *ProblemEvent) error {
	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := p.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("failed to flush publication: %w", err)
	}

	slog.Debug("published problem event",
		logfields.File(event.SourceFile),
		logfields.Link(event.Link),
		logfields.Subject(p.subject))
	return nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

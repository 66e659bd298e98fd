package theme

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/HerbHall/schooldesk/internal/event"
	"go.uber.org/zap"
)

// Event topics published by the Controller.
const (
	TopicApplied = "theme.applied"
	TopicSaved   = "theme.saved"
	TopicReset   = "theme.reset"
)

// Load sources, in the order they are consulted.
const (
	SourceLocal   = "local"
	SourceRemote  = "remote"
	SourceDefault = "default"
	SourceSave    = "save"
	SourceReset   = "reset"
)

// ResetSentinel is the draft value an editor sends to request the default theme.
const ResetSentinel = "reset"

// AppliedEvent is the payload of TopicApplied.
type AppliedEvent struct {
	Source    string            `json:"source"`
	Variables map[string]string `json:"variables"`
}

// Cache is the local persistence the Controller reads first and writes
// through. LocalStore satisfies it.
type Cache interface {
	Read(ctx context.Context) (Mapping, bool)
	Write(ctx context.Context, m Mapping) error
}

// Controller resolves, persists, and applies the active theme.
type Controller struct {
	cache   Cache
	remote  Remote
	applier *Applier
	bus     event.Publisher
	logger  *zap.Logger

	mu   sync.Mutex
	last Mapping // most recently applied mapping
}

// Option configures a Controller.
type Option func(*Controller)

// WithRemote enables upstream sync. A nil Remote leaves sync disabled.
func WithRemote(r Remote) Option {
	return func(c *Controller) { c.remote = r }
}

// WithPublisher publishes theme events on p.
func WithPublisher(p event.Publisher) Option {
	return func(c *Controller) { c.bus = p }
}

// NewController wires a Controller.
func NewController(cache Cache, applier *Applier, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{cache: cache, applier: applier, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// source is one step of the load chain. persist asks Load to write a hit
// back to the local cache.
type source struct {
	name    string
	persist bool
	resolve func(ctx context.Context) (Mapping, bool)
}

func (c *Controller) sources() []source {
	return []source{
		{name: SourceLocal, resolve: c.cache.Read},
		{name: SourceRemote, persist: true, resolve: c.fetchRemote},
		{name: SourceDefault, persist: true, resolve: func(context.Context) (Mapping, bool) {
			return Default(), true
		}},
	}
}

// Load returns the active theme and applies it. It never fails: when
// neither the cache nor the remote has a usable theme the default is
// cached and returned.
func (c *Controller) Load(ctx context.Context) (m Mapping) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("theme load panicked, falling back to default", zap.Any("panic", r))
			m = Default()
			c.apply(ctx, m, SourceDefault)
		}
	}()

	for _, s := range c.sources() {
		got, ok := s.resolve(ctx)
		if !ok {
			continue
		}
		if s.persist {
			if err := c.cache.Write(ctx, got); err != nil {
				c.logger.Warn("failed to cache theme", zap.String("source", s.name), zap.Error(err))
			}
		}
		c.logger.Debug("theme loaded", zap.String("source", s.name))
		loadsTotal.WithLabelValues(s.name).Inc()
		c.apply(ctx, got, s.name)
		return got
	}

	// Unreachable: the default source always resolves.
	return Default()
}

// Current returns the cached theme, loading when the cache is empty. The
// cached mapping is re-applied only when it differs from the one last
// applied, which happens when another process writes the same database.
func (c *Controller) Current(ctx context.Context) Mapping {
	m, ok := c.cache.Read(ctx)
	if !ok {
		return c.Load(ctx)
	}
	c.mu.Lock()
	stale := !m.Equal(c.last)
	c.mu.Unlock()
	if stale {
		c.logger.Info("cached theme changed outside this process, re-applying")
		c.apply(ctx, m, SourceLocal)
	}
	return m
}

// Save persists m, applies it, then offers it to the remote. Only the local
// write can fail the call; callers are expected to pass a validated mapping.
func (c *Controller) Save(ctx context.Context, m Mapping) error {
	if err := c.cache.Write(ctx, m); err != nil {
		c.logger.Error("failed to save theme", zap.Error(err))
		savesTotal.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("save theme: %w", err)
	}
	c.apply(ctx, m, SourceSave)
	c.pushRemote(ctx, m)
	savesTotal.WithLabelValues("save", "ok").Inc()
	c.publish(ctx, TopicSaved, m)
	return nil
}

// Reset restores the default theme. Like Save, it writes, applies, then
// pushes; the default is always re-applied so the live style matches storage.
func (c *Controller) Reset(ctx context.Context) (Mapping, error) {
	m := Default()
	if err := c.cache.Write(ctx, m); err != nil {
		c.logger.Error("failed to reset theme", zap.Error(err))
		savesTotal.WithLabelValues("reset", "error").Inc()
		return nil, fmt.Errorf("reset theme: %w", err)
	}
	c.apply(ctx, m, SourceReset)
	c.pushRemote(ctx, m)
	savesTotal.WithLabelValues("reset", "ok").Inc()
	c.publish(ctx, TopicReset, m)
	return m, nil
}

// Draft is an editor's pending change: either a full mapping or a reset.
type Draft struct {
	Reset  bool
	Colors Mapping
}

// ErrInvalidDraft is returned by ParseDraft for anything that is neither an
// object nor the reset sentinel.
var ErrInvalidDraft = errors.New("draft must be a color object or \"reset\"")

// ParseDraft decodes an editor payload: a JSON object of colors, or the
// JSON string "reset".
func ParseDraft(raw json.RawMessage) (Draft, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Draft{}, ErrInvalidDraft
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s != ResetSentinel {
			return Draft{}, ErrInvalidDraft
		}
		return Draft{Reset: true}, nil
	}

	var m Mapping
	if err := json.Unmarshal(raw, &m); err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	return Draft{Colors: m}, nil
}

// Commit routes a draft to Save or Reset and returns the mapping now in effect.
func (c *Controller) Commit(ctx context.Context, d Draft) (Mapping, error) {
	if d.Reset {
		return c.Reset(ctx)
	}
	if err := c.Save(ctx, d.Colors); err != nil {
		return nil, err
	}
	return d.Colors, nil
}

func (c *Controller) fetchRemote(ctx context.Context) (Mapping, bool) {
	if c.remote == nil || !c.remote.Probe(ctx) {
		return nil, false
	}
	return c.remote.Fetch(ctx)
}

func (c *Controller) pushRemote(ctx context.Context, m Mapping) {
	if c.remote == nil || !c.remote.Probe(ctx) {
		return
	}
	if err := c.remote.Push(ctx, m); err != nil {
		c.logger.Warn("remote theme push failed", zap.Error(err))
	}
}

func (c *Controller) apply(ctx context.Context, m Mapping, src string) {
	vars := c.applier.Apply(m)
	c.mu.Lock()
	c.last = m.Clone()
	c.mu.Unlock()
	if c.bus != nil {
		c.bus.Publish(ctx, event.Event{
			Topic:   TopicApplied,
			Source:  "theme",
			Payload: AppliedEvent{Source: src, Variables: vars},
		})
	}
}

func (c *Controller) publish(ctx context.Context, topic string, m Mapping) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(ctx, event.Event{Topic: topic, Source: "theme", Payload: m.Clone()})
}

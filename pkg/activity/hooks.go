package activity

import (
	"context"
	"sync"
	"time"
)

// Verbs emitted by the page commands.
const (
	VerbPageSaved        = "linktags.page.saved"
	VerbPagePublished    = "linktags.page.published"
	VerbPageUnpublished  = "linktags.page.unpublished"
	VerbPublishRejected  = "linktags.page.publish_rejected"
	VerbContentValidated = "linktags.content.validated"
)

// Event captures the fields consumers need to record page and link activity.
type Event struct {
	Verb       string
	ActorID    string
	ObjectType string
	ObjectID   string
	Locale     string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Hook observers receive activity events.
type Hook interface {
	Notify(ctx context.Context, evt Event)
}

// Hooks provides a convenient fan-out collection.
type Hooks []Hook

// Notify delivers the event to every hook, skipping nil entries.
func (h Hooks) Notify(ctx context.Context, evt Event) {
	if len(h) == 0 {
		return
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	for _, hook := range h {
		if hook == nil {
			continue
		}
		hook.Notify(ctx, evt)
	}
}

// Nop is a no-op hook useful for defaults.
type Nop struct{}

func (Nop) Notify(_ context.Context, _ Event) {}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, evt Event)

func (f HookFunc) Notify(ctx context.Context, evt Event) { f(ctx, evt) }

// Recorder keeps every event in memory. Useful in tests and the CLI.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Notify(_ context.Context, evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	evt.Metadata = CloneMetadata(evt.Metadata)
	r.events = append(r.events, evt)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// CloneMetadata makes a shallow copy so hooks can mutate without affecting callers.
func CloneMetadata(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

type actorKey struct{}

// WithActor attaches the identity performing a command.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFrom returns the actor stored in ctx, or "".
func ActorFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}

package activity

import (
	"context"
	"testing"
)

func TestHooksNotifySkipsNilAndStampsTime(t *testing.T) {
	rec := &Recorder{}
	var seen int
	hooks := Hooks{nil, rec, HookFunc(func(ctx context.Context, evt Event) { seen++ })}

	hooks.Notify(context.Background(), Event{Verb: VerbPageSaved, ObjectID: "a"})

	events := rec.Events()
	if len(events) != 1 || seen != 1 {
		t.Fatalf("expected one delivery per hook, got %d/%d", len(events), seen)
	}
	if events[0].OccurredAt.IsZero() {
		t.Fatalf("expected occurred at to be set")
	}
}

func TestRecorderClonesMetadata(t *testing.T) {
	rec := &Recorder{}
	meta := map[string]any{"title": "A"}
	rec.Notify(context.Background(), Event{Metadata: meta})
	meta["title"] = "B"

	if got := rec.Events()[0].Metadata["title"]; got != "A" {
		t.Fatalf("expected recorded metadata to be isolated, got %v", got)
	}
}

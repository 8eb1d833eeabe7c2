package options

import (
	"errors"
	"fmt"

	opts "github.com/goliatone/go-options"
	layering "github.com/goliatone/go-options/layering"
)

// Scope names used when layering link settings.
const (
	ScopeSystem   = "system"
	ScopeWebspace = "webspace"
	ScopeRequest  = "request"
)

// Snapshot captures the payload contributed by one scope.
type Snapshot struct {
	Scope      opts.Scope
	Data       map[string]any
	SnapshotID string
}

// SystemSnapshot wraps configuration defaults.
func SystemSnapshot(data map[string]any) Snapshot {
	return Snapshot{Scope: opts.NewScope(ScopeSystem, opts.ScopePrioritySystem, opts.WithScopeLabel("System")), Data: data}
}

// WebspaceSnapshot wraps per-webspace overrides.
func WebspaceSnapshot(data map[string]any) Snapshot {
	return Snapshot{Scope: opts.NewScope(ScopeWebspace, opts.ScopePriorityTenant, opts.WithScopeLabel("Webspace")), Data: data}
}

// RequestSnapshot wraps values taken from the current request.
func RequestSnapshot(data map[string]any) Snapshot {
	return Snapshot{Scope: opts.NewScope(ScopeRequest, opts.ScopePriorityUser, opts.WithScopeLabel("Request")), Data: data}
}

// Resolver merges scope snapshots so higher priority scopes win.
type Resolver struct {
	options *opts.Options[map[string]any]
}

// ErrNoSnapshots signals that at least one snapshot must be provided.
var ErrNoSnapshots = errors.New("options: at least one snapshot is required")

// NewResolver merges snapshots ordered by scope priority. Snapshots with no
// data are skipped.
func NewResolver(snapshots ...Snapshot) (*Resolver, error) {
	layers := make([]opts.Layer[map[string]any], 0, len(snapshots))
	for _, snap := range snapshots {
		if snap.Scope.Name == "" {
			return nil, fmt.Errorf("options: snapshot scope name is required")
		}
		if len(snap.Data) == 0 {
			continue
		}
		layerOpts := []opts.LayerOption[map[string]any]{}
		if snap.SnapshotID != "" {
			layerOpts = append(layerOpts, opts.WithSnapshotID[map[string]any](snap.SnapshotID))
		}
		layers = append(layers, opts.NewLayer(snap.Scope, layering.Clone(snap.Data), layerOpts...))
	}
	if len(layers) == 0 {
		return nil, ErrNoSnapshots
	}

	stack, err := opts.NewStack(layers...)
	if err != nil {
		return nil, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return nil, err
	}
	return &Resolver{options: merged}, nil
}

// Resolve fetches the value stored at path and the scopes that contributed it.
func (r *Resolver) Resolve(path string) (any, opts.Trace, error) {
	if r == nil || r.options == nil {
		return nil, opts.Trace{Path: path}, fmt.Errorf("options: resolver not initialised")
	}
	return r.options.ResolveWithTrace(path)
}

// ResolveString resolves path and ensures it is a string.
func (r *Resolver) ResolveString(path string) (string, opts.Trace, error) {
	value, trace, err := r.Resolve(path)
	if err != nil {
		return "", trace, err
	}
	str, ok := value.(string)
	if !ok {
		return "", trace, fmt.Errorf("options: path %s is not a string", path)
	}
	return str, trace, nil
}

// StringOr resolves path as a string, returning def when it is missing or empty.
func (r *Resolver) StringOr(path, def string) string {
	value, _, err := r.ResolveString(path)
	if err != nil || value == "" {
		return def
	}
	return value
}

// BoolOr resolves path as a bool, returning def when it is missing.
func (r *Resolver) BoolOr(path string, def bool) bool {
	value, _, err := r.Resolve(path)
	if err != nil {
		return def
	}
	b, ok := value.(bool)
	if !ok {
		return def
	}
	return b
}

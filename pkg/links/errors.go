package links

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownProvider is matched by every UnknownProviderError.
	ErrUnknownProvider = errors.New("links: unknown provider")
	// ErrInvalidProviderKey is returned when registering under an empty key.
	ErrInvalidProviderKey = errors.New("links: provider key is required")
	// ErrNilProvider is returned when registering a nil provider.
	ErrNilProvider = errors.New("links: provider is required")
	// ErrMissingPool is returned when the engine is built without a pool.
	ErrMissingPool = errors.New("links: provider pool is required")
)

// UnknownProviderError reports a tag addressing a provider key that was never
// registered. It signals a misconfigured tag, not a missing target.
type UnknownProviderError struct {
	Key string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("links: unknown provider %q", e.Key)
}

// Is lets errors.Is match ErrUnknownProvider.
func (e *UnknownProviderError) Is(target error) bool {
	return target == ErrUnknownProvider
}

// ValidationError lists the tags of a document whose targets failed validation.
type ValidationError struct {
	Results map[string]ValidationResult
}

func (e *ValidationError) Error() string {
	if len(e.Results) == 0 {
		return "links: validation failed"
	}
	tags := make([]string, 0, len(e.Results))
	for raw := range e.Results {
		tags = append(tags, raw)
	}
	sort.Strings(tags)
	return fmt.Sprintf("links: %d invalid link(s): %s", len(tags), strings.Join(tags, ", "))
}

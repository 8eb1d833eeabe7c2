package page

import "context"

type requestKey struct{}
type rolesKey struct{}

// Request carries the host information of the request links are rendered for.
type Request struct {
	Host   string
	Scheme string
}

// WithRequest attaches request information used for URL generation.
func WithRequest(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFrom returns the request stored in ctx, if any.
func RequestFrom(ctx context.Context) (Request, bool) {
	if ctx == nil {
		return Request{}, false
	}
	req, ok := ctx.Value(requestKey{}).(Request)
	return req, ok
}

// WithRoles attaches the roles of the identity viewing the links.
func WithRoles(ctx context.Context, roles ...string) context.Context {
	return context.WithValue(ctx, rolesKey{}, append([]string(nil), roles...))
}

// RolesFrom returns the roles stored in ctx.
func RolesFrom(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	roles, _ := ctx.Value(rolesKey{}).([]string)
	return roles
}

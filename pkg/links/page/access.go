package page

import (
	"context"
	"strings"

	"github.com/goliatone/go-linktags/pkg/domain"
)

// AccessChecker decides whether the current identity may see a page.
type AccessChecker interface {
	CanView(ctx context.Context, page domain.Page) (bool, error)
}

// AllowAll grants access to every page.
type AllowAll struct{}

func (AllowAll) CanView(ctx context.Context, page domain.Page) (bool, error) { return true, nil }

// RoleAccessChecker grants access to pages without permissions, or when one of
// the roles attached with WithRoles is listed in the page permissions.
type RoleAccessChecker struct{}

func (RoleAccessChecker) CanView(ctx context.Context, page domain.Page) (bool, error) {
	if len(page.Permissions) == 0 {
		return true, nil
	}
	for _, role := range RolesFrom(ctx) {
		for _, allowed := range page.Permissions {
			if strings.EqualFold(role, allowed) {
				return true, nil
			}
		}
	}
	return false, nil
}

// Package page provides the default "page" link provider. It resolves tag
// hrefs against a store.PageRepository in one bulk lookup, filters pages the
// caller may not see, and builds locale aware URLs.
//
//	pool, _ := links.NewProviderPool(
//		links.WithProvider("page", page.MustNew(page.Dependencies{Repository: repo})),
//	)
//	ctx = page.WithRequest(ctx, page.Request{Host: "sulu.io", Scheme: "https"})
package page

// Package nav resolves human-readable page titles for client routes.
package nav

import "strings"

// FallbackTitle is returned when no rule matches a path.
const FallbackTitle = "Faturëime"

// rule matches a normalized path against either an exact string or a
// pattern whose "*" segments stand for runs of decimal digits.
type rule struct {
	exact   string
	pattern []string
	title   string
}

// Ordered rule table. More specific routes come before their parent routes;
// first match wins.
var rules = []rule{
	{exact: "/", title: "Home"},
	{exact: "/login", title: "Login"},
	{exact: "/signup", title: "Sign Up"},
	{exact: "/about", title: "About"},
	{exact: "/verify-email", title: "Verify Email"},
	{exact: "/accept-invitation", title: "Accept Invitation"},
	{exact: "/businesses", title: "Businesses"},
	{exact: "/articles", title: "Articles"},
	{exact: "/taxes", title: "Taxes"},
	{exact: "/users", title: "Users"},
	{pattern: []string{"businesses", "*", "invoices", "new"}, title: "New Invoice"},
	{pattern: []string{"businesses", "*", "invoices", "*", "edit"}, title: "Edit Invoice"},
	{pattern: []string{"businesses", "*", "invoices", "*"}, title: "Invoice"},
	{pattern: []string{"businesses", "*", "invoices"}, title: "Invoices"},
	{pattern: []string{"businesses", "*", "articles"}, title: "Articles"},
}

// Classify maps a route path to its display title. The function is total:
// any input, including empty or malformed paths, yields a title. Query
// strings and fragments are stripped before matching.
func Classify(path string) string {
	path = normalize(path)

	for _, r := range rules {
		if r.exact != "" {
			if path == r.exact {
				return r.title
			}
			continue
		}
		if matchPattern(path, r.pattern) {
			return r.title
		}
	}
	return FallbackTitle
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return path
}

func matchPattern(path string, pattern []string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) != len(pattern) {
		return false
	}
	for i, p := range pattern {
		if p == "*" {
			if !isDigits(segs[i]) {
				return false
			}
			continue
		}
		if segs[i] != p {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

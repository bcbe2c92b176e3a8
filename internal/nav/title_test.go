package nav

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		path string
		want string
	}{
		{"home", "/", "Home"},
		{"login", "/login", "Login"},
		{"signup", "/signup", "Sign Up"},
		{"about", "/about", "About"},
		{"verify email", "/verify-email", "Verify Email"},
		{"accept invitation", "/accept-invitation", "Accept Invitation"},
		{"businesses", "/businesses", "Businesses"},
		{"taxes", "/taxes", "Taxes"},
		{"users", "/users", "Users"},
		{"invoice list", "/businesses/12/invoices", "Invoices"},
		{"invoice detail", "/businesses/12/invoices/7", "Invoice"},
		{"invoice edit beats detail and list", "/businesses/12/invoices/7/edit", "Edit Invoice"},
		{"invoice new", "/businesses/12/invoices/new", "New Invoice"},
		{"business articles", "/businesses/3/articles", "Articles"},
		{"unknown path falls back", "/nonexistent", FallbackTitle},
		{"empty string falls back", "", FallbackTitle},
		{"malformed path falls back", "no-leading-slash", FallbackTitle},
		{"non-numeric param falls back", "/businesses/abc/invoices", FallbackTitle},
		{"query string stripped", "/login?next=%2Fusers", "Login"},
		{"fragment stripped", "/businesses/12/invoices#top", "Invoices"},
		{"query on parameterized route", "/businesses/12/invoices/7/edit?draft=1", "Edit Invoice"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.path); got != tc.want {
				t.Errorf("Classify(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	// Repeated invocation with identical input must yield identical output
	for i := 0; i < 3; i++ {
		if got := Classify("/businesses/5/invoices/9/edit"); got != "Edit Invoice" {
			t.Fatalf("iteration %d: got %q", i, got)
		}
	}
}

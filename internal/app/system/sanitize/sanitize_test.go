// internal/app/system/sanitize/sanitize_test.go
package sanitize_test

import (
	"testing"

	"github.com/tandemhq/tandem/internal/app/system/sanitize"
)

func TestText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Laundry duty", "Laundry duty"},
		{"trims", "  Chez Nous  ", "Chez Nous"},
		{"strips tags", "<b>Dishes</b>", "Dishes"},
		{"strips script", `before<script>alert("x")</script>after`, "beforeafter"},
		{"keeps ampersand", "Bills & Payments", "Bills & Payments"},
		{"keeps apostrophe", "grandma's visit", "grandma's visit"},
	}
	for _, tc := range cases {
		if got := sanitize.Text(tc.in); got != tc.want {
			t.Errorf("%s: Text(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

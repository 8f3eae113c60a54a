package session

import "testing"

func TestCredentials_Validate(t *testing.T) {
	t.Parallel()

	creds := NewCredentials("admin", "s3cret")

	cases := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"exact match", "admin", "s3cret", true},
		{"wrong password", "admin", "nope", false},
		{"wrong username", "root", "s3cret", false},
		{"case sensitive username", "Admin", "s3cret", false},
		{"case sensitive password", "admin", "S3cret", false},
		{"no trimming", "admin ", "s3cret", false},
		{"no trimming password", "admin", " s3cret", false},
		{"both empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := creds.Validate(tc.username, tc.password); got != tc.want {
				t.Fatalf("Validate(%q, %q) = %v, want %v", tc.username, tc.password, got, tc.want)
			}
		})
	}
}

package pgdsn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	dsn := Build("billing", "localhost", "5432", "postgres", "secret")
	assert.Equal(t, "dbname=billing host=localhost port=5432 user=postgres password=secret", dsn)
}

// TestBuildQuoting covers the values libpq would misparse unquoted.
func TestBuildQuoting(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     string
	}{
		{"space", "p w", `password='p w'`},
		{"quote", "it's", `password='it\'s'`},
		{"backslash", `a\b`, `password='a\\b'`},
		{"empty", "", `password=''`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dsn := Build("billing", "localhost", "5432", "postgres", tc.password)
			assert.Contains(t, dsn, tc.want)
		})
	}
}

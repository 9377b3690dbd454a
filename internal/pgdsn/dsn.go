// Package pgdsn assembles libpq keyword/value connection strings.
package pgdsn

import "strings"

// Build returns a keyword/value DSN understood by lib/pq for the given
// connection settings.
func Build(name, host, port, user, password string) string {
	pairs := []struct {
		key   string
		value string
	}{
		{"dbname", name},
		{"host", host},
		{"port", port},
		{"user", user},
		{"password", password},
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(quote(p.value))
	}
	return b.String()
}

var escaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quote wraps a value in single quotes when libpq would otherwise
// misparse it (spaces, quotes, backslashes, empty values).
func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	return "'" + escaper.Replace(v) + "'"
}

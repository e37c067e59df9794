package socrata

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Param is one named value substituted into a Query template.
type Param struct {
	Name  string
	Value string
}

// Query is a request path template plus the values for its {name}
// placeholders. Values are only ever substituted by Encode, which escapes
// them, so user input never reaches the URL as raw text.
type Query struct {
	Path   string
	Params []Param
}

// Lookup returns the value of the named parameter.
func (q Query) Lookup(name string) (string, bool) {
	for _, p := range q.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Encode expands the template into an escaped query string such as
// "?%24limit=50&%24where=...". The template is split into key/value pairs
// before substitution, so a value containing '&' or '=' stays inside its
// pair, and single quotes are doubled so a value cannot close a SoQL string
// literal.
func (q Query) Encode() (string, error) {
	raw := strings.TrimPrefix(q.Path, "?")
	if raw == "" {
		return "", nil
	}

	values := url.Values{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, tmpl, _ := strings.Cut(pair, "=")
		expanded, err := q.expand(tmpl)
		if err != nil {
			return "", err
		}
		values.Add(key, expanded)
	}
	return "?" + values.Encode(), nil
}

func (q Query) expand(tmpl string) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(tmpl, func(token string) string {
		name := token[1 : len(token)-1]
		v, ok := q.Lookup(name)
		if !ok {
			if missing == "" {
				missing = name
			}
			return token
		}
		return EscapeLiteral(v)
	})
	if missing != "" {
		return "", fmt.Errorf("no value for query parameter %q", missing)
	}
	return out, nil
}

// EscapeLiteral escapes a value for use inside a single-quoted SoQL string.
func EscapeLiteral(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

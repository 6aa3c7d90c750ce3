package page

import "strings"

// declaration is one property: value pair of an inline style attribute.
type declaration struct {
	prop  string
	value string
}

func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.value + ";"
	}
	return strings.Join(parts, " ")
}

func styleValue(style, prop string) (string, bool) {
	for _, d := range parseStyle(style) {
		if d.prop == prop {
			return d.value, true
		}
	}
	return "", false
}

func setStyleValue(style, prop, value string) string {
	decls := parseStyle(style)
	for i := range decls {
		if decls[i].prop == prop {
			decls[i].value = value
			return formatStyle(decls)
		}
	}
	return formatStyle(append(decls, declaration{prop: prop, value: value}))
}

func removeStyleValue(style, prop string) string {
	decls := parseStyle(style)
	kept := decls[:0]
	for _, d := range decls {
		if d.prop != prop {
			kept = append(kept, d)
		}
	}
	return formatStyle(kept)
}

// shorthandTokens splits a shorthand value into its top-level components.
// Function arguments such as url(red.png) stay inside their token, so words
// nested in them are never read as values of their own.
func shorthandTokens(v string) []string {
	var (
		tokens []string
		depth  int
		start  = -1
	)
	for i, r := range v {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n' || r == ','):
			if start >= 0 {
				tokens = append(tokens, v[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, v[start:])
	}
	return tokens
}

package resource

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// Params holds caller-supplied parameter values keyed by parameter name.
type Params map[string]any

// Substitute replaces every {key} placeholder in template with the string
// form of params[key]. Placeholders without a matching key are left as-is.
// The template is scanned once, so a substituted value that itself looks like
// a placeholder is never expanded.
func Substitute(template string, params Params) string {
	if len(params) == 0 {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	scanTemplate(template,
		func(lit string) { b.WriteString(lit) },
		func(name, raw string) {
			if v, ok := params[name]; ok {
				b.WriteString(stringify(v))
				return
			}
			b.WriteString(raw)
		},
	)
	return b.String()
}

// Placeholders returns the distinct placeholder names in template, in order
// of first appearance.
func Placeholders(template string) []string {
	var names []string
	seen := make(map[string]bool)
	scanTemplate(template, func(string) {}, func(name, _ string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	return names
}

// Match extracts parameter values from uri by matching it against template.
// Each placeholder matches one path segment and is percent-decoded. A
// placeholder used more than once must bind the same value everywhere.
func Match(template, uri string) (Params, bool) {
	var (
		pattern strings.Builder
		names   []string
	)
	pattern.WriteByte('^')
	scanTemplate(template,
		func(lit string) { pattern.WriteString(regexp.QuoteMeta(lit)) },
		func(name, _ string) {
			names = append(names, name)
			pattern.WriteString(`([^/?#]*)`)
		},
	)
	pattern.WriteByte('$')

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, false
	}
	m := re.FindStringSubmatch(uri)
	if m == nil {
		return nil, false
	}

	params := make(Params, len(names))
	for i, name := range names {
		v, err := url.PathUnescape(m[i+1])
		if err != nil {
			return nil, false
		}
		if prev, ok := params[name]; ok && prev != v {
			return nil, false
		}
		params[name] = v
	}
	return params, true
}

// scanTemplate splits template into literal runs and {name} placeholders.
// For "{{id}" the innermost brace opens the placeholder.
func scanTemplate(template string, literal func(string), placeholder func(name, raw string)) {
	for len(template) > 0 {
		open := strings.IndexByte(template, '{')
		if open < 0 {
			literal(template)
			return
		}
		end := strings.IndexByte(template[open+1:], '}')
		if end < 0 {
			literal(template)
			return
		}
		end += open + 1
		name := template[open+1 : end]
		if i := strings.LastIndexByte(name, '{'); i >= 0 {
			literal(template[:open+1+i])
			template = template[open+1+i:]
			continue
		}
		literal(template[:open])
		if name == "" {
			literal("{}")
		} else {
			placeholder(name, template[open:end+1])
		}
		template = template[end+1:]
	}
}

func stringify(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

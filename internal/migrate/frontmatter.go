package migrate

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoFrontmatter is returned when a file has no ---/--- header.
var ErrNoFrontmatter = errors.New("invalid frontmatter format")

var frontmatterRe = regexp.MustCompile(`(?s)^---[ \t]*\r?\n(.*?)\r?\n---[ \t]*\r?\n(.*)$`)

// Field is one key: value line of a legacy header.
type Field struct {
	Key   string
	Value string
}

// Document is a legacy post: flat key/value frontmatter in file order, and
// the body as written.
type Document struct {
	Fields []Field
	Body   string
}

// ParseFrontmatter splits a legacy post into its header and body. Only flat
// "key: value" lines are understood; a line without a colon is dropped and
// one surrounding quote is stripped from each end of a value.
func ParseFrontmatter(content string) (*Document, error) {
	m := frontmatterRe.FindStringSubmatch(content)
	if m == nil {
		return nil, ErrNoFrontmatter
	}

	doc := &Document{Body: m[2]}
	for _, line := range strings.Split(m[1], "\n") {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := unquote(strings.TrimSpace(line[idx+1:]))
		doc.Set(key, value)
	}
	return doc, nil
}

func unquote(v string) string {
	if strings.HasPrefix(v, `"`) || strings.HasPrefix(v, `'`) {
		v = v[1:]
	}
	if strings.HasSuffix(v, `"`) || strings.HasSuffix(v, `'`) {
		v = v[:len(v)-1]
	}
	return v
}

// Get returns the value for key, or "".
func (d *Document) Get(key string) string {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Set replaces the value of key in place, or appends it.
func (d *Document) Set(key, value string) {
	for i := range d.Fields {
		if d.Fields[i].Key == key {
			d.Fields[i].Value = value
			return
		}
	}
	d.Fields = append(d.Fields, Field{Key: key, Value: value})
}

// Render writes the document back out. Values containing a space are
// single-quoted.
func (d *Document) Render() string {
	var b strings.Builder
	b.WriteString("---\n")
	for _, f := range d.Fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		if strings.Contains(f.Value, " ") {
			b.WriteString("'" + f.Value + "'")
		} else {
			b.WriteString(f.Value)
		}
		b.WriteString("\n")
	}
	b.WriteString("---\n")
	b.WriteString(d.Body)
	return b.String()
}

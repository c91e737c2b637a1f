package gradle

import (
	"regexp"
	"strings"

	"github.com/oshokin/bowl/internal/bowlerr"
)

// Group names of the property pattern.
const (
	groupKey     = "key"
	groupEquals  = "eql"
	groupLeft    = "left"
	groupValue   = "value"
	groupRight   = "right"
	groupComment = "comment"
)

// valueChars is the character class a property value can be made of.
const valueChars = `[a-zA-Z0-9._]`

// validValue matches values that read back unchanged after being written.
var validValue = regexp.MustCompile(`^` + valueChars + `*$`)

// Property matches the assignment of one key in a build file line.
type Property struct {
	key     string
	pattern *regexp.Regexp
	value   int
}

// NewProperty compiles the matcher for key. The key is matched literally.
func NewProperty(key string) (*Property, error) {
	if key == "" {
		return nil, bowlerr.NewValidationError("property key must not be empty")
	}

	pattern := regexp.MustCompile(
		`(?P<` + groupKey + `>` + regexp.QuoteMeta(key) + `\s+)` +
			`(?P<` + groupEquals + `>=\s+)?` +
			`(?P<` + groupLeft + `>['"]?)` +
			`(?P<` + groupValue + `>` + valueChars + `*)` +
			`(?P<` + groupRight + `>['"]?)` +
			`(?P<` + groupComment + `>.*)`)

	return &Property{
		key:     key,
		pattern: pattern,
		value:   pattern.SubexpIndex(groupValue),
	}, nil
}

// Key returns the property name.
func (p *Property) Key() string {
	return p.key
}

// Value returns the property value assigned on line, if line assigns it.
func (p *Property) Value(line string) (string, bool) {
	match := p.pattern.FindStringSubmatch(trimEOL(line))
	if match == nil {
		return "", false
	}

	return match[p.value], true
}

// Replace returns line with the property value swapped for value.
// The second result is false and line is returned as is when line does not assign the property.
func (p *Property) Replace(line, value string) (string, bool) {
	body := trimEOL(line)

	loc := p.pattern.FindStringSubmatchIndex(body)
	if loc == nil {
		return line, false
	}

	start, end := loc[2*p.value], loc[2*p.value+1]

	var sb strings.Builder

	sb.Grow(len(line) - (end - start) + len(value))
	sb.WriteString(line[:start])
	sb.WriteString(value)
	sb.WriteString(line[end:])

	return sb.String(), true
}

// IsReadable reports whether value would be read back in full after being written.
func IsReadable(value string) bool {
	return validValue.MatchString(value)
}

// trimEOL strips a trailing "\n" or "\r\n".
func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")

	return strings.TrimSuffix(line, "\r")
}

package helper

import (
	"event_rsvp/model"

	"github.com/gosimple/slug"
)

const fallbackSlug = "event"

// BaseSlug is the slug an event asks for before collisions are resolved.
// Templates are named by their template name, live events by their title.
func BaseSlug(e model.Event) string {
	source := e.Title
	if e.IsTemplate() {
		source = e.TemplateName
	}
	s := slug.Make(source)
	if s == "" {
		return fallbackSlug
	}
	return s
}

// NextSlug returns the candidate tried after s collided: a trailing number
// is incremented ("foo0" -> "foo1", "foo9" -> "foo10"), otherwise "0" is appended.
func NextSlug(s string) string {
	i := len(s)
	for i > 0 && isDigit(s[i-1]) {
		i--
	}
	if i == len(s) {
		return s + "0"
	}
	return s[:i] + incrementDecimal(s[i:])
}

// UniqueSlug walks candidates starting at base until taken reports a free one.
// The walk is strictly increasing, so it ends after at most one step per existing event.
func UniqueSlug(base string, taken func(candidate string) (bool, error)) (string, error) {
	candidate := base
	for {
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		candidate = NextSlug(candidate)
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func incrementDecimal(digits string) string {
	out := []byte(digits)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] < '9' {
			out[i]++
			return string(out)
		}
		out[i] = '0'
	}
	return "1" + string(out)
}

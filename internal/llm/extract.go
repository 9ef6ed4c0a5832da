package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// MalformedOutputError reports model output that could not be parsed into the
// expected JSON shape. It keeps the raw text so operators can tell prompt
// drift apart from a provider outage.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

var (
	arrayRe  = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)
	objectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// StripFences removes markdown code fences models like to wrap JSON in.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ExtractArray finds a top-level JSON array of objects in raw model output
// and unmarshals it into v. It first matches the outermost [...] block; if no
// match, it tries the whole text. Failure is a *MalformedOutputError.
func ExtractArray(raw string, v interface{}) error {
	return extract(raw, arrayRe, v)
}

// ExtractObject does the same for a top-level {...} object.
func ExtractObject(raw string, v interface{}) error {
	return extract(raw, objectRe, v)
}

func extract(raw string, re *regexp.Regexp, v interface{}) error {
	clean := StripFences(raw)
	candidate := clean
	if match := re.FindString(clean); match != "" {
		candidate = match
	}
	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return &MalformedOutputError{Raw: raw, Err: err}
	}
	return nil
}

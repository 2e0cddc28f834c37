package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPayload is reported when the model returned nothing to decode
var ErrEmptyPayload = errors.New("empty JSON payload")

// PayloadError reports LLM text that could not be decoded as the expected JSON value
type PayloadError struct {
	Raw string
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("decode LLM JSON payload: %v", e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// StripFences removes a leading ```json or ``` fence and a trailing ``` fence
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "```json"):
		text = text[len("```json"):]
	case strings.HasPrefix(text, "```"):
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// DecodeJSON extracts the JSON payload from LLM text into v.
// On error v must be treated as undefined; the error is always a *PayloadError.
func DecodeJSON(text string, v any) error {
	payload := StripFences(text)
	if payload == "" {
		return &PayloadError{Raw: text, Err: ErrEmptyPayload}
	}

	err := json.Unmarshal([]byte(payload), v)
	if err == nil {
		return nil
	}

	// Models sometimes wrap the object in prose; retry on the outermost object
	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start >= 0 && end > start && (start > 0 || end < len(payload)-1) {
		if retryErr := json.Unmarshal([]byte(payload[start:end+1]), v); retryErr == nil {
			return nil
		}
	}

	return &PayloadError{Raw: text, Err: err}
}

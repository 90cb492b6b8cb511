package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// fallbackMessage is used when an error body cannot be parsed at all.
const fallbackMessage = "Request failed"

// APIError is a normalized non-2xx API response. Message is the display
// string extracted from the error body; StatusCode is kept alongside so
// callers can branch on it (e.g. force re-login on 401) without changing
// the message rule.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is an APIError with a 401 status.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// errorDetail is the backend's polymorphic "detail" field: either a plain
// string or a list of field errors shaped {msg} or {message}.
type errorDetail struct {
	text   string
	fields []fieldError
	kind   detailKind
}

type detailKind int

const (
	detailAbsent detailKind = iota
	detailString
	detailFieldList
)

type fieldError struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (f fieldError) display() string {
	if f.Msg != "" {
		return f.Msg
	}
	return f.Message
}

// parseDetail resolves the detail union from a decoded JSON value.
func parseDetail(v interface{}) errorDetail {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return errorDetail{kind: detailAbsent}
	}
	raw, ok := obj["detail"]
	if !ok {
		return errorDetail{kind: detailAbsent}
	}

	switch d := raw.(type) {
	case string:
		return errorDetail{kind: detailString, text: d}
	case []interface{}:
		fields := make([]fieldError, 0, len(d))
		for _, item := range d {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			var fe fieldError
			if msg, ok := entry["msg"].(string); ok {
				fe.Msg = msg
			}
			if msg, ok := entry["message"].(string); ok {
				fe.Message = msg
			}
			fields = append(fields, fe)
		}
		return errorDetail{kind: detailFieldList, fields: fields}
	default:
		return errorDetail{kind: detailAbsent}
	}
}

// normalizeErrorBody extracts the single display message from an error
// response body:
//   - detail is a string: that string
//   - detail is a field-error list: the messages joined with ", "
//   - body parses but has no usable detail: "HTTP error <status>"
//   - body does not parse as JSON: "Request failed"
func normalizeErrorBody(status int, body []byte) string {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fallbackMessage
	}

	detail := parseDetail(decoded)
	switch detail.kind {
	case detailString:
		return detail.text
	case detailFieldList:
		parts := make([]string, 0, len(detail.fields))
		for _, fe := range detail.fields {
			parts = append(parts, fe.display())
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("HTTP error %d", status)
	}
}

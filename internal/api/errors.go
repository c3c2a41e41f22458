package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a rejected upstream call. Fields carries per-field messages for
// validation failures.
type Error struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "upstream request failed"
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.Status)
	}
	return msg
}

// IsAuthExpired reports whether the call failed because credentials expired.
func (e *Error) IsAuthExpired() bool {
	return e.Status == http.StatusUnauthorized
}

// AsError attempts to unwrap an error into an upstream *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// parseError builds an *Error from an error-status response body. The
// upstream sends either {message, errors:{field:msg}} or
// {message, errors:[{field,message}]}; both collapse to a flat field map.
func parseError(status int, body []byte) *Error {
	apiErr := &Error{Status: status, Message: http.StatusText(status)}

	var probe struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return apiErr
	}

	if probe.Message != "" {
		apiErr.Message = probe.Message
	} else if probe.Error != "" {
		apiErr.Message = probe.Error
	}
	apiErr.Fields = parseFieldErrors(probe.Errors)
	return apiErr
}

func parseFieldErrors(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	var asMap map[string]string
	if err := json.Unmarshal(raw, &asMap); err == nil && len(asMap) > 0 {
		return asMap
	}

	var asList []struct {
		Field   string `json:"field"`
		Path    string `json:"path"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &asList); err != nil || len(asList) == 0 {
		return nil
	}

	fields := make(map[string]string, len(asList))
	for _, item := range asList {
		key := item.Field
		if key == "" {
			key = item.Path
		}
		if key == "" {
			continue
		}
		msg := item.Message
		if msg == "" {
			msg = item.Msg
		}
		fields[key] = msg
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// envelope is the wire shape every response body is wrapped in.
// The version field is named exactly "v"; clients key off it.
type envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// envelopeVersion is bumped only on breaking envelope changes.
const envelopeVersion = 1

// EnvelopeTransformer wraps every response body in the versioned
// envelope. Success bodies land under "data"; errors carry a flat
// error string plus code/message/details when available.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, err := strconv.Atoi(status)
	if err != nil {
		code = 500
	}

	if code < 400 {
		return &envelope{
			V:       envelopeVersion,
			Success: true,
			Data:    v,
		}, nil
	}

	env := &envelope{
		V:       envelopeVersion,
		Success: false,
	}

	if apiErr, ok := v.(*APIError); ok {
		env.Error = apiErr.Message
		env.Code = apiErr.Code
		env.Message = apiErr.Message
		env.Details = apiErr.Details
		return env, nil
	}

	if e, ok := v.(error); ok {
		env.Error = e.Error()
		return env, nil
	}

	env.Error = "request failed"
	return env, nil
}

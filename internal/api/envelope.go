package api

import (
	"errors"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the "v" field of every response body. Clients refuse
// envelopes with a version they do not know.
const EnvelopeVersion = 1

// Envelope wraps every JSON response body.
//
// Success: {"v":1,"success":true,"data":...}
// Failure: {"v":1,"success":false,"code":"NOT_FOUND","message":"...","details":...}
type Envelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer is a huma transformer that wraps response bodies in an
// Envelope. Error statuses produce the failure shape.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if env, ok := v.(*Envelope); ok {
		return env, nil
	}

	code, _ := strconv.Atoi(status)

	var apiErr *APIError
	if err, ok := v.(error); ok && errors.As(err, &apiErr) {
		return &Envelope{
			Version: EnvelopeVersion,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	if code >= 400 {
		env := &Envelope{Version: EnvelopeVersion, Code: statusToCode(code)}
		switch e := v.(type) {
		case huma.StatusError:
			env.Message = e.Error()
		case error:
			env.Message = e.Error()
		}
		return env, nil
	}

	return &Envelope{Version: EnvelopeVersion, Success: true, Data: v}, nil
}

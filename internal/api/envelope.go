package api

import (
	"errors"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wardrobeapp/wardrobe-server/internal/http/response"
)

// EnvelopeVersion is the version reported in every response envelope.
const EnvelopeVersion = response.EnvelopeVersion

// APIEnvelope wraps successful responses and plain errors.
type APIEnvelope = response.Envelope //nolint:revive // Matches APIError

// APIErrorEnvelope wraps errors that carry a code.
type APIErrorEnvelope = response.ErrorEnvelope //nolint:revive // Matches APIError

// EnvelopeTransformer wraps every huma response body in the envelope:
//
//	{"v":1,"success":true,"data":{...}}
//	{"v":1,"success":false,"code":"VALIDATION","message":"...","details":{...}}
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, _ := strconv.Atoi(status)

	var apiErr *APIError
	if e, ok := v.(error); ok && errors.As(e, &apiErr) {
		return response.Failure(apiErr.Code, apiErr.Message, apiErr.Details), nil
	}
	if e, ok := v.(error); ok {
		return APIEnvelope{Version: EnvelopeVersion, Error: e.Error()}, nil
	}

	if code >= 400 {
		return APIEnvelope{Version: EnvelopeVersion, Data: v}, nil
	}
	return response.Success(v), nil
}

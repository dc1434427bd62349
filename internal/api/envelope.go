package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/http/response"
)

// EnvelopeTransformer wraps every JSON body in the versioned envelope:
// {"v":1,"success":true,"data":...} on success, and
// {"v":1,"success":false,"code":...,"message":...,"details":...} on error.
// Raw handlers outside the OpenAPI layer produce the same shape through
// the response package.
func EnvelopeTransformer(ctx huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &response.Envelope{
			Version: response.EnvelopeVersion,
			Success: false,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	code, err := strconv.Atoi(status)
	if err != nil {
		code = 200
	}

	return &response.Envelope{
		Version: response.EnvelopeVersion,
		Success: code < 400,
		Data:    v,
	}, nil
}

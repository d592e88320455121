package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is embedded into every JSON body the API returns. Success is
// 1 or 0 because the storefront clients compare it numerically.
type Response struct {
	Success int    `json:"success"`
	Message string `json:"message,omitempty"`
}

func OK() Response {
	return Response{
		Success: 1,
	}
}

func Error(msg string) Response {
	return Response{
		Success: 0,
		Message: msg,
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "max":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "url", "uri":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid URL", err.Field()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}

	return Response{
		Success: 0,
		Message: strings.Join(errMsgs, ", "),
	}
}

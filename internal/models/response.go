package models

type Response struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message,omitempty"`
	Error       string            `json:"error,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Data        interface{}       `json:"data,omitempty"`
}

// SuccessResponse wraps data with a user-facing message.
func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

func ValidationResponse(err string, fields map[string]string) Response {
	return Response{
		Success:     false,
		Error:       err,
		FieldErrors: fields,
	}
}

package constants

// Response envelope field keys. Every JSON endpoint answers with
// {status, message, data, errors?}; the reset-password page is the one
// deliberate exception (it renders HTML, see handler.ResetPassword).
const (
	ResponseFieldStatus  = "status"
	ResponseFieldMessage = "message"
	ResponseFieldData    = "data"
	ResponseFieldErrors  = "errors"
)

func BuildResponse(status int, message string, data any) map[string]any {
	return map[string]any{
		ResponseFieldStatus:  status,
		ResponseFieldMessage: message,
		ResponseFieldData:    data,
	}
}

func BuildErrorResponse(status int, message string, errs any) map[string]any {
	response := map[string]any{
		ResponseFieldStatus:  status,
		ResponseFieldMessage: message,
		ResponseFieldData:    nil,
	}

	if errs != nil {
		response[ResponseFieldErrors] = errs
	}

	return response
}

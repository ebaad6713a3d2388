package contract

import "github.com/google/uuid"

type ResponseError struct {
	Successful bool   `json:"successful"`
	Code       any    `json:"code"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

type Response struct {
	Successful bool   `json:"successful"`
	Code       string `json:"code"`
	Message    string `json:"message,omitempty"`
	TrackID    string `json:"x_track_id"`
	Result     any    `json:"result"`
}

// NewSuccess builds the standard success envelope with a fresh track id.
func NewSuccess(message string, result any) Response {
	return Response{
		Successful: true,
		Code:       "success",
		Message:    message,
		TrackID:    uuid.NewString(),
		Result:     result,
	}
}

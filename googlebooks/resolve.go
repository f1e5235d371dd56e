package googlebooks

import (
	"encoding/json"
	"net/http"
)

// resolve turns a completed HTTP exchange into a decoded response or a
// classified error. The body shape is decided by the status class alone: 2xx
// bodies are decoded as the success payload, everything else as the error
// envelope. Content is never sniffed.
func resolve(statusCode int, body []byte) (*VolumeResponse, error) {
	if statusCode >= 200 && statusCode < 300 {
		var response VolumeResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, &DecodeError{StatusCode: statusCode, Raw: string(body), Err: err}
		}
		return &response, nil
	}

	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &DecodeError{StatusCode: statusCode, Raw: string(body), Err: err}
	}

	if envelope.Error.Code == http.StatusTooManyRequests {
		return nil, &RateLimitError{Message: envelope.Error.Message}
	}

	apiErr := &APIError{
		Code:    envelope.Error.Code,
		Message: envelope.Error.Message,
		Status:  envelope.Error.Status,
	}
	if len(envelope.Error.Errors) > 0 {
		apiErr.Reason = envelope.Error.Errors[0].Reason
	}
	return nil, apiErr
}

package dart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wonny/dartfin/pkg/httputil"
)

// DART status codes
const (
	StatusOK          = "000"
	StatusNoData      = "013" // 조회된 데이터가 없음
	StatusInvalidKey  = "010" // 등록되지 않은 키
	StatusRateLimited = "020" // 요청 제한 초과
)

// ErrUnexpectedPayload is returned when a response is neither the expected document nor a DART status
var ErrUnexpectedPayload = errors.New("unexpected DART payload")

// APIError is a non-success DART status carried in a 200 response
type APIError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("DART API error %s: %s", e.Status, e.Message)
}

// StatusError is a non-200 HTTP response
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status code %d", e.Endpoint, e.Code)
}

// checkStatus maps a DART envelope status to an error; 000 is success
func checkStatus(status, message string) error {
	if status == StatusOK {
		return nil
	}
	return &APIError{Status: status, Message: message}
}

// isRetryableError checks if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return httputil.IsRetryableError(se.Code)
	}

	var ae *APIError
	if errors.As(err, &ae) || errors.Is(err, ErrUnexpectedPayload) {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Network-related errors that are retryable
	retryablePatterns := []string{
		"connection reset by peer",
		"eof",
		"connection refused",
		"network unreachable",
		"timeout",
		"connect: operation timed out",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

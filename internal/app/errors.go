package app

import (
	"fmt"
	"net/http"
)

type DomainError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func domainError(status int, code, message string, details any) *DomainError {
	return &DomainError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func errUnauthorized() *DomainError {
	return domainError(http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required", nil)
}

func errValidation(message string, details any) *DomainError {
	return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", message, details)
}

func errGenerationUnavailable() *DomainError {
	return domainError(http.StatusServiceUnavailable, "GENERATION_UNAVAILABLE", "Story generation is not configured", nil)
}

func errServiceUnavailable(code, message string) *DomainError {
	return domainError(http.StatusServiceUnavailable, code, message, nil)
}

func errGenerationFailed(err error) *DomainError {
	return domainError(http.StatusBadGateway, "GENERATION_FAILED", "Story generation failed", map[string]any{"reason": err.Error()})
}

package services

// ServiceError represents a typed error with an HTTP status code. Business
// rejections from the discount evaluator are not ServiceErrors; they come
// back as data so the caller can show the rejection message without a retry
// affordance.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

package form

// ErrorKind 区分校验失败的种类，便于调用方按类处理。
type ErrorKind string

const (
	KindEmptyName            ErrorKind = "empty_name"
	KindNoFields             ErrorKind = "no_fields"
	KindEmptyFieldLabel      ErrorKind = "empty_field_label"
	KindRequiredFieldMissing ErrorKind = "required_field_missing"
	KindLengthExceeded       ErrorKind = "length_exceeded"
	KindPatternMismatch      ErrorKind = "pattern_mismatch"
	KindRangeViolation       ErrorKind = "range_violation"
)

// ValidationError 携带失败种类与面向用户的本地化文案。
// 校验失败永远是本地可恢复的：提交被拒绝，不产生部分保存。
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(kind ErrorKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

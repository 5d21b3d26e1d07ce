package errors

var (
	ErrUnknown               = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument       = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrNotFound              = New(ERR_NOT_FOUND, "not found")
	ErrProcessing            = New(ERR_PROCESSING, "error processing")
	ErrConfiguration         = New(ERR_CONFIGURATION, "configuration error")
	ErrError                 = New(ERR_ERROR, "generic error")
	ErrBlockInvalid          = New(ERR_BLOCK_INVALID, "block invalid")
	ErrBlockNotFound         = New(ERR_BLOCK_NOT_FOUND, "block not found")
	ErrInvalidLinkage        = New(ERR_INVALID_LINKAGE, "header does not extend previous header")
	ErrMissingTransitionTime = New(ERR_MISSING_TRANSITION_TIME, "transition time required at difficulty boundary")
	ErrTargetMismatch        = New(ERR_TARGET_MISMATCH, "header target does not match expected target")
	ErrUnknownNetwork        = New(ERR_UNKNOWN_NETWORK, "unknown network")
	ErrCheckpointMismatch    = New(ERR_CHECKPOINT_MISMATCH, "header does not match checkpoint")
)

// errors initialization functions

func NewUnknownError(message string, params ...interface{}) error {
	return New(ERR_UNKNOWN, message, params...)
}
func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewNotFoundError(message string, params ...interface{}) error {
	return New(ERR_NOT_FOUND, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewError(message string, params ...interface{}) error {
	return New(ERR_ERROR, message, params...)
}
func NewBlockInvalidError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID, message, params...)
}
func NewBlockNotFoundError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_NOT_FOUND, message, params...)
}
func NewInvalidLinkageError(message string, params ...interface{}) error {
	return New(ERR_INVALID_LINKAGE, message, params...)
}
func NewMissingTransitionTimeError(message string, params ...interface{}) error {
	return New(ERR_MISSING_TRANSITION_TIME, message, params...)
}
func NewTargetMismatchError(message string, params ...interface{}) error {
	return New(ERR_TARGET_MISMATCH, message, params...)
}
func NewUnknownNetworkError(message string, params ...interface{}) error {
	return New(ERR_UNKNOWN_NETWORK, message, params...)
}
func NewCheckpointMismatchError(message string, params ...interface{}) error {
	return New(ERR_CHECKPOINT_MISMATCH, message, params...)
}

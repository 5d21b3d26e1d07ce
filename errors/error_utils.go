// Package errors provides the coded error type used across the header
// verification code and helpers for deciding what a caller should do with a
// rejected header.
package errors

// IsRetryableError reports whether the caller can retry the same header after
// fixing its own inputs. Only a missing interval-opening timestamp qualifies:
// the header itself may be fine, the caller's bookkeeping was incomplete.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		return tErr.Code() == ERR_MISSING_TRANSITION_TIME
	}

	return false
}

// IsForkPointError reports whether the header could not extend the supplied
// previous header. The caller should look for a different parent or resync
// from a common ancestor rather than discard the header outright.
func IsForkPointError(err error) bool {
	if err == nil {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		switch tErr.Code() {
		case ERR_INVALID_LINKAGE, ERR_BLOCK_NOT_FOUND:
			return true
		}
	}

	return false
}

// IsChainViolationError reports whether the header, and every header built on
// it, must be discarded. The peer that served it should be treated as
// misbehaving.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true if the header violates consensus rules or a checkpoint
func IsChainViolationError(err error) bool {
	if err == nil {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		switch tErr.Code() {
		case ERR_TARGET_MISMATCH, ERR_CHECKPOINT_MISMATCH, ERR_BLOCK_INVALID:
			return true
		}
	}

	return false
}

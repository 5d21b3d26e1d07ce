package errors

import "fmt"

// ERR is the closed set of error codes carried by *Error.
type ERR int32

const (
	ERR_UNKNOWN ERR = iota
	ERR_INVALID_ARGUMENT
	ERR_NOT_FOUND
	ERR_PROCESSING
	ERR_CONFIGURATION
	ERR_ERROR
	ERR_BLOCK_INVALID
	ERR_BLOCK_NOT_FOUND
	ERR_INVALID_LINKAGE
	ERR_MISSING_TRANSITION_TIME
	ERR_TARGET_MISMATCH
	ERR_UNKNOWN_NETWORK
	ERR_CHECKPOINT_MISMATCH
)

var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	2:  "NOT_FOUND",
	3:  "PROCESSING",
	4:  "CONFIGURATION",
	5:  "ERROR",
	6:  "BLOCK_INVALID",
	7:  "BLOCK_NOT_FOUND",
	8:  "INVALID_LINKAGE",
	9:  "MISSING_TRANSITION_TIME",
	10: "TARGET_MISMATCH",
	11: "UNKNOWN_NETWORK",
	12: "CHECKPOINT_MISMATCH",
}

func (x ERR) valid() bool {
	_, ok := ERR_name[int32(x)]
	return ok
}

// Enum returns the symbolic name of the code.
func (x ERR) Enum() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return fmt.Sprintf("ERR(%d)", int32(x))
}

func (x ERR) String() string {
	return x.Enum()
}

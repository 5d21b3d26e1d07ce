package settings

import (
	"math"

	"github.com/ordishs/gocore"
)

func getString(key, defaultValue string) string {
	value, found := gocore.Config().Get(key)
	if !found {
		return defaultValue
	}

	return value
}

func getInt(key string, defaultValue int) int {
	value, found := gocore.Config().GetInt(key)
	if !found {
		return defaultValue
	}

	return value
}

// getUint32 reads an int setting, clamping it into the uint32 range.
func getUint32(key string, defaultValue uint32) uint32 {
	value := getInt(key, int(defaultValue))

	switch {
	case value < 0:
		return 0
	case uint64(value) > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(value) //nolint:gosec // range checked above
	}
}

func getBool(key string, defaultValue bool) bool {
	return gocore.Config().GetBool(key, defaultValue)
}

package ulogger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bsv-blockchain/spvchain/ulogger"
	"github.com/ordishs/gocore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var lines []map[string]interface{}

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))

		lines = append(lines, m)
	}

	return lines
}

func TestZeroLoggerJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.New("headerchain",
		ulogger.WithWriter(&buf),
		ulogger.WithPrettyLogs(false),
		ulogger.WithLevel("DEBUG"),
	)

	logger.Debugf("accepted header at height %d", 20161)
	logger.Infof("tip %s", "0000000004c386ce")
	logger.Warnf("orphan header")
	logger.Errorf("rejected: %v", "target mismatch")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "accepted header at height 20161", lines[0]["message"])
	assert.Equal(t, "headerchain", lines[0]["service"])
	assert.Equal(t, "info", lines[1]["level"])
	assert.Equal(t, "warn", lines[2]["level"])
	assert.Equal(t, "error", lines[3]["level"])
}

func TestZeroLoggerLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected int
		gocore   int
	}{
		{"DEBUG", 4, int(gocore.DEBUG)},
		{"INFO", 3, int(gocore.INFO)},
		{"WARN", 2, int(gocore.WARN)},
		{"ERROR", 1, int(gocore.ERROR)},
		{"bogus", 3, int(gocore.INFO)},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer

			logger := ulogger.New("test",
				ulogger.WithWriter(&buf),
				ulogger.WithPrettyLogs(false),
				ulogger.WithLevel(tt.level),
			)

			assert.Equal(t, tt.gocore, logger.LogLevel())

			logger.Debugf("d")
			logger.Infof("i")
			logger.Warnf("w")
			logger.Errorf("e")

			assert.Len(t, decodeLines(t, &buf), tt.expected)
		})
	}
}

func TestZeroLoggerNewInheritsWriterAndLevel(t *testing.T) {
	var buf bytes.Buffer

	parent := ulogger.New("parent",
		ulogger.WithWriter(&buf),
		ulogger.WithPrettyLogs(false),
		ulogger.WithLevel("WARN"),
	)

	child := parent.New("child")
	child.Infof("dropped")
	child.Warnf("kept")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "child", lines[0]["service"])
	assert.Equal(t, "kept", lines[0]["message"])

	dup := parent.Duplicate(ulogger.WithLevel("DEBUG"))
	dup.Debugf("now visible")
	assert.Len(t, decodeLines(t, &buf), 2)
}

func TestZeroLoggerPretty(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.New("spv",
		ulogger.WithWriter(&buf),
		ulogger.WithPrettyLogs(true),
	)

	logger.Infof("checkpoint %d", 40320)

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "spv")
	assert.Contains(t, out, "checkpoint 40320")
}

func TestLoggerTypes(t *testing.T) {
	_, ok := ulogger.New("x", ulogger.WithLoggerType("gocore")).(*ulogger.GoCoreLogger)
	assert.True(t, ok)

	_, ok = ulogger.New("x", ulogger.WithPrettyLogs(false)).(*ulogger.ZLoggerWrapper)
	assert.True(t, ok)

	var l ulogger.Logger = ulogger.TestLogger{}
	l.Infof("discarded")
	assert.Equal(t, ulogger.TestLogger{}, l.New("child"))
}

func TestGoCoreLogger(t *testing.T) {
	logger := ulogger.NewGoCoreLogger("gocorewarn", ulogger.WithLevel("WARN"))
	assert.Equal(t, int(gocore.WARN), logger.LogLevel())

	assert.NotPanics(t, func() {
		logger.SetLogLevel("DEBUG")
		logger.New("gocorechild").Infof("child %d", 1)
		logger.Duplicate().Debugf("duplicate")
	})
}

package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_PrefixesNonJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("test", "info", &buf)
	logger.Info("hello")
	require.Contains(t, buf.String(), "📦 ")
	require.Contains(t, buf.String(), "hello")
}

func TestGetLogLevel_DefaultsToWarn(t *testing.T) {
	require.NoError(t, os.Unsetenv("GPCK_LOG_LEVEL"))
	require.Equal(t, "warn", GetLogLevel())
}

func TestGetLogLevel_RespectsEnv(t *testing.T) {
	t.Setenv("GPCK_LOG_LEVEL", "debug")
	require.Equal(t, "debug", GetLogLevel())
}

func TestPrefixWriter_BuffersUntilNewline(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPrefixWriter(">> ", &buf)

	_, err := pw.Write([]byte("partial"))
	require.NoError(t, err)
	require.Empty(t, buf.String())

	_, err = pw.Write([]byte(" line\n"))
	require.NoError(t, err)
	require.Equal(t, ">> partial line\n", buf.String())
}

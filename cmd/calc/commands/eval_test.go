package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/calc/internal/evalclient"
)

func runEval(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(evalclient.EndpointEnvVar, "")
	t.Setenv(logFileEnvVar, "")
	t.Setenv(logLevelEnvVar, "error")

	var out bytes.Buffer
	cmd := evalCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvalPrintsResult(t *testing.T) {
	out, err := runEval(t, "2 + 2 × 3")
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)
}

func TestEvalJoinsArguments(t *testing.T) {
	out, err := runEval(t, "10", "÷", "4")
	require.NoError(t, err)
	assert.Equal(t, "2.5\n", out)
}

func TestEvalDivideByZeroFails(t *testing.T) {
	out, err := runEval(t, "5 ÷ 0")
	require.Error(t, err)
	assert.Equal(t, "Cannot divide by zero", err.Error())
	assert.Empty(t, out)
}

func TestEvalRefusesIncompleteExpression(t *testing.T) {
	out, err := runEval(t, "5 + ")
	require.ErrorIs(t, err, errIncomplete)
	assert.NotContains(t, out, "Usage:")
}

func TestSubcommandsSilenceUsageOnFailure(t *testing.T) {
	assert.True(t, evalCmd().SilenceUsage)
	assert.True(t, serveCmd().SilenceUsage)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "  ", "b", "c"))
	assert.Empty(t, firstNonEmpty("", " "))
}

func TestOpenLoggerWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.log")
	t.Setenv(logFileEnvVar, path)
	t.Setenv(logLevelEnvVar, "debug")

	logger, closeLog, err := openLogger(nil)
	require.NoError(t, err)
	logger.Info("calculation applied", "seq", 1)
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"calculation applied"`)
}

func TestOpenLoggerRejectsUnknownLevel(t *testing.T) {
	t.Setenv(logFileEnvVar, "")
	t.Setenv(logLevelEnvVar, "loud")

	_, _, err := openLogger(nil)
	require.Error(t, err)
}

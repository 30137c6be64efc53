package utils

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCommand(t *testing.T) {
	out, err := RunCommand(context.Background(), "echo", "hello")
	require.NoError(t, err)
	require.Equal(t, "hello", strings.TrimSpace(out))
}

func TestRunCommandFailureIncludesStderr(t *testing.T) {
	_, err := RunCommand(context.Background(), "sh", "-c", "echo nope >&2; exit 3")
	require.Error(t, err)
	require.Contains(t, err.Error(), "nope")
}

func TestRunCommandWithInput(t *testing.T) {
	out, err := RunCommandWithInput(context.Background(), "piped in\n", "cat")
	require.NoError(t, err)
	require.Equal(t, "piped in\n", out)
}

func TestRunCommandDryRun(t *testing.T) {
	ctx := WithExecOptions(context.Background(), ExecOptions{DryRun: true})
	out, err := RunCommand(ctx, "definitely-not-a-binary", "--flag")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestExecOptionsRoundTrip(t *testing.T) {
	opts := ExecOptions{Verbose: true, DryRun: true}
	ctx := WithExecOptions(context.Background(), opts)
	require.Equal(t, opts, GetExecOptions(ctx))
	require.Equal(t, ExecOptions{}, GetExecOptions(context.Background()))
}

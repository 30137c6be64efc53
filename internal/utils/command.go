package utils

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Runner is the seam through which drivers invoke external tools. Tests
// substitute a fake to capture invocations instead of touching the system.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// InputRunner is a Runner that additionally feeds the command's stdin,
// used to write root-owned files through sudo tee.
type InputRunner func(ctx context.Context, input string, name string, args ...string) (string, error)

func RunCommand(ctx context.Context, name string, args ...string) (string, error) {
	return runCommand(ctx, "", name, args...)
}

func RunCommandWithInput(ctx context.Context, input string, name string, args ...string) (string, error) {
	return runCommand(ctx, input, name, args...)
}

func runCommand(ctx context.Context, input, name string, args ...string) (string, error) {
	opts := GetExecOptions(ctx)
	if opts.DryRun {
		fmt.Printf("[dry-run] would run: %s %s\n", name, strings.Join(args, " "))
		return "", nil
	}
	log.Debug().Str("cmd", name).Strs("args", args).Msg("running command")

	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w, stderr: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return out.String(), nil
}

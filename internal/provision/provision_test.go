package provision_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lutra-tools/fedup/internal/provision"
	"github.com/lutra-tools/fedup/internal/ui"
)

func TestRunExecutesStagesInOrder(t *testing.T) {
	var order []string
	stage := func(name string) provision.Stage {
		return provision.Stage{Name: name, Run: func(context.Context) error {
			order = append(order, name)
			return nil
		}}
	}

	var buf bytes.Buffer
	st := &ui.Status{Out: &buf, Err: &buf}
	err := provision.Run(context.Background(), st, []provision.Stage{
		stage("first"), stage("second"), stage("third"),
	})

	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	var ran []string
	boom := errors.New("update failed")
	stages := []provision.Stage{
		{Name: "System update", Run: func(context.Context) error {
			ran = append(ran, "update")
			return boom
		}},
		{Name: "Never reached", Run: func(context.Context) error {
			ran = append(ran, "next")
			return nil
		}},
	}

	st := &ui.Status{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
	err := provision.Run(context.Background(), st, stages)

	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "System update")
	require.Equal(t, []string{"update"}, ran)
}

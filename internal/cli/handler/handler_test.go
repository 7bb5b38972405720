package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tienda/internal/cli"
	"github.com/thenoetrevino/tienda/internal/forms"
)

// ============================================================================
// Test Helpers
// ============================================================================

type fieldErr struct {
	fields map[string]string
}

func (e *fieldErr) Error() string                   { return forms.ErrInvalidDraft.Error() }
func (e *fieldErr) Unwrap() error                   { return forms.ErrInvalidDraft }
func (e *fieldErr) FieldErrors() map[string]string { return e.fields }

// createTestCommand creates a cobra.Command with the usual output flags
// and the given handler, writing into buffers
func createTestCommand(h Handler) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{
		Use:           "test",
		RunE:          SimpleCommand(h),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("quiet", false, "")
	cmd.Flags().String("body", "", "")
	cmd.Flags().Int("rating", 0, "")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

// ============================================================================
// Command Tests
// ============================================================================

func TestCommand_PassesArguments(t *testing.T) {
	var got *Arguments
	cmd, _, _ := createTestCommand(HandlerFunc(func(ctx context.Context, args *Arguments) (any, error) {
		got = args
		return nil, nil
	}))
	cmd.SetArgs([]string{"12", "--body", "hello", "--rating", "3"})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, got)
	assert.Equal(t, []string{"12"}, got.Args)
	assert.Equal(t, "hello", got.GetString("body", ""))
	assert.Equal(t, 3, got.GetInt("rating", 0))
	assert.True(t, got.Has("rating"))
	assert.False(t, got.Has("json"))
	assert.False(t, got.GetBool("json"))
	assert.Same(t, cmd, got.GetCmd())
}

func TestCommand_SuccessJSON(t *testing.T) {
	cmd, out, _ := createTestCommand(HandlerFunc(func(ctx context.Context, args *Arguments) (any, error) {
		return map[string]int{"review_id": 3}, nil
	}))
	cmd.SetArgs([]string{"--json"})

	require.NoError(t, cmd.Execute())

	var result struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Data["review_id"])
}

func TestCommand_ErrorMapsToExitCode(t *testing.T) {
	cmd, _, errOut := createTestCommand(HandlerFunc(func(ctx context.Context, args *Arguments) (any, error) {
		return nil, errors.New("store exploded")
	}))
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.Equal(t, cli.ExitGeneral, cli.ExitCode(err))
	assert.Contains(t, errOut.String(), "store exploded")
}

func TestCommand_FieldErrors(t *testing.T) {
	cmd, out, _ := createTestCommand(HandlerFunc(func(ctx context.Context, args *Arguments) (any, error) {
		return nil, &fieldErr{fields: map[string]string{forms.FieldBody: forms.MsgBodyTooShort}}
	}))
	cmd.SetArgs([]string{"--json"})

	err := cmd.Execute()
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	var result struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "VALIDATION_ERROR", result.Error.Code)
	assert.Equal(t, forms.MsgBodyTooShort, result.Error.Fields[forms.FieldBody])
}

func TestCommand_ParseFlagsFailure(t *testing.T) {
	called := false
	h := HandlerFunc(func(ctx context.Context, args *Arguments) (any, error) {
		called = true
		return nil, nil
	})
	cmd, _, _ := createTestCommand(h)
	cmd.RunE = Command(h, func(cmd *cobra.Command) error {
		_, _, err := NewFlagParser(cmd).ParseRating("rating")
		return err
	})
	cmd.SetArgs([]string{"--rating", "9"})

	err := cmd.Execute()
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	assert.False(t, called)
}

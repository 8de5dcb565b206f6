package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adrija-tours/app"
)

// executeCommand runs the CLI with args and captures stdout and stderr
func executeCommand(args ...string) (stdout, stderr string, err error) {
	cmd := NewRootCommand()
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()

	return outBuf.String(), errBuf.String(), err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, code, exitErr.Code)
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	require.NoError(t, err)

	for _, sub := range []string{"serve", "list", "seed", "images"} {
		assert.Contains(t, stdout, sub, "help should mention %q subcommand", sub)
	}
	assert.Contains(t, stdout, "--log-level")
}

func TestRootCommand_UnknownFlag(t *testing.T) {
	_, _, err := executeCommand("--nonexistent")
	requireExitCode(t, err, 2)
}

func TestList_DestinationsTable(t *testing.T) {
	stdout, _, err := executeCommand("list", "destinations", "--filter", "region=West", "--sort", "priceLow")
	require.NoError(t, err)

	goa := strings.Index(stdout, "Goa")
	rajasthan := strings.Index(stdout, "Rajasthan")
	require.GreaterOrEqual(t, goa, 0)
	require.GreaterOrEqual(t, rajasthan, 0)
	assert.Less(t, goa, rajasthan)
	assert.NotContains(t, stdout, "Kashmir")
	assert.Contains(t, stdout, "₹19,999")
	assert.Contains(t, stdout, "2 result(s), sort: priceAscending")
}

func TestList_EmptyResult(t *testing.T) {
	stdout, _, err := executeCommand("list", "destinations", "--filter", "region=South")
	require.NoError(t, err)
	assert.Equal(t, "No destinations match your filters.\n", stdout)
}

func TestList_HotelsSearch(t *testing.T) {
	stdout, _, err := executeCommand("list", "hotels", "--q", "jaipur")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Royal Palace")
	assert.Contains(t, stdout, "₹12,999/night")
	assert.Contains(t, stdout, "1 result(s)")
}

func TestList_BlogJSON(t *testing.T) {
	stdout, _, err := executeCommand("list", "blog", "-o", "json", "--filter", "category=Family,International")
	require.NoError(t, err)

	var resp struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total int    `json:"total"`
		Sort  string `json:"sort"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "family-kashmir", resp.Items[0].ID)
	assert.Equal(t, "default", resp.Sort)
}

func TestList_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"filter without value", []string{"list", "destinations", "--filter", "region"}},
		{"bad stars", []string{"list", "hotels", "--filter", "stars=9"}},
		{"unknown catalog", []string{"list", "cruises"}},
		{"bad output", []string{"list", "blog", "-o", "yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(tt.args...)
			requireExitCode(t, err, 2)
		})
	}
}

func TestSeed_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_HOST", "")

	_, _, err := executeCommand("seed")
	requireExitCode(t, err, 2)
}

func TestServe_StopsOnCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	a := &app.App{Echo: e}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, "127.0.0.1:0", a) }()

	require.Eventually(t, func() bool { return e.ListenerAddr() != nil }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

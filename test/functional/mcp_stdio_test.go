package functional_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/mortality/internal/testserver"
	"github.com/stretchr/testify/require"
)

func findBinary(t *testing.T) string {
	t.Helper()
	for _, path := range []string{"./bin/mortality", "../../bin/mortality"} {
		if _, err := os.Stat(path); err == nil {
			abs, err := filepath.Abs(path)
			require.NoError(t, err)
			return abs
		}
	}
	t.Skip("Binary not found. Run 'go build -o bin/mortality ./cmd/mortality' first.")
	return ""
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte(testserver.SampleCSV), 0o600))
	return path
}

func newStdioSession(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	binaryPath := findBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"MORTALITY_MODE=stdio",
		"MORTALITY_DATA_PATH="+writeSample(t),
		"MORTALITY_DB_PATH=:memory:",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})
	return session
}

func TestStdio_ServerInfo(t *testing.T) {
	session := newStdioSession(t)

	initResult := session.InitializeResult()
	require.NotNil(t, initResult)
	require.NotNil(t, initResult.ServerInfo)
	require.Equal(t, "mortality", initResult.ServerInfo.Name)
	require.Equal(t, "0.1.0", initResult.ServerInfo.Version)
	require.NotEmpty(t, initResult.Instructions)
}

func TestStdio_ToolsHaveSchemas(t *testing.T) {
	session := newStdioSession(t)

	res, err := session.ListTools(context.Background(), &sdkmcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, res.Tools, 5)
	for _, tool := range res.Tools {
		require.NotEmpty(t, tool.Description, tool.Name)
		require.NotNil(t, tool.InputSchema, tool.Name)
	}
}

func TestStdio_ZTestRoundTrip(t *testing.T) {
	session := newStdioSession(t)

	text, isErr := callTool(t, session, "proportion_ztest", map[string]any{
		"event_a": 1000, "total_a": 100000,
		"event_b": 800, "total_b": 100000,
		"label_a": "Males", "label_b": "Females",
	})
	require.False(t, isErr, text)

	c := decodeComparison(t, text)
	require.InDelta(t, 0.009, c.Result.PooledProportion, 1e-12)
	require.Less(t, c.Result.PValue, 0.05)

	text, isErr = callTool(t, session, "get_comparison", map[string]any{"id": c.ID})
	require.False(t, isErr, text)
	require.Equal(t, "Males", decodeComparison(t, text).LabelA)
}

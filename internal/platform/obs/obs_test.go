package obs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogsErrorWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{Level: "info"}) })

	ctx := WithRequestID(context.Background(), "abc")
	err := errors.New("boom")
	func() {
		defer Time(ctx, "store.Get")(&err)
	}()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "store.Get", entry["op"])
	assert.Equal(t, "abc", entry["req_id"])
	assert.Equal(t, "boom", entry["error"])
}

func TestInitFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "nonsense", Output: &buf})
	t.Cleanup(func() { Init(Config{Level: "info"}) })

	L().Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	L().Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

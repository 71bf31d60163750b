package cmdlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zach-sndr/agentic-social/internal/logging"
	"github.com/zach-sndr/agentic-social/internal/metrics"
)

func TestRunRecordsOutcome(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })
	t.Setenv("XAPI_LOG_LEVEL", "")
	logging.Setup("warn")

	runs := testutil.ToFloat64(metrics.CommandRuns.WithLabelValues("like"))
	errs := testutil.ToFloat64(metrics.CommandErrors.WithLabelValues("like"))

	boom := errors.New("boom")
	err := Run("like", func() error { return boom })
	assert.ErrorIs(t, err, boom)
	require.NoError(t, Run("like", func() error { return nil }))

	assert.Equal(t, runs+2, testutil.ToFloat64(metrics.CommandRuns.WithLabelValues("like")))
	assert.Equal(t, errs+1, testutil.ToFloat64(metrics.CommandErrors.WithLabelValues("like")))

	// only the error line passes the warn level
	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "like_error", rec["msg"])
	assert.Equal(t, "boom", rec["error"])
	_, err = uuid.Parse(rec["run_id"].(string))
	assert.NoError(t, err)
}

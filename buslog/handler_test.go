package buslog

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sat8bit/roundtable/bus"
	"github.com/stretchr/testify/require"
)

func TestBusHandler_BroadcastsWarnings(t *testing.T) {
	req := require.New(t)
	b := bus.NewMemoryBus()
	ch := b.Subscribe()

	var out bytes.Buffer
	next := slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := slog.New(NewBusHandler(b, next, slog.LevelWarn))

	log.Info("enrolled", "name", "Alice")
	log.With("participant", "Bob").WithGroup("call").Warn("completion failed", "model", "m1")

	e := <-ch
	req.Equal(bus.KindNotice, e.Kind)
	req.Equal("[WARN] completion failed participant=Bob call.model=m1", e.Text)
	req.Len(ch, 0, "info records stay off the bus")

	req.Contains(out.String(), "msg=enrolled")
	req.Contains(out.String(), "participant=Bob call.model=m1")
}

func TestBusHandler_ClosedBusStillLogs(t *testing.T) {
	req := require.New(t)
	b := bus.NewMemoryBus()
	b.Close()

	var out bytes.Buffer
	log := slog.New(NewBusHandler(b, slog.NewTextHandler(&out, nil), nil))
	log.Error("boom")

	req.Contains(out.String(), "msg=boom")
}

func TestBusHandler_Enabled(t *testing.T) {
	req := require.New(t)
	h := NewBusHandler(bus.NewMemoryBus(), nil, slog.LevelWarn)

	req.False(h.Enabled(t.Context(), slog.LevelInfo))
	req.True(h.Enabled(t.Context(), slog.LevelError))
}

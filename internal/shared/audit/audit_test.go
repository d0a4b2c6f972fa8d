package audit_test

import (
	"context"
	"testing"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/audit"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := audit.NewZapLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "REQ-9")
	l.Log(ctx, audit.Entry{
		Action:  "SECTION_DELETED",
		Message: "section banking deleted",
		Meta:    map[string]any{"employees": 3},
	})

	entries := logs.FilterMessage("audit event").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "SECTION_DELETED", fields["action"])
		assert.Equal(t, "REQ-9", fields["request_id"])
		assert.Equal(t, "audit", entries[0].LoggerName)
	}
}

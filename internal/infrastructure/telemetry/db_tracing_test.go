package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type tracedRow struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openTracedDB(t *testing.T, cfg DBTracingConfig) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	require.NoError(t, RegisterDBTracing(db, cfg, zaptest.NewLogger(t)))
	return db
}

func recordedSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})
	return sr
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	sr := recordedSpans(t)
	db := openTracedDB(t, DBTracingConfig{Enabled: false})

	require.NoError(t, db.WithContext(context.Background()).Create(&tracedRow{Name: "ana"}).Error)

	assert.Empty(t, sr.Ended())
}

func TestRegisterDBTracing_RecordsQuerySpans(t *testing.T) {
	sr := recordedSpans(t)
	db := openTracedDB(t, DBTracingConfig{Enabled: true})

	require.NoError(t, db.WithContext(context.Background()).Create(&tracedRow{Name: "ana"}).Error)

	var rows []tracedRow
	require.NoError(t, db.WithContext(context.Background()).Find(&rows).Error)

	assert.NotEmpty(t, sr.Ended())
}

func TestRegisterDBTracing_TagsSlowQueries(t *testing.T) {
	sr := recordedSpans(t)
	// Nanosecond threshold so every query counts as slow
	db := openTracedDB(t, DBTracingConfig{Enabled: true, SlowQueryThresh: time.Nanosecond})

	require.NoError(t, db.WithContext(context.Background()).Create(&tracedRow{Name: "ana"}).Error)

	var tagged bool
	for _, span := range sr.Ended() {
		for _, kv := range span.Attributes() {
			if kv.Key == attribute.Key("db.slow_query") && kv.Value.AsBool() {
				tagged = true
			}
		}
	}
	assert.True(t, tagged, "expected a span tagged db.slow_query")
}

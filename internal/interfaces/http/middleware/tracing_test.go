package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})
	return sr
}

func tracedEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.Use(Tracing("comunidad-test"))
	engine.Use(SpanTags())
	return engine
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_RecordsRequestSpan(t *testing.T) {
	sr := setupSpanRecorder(t)

	engine := tracedEngine()
	engine.GET("/residents/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/residents/42", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Contains(t, span.Name(), "/residents/:id")

	id, ok := spanAttr(span, "request_id")
	require.True(t, ok, "request_id attribute missing")
	assert.NotEmpty(t, id.AsString())
}

func TestTracing_TagsAuthenticatedUser(t *testing.T) {
	sr := setupSpanRecorder(t)

	engine := tracedEngine()
	engine.GET("/me", func(c *gin.Context) {
		// Stands in for the JWT middleware
		c.Set(ContextKeyUserID, "b7f8c6d0-0000-0000-0000-000000000001")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	engine.ServeHTTP(w, req)

	spans := sr.Ended()
	require.Len(t, spans, 1)

	userID, ok := spanAttr(spans[0], "user_id")
	require.True(t, ok, "user_id attribute missing")
	assert.Equal(t, "b7f8c6d0-0000-0000-0000-000000000001", userID.AsString())
}

func TestTracing_MarksServerErrors(t *testing.T) {
	sr := setupSpanRecorder(t)

	engine := tracedEngine()
	engine.GET("/boom", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

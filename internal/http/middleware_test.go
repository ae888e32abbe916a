package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func requestIDRouter() *gin.Engine {
	r := gin.New()

	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.GET("/ping", func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})

	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := requestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	id := w.Header().Get(requestIDHeader)

	if id == "" {
		t.Fatal("expected a generated X-Request-Id header")
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("generated id %q is not a uuid: %v", id, err)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	r := requestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "client-supplied-id")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(requestIDHeader); got != "client-supplied-id" {
		t.Fatalf("got %q, want the client-supplied id echoed back", got)
	}
}

package remove_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/remove"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
)

type mockRemover struct {
	RemoveFunc func(ctx context.Context, id string) (int64, error)
}

func (m *mockRemover) Remove(ctx context.Context, id string) (int64, error) {
	return m.RemoveFunc(ctx, id)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func newRequestWithID(t *testing.T, id string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/subscriptions/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRemoveHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		remover := &mockRemover{
			RemoveFunc: func(ctx context.Context, id string) (int64, error) {
				require.Equal(t, "id-7", id)
				return 1, nil
			},
		}

		req := newRequestWithID(t, "id-7")
		w := httptest.NewRecorder()

		handler := remove.New(context.Background(), makeLogger(), remover)
		handler.ServeHTTP(w, req)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, response.StatusOK, resp.Status)
		assert.Equal(t, float64(1), resp.Data.(map[string]any)["deleted_count"])
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		remover := &mockRemover{
			RemoveFunc: func(ctx context.Context, id string) (int64, error) {
				return 0, nil
			},
		}

		req := newRequestWithID(t, "missing")
		w := httptest.NewRecorder()

		handler := remove.New(context.Background(), makeLogger(), remover)
		handler.ServeHTTP(w, req)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, response.StatusOK, resp.Status)
		assert.Equal(t, float64(0), resp.Data.(map[string]any)["deleted_count"])
	})

	t.Run("service error", func(t *testing.T) {
		remover := &mockRemover{
			RemoveFunc: func(ctx context.Context, id string) (int64, error) {
				return 0, errors.New("kv unavailable")
			},
		}

		req := newRequestWithID(t, "id-7")
		w := httptest.NewRecorder()

		handler := remove.New(context.Background(), makeLogger(), remover)
		handler.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), "failed to remove")
	})
}

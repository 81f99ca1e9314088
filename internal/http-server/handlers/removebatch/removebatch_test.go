package removebatch_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/removebatch"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/subscription-dashboard/internal/query"
)

type mockRemover struct {
	RemoveBatchFunc    func(ctx context.Context, ids []string) (int64, error)
	RemoveFilteredFunc func(ctx context.Context, p query.Params) (int64, error)
}

func (m *mockRemover) RemoveBatch(ctx context.Context, ids []string) (int64, error) {
	return m.RemoveBatchFunc(ctx, ids)
}

func (m *mockRemover) RemoveFiltered(ctx context.Context, p query.Params) (int64, error) {
	return m.RemoveFilteredFunc(ctx, p)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestRemoveBatchHandler(t *testing.T) {
	t.Run("explicit ids", func(t *testing.T) {
		body, _ := json.Marshal(removebatch.RemoveBatchRequest{
			IDs: []string{"id-1", "id-2", "missing"},
		})

		remover := &mockRemover{
			RemoveBatchFunc: func(ctx context.Context, ids []string) (int64, error) {
				require.Equal(t, []string{"id-1", "id-2", "missing"}, ids)
				return 2, nil
			},
			RemoveFilteredFunc: func(ctx context.Context, p query.Params) (int64, error) {
				t.Fatal("filtered removal must not be called for explicit ids")
				return 0, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/subscriptions/batch-delete", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler := removebatch.New(context.Background(), makeLogger(), remover)
		handler.ServeHTTP(w, req)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, response.StatusOK, resp.Status)
		assert.Equal(t, float64(2), resp.Data.(map[string]any)["deleted_count"])
	})

	t.Run("all filtered", func(t *testing.T) {
		body, _ := json.Marshal(removebatch.RemoveBatchRequest{AllFiltered: true})

		remover := &mockRemover{
			RemoveBatchFunc: func(ctx context.Context, ids []string) (int64, error) {
				t.Fatal("batch removal must not be called for all_filtered")
				return 0, nil
			},
			RemoveFilteredFunc: func(ctx context.Context, p query.Params) (int64, error) {
				require.Equal(t, "alice", p.SearchTerm)
				require.Equal(t, "expired", p.StatusFilter)
				return 5, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost,
			"/subscriptions/batch-delete?search=alice&status=expired", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler := removebatch.New(context.Background(), makeLogger(), remover)
		handler.ServeHTTP(w, req)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, response.StatusOK, resp.Status)
		assert.Equal(t, float64(5), resp.Data.(map[string]any)["deleted_count"])
	})

	t.Run("invalid JSON", func(t *testing.T) {
		remover := &mockRemover{
			RemoveBatchFunc: func(ctx context.Context, ids []string) (int64, error) {
				t.Fatal("service must not be called on invalid JSON")
				return 0, nil
			},
			RemoveFilteredFunc: func(ctx context.Context, p query.Params) (int64, error) {
				return 0, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/subscriptions/batch-delete", bytes.NewReader([]byte("nope")))
		w := httptest.NewRecorder()

		handler := removebatch.New(context.Background(), makeLogger(), remover)
		handler.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), "failed to decode request")
	})

	t.Run("service error", func(t *testing.T) {
		body, _ := json.Marshal(removebatch.RemoveBatchRequest{IDs: []string{"id-1"}})

		remover := &mockRemover{
			RemoveBatchFunc: func(ctx context.Context, ids []string) (int64, error) {
				return 0, errors.New("kv unavailable")
			},
			RemoveFilteredFunc: func(ctx context.Context, p query.Params) (int64, error) {
				return 0, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/subscriptions/batch-delete", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler := removebatch.New(context.Background(), makeLogger(), remover)
		handler.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), "failed to remove")
	})
}

package export_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/export"
	"github.com/magabrotheeeer/subscription-dashboard/internal/query"
)

type mockExporter struct {
	ExportFunc func(ctx context.Context, p query.Params) ([]byte, string, error)
}

func (m *mockExporter) ExportCSV(ctx context.Context, p query.Params) ([]byte, string, error) {
	return m.ExportFunc(ctx, p)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestExportHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		csv := "Email,Password,Start Date,End Date,Status\n"

		exporter := &mockExporter{
			ExportFunc: func(ctx context.Context, p query.Params) ([]byte, string, error) {
				require.Equal(t, "expired", p.StatusFilter)
				return []byte(csv), "subscriptions_2025-06-01.csv", nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/subscriptions/export?status=expired", nil)
		w := httptest.NewRecorder()

		handler := export.New(context.Background(), makeLogger(), exporter)
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="subscriptions_2025-06-01.csv"`,
			w.Header().Get("Content-Disposition"))
		assert.Equal(t, csv, w.Body.String())
	})

	t.Run("service error", func(t *testing.T) {
		exporter := &mockExporter{
			ExportFunc: func(ctx context.Context, p query.Params) ([]byte, string, error) {
				return nil, "", errors.New("marshal failed")
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/subscriptions/export", nil)
		w := httptest.NewRecorder()

		handler := export.New(context.Background(), makeLogger(), exporter)
		handler.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), "failed to export")
	})
}

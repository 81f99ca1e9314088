package login_test

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

	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/handlers/login"
	"github.com/magabrotheeeer/subscription-dashboard/internal/http-server/response"
	jwtlib "github.com/magabrotheeeer/subscription-dashboard/internal/lib/jwt"
)

type mockMarker struct {
	MarkFunc func(ctx context.Context) error
}

func (m *mockMarker) MarkAuthenticated(ctx context.Context) error {
	return m.MarkFunc(ctx)
}

type mockJWTMaker struct {
	GenerateFunc func(email string) (string, error)
}

func (m *mockJWTMaker) GenerateToken(email string) (string, error) {
	return m.GenerateFunc(email)
}

func (m *mockJWTMaker) ParseToken(tokenStr string) (*jwtlib.CustomClaims, error) {
	return nil, nil
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestLoginHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(login.LoginRequest{
			Email:    "user@example.com",
			Password: "secret",
		})

		marker := &mockMarker{
			MarkFunc: func(ctx context.Context) error { return nil },
		}
		maker := &mockJWTMaker{
			GenerateFunc: func(email string) (string, error) {
				require.Equal(t, "user@example.com", email)
				return "signed-token", nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler := login.New(context.Background(), makeLogger(), marker, maker)
		handler.ServeHTTP(w, req)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, response.StatusOK, resp.Status)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "signed-token", data["token"])
		assert.Equal(t, "user@example.com", data["email"])
	})

	t.Run("any non-empty credentials are accepted", func(t *testing.T) {
		body, _ := json.Marshal(login.LoginRequest{
			Email:    "whatever",
			Password: "x",
		})

		marker := &mockMarker{
			MarkFunc: func(ctx context.Context) error { return nil },
		}
		maker := &mockJWTMaker{
			GenerateFunc: func(email string) (string, error) { return "token", nil },
		}

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler := login.New(context.Background(), makeLogger(), marker, maker)
		handler.ServeHTTP(w, req)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)
	})

	t.Run("missing password", func(t *testing.T) {
		body, _ := json.Marshal(login.LoginRequest{Email: "user@example.com"})

		marker := &mockMarker{
			MarkFunc: func(ctx context.Context) error {
				t.Fatal("session must not be marked on invalid request")
				return nil
			},
		}
		maker := &mockJWTMaker{
			GenerateFunc: func(email string) (string, error) { return "", nil },
		}

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler := login.New(context.Background(), makeLogger(), marker, maker)
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please enter both email and password")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		marker := &mockMarker{MarkFunc: func(ctx context.Context) error { return nil }}
		maker := &mockJWTMaker{GenerateFunc: func(email string) (string, error) { return "", nil }}

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()

		handler := login.New(context.Background(), makeLogger(), marker, maker)
		handler.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), "failed to decode request")
	})

	t.Run("token generation fails", func(t *testing.T) {
		body, _ := json.Marshal(login.LoginRequest{
			Email:    "user@example.com",
			Password: "secret",
		})

		marker := &mockMarker{MarkFunc: func(ctx context.Context) error { return nil }}
		maker := &mockJWTMaker{
			GenerateFunc: func(email string) (string, error) {
				return "", errors.New("signing error")
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler := login.New(context.Background(), makeLogger(), marker, maker)
		handler.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), "could not generate token")
	})
}

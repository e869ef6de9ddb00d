package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc       func(ctx context.Context, name, email, password string) (*entity.User, string, error)
	LoginFunc          func(ctx context.Context, email, password string) (*entity.User, string, error)
	MeFunc             func(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfileFunc  func(ctx context.Context, userID uint, name, email *string) (*entity.User, error)
	ChangePasswordFunc func(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

func (m *mockAuthUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return &entity.User{ID: 1, Name: name, Email: email}, "dummy-token", nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, "", usecase.ErrInvalidCredentials
}

func (m *mockAuthUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockAuthUsecase) UpdateProfile(ctx context.Context, userID uint, name, email *string) (*entity.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, name, email)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockAuthUsecase) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, currentPassword, newPassword)
	}
	return nil
}

// fakeAuth injects a fixed user ID the way the JWT middleware would.
func fakeAuth(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return sendJSON(t, router, http.MethodPost, path, body)
}

func sendJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: returns 201 with user and token", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, name, email, password string) (*entity.User, string, error) {
				return &entity.User{ID: 3, Name: name, Email: email}, "new-token", nil
			},
		}
		router := gin.New()
		router.POST("/api/users/register", NewAuthHandler(mockUC).Register)

		w := postJSON(t, router, "/api/users/register", gin.H{
			"name": "Alice", "email": "alice@example.com", "password": "secret1",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "User registered successfully", body["message"])
		assert.Equal(t, "new-token", body["token"])
		user, ok := body["user"].(map[string]any)
		require.True(t, ok, "user object missing")
		assert.Equal(t, float64(3), user["id"])
		assert.Equal(t, "alice@example.com", user["email"])
		// The password hash must never appear in the response
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("failure: duplicate email returns 409", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, name, email, password string) (*entity.User, string, error) {
				return nil, "", usecase.ErrEmailAlreadyExists
			},
		}
		router := gin.New()
		router.POST("/api/users/register", NewAuthHandler(mockUC).Register)

		w := postJSON(t, router, "/api/users/register", gin.H{
			"name": "Alice", "email": "alice@example.com", "password": "secret1",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("failure: invalid email returns 400", func(t *testing.T) {
		router := gin.New()
		router.POST("/api/users/register", NewAuthHandler(&mockAuthUsecase{}).Register)

		w := postJSON(t, router, "/api/users/register", gin.H{
			"name": "Alice", "email": "not-an-email", "password": "secret1",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("failure: short password returns 400", func(t *testing.T) {
		router := gin.New()
		router.POST("/api/users/register", NewAuthHandler(&mockAuthUsecase{}).Register)

		w := postJSON(t, router, "/api/users/register", gin.H{
			"name": "Alice", "email": "alice@example.com", "password": "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: returns 200 with user and token", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			LoginFunc: func(ctx context.Context, email, password string) (*entity.User, string, error) {
				return &entity.User{ID: 1, Name: "Alice", Email: email}, "login-token", nil
			},
		}
		router := gin.New()
		router.POST("/api/users/login", NewAuthHandler(mockUC).Login)

		w := postJSON(t, router, "/api/users/login", gin.H{
			"email": "alice@example.com", "password": "secret1",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Login successful", body["message"])
		assert.Equal(t, "login-token", body["token"])
	})

	t.Run("failure: bad credentials return 401", func(t *testing.T) {
		router := gin.New()
		router.POST("/api/users/login", NewAuthHandler(&mockAuthUsecase{}).Login)

		w := postJSON(t, router, "/api/users/login", gin.H{
			"email": "alice@example.com", "password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "invalid credentials", body["error"])
	})

	t.Run("failure: missing password returns 400", func(t *testing.T) {
		router := gin.New()
		router.POST("/api/users/login", NewAuthHandler(&mockAuthUsecase{}).Login)

		w := postJSON(t, router, "/api/users/login", gin.H{"email": "alice@example.com"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: returns the current profile", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			MeFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
				assert.Equal(t, uint(42), userID)
				return &entity.User{ID: 42, Name: "Alice", Email: "alice@example.com"}, nil
			},
		}
		router := gin.New()
		router.GET("/api/users/me", fakeAuth(42), NewAuthHandler(mockUC).Me)

		req, _ := http.NewRequest(http.MethodGet, "/api/users/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(42), body["id"])
		assert.Equal(t, "alice@example.com", body["email"])
	})

	t.Run("failure: deleted user returns 404", func(t *testing.T) {
		router := gin.New()
		router.GET("/api/users/me", fakeAuth(42), NewAuthHandler(&mockAuthUsecase{}).Me)

		req, _ := http.NewRequest(http.MethodGet, "/api/users/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: returns updated profile", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			UpdateProfileFunc: func(ctx context.Context, userID uint, name, email *string) (*entity.User, error) {
				require.NotNil(t, name)
				assert.Nil(t, email, "absent email must stay nil")
				return &entity.User{ID: userID, Name: *name, Email: "old@example.com"}, nil
			},
		}
		router := gin.New()
		router.PUT("/api/users/profile", fakeAuth(1), NewAuthHandler(mockUC).UpdateProfile)

		w := sendJSON(t, router, http.MethodPut, "/api/users/profile", gin.H{"name": "New Name"})

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Profile updated successfully", body["message"])
	})

	t.Run("failure: email taken returns 409", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			UpdateProfileFunc: func(ctx context.Context, userID uint, name, email *string) (*entity.User, error) {
				return nil, usecase.ErrEmailAlreadyExists
			},
		}
		router := gin.New()
		router.PUT("/api/users/profile", fakeAuth(1), NewAuthHandler(mockUC).UpdateProfile)

		w := sendJSON(t, router, http.MethodPut, "/api/users/profile", gin.H{"email": "taken@example.com"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: returns 200 with message", func(t *testing.T) {
		router := gin.New()
		router.PUT("/api/users/password", fakeAuth(1), NewAuthHandler(&mockAuthUsecase{}).ChangePassword)

		w := sendJSON(t, router, http.MethodPut, "/api/users/password", gin.H{
			"currentPassword": "old-pass", "newPassword": "new-pass",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Password updated successfully", body["message"])
	})

	t.Run("failure: wrong current password returns 400", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			ChangePasswordFunc: func(ctx context.Context, userID uint, currentPassword, newPassword string) error {
				return usecase.ErrCurrentPasswordIncorrect
			},
		}
		router := gin.New()
		router.PUT("/api/users/password", fakeAuth(1), NewAuthHandler(mockUC).ChangePassword)

		w := sendJSON(t, router, http.MethodPut, "/api/users/password", gin.H{
			"currentPassword": "wrong", "newPassword": "new-pass",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("failure: unexpected error returns 500", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			ChangePasswordFunc: func(ctx context.Context, userID uint, currentPassword, newPassword string) error {
				return errors.New("database down")
			},
		}
		router := gin.New()
		router.PUT("/api/users/password", fakeAuth(1), NewAuthHandler(mockUC).ChangePassword)

		w := sendJSON(t, router, http.MethodPut, "/api/users/password", gin.H{
			"currentPassword": "old-pass", "newPassword": "new-pass",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

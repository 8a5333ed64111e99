package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uygardev/vehicle-maintenance/internal/auth"
	"github.com/uygardev/vehicle-maintenance/internal/models"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *fakeUsers) {
	t.Helper()
	authService, err := auth.NewService()
	require.NoError(t, err)
	users := &fakeUsers{}
	return NewAuthHandler(authService, users), users
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBuffer(encoded))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	handler, users := newAuthHandler(t)

	rec := postJSON(t, handler.Register, models.RegisterRequest{
		Email:     "driver@example.com",
		Password:  "longenoughpassword",
		FirstName: "Demo",
		LastName:  "Driver",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered models.LoginResponse
	decode(t, rec, &registered)
	assert.NotEmpty(t, registered.Token)
	assert.NotEmpty(t, registered.RefreshToken)
	require.Len(t, users.items, 1)
	assert.NotEqual(t, "longenoughpassword", users.items[0].PasswordHash)

	rec = postJSON(t, handler.Login, models.LoginRequest{
		Email:    "driver@example.com",
		Password: "longenoughpassword",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var loggedIn models.LoginResponse
	decode(t, rec, &loggedIn)
	assert.NotEmpty(t, loggedIn.Token)
	assert.Equal(t, "driver@example.com", loggedIn.User.Email)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	handler, _ := newAuthHandler(t)

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"bad email", models.RegisterRequest{Email: "not-an-email", Password: "longenoughpassword"}},
		{"short password", models.RegisterRequest{Email: "a@b.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, handler.Register, tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	handler, _ := newAuthHandler(t)

	req := models.RegisterRequest{Email: "driver@example.com", Password: "longenoughpassword"}
	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, req).Code)
	assert.Equal(t, http.StatusConflict, postJSON(t, handler.Register, req).Code)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	handler, _ := newAuthHandler(t)

	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, models.RegisterRequest{
		Email:    "driver@example.com",
		Password: "longenoughpassword",
	}).Code)

	rec := postJSON(t, handler.Login, models.LoginRequest{
		Email:    "driver@example.com",
		Password: "wrongpassword123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_LoginUnknownUser(t *testing.T) {
	handler, _ := newAuthHandler(t)

	rec := postJSON(t, handler.Login, models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

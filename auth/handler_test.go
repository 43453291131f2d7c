package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestDecodeRequest(t *testing.T) {
	registerReq := `{"username": "u", "password": "password1"}`
	body := io.NopCloser(strings.NewReader(registerReq))

	req, err := decodeRegisterAccountRequest(body)

	assert.NoError(t, err)
	assert.Equal(t, register("u", "password1"), req)

	body = io.NopCloser(strings.NewReader(`{"username": "u", "password": "p"}`))
	login, err := decodeLoginRequest(body)

	assert.NoError(t, err)
	assert.Equal(t, loginRequest{"u", "p"}, login)
}

var errNil = errors.New("")

type accountResponse struct {
	ID       ID     `json:"accountId"`
	Username string `json:"username"`
	Password string `json:"password"`
	Err      string `json:"error,omitempty"`
}

func TestRegisterAccountHandler(t *testing.T) {
	svc := NewService(NewAccountRepository(), PlainText{})

	tests := []struct {
		req      string
		wantCode int
		wantID   ID
		wantErr  error
	}{
		{req: `invalid request`, wantCode: http.StatusBadRequest, wantErr: errNil},
		{req: `{"username": "", "password": "pass"}`, wantCode: http.StatusBadRequest, wantErr: ErrInvalidUsername},
		{req: `{"username": "u", "password": "abc"}`, wantCode: http.StatusBadRequest, wantErr: ErrInvalidPassword},
		{req: `{"username": "u", "password": "abcd"}`, wantCode: http.StatusOK, wantID: 1, wantErr: errNil},
		{req: `{"username": "u", "password": "password"}`, wantCode: http.StatusConflict, wantErr: ErrExistingUsername},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.req))
		w := httptest.NewRecorder()

		RegisterAccountHandler(svc).ServeHTTP(w, r)

		var res accountResponse
		_ = json.NewDecoder(w.Body).Decode(&res)
		assert.Equal(t, tt.wantCode, w.Code, tt.req)
		assert.Equal(t, tt.wantErr.Error(), res.Err)
		assert.Equal(t, tt.wantID, res.ID)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		if tt.wantID != 0 {
			assert.Equal(t, "u", res.Username)
			assert.Equal(t, "abcd", res.Password)
		}
	}
}

func TestLoginHandler(t *testing.T) {
	svc := NewService(NewAccountRepository(), PlainText{})
	w := httptest.NewRecorder()
	RegisterAccountHandler(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"username": "alice", "password": "secret"}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	tests := []struct {
		req      string
		wantCode int
		wantErr  error
	}{
		{req: `{`, wantCode: http.StatusBadRequest, wantErr: errNil},
		{req: `{"username": "alice", "password": "secret"}`, wantCode: http.StatusOK, wantErr: errNil},
		{req: `{"username": "alice", "password": "nope"}`, wantCode: http.StatusUnauthorized, wantErr: ErrInvalidCredentials},
		{req: `{"username": "bob", "password": "secret"}`, wantCode: http.StatusUnauthorized, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.req))
		w := httptest.NewRecorder()

		LoginHandler(svc).ServeHTTP(w, r)

		var res accountResponse
		_ = json.NewDecoder(w.Body).Decode(&res)
		assert.Equal(t, tt.wantCode, w.Code, tt.req)
		assert.Equal(t, tt.wantErr.Error(), res.Err)
		if tt.wantCode == http.StatusOK {
			assert.Equal(t, ID(1), res.ID)
			assert.Equal(t, "alice", res.Username)
			assert.Equal(t, "secret", res.Password)
		}
	}
}

func TestEncodeErrorUnknownIsInternal(t *testing.T) {
	w := httptest.NewRecorder()

	encodeError(errors.New("store down"), w)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"store down"}`, w.Body.String())
}

func TestRegisterAccountHandlerBcryptLongPassword(t *testing.T) {
	svc := NewService(NewAccountRepository(), Bcrypt{Cost: bcrypt.MinCost})
	password := strings.Repeat("p", 73)
	body := `{"username": "u", "password": "` + password + `"}`

	w := httptest.NewRecorder()
	RegisterAccountHandler(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))

	var res accountResponse
	_ = json.NewDecoder(w.Body).Decode(&res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ID(1), res.ID)
	assert.Empty(t, res.Err)

	w = httptest.NewRecorder()
	LoginHandler(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, w.Code)
}

package auth

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jimiolaniyan/microboard/internal/fault"
	"github.com/jimiolaniyan/microboard/internal/logging"
)

func RegisterAccountHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRegisterAccountRequest(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		acc, err := svc.Register(r.Context(), req)
		if err != nil {
			encodeError(err, w)
			return
		}

		encodeAccount(acc, w)
	})
}

func LoginHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeLoginRequest(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		acc, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			encodeError(err, w)
			return
		}

		encodeAccount(acc, w)
	})
}

func encodeAccount(acc Account, w http.ResponseWriter) {
	if err := json.NewEncoder(w).Encode(acc); err != nil {
		logging.Errorf("encoding account %d: %v", acc.ID, err)
	}
}

func encodeError(err error, w http.ResponseWriter) {
	switch fault.Kind(err) {
	case fault.InvalidInput:
		w.WriteHeader(http.StatusBadRequest)
	case fault.Unauthorized:
		w.WriteHeader(http.StatusUnauthorized)
	case fault.Conflict:
		w.WriteHeader(http.StatusConflict)
	case fault.NotFound:
		w.WriteHeader(http.StatusNotFound)
	default:
		logging.Errorf("account request failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	}); err != nil {
		logging.Errorf("encoding error response: %v", err)
	}
}

func decodeRegisterAccountRequest(body io.ReadCloser) (Account, error) {
	req := Account{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return Account{}, err
	}
	return req, nil
}

func decodeLoginRequest(body io.ReadCloser) (loginRequest, error) {
	req := loginRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return loginRequest{}, err
	}
	return req, nil
}

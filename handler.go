package microboard

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/jimiolaniyan/microboard/auth"
	"github.com/jimiolaniyan/microboard/internal/fault"
	"github.com/jimiolaniyan/microboard/internal/logging"
)

// NewRouter maps the HTTP API onto the account directory and message board.
func NewRouter(accounts auth.Service, messages Service) http.Handler {
	router := httprouter.New()
	router.Handler(http.MethodPost, "/register", auth.RegisterAccountHandler(accounts))
	router.Handler(http.MethodPost, "/login", auth.LoginHandler(accounts))
	router.Handler(http.MethodPost, "/messages", CreateMessageHandler(messages))
	router.Handler(http.MethodGet, "/messages", GetMessagesHandler(messages))
	router.Handler(http.MethodGet, "/messages/:message_id", GetMessageHandler(messages))
	router.Handler(http.MethodDelete, "/messages/:message_id", DeleteMessageHandler(messages))
	router.Handler(http.MethodPatch, "/messages/:message_id", UpdateMessageHandler(messages))
	router.Handler(http.MethodGet, "/accounts/:account_id/messages", GetAccountMessagesHandler(messages))

	return RequestLogger(router)
}

func CreateMessageHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeMessageRequest(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), req)
		if err != nil {
			encodeError(err, w)
			return
		}

		encodeJSON(m, w)
	})
}

func GetMessagesHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		messages, err := svc.FindAll(r.Context())
		if err != nil {
			encodeError(err, w)
			return
		}

		encodeJSON(messages, w)
	})
}

// GetMessageHandler answers 200 with an empty body when the message does
// not exist.
func GetMessageHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "message_id")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		m, ok, err := svc.FindByID(r.Context(), MessageID(id))
		if err != nil {
			encodeError(err, w)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusOK)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		encodeJSON(m, w)
	})
}

// DeleteMessageHandler answers 200 with the number of deleted rows, or an
// empty body when there was nothing to delete.
func DeleteMessageHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "message_id")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		outcome, err := svc.DeleteByID(r.Context(), MessageID(id))
		if err != nil {
			encodeError(err, w)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if outcome == Applied {
			_, _ = io.WriteString(w, strconv.Itoa(int(outcome)))
		}
	})
}

// UpdateMessageHandler answers 200 with 1 when the text was replaced and
// 400 with no body otherwise.
func UpdateMessageHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "message_id")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		req, err := decodeUpdateTextRequest(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		outcome, err := svc.UpdateText(r.Context(), MessageID(id), req.Text)
		if err != nil {
			encodeError(err, w)
			return
		}
		if outcome != Applied {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		encodeJSON(outcome, w)
	})
}

func GetAccountMessagesHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "account_id")
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		messages, err := svc.FindAllMessagesByUser(r.Context(), auth.ID(id))
		if err != nil {
			encodeError(err, w)
			return
		}

		encodeJSON(messages, w)
	})
}

func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(httprouter.ParamsFromContext(r.Context()).ByName(name))
}

func encodeJSON(v interface{}, w http.ResponseWriter) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf("encoding response: %v", err)
	}
}

func encodeError(err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	switch fault.Kind(err) {
	case fault.InvalidInput:
		w.WriteHeader(http.StatusBadRequest)
	case fault.NotFound:
		w.WriteHeader(http.StatusNotFound)
	case fault.Conflict:
		w.WriteHeader(http.StatusConflict)
	case fault.Unauthorized:
		w.WriteHeader(http.StatusUnauthorized)
	default:
		logging.Errorf("message request failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
	encodeJSON(map[string]interface{}{"error": err.Error()}, w)
}

func decodeMessageRequest(body io.ReadCloser) (Message, error) {
	req := Message{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return Message{}, err
	}
	return req, nil
}

func decodeUpdateTextRequest(body io.ReadCloser) (updateTextRequest, error) {
	req := updateTextRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return updateTextRequest{}, err
	}
	return req, nil
}

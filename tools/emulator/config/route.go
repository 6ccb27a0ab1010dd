package config

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/raywall/painel-usuarios/pkg/usuario"
)

// NewRouter registra o contrato REST de usuários no caminho configurado.
func (s *ServerConfig) NewRouter(store *Store) *mux.Router {
	router := mux.NewRouter()
	router.Use(s.simulate)

	router.HandleFunc(s.Path, listHandler(store)).Methods(http.MethodGet)
	router.HandleFunc(s.Path, createHandler(store)).Methods(http.MethodPost)
	router.HandleFunc(s.Path, statusHandler(store)).Methods(http.MethodPut)
	router.HandleFunc(s.Path, deleteHandler(store)).Methods(http.MethodDelete)
	return router
}

// simulate aplica latência e falhas configuradas antes do handler real.
func (s *ServerConfig) simulate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.LatenciaMs > 0 {
			select {
			case <-time.After(time.Duration(s.LatenciaMs) * time.Millisecond):
			case <-r.Context().Done():
				return
			}
		}
		for _, f := range s.Falhas {
			if strings.EqualFold(f.Method, r.Method) {
				sendResponse(w, f.Response.Status, f.Response.Body)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func listHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usuarios := store.List()
		body := make([]map[string]interface{}, 0, len(usuarios))
		for _, u := range usuarios {
			item, err := usuario.MarshalTyped(u)
			if err != nil {
				log.Error().Err(err).Str("email", u.Email).Msg("Erro ao serializar usuário")
				continue
			}
			body = append(body, item)
		}
		sendResponse(w, http.StatusOK, body)
	}
}

func createHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := decodeBody(w, r)
		if !ok {
			return
		}
		if u.Status == "" {
			u.Status = usuario.StatusAtivo
		}
		if !u.Status.Valid() {
			sendError(w, http.StatusBadRequest, "status inválido")
			return
		}

		status := http.StatusOK
		if store.Upsert(u) {
			status = http.StatusCreated
		}
		sendResponse(w, status, u)
	}
}

func statusHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := decodeBody(w, r)
		if !ok {
			return
		}
		if !u.Status.Valid() {
			sendError(w, http.StatusBadRequest, "status inválido")
			return
		}
		if !store.SetStatus(u.Email, u.Status) {
			sendError(w, http.StatusNotFound, "usuário não encontrado")
			return
		}
		sendResponse(w, http.StatusOK, map[string]string{"email": u.Email, "status": string(u.Status)})
	}
}

func deleteHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := decodeBody(w, r)
		if !ok {
			return
		}
		if !store.Delete(u.Email) {
			sendError(w, http.StatusNotFound, "usuário não encontrado")
			return
		}
		sendResponse(w, http.StatusOK, map[string]string{"email": u.Email})
	}
}

// decodeBody aceita campos escalares ou tipados e exige email.
func decodeBody(w http.ResponseWriter, r *http.Request) (usuario.Usuario, bool) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		sendError(w, http.StatusBadRequest, "corpo ilegível")
		return usuario.Usuario{}, false
	}
	u, err := usuario.Decode(raw)
	if err != nil {
		sendError(w, http.StatusBadRequest, "json inválido")
		return usuario.Usuario{}, false
	}
	if u.Email == "" {
		sendError(w, http.StatusBadRequest, "email obrigatório")
		return usuario.Usuario{}, false
	}
	return u, true
}

func sendError(w http.ResponseWriter, status int, msg string) {
	sendResponse(w, status, map[string]string{"error": msg})
}

func sendResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Error().Err(err).Msg("Erro ao encode response")
		}
	}
}


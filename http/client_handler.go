package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"credit-score/domain"
	"credit-score/service"
)

const maxBodyBytes = 1 << 20

type ClientHandler struct {
	service       *service.ClientService
	log           *slog.Logger
	metrics       *Metrics
	defaultCredit int64
	defaultBase   int64
}

// NewClientHandler wires the client endpoints. defaultCredit and
// defaultBase are used when a score request omits the amounts.
func NewClientHandler(
	service *service.ClientService,
	log *slog.Logger,
	metrics *Metrics,
	defaultCredit, defaultBase int64,
) *ClientHandler {
	return &ClientHandler{
		service:       service,
		log:           log,
		metrics:       metrics,
		defaultCredit: defaultCredit,
		defaultBase:   defaultBase,
	}
}

func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, nonNil(clients))
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clientID(w, r)
	if !ok {
		return
	}

	client, err := h.service.GetClient(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, client)
}

type createResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var input domain.ClientInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, createResponse{Status: "error", Error: "invalid request body"})
		return
	}

	client, err := h.service.CreateClient(r.Context(), input)
	switch {
	case errors.Is(err, domain.ErrInvalidClient):
		writeJSON(w, h.log, http.StatusBadRequest, createResponse{Status: "error", Error: err.Error()})
		return
	case err != nil:
		h.log.Error("creating client", "error", err)
		writeJSON(w, h.log, http.StatusInternalServerError, createResponse{Status: "error"})
		return
	}

	writeJSON(w, h.log, http.StatusCreated, createResponse{Status: "ok", ID: client.ID})
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clientID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteClient(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientHandler) ClientsToFollowUp(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ClientsToFollowUp(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, nonNil(clients))
}

// Score responds with the bare composite score.
func (h *ClientHandler) Score(w http.ResponseWriter, r *http.Request) {
	b, ok := h.score(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.log, http.StatusOK, b.Score)
}

func (h *ClientHandler) ScoreBreakdown(w http.ResponseWriter, r *http.Request) {
	b, ok := h.score(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.log, http.StatusOK, b)
}

func (h *ClientHandler) score(w http.ResponseWriter, r *http.Request) (domain.ScoreBreakdown, bool) {
	id, ok := h.clientID(w, r)
	if !ok {
		return domain.ScoreBreakdown{}, false
	}

	credit, err := amountParam(r, "credit_amount", h.defaultCredit)
	if err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, detail{err.Error()})
		return domain.ScoreBreakdown{}, false
	}
	base, err := amountParam(r, "base_amount", h.defaultBase)
	if err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, detail{err.Error()})
		return domain.ScoreBreakdown{}, false
	}

	b, err := h.service.Score(r.Context(), id, credit, base)
	if err != nil {
		h.writeError(w, err)
		return domain.ScoreBreakdown{}, false
	}

	h.metrics.ObserveScore(b.Score)
	return b, true
}

func (h *ClientHandler) clientID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, detail{"invalid client id"})
		return 0, false
	}
	return id, true
}

func amountParam(r *http.Request, name string, fallback int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func (h *ClientHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		writeJSON(w, h.log, http.StatusNotFound, detail{"Client not found"})
	case errors.Is(err, domain.ErrInvalidParameter), errors.Is(err, domain.ErrInvalidClient):
		writeJSON(w, h.log, http.StatusBadRequest, detail{err.Error()})
	default:
		h.log.Error("request failed", "error", err)
		writeJSON(w, h.log, http.StatusInternalServerError, detail{"internal server error"})
	}
}

func nonNil(clients []domain.Client) []domain.Client {
	if clients == nil {
		return []domain.Client{}
	}
	return clients
}

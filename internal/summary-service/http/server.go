package http

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Lobster444/AI-HAC25/internal/summary-service/analyzer"
	"github.com/Lobster444/AI-HAC25/internal/summary-service/dto"
	"github.com/Lobster444/AI-HAC25/internal/summary-service/store"
	"github.com/Lobster444/AI-HAC25/internal/summary-service/ws"
)

// SummaryStore é o recorte do store usado pelos handlers REST.
type SummaryStore interface {
	Get(ctx context.Context, matchID string) (*store.MatchSummary, error)
	Update(ctx context.Context, matchID string, in store.UpdateInput) (*store.MatchSummary, error)
	Delete(ctx context.Context, matchID string) error
	SaveAPIKey(ctx context.Context, apiKey string) error
	GetCredential(ctx context.Context) (*store.APICredential, error)
	DeleteAPIKey(ctx context.Context) error
}

// MatchAnalyzer dispara o fluxo de análise de imagem.
type MatchAnalyzer interface {
	Analyze(ctx context.Context, imageData []byte, matchID, imageURL string) (analyzer.Result, error)
}

// Server expõe a API REST do summary-service e o endpoint WebSocket.
type Server struct {
	log        *zap.Logger
	store      SummaryStore
	anlz       MatchAnalyzer
	hub        *ws.Hub
	adminToken string
}

func NewServer(log *zap.Logger, st SummaryStore, a MatchAnalyzer, hub *ws.Hub, adminToken string) *Server {
	return &Server{log: log, store: st, anlz: a, hub: hub, adminToken: adminToken}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// leitura é pública: o app consulta o resumo sem autenticação
	r.Get("/v1/matches/{id}/summary", s.getSummary)

	// rotas administrativas exigem bearer token
	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Post("/v1/matches/{id}/analyze", s.analyze)
		r.Put("/v1/matches/{id}/summary", s.updateSummary)
		r.Delete("/v1/matches/{id}/summary", s.deleteSummary)
		r.Put("/v1/config/openai-key", s.saveKey)
		r.Get("/v1/config/openai-key", s.keyStatus)
		r.Delete("/v1/config/openai-key", s.deleteKey)
	})

	if s.hub != nil {
		r.Get("/ws", s.hub.HandleWS)
	}
	return r
}

// requireAdmin valida o bearer token em tempo constante.
// Serviço sem token configurado recusa todas as rotas administrativas.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" {
			writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "admin token not configured"})
			return
		}
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tok == "" || subtle.ConstantTimeCompare([]byte(tok), []byte(s.adminToken)) != 1 {
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// getSummary retorna o resumo persistido da partida.
// Partida sem resumo responde 200 com summary null, não 404.
func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.log.Error("get summary failed", zap.String("matchId", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to get match summary"})
		return
	}
	writeJSON(w, http.StatusOK, dto.SummaryResponse{Success: true, Summary: doc})
}

// analyze recebe a imagem em base64 e roda o fluxo completo de análise.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "imageBase64 is not valid base64"})
		return
	}

	res, err := s.anlz.Analyze(r.Context(), imageData, id, req.ImageURL)
	if err != nil {
		s.log.Warn("analysis failed", zap.String("matchId", id), zap.Error(err))
	}
	writeJSON(w, analyzeStatus(err), res)
}

// analyzeStatus mapeia a taxonomia de erros da análise para códigos HTTP.
func analyzeStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, analyzer.ErrEmptyImage), errors.Is(err, analyzer.ErrEmptyMatchID):
		return http.StatusBadRequest
	case errors.Is(err, analyzer.ErrNoAPIKey):
		return http.StatusPreconditionFailed
	case errors.Is(err, analyzer.ErrUpstream):
		return http.StatusFailedDependency
	default:
		return http.StatusInternalServerError
	}
}

// updateSummary aplica uma atualização parcial manual.
func (s *Server) updateSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}
	if req.Summary == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "summary is required"})
		return
	}

	doc, err := s.store.Update(r.Context(), id, store.UpdateInput{
		Summary:           &req.Summary,
		BettingSuggestion: req.BettingSuggestion,
		OverUnderOdds:     req.OverUnderOdds,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "match summary not found"})
			return
		}
		s.log.Error("update summary failed", zap.String("matchId", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to update match summary"})
		return
	}
	writeJSON(w, http.StatusOK, dto.SummaryResponse{Success: true, Summary: doc})
}

// deleteSummary remove o resumo. Idempotente: 204 mesmo sem documento.
func (s *Server) deleteSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.log.Error("delete summary failed", zap.String("matchId", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to delete match summary"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) saveKey(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}
	if req.OpenAIKey == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "openaiKey is required"})
		return
	}

	if err := s.store.SaveAPIKey(r.Context(), req.OpenAIKey); err != nil {
		s.log.Error("save api key failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to save api key"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// keyStatus informa se há credencial configurada, sem nunca expor a chave inteira.
func (s *Server) keyStatus(w http.ResponseWriter, r *http.Request) {
	cred, err := s.store.GetCredential(r.Context())
	if err != nil {
		s.log.Error("get credential failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to get api key"})
		return
	}
	if cred == nil {
		writeJSON(w, http.StatusOK, dto.KeyStatusResponse{Configured: false})
		return
	}
	writeJSON(w, http.StatusOK, dto.KeyStatusResponse{
		Configured: true,
		MaskedKey:  maskKey(cred.OpenAIKey),
		CreatedAt:  &cred.CreatedAt,
		UpdatedAt:  &cred.UpdatedAt,
	})
}

func (s *Server) deleteKey(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAPIKey(r.Context()); err != nil {
		s.log.Error("delete api key failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to delete api key"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func maskKey(k string) string {
	if len(k) <= 8 {
		return "****"
	}
	return k[:3] + "..." + k[len(k)-4:]
}

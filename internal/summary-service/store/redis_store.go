package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotFound indica update sobre documento inexistente.
	// Leituras de documento ausente retornam (nil, nil), não este erro.
	ErrNotFound = errors.New("match summary not found")
)

const credentialID = "openai"

// Store guarda os documentos de resumo e a credencial como JSON no Redis.
// Um documento por matchId; escrita concorrente resolve por last-write-wins.
type Store struct {
	R *redis.Client
}

func New(r *redis.Client) *Store { return &Store{R: r} }

func keySummary(matchID string) string { return "match:summary:" + matchID }
func keyCredential() string            { return "config:" + credentialID }

// Save faz upsert do documento da partida.
// createdAt é definido na primeira gravação e preservado nas seguintes;
// updatedAt é sempre renovado. Campos opcionais ausentes não são gravados.
func (s *Store) Save(ctx context.Context, in SaveInput) (*MatchSummary, error) {
	now := time.Now().UTC()

	doc := MatchSummary{
		ID:        in.MatchID,
		MatchID:   in.MatchID,
		Summary:   in.Summary,
		CreatedAt: now,
		UpdatedAt: now,
	}

	prev, err := s.Get(ctx, in.MatchID)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		doc.CreatedAt = prev.CreatedAt
	}

	if in.BettingSuggestion != nil {
		doc.BettingSuggestion = *in.BettingSuggestion
	}
	if in.OverUnderOdds != nil {
		doc.OverUnderOdds = in.OverUnderOdds
	}
	if in.ImageURL != nil {
		doc.ImageURL = *in.ImageURL
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := s.R.Set(ctx, keySummary(in.MatchID), b, 0).Err(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Get retorna o documento da partida ou (nil, nil) quando não existe.
func (s *Store) Get(ctx context.Context, matchID string) (*MatchSummary, error) {
	b, err := s.R.Get(ctx, keySummary(matchID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc MatchSummary
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update aplica uma atualização parcial. Documento inexistente é erro
// (ErrNotFound), nunca criação silenciosa.
func (s *Store) Update(ctx context.Context, matchID string, in UpdateInput) (*MatchSummary, error) {
	doc, err := s.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}

	if in.Summary != nil {
		doc.Summary = *in.Summary
	}
	if in.BettingSuggestion != nil {
		doc.BettingSuggestion = *in.BettingSuggestion
	}
	if in.OverUnderOdds != nil {
		doc.OverUnderOdds = in.OverUnderOdds
	}
	if in.ImageURL != nil {
		doc.ImageURL = *in.ImageURL
	}
	doc.UpdatedAt = time.Now().UTC()

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := s.R.Set(ctx, keySummary(matchID), b, 0).Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete remove o documento da partida. Idempotente: chave ausente não é erro.
func (s *Store) Delete(ctx context.Context, matchID string) error {
	return s.R.Del(ctx, keySummary(matchID)).Err()
}

// SaveAPIKey grava a credencial singleton por inteiro (sobrescrita total).
func (s *Store) SaveAPIKey(ctx context.Context, apiKey string) error {
	now := time.Now().UTC()
	cred := APICredential{
		ID:        credentialID,
		OpenAIKey: apiKey,
		CreatedAt: now,
		UpdatedAt: now,
	}

	b, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, keyCredential(), b, 0).Err()
}

// GetCredential retorna o documento da credencial ou (nil, nil) quando ausente.
func (s *Store) GetCredential(ctx context.Context) (*APICredential, error) {
	b, err := s.R.Get(ctx, keyCredential()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cred APICredential
	if err := json.Unmarshal(b, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// GetAPIKey retorna a chave configurada, ou "" quando não há credencial.
func (s *Store) GetAPIKey(ctx context.Context) (string, error) {
	cred, err := s.GetCredential(ctx)
	if err != nil {
		return "", err
	}
	if cred == nil {
		return "", nil
	}
	return cred.OpenAIKey, nil
}

// DeleteAPIKey remove a credencial. Idempotente.
func (s *Store) DeleteAPIKey(ctx context.Context) error {
	return s.R.Del(ctx, keyCredential()).Err()
}

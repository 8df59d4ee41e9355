package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/mange/backend/internal/repository"
)

type ReadingService struct {
	repos *repository.Repos
}

// FromMQTT applies a meter reading published by a branch meter. The store
// rejects readings below the branch's liquidated baseline, keeping the
// billing window monotonic even against a misbehaving meter.
func (s *ReadingService) FromMQTT(topic string, payload []byte) error {
	var r struct {
		Branch  string `json:"branch"`
		Reading int64  `json:"reading"`
	}
	if err := json.Unmarshal(payload, &r); err != nil {
		return err
	}
	log.Debug().Str("topic", topic).Str("branch", r.Branch).Int64("reading", r.Reading).Msg("reading received")
	return s.repos.UpdateReadingByName(context.Background(), r.Branch, r.Reading)
}

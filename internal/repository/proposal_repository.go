package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Emmett6401/bioHealthScheduleManager/internal/models"
	appErrors "github.com/Emmett6401/bioHealthScheduleManager/pkg/errors"
)

// ProposalRepository keeps generated-but-unsaved timetables in Redis.
// Proposals expire on their own; only saving promotes one into the
// database.
type ProposalRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewProposalRepository constructs a ProposalRepository.
func NewProposalRepository(client *redis.Client, logger *zap.Logger) *ProposalRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProposalRepository{client: client, logger: logger}
}

func proposalKey(id string) string {
	return "timetable:proposal:" + id
}

// Save stores a proposal under its ID with the given TTL.
func (r *ProposalRepository) Save(ctx context.Context, proposal *models.TimetableProposal, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("proposal store unavailable")
	}

	payload, err := json.Marshal(proposal)
	if err != nil {
		return fmt.Errorf("marshal proposal %s: %w", proposal.ID, err)
	}

	if err := r.client.Set(ctx, proposalKey(proposal.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set proposal %s: %w", proposal.ID, err)
	}
	return nil
}

// Get retrieves a proposal by ID. A missing or expired proposal yields
// ErrCacheMiss.
func (r *ProposalRepository) Get(ctx context.Context, id string) (*models.TimetableProposal, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, proposalKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get proposal %s: %w", id, err)
	}

	var proposal models.TimetableProposal
	if err := json.Unmarshal(raw, &proposal); err != nil {
		return nil, fmt.Errorf("unmarshal proposal %s: %w", id, err)
	}
	return &proposal, nil
}

// Delete drops a proposal once it has been saved or abandoned.
func (r *ProposalRepository) Delete(ctx context.Context, id string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, proposalKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete proposal %s: %w", id, err)
	}
	return nil
}

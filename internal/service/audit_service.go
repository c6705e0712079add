package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/repository"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

// AuditService exposes read access to the audit trail for superadmins.
// Writing happens in the audit middleware, never through this service.
type AuditService struct {
	audits repository.AuditRepository
}

// NewAuditService constructs the service.
func NewAuditService(audits repository.AuditRepository) *AuditService {
	return &AuditService{audits: audits}
}

// List returns a filtered page of audit entries.
func (s *AuditService) List(ctx context.Context, filter repository.AuditFilter) ([]domain.AuditLog, int64, error) {
	return s.audits.ListWithFilter(ctx, filter)
}

// Get returns a single audit entry.
func (s *AuditService) Get(ctx context.Context, id int64) (*domain.AuditLog, error) {
	entry, err := s.audits.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("audit log")
		}
		return nil, err
	}
	return entry, nil
}

// Stats aggregates audit counters over an optional time window.
func (s *AuditService) Stats(ctx context.Context, from, to *time.Time) (*repository.AuditStats, error) {
	return s.audits.Stats(ctx, from, to)
}

package service

import (
	"context"

	"bizhive/internal/access"
	"bizhive/internal/repository"
)

type AuditLogResponse struct {
	ID        string `json:"id"`
	UserEmail string `json:"user_email"`
	Action    string `json:"action"`
	TableName string `json:"table_name"`
	RecordID  string `json:"record_id"`
	OldData   string `json:"old_data,omitempty"`
	NewData   string `json:"new_data,omitempty"`
	CreatedAt string `json:"created_at"`
}

// AuditService reads the change history. Entries are written by the mutating
// services inside their own transactions; this service only lists them.
type AuditService interface {
	List(ctx context.Context, ac access.Context, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) List(ctx context.Context, ac access.Context, page, limit int) ([]AuditLogResponse, int64, error) {
	if !ac.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	logs, total, err := s.auditRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, AuditLogResponse{
			ID:        l.ID.String(),
			UserEmail: l.UserEmail,
			Action:    l.Action,
			TableName: l.TableName,
			RecordID:  l.RecordID,
			OldData:   l.OldData,
			NewData:   l.NewData,
			CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return res, total, nil
}

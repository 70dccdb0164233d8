package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/entities"
)

// writeTimeout bounds a single background write.
const writeTimeout = 5 * time.Second

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Mutation describes a change made through the API.
type Mutation struct {
	UserID     string
	Type       entities.AuditEventType
	EntityType string // "book", "author", "user"
	EntityID   string
	Summary    string
	IPAddress  string
	UserAgent  string
	Err        error
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// The write is detached from any request context.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := s.repo.LogEvent(ctx, event); err != nil {
			log.Error().Err(err).Str("action", event.Action).Msg("Failed to log audit event")
		}
	}()
}

// Wait blocks until every pending background write has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// LogMutation records a create, update or delete.
func (s *Service) LogMutation(m Mutation) {
	event := &entities.AuditEvent{
		UserID:      m.UserID,
		EventType:   m.Type,
		Action:      m.EntityType + "_" + string(m.Type),
		Description: truncate(m.Summary, 500),
		EntityType:  m.EntityType,
		EntityID:    m.EntityID,
		IPAddress:   m.IPAddress,
		UserAgent:   truncate(m.UserAgent, 500),
		Status:      entities.AuditStatusSuccess,
	}

	if m.Err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(m.Err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogAuth records an authentication event.
func (s *Service) LogAuth(userID, action, ipAddr, userAgent string, success bool) {
	event := &entities.AuditEvent{
		UserID:     userID,
		EventType:  entities.AuditEventAuth,
		Action:     action,
		EntityType: "user",
		EntityID:   userID,
		IPAddress:  ipAddr,
		UserAgent:  truncate(userAgent, 500),
		Status:     entities.AuditStatusSuccess,
	}

	if !success {
		event.Status = entities.AuditStatusFailed
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, userID string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, userID, limit, offset)
}

// DeleteOldEvents removes events older than the retention period.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

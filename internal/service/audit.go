package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"walletapp/internal/logger"
	"walletapp/internal/models"
	"walletapp/internal/repository"
)

// subscriberBuffer bounds each subscriber channel; slow consumers drop events
// rather than stall the pump.
const subscriberBuffer = 16

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// AuditService persists audit events and fans them out to live subscribers.
type AuditService struct {
	repo repository.Audit
	log  *logger.Logger

	mu      sync.Mutex
	subs    map[chan models.AuditEvent]struct{}
	pending chan models.AuditEvent
}

func NewAuditService(repo repository.Audit, log *logger.Logger) *AuditService {
	return &AuditService{
		repo:    repo,
		log:     log,
		subs:    make(map[chan models.AuditEvent]struct{}),
		pending: make(chan models.AuditEvent, 64),
	}
}

// Record appends an event to the trail and queues it for live delivery.
// Auditing is best-effort: a failed append is logged but never fails the
// calling operation.
func (s *AuditService) Record(ctx context.Context, typ, description string, meta map[string]any) {
	e := models.AuditEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        strings.ToUpper(strings.TrimSpace(typ)),
		Description: description,
	}
	if len(meta) > 0 {
		e.Metadata = meta
	}

	if err := s.repo.Append(ctx, e); err != nil {
		s.log.Errorw("failed to persist audit event", "type", e.Type, "err", err)
	}

	select {
	case s.pending <- e:
	default:
		// feed backlog full; persisted copy is the source of truth
	}
}

// List returns audit events matching the filter, oldest first.
func (s *AuditService) List(ctx context.Context, f AuditFilter) ([]models.AuditEvent, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	return s.repo.List(ctx, from, to, strings.ToUpper(strings.TrimSpace(f.Type)))
}

// Subscribe registers a live feed consumer. The returned cancel func must be
// called to release the subscription.
func (s *AuditService) Subscribe() (<-chan models.AuditEvent, func()) {
	ch := make(chan models.AuditEvent, subscriberBuffer)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Run pumps recorded events to subscribers until ctx is canceled.
func (s *AuditService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-s.pending:
			s.broadcast(e)
		}
	}
}

func (s *AuditService) broadcast(e models.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- e:
		default:
			// subscriber too slow; drop for this consumer
		}
	}
}

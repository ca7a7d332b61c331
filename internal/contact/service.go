package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kiriseka/portfolio/internal/store"
)

// Recorder persists accepted transmissions.
type Recorder interface {
	SaveTransmission(ctx context.Context, t store.Transmission) error
}

// Receipt identifies an accepted transmission.
type Receipt struct {
	ID     string
	SentAt time.Time
}

type Service struct {
	tx       Transmitter
	rec      Recorder
	sessions *Sessions
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(tx Transmitter, rec Recorder, sessions *Sessions, logger *zap.Logger) *Service {
	return &Service{
		tx:       tx,
		rec:      rec,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Sessions exposes the status tracker so handlers can reset a form.
func (s *Service) Sessions() *Sessions {
	return s.sessions
}

// Submit validates the form, moves the session through sending, delivers
// the message and records it. A validation error leaves the session idle.
func (s *Service) Submit(ctx context.Context, session string, f Form) (Receipt, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return Receipt{}, err
	}
	if err := s.sessions.Begin(session); err != nil {
		return Receipt{}, err
	}

	msg := Message{Name: f.Name, Comp: f.Comp, Body: f.Msg}
	if err := s.tx.Transmit(ctx, msg); err != nil {
		s.sessions.Finish(session, false)
		s.logger.Warn("transmission failed",
			zap.String("delivery", s.tx.Name()),
			zap.Error(err))
		return Receipt{}, fmt.Errorf("transmit: %w", err)
	}

	receipt := Receipt{ID: uuid.NewString(), SentAt: s.now()}
	err := s.rec.SaveTransmission(ctx, store.Transmission{
		ID:           receipt.ID,
		Sender:       f.Name,
		Organisation: f.Comp,
		Payload:      f.Msg,
		Delivery:     s.tx.Name(),
		CreatedAt:    receipt.SentAt,
	})
	if err != nil {
		// The message went out; losing the local copy is not fatal.
		s.logger.Error("record transmission", zap.String("id", receipt.ID), zap.Error(err))
	}

	s.sessions.Finish(session, true)
	s.logger.Info("transmission received",
		zap.String("id", receipt.ID),
		zap.String("delivery", s.tx.Name()))
	return receipt, nil
}

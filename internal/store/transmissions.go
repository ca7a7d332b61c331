package store

import (
	"context"
	"fmt"
	"time"
)

// Transmission is one accepted contact-form submission.
type Transmission struct {
	ID           string    `json:"id"`
	Sender       string    `json:"sender"`
	Organisation string    `json:"organisation,omitempty"`
	Payload      string    `json:"payload"`
	Delivery     string    `json:"delivery"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *Store) SaveTransmission(ctx context.Context, t Transmission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transmissions (id, sender, organisation, payload, delivery, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Sender, t.Organisation, t.Payload, t.Delivery, t.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("save transmission %s: %w", t.ID, err)
	}
	return nil
}

// RecentTransmissions returns up to limit submissions, newest first.
func (s *Store) RecentTransmissions(ctx context.Context, limit int) ([]Transmission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender, COALESCE(organisation, ''), payload, delivery, created_at
		FROM transmissions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transmissions: %w", err)
	}
	defer rows.Close()

	var out []Transmission
	for rows.Next() {
		var t Transmission
		if err := rows.Scan(&t.ID, &t.Sender, &t.Organisation, &t.Payload, &t.Delivery, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transmission: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

package repository

import (
	"context"
	"fmt"

	"github.com/rcallahan/permitsync/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository wires a payment repository backed by pgxpool.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) UpsertFromSheet(ctx context.Context, payment domain.Payment, projectID uuid.UUID, clientID *uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(
		ctx,
		`INSERT INTO payments (sheet_id, project_id, client_id, amount, paid_at, quickbooks_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (sheet_id) DO UPDATE
		 SET project_id = EXCLUDED.project_id,
		     client_id = EXCLUDED.client_id,
		     amount = EXCLUDED.amount,
		     paid_at = EXCLUDED.paid_at,
		     quickbooks_id = EXCLUDED.quickbooks_id,
		     updated_at = now()
		 RETURNING id`,
		payment.SheetID,
		projectID,
		clientID,
		payment.Amount,
		payment.PaidAt,
		payment.QuickBooksID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert payment %s: %w", payment.SheetID, err)
	}
	return id, nil
}

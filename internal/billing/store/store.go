package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/boardinghub/boardinghub/internal/billing"
	"github.com/boardinghub/boardinghub/internal/notification"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectBillColumns = `
	id, invoice_id, tenant_id, landlord_id, property_id, room_id,
	rent_cents, breakdown, amount_cents,
	period_from, period_to, period_month, period_year,
	due_date, status, proof_id, paid_at, created_at, updated_at
`

func scanBill(s scanner) (*billing.Bill, error) {
	var b billing.Bill

	var (
		statusStr string
		month     int
	)

	if err := s.Scan(
		&b.ID, &b.InvoiceID, &b.TenantID, &b.LandlordID, &b.PropertyID, &b.RoomID,
		&b.RentCents, &b.Breakdown, &b.AmountCents,
		&b.Period.From, &b.Period.To, &month, &b.Period.Year,
		&b.DueDate, &statusStr, &b.ProofID, &b.PaidAt, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Status = billing.Status(statusStr)
	b.Period.Month = time.Month(month)

	return &b, nil
}

const selectProofColumns = `
	id, bill_id, invoice_id, tenant_id, landlord_id, amount_cents,
	image_url, note, status, submitted_at, reviewed_at, review_note
`

func scanProof(s scanner) (*billing.PaymentProof, error) {
	var p billing.PaymentProof

	var statusStr string

	if err := s.Scan(
		&p.ID, &p.BillID, &p.InvoiceID, &p.TenantID, &p.LandlordID, &p.AmountCents,
		&p.ImageURL, &p.Note, &statusStr, &p.SubmittedAt, &p.ReviewedAt, &p.ReviewNote,
	); err != nil {
		return nil, err
	}

	p.Status = billing.ProofStatus(statusStr)

	return &p, nil
}

const selectHistoryColumns = `
	id, receipt_id, bill_id, invoice_id, tenant_id, landlord_id,
	amount_cents, breakdown, method, paid_at, created_at
`

func scanHistory(s scanner) (*billing.PaymentHistory, error) {
	var h billing.PaymentHistory

	if err := s.Scan(
		&h.ID, &h.ReceiptID, &h.BillID, &h.InvoiceID, &h.TenantID, &h.LandlordID,
		&h.AmountCents, &h.Breakdown, &h.Method, &h.PaidAt, &h.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &h, nil
}

func (s *Store) GetBill(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	query := `SELECT ` + selectBillColumns + ` FROM bills WHERE id = $1`

	b, err := scanBill(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("getting bill: %w", err)
	}

	return b, nil
}

func (s *Store) ListBills(ctx context.Context, filter billing.ListFilter) ([]*billing.Bill, error) {
	query := `SELECT ` + selectBillColumns + ` FROM bills WHERE TRUE`

	var args []any

	argIdx := 1

	addArg := func(clause string, v any) {
		query += fmt.Sprintf(" AND "+clause, argIdx)

		args = append(args, v)
		argIdx++
	}

	if filter.LandlordID != nil {
		addArg("landlord_id = $%d", *filter.LandlordID)
	}

	if filter.TenantID != nil {
		addArg("tenant_id = $%d", *filter.TenantID)
	}

	if filter.PropertyID != nil {
		addArg("property_id = $%d", *filter.PropertyID)
	}

	if filter.Status != nil {
		addArg("status = $%d", *filter.Status)
	}

	if filter.Year != nil {
		addArg("period_year = $%d", *filter.Year)
	}

	if filter.Month != nil {
		addArg("period_month = $%d", int(*filter.Month))
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	var bills []*billing.Bill

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		bills = append(bills, b)
	}

	return bills, rows.Err()
}

func (s *Store) DeleteBill(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return billing.ErrNotFound
	}

	return nil
}

func (s *Store) GetProof(ctx context.Context, id uuid.UUID) (*billing.PaymentProof, error) {
	query := `SELECT ` + selectProofColumns + ` FROM payment_proofs WHERE id = $1`

	p, err := scanProof(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, billing.ErrProofNotFound
		}

		return nil, fmt.Errorf("getting proof: %w", err)
	}

	return p, nil
}

func (s *Store) ListProofs(ctx context.Context, filter billing.ProofFilter) ([]*billing.PaymentProof, error) {
	query := `SELECT ` + selectProofColumns + ` FROM payment_proofs WHERE TRUE`

	var args []any

	argIdx := 1

	addArg := func(clause string, v any) {
		query += fmt.Sprintf(" AND "+clause, argIdx)

		args = append(args, v)
		argIdx++
	}

	if filter.BillID != nil {
		addArg("bill_id = $%d", *filter.BillID)
	}

	if filter.LandlordID != nil {
		addArg("landlord_id = $%d", *filter.LandlordID)
	}

	if filter.TenantID != nil {
		addArg("tenant_id = $%d", *filter.TenantID)
	}

	if filter.Status != nil {
		addArg("status = $%d", *filter.Status)
	}

	query += " ORDER BY submitted_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing proofs: %w", err)
	}
	defer rows.Close()

	var proofs []*billing.PaymentProof

	for rows.Next() {
		p, err := scanProof(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning proof: %w", err)
		}

		proofs = append(proofs, p)
	}

	return proofs, rows.Err()
}

func (s *Store) ListHistory(ctx context.Context, filter billing.HistoryFilter) ([]*billing.PaymentHistory, error) {
	query := `SELECT ` + selectHistoryColumns + ` FROM payment_history WHERE TRUE`

	var args []any

	argIdx := 1

	addArg := func(clause string, v any) {
		query += fmt.Sprintf(" AND "+clause, argIdx)

		args = append(args, v)
		argIdx++
	}

	if filter.BillID != nil {
		addArg("bill_id = $%d", *filter.BillID)
	}

	if filter.LandlordID != nil {
		addArg("landlord_id = $%d", *filter.LandlordID)
	}

	if filter.TenantID != nil {
		addArg("tenant_id = $%d", *filter.TenantID)
	}

	if filter.From != nil {
		addArg("paid_at >= $%d", *filter.From)
	}

	if filter.To != nil {
		addArg("paid_at <= $%d", *filter.To)
	}

	query += " ORDER BY paid_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var history []*billing.PaymentHistory

	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}

		history = append(history, h)
	}

	return history, rows.Err()
}

func (s *Store) OccupiedRooms(ctx context.Context, landlordID uuid.UUID) ([]*billing.OccupiedRoom, error) {
	query := `
		SELECT r.id, r.number, r.property_id, r.tenant_id,
		       COALESCE(r.tenant_snapshot->>'name', ''),
		       r.rent_cents, r.utilities, p.due_days
		FROM rooms r
		JOIN properties p ON p.id = r.property_id
		WHERE p.owner_id = $1 AND r.status = 'occupied' AND r.tenant_id IS NOT NULL
		ORDER BY p.created_at, r.number
	`

	rows, err := s.db.QueryContext(ctx, query, landlordID)
	if err != nil {
		return nil, fmt.Errorf("loading occupied rooms: %w", err)
	}
	defer rows.Close()

	var out []*billing.OccupiedRoom

	for rows.Next() {
		var room billing.OccupiedRoom

		if err := rows.Scan(
			&room.RoomID, &room.RoomNumber, &room.PropertyID, &room.TenantID,
			&room.TenantName, &room.RentCents, &room.Utilities, &room.DueDays,
		); err != nil {
			return nil, fmt.Errorf("scanning occupied room: %w", err)
		}

		out = append(out, &room)
	}

	return out, rows.Err()
}

func (s *Store) ConsumptionFor(ctx context.Context, meterID string, year int, month time.Month) (int64, bool, error) {
	var units int64

	err := s.db.QueryRowContext(ctx,
		`SELECT units FROM meter_readings WHERE meter_id = $1 AND period_year = $2 AND period_month = $3`,
		meterID, year, int(month),
	).Scan(&units)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}

		return 0, false, fmt.Errorf("reading meter: %w", err)
	}

	return units, true, nil
}

func (s *Store) UpsertReadings(ctx context.Context, readings []billing.MeterReading) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning upsert: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO meter_readings (meter_id, period_year, period_month, units, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (meter_id, period_year, period_month)
		DO UPDATE SET units = EXCLUDED.units
	`

	for _, r := range readings {
		if _, err := tx.ExecContext(ctx, query, r.MeterID, r.Year, int(r.Month), r.Units); err != nil {
			return fmt.Errorf("upserting reading for meter %s: %w", r.MeterID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bills SET status = 'overdue', updated_at = NOW() WHERE status = 'pending' AND due_date < $1`,
		asOf,
	)
	if err != nil {
		return 0, fmt.Errorf("marking overdue bills: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting overdue bills: %w", err)
	}

	return n, nil
}

func (s *Store) Begin(ctx context.Context) (billing.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return &storeTx{tx: tx}, nil
}

type storeTx struct {
	tx *sql.Tx
}

// NextInvoiceSeq atomically increments the durable per-landlord,
// per-year counter. The row lock taken by the upsert holds until the
// enclosing transaction commits, so concurrent generations serialize
// on the sequence instead of colliding.
func (t *storeTx) NextInvoiceSeq(ctx context.Context, landlordID uuid.UUID, year int) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (landlord_id, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (landlord_id, year)
		DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value
	`

	var seq int64
	if err := t.tx.QueryRowContext(ctx, query, landlordID, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("incrementing invoice sequence: %w", err)
	}

	return seq, nil
}

func (t *storeTx) CreateBill(ctx context.Context, b *billing.Bill) error {
	query := `
		INSERT INTO bills (
			invoice_id, tenant_id, landlord_id, property_id, room_id,
			rent_cents, breakdown, amount_cents,
			period_from, period_to, period_month, period_year,
			due_date, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		b.InvoiceID, b.TenantID, b.LandlordID, b.PropertyID, b.RoomID,
		b.RentCents, b.Breakdown, b.AmountCents,
		b.Period.From, b.Period.To, int(b.Period.Month), b.Period.Year,
		b.DueDate, b.Status,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return billing.ErrDuplicateBill
		}

		return fmt.Errorf("creating bill: %w", err)
	}

	return nil
}

func (t *storeTx) GetBillForUpdate(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	query := `SELECT ` + selectBillColumns + ` FROM bills WHERE id = $1 FOR UPDATE`

	b, err := scanBill(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("locking bill: %w", err)
	}

	return b, nil
}

func (t *storeTx) SetBillStatus(ctx context.Context, id uuid.UUID, status billing.Status, proofID *uuid.UUID, paidAt *time.Time) error {
	query := `
		UPDATE bills
		SET status = $2, proof_id = $3, paid_at = $4, updated_at = NOW()
		WHERE id = $1
	`

	res, err := t.tx.ExecContext(ctx, query, id, status, proofID, paidAt)
	if err != nil {
		return fmt.Errorf("updating bill status: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return billing.ErrNotFound
	}

	return nil
}

func (t *storeTx) CreateProof(ctx context.Context, p *billing.PaymentProof) error {
	query := `
		INSERT INTO payment_proofs (
			bill_id, invoice_id, tenant_id, landlord_id, amount_cents,
			image_url, note, status, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, submitted_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		p.BillID, p.InvoiceID, p.TenantID, p.LandlordID, p.AmountCents,
		p.ImageURL, p.Note, p.Status,
	).Scan(&p.ID, &p.SubmittedAt)
	if err != nil {
		return fmt.Errorf("creating proof: %w", err)
	}

	return nil
}

func (t *storeTx) GetProofForUpdate(ctx context.Context, id uuid.UUID) (*billing.PaymentProof, error) {
	query := `SELECT ` + selectProofColumns + ` FROM payment_proofs WHERE id = $1 FOR UPDATE`

	p, err := scanProof(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, billing.ErrProofNotFound
		}

		return nil, fmt.Errorf("locking proof: %w", err)
	}

	return p, nil
}

func (t *storeTx) SupersedeProofs(ctx context.Context, billID uuid.UUID) error {
	query := `
		UPDATE payment_proofs
		SET status = 'rejected', review_note = 'superseded', reviewed_at = NOW()
		WHERE bill_id = $1 AND status = 'pending_review'
	`

	if _, err := t.tx.ExecContext(ctx, query, billID); err != nil {
		return fmt.Errorf("superseding proofs: %w", err)
	}

	return nil
}

func (t *storeTx) SetProofReview(ctx context.Context, id uuid.UUID, status billing.ProofStatus, note string, reviewedAt time.Time) error {
	query := `
		UPDATE payment_proofs
		SET status = $2, review_note = $3, reviewed_at = $4
		WHERE id = $1
	`

	res, err := t.tx.ExecContext(ctx, query, id, status, note, reviewedAt)
	if err != nil {
		return fmt.Errorf("updating proof review: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return billing.ErrProofNotFound
	}

	return nil
}

func (t *storeTx) CreateHistory(ctx context.Context, h *billing.PaymentHistory) error {
	query := `
		INSERT INTO payment_history (
			receipt_id, bill_id, invoice_id, tenant_id, landlord_id,
			amount_cents, breakdown, method, paid_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		h.ReceiptID, h.BillID, h.InvoiceID, h.TenantID, h.LandlordID,
		h.AmountCents, h.Breakdown, h.Method, h.PaidAt,
	).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment history: %w", err)
	}

	return nil
}

func (t *storeTx) Notify(ctx context.Context, recipientID uuid.UUID, kind notification.Kind, title, body string, refID uuid.UUID) error {
	query := `
		INSERT INTO notifications (recipient_id, kind, title, body, ref_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	if _, err := t.tx.ExecContext(ctx, query, recipientID, kind, title, body, refID); err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}

func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}

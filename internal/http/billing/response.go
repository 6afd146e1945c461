package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/boardinghub/boardinghub/internal/billing"
)

type chargeLineResponse struct {
	Name        string `json:"name"`
	Kind        string `json:"kind,omitempty"`
	AmountCents int64  `json:"amount_cents"`
	Consumption int64  `json:"consumption,omitempty"`
	RateCents   int64  `json:"rate_cents,omitempty"`
}

type billResponse struct {
	ID          uuid.UUID            `json:"id"`
	InvoiceID   string               `json:"invoice_id"`
	TenantID    uuid.UUID            `json:"tenant_id"`
	LandlordID  uuid.UUID            `json:"landlord_id"`
	PropertyID  uuid.UUID            `json:"property_id"`
	RoomID      uuid.UUID            `json:"room_id"`
	RentCents   int64                `json:"rent_cents"`
	Breakdown   []chargeLineResponse `json:"breakdown"`
	AmountCents int64                `json:"amount_cents"`
	PeriodFrom  time.Time            `json:"period_from"`
	PeriodTo    time.Time            `json:"period_to"`
	Month       int                  `json:"month"`
	Year        int                  `json:"year"`
	DueDate     time.Time            `json:"due_date"`
	Status      billing.Status       `json:"status"`
	ProofID     *uuid.UUID           `json:"proof_id,omitempty"`
	PaidAt      *time.Time           `json:"paid_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   *time.Time           `json:"updated_at,omitempty"`
}

func toBreakdownResponse(b billing.Breakdown) []chargeLineResponse {
	lines := make([]chargeLineResponse, len(b))
	for i, line := range b {
		lines[i] = chargeLineResponse{
			Name:        line.Name,
			Kind:        string(line.Kind),
			AmountCents: line.AmountCents,
			Consumption: line.Consumption,
			RateCents:   line.RateCents,
		}
	}

	return lines
}

func toBillResponse(b *billing.Bill) billResponse {
	return billResponse{
		ID:          b.ID,
		InvoiceID:   b.InvoiceID,
		TenantID:    b.TenantID,
		LandlordID:  b.LandlordID,
		PropertyID:  b.PropertyID,
		RoomID:      b.RoomID,
		RentCents:   b.RentCents,
		Breakdown:   toBreakdownResponse(b.Breakdown),
		AmountCents: b.AmountCents,
		PeriodFrom:  b.Period.From,
		PeriodTo:    b.Period.To,
		Month:       int(b.Period.Month),
		Year:        b.Period.Year,
		DueDate:     b.DueDate,
		Status:      b.Status,
		ProofID:     b.ProofID,
		PaidAt:      b.PaidAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBillResponseList(bills []*billing.Bill) []billResponse {
	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toBillResponse(b)
	}

	return resp
}

type proofResponse struct {
	ID          uuid.UUID           `json:"id"`
	BillID      uuid.UUID           `json:"bill_id"`
	InvoiceID   string              `json:"invoice_id"`
	TenantID    uuid.UUID           `json:"tenant_id"`
	LandlordID  uuid.UUID           `json:"landlord_id"`
	AmountCents int64               `json:"amount_cents"`
	ImageURL    string              `json:"image_url"`
	Note        string              `json:"note,omitempty"`
	Status      billing.ProofStatus `json:"status"`
	SubmittedAt time.Time           `json:"submitted_at"`
	ReviewedAt  *time.Time          `json:"reviewed_at,omitempty"`
	ReviewNote  string              `json:"review_note,omitempty"`
}

func toProofResponse(p *billing.PaymentProof) proofResponse {
	return proofResponse{
		ID:          p.ID,
		BillID:      p.BillID,
		InvoiceID:   p.InvoiceID,
		TenantID:    p.TenantID,
		LandlordID:  p.LandlordID,
		AmountCents: p.AmountCents,
		ImageURL:    p.ImageURL,
		Note:        p.Note,
		Status:      p.Status,
		SubmittedAt: p.SubmittedAt,
		ReviewedAt:  p.ReviewedAt,
		ReviewNote:  p.ReviewNote,
	}
}

func toProofResponseList(proofs []*billing.PaymentProof) []proofResponse {
	resp := make([]proofResponse, len(proofs))
	for i, p := range proofs {
		resp[i] = toProofResponse(p)
	}

	return resp
}

type historyResponse struct {
	ID          uuid.UUID            `json:"id"`
	ReceiptID   string               `json:"receipt_id"`
	BillID      uuid.UUID            `json:"bill_id"`
	InvoiceID   string               `json:"invoice_id"`
	TenantID    uuid.UUID            `json:"tenant_id"`
	LandlordID  uuid.UUID            `json:"landlord_id"`
	AmountCents int64                `json:"amount_cents"`
	Breakdown   []chargeLineResponse `json:"breakdown"`
	Method      string               `json:"method"`
	PaidAt      time.Time            `json:"paid_at"`
	CreatedAt   time.Time            `json:"created_at"`
}

func toHistoryResponse(h *billing.PaymentHistory) historyResponse {
	return historyResponse{
		ID:          h.ID,
		ReceiptID:   h.ReceiptID,
		BillID:      h.BillID,
		InvoiceID:   h.InvoiceID,
		TenantID:    h.TenantID,
		LandlordID:  h.LandlordID,
		AmountCents: h.AmountCents,
		Breakdown:   toBreakdownResponse(h.Breakdown),
		Method:      h.Method,
		PaidAt:      h.PaidAt,
		CreatedAt:   h.CreatedAt,
	}
}

func toHistoryResponseList(history []*billing.PaymentHistory) []historyResponse {
	resp := make([]historyResponse, len(history))
	for i, h := range history {
		resp[i] = toHistoryResponse(h)
	}

	return resp
}

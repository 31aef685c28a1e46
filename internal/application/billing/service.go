// Package billing implements the settlement engine: recording and removing
// payments against bills and invoices, with the document's paid amount and
// status re-derived from the full payment set inside the same update.
package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shivaccounts/backend/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService exposes settlement operations
type PaymentService struct {
	store  *memory.Store
	logger *zap.Logger
}

// NewPaymentService creates the settlement service
func NewPaymentService(store *memory.Store, logger *zap.Logger) *PaymentService {
	return &PaymentService{store: store, logger: logger}
}

// PaymentInput carries the fields of a new payment
type PaymentInput struct {
	Direction   billing.PaymentDirection
	DocumentID  uuid.UUID
	Amount      decimal.Decimal
	Method      billing.PaymentMethod
	AccountID   uuid.UUID
	PaymentDate time.Time
	Notes       string
}

func settleFromPayments(state *memory.State, doc *billing.Document) error {
	total := decimal.Zero
	for _, p := range state.PaymentsByDocument(doc.ID) {
		total = total.Add(p.Amount)
	}
	return doc.Settle(total)
}

// RecordPayment applies a payment to a bill or invoice. The payment insert
// and the document's re-derived status commit together; an overpayment
// rejects the whole attempt and leaves the document untouched.
func (s *PaymentService) RecordPayment(input PaymentInput) (*billing.Payment, *billing.Document, error) {
	var (
		created *billing.Payment
		settled *billing.Document
	)
	err := s.store.Update(func(state *memory.State) error {
		doc, ok := state.Documents[input.DocumentID]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Document %s not found", input.DocumentID)
		}
		if _, ok := state.Accounts[input.AccountID]; !ok {
			return shared.NewDomainErrorf(shared.CodeReferentialIntegrity, "Account %s not found", input.AccountID)
		}
		if !doc.AcceptsDirection(input.Direction) {
			return shared.NewDomainErrorf(shared.CodeInvalidInput,
				"A %s cannot settle a %s", input.Direction, doc.Kind)
		}

		payment, err := billing.NewPayment(input.Direction, doc.ID, input.Amount,
			input.Method, input.AccountID, input.PaymentDate, input.Notes)
		if err != nil {
			return err
		}
		state.Payments[payment.ID] = payment

		if err := settleFromPayments(state, doc); err != nil {
			return err
		}

		created = payment.Clone()
		settled = doc.Clone()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", created.ID.String()),
		zap.String("document_id", settled.ID.String()),
		zap.String("document_status", settled.Status.String()))
	return created, settled, nil
}

// DeletePayment removes a payment and re-derives the document's settlement
// status from the remaining set
func (s *PaymentService) DeletePayment(id uuid.UUID) (*billing.Document, error) {
	var settled *billing.Document
	err := s.store.Update(func(state *memory.State) error {
		payment, ok := state.Payments[id]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Payment %s not found", id)
		}
		delete(state.Payments, id)

		doc, ok := state.Documents[payment.DocumentID]
		if !ok {
			// document gone, nothing to re-derive
			return nil
		}
		if err := settleFromPayments(state, doc); err != nil {
			return err
		}
		settled = doc.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

// GetPayment returns a payment by ID
func (s *PaymentService) GetPayment(id uuid.UUID) (*billing.Payment, error) {
	payment, ok := s.store.Snapshot().State.Payments[id]
	if !ok {
		return nil, shared.NewDomainErrorf(shared.CodeNotFound, "Payment %s not found", id)
	}
	return payment.Clone(), nil
}

// ListPayments returns payments, optionally scoped to one document
func (s *PaymentService) ListPayments(documentID uuid.UUID) []*billing.Payment {
	state := s.store.Snapshot().State
	if documentID != uuid.Nil {
		out := make([]*billing.Payment, 0)
		for _, p := range state.PaymentsByDocument(documentID) {
			out = append(out, p.Clone())
		}
		return out
	}

	out := make([]*billing.Payment, 0)
	for _, p := range state.PaymentList() {
		out = append(out, p.Clone())
	}
	return out
}

// GetDocument returns a bill or invoice by ID
func (s *PaymentService) GetDocument(id uuid.UUID) (*billing.Document, error) {
	doc, ok := s.store.Snapshot().State.Documents[id]
	if !ok {
		return nil, shared.NewDomainErrorf(shared.CodeNotFound, "Document %s not found", id)
	}
	return doc.Clone(), nil
}

// ListDocuments returns documents, optionally filtered by kind and status
func (s *PaymentService) ListDocuments(kind billing.DocumentKind, status billing.DocumentStatus) []*billing.Document {
	out := make([]*billing.Document, 0)
	for _, d := range s.store.Snapshot().State.DocumentList() {
		if kind != "" && d.Kind != kind {
			continue
		}
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, d.Clone())
	}
	return out
}

// Package store persists invoices in a document store. Invoices are always
// written as full documents (no partial-field patches) and the derived
// totals are recomputed on every read rather than trusted from storage.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/faturalab/fatura/api"
)

// ErrNotFound is returned when no invoice exists for the given identifier.
var ErrNotFound = errors.New("invoice not found")

// Repository is the document-store boundary the handlers talk to.
type Repository interface {
	// Create persists a new invoice, assigning its identifier and
	// creation/update timestamps.
	Create(ctx context.Context, inv *api.Invoice) error

	// Get returns one invoice with freshly recomputed totals.
	Get(ctx context.Context, id string) (*api.Invoice, error)

	// List returns all invoices, newest first.
	List(ctx context.Context) ([]*api.Invoice, error)

	// Replace overwrites the stored document wholesale, keeping the
	// original identifier and creation timestamp and bumping updatedAt.
	Replace(ctx context.Context, id string, inv *api.Invoice) error

	// Delete removes the invoice.
	Delete(ctx context.Context, id string) error

	// Duplicate copies an existing invoice to a new identifier with
	// "-Copy" appended to its number and fresh timestamps.
	Duplicate(ctx context.Context, id string) (*api.Invoice, error)
}

// CopyOf builds the duplicate of an invoice: identifier cleared for
// reassignment, number suffixed with "-Copy", timestamps reset. Everything
// else, line items and adjustments included, carries over verbatim.
func CopyOf(inv api.Invoice, now time.Time) api.Invoice {
	dup := inv
	dup.ID = ""
	if dup.Details.Number != "" {
		dup.Details.Number += "-Copy"
	}
	dup.CreatedAt = now
	dup.UpdatedAt = now
	return dup
}

package api

import "time"

// Status is the invoice lifecycle state. It is a closed set; anything else
// must be rejected or defaulted by the caller before it reaches this package.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// AdjustmentMode selects how an adjustment amount is interpreted.
type AdjustmentMode string

const (
	ModeFixed      AdjustmentMode = "fixed"
	ModePercentage AdjustmentMode = "percentage"
)

// AdjustmentKind identifies one of the three subtotal adjustments.
// Discount is subtracted from the subtotal; tax and shipping are added.
type AdjustmentKind string

const (
	KindDiscount AdjustmentKind = "discount"
	KindTax      AdjustmentKind = "tax"
	KindShipping AdjustmentKind = "shipping"
)

// Kinds lists the adjustment kinds in the order they are applied to a total.
var Kinds = []AdjustmentKind{KindDiscount, KindTax, KindShipping}

// Adjustment is a single toggle-able modifier against the invoice subtotal.
// A disabled adjustment, or one with a zero amount, contributes nothing
// regardless of mode.
type Adjustment struct {
	Enabled bool           `json:"enabled" yaml:"enabled" bson:"enabled"`
	Amount  float64        `json:"amount" yaml:"amount" bson:"amount"`
	Mode    AdjustmentMode `json:"mode" yaml:"mode" bson:"mode"`
}

// LineItem is one billable row. IDs start at 1 and are unique within a
// single invoice only.
type LineItem struct {
	ID          int     `json:"id" yaml:"id" bson:"id"`
	Name        string  `json:"name" yaml:"name" bson:"name"`
	Quantity    float64 `json:"quantity" yaml:"quantity" bson:"quantity"`
	Rate        float64 `json:"rate" yaml:"rate" bson:"rate"`
	Description string  `json:"description" yaml:"description" bson:"description"`
}

// CustomField is an arbitrary label/value pair attached to a party.
type CustomField struct {
	Label string `json:"label" yaml:"label" bson:"label"`
	Value string `json:"value" yaml:"value" bson:"value"`
}

// Party is either side of the invoice (bill from / bill to).
type Party struct {
	Name         string        `json:"name" yaml:"name" bson:"name"`
	Address      string        `json:"address" yaml:"address" bson:"address"`
	Zip          string        `json:"zip" yaml:"zip" bson:"zip"`
	City         string        `json:"city" yaml:"city" bson:"city"`
	Country      string        `json:"country" yaml:"country" bson:"country"`
	Email        string        `json:"email" yaml:"email" bson:"email"`
	Phone        string        `json:"phone" yaml:"phone" bson:"phone"`
	CustomFields []CustomField `json:"customFields,omitempty" yaml:"customFields,omitempty" bson:"customFields,omitempty"`
}

// Details carries invoice metadata. Currency is an opaque 3-letter code
// echoed verbatim into formatted strings; Logo is an opaque reference.
type Details struct {
	Logo      string `json:"logo,omitempty" yaml:"logo,omitempty" bson:"logo,omitempty"`
	Number    string `json:"invoiceNumber" yaml:"invoiceNumber" bson:"invoiceNumber"`
	IssueDate string `json:"issueDate" yaml:"issueDate" bson:"issueDate"`
	DueDate   string `json:"dueDate" yaml:"dueDate" bson:"dueDate"`
	Currency  string `json:"currency" yaml:"currency" bson:"currency"`
}

// PaymentInfo is the bank detail block printed on the invoice.
type PaymentInfo struct {
	BankName      string `json:"bankName" yaml:"bankName" bson:"bankName"`
	AccountName   string `json:"accountName" yaml:"accountName" bson:"accountName"`
	AccountNumber string `json:"accountNumber" yaml:"accountNumber" bson:"accountNumber"`
}

// Summary holds the three adjustments plus the free-text blocks and status.
type Summary struct {
	Discount Adjustment `json:"discount" yaml:"discount" bson:"discount"`
	Tax      Adjustment `json:"tax" yaml:"tax" bson:"tax"`
	Shipping Adjustment `json:"shipping" yaml:"shipping" bson:"shipping"`
	Notes    string     `json:"additionalNotes" yaml:"additionalNotes" bson:"additionalNotes"`
	Terms    string     `json:"paymentTerms" yaml:"paymentTerms" bson:"paymentTerms"`
	Status   Status     `json:"status" yaml:"status" bson:"status"`
}

// Invoice is the full document. Subtotal and Total are derived values; they
// are stamped on the document for convenience but must be recomputed from
// the line items at read time, never trusted from storage.
type Invoice struct {
	ID        string      `json:"id,omitempty" yaml:"id,omitempty" bson:"_id,omitempty"`
	BillFrom  Party       `json:"billFrom" yaml:"billFrom" bson:"billFrom"`
	BillTo    Party       `json:"billTo" yaml:"billTo" bson:"billTo"`
	Details   Details     `json:"invoiceDetails" yaml:"invoiceDetails" bson:"invoiceDetails"`
	LineItems []LineItem  `json:"lineItems" yaml:"lineItems" bson:"lineItems"`
	Payment   PaymentInfo `json:"paymentInfo" yaml:"paymentInfo" bson:"paymentInfo"`
	Summary   Summary     `json:"summaryInfo" yaml:"summaryInfo" bson:"summaryInfo"`
	Subtotal  float64     `json:"subtotal" yaml:"subtotal" bson:"subtotal"`
	Total     float64     `json:"total" yaml:"total" bson:"total"`
	CreatedAt time.Time   `json:"createdAt,omitempty" yaml:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time   `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Adjustment returns the setting for the given kind. Unknown kinds map to a
// disabled adjustment so callers never trip over a zero value.
func (s Summary) Adjustment(kind AdjustmentKind) Adjustment {
	switch kind {
	case KindDiscount:
		return s.Discount
	case KindTax:
		return s.Tax
	case KindShipping:
		return s.Shipping
	}
	return Adjustment{}
}

// Items returns the line items, never nil. Documents written by older
// clients may omit the array entirely.
func (inv Invoice) Items() []LineItem {
	if inv.LineItems == nil {
		return []LineItem{}
	}
	return inv.LineItems
}

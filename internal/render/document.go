package render

import "math"

// Party identifies either the issuing company or the billed client.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// LineItem is one billable row. Unit prices are integer cents; quantity stays
// fractional because metered usage bills in fractions of a unit.
type LineItem struct {
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
}

// AmountCents is the line total in cents, rounded half away from zero.
func (li LineItem) AmountCents() int64 {
	return int64(math.Round(li.Quantity * float64(li.UnitPriceCents)))
}

// DocumentData is everything the pipeline renders besides the design itself.
// Dates arrive preformatted by the caller: the pipeline never reads a clock,
// so "today" placeholders must be resolved before layout.
type DocumentData struct {
	Company        Party      `json:"company"`
	BillTo         Party      `json:"bill_to"`
	InvoiceNumber  string     `json:"invoice_number"`
	IssueDate      string     `json:"issue_date"`
	DueDate        string     `json:"due_date"`
	Items          []LineItem `json:"items"`
	TaxRatePercent float64    `json:"tax_rate_percent"`
	DiscountCents  int64      `json:"discount_cents"`
	PaymentTerms   string     `json:"payment_terms"`
	Notes          string     `json:"notes"`
	Terms          string     `json:"terms"`
}

// Totals carries the computed monetary rollup in cents.
type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	DiscountCents int64 `json:"discount_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// ComputeTotals rolls the line items up in integer cents. Tax rounds half away
// from zero on the subtotal; the discount subtracts last.
func ComputeTotals(data DocumentData) Totals {
	var subtotal int64
	for _, item := range data.Items {
		subtotal += item.AmountCents()
	}
	tax := int64(math.Round(float64(subtotal) * data.TaxRatePercent / 100))
	return Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		DiscountCents: data.DiscountCents,
		TotalCents:    subtotal + tax - data.DiscountCents,
	}
}

package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Sheet column labels for the Payments tab.
const (
	ColumnPaymentID         = "Payment ID"
	ColumnAmount            = "Amount"
	ColumnPaymentDate       = "Payment Date"
	ColumnQuickBooksInvoice = "QuickBooks Invoice ID"
)

// Payment is a validated row from the Payments sheet. ProjectSheetID must
// resolve against the target store; ClientSheetID is optional and, when set,
// must resolve as well. QuickBooksID carries the accounting system reference
// recorded in the sheet, no API call is made here.
type Payment struct {
	SheetID        string
	ProjectSheetID string
	ClientSheetID  string
	Amount         decimal.Decimal
	PaidAt         *time.Time
	QuickBooksID   string
}

// ParsePaymentRow validates and converts a raw sheet row into a Payment.
// Payment ID, Project ID and a parseable Amount are required. Currency
// symbols and thousands separators are tolerated ("$1,250.00").
func ParsePaymentRow(row map[string]string) (Payment, error) {
	sheetID := strings.TrimSpace(row[ColumnPaymentID])
	if sheetID == "" {
		return Payment{}, fmt.Errorf("missing required field %q", ColumnPaymentID)
	}

	projectSheetID := strings.TrimSpace(row[ColumnProjectID])
	if projectSheetID == "" {
		return Payment{}, fmt.Errorf("missing required field %q", ColumnProjectID)
	}

	rawAmount := strings.TrimSpace(row[ColumnAmount])
	if rawAmount == "" {
		return Payment{}, fmt.Errorf("missing required field %q", ColumnAmount)
	}
	rawAmount = strings.TrimPrefix(rawAmount, "$")
	rawAmount = strings.ReplaceAll(rawAmount, ",", "")
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return Payment{}, fmt.Errorf("invalid %q value %q", ColumnAmount, row[ColumnAmount])
	}

	payment := Payment{
		SheetID:        sheetID,
		ProjectSheetID: projectSheetID,
		ClientSheetID:  strings.TrimSpace(row[ColumnClientID]),
		Amount:         amount,
		QuickBooksID:   strings.TrimSpace(row[ColumnQuickBooksInvoice]),
	}

	if raw := strings.TrimSpace(row[ColumnPaymentDate]); raw != "" {
		paidAt, err := parseSheetDate(raw)
		if err != nil {
			return Payment{}, fmt.Errorf("invalid %q value %q", ColumnPaymentDate, raw)
		}
		payment.PaidAt = &paidAt
	}

	return payment, nil
}

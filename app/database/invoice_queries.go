package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/billing"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

const invoiceColumns = `i.id, i.member_id, i.booking_id, i.number, i.status, i.issued_at, i.due_date,
	i.subtotal, i.tax_total, i.total_amount, i.paid_at, i.notes, i.created_at, i.updated_at, i.deleted_at`

const invoiceItemColumns = `it.id, it.invoice_id, it.description, it.quantity, it.unit_price, it.tax_rate,
	it.amount, it.tax_amount, it.rate_inclusive, it.line_total, it.created_at, it.updated_at, it.deleted_at`

func scanInvoice(scanner interface{ Scan(...interface{}) error }, inv *models.Invoice) error {
	return scanner.Scan(
		&inv.ID, &inv.MemberID, &inv.BookingID, &inv.Number, &inv.Status, &inv.IssuedAt, &inv.DueDate,
		&inv.Subtotal, &inv.TaxTotal, &inv.TotalAmount, &inv.PaidAt, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt,
	)
}

func scanInvoiceItem(scanner interface{ Scan(...interface{}) error }, it *models.InvoiceItem) error {
	return scanner.Scan(
		&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitPrice, &it.TaxRate,
		&it.Amount, &it.TaxAmount, &it.RateInclusive, &it.LineTotal,
		&it.CreatedAt, &it.UpdatedAt, &it.DeletedAt,
	)
}

// GetInvoices lists invoices newest-first, optionally for one member or status.
func GetInvoices(db *sql.DB, memberID, status string) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `, COALESCE(u.first_name || ' ' || u.last_name, '')
			  FROM invoices i
			  JOIN members m ON m.id = i.member_id
			  JOIN users u ON u.id = m.user_id
			  WHERE i.deleted_at IS NULL`

	var args []interface{}
	argIndex := 1
	if memberID != "" {
		query += fmt.Sprintf(" AND i.member_id = $%d", argIndex)
		args = append(args, memberID)
		argIndex++
	}
	if status != "" {
		query += fmt.Sprintf(" AND i.status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}
	query += " ORDER BY i.created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv := &models.Invoice{}
		err := rows.Scan(
			&inv.ID, &inv.MemberID, &inv.BookingID, &inv.Number, &inv.Status, &inv.IssuedAt, &inv.DueDate,
			&inv.Subtotal, &inv.TaxTotal, &inv.TotalAmount, &inv.PaidAt, &inv.Notes,
			&inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt, &inv.MemberName,
		)
		if err != nil {
			continue
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// GetInvoiceByID fetches one invoice with all its items, deleted items
// included (they are retained for audit and flagged by deleted_at).
func GetInvoiceByID(db *sql.DB, id string) (*models.Invoice, error) {
	inv := &models.Invoice{}
	query := `SELECT ` + invoiceColumns + ` FROM invoices i WHERE i.id = $1 AND i.deleted_at IS NULL`
	if err := scanInvoice(db.QueryRow(query, id), inv); err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT `+invoiceItemColumns+` FROM invoice_items it WHERE it.invoice_id = $1 ORDER BY it.created_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it models.InvoiceItem
		if err := scanInvoiceItem(rows, &it); err != nil {
			continue
		}
		inv.Items = append(inv.Items, it)
	}
	return inv, rows.Err()
}

// CreateInvoice inserts a draft invoice with a generated sequential number.
func CreateInvoice(db *sql.DB, inv *models.Invoice) error {
	query := `INSERT INTO invoices (member_id, booking_id, number, status, due_date, notes)
			  VALUES ($1, $2, 'INV-' || to_char(NOW(), 'YYYY') || '-' || lpad(nextval('invoice_number_seq')::text, 5, '0'), $3, $4, $5)
			  RETURNING id, number, created_at, updated_at`
	err := db.QueryRow(query, inv.MemberID, inv.BookingID, inv.Status, inv.DueDate, inv.Notes).
		Scan(&inv.ID, &inv.Number, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %v", err)
	}
	return nil
}

// recomputeInvoiceTotals re-aggregates the invoice from its non-deleted
// items inside tx. Every item write goes through this so the stored totals
// can never drift from the line items.
func recomputeInvoiceTotals(tx *sql.Tx, invoiceID string) error {
	rows, err := tx.Query(`SELECT `+invoiceItemColumns+` FROM invoice_items it WHERE it.invoice_id = $1`, invoiceID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var items []models.InvoiceItem
	for rows.Next() {
		var it models.InvoiceItem
		if err := scanInvoiceItem(rows, &it); err != nil {
			return err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	totals := billing.CalculateInvoiceTotals(items)
	_, err = tx.Exec(`UPDATE invoices
		SET subtotal = $1, tax_total = $2, total_amount = $3, updated_at = NOW()
		WHERE id = $4`, totals.Subtotal, totals.TaxTotal, totals.TotalAmount, invoiceID)
	return err
}

// AddInvoiceItem derives the item's monetary fields, inserts it and
// re-aggregates the invoice in one transaction.
func AddInvoiceItem(db *sql.DB, item *models.InvoiceItem) error {
	amounts, err := billing.CalculateItemAmounts(item.Quantity, item.UnitPrice, item.TaxRate)
	if err != nil {
		return err
	}
	item.Amount = amounts.Amount
	item.TaxAmount = amounts.TaxAmount
	item.RateInclusive = amounts.RateInclusive
	item.LineTotal = amounts.LineTotal

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO invoice_items
			  (invoice_id, description, quantity, unit_price, tax_rate, amount, tax_amount, rate_inclusive, line_total)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query,
		item.InvoiceID, item.Description, item.Quantity, item.UnitPrice, item.TaxRate,
		item.Amount, item.TaxAmount, item.RateInclusive, item.LineTotal,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert invoice item: %v", err)
	}

	if err := recomputeInvoiceTotals(tx, item.InvoiceID); err != nil {
		return fmt.Errorf("failed to recompute invoice totals: %v", err)
	}
	return tx.Commit()
}

// UpdateInvoiceItem re-derives the monetary fields from the new inputs and
// re-aggregates the invoice.
func UpdateInvoiceItem(db *sql.DB, item *models.InvoiceItem) error {
	amounts, err := billing.CalculateItemAmounts(item.Quantity, item.UnitPrice, item.TaxRate)
	if err != nil {
		return err
	}
	item.Amount = amounts.Amount
	item.TaxAmount = amounts.TaxAmount
	item.RateInclusive = amounts.RateInclusive
	item.LineTotal = amounts.LineTotal

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE invoice_items
			  SET description = $1, quantity = $2, unit_price = $3, tax_rate = $4,
			      amount = $5, tax_amount = $6, rate_inclusive = $7, line_total = $8, updated_at = NOW()
			  WHERE id = $9 AND deleted_at IS NULL
			  RETURNING invoice_id`
	err = tx.QueryRow(query,
		item.Description, item.Quantity, item.UnitPrice, item.TaxRate,
		item.Amount, item.TaxAmount, item.RateInclusive, item.LineTotal, item.ID,
	).Scan(&item.InvoiceID)
	if err != nil {
		return err
	}

	if err := recomputeInvoiceTotals(tx, item.InvoiceID); err != nil {
		return fmt.Errorf("failed to recompute invoice totals: %v", err)
	}
	return tx.Commit()
}

// DeleteInvoiceItem soft-deletes an item (kept for audit) and re-aggregates
// the invoice without it.
func DeleteInvoiceItem(db *sql.DB, itemID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var invoiceID string
	err = tx.QueryRow(`UPDATE invoice_items SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING invoice_id`, itemID).Scan(&invoiceID)
	if err != nil {
		return err
	}

	if err := recomputeInvoiceTotals(tx, invoiceID); err != nil {
		return fmt.Errorf("failed to recompute invoice totals: %v", err)
	}
	return tx.Commit()
}

// IssueInvoice moves a draft invoice to issued and stamps the issue date.
func IssueInvoice(db *sql.DB, id string, dueDate time.Time) error {
	res, err := db.Exec(`UPDATE invoices
		SET status = 'issued', issued_at = NOW(), due_date = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'draft' AND deleted_at IS NULL`, dueDate, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkInvoicePaid stamps payment on an issued or overdue invoice.
func MarkInvoicePaid(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE invoices
		SET status = 'paid', paid_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status IN ('issued', 'overdue') AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// VoidInvoice soft-deletes an invoice.
func VoidInvoice(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE invoices
		SET status = 'voided', deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	return err
}

// FlagOverdueInvoices marks issued invoices past their due date. Run by the
// nightly scheduler.
func FlagOverdueInvoices(db *sql.DB) (int64, error) {
	res, err := db.Exec(`UPDATE invoices
		SET status = 'overdue', updated_at = NOW()
		WHERE status = 'issued' AND deleted_at IS NULL
		AND due_date IS NOT NULL AND due_date < NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, internal_id, invoice_number, customer_name, customer_email,
	customer_identification_type, customer_identification_number, issue_date, due_date,
	status, subtotal, total, notes, created_at, updated_at`

// Create persiste la cabecera de una nueva factura.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CompanyID, inv.InternalID, inv.InvoiceNumber,
		inv.CustomerName, inv.CustomerEmail, inv.CustomerIdentificationType, inv.CustomerIdentificationNumber,
		inv.IssueDate, inv.DueDate, inv.Status, inv.Subtotal, inv.Total, inv.Notes,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de factura.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, product_id, description, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.ProductID, item.Description,
		item.Quantity, item.UnitPrice, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// CreateTax persiste un impuesto de factura.
func (r *InvoiceRepo) CreateTax(tax *entity.TaxItem) error {
	query := `
		INSERT INTO invoice_taxes (id, invoice_id, tax_type, percentage, amount)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		tax.ID, tax.InvoiceID, tax.TaxType, tax.Percentage, tax.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice tax: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene la cabecera con bloqueo FOR UPDATE. Serializa los
// recálculos y transiciones concurrentes sobre la misma factura; solo tiene
// sentido dentro de una transacción.
func (r *InvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *InvoiceRepo) scanOne(query string, args ...any) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&inv.ID, &inv.CompanyID, &inv.InternalID, &inv.InvoiceNumber,
		&inv.CustomerName, &inv.CustomerEmail, &inv.CustomerIdentificationType, &inv.CustomerIdentificationNumber,
		&inv.IssueDate, &inv.DueDate, &inv.Status, &inv.Subtotal, &inv.Total, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItemsByInvoiceID obtiene las líneas de una factura en orden de inserción.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_id, description, quantity, unit_price, total
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var items []*entity.InvoiceItem
	for rows.Next() {
		var item entity.InvoiceItem
		if err := rows.Scan(
			&item.ID, &item.InvoiceID, &item.ProductID, &item.Description,
			&item.Quantity, &item.UnitPrice, &item.Total,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// GetTaxesByInvoiceID obtiene los impuestos de una factura.
func (r *InvoiceRepo) GetTaxesByInvoiceID(invoiceID string) ([]*entity.TaxItem, error) {
	query := `
		SELECT id, invoice_id, tax_type, percentage, amount
		FROM invoice_taxes WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice taxes: %w", err)
	}
	defer rows.Close()

	var taxes []*entity.TaxItem
	for rows.Next() {
		var tax entity.TaxItem
		if err := rows.Scan(&tax.ID, &tax.InvoiceID, &tax.TaxType, &tax.Percentage, &tax.Amount); err != nil {
			return nil, fmt.Errorf("scan invoice tax: %w", err)
		}
		taxes = append(taxes, &tax)
	}
	return taxes, rows.Err()
}

// ListByCompany lista facturas de una empresa con filtros de estado y fechas.
func (r *InvoiceRepo) ListByCompany(companyID string, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1`
	args := []any{companyID}
	n := 1
	if filter.Status != "" {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, filter.Status)
	}
	if filter.DateFrom != nil {
		n++
		query += fmt.Sprintf(" AND issue_date >= $%d", n)
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		n++
		query += fmt.Sprintf(" AND issue_date <= $%d", n)
		args = append(args, *filter.DateTo)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.InternalID, &inv.InvoiceNumber,
			&inv.CustomerName, &inv.CustomerEmail, &inv.CustomerIdentificationType, &inv.CustomerIdentificationNumber,
			&inv.IssueDate, &inv.DueDate, &inv.Status, &inv.Subtotal, &inv.Total, &inv.Notes,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}

// Update persiste la cabecera completa de la factura.
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET customer_name = $2, customer_email = $3,
			customer_identification_type = $4, customer_identification_number = $5,
			due_date = $6, status = $7, subtotal = $8, total = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CustomerName, inv.CustomerEmail,
		inv.CustomerIdentificationType, inv.CustomerIdentificationNumber,
		inv.DueDate, inv.Status, inv.Subtotal, inv.Total, inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// UpdateItem actualiza una línea de factura.
func (r *InvoiceRepo) UpdateItem(item *entity.InvoiceItem) error {
	query := `
		UPDATE invoice_items SET product_id = $2, description = $3, quantity = $4, unit_price = $5, total = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductID, item.Description, item.Quantity, item.UnitPrice, item.Total,
	)
	if err != nil {
		return fmt.Errorf("update invoice item: %w", err)
	}
	return nil
}

// UpdateTaxAmounts persiste tipo, porcentaje y monto recalculado de cada impuesto.
func (r *InvoiceRepo) UpdateTaxAmounts(taxes []*entity.TaxItem) error {
	query := `UPDATE invoice_taxes SET tax_type = $2, percentage = $3, amount = $4 WHERE id = $1`
	for _, tax := range taxes {
		if _, err := r.q.Exec(context.Background(), query, tax.ID, tax.TaxType, tax.Percentage, tax.Amount); err != nil {
			return fmt.Errorf("update invoice tax: %w", err)
		}
	}
	return nil
}

// DeleteItem elimina una línea de factura.
func (r *InvoiceRepo) DeleteItem(itemID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("delete invoice item: %w", err)
	}
	return nil
}

// DeleteTax elimina un impuesto de factura.
func (r *InvoiceRepo) DeleteTax(taxID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM invoice_taxes WHERE id = $1`, taxID); err != nil {
		return fmt.Errorf("delete invoice tax: %w", err)
	}
	return nil
}

// DeleteItemsByInvoiceID elimina todas las líneas de la factura.
func (r *InvoiceRepo) DeleteItemsByInvoiceID(invoiceID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// DeleteTaxesByInvoiceID elimina todos los impuestos de la factura.
func (r *InvoiceRepo) DeleteTaxesByInvoiceID(invoiceID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM invoice_taxes WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice taxes: %w", err)
	}
	return nil
}

// Delete borra la factura con sus hijos.
func (r *InvoiceRepo) Delete(invoiceID string) error {
	if err := r.DeleteItemsByInvoiceID(invoiceID); err != nil {
		return err
	}
	if err := r.DeleteTaxesByInvoiceID(invoiceID); err != nil {
		return err
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// GetCompanyStatistics calcula los agregados de facturación de la empresa.
// Usa COALESCE para devolver cero si no hay facturas.
func (r *InvoiceRepo) GetCompanyStatistics(companyID string, now time.Time) (*repository.CompanyStatistics, error) {
	stats := &repository.CompanyStatistics{}
	ctx := context.Background()

	const totalsQuery = `
	SELECT
	    COUNT(*)                                                        AS total_invoices,
	    COALESCE(SUM(total), 0)                                         AS total_amount,
	    COALESCE(SUM(total) FILTER (WHERE status = 'EMITIDA'), 0)       AS pending_amount,
	    COALESCE(SUM(total) FILTER (WHERE status = 'PAGADA'),  0)       AS paid_amount,
	    COUNT(*) FILTER (WHERE status = 'EMITIDA'
	        AND due_date IS NOT NULL
	        AND due_date >= $2 AND due_date < $2 + INTERVAL '7 days')   AS upcoming_due,
	    COUNT(*) FILTER (WHERE status = 'EMITIDA'
	        AND due_date IS NOT NULL AND due_date < $2)                 AS overdue
	FROM invoices WHERE company_id = $1`
	err := r.q.QueryRow(ctx, totalsQuery, companyID, now).Scan(
		&stats.TotalInvoices, &stats.TotalAmount, &stats.PendingAmount,
		&stats.PaidAmount, &stats.UpcomingDue, &stats.Overdue,
	)
	if err != nil {
		return nil, fmt.Errorf("invoice statistics: %w", err)
	}

	const statusQuery = `
	SELECT status, COUNT(*) FROM invoices WHERE company_id = $1 GROUP BY status ORDER BY status`
	rows, err := r.q.Query(ctx, statusQuery, companyID)
	if err != nil {
		return nil, fmt.Errorf("invoice status summary: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc repository.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status summary: %w", err)
		}
		stats.StatusSummary = append(stats.StatusSummary, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const topQuery = `
	SELECT customer_name, COUNT(*) AS invoice_count, COALESCE(SUM(total), 0) AS total_amount
	FROM invoices
	WHERE company_id = $1 AND status IN ('EMITIDA', 'PAGADA')
	GROUP BY customer_name
	ORDER BY total_amount DESC
	LIMIT 5`
	topRows, err := r.q.Query(ctx, topQuery, companyID)
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}
	defer topRows.Close()
	for topRows.Next() {
		var tc repository.TopCustomer
		if err := topRows.Scan(&tc.CustomerName, &tc.InvoiceCount, &tc.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan top customer: %w", err)
		}
		stats.TopCustomers = append(stats.TopCustomers, tc)
	}
	return stats, topRows.Err()
}

// ListRecent devuelve las últimas facturas modificadas de la empresa.
func (r *InvoiceRepo) ListRecent(companyID string, limit int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices WHERE company_id = $1
		ORDER BY updated_at DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.InternalID, &inv.InvoiceNumber,
			&inv.CustomerName, &inv.CustomerEmail, &inv.CustomerIdentificationType, &inv.CustomerIdentificationNumber,
			&inv.IssueDate, &inv.DueDate, &inv.Status, &inv.Subtotal, &inv.Total, &inv.Notes,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recent invoice: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

// GetBillingSummary agrega la facturación creada desde since: desglose por
// estado y tendencia por cubeta temporal. bucket llega ya validado (day,
// week o month) y se pasa como parámetro a date_trunc.
func (r *InvoiceRepo) GetBillingSummary(companyID string, since time.Time, bucket string) (*repository.BillingSummary, error) {
	summary := &repository.BillingSummary{}
	ctx := context.Background()

	const statusQuery = `
	SELECT status, COUNT(*), COALESCE(SUM(total), 0)
	FROM invoices
	WHERE company_id = $1 AND created_at >= $2
	GROUP BY status ORDER BY status`
	rows, err := r.q.Query(ctx, statusQuery, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("billing summary by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var st repository.StatusTotal
		if err := rows.Scan(&st.Status, &st.Count, &st.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan status total: %w", err)
		}
		summary.ByStatus = append(summary.ByStatus, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const trendQuery = `
	SELECT date_trunc($3, created_at) AS period, COUNT(*), COALESCE(SUM(total), 0)
	FROM invoices
	WHERE company_id = $1 AND created_at >= $2
	GROUP BY period ORDER BY period`
	trendRows, err := r.q.Query(ctx, trendQuery, companyID, since, bucket)
	if err != nil {
		return nil, fmt.Errorf("billing trend: %w", err)
	}
	defer trendRows.Close()
	for trendRows.Next() {
		var tp repository.TrendPoint
		if err := trendRows.Scan(&tp.Period, &tp.Count, &tp.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		summary.Trends = append(summary.Trends, tp)
	}
	return summary, trendRows.Err()
}

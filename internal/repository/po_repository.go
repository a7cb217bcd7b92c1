package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/database"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/errors"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/payment"
)

// PurchaseOrderRepository reads purchase orders and the supplier performance
// history behind the risk score. It backs both payment.POStore and
// risk.HistoryStore.
type PurchaseOrderRepository struct {
	db *database.DB
}

// NewPurchaseOrderRepository creates a new PurchaseOrderRepository.
func NewPurchaseOrderRepository(db *database.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

// ── payment.POStore ──────────────────────────────────────────────────────────

// GetHeader returns the purchase-order header for a stable key.
func (r *PurchaseOrderRepository) GetHeader(ctx context.Context, poID int64) (*payment.POHeader, error) {
	query := `
		SELECT po_id, supplier_id, currency,
		       COALESCE(exchange_rate, 1)  AS exchange_rate,
		       COALESCE(tax_amount, 0)     AS tax_amount,
		       COALESCE(logistic_cost, 0)  AS freight_amount
		FROM purchase_orders
		WHERE po_id = $1
	`

	header := &payment.POHeader{}
	err := r.db.QueryRow(ctx, query, poID).Scan(
		&header.POID,
		&header.SupplierID,
		&header.Currency,
		&header.ExchangeRate,
		&header.TaxAmount,
		&header.FreightAmount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.NotFound("purchase order", fmt.Sprintf("%d", poID))
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to get purchase order header")
	}
	return header, nil
}

// LineTotal returns the sum of quantity*unit_price across the PO's items.
func (r *PurchaseOrderRepository) LineTotal(ctx context.Context, poID int64) (float64, error) {
	query := `
		SELECT COALESCE(SUM(quantity::float8 * unit_price::float8), 0) AS line_total
		FROM purchase_order_items
		WHERE po_id = $1
	`

	var total float64
	if err := r.db.QueryRow(ctx, query, poID).Scan(&total); err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternal, "failed to sum purchase order lines")
	}
	return total, nil
}

// LatestPOID returns the supplier's most recent purchase-order key.
func (r *PurchaseOrderRepository) LatestPOID(ctx context.Context, supplierID string) (int64, error) {
	query := `
		SELECT po_id
		FROM purchase_orders
		WHERE supplier_id = $1
		ORDER BY created_at DESC, po_id DESC
		LIMIT 1
	`

	var poID int64
	err := r.db.QueryRow(ctx, query, supplierID).Scan(&poID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, errors.NotFound("purchase orders for supplier", supplierID)
		}
		return 0, errors.Wrap(err, errors.ErrCodeInternal, "failed to get latest purchase order")
	}
	return poID, nil
}

// ── risk.HistoryStore ────────────────────────────────────────────────────────

// OrderedQuantity is the total quantity ordered across the supplier's POs.
func (r *PurchaseOrderRepository) OrderedQuantity(ctx context.Context, supplierID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(i.quantity::float8), 0) AS ordered_qty
		FROM purchase_order_items i
		JOIN purchase_orders p ON p.po_id = i.po_id
		WHERE p.supplier_id = $1
	`
	return r.scanQuantity(ctx, query, supplierID, "ordered quantity")
}

// ReceivedQuantity is the total quantity received against those POs.
func (r *PurchaseOrderRepository) ReceivedQuantity(ctx context.Context, supplierID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(g.qty_received::float8), 0) AS received_qty
		FROM goods_receipts g
		JOIN purchase_order_items i ON i.po_item_id = g.po_item_id
		JOIN purchase_orders p ON p.po_id = i.po_id
		WHERE p.supplier_id = $1
	`
	return r.scanQuantity(ctx, query, supplierID, "received quantity")
}

// DeliveryCounts returns total goods receipts and how many arrived on time.
func (r *PurchaseOrderRepository) DeliveryCounts(ctx context.Context, supplierID string) (int64, int64, error) {
	query := `
		SELECT COUNT(*) AS total_grn,
		       COALESCE(SUM(CASE WHEN g.receipt_date::date <= i.promised_date::date THEN 1 ELSE 0 END), 0) AS on_time
		FROM goods_receipts g
		JOIN purchase_order_items i ON i.po_item_id = g.po_item_id
		JOIN purchase_orders p ON p.po_id = i.po_id
		WHERE p.supplier_id = $1
	`
	return r.scanCounts(ctx, query, supplierID, "delivery counts")
}

// QualityCounts returns total goods receipts and how many passed quality.
func (r *PurchaseOrderRepository) QualityCounts(ctx context.Context, supplierID string) (int64, int64, error) {
	query := `
		SELECT COUNT(*) AS total_grn,
		       COALESCE(SUM(CASE WHEN g.quality_ok THEN 1 ELSE 0 END), 0) AS ok_cnt
		FROM goods_receipts g
		JOIN purchase_order_items i ON i.po_item_id = g.po_item_id
		JOIN purchase_orders p ON p.po_id = i.po_id
		WHERE p.supplier_id = $1
	`
	return r.scanCounts(ctx, query, supplierID, "quality counts")
}

// InvoiceCounts returns total invoices and how many were rejected.
func (r *PurchaseOrderRepository) InvoiceCounts(ctx context.Context, supplierID string) (int64, int64, error) {
	query := `
		SELECT COUNT(*) AS total_inv,
		       COALESCE(SUM(CASE WHEN UPPER(status) = 'REJECTED' THEN 1 ELSE 0 END), 0) AS rej_cnt
		FROM ap_invoices
		WHERE supplier_id = $1
	`
	return r.scanCounts(ctx, query, supplierID, "invoice counts")
}

// PaymentCounts returns total payments and how many failed. A failed payment
// is one with a zero paid amount or a reference flagged FAIL by the bank feed.
func (r *PurchaseOrderRepository) PaymentCounts(ctx context.Context, supplierID string) (int64, int64, error) {
	query := `
		SELECT COUNT(*) AS total_pay,
		       COALESCE(SUM(CASE WHEN pa.amount_paid = 0 OR UPPER(pa.reference_no) LIKE 'FAIL%' THEN 1 ELSE 0 END), 0) AS fail_cnt
		FROM payments pa
		JOIN ap_invoices ai ON ai.invoice_id = pa.invoice_id
		WHERE ai.supplier_id = $1
	`
	return r.scanCounts(ctx, query, supplierID, "payment counts")
}

// ── scan helpers ─────────────────────────────────────────────────────────────

func (r *PurchaseOrderRepository) scanQuantity(ctx context.Context, query, supplierID, what string) (float64, error) {
	var qty float64
	if err := r.db.QueryRow(ctx, query, supplierID).Scan(&qty); err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternal, "failed to query "+what)
	}
	return qty, nil
}

func (r *PurchaseOrderRepository) scanCounts(ctx context.Context, query, supplierID, what string) (int64, int64, error) {
	var total, hits int64
	if err := r.db.QueryRow(ctx, query, supplierID).Scan(&total, &hits); err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrCodeInternal, "failed to query "+what)
	}
	return total, hits, nil
}

package collab

import (
	"context"
	"fmt"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
)

// Supplier is one entry in the supplier directory.
type Supplier struct {
	Name          string   `json:"name"`
	Status        string   `json:"status"`
	Rating        float64  `json:"rating"`
	Categories    []string `json:"categories"`
	MaxOrderValue float64  `json:"max_order_value"`
}

// SupplierDirectory validates suppliers against a static keyed directory.
type SupplierDirectory struct {
	suppliers map[string]Supplier
}

// NewSupplierDirectory loads the supplier directory from a JSON file.
func NewSupplierDirectory(path string) (*SupplierDirectory, error) {
	suppliers := make(map[string]Supplier)
	if err := loadJSON(path, &suppliers); err != nil {
		return nil, err
	}
	return &SupplierDirectory{suppliers: suppliers}, nil
}

// ValidateSupplier checks existence and approved status.
func (d *SupplierDirectory) ValidateSupplier(_ context.Context, supplierID string) (client.Result, error) {
	supplier, ok := d.suppliers[supplierID]
	if !ok {
		return client.Result{
			"valid":   false,
			"message": fmt.Sprintf("Supplier %s not found", supplierID),
		}, nil
	}
	if supplier.Status != "approved" {
		return client.Result{
			"valid":   false,
			"message": fmt.Sprintf("Supplier %s is not approved (status: %s)", supplierID, supplier.Status),
		}, nil
	}
	return client.Result{
		"valid":    true,
		"supplier": supplier,
		"message":  fmt.Sprintf("Supplier %s validated successfully", supplierID),
	}, nil
}

// CheckCapacity checks the order value against the supplier's maximum.
func (d *SupplierDirectory) CheckCapacity(_ context.Context, supplierID string, orderValue float64) (client.Result, error) {
	supplier, ok := d.suppliers[supplierID]
	if !ok {
		return client.Result{
			"capacity_ok":  false,
			"max_capacity": 0.0,
			"requested":    orderValue,
			"message":      fmt.Sprintf("Supplier %s not found", supplierID),
		}, nil
	}
	return client.Result{
		"capacity_ok":  orderValue <= supplier.MaxOrderValue,
		"max_capacity": supplier.MaxOrderValue,
		"requested":    orderValue,
		"message":      fmt.Sprintf("Capacity check: %v vs %v", orderValue, supplier.MaxOrderValue),
	}, nil
}

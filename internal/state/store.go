// Package state holds the view-state reducers client sessions run
// against the record store: list and filter, detail editing with
// optimistic updates, and the creation form.
package state

import (
	"context"

	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
)

// CustomerStore is the record-store surface the reducers depend on. The
// Mongo-backed CustomerService satisfies it; tests use in-memory fakes.
type CustomerStore interface {
	GetCustomer(ctx context.Context, kundennummer string) (*models.Customer, error)
	GetAllCustomers(ctx context.Context) ([]models.Customer, error)
	DrawKundennummer(ctx context.Context) (string, error)
	CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error)
	UpdateCustomerFields(ctx context.Context, kundennummer string, fields map[string]interface{}) (models.Customer, error)
	AddTicket(ctx context.Context, kundennummer string, ticket models.Ticket) (models.Customer, error)
	AddMeterReading(ctx context.Context, kundennummer string, reading models.MeterReading) (models.Customer, error)
	AddInvoice(ctx context.Context, kundennummer string, invoice models.Invoice) (models.Customer, error)
}

// TariffStore is the catalog surface the reducers depend on.
type TariffStore interface {
	GetAllTariffs(ctx context.Context) ([]models.Tariff, error)
	GetTariff(ctx context.Context, id string) (*models.Tariff, error)
}

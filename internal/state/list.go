package state

import (
	"context"
	"strings"

	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
)

// CustomerListState drives the customer overview: a full load plus a
// client-side filter over the loaded set.
type CustomerListState struct {
	Page

	store     CustomerStore
	customers []models.Customer
	filter    string
}

// NewCustomerListState creates an idle list state over the store.
func NewCustomerListState(store CustomerStore) *CustomerListState {
	return &CustomerListState{
		Page:  NewPage(),
		store: store,
	}
}

// Load fetches all customers. Allowed from any phase, a reload replaces
// the previous result.
func (s *CustomerListState) Load(ctx context.Context) error {
	s.beginLoading()

	customers, err := s.store.GetAllCustomers(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.customers = customers
	s.finishLoaded()
	return nil
}

// Filter sets the filter term. An empty term shows all customers.
func (s *CustomerListState) Filter(term string) {
	s.filter = strings.ToLower(strings.TrimSpace(term))
}

// Customers returns the loaded customers matching the current filter,
// case-insensitive substring on name or kundennummer.
func (s *CustomerListState) Customers() []models.Customer {
	if s.filter == "" {
		return s.customers
	}

	matched := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if strings.Contains(strings.ToLower(c.Name), s.filter) ||
			strings.Contains(strings.ToLower(c.Kundennummer), s.filter) {
			matched = append(matched, c)
		}
	}
	return matched
}

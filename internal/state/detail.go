package state

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/dto"
	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
	kundensvc "github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/service"
	"github.com/TrustedSamu/sap-energy-portal/internal/common"
	"github.com/TrustedSamu/sap-energy-portal/internal/global"
	"github.com/TrustedSamu/sap-energy-portal/internal/utility"
)

// CustomerDetailState drives one customer's detail page. Edits apply
// optimistically on the local copy, then persist; on store failure the
// local copy reverts and the error surfaces through the page phase.
type CustomerDetailState struct {
	Page

	store    CustomerStore
	customer *models.Customer
}

// NewCustomerDetailState creates an idle detail state over the store.
func NewCustomerDetailState(store CustomerStore) *CustomerDetailState {
	return &CustomerDetailState{
		Page:  NewPage(),
		store: store,
	}
}

// Customer returns the current local copy, nil before the first load.
func (s *CustomerDetailState) Customer() *models.Customer {
	return s.customer
}

// Load fetches the customer. An absent customer is an error on the
// detail page even though the store treats it as a valid read result.
func (s *CustomerDetailState) Load(ctx context.Context, kundennummer string) error {
	s.beginLoading()

	customer, err := s.store.GetCustomer(ctx, kundennummer)
	if err != nil {
		s.fail(err)
		return err
	}
	if customer == nil {
		s.fail(common.ErrNotFound)
		return common.ErrNotFound
	}

	s.customer = customer
	s.finishLoaded()
	return nil
}

// BeginEditing enters the editing phase. Only a loaded page can edit.
func (s *CustomerDetailState) BeginEditing() error {
	if s.Phase != PhaseLoaded {
		return common.ErrInvalidState
	}
	s.Phase = PhaseEditing
	return nil
}

// FinishEditing returns to the loaded phase.
func (s *CustomerDetailState) FinishEditing() {
	if s.Phase == PhaseEditing {
		s.Phase = PhaseLoaded
	}
}

// EditField applies value at the dot path on the local copy and issues
// the path-scoped store update. Intermediate objects on the path are
// created as needed, siblings stay untouched. On store failure the local
// copy reverts to the pre-edit value.
func (s *CustomerDetailState) EditField(ctx context.Context, path string, value interface{}) error {
	if s.customer == nil {
		return common.ErrInvalidState
	}

	prev := s.customer

	edited, err := applyPath(prev, path, value)
	if err != nil {
		s.fail(err)
		return err
	}
	s.customer = edited

	updated, err := s.store.UpdateCustomerFields(ctx, prev.Kundennummer,
		map[string]interface{}{path: value})
	if err != nil {
		s.customer = prev
		s.fail(err)
		return err
	}

	s.customer = &updated
	return nil
}

// applyPath sets value at the dot path on a copy of the customer, going
// through the bson representation so the path addresses wire field names.
func applyPath(customer *models.Customer, path string, value interface{}) (*models.Customer, error) {
	m, err := utility.ToMap(customer)
	if err != nil {
		return nil, err
	}
	if err := utility.SetPath(m, path, value); err != nil {
		return nil, err
	}

	raw, err := bson.Marshal(m)
	if err != nil {
		return nil, err
	}
	var edited models.Customer
	if err := bson.Unmarshal(raw, &edited); err != nil {
		return nil, err
	}
	return &edited, nil
}

// NewTicket generates the next ticket id from the loaded history, opens
// the ticket dated today, prepends it locally and persists. Channel,
// category and priority default to Anruf, Anfrage and Niedrig. The local
// prepend reverts when the store write fails.
func (s *CustomerDetailState) NewTicket(ctx context.Context, input dto.NewTicketInput) (*models.Ticket, error) {
	if s.customer == nil {
		return nil, common.ErrInvalidState
	}

	typ := input.Typ
	if typ == "" {
		typ = models.TicketTypAnruf
	}
	kategorie := input.Kategorie
	if kategorie == "" {
		kategorie = models.KategorieAnfrage
	}
	prioritaet := input.Prioritaet
	if prioritaet == "" {
		prioritaet = models.PrioritaetNiedrig
	}

	prev := s.customer
	perYear := global.ServerConfig != nil && global.ServerConfig.TicketSequencePerYear

	ticket := models.Ticket{
		TicketID:     kundensvc.NextTicketIDNow(prev.TicketHistory, perYear),
		Datum:        utility.TodayISO(),
		Typ:          typ,
		Status:       models.TicketOffen,
		Kategorie:    kategorie,
		Bearbeiter:   input.Bearbeiter,
		Beschreibung: input.Beschreibung,
		Notizen:      input.Notizen,
		Prioritaet:   prioritaet,
	}

	optimistic := *prev
	optimistic.TicketHistory = append([]models.Ticket{ticket}, prev.TicketHistory...)
	s.customer = &optimistic

	updated, err := s.store.AddTicket(ctx, prev.Kundennummer, ticket)
	if err != nil {
		s.customer = prev
		s.fail(err)
		return nil, err
	}

	s.customer = &updated
	return &ticket, nil
}

// NewReading prepends a meter reading, optimistically then persisted.
func (s *CustomerDetailState) NewReading(ctx context.Context, stand int64, datum, erfassungsart string) error {
	if s.customer == nil {
		return common.ErrInvalidState
	}

	if datum == "" {
		datum = utility.TodayISO()
	}
	if erfassungsart == "" {
		erfassungsart = models.ErfassungManuell
	}
	reading := models.MeterReading{Datum: datum, Stand: stand, Einheit: models.EinheitKwh, Erfassungsart: erfassungsart}

	prev := s.customer
	optimistic := *prev
	optimistic.Zaehlerstaende = append([]models.MeterReading{reading}, prev.Zaehlerstaende...)
	s.customer = &optimistic

	updated, err := s.store.AddMeterReading(ctx, prev.Kundennummer, reading)
	if err != nil {
		s.customer = prev
		s.fail(err)
		return err
	}

	s.customer = &updated
	return nil
}

// NewInvoice prepends an invoice, optimistically then persisted. The id
// continues the highest sequence in the loaded history.
func (s *CustomerDetailState) NewInvoice(ctx context.Context, betrag int64, datum, status string) error {
	if s.customer == nil {
		return common.ErrInvalidState
	}

	if datum == "" {
		datum = utility.TodayISO()
	}
	if status == "" {
		status = models.RechnungOffen
	}
	prev := s.customer
	invoice := models.Invoice{
		Rechnungsnummer: kundensvc.NextInvoiceID(prev.Rechnungen),
		Datum:           datum,
		Betrag:          betrag,
		Status:          status,
		Zahlungsfrist:   kundensvc.DefaultZahlungsfrist(datum),
		Typ:             models.RechnungstypZwischenabrechnung,
	}

	optimistic := *prev
	optimistic.Rechnungen = append([]models.Invoice{invoice}, prev.Rechnungen...)
	s.customer = &optimistic

	updated, err := s.store.AddInvoice(ctx, prev.Kundennummer, invoice)
	if err != nil {
		s.customer = prev
		s.fail(err)
		return err
	}

	s.customer = &updated
	return nil
}

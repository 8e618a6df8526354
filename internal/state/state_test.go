package state

import (
	"context"
	"testing"

	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/dto"
	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
	"github.com/TrustedSamu/sap-energy-portal/internal/common"
	"github.com/TrustedSamu/sap-energy-portal/internal/global"
)

// fakeCustomerStore is an in-memory CustomerStore for reducer tests.
type fakeCustomerStore struct {
	customers map[string]*models.Customer

	failUpdates bool
	failAdds    bool
	writes      int
	draws       int
	nextNumber  string
}

func newFakeCustomerStore(customers ...models.Customer) *fakeCustomerStore {
	s := &fakeCustomerStore{customers: map[string]*models.Customer{}}
	for i := range customers {
		c := customers[i]
		s.customers[c.Kundennummer] = &c
	}
	return s
}

func (s *fakeCustomerStore) GetCustomer(ctx context.Context, kundennummer string) (*models.Customer, error) {
	c, ok := s.customers[kundennummer]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (s *fakeCustomerStore) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	all := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		all = append(all, *c)
	}
	return all, nil
}

func (s *fakeCustomerStore) DrawKundennummer(ctx context.Context) (string, error) {
	s.draws++
	if s.nextNumber != "" {
		return s.nextNumber, nil
	}
	return "4300287654321", nil
}

func (s *fakeCustomerStore) CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	s.writes++
	s.customers[customer.Kundennummer] = &customer
	return customer, nil
}

func (s *fakeCustomerStore) UpdateCustomerFields(ctx context.Context, kundennummer string, fields map[string]interface{}) (models.Customer, error) {
	if s.failUpdates {
		return models.Customer{}, common.ErrConnection
	}
	s.writes++
	c, ok := s.customers[kundennummer]
	if !ok {
		return models.Customer{}, common.ErrNotFound
	}
	// only the name path is needed by these tests
	if name, ok := fields["name"].(string); ok {
		c.Name = name
	}
	if street, ok := fields["address.street"].(string); ok {
		c.Address.Street = street
	}
	return *c, nil
}

func (s *fakeCustomerStore) AddTicket(ctx context.Context, kundennummer string, ticket models.Ticket) (models.Customer, error) {
	if s.failAdds {
		return models.Customer{}, common.ErrConnection
	}
	s.writes++
	c := s.customers[kundennummer]
	c.TicketHistory = append([]models.Ticket{ticket}, c.TicketHistory...)
	return *c, nil
}

func (s *fakeCustomerStore) AddMeterReading(ctx context.Context, kundennummer string, reading models.MeterReading) (models.Customer, error) {
	if s.failAdds {
		return models.Customer{}, common.ErrConnection
	}
	s.writes++
	c := s.customers[kundennummer]
	c.Zaehlerstaende = append([]models.MeterReading{reading}, c.Zaehlerstaende...)
	return *c, nil
}

func (s *fakeCustomerStore) AddInvoice(ctx context.Context, kundennummer string, invoice models.Invoice) (models.Customer, error) {
	if s.failAdds {
		return models.Customer{}, common.ErrConnection
	}
	s.writes++
	c := s.customers[kundennummer]
	c.Rechnungen = append([]models.Invoice{invoice}, c.Rechnungen...)
	return *c, nil
}

// fakeTariffStore is an in-memory TariffStore.
type fakeTariffStore struct {
	tariffs map[string]*models.Tariff
}

func newFakeTariffStore(tariffs ...models.Tariff) *fakeTariffStore {
	s := &fakeTariffStore{tariffs: map[string]*models.Tariff{}}
	for i := range tariffs {
		t := tariffs[i]
		s.tariffs[t.ID] = &t
	}
	return s
}

func (s *fakeTariffStore) GetAllTariffs(ctx context.Context) ([]models.Tariff, error) {
	all := make([]models.Tariff, 0, len(s.tariffs))
	for _, t := range s.tariffs {
		all = append(all, *t)
	}
	return all, nil
}

func (s *fakeTariffStore) GetTariff(ctx context.Context, id string) (*models.Tariff, error) {
	t, ok := s.tariffs[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func testCustomer() models.Customer {
	return models.Customer{
		Kundennummer: "4300212345678",
		Name:         "Max Mustermann",
		Address: models.Address{
			Street:     "Hauptstraße 1",
			PostalCode: "50667",
			City:       "Köln",
		},
		Vertragsart: models.VertragsartStrom,
		Status:      models.StatusAktiv,
		Zaehlerstaende: []models.MeterReading{
			{Datum: "2024-02-15", Stand: 45100, Erfassungsart: models.ErfassungManuell},
		},
	}
}

func TestCustomerListState_LoadAndFilter(t *testing.T) {
	store := newFakeCustomerStore(
		models.Customer{Kundennummer: "4300211111111", Name: "Max Mustermann"},
		models.Customer{Kundennummer: "4300222222222", Name: "Erika Musterfrau"},
	)
	list := NewCustomerListState(store)

	if list.Phase != PhaseIdle {
		t.Errorf("initial phase = %s, want idle", list.Phase)
	}

	if err := list.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if list.Phase != PhaseLoaded {
		t.Errorf("phase after load = %s, want loaded", list.Phase)
	}
	if len(list.Customers()) != 2 {
		t.Fatalf("loaded %d customers, want 2", len(list.Customers()))
	}

	list.Filter("ERIKA")
	got := list.Customers()
	if len(got) != 1 || got[0].Name != "Erika Musterfrau" {
		t.Errorf("filter by name matched %v", got)
	}

	list.Filter("4300211111")
	got = list.Customers()
	if len(got) != 1 || got[0].Kundennummer != "4300211111111" {
		t.Errorf("filter by kundennummer matched %v", got)
	}

	list.Filter("  ")
	if len(list.Customers()) != 2 {
		t.Error("blank filter must show all customers")
	}
}

func TestCustomerDetailState_EditFieldPreservesSiblings(t *testing.T) {
	store := newFakeCustomerStore(testCustomer())
	detail := NewCustomerDetailState(store)

	if err := detail.Load(context.Background(), "4300212345678"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := detail.EditField(context.Background(), "address.street", "Neue Straße 2"); err != nil {
		t.Fatalf("EditField failed: %v", err)
	}

	c := detail.Customer()
	if c.Address.Street != "Neue Straße 2" {
		t.Errorf("street = %s, want Neue Straße 2", c.Address.Street)
	}
	if c.Address.PostalCode != "50667" || c.Address.City != "Köln" {
		t.Errorf("siblings changed: %+v", c.Address)
	}
}

func TestCustomerDetailState_EditFieldRevertsOnFailure(t *testing.T) {
	store := newFakeCustomerStore(testCustomer())
	store.failUpdates = true
	detail := NewCustomerDetailState(store)

	if err := detail.Load(context.Background(), "4300212345678"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := detail.EditField(context.Background(), "name", "Moritz"); err == nil {
		t.Fatal("expected EditField to surface the store error")
	}

	if detail.Customer().Name != "Max Mustermann" {
		t.Errorf("name after failed edit = %s, want reverted value", detail.Customer().Name)
	}
	if detail.Phase != PhaseError {
		t.Errorf("phase = %s, want error", detail.Phase)
	}
	if detail.ErrMsg == "" {
		t.Error("error phase must carry the message")
	}
}

func TestCustomerDetailState_PrependOrdering(t *testing.T) {
	store := newFakeCustomerStore(testCustomer())
	detail := NewCustomerDetailState(store)

	if err := detail.Load(context.Background(), "4300212345678"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := detail.NewReading(context.Background(), 45200, "2024-03-01", ""); err != nil {
		t.Fatalf("first NewReading failed: %v", err)
	}
	if err := detail.NewReading(context.Background(), 45300, "2024-03-15", ""); err != nil {
		t.Fatalf("second NewReading failed: %v", err)
	}

	readings := detail.Customer().Zaehlerstaende
	if len(readings) != 3 {
		t.Fatalf("history length = %d, want 3", len(readings))
	}
	if readings[0].Stand != 45300 || readings[1].Stand != 45200 {
		t.Errorf("history not newest first: %+v", readings)
	}
	if readings[0].Erfassungsart != models.ErfassungManuell {
		t.Errorf("default erfassungsart = %s, want manuell", readings[0].Erfassungsart)
	}
}

func TestCustomerDetailState_NewTicketGeneratesSequence(t *testing.T) {
	c := testCustomer()
	c.TicketHistory = []models.Ticket{
		{TicketID: "T-2024-003"}, {TicketID: "T-2024-002"}, {TicketID: "T-2023-001"},
	}
	store := newFakeCustomerStore(c)
	detail := NewCustomerDetailState(store)

	if err := detail.Load(context.Background(), "4300212345678"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	ticket, err := detail.NewTicket(context.Background(), dto.NewTicketInput{
		Beschreibung: "Zählerstand unklar",
		Kategorie:    models.KategorieZaehlerstand,
	})
	if err != nil {
		t.Fatalf("NewTicket failed: %v", err)
	}

	if got := parseSeqSuffix(ticket.TicketID); got != "004" {
		t.Errorf("ticket id = %s, want sequence 004", ticket.TicketID)
	}
	if ticket.Status != models.TicketOffen {
		t.Errorf("new ticket status = %s, want offen", ticket.Status)
	}
	if ticket.Typ != models.TicketTypAnruf || ticket.Prioritaet != models.PrioritaetNiedrig {
		t.Errorf("new ticket defaults = typ %s prioritaet %s, want Anruf and Niedrig", ticket.Typ, ticket.Prioritaet)
	}
	if detail.Customer().TicketHistory[0].TicketID != ticket.TicketID {
		t.Error("new ticket must sit at the head of the history")
	}
}

func parseSeqSuffix(id string) string {
	if len(id) < 3 {
		return id
	}
	return id[len(id)-3:]
}

func TestCustomerDetailState_NewTicketRevertsOnFailure(t *testing.T) {
	store := newFakeCustomerStore(testCustomer())
	store.failAdds = true
	detail := NewCustomerDetailState(store)

	if err := detail.Load(context.Background(), "4300212345678"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := detail.NewTicket(context.Background(), dto.NewTicketInput{Beschreibung: "Test"}); err == nil {
		t.Fatal("expected NewTicket to surface the store error")
	}
	if len(detail.Customer().TicketHistory) != 0 {
		t.Errorf("history after failed add = %+v, want reverted empty history", detail.Customer().TicketHistory)
	}
}

func TestCustomerDetailState_LoadAbsentCustomer(t *testing.T) {
	detail := NewCustomerDetailState(newFakeCustomerStore())

	err := detail.Load(context.Background(), "4300299999999")
	if err == nil {
		t.Fatal("expected error for absent customer on the detail page")
	}
	if detail.Phase != PhaseError {
		t.Errorf("phase = %s, want error", detail.Phase)
	}
}

func TestCustomerForm_RejectsRetiredTariffBeforeWrite(t *testing.T) {
	global.InitValidator()

	customers := newFakeCustomerStore()
	tariffs := newFakeTariffStore(
		models.Tariff{ID: "alt", Type: models.TarifTypeBasic, PricePerKwh: 28, Aktiv: false},
	)

	form := NewCustomerForm(customers, tariffs)
	form.Input.Name = "Max Mustermann"
	form.Input.HotlinePassword = "1234"
	form.Input.Street = "Hauptstraße 1"
	form.Input.PostalCode = "50667"
	form.Input.City = "Köln"
	form.Input.Vertragsart = models.VertragsartStrom
	form.Input.TarifID = "alt"

	if _, err := form.Submit(context.Background()); err == nil {
		t.Fatal("expected retired tariff to be rejected")
	}
	if customers.writes != 0 {
		t.Errorf("store writes = %d, want 0 (gate must reject before any write)", customers.writes)
	}
}

func TestCustomerForm_UnknownTariffRejected(t *testing.T) {
	global.InitValidator()

	form := NewCustomerForm(newFakeCustomerStore(), newFakeTariffStore())
	form.Input.Name = "Max Mustermann"
	form.Input.HotlinePassword = "1234"
	form.Input.Street = "Hauptstraße 1"
	form.Input.PostalCode = "50667"
	form.Input.City = "Köln"
	form.Input.Vertragsart = models.VertragsartStrom
	form.Input.TarifID = "gibtsnicht"

	if _, err := form.Submit(context.Background()); err == nil {
		t.Fatal("expected unknown tariff to be rejected")
	}
}

func TestCustomerForm_CopiesTariffValues(t *testing.T) {
	global.InitValidator()

	customers := newFakeCustomerStore()
	tariffs := newFakeTariffStore(
		models.Tariff{ID: "eco", Type: models.TarifTypeEco, PricePerKwh: 35, Aktiv: true},
	)

	form := NewCustomerForm(customers, tariffs)
	form.Input.Name = "Max Mustermann"
	form.Input.HotlinePassword = "1234"
	form.Input.Street = "Hauptstraße 1"
	form.Input.PostalCode = "50667"
	form.Input.City = "Köln"
	form.Input.Vertragsart = models.VertragsartStrom
	form.Input.TarifID = "eco"

	created, err := form.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if created.Tarif.ID != "eco" || created.Tarif.Name != "Öko Strom Plus" || created.Tarif.Arbeitspreis != 35 {
		t.Errorf("tariff assignment = %+v, want value copy of the catalog row", created.Tarif)
	}
	if created.Tarif.Grundpreis != 1195 || created.Tarif.Vertragslaufzeit != "12 Monate" {
		t.Errorf("tariff contract terms = %+v, want the eco display values", created.Tarif)
	}

	// later catalog changes must not leak into the stored contract
	tariffs.tariffs["eco"].PricePerKwh = 99
	stored, _ := customers.GetCustomer(context.Background(), created.Kundennummer)
	if stored.Tarif.Arbeitspreis != 35 {
		t.Errorf("stored arbeitspreis = %d after catalog change, want 35", stored.Tarif.Arbeitspreis)
	}

	if created.Status != models.StatusAktiv {
		t.Errorf("new contract status = %s, want aktiv", created.Status)
	}
	if created.Abschlag.Zahlungsrhythmus != models.RhythmusMonatlich {
		t.Errorf("default zahlungsrhythmus = %s, want monatlich", created.Abschlag.Zahlungsrhythmus)
	}
}

func TestCustomerForm_DrawsNumberThroughStore(t *testing.T) {
	global.InitValidator()

	customers := newFakeCustomerStore()
	customers.nextNumber = "4300200000042"
	tariffs := newFakeTariffStore(
		models.Tariff{ID: "basic", Type: models.TarifTypeBasic, PricePerKwh: 32, Aktiv: true},
	)

	form := NewCustomerForm(customers, tariffs)
	form.Input.Name = "Erika Musterfrau"
	form.Input.HotlinePassword = "4321"
	form.Input.Street = "Nebenstraße 3"
	form.Input.PostalCode = "50667"
	form.Input.City = "Köln"
	form.Input.Vertragsart = models.VertragsartGas
	form.Input.TarifID = "basic"

	created, err := form.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if customers.draws != 1 {
		t.Errorf("store draws = %d, want exactly 1", customers.draws)
	}
	if created.Kundennummer != "4300200000042" {
		t.Errorf("kundennummer = %s, want the store-drawn number", created.Kundennummer)
	}
	if customers.writes != 1 {
		t.Errorf("store writes = %d, want 1", customers.writes)
	}
}

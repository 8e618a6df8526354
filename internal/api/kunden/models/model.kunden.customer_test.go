package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCustomerBsonRoundTrip_WireFieldNames(t *testing.T) {
	customer := Customer{
		Kundennummer:    "4300212345678",
		CustomerNumber:  "KND12345678",
		Name:            "Max Mustermann",
		HotlinePassword: "1234",
		Address: Address{
			Street:     "Hauptstraße 1",
			PostalCode: "50667",
			City:       "Köln",
			Country:    "Deutschland",
		},
		Vertragsnummer: "V-123456",
		Vertragsart:    VertragsartStrom,
		Status:         StatusAktiv,
		Zaehlernummer:  "ZN-987654",
		Abschlag: Abschlag{
			Betrag:              8500,
			Zahlungsrhythmus:    RhythmusMonatlich,
			NaechsteFaelligkeit: "2024-07-01",
		},
		Tarif: TarifZuordnung{
			ID:               "eco",
			Name:             "Öko Strom Plus",
			Grundpreis:       1195,
			Arbeitspreis:     35,
			Vertragslaufzeit: "12 Monate",
			Kuendigungsfrist: "6 Wochen",
			Besonderheiten:   []string{"100% Strom aus erneuerbaren Energien"},
		},
		Zaehlerstaende: []MeterReading{
			{Datum: "2024-03-15", Stand: 45230, Einheit: EinheitKwh, Erfassungsart: ErfassungManuell, Rechnungsnummer: "R-2024-001"},
		},
		Rechnungen: []Invoice{
			{
				Rechnungsnummer:    "R-2024-001",
				Datum:              "2024-02-01",
				Betrag:             12050,
				Status:             RechnungBezahlt,
				Zahlungsfrist:      "2024-02-15",
				Verbrauchszeitraum: Verbrauchszeitraum{Von: "2023-02-01", Bis: "2024-01-31"},
				PdfURL:             "https://example.invalid/R-2024-001.pdf",
				Typ:                RechnungstypJahresabrechnung,
			},
		},
		TicketHistory: []Ticket{
			{
				TicketID:     "T-2024-001",
				Datum:        "2024-01-10",
				Typ:          TicketTypAnruf,
				Status:       TicketOffen,
				Kategorie:    KategorieAnfrage,
				Bearbeiter:   "S. Weber",
				Beschreibung: "Abschlag zu hoch",
				Prioritaet:   PrioritaetNiedrig,
			},
		},
	}

	raw, err := bson.Marshal(customer)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal into map: %v", err)
	}

	for _, field := range []string{
		"kundennummer", "customer_number", "name", "hotline_password",
		"address", "vertragsnummer", "vertragsart", "status",
		"zaehlernummer", "abschlag", "tarif",
		"zaehlerstaende", "rechnungen", "ticketHistory",
	} {
		if _, ok := doc[field]; !ok {
			t.Errorf("wire document missing field %q, has: %v", field, docKeys(doc))
		}
	}

	address, ok := doc["address"].(bson.M)
	if !ok {
		t.Fatalf("address is %T, want document", doc["address"])
	}
	if _, ok := address["postal_code"]; !ok {
		t.Error("address missing postal_code")
	}
	abschlag, ok := doc["abschlag"].(bson.M)
	if !ok {
		t.Fatalf("abschlag is %T, want document", doc["abschlag"])
	}
	if _, ok := abschlag["naechsteFaelligkeit"]; !ok {
		t.Error("abschlag missing naechsteFaelligkeit")
	}

	tarif, ok := doc["tarif"].(bson.M)
	if !ok {
		t.Fatalf("tarif is %T, want document", doc["tarif"])
	}
	for _, field := range []string{"id", "name", "grundpreis", "arbeitspreis", "vertragslaufzeit", "kuendigungsfrist", "besonderheiten"} {
		if _, ok := tarif[field]; !ok {
			t.Errorf("tarif missing field %q", field)
		}
	}

	readings := doc["zaehlerstaende"].(bson.A)
	reading := readings[0].(bson.M)
	for _, field := range []string{"datum", "stand", "einheit", "erfassungsart", "rechnungsnummer"} {
		if _, ok := reading[field]; !ok {
			t.Errorf("meter reading missing field %q", field)
		}
	}

	invoices := doc["rechnungen"].(bson.A)
	invoice := invoices[0].(bson.M)
	for _, field := range []string{"rechnungsnummer", "datum", "betrag", "status", "zahlungsfrist", "verbrauchszeitraum", "pdfUrl", "typ"} {
		if _, ok := invoice[field]; !ok {
			t.Errorf("invoice missing field %q", field)
		}
	}
	zeitraum := invoice["verbrauchszeitraum"].(bson.M)
	if _, ok := zeitraum["von"]; !ok {
		t.Error("verbrauchszeitraum missing von")
	}
	if _, ok := zeitraum["bis"]; !ok {
		t.Error("verbrauchszeitraum missing bis")
	}

	tickets := doc["ticketHistory"].(bson.A)
	ticket := tickets[0].(bson.M)
	for _, field := range []string{"ticketId", "datum", "typ", "status", "kategorie", "bearbeiter", "beschreibung", "prioritaet"} {
		if _, ok := ticket[field]; !ok {
			t.Errorf("ticket missing field %q", field)
		}
	}

	var back Customer
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal into struct: %v", err)
	}
	if back.Kundennummer != customer.Kundennummer || back.Tarif.Arbeitspreis != 35 || back.Tarif.Grundpreis != 1195 {
		t.Errorf("round trip changed values: %+v", back)
	}
	if len(back.Zaehlerstaende) != 1 || back.Zaehlerstaende[0].Stand != 45230 || back.Zaehlerstaende[0].Einheit != EinheitKwh {
		t.Errorf("round trip changed readings: %+v", back.Zaehlerstaende)
	}
	if back.Rechnungen[0].Verbrauchszeitraum.Von != "2023-02-01" {
		t.Errorf("round trip changed invoice period: %+v", back.Rechnungen[0])
	}
	if back.TicketHistory[0].TicketID != "T-2024-001" || back.TicketHistory[0].Prioritaet != PrioritaetNiedrig {
		t.Errorf("round trip changed ticket: %+v", back.TicketHistory[0])
	}
}

func docKeys(m bson.M) []string {
	var k []string
	for x := range m {
		k = append(k, x)
	}
	return k
}

func TestLatestReading(t *testing.T) {
	c := Customer{}
	if c.LatestReading() != nil {
		t.Error("empty history must have no latest reading")
	}

	c.Zaehlerstaende = []MeterReading{
		{Datum: "2024-03-15", Stand: 45230},
		{Datum: "2024-02-15", Stand: 45100},
	}
	latest := c.LatestReading()
	if latest == nil || latest.Stand != 45230 {
		t.Errorf("latest reading = %+v, want the newest-first head", latest)
	}
}

func TestDisplayForType(t *testing.T) {
	for _, typ := range []string{TarifTypeBasic, TarifTypeEco, TarifTypePremium} {
		d := DisplayForType(typ)
		if d.Name == "" {
			t.Errorf("DisplayForType(%s) has empty name", typ)
		}
		if d.Grundpreis <= 0 || d.Arbeitspreis <= 0 {
			t.Errorf("DisplayForType(%s) has no prices: %+v", typ, d)
		}
		if d.Vertragslaufzeit == "" || d.Kuendigungsfrist == "" {
			t.Errorf("DisplayForType(%s) misses contract terms: %+v", typ, d)
		}
	}

	// unknown types get a neutral fallback, never an empty display
	d := DisplayForType("sondertarif")
	if d.Name != "sondertarif" || d.Vertragslaufzeit == "" {
		t.Errorf("fallback display incomplete: %+v", d)
	}
}

func TestTariffAssignment_PriceFromCatalog(t *testing.T) {
	// the stored per-kWh price drives arbeitspreis, not the type table
	tariff := Tariff{ID: "eco", Type: TarifTypeEco, PricePerKwh: 41}
	assignment := tariff.Assignment()

	if assignment.Arbeitspreis != 41 {
		t.Errorf("arbeitspreis = %d, want the stored catalog price 41", assignment.Arbeitspreis)
	}
	if assignment.Name != "Öko Strom Plus" || assignment.Grundpreis != 1195 {
		t.Errorf("display fields not derived from type: %+v", assignment)
	}
}

// Package dto holds the request and response shapes of the kunden domain.
package dto

import (
	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
)

// CreateCustomerInput is the payload for creating a customer. Contract
// and meter numbers are generated server side; the tariff id is
// re-validated against the live catalog before anything is written.
type CreateCustomerInput struct {
	Name             string `json:"name" validate:"required,min=2"`
	HotlinePassword  string `json:"hotline_password" validate:"required,min=4"`
	Street           string `json:"street" validate:"required"`
	PostalCode       string `json:"postal_code" validate:"required,plz"`
	City             string `json:"city" validate:"required"`
	Country          string `json:"country"`
	Vertragsart      string `json:"vertragsart" validate:"required,vertragsart"`
	TarifID          string `json:"tarif_id" validate:"required"`
	AbschlagBetrag   int64  `json:"abschlag_betrag" validate:"gte=0"`
	Zahlungsrhythmus string `json:"zahlungsrhythmus" validate:"omitempty,zahlungsrhythmus"`
}

// UpdateFieldInput updates a single field addressed by its dot path,
// e.g. {"path": "address.street", "value": "Neue Straße 1"}.
type UpdateFieldInput struct {
	Path  string      `json:"path" validate:"required"`
	Value interface{} `json:"value"`
}

// NewTicketInput opens a support ticket. The ticket id and date are
// generated server side; channel, category and priority default to
// Anruf, Anfrage and Niedrig.
type NewTicketInput struct {
	Typ          string `json:"typ" validate:"omitempty,tickettyp"`
	Kategorie    string `json:"kategorie"`
	Prioritaet   string `json:"prioritaet" validate:"omitempty,prioritaet"`
	Bearbeiter   string `json:"bearbeiter"`
	Beschreibung string `json:"beschreibung" validate:"required"`
	Notizen      string `json:"notizen"`
}

// NewReadingInput records a meter reading.
type NewReadingInput struct {
	Stand           int64  `json:"stand" validate:"gte=0"`
	Datum           string `json:"datum" validate:"omitempty,iso_date"`
	Einheit         string `json:"einheit"`
	Erfassungsart   string `json:"erfassungsart" validate:"omitempty,erfassungsart"`
	Rechnungsnummer string `json:"rechnungsnummer"`
}

// VoicebotReadingInput is the reduced payload of the voicebot channel.
type VoicebotReadingInput struct {
	Stand int64  `json:"stand" validate:"gte=0"`
	Datum string `json:"datum" validate:"omitempty,iso_date"`
}

// NewInvoiceInput records an invoice. Betrag is in cents.
type NewInvoiceInput struct {
	Betrag                int64  `json:"betrag" validate:"gte=0"`
	Datum                 string `json:"datum" validate:"omitempty,iso_date"`
	Status                string `json:"status" validate:"omitempty,rechnungsstatus"`
	Zahlungsfrist         string `json:"zahlungsfrist" validate:"omitempty,iso_date"`
	VerbrauchszeitraumVon string `json:"verbrauchszeitraum_von" validate:"omitempty,iso_date"`
	VerbrauchszeitraumBis string `json:"verbrauchszeitraum_bis" validate:"omitempty,iso_date"`
	PdfURL                string `json:"pdfUrl"`
	Typ                   string `json:"typ" validate:"omitempty,rechnungstyp"`
}

// UpdateTariffInput reprices or retires a catalog entry. Nil fields stay
// untouched.
type UpdateTariffInput struct {
	PricePerKwh *int64 `json:"pricePerKwh" validate:"omitempty,gte=0"`
	Aktiv       *bool  `json:"aktiv"`
}

// CustomerSummary is the reduced shape of the customer list.
type CustomerSummary struct {
	Kundennummer string `json:"kundennummer"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Vertragsart  string `json:"vertragsart"`
	TarifName    string `json:"tarif_name"`
	City         string `json:"city"`
}

// SummaryFromCustomer projects a customer onto its list summary.
func SummaryFromCustomer(c models.Customer) CustomerSummary {
	return CustomerSummary{
		Kundennummer: c.Kundennummer,
		Name:         c.Name,
		Status:       c.Status,
		Vertragsart:  c.Vertragsart,
		TarifName:    c.Tarif.Name,
		City:         c.Address.City,
	}
}

// TariffResponse is a catalog entry together with its display fields.
type TariffResponse struct {
	models.Tariff
	Display models.TarifDisplay `json:"display"`
}

package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contract types
const (
	VertragsartStrom = "Stromlieferung"
	VertragsartGas   = "Gaslieferung"
	VertragsartKombi = "Kombivertrag"
)

// Contract statuses
const (
	StatusAktiv   = "aktiv"
	StatusInaktiv = "inaktiv"
)

// Payment rhythms
const (
	RhythmusMonatlich        = "monatlich"
	RhythmusVierteljaehrlich = "vierteljährlich"
	RhythmusHalbjaehrlich    = "halbjährlich"
	RhythmusJaehrlich        = "jährlich"
)

// Meter reading capture sources
const (
	ErfassungManuell     = "manuell"
	ErfassungAutomatisch = "automatisch"
	ErfassungVoicebot    = "voicebot"
)

// EinheitKwh is the default meter reading unit.
const EinheitKwh = "kWh"

// Invoice statuses
const (
	RechnungBezahlt      = "bezahlt"
	RechnungOffen        = "offen"
	RechnungUeberfaellig = "überfällig"
)

// Invoice types
const (
	RechnungstypJahresabrechnung   = "Jahresabrechnung"
	RechnungstypZwischenabrechnung = "Zwischenabrechnung"
	RechnungstypSchlussrechnung    = "Schlussrechnung"
)

// Ticket contact channels
const (
	TicketTypAnruf    = "Anruf"
	TicketTypEmail    = "Email"
	TicketTypVoicebot = "Voicebot"
	TicketTypChat     = "Chat"
)

// Ticket statuses
const (
	TicketOffen         = "offen"
	TicketInBearbeitung = "in Bearbeitung"
	TicketGeschlossen   = "geschlossen"
)

// Ticket categories
const (
	KategorieBeschwerde   = "Beschwerde"
	KategorieAnfrage      = "Anfrage"
	KategorieZaehlerstand = "Zählerstand"
	KategorieRechnung     = "Rechnung"
	KategorieTechnisch    = "Technisch"
	KategorieSonstiges    = "Sonstiges"
)

// Ticket priorities
const (
	PrioritaetNiedrig = "Niedrig"
	PrioritaetMittel  = "Mittel"
	PrioritaetHoch    = "Hoch"
)

// Address is the structured postal address of a customer.
type Address struct {
	Street     string `json:"street" bson:"street" validate:"required"`
	PostalCode string `json:"postal_code" bson:"postal_code" validate:"required,plz"`
	City       string `json:"city" bson:"city" validate:"required"`
	Country    string `json:"country" bson:"country"`
}

// MeterReading is one meter reading entry. Readings are stored newest
// first, so the first entry is always the current level. Rechnungsnummer
// back-references the invoice the reading was billed with, when any.
type MeterReading struct {
	Datum           string `json:"datum" bson:"datum" validate:"required,iso_date"`
	Stand           int64  `json:"stand" bson:"stand" validate:"gte=0"`
	Einheit         string `json:"einheit" bson:"einheit" validate:"required"`
	Erfassungsart   string `json:"erfassungsart" bson:"erfassungsart" validate:"required,erfassungsart"`
	Rechnungsnummer string `json:"rechnungsnummer,omitempty" bson:"rechnungsnummer,omitempty"`
}

// Verbrauchszeitraum is the billing period of an invoice.
type Verbrauchszeitraum struct {
	Von string `json:"von" bson:"von" validate:"omitempty,iso_date"`
	Bis string `json:"bis" bson:"bis" validate:"omitempty,iso_date"`
}

// Invoice is one invoice entry, newest first. Betrag is in cents;
// rechnungsnummer follows the R-<year>-<seq> format.
type Invoice struct {
	Rechnungsnummer    string             `json:"rechnungsnummer" bson:"rechnungsnummer" validate:"required"`
	Datum              string             `json:"datum" bson:"datum" validate:"required,iso_date"`
	Betrag             int64              `json:"betrag" bson:"betrag"`
	Status             string             `json:"status" bson:"status" validate:"required,rechnungsstatus"`
	Zahlungsfrist      string             `json:"zahlungsfrist" bson:"zahlungsfrist" validate:"omitempty,iso_date"`
	Verbrauchszeitraum Verbrauchszeitraum `json:"verbrauchszeitraum" bson:"verbrauchszeitraum"`
	PdfURL             string             `json:"pdfUrl" bson:"pdfUrl"`
	Typ                string             `json:"typ" bson:"typ" validate:"omitempty,rechnungstyp"`
}

// Ticket is one support ticket entry, newest first. IDs follow the
// T-<year>-<seq> format.
type Ticket struct {
	TicketID     string `json:"ticketId" bson:"ticketId" validate:"required"`
	Datum        string `json:"datum" bson:"datum" validate:"required,iso_date"`
	Typ          string `json:"typ" bson:"typ" validate:"required,tickettyp"`
	Status       string `json:"status" bson:"status" validate:"required,ticketstatus"`
	Kategorie    string `json:"kategorie" bson:"kategorie"`
	Bearbeiter   string `json:"bearbeiter" bson:"bearbeiter"`
	Beschreibung string `json:"beschreibung" bson:"beschreibung"`
	Notizen      string `json:"notizen,omitempty" bson:"notizen,omitempty"`
	Prioritaet   string `json:"prioritaet" bson:"prioritaet" validate:"required,prioritaet"`
}

// Abschlag is the recurring advance payment. Betrag is in cents.
type Abschlag struct {
	Betrag              int64  `json:"betrag" bson:"betrag"`
	Zahlungsrhythmus    string `json:"zahlungsrhythmus" bson:"zahlungsrhythmus" validate:"omitempty,zahlungsrhythmus"`
	NaechsteFaelligkeit string `json:"naechsteFaelligkeit" bson:"naechsteFaelligkeit" validate:"omitempty,iso_date"`
}

// TarifZuordnung is the tariff assigned to a customer. It is a value copy
// of a catalog entry taken at assignment time, so later catalog changes
// never leak into existing contracts. Grundpreis is cents per month,
// Arbeitspreis cents per kWh.
type TarifZuordnung struct {
	ID               string   `json:"id" bson:"id" validate:"required"`
	Name             string   `json:"name" bson:"name"`
	Grundpreis       int64    `json:"grundpreis" bson:"grundpreis"`
	Arbeitspreis     int64    `json:"arbeitspreis" bson:"arbeitspreis"`
	Vertragslaufzeit string   `json:"vertragslaufzeit" bson:"vertragslaufzeit"`
	Kuendigungsfrist string   `json:"kuendigungsfrist" bson:"kuendigungsfrist"`
	Besonderheiten   []string `json:"besonderheiten,omitempty" bson:"besonderheiten,omitempty"`
}

// Customer is one customer record. The bson field names are wire contract
// shared with other consumers of the document database; kundennummer is
// the stable business key, distinct from the internal _id.
type Customer struct {
	ID              primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Kundennummer    string             `json:"kundennummer" bson:"kundennummer" validate:"required" index:"unique"`
	CustomerNumber  string             `json:"customer_number" bson:"customer_number" index:"single:1"`
	Name            string             `json:"name" bson:"name" validate:"required" index:"single:1"`
	HotlinePassword string             `json:"hotline_password" bson:"hotline_password"`
	Address         Address            `json:"address" bson:"address"`
	Vertragsnummer  string             `json:"vertragsnummer" bson:"vertragsnummer"`
	Vertragsart     string             `json:"vertragsart" bson:"vertragsart" validate:"required,vertragsart" index:"compound:vertragsart_status"`
	Status          string             `json:"status" bson:"status" validate:"required,vertragsstatus" index:"compound:vertragsart_status"`
	Zaehlernummer   string             `json:"zaehlernummer" bson:"zaehlernummer"`
	Abschlag        Abschlag           `json:"abschlag" bson:"abschlag"`
	Tarif           TarifZuordnung     `json:"tarif" bson:"tarif"`
	Zaehlerstaende  []MeterReading     `json:"zaehlerstaende" bson:"zaehlerstaende"`
	Rechnungen      []Invoice          `json:"rechnungen" bson:"rechnungen"`
	TicketHistory   []Ticket           `json:"ticketHistory" bson:"ticketHistory"`
	CreatedAt       int64              `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt       int64              `json:"updated_at" bson:"updated_at,omitempty"`
}

// LatestReading returns the current meter level, nil when no reading has
// been captured yet.
func (c *Customer) LatestReading() *MeterReading {
	if len(c.Zaehlerstaende) == 0 {
		return nil
	}
	return &c.Zaehlerstaende[0]
}

package global

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Allowed values for the domain enumerations. These mirror the stored
// wire values, umlauts included.
var (
	contractTypes    = map[string]bool{"Stromlieferung": true, "Gaslieferung": true, "Kombivertrag": true}
	contractStatuses = map[string]bool{"aktiv": true, "inaktiv": true}
	paymentRhythms   = map[string]bool{"monatlich": true, "vierteljährlich": true, "halbjährlich": true, "jährlich": true}
	readingSources   = map[string]bool{"manuell": true, "automatisch": true, "voicebot": true}
	invoiceStatuses  = map[string]bool{"bezahlt": true, "offen": true, "überfällig": true}
	invoiceTypes     = map[string]bool{"Jahresabrechnung": true, "Zwischenabrechnung": true, "Schlussrechnung": true}
	ticketChannels   = map[string]bool{"Anruf": true, "Email": true, "Voicebot": true, "Chat": true}
	ticketStatuses   = map[string]bool{"offen": true, "in Bearbeitung": true, "geschlossen": true}
	ticketPriorities = map[string]bool{"Niedrig": true, "Mittel": true, "Hoch": true}
)

var plzRegex = regexp.MustCompile(`^\d{5}$`)
var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// InitValidator initializes the shared validator and registers the
// domain validations.
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("plz", validatePLZ)
	_ = Validate.RegisterValidation("iso_date", validateISODate)
	_ = Validate.RegisterValidation("vertragsart", validateVertragsart)
	_ = Validate.RegisterValidation("vertragsstatus", validateVertragsstatus)
	_ = Validate.RegisterValidation("zahlungsrhythmus", validateZahlungsrhythmus)
	_ = Validate.RegisterValidation("erfassungsart", validateErfassungsart)
	_ = Validate.RegisterValidation("rechnungsstatus", validateRechnungsstatus)
	_ = Validate.RegisterValidation("rechnungstyp", validateRechnungstyp)
	_ = Validate.RegisterValidation("tickettyp", validateTickettyp)
	_ = Validate.RegisterValidation("ticketstatus", validateTicketstatus)
	_ = Validate.RegisterValidation("prioritaet", validatePrioritaet)
}

// validatePLZ checks a five digit German postal code.
func validatePLZ(fl validator.FieldLevel) bool {
	return plzRegex.MatchString(fl.Field().String())
}

// validateISODate checks the YYYY-MM-DD date format used on the wire.
func validateISODate(fl validator.FieldLevel) bool {
	return isoDateRegex.MatchString(fl.Field().String())
}

func validateVertragsart(fl validator.FieldLevel) bool {
	return contractTypes[fl.Field().String()]
}

func validateVertragsstatus(fl validator.FieldLevel) bool {
	return contractStatuses[fl.Field().String()]
}

func validateZahlungsrhythmus(fl validator.FieldLevel) bool {
	return paymentRhythms[fl.Field().String()]
}

func validateErfassungsart(fl validator.FieldLevel) bool {
	return readingSources[fl.Field().String()]
}

func validateRechnungsstatus(fl validator.FieldLevel) bool {
	return invoiceStatuses[fl.Field().String()]
}

func validateRechnungstyp(fl validator.FieldLevel) bool {
	return invoiceTypes[fl.Field().String()]
}

func validateTickettyp(fl validator.FieldLevel) bool {
	return ticketChannels[fl.Field().String()]
}

func validateTicketstatus(fl validator.FieldLevel) bool {
	return ticketStatuses[fl.Field().String()]
}

func validatePrioritaet(fl validator.FieldLevel) bool {
	return ticketPriorities[fl.Field().String()]
}

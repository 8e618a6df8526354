// Package kundenhdl - HTTP handlers of the kunden domain.
package kundenhdl

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/TrustedSamu/sap-energy-portal/internal/api/base/handler"
	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/dto"
	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
	kundensvc "github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/service"
	"github.com/TrustedSamu/sap-energy-portal/internal/common"
	"github.com/TrustedSamu/sap-energy-portal/internal/global"
	"github.com/TrustedSamu/sap-energy-portal/internal/logger"
	"github.com/TrustedSamu/sap-energy-portal/internal/utility"
)

// CustomerHandler serves the customer record endpoints.
type CustomerHandler struct {
	CustomerService *kundensvc.CustomerService
	TariffService   *kundensvc.TariffService
}

// NewCustomerHandler creates a CustomerHandler over the registered
// collections.
func NewCustomerHandler() (*CustomerHandler, error) {
	customerSvc, err := kundensvc.NewCustomerService()
	if err != nil {
		return nil, fmt.Errorf("create CustomerService: %w", err)
	}
	tariffSvc, err := kundensvc.NewTariffService()
	if err != nil {
		return nil, fmt.Errorf("create TariffService: %w", err)
	}
	return &CustomerHandler{CustomerService: customerSvc, TariffService: tariffSvc}, nil
}

// HandleListCustomers serves GET /kunden. An optional ?search= filters
// case-insensitively on name or kundennummer. The list is projected onto
// summaries, the hotline password never leaves through this endpoint.
func (h *CustomerHandler) HandleListCustomers(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		customers, err := h.CustomerService.GetAllCustomers(c.Context())
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		search := strings.ToLower(strings.TrimSpace(c.Query("search")))
		summaries := make([]dto.CustomerSummary, 0, len(customers))
		for _, customer := range customers {
			if search != "" &&
				!strings.Contains(strings.ToLower(customer.Name), search) &&
				!strings.Contains(strings.ToLower(customer.Kundennummer), search) {
				continue
			}
			summaries = append(summaries, dto.SummaryFromCustomer(customer))
		}

		return basehdl.HandleResponse(c, summaries, nil)
	})
}

// HandleGetCustomer serves GET /kunden/:kundennummer.
func (h *CustomerHandler) HandleGetCustomer(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		kundennummer := c.Params("kundennummer")
		customer, err := h.CustomerService.GetCustomer(c.Context(), kundennummer)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if customer == nil {
			return basehdl.HandleResponse(c, nil, common.ErrNotFound)
		}
		return basehdl.HandleResponse(c, customer, nil)
	})
}

// HandleCreateCustomer serves POST /kunden. The tariff id is gated
// against the live catalog before any number is drawn or any document is
// written; the stored tariff is a value copy of the catalog row.
func (h *CustomerHandler) HandleCreateCustomer(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input dto.CreateCustomerInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		if err := global.Validate.Struct(input); err != nil {
			return basehdl.HandleResponse(c, nil,
				common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
		}

		tariff, err := h.TariffService.ValidateAssignable(c.Context(), input.TarifID)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		kundennummer, err := h.CustomerService.DrawKundennummer(c.Context())
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		rhythmus := input.Zahlungsrhythmus
		if rhythmus == "" {
			rhythmus = models.RhythmusMonatlich
		}
		country := input.Country
		if country == "" {
			country = "Deutschland"
		}

		customer := models.Customer{
			Kundennummer:    kundennummer,
			CustomerNumber:  kundensvc.NewCustomerNumber(),
			Name:            input.Name,
			HotlinePassword: input.HotlinePassword,
			Address: models.Address{
				Street:     input.Street,
				PostalCode: input.PostalCode,
				City:       input.City,
				Country:    country,
			},
			Vertragsnummer: kundensvc.NewVertragsnummer(),
			Vertragsart:    input.Vertragsart,
			Status:         models.StatusAktiv,
			Zaehlernummer:  kundensvc.NewZaehlernummer(),
			Abschlag: models.Abschlag{
				Betrag:           input.AbschlagBetrag,
				Zahlungsrhythmus: rhythmus,
			},
			Tarif: tariff.Assignment(),
		}

		created, err := h.CustomerService.CreateCustomer(c.Context(), customer)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogCRUD("create", "customer", created.Kundennummer, c, nil)
		return basehdl.HandleCreatedResponse(c, created)
	})
}

// HandleUpdateCustomerField serves PATCH /kunden/:kundennummer. The body
// addresses a single field by dot path, leaving siblings of nested
// objects untouched.
func (h *CustomerHandler) HandleUpdateCustomerField(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var body map[string]interface{}
		if err := c.Bind().Body(&body); err != nil || len(body) == 0 {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		// Either {path, value} or a plain map of dot paths to values
		fields := body
		if path, ok := body["path"].(string); ok && len(body) <= 2 {
			input := dto.UpdateFieldInput{Path: path, Value: body["value"]}
			if err := global.Validate.Struct(input); err != nil {
				return basehdl.HandleResponse(c, nil,
					common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
			}
			fields = map[string]interface{}{input.Path: input.Value}
		}

		paths := make([]string, 0, len(fields))
		for path := range fields {
			paths = append(paths, path)
		}

		kundennummer := c.Params("kundennummer")
		updated, err := h.CustomerService.UpdateCustomerFields(c.Context(), kundennummer, fields)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogCRUD("update", "customer", kundennummer, c, map[string]interface{}{"paths": paths})
		return basehdl.HandleResponse(c, updated, nil)
	})
}

// HandleAddTicket serves POST /kunden/:kundennummer/tickets. The ticket
// id continues the highest sequence found in the existing history.
func (h *CustomerHandler) HandleAddTicket(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input dto.NewTicketInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		if err := global.Validate.Struct(input); err != nil {
			return basehdl.HandleResponse(c, nil,
				common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
		}

		kundennummer := c.Params("kundennummer")
		customer, err := h.CustomerService.GetCustomer(c.Context(), kundennummer)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if customer == nil {
			return basehdl.HandleResponse(c, nil, common.ErrNotFound)
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

		perYear := global.ServerConfig != nil && global.ServerConfig.TicketSequencePerYear
		ticket := models.Ticket{
			TicketID:     kundensvc.NextTicketIDNow(customer.TicketHistory, perYear),
			Datum:        utility.TodayISO(),
			Typ:          typ,
			Status:       models.TicketOffen,
			Kategorie:    kategorie,
			Bearbeiter:   input.Bearbeiter,
			Beschreibung: input.Beschreibung,
			Notizen:      input.Notizen,
			Prioritaet:   prioritaet,
		}

		updated, err := h.CustomerService.AddTicket(c.Context(), kundennummer, ticket)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogCRUD("create", "ticket", ticket.TicketID, c, map[string]interface{}{"kundennummer": kundennummer})
		return basehdl.HandleCreatedResponse(c, updated)
	})
}

// HandleAddReading serves POST /kunden/:kundennummer/zaehlerstaende.
func (h *CustomerHandler) HandleAddReading(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input dto.NewReadingInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		if err := global.Validate.Struct(input); err != nil {
			return basehdl.HandleResponse(c, nil,
				common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
		}

		kundennummer := c.Params("kundennummer")
		reading := models.MeterReading{
			Datum:           input.Datum,
			Stand:           input.Stand,
			Einheit:         input.Einheit,
			Erfassungsart:   input.Erfassungsart,
			Rechnungsnummer: input.Rechnungsnummer,
		}

		updated, err := h.CustomerService.AddMeterReading(c.Context(), kundennummer, reading)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogCRUD("create", "meter_reading", kundennummer, c, map[string]interface{}{"stand": input.Stand})
		return basehdl.HandleCreatedResponse(c, updated)
	})
}

// HandleVoicebotReading serves POST
// /kunden/:kundennummer/zaehlerstaende/voicebot, the reduced capture
// channel of the phone bot. Append and latest-level update are one
// atomic write.
func (h *CustomerHandler) HandleVoicebotReading(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input dto.VoicebotReadingInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		if err := global.Validate.Struct(input); err != nil {
			return basehdl.HandleResponse(c, nil,
				common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
		}

		kundennummer := c.Params("kundennummer")
		updated, err := h.CustomerService.RecordVoicebotReading(c.Context(), kundennummer, input.Stand, input.Datum)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogCRUD("create", "meter_reading", kundennummer, c,
			map[string]interface{}{"stand": input.Stand, "erfassungsart": models.ErfassungVoicebot})
		return basehdl.HandleCreatedResponse(c, updated)
	})
}

// HandleAddInvoice serves POST /kunden/:kundennummer/rechnungen.
func (h *CustomerHandler) HandleAddInvoice(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input dto.NewInvoiceInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		if err := global.Validate.Struct(input); err != nil {
			return basehdl.HandleResponse(c, nil,
				common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
		}

		kundennummer := c.Params("kundennummer")
		customer, err := h.CustomerService.GetCustomer(c.Context(), kundennummer)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if customer == nil {
			return basehdl.HandleResponse(c, nil, common.ErrNotFound)
		}

		datum := input.Datum
		if datum == "" {
			datum = utility.TodayISO()
		}
		status := input.Status
		if status == "" {
			status = models.RechnungOffen
		}
		zahlungsfrist := input.Zahlungsfrist
		if zahlungsfrist == "" {
			zahlungsfrist = kundensvc.DefaultZahlungsfrist(datum)
		}
		typ := input.Typ
		if typ == "" {
			typ = models.RechnungstypZwischenabrechnung
		}

		invoice := models.Invoice{
			Rechnungsnummer: kundensvc.NextInvoiceID(customer.Rechnungen),
			Datum:           datum,
			Betrag:          input.Betrag,
			Status:          status,
			Zahlungsfrist:   zahlungsfrist,
			Verbrauchszeitraum: models.Verbrauchszeitraum{
				Von: input.VerbrauchszeitraumVon,
				Bis: input.VerbrauchszeitraumBis,
			},
			PdfURL: input.PdfURL,
			Typ:    typ,
		}

		updated, err := h.CustomerService.AddInvoice(c.Context(), kundennummer, invoice)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogCRUD("create", "invoice", invoice.Rechnungsnummer, c, map[string]interface{}{"kundennummer": kundennummer})
		return basehdl.HandleCreatedResponse(c, updated)
	})
}

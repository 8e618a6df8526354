// Package router registers the routes of the kunden domain: customer
// records, histories and the tariff catalog.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	kundenhdl "github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/handler"
	apirouter "github.com/TrustedSamu/sap-energy-portal/internal/api/router"
)

// Register mounts all kunden routes on v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	customerHandler, err := kundenhdl.NewCustomerHandler()
	if err != nil {
		return fmt.Errorf("create CustomerHandler: %w", err)
	}
	tariffHandler, err := kundenhdl.NewTariffHandler()
	if err != nil {
		return fmt.Errorf("create TariffHandler: %w", err)
	}

	var middlewares []fiber.Handler

	// GET /kunden — list, ?search= filters on name or kundennummer
	apirouter.RegisterRouteWithMiddleware(v1, "/kunden", "GET", "/", middlewares, customerHandler.HandleListCustomers)
	// POST /kunden — create with server-side numbers and tariff gate
	apirouter.RegisterRouteWithMiddleware(v1, "/kunden", "POST", "/", middlewares, customerHandler.HandleCreateCustomer)
	// GET /kunden/:kundennummer
	apirouter.RegisterRouteWithMiddleware(v1, "/kunden", "GET", "/:kundennummer", middlewares, customerHandler.HandleGetCustomer)
	// PATCH /kunden/:kundennummer — single field by dot path
	apirouter.RegisterRouteWithMiddleware(v1, "/kunden", "PATCH", "/:kundennummer", middlewares, customerHandler.HandleUpdateCustomerField)

	// POST /kunden/:kundennummer/tickets
	apirouter.RegisterRouteWithMiddleware(v1, "/kunden", "POST", "/:kundennummer/tickets", middlewares, customerHandler.HandleAddTicket)
	// POST /kunden/:kundennummer/zaehlerstaende
	apirouter.RegisterRouteWithMiddleware(v1, "/kunden", "POST", "/:kundennummer/zaehlerstaende", middlewares, customerHandler.HandleAddReading)
	// POST /kunden/:kundennummer/zaehlerstaende/voicebot — phone bot channel
	apirouter.RegisterRouteWithMiddleware(v1, "/kunden", "POST", "/:kundennummer/zaehlerstaende/voicebot", middlewares, customerHandler.HandleVoicebotReading)
	// POST /kunden/:kundennummer/rechnungen
	apirouter.RegisterRouteWithMiddleware(v1, "/kunden", "POST", "/:kundennummer/rechnungen", middlewares, customerHandler.HandleAddInvoice)

	// GET /tarife, GET /tarife/:id — catalog with display fields
	apirouter.RegisterRouteWithMiddleware(v1, "/tarife", "GET", "/", middlewares, tariffHandler.HandleListTariffs)
	apirouter.RegisterRouteWithMiddleware(v1, "/tarife", "GET", "/:id", middlewares, tariffHandler.HandleGetTariff)
	// PUT /tarife/:id — reprice or retire a catalog entry
	apirouter.RegisterRouteWithMiddleware(v1, "/tarife", "PUT", "/:id", middlewares, tariffHandler.HandleUpdateTariff)
	// DELETE /tarife/:id
	apirouter.RegisterRouteWithMiddleware(v1, "/tarife", "DELETE", "/:id", middlewares, tariffHandler.HandleRemoveTariff)

	return nil
}

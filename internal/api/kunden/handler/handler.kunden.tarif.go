package kundenhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/TrustedSamu/sap-energy-portal/internal/api/base/handler"
	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/dto"
	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
	kundensvc "github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/service"
	"github.com/TrustedSamu/sap-energy-portal/internal/common"
	"github.com/TrustedSamu/sap-energy-portal/internal/logger"
)

// TariffHandler serves the tariff catalog endpoints.
type TariffHandler struct {
	TariffService *kundensvc.TariffService
}

// NewTariffHandler creates a TariffHandler over the registered tariffs
// collection.
func NewTariffHandler() (*TariffHandler, error) {
	svc, err := kundensvc.NewTariffService()
	if err != nil {
		return nil, fmt.Errorf("create TariffService: %w", err)
	}
	return &TariffHandler{TariffService: svc}, nil
}

// HandleListTariffs serves GET /tarife, each entry enriched with its
// display metadata.
func (h *TariffHandler) HandleListTariffs(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tariffs, err := h.TariffService.GetAllTariffs(c.Context())
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		responses := make([]dto.TariffResponse, 0, len(tariffs))
		for _, t := range tariffs {
			responses = append(responses, dto.TariffResponse{
				Tariff:  t,
				Display: models.DisplayForType(t.Type),
			})
		}

		return basehdl.HandleResponse(c, responses, nil)
	})
}

// HandleGetTariff serves GET /tarife/:id.
func (h *TariffHandler) HandleGetTariff(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tariff, err := h.TariffService.GetTariff(c.Context(), c.Params("id"))
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if tariff == nil {
			return basehdl.HandleResponse(c, nil, common.ErrTariffUnknown)
		}

		return basehdl.HandleResponse(c, dto.TariffResponse{
			Tariff:  *tariff,
			Display: models.DisplayForType(tariff.Type),
		}, nil)
	})
}

// HandleUpdateTariff serves PUT /tarife/:id, repricing or retiring a
// catalog entry. Existing customers keep their value copies.
func (h *TariffHandler) HandleUpdateTariff(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input dto.UpdateTariffInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		id := c.Params("id")
		updated, err := h.TariffService.UpdateTariff(c.Context(), id, input)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogCRUD("update", "tariff", id, c, nil)
		return basehdl.HandleResponse(c, dto.TariffResponse{
			Tariff:  updated,
			Display: models.DisplayForType(updated.Type),
		}, nil)
	})
}

// HandleRemoveTariff serves DELETE /tarife/:id.
func (h *TariffHandler) HandleRemoveTariff(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id := c.Params("id")
		if err := h.TariffService.RemoveTariff(c.Context(), id); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogCRUD("delete", "tariff", id, c, nil)
		return basehdl.HandleResponse(c, fiber.Map{"id": id}, nil)
	})
}

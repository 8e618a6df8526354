package state

import (
	"context"

	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/dto"
	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
	kundensvc "github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/service"
	"github.com/TrustedSamu/sap-energy-portal/internal/common"
	"github.com/TrustedSamu/sap-energy-portal/internal/global"
)

// CustomerForm drives customer creation: required-field validation, the
// tariff gate against the live catalog at submit time, server-side
// number generation and the value copy of the chosen tariff.
type CustomerForm struct {
	Page

	customers CustomerStore
	tariffs   TariffStore

	Input dto.CreateCustomerInput
}

// NewCustomerForm creates an idle creation form over the stores.
func NewCustomerForm(customers CustomerStore, tariffs TariffStore) *CustomerForm {
	return &CustomerForm{
		Page:      NewPage(),
		customers: customers,
		tariffs:   tariffs,
	}
}

// Submit validates the input, gates the tariff id against the live
// catalog and creates the customer. Nothing is written when validation
// or the gate fails.
func (f *CustomerForm) Submit(ctx context.Context) (*models.Customer, error) {
	if err := global.Validate.Struct(f.Input); err != nil {
		failErr := common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
		f.fail(failErr)
		return nil, failErr
	}

	tariff, err := f.tariffs.GetTariff(ctx, f.Input.TarifID)
	if err != nil {
		f.fail(err)
		return nil, err
	}
	if tariff == nil {
		f.fail(common.ErrTariffUnknown)
		return nil, common.ErrTariffUnknown
	}
	if !tariff.Aktiv {
		f.fail(common.ErrTariffRetired)
		return nil, common.ErrTariffRetired
	}

	rhythmus := f.Input.Zahlungsrhythmus
	if rhythmus == "" {
		rhythmus = models.RhythmusMonatlich
	}
	country := f.Input.Country
	if country == "" {
		country = "Deutschland"
	}

	// The store owns the draw so the collision guard applies here too
	kundennummer, err := f.customers.DrawKundennummer(ctx)
	if err != nil {
		f.fail(err)
		return nil, err
	}

	customer := models.Customer{
		Kundennummer:    kundennummer,
		CustomerNumber:  kundensvc.NewCustomerNumber(),
		Name:            f.Input.Name,
		HotlinePassword: f.Input.HotlinePassword,
		Address: models.Address{
			Street:     f.Input.Street,
			PostalCode: f.Input.PostalCode,
			City:       f.Input.City,
			Country:    country,
		},
		Vertragsnummer: kundensvc.NewVertragsnummer(),
		Vertragsart:    f.Input.Vertragsart,
		Status:         models.StatusAktiv,
		Zaehlernummer:  kundensvc.NewZaehlernummer(),
		Abschlag: models.Abschlag{
			Betrag:           f.Input.AbschlagBetrag,
			Zahlungsrhythmus: rhythmus,
		},
		Tarif: tariff.Assignment(),
	}

	created, err := f.customers.CreateCustomer(ctx, customer)
	if err != nil {
		f.fail(err)
		return nil, err
	}

	f.finishLoaded()
	return &created, nil
}

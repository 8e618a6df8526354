package kundensvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/TrustedSamu/sap-energy-portal/internal/api/base/service"
	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/dto"
	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
	"github.com/TrustedSamu/sap-energy-portal/internal/common"
	"github.com/TrustedSamu/sap-energy-portal/internal/global"
	"github.com/TrustedSamu/sap-energy-portal/internal/utility"
)

// TariffService is the tariff catalog over the tariffs collection. The
// catalog is small and read-mostly, contracts only reference it by a
// copied value snapshot.
type TariffService struct {
	*basesvc.BaseServiceMongoImpl[models.Tariff]
}

// NewTariffService creates a TariffService from the registered tariffs
// collection.
func NewTariffService() (*TariffService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Tariffs)
	if !exist {
		return nil, fmt.Errorf("collection %s not registered: %w", global.MongoDB_ColNames.Tariffs, common.ErrNotFound)
	}
	return &TariffService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Tariff](coll),
	}, nil
}

// GetAllTariffs returns the full catalog, active and retired, sorted by
// id.
func (s *TariffService) GetAllTariffs(ctx context.Context) ([]models.Tariff, error) {
	return s.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// GetTariff looks a tariff up by its catalog id. An absent tariff is a
// valid result, not an error: the method returns (nil, nil) then.
func (s *TariffService) GetTariff(ctx context.Context, id string) (*models.Tariff, error) {
	tariff, err := s.FindOne(ctx, bson.M{"_id": id}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tariff, nil
}

// ValidateAssignable gates contract creation: a tariff can only be
// assigned when it exists in the live catalog and is still active. The
// returned tariff is the catalog row the assignment snapshot is copied
// from.
func (s *TariffService) ValidateAssignable(ctx context.Context, id string) (*models.Tariff, error) {
	tariff, err := s.GetTariff(ctx, id)
	if err != nil {
		return nil, err
	}
	if tariff == nil {
		return nil, common.ErrTariffUnknown
	}
	if !tariff.Aktiv {
		return nil, common.ErrTariffRetired
	}
	return tariff, nil
}

// UpdateTariff reprices or retires a catalog entry. The change never
// reaches existing customers, their tarif is a value copy.
func (s *TariffService) UpdateTariff(ctx context.Context, id string, input dto.UpdateTariffInput) (models.Tariff, error) {
	var zero models.Tariff

	if err := global.Validate.Struct(input); err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	set := map[string]interface{}{}
	if input.PricePerKwh != nil {
		set["pricePerKwh"] = *input.PricePerKwh
	}
	if input.Aktiv != nil {
		set["aktiv"] = *input.Aktiv
	}
	if len(set) == 0 {
		return zero, common.ErrInvalidInput
	}

	return s.UpdateOne(ctx, bson.M{"_id": id}, &basesvc.UpdateData{Set: set}, nil)
}

// RemoveTariff deletes a catalog entry. Customers created with it keep
// their value copy; the scan validation then drops records still
// referencing the removed id.
func (s *TariffService) RemoveTariff(ctx context.Context, id string) error {
	return s.DeleteOne(ctx, bson.M{"_id": id})
}

// DefaultTariffs is the seed catalog written on first start. The display
// fields derive from the type, only the price is stored.
func DefaultTariffs() []models.Tariff {
	return []models.Tariff{
		{ID: "basic", Type: models.TarifTypeBasic, PricePerKwh: 32, Aktiv: true},
		{ID: "eco", Type: models.TarifTypeEco, PricePerKwh: 35, Aktiv: true},
		{ID: "premium", Type: models.TarifTypePremium, PricePerKwh: 38, Aktiv: true},
	}
}

// SeedDefaults upserts the default catalog idempotently. Existing rows
// keep their current values, the seed fields only apply when the upsert
// inserts.
func (s *TariffService) SeedDefaults(ctx context.Context) error {
	for _, tariff := range DefaultTariffs() {
		fields, err := utility.ToMap(tariff)
		if err != nil {
			return common.ErrInvalidFormat
		}
		// the filter fixes _id, the base service stamps the timestamps
		delete(fields, "_id")
		delete(fields, "created_at")
		delete(fields, "updated_at")

		if _, err := s.Upsert(ctx, bson.M{"_id": tariff.ID}, &basesvc.UpdateData{SetOnInsert: fields}); err != nil {
			return err
		}
	}
	return nil
}

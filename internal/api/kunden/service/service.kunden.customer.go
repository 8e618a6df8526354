// Package kundensvc - customer record store and tariff catalog services.
package kundensvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/TrustedSamu/sap-energy-portal/internal/api/base/service"
	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
	"github.com/TrustedSamu/sap-energy-portal/internal/common"
	"github.com/TrustedSamu/sap-energy-portal/internal/global"
	"github.com/TrustedSamu/sap-energy-portal/internal/logger"
	"github.com/TrustedSamu/sap-energy-portal/internal/utility"
)

// CustomerService is the customer record store over the customers
// collection. It carries the tariff catalog for record validation, a
// stored tarif id must exist in the live catalog.
type CustomerService struct {
	*basesvc.BaseServiceMongoImpl[models.Customer]

	tariffs *TariffService
}

// NewCustomerService creates a CustomerService from the registered
// customers collection.
func NewCustomerService() (*CustomerService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Customers)
	if !exist {
		return nil, fmt.Errorf("collection %s not registered: %w", global.MongoDB_ColNames.Customers, common.ErrNotFound)
	}
	tariffs, err := NewTariffService()
	if err != nil {
		return nil, fmt.Errorf("create TariffService: %w", err)
	}
	return &CustomerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Customer](coll),
		tariffs:              tariffs,
	}, nil
}

// byKundennummer is the canonical lookup filter.
func byKundennummer(kundennummer string) bson.M {
	return bson.M{"kundennummer": kundennummer}
}

// GetCustomer looks a customer up by business key. An absent customer is
// a valid result, not an error: the method returns (nil, nil) then.
func (s *CustomerService) GetCustomer(ctx context.Context, kundennummer string) (*models.Customer, error) {
	customer, err := s.FindOne(ctx, byKundennummer(kundennummer), nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetAllCustomers scans the whole collection. Documents that fail to
// decode or fail record validation are dropped with a warning; one bad
// record never aborts the scan.
func (s *CustomerService) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	raws, err := s.FindRaw(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}

	return decodeCustomers(raws, s.catalogIDs(ctx)), nil
}

// catalogIDs returns the ids of the live tariff catalog. When the catalog
// cannot be read the tarif check is skipped for this scan rather than
// failing the whole customer list.
func (s *CustomerService) catalogIDs(ctx context.Context) map[string]bool {
	tariffs, err := s.tariffs.GetAllTariffs(ctx)
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("Tariff catalog unavailable, skipping tarif check on scan")
		return nil
	}
	ids := make(map[string]bool, len(tariffs))
	for _, t := range tariffs {
		ids[t.ID] = true
	}
	return ids
}

// decodeCustomers decodes raw documents one by one, dropping entries that
// fail to decode or fail record validation with a warning. A nil catalog
// skips the tarif check.
func decodeCustomers(raws []bson.Raw, catalog map[string]bool) []models.Customer {
	customers := make([]models.Customer, 0, len(raws))
	for _, raw := range raws {
		var c models.Customer
		if err := bson.Unmarshal(raw, &c); err != nil {
			logger.GetAppLogger().WithError(err).Warn("Dropping customer document that failed to decode")
			continue
		}
		if err := ValidateCustomerRecord(&c, catalog); err != nil {
			logger.GetAppLogger().WithError(err).WithField("kundennummer", c.Kundennummer).
				Warn("Dropping malformed customer record")
			continue
		}
		customers = append(customers, c)
	}
	return customers
}

// ValidateCustomerRecord checks the minimal shape a stored record must
// have to be usable: business key, name, an address, and a tarif id that
// exists in the live catalog. Records failing this are treated as
// malformed.
func ValidateCustomerRecord(c *models.Customer, catalog map[string]bool) error {
	if c.Kundennummer == "" {
		return fmt.Errorf("record without kundennummer: %w", common.ErrMalformed)
	}
	if c.Name == "" {
		return fmt.Errorf("record %s without name: %w", c.Kundennummer, common.ErrMalformed)
	}
	if c.Address.Street == "" && c.Address.City == "" {
		return fmt.Errorf("record %s without address: %w", c.Kundennummer, common.ErrMalformed)
	}
	if catalog != nil && !catalog[c.Tarif.ID] {
		return fmt.Errorf("record %s references unknown tarif %q: %w", c.Kundennummer, c.Tarif.ID, common.ErrMalformed)
	}
	return nil
}

// CreateCustomer validates and inserts a full customer document. A
// duplicate kundennummer surfaces as a conflict through the unique index.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	var zero models.Customer

	if err := global.Validate.Struct(customer); err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	// History arrays are always present on the wire, never null
	if customer.Zaehlerstaende == nil {
		customer.Zaehlerstaende = []models.MeterReading{}
	}
	if customer.Rechnungen == nil {
		customer.Rechnungen = []models.Invoice{}
	}
	if customer.TicketHistory == nil {
		customer.TicketHistory = []models.Ticket{}
	}

	return s.InsertOne(ctx, customer)
}

// UpdateCustomerFields applies a path-scoped partial update: one $set per
// dot path, so untouched siblings of nested objects are preserved. It
// never replaces the document. The updated record is returned; an unknown
// kundennummer is a not-found error because the write was targeted.
func (s *CustomerService) UpdateCustomerFields(ctx context.Context, kundennummer string, fields map[string]interface{}) (models.Customer, error) {
	var zero models.Customer

	if len(fields) == 0 {
		return zero, common.ErrInvalidInput
	}

	set := make(map[string]interface{}, len(fields))
	for path, value := range fields {
		if path == "" {
			return zero, common.ErrInvalidInput
		}
		if isProtectedPath(path) {
			return zero, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Field %s cannot be updated", path), common.StatusBadRequest, nil)
		}
		set[path] = value
	}

	update := &basesvc.UpdateData{Set: set}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, byKundennummer(kundennummer), update, opts)
}

// isProtectedPath guards the identity fields of a record.
func isProtectedPath(path string) bool {
	switch path {
	case "_id", "kundennummer", "created_at":
		return true
	}
	return false
}

// prependUpdate builds the atomic prepend for a history array: a $push
// with $each and $position 0, a single read-modify-write on the server
// so concurrent appenders never lose entries.
func prependUpdate(field string, item interface{}) *basesvc.UpdateData {
	return &basesvc.UpdateData{
		Push: map[string]interface{}{
			field: bson.M{"$each": bson.A{item}, "$position": 0},
		},
	}
}

// AddTicket prepends a ticket to the customer's ticket history.
func (s *CustomerService) AddTicket(ctx context.Context, kundennummer string, ticket models.Ticket) (models.Customer, error) {
	var zero models.Customer

	if err := global.Validate.Struct(ticket); err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	item, err := utility.ToMap(ticket)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, byKundennummer(kundennummer), prependUpdate("ticketHistory", item), opts)
}

// AddInvoice prepends an invoice to the customer's invoice history.
func (s *CustomerService) AddInvoice(ctx context.Context, kundennummer string, invoice models.Invoice) (models.Customer, error) {
	var zero models.Customer

	if err := global.Validate.Struct(invoice); err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	item, err := utility.ToMap(invoice)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, byKundennummer(kundennummer), prependUpdate("rechnungen", item), opts)
}

// AddMeterReading prepends a meter reading. Because readings are stored
// newest first, the prepend itself makes the new value the current level
// in the same atomic write. With monotonic enforcement enabled a value
// below the current level is rejected before anything is written.
func (s *CustomerService) AddMeterReading(ctx context.Context, kundennummer string, reading models.MeterReading) (models.Customer, error) {
	var zero models.Customer

	if reading.Datum == "" {
		reading.Datum = utility.TodayISO()
	}
	if reading.Einheit == "" {
		reading.Einheit = models.EinheitKwh
	}
	if reading.Erfassungsart == "" {
		reading.Erfassungsart = models.ErfassungManuell
	}

	if err := global.Validate.Struct(reading); err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	if s.monotonicReadingsEnforced() {
		current, err := s.GetCustomer(ctx, kundennummer)
		if err != nil {
			return zero, err
		}
		if current == nil {
			return zero, common.ErrNotFound
		}
		if latest := current.LatestReading(); latest != nil && reading.Stand < latest.Stand {
			return zero, common.NewError(common.ErrCodeBusinessReading,
				fmt.Sprintf("Meter reading %d is below the current level %d", reading.Stand, latest.Stand),
				common.StatusBadRequest, nil)
		}
	}

	item, err := utility.ToMap(reading)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, byKundennummer(kundennummer), prependUpdate("zaehlerstaende", item), opts)
}

// RecordVoicebotReading captures a reading coming in over the voicebot
// channel. Append and latest-level update happen in one logical
// operation, the single atomic prepend performed by AddMeterReading.
func (s *CustomerService) RecordVoicebotReading(ctx context.Context, kundennummer string, stand int64, datum string) (models.Customer, error) {
	reading := models.MeterReading{
		Datum:         datum,
		Stand:         stand,
		Erfassungsart: models.ErfassungVoicebot,
	}
	return s.AddMeterReading(ctx, kundennummer, reading)
}

// KundennummerExists reports whether the business key is already taken,
// used by the collision guard when drawing generated numbers.
func (s *CustomerService) KundennummerExists(ctx context.Context, kundennummer string) (bool, error) {
	return s.DocumentExists(ctx, byKundennummer(kundennummer))
}

func (s *CustomerService) monotonicReadingsEnforced() bool {
	return global.ServerConfig != nil && global.ServerConfig.EnforceMonotonicReadings
}

// DrawKundennummer generates a fresh kundennummer. With the collision
// guard enabled it re-draws against the live collection a bounded number
// of times; the unique index remains the hard backstop either way.
func (s *CustomerService) DrawKundennummer(ctx context.Context) (string, error) {
	if global.ServerConfig == nil || !global.ServerConfig.GuardNumberCollisions {
		return NewKundennummer(), nil
	}

	retries := global.ServerConfig.NumberCollisionRetries
	if retries < 1 {
		retries = 1
	}
	for i := 0; i < retries; i++ {
		candidate := NewKundennummer()
		exists, err := s.KundennummerExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", common.NewError(common.ErrCodeDatabaseQuery,
		"Could not draw a free kundennummer", common.StatusInternalServerError, nil)
}

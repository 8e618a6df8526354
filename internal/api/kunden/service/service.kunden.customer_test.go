package kundensvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
)

func mustRaw(t *testing.T, doc interface{}) bson.Raw {
	t.Helper()
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal test document: %v", err)
	}
	return raw
}

func wellFormedCustomer(kundennummer string) models.Customer {
	return models.Customer{
		Kundennummer: kundennummer,
		Name:         "Max Mustermann",
		Address:      models.Address{Street: "Hauptstraße 1", PostalCode: "50667", City: "Köln"},
		Vertragsart:  models.VertragsartStrom,
		Status:       models.StatusAktiv,
		Tarif:        models.TarifZuordnung{ID: "eco"},
	}
}

func TestDecodeCustomers_DropsMalformed(t *testing.T) {
	good := mustRaw(t, wellFormedCustomer("4300212345678"))
	// zaehlerstaende holding a string instead of an array fails to decode
	broken := mustRaw(t, bson.M{
		"kundennummer":   "4300200000001",
		"name":           "Kaputt",
		"zaehlerstaende": "not-an-array",
	})
	// a record without a name fails record validation
	incomplete := mustRaw(t, bson.M{
		"kundennummer": "4300200000002",
	})

	customers := decodeCustomers([]bson.Raw{good, broken, incomplete}, nil)

	if len(customers) != 1 {
		t.Fatalf("decodeCustomers returned %d customers, want 1", len(customers))
	}
	if customers[0].Kundennummer != "4300212345678" {
		t.Errorf("surviving record = %s, want 4300212345678", customers[0].Kundennummer)
	}
}

func TestDecodeCustomers_DropsRecordWithoutAddress(t *testing.T) {
	good := mustRaw(t, wellFormedCustomer("4300212345678"))
	addressless := wellFormedCustomer("4300200000003")
	addressless.Address = models.Address{}

	customers := decodeCustomers([]bson.Raw{good, mustRaw(t, addressless)}, nil)

	if len(customers) != 1 {
		t.Fatalf("decodeCustomers returned %d customers, want 1", len(customers))
	}
	if customers[0].Kundennummer != "4300212345678" {
		t.Errorf("surviving record = %s, want the one with an address", customers[0].Kundennummer)
	}
}

func TestDecodeCustomers_DropsUnknownTarif(t *testing.T) {
	good := mustRaw(t, wellFormedCustomer("4300212345678"))
	stale := wellFormedCustomer("4300200000004")
	stale.Tarif.ID = "alttarif-2019"

	catalog := map[string]bool{"basic": true, "eco": true, "premium": true}
	customers := decodeCustomers([]bson.Raw{good, mustRaw(t, stale)}, catalog)

	if len(customers) != 1 {
		t.Fatalf("decodeCustomers returned %d customers, want 1", len(customers))
	}
	if customers[0].Tarif.ID != "eco" {
		t.Errorf("surviving record has tarif %s, want eco", customers[0].Tarif.ID)
	}

	// without a catalog the tarif check is skipped
	customers = decodeCustomers([]bson.Raw{good, mustRaw(t, stale)}, nil)
	if len(customers) != 2 {
		t.Errorf("decodeCustomers without catalog returned %d customers, want 2", len(customers))
	}
}

func TestDecodeCustomers_Empty(t *testing.T) {
	if got := decodeCustomers(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("decodeCustomers(nil, nil) = %v, want empty non-nil slice", got)
	}
}

func TestValidateCustomerRecord(t *testing.T) {
	catalog := map[string]bool{"eco": true}

	ok := wellFormedCustomer("4300212345678")
	if err := ValidateCustomerRecord(&ok, catalog); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}

	noNumber := wellFormedCustomer("")
	if err := ValidateCustomerRecord(&noNumber, nil); err == nil {
		t.Error("record without kundennummer accepted")
	}

	noName := wellFormedCustomer("4300212345678")
	noName.Name = ""
	if err := ValidateCustomerRecord(&noName, nil); err == nil {
		t.Error("record without name accepted")
	}

	noAddress := wellFormedCustomer("4300212345678")
	noAddress.Address = models.Address{}
	if err := ValidateCustomerRecord(&noAddress, nil); err == nil {
		t.Error("record without address accepted")
	}

	unknownTarif := wellFormedCustomer("4300212345678")
	unknownTarif.Tarif.ID = "alttarif-2019"
	if err := ValidateCustomerRecord(&unknownTarif, catalog); err == nil {
		t.Error("record with unknown tarif accepted")
	}
	if err := ValidateCustomerRecord(&unknownTarif, nil); err != nil {
		t.Errorf("tarif check without catalog should pass: %v", err)
	}
}

func TestPrependUpdate_Shape(t *testing.T) {
	update := prependUpdate("ticketHistory", bson.M{"id": "T-2024-001"})

	pushed, ok := update.Push["ticketHistory"].(bson.M)
	if !ok {
		t.Fatalf("push value is %T, want bson.M", update.Push["ticketHistory"])
	}
	if _, ok := pushed["$each"]; !ok {
		t.Error("prepend update missing $each")
	}
	if pos, ok := pushed["$position"]; !ok || pos != 0 {
		t.Errorf("prepend update $position = %v, want 0", pos)
	}
}

func TestIsProtectedPath(t *testing.T) {
	for _, path := range []string{"_id", "kundennummer", "created_at"} {
		if !isProtectedPath(path) {
			t.Errorf("path %s should be protected", path)
		}
	}
	for _, path := range []string{"name", "address.street", "tarif.id"} {
		if isProtectedPath(path) {
			t.Errorf("path %s should be editable", path)
		}
	}
}

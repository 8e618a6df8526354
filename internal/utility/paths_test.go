package utility

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSetPath_PreservesSiblings(t *testing.T) {
	m := map[string]interface{}{
		"name": "Max Mustermann",
		"address": map[string]interface{}{
			"street":      "Hauptstraße 1",
			"postal_code": "50667",
			"city":        "Köln",
		},
	}

	if err := SetPath(m, "address.street", "Neue Straße 2"); err != nil {
		t.Fatalf("SetPath failed: %v", err)
	}

	address := m["address"].(map[string]interface{})
	if address["street"] != "Neue Straße 2" {
		t.Errorf("street = %v, want Neue Straße 2", address["street"])
	}
	if address["postal_code"] != "50667" {
		t.Errorf("sibling postal_code changed: %v", address["postal_code"])
	}
	if address["city"] != "Köln" {
		t.Errorf("sibling city changed: %v", address["city"])
	}
	if m["name"] != "Max Mustermann" {
		t.Errorf("top-level sibling name changed: %v", m["name"])
	}
}

func TestSetPath_CreatesIntermediateMaps(t *testing.T) {
	m := map[string]interface{}{}

	if err := SetPath(m, "abschlag.betrag", int64(4200)); err != nil {
		t.Fatalf("SetPath failed: %v", err)
	}

	got, ok := GetPath(m, "abschlag.betrag")
	if !ok {
		t.Fatal("abschlag.betrag not found after SetPath")
	}
	if got != int64(4200) {
		t.Errorf("abschlag.betrag = %v, want 4200", got)
	}
}

func TestSetPath_DeepPath(t *testing.T) {
	m := map[string]interface{}{}

	if err := SetPath(m, "a.b.c.d", "deep"); err != nil {
		t.Fatalf("SetPath failed: %v", err)
	}
	if got, ok := GetPath(m, "a.b.c.d"); !ok || got != "deep" {
		t.Errorf("a.b.c.d = %v (found %v), want deep", got, ok)
	}
}

func TestSetPath_RejectsEmptySegment(t *testing.T) {
	m := map[string]interface{}{}

	if err := SetPath(m, "address..street", "x"); err == nil {
		t.Error("expected error for empty path segment")
	}
	if err := SetPath(m, "", "x"); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSetPath_RejectsCrossingNonObject(t *testing.T) {
	m := map[string]interface{}{"name": "Max"}

	if err := SetPath(m, "name.first", "x"); err == nil {
		t.Error("expected error when path crosses a non-object value")
	}
}

func TestSetPath_DescendsBsonM(t *testing.T) {
	m := map[string]interface{}{
		"address": bson.M{"street": "Hauptstraße 1", "city": "Köln"},
	}

	if err := SetPath(m, "address.street", "Neue Straße 2"); err != nil {
		t.Fatalf("SetPath failed: %v", err)
	}
	if got, ok := GetPath(m, "address.street"); !ok || got != "Neue Straße 2" {
		t.Errorf("address.street = %v (found %v), want Neue Straße 2", got, ok)
	}
	if got, ok := GetPath(m, "address.city"); !ok || got != "Köln" {
		t.Errorf("sibling city = %v (found %v), want Köln", got, ok)
	}
}

func TestGetPath_Missing(t *testing.T) {
	m := map[string]interface{}{"address": map[string]interface{}{"city": "Köln"}}

	if _, ok := GetPath(m, "address.street"); ok {
		t.Error("expected missing path to report not found")
	}
	if _, ok := GetPath(m, "tarif.id"); ok {
		t.Error("expected missing branch to report not found")
	}
}

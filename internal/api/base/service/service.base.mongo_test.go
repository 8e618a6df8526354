package basesvc

import (
	"testing"
)

func TestToUpdateData_WrapsPlainMapInSet(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{
		"address.street": "Neue Straße 2",
		"name":           "Max",
	})
	if err != nil {
		t.Fatalf("ToUpdateData failed: %v", err)
	}
	if update.Set["address.street"] != "Neue Straße 2" {
		t.Errorf("Set[address.street] = %v", update.Set["address.street"])
	}
	if update.Set["name"] != "Max" {
		t.Errorf("Set[name] = %v", update.Set["name"])
	}
	if update.Push != nil || update.Unset != nil {
		t.Error("plain map must only populate $set")
	}
}

func TestToUpdateData_KeepsOperators(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{
		"$set":   map[string]interface{}{"name": "Max"},
		"$unset": map[string]interface{}{"hotline_password": ""},
	})
	if err != nil {
		t.Fatalf("ToUpdateData failed: %v", err)
	}
	if update.Set["name"] != "Max" {
		t.Errorf("Set[name] = %v", update.Set["name"])
	}
	if _, ok := update.Unset["hotline_password"]; !ok {
		t.Error("$unset operator lost")
	}
	// operator payload must not leak into $set as literal keys
	if _, ok := update.Set["$unset"]; ok {
		t.Error("$unset leaked into $set")
	}
}

func TestToUpdateData_Passthrough(t *testing.T) {
	in := &UpdateData{Set: map[string]interface{}{"name": "Max"}}
	out, err := ToUpdateData(in)
	if err != nil {
		t.Fatalf("ToUpdateData failed: %v", err)
	}
	if out != in {
		t.Error("*UpdateData input must pass through unchanged")
	}
}

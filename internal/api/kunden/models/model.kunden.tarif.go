package models

// Tariff types
const (
	TarifTypeBasic   = "basic"
	TarifTypeEco     = "eco"
	TarifTypePremium = "premium"
)

// Tariff is one entry of the tariff catalog. The catalog id doubles as
// the document key; PricePerKwh is in cents and is the authoritative
// stored price. The display fields are not stored, they derive from Type
// through DisplayForType.
type Tariff struct {
	ID          string `json:"id" bson:"_id" validate:"required"`
	Type        string `json:"type" bson:"type" index:"single:1"`
	PricePerKwh int64  `json:"pricePerKwh" bson:"pricePerKwh" validate:"gte=0"`
	Aktiv       bool   `json:"aktiv" bson:"aktiv"`
	CreatedAt   int64  `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt   int64  `json:"updated_at" bson:"updated_at,omitempty"`
}

// TarifDisplay is the derived display shape of a tariff type. Grundpreis
// is cents per month, Arbeitspreis cents per kWh.
type TarifDisplay struct {
	Name             string   `json:"name"`
	Grundpreis       int64    `json:"grundpreis"`
	Arbeitspreis     int64    `json:"arbeitspreis"`
	Vertragslaufzeit string   `json:"vertragslaufzeit"`
	Kuendigungsfrist string   `json:"kuendigungsfrist"`
	Besonderheiten   []string `json:"besonderheiten,omitempty"`
}

// DisplayForType is the single lookup computing the display fields of a
// tariff type. Unknown types get a neutral fallback instead of an error
// so a stored record with a stale type still renders.
func DisplayForType(tarifType string) TarifDisplay {
	switch tarifType {
	case TarifTypeBasic:
		return TarifDisplay{
			Name:             "Basis Strom",
			Grundpreis:       995,
			Arbeitspreis:     32,
			Vertragslaufzeit: "unbefristet",
			Kuendigungsfrist: "4 Wochen",
		}
	case TarifTypeEco:
		return TarifDisplay{
			Name:             "Öko Strom Plus",
			Grundpreis:       1195,
			Arbeitspreis:     35,
			Vertragslaufzeit: "12 Monate",
			Kuendigungsfrist: "6 Wochen",
			Besonderheiten:   []string{"100% Strom aus erneuerbaren Energien", "Klimaneutral"},
		}
	case TarifTypePremium:
		return TarifDisplay{
			Name:             "Premium Komfort",
			Grundpreis:       1495,
			Arbeitspreis:     38,
			Vertragslaufzeit: "24 Monate",
			Kuendigungsfrist: "3 Monate",
			Besonderheiten:   []string{"Preisgarantie", "Bevorzugter Service"},
		}
	default:
		return TarifDisplay{Name: tarifType, Vertragslaufzeit: "unbefristet", Kuendigungsfrist: "4 Wochen"}
	}
}

// Assignment returns the value copy stored on a customer when this tariff
// is assigned. The per-kWh price comes from the stored catalog value, the
// remaining fields from the type table.
func (t Tariff) Assignment() TarifZuordnung {
	display := DisplayForType(t.Type)
	return TarifZuordnung{
		ID:               t.ID,
		Name:             display.Name,
		Grundpreis:       display.Grundpreis,
		Arbeitspreis:     t.PricePerKwh,
		Vertragslaufzeit: display.Vertragslaufzeit,
		Kuendigungsfrist: display.Kuendigungsfrist,
		Besonderheiten:   display.Besonderheiten,
	}
}

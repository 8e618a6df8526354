package utility

import (
	"testing"
)

func TestCentsToEuro_Exact(t *testing.T) {
	if got := CentsToEuro(123456).String(); got != "1234.56" {
		t.Errorf("CentsToEuro(123456) = %s, want 1234.56", got)
	}
	if got := CentsToEuro(1).String(); got != "0.01" {
		t.Errorf("CentsToEuro(1) = %s, want 0.01", got)
	}
}

func TestFormatEuro_German(t *testing.T) {
	if got := FormatEuro(123456); got != "1.234,56 €" {
		t.Errorf("FormatEuro(123456) = %q, want \"1.234,56 €\"", got)
	}
	if got := FormatEuro(0); got != "0,00 €" {
		t.Errorf("FormatEuro(0) = %q, want \"0,00 €\"", got)
	}
}

func TestFormatDateDE(t *testing.T) {
	if got := FormatDateDE("2024-03-15"); got != "15.03.2024" {
		t.Errorf("FormatDateDE(2024-03-15) = %q, want 15.03.2024", got)
	}
	// malformed dates pass through unchanged
	if got := FormatDateDE("kein datum"); got != "kein datum" {
		t.Errorf("FormatDateDE(kein datum) = %q, want unchanged", got)
	}
}

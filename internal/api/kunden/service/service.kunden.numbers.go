package kundensvc

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/TrustedSamu/sap-energy-portal/internal/api/kunden/models"
)

// Identifier prefixes. The shapes are shared with downstream systems.
const (
	KundennummerPrefix   = "43002"
	CustomerNumberPrefix = "KND"
	ZaehlernummerPrefix  = "ZN-"
	VertragsnummerPrefix = "V-"
)

// randomDigits returns n random decimal digits.
func randomDigits(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

// NewKundennummer draws a new business key, the regional prefix followed
// by eight digits.
func NewKundennummer() string {
	return KundennummerPrefix + randomDigits(8)
}

// NewCustomerNumber draws a new display customer number.
func NewCustomerNumber() string {
	return CustomerNumberPrefix + randomDigits(8)
}

// NewZaehlernummer draws a new meter number.
func NewZaehlernummer() string {
	return ZaehlernummerPrefix + randomDigits(6)
}

// NewVertragsnummer draws a new contract number.
func NewVertragsnummer() string {
	return VertragsnummerPrefix + randomDigits(6)
}

// NextTicketID generates the id of the next support ticket as
// T-<year>-<seq> with the sequence zero-padded to three digits.
//
// In running mode (perYear false) the sequence is the maximum numeric
// suffix across the whole history plus one, regardless of year; a history
// of T-2023-001, T-2024-002, T-2024-003 yields T-2024-004. With perYear
// true only tickets of the given year count and the sequence restarts at
// 001 each January.
func NextTicketID(history []models.Ticket, year int, perYear bool) string {
	maxSeq := 0
	yearPrefix := fmt.Sprintf("T-%d-", year)

	for _, t := range history {
		if perYear && !strings.HasPrefix(t.TicketID, yearPrefix) {
			continue
		}
		seq := parseTicketSeq(t.TicketID)
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	return fmt.Sprintf("T-%d-%03d", year, maxSeq+1)
}

// NextTicketIDNow is NextTicketID for the current year.
func NextTicketIDNow(history []models.Ticket, perYear bool) string {
	return NextTicketID(history, time.Now().Year(), perYear)
}

// NextInvoiceID generates the id of the next invoice as R-<year>-<seq>,
// continuing the highest sequence found in the existing history.
func NextInvoiceID(history []models.Invoice) string {
	maxSeq := 0
	for _, inv := range history {
		parts := strings.Split(inv.Rechnungsnummer, "-")
		if len(parts) != 3 || parts[0] != "R" {
			continue
		}
		if seq, err := strconv.Atoi(parts[2]); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("R-%d-%03d", time.Now().Year(), maxSeq+1)
}

// DefaultZahlungsfrist derives the due date of an invoice, fourteen days
// after the invoice date. A date that does not parse is returned
// unchanged.
func DefaultZahlungsfrist(datum string) string {
	t, err := time.Parse("2006-01-02", datum)
	if err != nil {
		return datum
	}
	return t.AddDate(0, 0, 14).Format("2006-01-02")
}

// parseTicketSeq extracts the numeric suffix of a ticket id, 0 when the
// id does not follow the T-<year>-<seq> format.
func parseTicketSeq(id string) int {
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] != "T" {
		return 0
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}

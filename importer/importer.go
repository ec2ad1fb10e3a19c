package importer

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/adzibilal/kondanginbackend/models"
	"github.com/adzibilal/kondanginbackend/repository"
)

// Cell is a raw tabular value. Import sources are untyped: the CSV path
// yields strings, and JSON rows carry session/totalGuest as either numbers or
// numeric strings depending on the client. Decoding keeps the raw text so
// coercion happens per row and one bad cell never aborts the batch.
type Cell string

func (c *Cell) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Cell(s)
		return nil
	}
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*c = ""
		return nil
	}
	*c = Cell(raw)
	return nil
}

// Row is one parsed guest entry from a bulk import.
type Row struct {
	Name       string `json:"name"`
	Session    Cell   `json:"session"`
	TotalGuest Cell   `json:"totalGuest"`
	Whatsapp   string `json:"whatsapp"`
}

// RowError records why a row was rejected.
type RowError struct {
	Name   string `json:"name"`
	Reason string `json:"error"`
}

// Result reports per-row outcomes of an import, in input order.
type Result struct {
	Succeeded []string   `json:"success"`
	Failed    []RowError `json:"failed"`
}

const (
	reasonMissingFields   = "Missing required fields"
	reasonInvalidSession  = "Invalid session"
	reasonInvalidTotal    = "Invalid totalGuest"
	reasonCreationFailure = "Failed to create guest"
)

// Import creates one guest per row. Rows are processed independently and in
// order; validation or persistence failure on one row is recorded and the
// batch continues. Every successful row gets its own freshly minted slug,
// including rows with duplicate names.
func Import(guests repository.GuestRepository, rows []Row) Result {
	result := Result{
		Succeeded: []string{},
		Failed:    []RowError{},
	}

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		sessionCell := strings.TrimSpace(string(row.Session))
		totalCell := strings.TrimSpace(string(row.TotalGuest))
		if name == "" || sessionCell == "" || totalCell == "" {
			result.Failed = append(result.Failed, RowError{Name: displayName(name), Reason: reasonMissingFields})
			continue
		}

		session, err := strconv.Atoi(sessionCell)
		if err != nil || (session != 1 && session != 2) {
			result.Failed = append(result.Failed, RowError{Name: name, Reason: reasonInvalidSession})
			continue
		}

		totalGuest, err := strconv.Atoi(totalCell)
		if err != nil || totalGuest < 1 {
			result.Failed = append(result.Failed, RowError{Name: name, Reason: reasonInvalidTotal})
			continue
		}

		guest := &models.Guest{
			Name:       name,
			Session:    session,
			TotalGuest: totalGuest,
			Whatsapp:   strings.TrimSpace(row.Whatsapp),
		}
		if err := guests.Create(guest); err != nil {
			result.Failed = append(result.Failed, RowError{Name: name, Reason: reasonCreationFailure})
			continue
		}

		result.Succeeded = append(result.Succeeded, name)
	}

	return result
}

func displayName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

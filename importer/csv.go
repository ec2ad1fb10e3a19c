package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV splits raw tabular text into import rows. Expected columns are
// name, session, totalGuest, whatsapp; a header line is skipped when the
// first cell reads "name". Short records are padded so row validation in
// Import reports them as missing fields instead of failing the whole parse.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV input: %w", err)
	}

	rows := make([]Row, 0, len(records))
	for i, record := range records {
		if i == 0 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "name") {
			continue
		}
		for len(record) < 4 {
			record = append(record, "")
		}
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}
		rows = append(rows, Row{
			Name:       record[0],
			Session:    Cell(record[1]),
			TotalGuest: Cell(record[2]),
			Whatsapp:   record[3],
		})
	}

	return rows, nil
}

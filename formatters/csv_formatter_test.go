package formatters

import (
	"encoding/csv"
	"strings"
	"testing"
)

func TestCSVFormat(t *testing.T) {
	data, err := NewCSVFormatter().Format(sampleInvoice())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one value row, got %d lines", len(lines))
	}

	wantHeader := "from_name,from_address,from_zip,from_city,from_country,from_email,from_phone," +
		"to_name,to_address,to_zip,to_city,to_country,to_email,to_phone," +
		"invoice_number,issue_date,due_date,currency," +
		"bank_name,account_name,account_number," +
		"discount_enabled,discount_amount,discount_mode," +
		"tax_enabled,tax_amount,tax_mode," +
		"shipping_enabled,shipping_amount,shipping_mode," +
		"additional_notes,payment_terms,status"
	if lines[0] != wantHeader {
		t.Errorf("header mismatch:\n got %s\nwant %s", lines[0], wantHeader)
	}

	// Every value is quoted, embedded quotes are doubled.
	if !strings.HasPrefix(lines[1], `"Acme Design & Co",`) {
		t.Errorf("values must be quoted, got %s", lines[1])
	}
	if !strings.Contains(lines[1], `"He said ""thanks""",`) {
		t.Errorf("embedded quotes must be doubled, got %s", lines[1])
	}

	// The doubled-quote escaping keeps the row parseable by a standard
	// CSV reader.
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 2 || len(records[0]) != len(records[1]) {
		t.Fatalf("unexpected record shape: %v", records)
	}

	row := map[string]string{}
	for i, key := range records[0] {
		row[key] = records[1][i]
	}
	for key, want := range map[string]string{
		"invoice_number":   "INV-42",
		"currency":         "USD",
		"discount_enabled": "true",
		"discount_amount":  "10",
		"discount_mode":    "fixed",
		"tax_mode":         "percentage",
		"shipping_enabled": "false",
		"status":           "pending",
		"additional_notes": `He said "thanks"`,
	} {
		if row[key] != want {
			t.Errorf("%s = %q, want %q", key, row[key], want)
		}
	}

	// Line items are intentionally absent from the flat form.
	if strings.Contains(string(data), "Design work") {
		t.Error("line items must not leak into the tabular-flat export")
	}
}

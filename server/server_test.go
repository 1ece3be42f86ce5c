package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/faturalab/fatura/api"
	"github.com/faturalab/fatura/store"
	"github.com/faturalab/fatura/totals"
)

// memRepo is an in-memory Repository for handler tests.
type memRepo struct {
	seq      int
	invoices map[string]api.Invoice
}

func newMemRepo() *memRepo {
	return &memRepo{invoices: map[string]api.Invoice{}}
}

func (m *memRepo) Create(_ context.Context, inv *api.Invoice) error {
	m.seq++
	inv.ID = fmt.Sprintf("inv-%d", m.seq)
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Minute)
	inv.CreatedAt = now
	inv.UpdatedAt = now
	totals.Apply(inv)
	m.invoices[inv.ID] = *inv
	return nil
}

func (m *memRepo) Get(_ context.Context, id string) (*api.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	totals.Apply(&inv)
	return &inv, nil
}

func (m *memRepo) List(_ context.Context) ([]*api.Invoice, error) {
	out := make([]*api.Invoice, 0, len(m.invoices))
	for id := range m.invoices {
		inv := m.invoices[id]
		totals.Apply(&inv)
		out = append(out, &inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) Replace(_ context.Context, id string, inv *api.Invoice) error {
	existing, ok := m.invoices[id]
	if !ok {
		return store.ErrNotFound
	}
	inv.ID = existing.ID
	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = existing.UpdatedAt.Add(time.Minute)
	totals.Apply(inv)
	m.invoices[id] = *inv
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.invoices[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.invoices, id)
	return nil
}

func (m *memRepo) Duplicate(ctx context.Context, id string) (*api.Invoice, error) {
	original, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := store.CopyOf(*original, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if err := m.Create(ctx, &dup); err != nil {
		return nil, err
	}
	return &dup, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	srv := httptest.NewServer(New(repo).Router())
	t.Cleanup(srv.Close)
	return srv, repo
}

func testInvoice() api.Invoice {
	return api.Invoice{
		BillTo:  api.Party{Name: "Globex LLC", Email: "ap@globex.example"},
		Details: api.Details{Number: "INV-7", IssueDate: "2025-03-01", Currency: "USD"},
		LineItems: []api.LineItem{
			{ID: 1, Name: "Design work", Quantity: 3, Rate: 19.99},
		},
		Summary: api.Summary{Status: api.StatusPending},
	}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func TestCreateAndGet(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/invoices", testInvoice())
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}

	var created api.Invoice
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created invoice has no identifier")
	}
	if created.Total != 59.97 {
		t.Errorf("total = %v, want 59.97 (computed server-side)", created.Total)
	}

	getResp, err := http.Get(srv.URL + "/api/invoices/" + created.ID)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", getResp.StatusCode)
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	inv := testInvoice()
	inv.Summary.Status = "archived"
	resp := postJSON(t, srv.URL+"/api/invoices", inv)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a status outside the closed set", resp.StatusCode)
	}
}

func TestCreateDefaultsEmptyStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	inv := testInvoice()
	inv.Summary.Status = ""
	resp := postJSON(t, srv.URL+"/api/invoices", inv)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var created api.Invoice
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if created.Summary.Status != api.StatusPending {
		t.Errorf("status = %q, want pending default", created.Summary.Status)
	}
}

func TestGetMissingInvoice(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/invoices/nope")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDuplicate(t *testing.T) {
	srv, repo := newTestServer(t)

	original := testInvoice()
	if err := repo.Create(context.Background(), &original); err != nil {
		t.Fatal(err)
	}

	resp := postJSON(t, srv.URL+"/api/invoices/"+original.ID+"/duplicate", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var dup api.Invoice
	if err := json.NewDecoder(resp.Body).Decode(&dup); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if dup.Details.Number != "INV-7-Copy" {
		t.Errorf("number = %q, want INV-7-Copy", dup.Details.Number)
	}
	if dup.ID == original.ID {
		t.Error("duplicate must get a fresh identifier")
	}
}

func TestDelete(t *testing.T) {
	srv, repo := newTestServer(t)

	inv := testInvoice()
	if err := repo.Create(context.Background(), &inv); err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/invoices/"+inv.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}

	if _, err := repo.Get(context.Background(), inv.ID); err != store.ErrNotFound {
		t.Errorf("invoice still present after delete: %v", err)
	}
}

func TestExportEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/invoices/export", map[string]any{
		"format": "csv",
		"data":   testInvoice(),
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, `filename="invoice.csv"`) {
		t.Errorf("content disposition = %q, want an invoice.csv attachment", cd)
	}
}

func TestExportEndpointUnsupportedFormat(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/invoices/export", map[string]any{
		"format": "docx",
		"data":   testInvoice(),
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !strings.Contains(body["error"], "unsupported format") {
		t.Errorf("error = %q, want it to name the unsupported format", body["error"])
	}
}

func TestPDFEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)

	inv := testInvoice()
	if err := repo.Create(context.Background(), &inv); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(srv.URL + "/api/invoices/" + inv.ID + "/pdf")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "invoice-INV-7.pdf") {
		t.Errorf("content disposition = %q, want the numbered pdf filename", cd)
	}
}

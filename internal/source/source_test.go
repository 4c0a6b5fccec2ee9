package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

func TestHTTPSourceRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("Dados,Valor\r\nwhatsapp,\"(11) 9999-0000\"\r\n"))
		default:
			http.Error(w, "gone", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(HTTPConfig{Timeout: 5 * time.Second})

	rows, err := src.Rows(context.Background(), domain.Sheet{Type: domain.SheetContact, URL: srv.URL + "/ok"})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"Dados", "Valor"}, {"whatsapp", "(11) 9999-0000"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows=%q want %q", rows, want)
	}

	if _, err := src.Rows(context.Background(), domain.Sheet{Type: domain.SheetContact, URL: srv.URL + "/missing"}); err == nil {
		t.Fatal("non-2xx status should fail")
	}
	if _, err := src.Rows(context.Background(), domain.Sheet{Type: domain.SheetContact}); err == nil {
		t.Fatal("missing url should fail")
	}
}

func TestHTTPSourceRejectsOversizedSheet(t *testing.T) {
	const sheet = "Dados,Valor\r\nwhatsapp,11999990000\r\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sheet))
	}))
	defer srv.Close()

	exact := NewHTTPSource(HTTPConfig{Timeout: 5 * time.Second, MaxBytes: int64(len(sheet))})
	if _, err := exact.Rows(context.Background(), domain.Sheet{Type: domain.SheetContact, URL: srv.URL}); err != nil {
		t.Fatalf("sheet at the limit should pass: %v", err)
	}

	small := NewHTTPSource(HTTPConfig{Timeout: 5 * time.Second, MaxBytes: int64(len(sheet) - 1)})
	rows, err := small.Rows(context.Background(), domain.Sheet{Type: domain.SheetContact, URL: srv.URL})
	if !errors.Is(err, ErrSheetTooLarge) {
		t.Fatalf("want ErrSheetTooLarge, got %v (rows %q)", err, rows)
	}
}

func TestXLSXSourceRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardapio.xlsx")

	f := excelize.NewFile()
	if _, err := f.NewSheet("Bairros"); err != nil {
		t.Fatal(err)
	}
	_ = f.SetSheetRow("Bairros", "A1", &[]interface{}{"Bairros", "Valor Frete", "Observação"})
	_ = f.SetSheetRow("Bairros", "A2", &[]interface{}{"Centro", "5,00"})
	_ = f.SetSheetRow("Bairros", "A4", &[]interface{}{"Vila Nova", "7,50", "longe"})
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	src := NewXLSXSource(path, nil)
	rows, err := src.Rows(context.Background(), domain.Sheet{Type: domain.SheetDelivery, Range: "Bairros!A:C"})
	if err != nil {
		t.Fatal(err)
	}

	want := [][]string{
		{"Bairros", "Valor Frete", "Observação"},
		{"Centro", "5,00", ""},
		{"Vila Nova", "7,50", "longe"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows=%q want %q", rows, want)
	}

	if _, err := src.Rows(context.Background(), domain.Sheet{Type: domain.SheetDelivery, Range: "Missing"}); err == nil {
		t.Fatal("unknown tab should fail")
	}
}

func TestCellRows(t *testing.T) {
	got := padRows(cellRows([][]interface{}{
		{"ID", "Nome", "Preço"},
		{},
		{"", " "},
		{"1", "Coca", 7.5},
		{"2"},
	}))
	want := [][]string{
		{"ID", "Nome", "Preço"},
		{"1", "Coca", "7.5"},
		{"2", "", ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rows=%q want %q", got, want)
	}
}

func TestExportURL(t *testing.T) {
	got := ExportURL("abc", "123")
	if got != "https://docs.google.com/spreadsheets/d/abc/export?format=csv&gid=123" {
		t.Fatalf("ExportURL=%s", got)
	}
}

package core

import (
	"context"
	"encoding/csv"
	"errors"
	"io/fs"
	"testing"
)

func TestIngestFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "price_1.csv", "Товар,Цена,Фасовка\nЯблоко,100,2\n")

	in := &Ingestor{}
	res := in.IngestFile(context.Background(), path)
	if !res.OK() {
		t.Fatalf("IngestFile error = %v", res.Err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}

	want := ProductRecord{Name: "Яблоко", Price: 100, Weight: 2, SourceFile: path, UnitPrice: 50}
	if res.Records[0] != want {
		t.Errorf("record = %+v, want %+v", res.Records[0], want)
	}
	if res.Records[0].UnitPriceText() != "50.00" {
		t.Errorf("UnitPriceText() = %q, want %q", res.Records[0].UnitPriceText(), "50.00")
	}
}

func TestIngestFile_BOMAndNoisyHeaders(t *testing.T) {
	dir := t.TempDir()
	content := "\uFEFF№,#Наименование, Розница ,\"Масса,,\"\n1,Сахар,80,1\n2,Соль,30,0.5\n"
	path := writeTestFile(t, dir, "Price_shop.csv", content)

	res := (&Ingestor{}).IngestFile(context.Background(), path)
	if !res.OK() {
		t.Fatalf("IngestFile error = %v", res.Err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	if res.Records[1].Name != "Соль" || res.Records[1].UnitPrice != 60 {
		t.Errorf("second record = %+v", res.Records[1])
	}
	if res.Mapping.Name.Index != 1 || res.Mapping.Price.Index != 2 || res.Mapping.Weight.Index != 3 {
		t.Errorf("mapping = %+v", res.Mapping)
	}
}

func TestIngestFile_ZeroWeight(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "price.csv", "название,цена,вес\nПакет,5,0\n")

	res := (&Ingestor{}).IngestFile(context.Background(), path)
	if !res.OK() {
		t.Fatalf("IngestFile error = %v", res.Err)
	}
	if got := res.Records[0].UnitPrice; got != 0 {
		t.Errorf("UnitPrice = %v, want 0", got)
	}
}

func TestIngestFile_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "price.csv", "Товар,Price Total,Фасовка\nЯблоко,100,2\n")

	res := (&Ingestor{}).IngestFile(context.Background(), path)
	if res.OK() {
		t.Fatal("IngestFile expected error for missing price column")
	}
	if len(res.Records) != 0 {
		t.Errorf("records = %d, want 0", len(res.Records))
	}

	var fileErr *FileError
	if !errors.As(res.Err, &fileErr) || fileErr.Path != path {
		t.Fatalf("error = %v, want *FileError for %s", res.Err, path)
	}
	var mc *MissingColumnError
	if !errors.As(res.Err, &mc) || mc.Field != FieldPrice {
		t.Errorf("error = %v, want missing price column", res.Err)
	}
}

func TestIngestFile_RowPolicy(t *testing.T) {
	content := "Товар,Цена,Фасовка\nЯблоко,100,2\nГруша,дорого,1\nСлива,,1\nВишня,30\nКиви,60,3\n"

	t.Run("skip", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "price.csv", content)

		res := (&Ingestor{RowPolicy: RowSkip}).IngestFile(context.Background(), path)
		if !res.OK() {
			t.Fatalf("IngestFile error = %v", res.Err)
		}
		if len(res.Records) != 2 {
			t.Fatalf("records = %d, want 2", len(res.Records))
		}
		if len(res.RowErrors) != 3 {
			t.Fatalf("row errors = %d, want 3", len(res.RowErrors))
		}

		first := res.RowErrors[0]
		if first.Line != 3 || first.Field != FieldPrice || first.Value != "дорого" {
			t.Errorf("first row error = %+v", first)
		}
		if !errors.Is(res.RowErrors[1], ErrEmptyValue) {
			t.Errorf("second row error = %v, want ErrEmptyValue", res.RowErrors[1])
		}
		if !errors.Is(res.RowErrors[2], ErrShortRow) || res.RowErrors[2].Field != FieldWeight {
			t.Errorf("third row error = %v, want short row on weight", res.RowErrors[2])
		}
	})

	t.Run("fail", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "price.csv", content)

		res := (&Ingestor{RowPolicy: RowFail}).IngestFile(context.Background(), path)
		if res.OK() {
			t.Fatal("IngestFile expected error under fail policy")
		}
		if len(res.Records) != 0 {
			t.Errorf("records = %d, want 0", len(res.Records))
		}
		var rowErr *RowError
		if !errors.As(res.Err, &rowErr) || rowErr.Line != 3 {
			t.Errorf("error = %v, want row error on line 3", res.Err)
		}
	})
}

func TestIngestFile_EmptyName(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "price.csv", "Товар,Цена,Фасовка\n  ,100,2\n")

	res := (&Ingestor{}).IngestFile(context.Background(), path)
	if len(res.Records) != 0 || len(res.RowErrors) != 1 {
		t.Fatalf("records = %d, row errors = %d", len(res.Records), len(res.RowErrors))
	}
	if res.RowErrors[0].Field != FieldName {
		t.Errorf("row error field = %v, want name", res.RowErrors[0].Field)
	}
}

func TestIngestFile_FileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		path  string
		check func(error) bool
	}{
		{
			name:  "not found",
			path:  dir + "/missing_price.csv",
			check: func(err error) bool { return errors.Is(err, fs.ErrNotExist) },
		},
		{
			name:  "empty file",
			path:  writeTestFile(t, dir, "empty_price.csv", ""),
			check: func(err error) bool { return errors.Is(err, ErrEmptyFile) },
		},
		{
			name:  "invalid encoding",
			path:  writeTestFile(t, dir, "cp1251_price.csv", "\xd2\xee\xe2\xe0\xf0,\xd6\xe5\xed\xe0,\xc2\xe5\xf1\n"),
			check: func(err error) bool { return errors.Is(err, ErrEncoding) },
		},
		{
			name: "malformed quotes",
			path: writeTestFile(t, dir, "bad_price.csv", "Товар,Цена,Фасовка\n\"Яблоко,100,2\nГруша,1,1\n"),
			check: func(err error) bool {
				var pe *csv.ParseError
				return errors.As(err, &pe)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := (&Ingestor{}).IngestFile(context.Background(), tt.path)
			if res.OK() {
				t.Fatal("IngestFile expected error")
			}
			if len(res.Records) != 0 {
				t.Errorf("records = %d, want 0", len(res.Records))
			}
			if !tt.check(res.Err) {
				t.Errorf("unexpected error = %v", res.Err)
			}
		})
	}
}

func TestIngestFile_TooLarge(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "price.csv", "Товар,Цена,Фасовка\nЯблоко,100,2\n")

	res := (&Ingestor{MaxFileSize: 10}).IngestFile(context.Background(), path)
	if !errors.Is(res.Err, ErrFileTooLarge) {
		t.Errorf("error = %v, want ErrFileTooLarge", res.Err)
	}
}

func TestParseRowPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    RowPolicy
		wantErr bool
	}{
		{"skip", RowSkip, false},
		{"FAIL", RowFail, false},
		{"", RowSkip, false},
		{"ignore", RowSkip, true},
	}
	for _, tt := range tests {
		got, err := ParseRowPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRowPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseRowPolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

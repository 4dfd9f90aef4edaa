package core

import (
	"reflect"
	"testing"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Товар", "товар"},
		{"  ЦЕНА  ", "цена"},
		{"#Фасовка", "фасовка"},
		{"Масса,,", "масса"},
		{"# товар", " товар"},
		{",#,Цена", "цена"},
		{"#,#,Вес", "вес"},
		{"Price Total", "price total"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeHeader(tt.in); got != tt.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveHeaders_AllVariants(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    [3]int // name, price, weight
	}{
		{"canonical", []string{"Товар", "Цена", "Фасовка"}, [3]int{0, 1, 2}},
		{"reordered", []string{"вес", "розница", "наименование"}, [3]int{2, 1, 0}},
		{"with noise columns", []string{"№", "Название", "Артикул", "Масса", "Цена"}, [3]int{1, 4, 3}},
		{"product synonym", []string{"ПРОДУКТ", " цена ", "#вес"}, [3]int{0, 1, 2}},
		{"comma revealed by hash", []string{"Товар", ",#,Цена", "Вес"}, [3]int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ResolveHeaders(tt.headers)
			if err := m.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			got := [3]int{m.Name.Index, m.Price.Index, m.Weight.Index}
			if got != tt.want {
				t.Errorf("indexes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveHeaders_FirstMatchWins(t *testing.T) {
	m := ResolveHeaders([]string{"товар", "розница", "цена", "название", "фасовка", "вес"})

	if m.Name.Index != 0 || m.Name.Header != "товар" {
		t.Errorf("Name = %+v, want index 0", m.Name)
	}
	if m.Price.Index != 1 || m.Price.Header != "розница" {
		t.Errorf("Price = %+v, want index 1", m.Price)
	}
	if m.Weight.Index != 4 {
		t.Errorf("Weight.Index = %d, want 4", m.Weight.Index)
	}
}

func TestResolveHeaders_KeepsRawHeader(t *testing.T) {
	m := ResolveHeaders([]string{" #Товар ", "Цена", "Вес"})
	if m.Name.Header != " #Товар " {
		t.Errorf("Name.Header = %q, want raw header", m.Name.Header)
	}
}

func TestResolveHeaders_SynonymExact(t *testing.T) {
	m := ResolveHeaders([]string{"Товар", "Price Total", "Цена за кг", "Фасовка"})

	if m.Price.Found {
		t.Fatalf("Price resolved to %+v, want unresolved", m.Price)
	}

	err := m.Validate()
	mc, ok := err.(*MissingColumnError)
	if !ok {
		t.Fatalf("Validate() error = %T %v, want *MissingColumnError", err, err)
	}
	if mc.Field != FieldPrice {
		t.Errorf("missing field = %v, want price", mc.Field)
	}
	if mc.Error() != "missing column price" {
		t.Errorf("Error() = %q", mc.Error())
	}
}

func TestColumnMapping_Missing(t *testing.T) {
	m := ResolveHeaders([]string{"вес"})
	want := []Field{FieldName, FieldPrice}
	if got := m.Missing(); !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}

	if err := m.Validate(); err.(*MissingColumnError).Field != FieldName {
		t.Errorf("Validate() reported %v, want name first", err)
	}

	if got := ResolveHeaders(nil).Missing(); len(got) != 3 {
		t.Errorf("Missing() on empty header = %v, want all three", got)
	}
}

func TestSynonyms_ReturnsCopy(t *testing.T) {
	s := Synonyms(FieldPrice)
	s[0] = "changed"
	if Synonyms(FieldPrice)[0] != "цена" {
		t.Error("Synonyms exposed internal slice")
	}
	if Synonyms(Field(9)) != nil {
		t.Error("Synonyms of unknown field should be nil")
	}
}

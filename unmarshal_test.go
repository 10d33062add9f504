package driverkit

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

func createDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("goquery.NewDocumentFromReader: %v", err)
	}
	return doc
}

func TestUnmarshal(t *testing.T) {
	html := `
	<div class="product">
		<h1>Widget</h1>
		<a class="more" href="/products/42">details</a>
		<span class="stock">stock: 1,234</span>
		<span class="price">1,980.50 yen</span>
		<span class="date">2024-03-01</span>
		<ul><li>red</li><li>green</li><li>blue</li></ul>
	</div>`

	type product struct {
		Name   string    `find:"h1"`
		Link   string    `find:"a.more" attr:"href"`
		Stock  int       `find:".stock" re:"stock: (.*)"`
		Price  float64   `find:".price"`
		Date   time.Time `find:".date" time:"2006-01-02"`
		Colors []string  `find:"li"`
		Bonus  *string   `find:".bonus"`
	}

	doc := createDocument(t, html)

	var got product
	if err := Unmarshal(&got, doc.Find(".product"), UnmarshalOption{}); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	want := product{
		Name:   "Widget",
		Link:   "/products/42",
		Stock:  1234,
		Price:  1980.50,
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Colors: []string{"red", "green", "blue"},
		Bonus:  nil,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%v", diff)
	}
}

func TestUnmarshal_sliceOfStructs(t *testing.T) {
	html := `
	<table>
		<tr class="row"><td class="k">a</td><td class="v">1</td></tr>
		<tr class="row"><td class="k">b</td><td class="v">2</td></tr>
	</table>`

	type row struct {
		Key   string `find:".k"`
		Value int    `find:".v"`
	}

	doc := createDocument(t, html)

	var got []row
	if err := Unmarshal(&got, doc.Find("tr.row"), UnmarshalOption{}); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	want := []row{{"a", 1}, {"b", 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%v", diff)
	}
}

func TestUnmarshal_errors(t *testing.T) {
	doc := createDocument(t, `<p>x</p>`)

	t.Run("non-pointer", func(t *testing.T) {
		var s string
		err := Unmarshal(s, doc.Find("p"), UnmarshalOption{})
		if _, ok := err.(UnmarshalMustBePointerError); !ok {
			t.Errorf("Unmarshal() error = %v, want UnmarshalMustBePointerError", err)
		}
	})

	t.Run("unexported field", func(t *testing.T) {
		var v struct {
			hidden string `find:"p"`
		}
		err := Unmarshal(&v, doc.Selection, UnmarshalOption{})
		if err == nil {
			t.Fatalf("Unmarshal() error = nil, want field error")
		}
		if !strings.Contains(err.Error(), "hidden") {
			t.Errorf("Unmarshal() error = %v, want mention of the field", err)
		}
		_ = v.hidden
	})

	t.Run("time tag required for time.Time", func(t *testing.T) {
		var v struct {
			When time.Time `find:"p"`
		}
		if err := Unmarshal(&v, doc.Selection, UnmarshalOption{}); err == nil {
			t.Errorf("Unmarshal() error = nil, want missing time tag error")
		}
	})
}

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,234", 1234},
		{" 12.5 kg", 12.5},
		{"1,980.50 円", 1980.50},
	}
	for _, tt := range tests {
		got, err := ExtractNumber(tt.in)
		if err != nil {
			t.Errorf("ExtractNumber(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnmarshalElement(t *testing.T) {
	el := interactableElement()
	el.html = `<div class="card"><h2>Gadget</h2><span class="price">42</span></div>`

	type card struct {
		Title string `find:"h2"`
		Price int    `find:".price"`
	}

	var got card
	if err := UnmarshalElement(el, &got, UnmarshalOption{}); err != nil {
		t.Fatalf("UnmarshalElement() error: %v", err)
	}
	want := card{Title: "Gadget", Price: 42}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%v", diff)
	}
}

package dict

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mui Ne", "muine"},
		{"mui-ne", "muine"},
		{"  MUI\tNE ", "muine"},
		{"Mũi Né", "mũiné"},
		{"", ""},
		{" - ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIndexLookup(t *testing.T) {
	idx := MustNew([]Entry{
		{Keyword: "mui ne", Fragments: []string{"mui", "ne"}, Type: TypePhrase},
		{Keyword: "Taxi", Type: TypeWord},
	})

	e, ok := idx.Lookup("muine")
	if !ok {
		t.Fatal("expected muine to be found")
	}
	if e.Keyword != "mui ne" || e.Type != TypePhrase {
		t.Errorf("unexpected entry %+v", e)
	}

	if _, ok := idx.Lookup("Mui Ne"); ok {
		t.Error("Lookup takes a normalized key; raw text should miss")
	}
	if _, ok := idx.Find("MUI-NE"); !ok {
		t.Error("Find should normalize before lookup")
	}
	if _, ok := idx.Find("taxi"); !ok {
		t.Error("keyword case should not matter")
	}
	if idx.MaxLen() != 5 {
		t.Errorf("expected max len 5, got %d", idx.MaxLen())
	}
	if idx.Len() != 2 {
		t.Errorf("expected 2 keys, got %d", idx.Len())
	}
}

func TestIndexMaxLenCountsRunes(t *testing.T) {
	idx := MustNew([]Entry{{Keyword: "mũi né", Type: TypeName}})
	if idx.MaxLen() != 5 {
		t.Errorf("max len should count code points, got %d", idx.MaxLen())
	}
}

func TestIndexHasPrefix(t *testing.T) {
	idx := MustNew([]Entry{{Keyword: "room service", Type: TypePhrase}})
	if !idx.HasPrefix("roomserv") {
		t.Error("roomserv should be a prefix")
	}
	if idx.HasPrefix("roomservice") {
		t.Error("a full key is not a proper prefix")
	}
	if idx.HasPrefix("service") {
		t.Error("service is not a prefix")
	}
}

func TestIndexDefaultsAndValidation(t *testing.T) {
	idx := MustNew([]Entry{{Keyword: "spa"}})
	e, _ := idx.Lookup("spa")
	if e.Type != TypeWord {
		t.Errorf("empty type should default to word, got %q", e.Type)
	}

	if _, err := New([]Entry{{Keyword: "  "}}); !errors.Is(err, ErrEmptyKeyword) {
		t.Errorf("expected ErrEmptyKeyword, got %v", err)
	}
	if _, err := New([]Entry{{Keyword: "spa", Type: "verb"}}); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestIndexDuplicateLaterWins(t *testing.T) {
	idx := MustNew([]Entry{
		{Keyword: "mui ne", Type: TypePhrase},
		{Keyword: "Mui-Ne", Type: TypeName},
	})
	if idx.Len() != 1 || len(idx.Entries()) != 1 {
		t.Fatalf("duplicates should collapse, got %d", idx.Len())
	}
	e, _ := idx.Lookup("muine")
	if e.Type != TypeName {
		t.Errorf("later entry should win, got %+v", e)
	}
}

func TestIndexWithLeavesOriginalUntouched(t *testing.T) {
	base := MustNew([]Entry{{Keyword: "taxi"}})
	next, err := base.With(Entry{Keyword: "late checkout", Type: TypePhrase})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := base.Lookup("latecheckout"); ok {
		t.Error("With must not mutate the receiver")
	}
	if _, ok := next.Lookup("latecheckout"); !ok {
		t.Error("new index should contain the added entry")
	}
	if base.MaxLen() != 4 || next.MaxLen() != 12 {
		t.Errorf("unexpected max lens %d, %d", base.MaxLen(), next.MaxLen())
	}
}

func TestIndexEntriesIsCopy(t *testing.T) {
	idx := MustNew([]Entry{{Keyword: "taxi", Fragments: []string{"taxi"}}})
	entries := idx.Entries()
	entries[0].Keyword = "changed"
	if idx.Entries()[0].Keyword != "taxi" {
		t.Error("Entries should return a copy")
	}
}

func TestIndexConcurrentReads(t *testing.T) {
	idx := MustNew([]Entry{{Keyword: "mui ne"}, {Keyword: "taxi"}})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if _, ok := idx.Lookup("muine"); !ok {
					t.Error("lookup failed")
					return
				}
				_ = idx.MaxLen()
			}
		}()
	}
	wg.Wait()
}

func TestNilIndex(t *testing.T) {
	var idx *Index
	if _, ok := idx.Lookup("x"); ok {
		t.Error("nil index should miss")
	}
	if idx.MaxLen() != 0 || idx.Len() != 0 || idx.HasPrefix("x") {
		t.Error("nil index should be empty")
	}
}

func TestParseJSONBareArray(t *testing.T) {
	asset, err := ParseJSON([]byte(`[{"keyword":"mui ne","fragments":["mui","ne"],"type":"phrase"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(asset.Entries) != 1 || asset.Entries[0].Type != TypePhrase {
		t.Errorf("unexpected asset %+v", asset)
	}
}

func TestParseJSONInvalid(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"entries": 3}`)); err == nil {
		t.Error("expected decode error")
	}
}

func TestParseYAMLBareList(t *testing.T) {
	asset, err := ParseYAML([]byte("- keyword: taxi\n  type: word\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(asset.Entries) != 1 || asset.Entries[0].Keyword != "taxi" {
		t.Errorf("unexpected asset %+v", asset)
	}
}

func TestLoadFixtures(t *testing.T) {
	idx, version, err := Load("../../../testdata/dictionary.json")
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if version != "2024-06" {
		t.Errorf("expected version 2024-06, got %q", version)
	}
	if _, ok := idx.Lookup("muine"); !ok {
		t.Error("fixture should contain mui ne")
	}

	yidx, _, err := Load("../../../testdata/dictionary.yaml")
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if _, ok := yidx.Lookup("roomservice"); !ok {
		t.Error("yaml fixture should contain room service")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, _, err := Load("/nonexistent/dict.json"); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`[{"keyword":""}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); !errors.Is(err, ErrEmptyKeyword) {
		t.Errorf("expected ErrEmptyKeyword, got %v", err)
	}
}

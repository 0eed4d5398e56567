package voice

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

// The facet catalog is configuration data: a fully-enumerated table of
// filterable voice attributes, loaded once. It drives only the local
// option computation; concrete voices come from the backend.
//
//go:embed facets.json
var facetsJSON []byte

// Facet names the filterable attributes of a catalog row.
type Facet string

const (
	FacetAccent  Facet = "accent"
	FacetGender  Facet = "gender"
	FacetAge     Facet = "age"
	FacetDesc    Facet = "description"
	FacetUseCase Facet = "use_case"
)

// Facets lists all facets in wizard display order.
var Facets = []Facet{FacetAccent, FacetGender, FacetAge, FacetDesc, FacetUseCase}

type facetRow struct {
	Accent  string `json:"accent"`
	Gender  string `json:"gender"`
	Age     string `json:"age"`
	Desc    string `json:"description"`
	UseCase string `json:"use_case"`
}

func (r facetRow) get(f Facet) string {
	switch f {
	case FacetAccent:
		return r.Accent
	case FacetGender:
		return r.Gender
	case FacetAge:
		return r.Age
	case FacetDesc:
		return r.Desc
	case FacetUseCase:
		return r.UseCase
	}
	return ""
}

// Get returns the current selection for one facet, empty for "any".
func (f Filter) Get(facet Facet) string {
	switch facet {
	case FacetAccent:
		return f.Accent
	case FacetGender:
		return f.Gender
	case FacetAge:
		return f.Age
	case FacetDesc:
		return f.Desc
	case FacetUseCase:
		return f.UseCase
	}
	return ""
}

// Set returns a copy of the filter with one facet changed. An empty
// value clears the facet.
func (f Filter) Set(facet Facet, value string) Filter {
	switch facet {
	case FacetAccent:
		f.Accent = value
	case FacetGender:
		f.Gender = value
	case FacetAge:
		f.Age = value
	case FacetDesc:
		f.Desc = value
	case FacetUseCase:
		f.UseCase = value
	}
	return f
}

var (
	catalogOnce sync.Once
	catalogRows []facetRow
	catalogErr  error
)

func catalog() []facetRow {
	catalogOnce.Do(func() {
		catalogErr = json.Unmarshal(facetsJSON, &catalogRows)
		if catalogErr != nil {
			catalogErr = fmt.Errorf("facet catalog: %w", catalogErr)
		}
	})
	if catalogErr != nil {
		// The catalog is compiled in; a parse failure is a build defect.
		panic(catalogErr)
	}
	return catalogRows
}

// Options computes the selectable values for one facet given the other
// currently-selected facets: the distinct values of that facet over
// catalog rows consistent with every other selection. Picking one facet
// therefore narrows the options offered for the rest, and no offered
// value can yield zero matching rows.
func Options(facet Facet, f Filter) []string {
	seen := make(map[string]bool)
	var opts []string
	for _, row := range catalog() {
		if !matchesExcept(row, f, facet) {
			continue
		}
		v := row.get(facet)
		if !seen[v] {
			seen[v] = true
			opts = append(opts, v)
		}
	}
	return opts
}

func matchesExcept(row facetRow, f Filter, skip Facet) bool {
	for _, facet := range Facets {
		if facet == skip {
			continue
		}
		want := f.Get(facet)
		if want != "" && row.get(facet) != want {
			return false
		}
	}
	return true
}

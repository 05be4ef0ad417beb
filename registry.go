package facet

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag("facet")
}

// attributePlan maps attribute names to struct field index paths.
type attributePlan struct {
	typeName string
	index    map[string][]int
}

// namedIndex is one candidate name for a field. Lower depth wins, then lower
// tier (facet tag, json tag, Go name).
type namedIndex struct {
	name  string
	index []int
	depth int
	tier  int
}

var (
	plans   = make(map[reflect.Type]*attributePlan)
	plansMu sync.RWMutex
)

// Prepare scans struct type T with sentinel and caches its attribute plan so the first
// projection of a T does not pay for reflection.
func Prepare[T any]() {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return
	}
	plan := buildAttributePlan(rt, sentinel.Scan[T]())

	plansMu.Lock()
	defer plansMu.Unlock()
	plans[rt] = plan
}

// Reset clears the attribute plan cache.
// This is primarily useful for test isolation.
func Reset() {
	plansMu.Lock()
	defer plansMu.Unlock()
	plans = make(map[reflect.Type]*attributePlan)
}

// planFor returns the cached plan for struct type rt, building it on a miss.
func planFor(rt reflect.Type) *attributePlan {
	plansMu.RLock()
	if p, ok := plans[rt]; ok {
		plansMu.RUnlock()
		return p
	}
	plansMu.RUnlock()

	plansMu.Lock()
	defer plansMu.Unlock()

	if p, ok := plans[rt]; ok {
		return p
	}

	p := buildAttributePlan(rt, scanType(rt))
	plans[rt] = p
	return p
}

// scanType returns sentinel metadata for rt, scanning exported fields by hand
// when sentinel has not seen the type.
func scanType(rt reflect.Type) sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return spec
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if v, ok := sf.Tag.Lookup("facet"); ok {
			fm.Tags["facet"] = v
		}
		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}
		spec.Fields = append(spec.Fields, fm)
	}
	return spec
}

// buildAttributePlan indexes each field under its facet tag, json tag name
// and Go name, in that order of precedence. A facet tag of "-" hides the
// field entirely. Fields promoted from untagged embedded structs are indexed
// too; as in Go, a shallower field wins over a promoted one.
func buildAttributePlan(rt reflect.Type, spec sentinel.Metadata) *attributePlan {
	plan := &attributePlan{
		typeName: spec.TypeName,
		index:    make(map[string][]int, len(spec.Fields)*2),
	}
	if plan.typeName == "" {
		plan.typeName = rt.Name()
	}

	var names []namedIndex
	collectNames(&names, rt, spec, nil, 0, map[reflect.Type]bool{rt: true})

	sort.SliceStable(names, func(i, j int) bool {
		if names[i].depth != names[j].depth {
			return names[i].depth < names[j].depth
		}
		return names[i].tier < names[j].tier
	})
	for _, e := range names {
		if _, taken := plan.index[e.name]; !taken {
			plan.index[e.name] = e.index
		}
	}
	return plan
}

// collectNames appends the names of rt's fields, then descends into embedded
// structs and struct pointers. seen holds the types on the current path so
// self-embedding pointers terminate.
func collectNames(out *[]namedIndex, rt reflect.Type, spec sentinel.Metadata, parent []int, depth int, seen map[reflect.Type]bool) {
	for _, field := range spec.Fields {
		if len(field.Index) == 0 {
			continue
		}
		sf := rt.FieldByIndex(field.Index)
		if !sf.IsExported() {
			continue
		}
		facetName, jsonName, hidden := attributeNames(sf, field.Tags)
		if hidden {
			continue
		}

		index := append(append([]int{}, parent...), field.Index...)
		for tier, name := range [3]string{facetName, jsonName, field.Name} {
			if name != "" {
				*out = append(*out, namedIndex{name: name, index: index, depth: depth, tier: tier})
			}
		}
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.Anonymous {
			continue
		}
		// A tagged embedded struct is a named field, not a promoted one.
		facetName, jsonName, hidden := attributeNames(sf, nil)
		if hidden || facetName != "" || jsonName != "" {
			continue
		}

		et := sf.Type
		if et.Kind() == reflect.Ptr {
			et = et.Elem()
		}
		if et.Kind() != reflect.Struct || seen[et] {
			continue
		}

		seen[et] = true
		collectNames(out, et, scanType(et), append(append([]int{}, parent...), sf.Index...), depth+1, seen)
		delete(seen, et)
	}
}

// attributeNames reads the facet and json names of a field. tags carries
// sentinel's view of the facet tag when available.
func attributeNames(sf reflect.StructField, tags map[string]string) (facetName, jsonName string, hidden bool) {
	facetName, ok := tags["facet"]
	if !ok {
		facetName = sf.Tag.Get("facet")
	}
	facetName = tagName(facetName)
	if facetName == "-" {
		return "", "", true
	}
	jsonName = tagName(sf.Tag.Get("json"))
	if jsonName == "-" {
		jsonName = ""
	}
	return facetName, jsonName, false
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}

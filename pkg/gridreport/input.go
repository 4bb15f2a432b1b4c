package gridreport

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Dataset is a rectangular, column-named input: the frame-like kind.
// Rows are row-major; RowLabels is optional and only consulted when row
// names are requested.
type Dataset struct {
	Columns   []string
	Rows      [][]interface{}
	RowLabels []string
}

// Coefficient is one row of a model fit's coefficient table.
type Coefficient struct {
	Label    string
	Estimate float64
	StdError float64
	Stat     float64 // t value for linear models, z value for GLMs
	PValue   float64
}

// LinearModelFit is a fitted linear model summary.
type LinearModelFit struct {
	Coefficients []Coefficient
}

// GLMFit is a fitted generalized linear model summary.
type GLMFit struct {
	Coefficients []Coefficient
}

// AnovaRow is one term of an analysis-of-variance table. FValue and PValue
// may be NaN (the residuals row carries neither).
type AnovaRow struct {
	Label  string
	Df     float64
	SumSq  float64
	MeanSq float64
	FValue float64
	PValue float64
}

// AnovaTable is an analysis-of-variance table.
type AnovaTable struct {
	Rows []AnovaRow
}

// ContingencyTable is a two-way table of counts with row and column labels.
type ContingencyTable struct {
	RowLabels []string
	ColLabels []string
	Counts    [][]float64
}

// FromRecords builds a Dataset from a slice of structs or string-keyed maps,
// one record per row. Struct columns follow field declaration order and honor
// json tags for naming; map columns are the sorted union of keys, with
// missing values left empty.
func FromRecords(records interface{}) (*Dataset, error) {
	val := reflect.ValueOf(records)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("records must be a slice, got %s", val.Kind())
	}
	if val.Len() == 0 {
		return &Dataset{}, nil
	}

	first := val.Index(0)
	if first.Kind() == reflect.Ptr {
		first = first.Elem()
	}

	switch first.Kind() {
	case reflect.Struct:
		return recordsFromStructs(val)
	case reflect.Map:
		return recordsFromMaps(val)
	default:
		return nil, fmt.Errorf("records must be structs or maps, got %s", first.Kind())
	}
}

func recordsFromStructs(val reflect.Value) (*Dataset, error) {
	elem := val.Index(0)
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	typ := elem.Type()

	var fields []int
	var columns []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" && jsonTag != "-" {
			if parts := strings.Split(jsonTag, ","); parts[0] != "" {
				name = parts[0]
			}
		}
		fields = append(fields, i)
		columns = append(columns, name)
	}

	rows := make([][]interface{}, val.Len())
	for r := 0; r < val.Len(); r++ {
		item := val.Index(r)
		if item.Kind() == reflect.Ptr {
			item = item.Elem()
		}
		row := make([]interface{}, len(fields))
		for c, idx := range fields {
			row[c] = item.Field(idx).Interface()
		}
		rows[r] = row
	}
	return &Dataset{Columns: columns, Rows: rows}, nil
}

func recordsFromMaps(val reflect.Value) (*Dataset, error) {
	keySet := make(map[string]struct{})
	for r := 0; r < val.Len(); r++ {
		item := val.Index(r)
		if item.Kind() == reflect.Ptr {
			item = item.Elem()
		}
		for _, key := range item.MapKeys() {
			keySet[fmt.Sprintf("%v", key.Interface())] = struct{}{}
		}
	}
	columns := make([]string, 0, len(keySet))
	for k := range keySet {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	rows := make([][]interface{}, val.Len())
	for r := 0; r < val.Len(); r++ {
		item := val.Index(r)
		if item.Kind() == reflect.Ptr {
			item = item.Elem()
		}
		row := make([]interface{}, len(columns))
		for c, col := range columns {
			mv := item.MapIndex(reflect.ValueOf(col))
			if mv.IsValid() {
				row[c] = mv.Interface()
			}
		}
		rows[r] = row
	}
	return &Dataset{Columns: columns, Rows: rows}, nil
}

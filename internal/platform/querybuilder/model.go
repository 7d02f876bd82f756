package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Columns lists the db-tagged columns of a row model in field order.
func Columns(model any, omit ...string) ([]string, error) {
	cols, _, err := ColumnsAndValues(model, omit...)
	return cols, err
}

// ColumnsAndValues walks the exported db-tagged fields of a struct (or
// pointer to struct) and returns matching column and value slices. Columns
// listed in omit are skipped.
func ColumnsAndValues(model any, omit ...string) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if col == "" || col == "-" || slices.Contains(omit, col) {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}

// InsertModel builds an INSERT for every db column of model except omit.
func InsertModel(table string, model any, omit ...string) *InsertBuilder {
	b := InsertInto(table)
	cols, vals, err := ColumnsAndValues(model, omit...)
	if err != nil {
		return b
	}
	return b.Columns(cols...).Values(vals...)
}

// UpdateModel builds an UPDATE assigning every db column of model except omit.
func UpdateModel(table string, model any, omit ...string) *UpdateBuilder {
	b := Update(table)
	cols, vals, err := ColumnsAndValues(model, omit...)
	if err != nil {
		return b
	}
	return b.SetAll(cols, vals)
}

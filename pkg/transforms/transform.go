package transforms

import (
	"reflect"
	"strings"
)

// TransformDefinition sets the Data fields on any struct of Type whose Match fields all equal the given values
type TransformDefinition struct {
	Type  string
	Match map[string]string
	Data  map[string]any
}

func (t *TransformDefinition) matches(inputValue reflect.Value) bool {
	for key, value := range t.Match {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || field.Kind() != reflect.String || !strings.EqualFold(field.String(), value) {
			return false
		}
	}

	return true
}

func (t *TransformDefinition) Transform(inputValue reflect.Value) {
	if !inputValue.IsValid() || !t.matches(inputValue) {
		return
	}

	for key, value := range t.Data {
		field := inputValue.FieldByName(key)
		data := reflect.ValueOf(value)

		if field.IsValid() && field.CanSet() && data.Type().AssignableTo(field.Type()) {
			field.Set(data)
		}
	}
}

// Transform applies every matching definition to input and anything reachable from it through exported fields.
// input must be a pointer for the changes to be visible to the caller.
func Transform(input any) {
	transform(reflect.ValueOf(input))
}

func transform(value reflect.Value) {
	switch value.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !value.IsNil() {
			transform(value.Elem())
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			transform(value.Index(i))
		}
	case reflect.Struct:
		typeName := value.Type().String()
		for _, definition := range transforms {
			if definition.Type == typeName {
				definition.Transform(value)
			}
		}

		for i := 0; i < value.NumField(); i++ {
			if value.Type().Field(i).IsExported() {
				transform(value.Field(i))
			}
		}
	}
}

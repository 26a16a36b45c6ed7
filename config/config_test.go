package config

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoZeroFields(t *testing.T) {
	cfg := Default()

	for _, field := range visit(newVar(*cfg), "Config", false) {
		assert.Fail(t, "zero-value field", field)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.Equal(t, "GET", cfg.Defaults.Method)
	require.Equal(t, "127.0.0.1", cfg.Defaults.RemoteAddress)
	require.Equal(t, "localhost:80", cfg.Defaults.Host)
	require.NotNil(t, cfg.Logger)

	t.Run("independent copies", func(t *testing.T) {
		a, b := Default(), Default()
		a.Defaults.UserAgent = "curl/8.0"
		require.NotEqual(t, a.Defaults.UserAgent, b.Defaults.UserAgent)
	})
}

type variable struct {
	Type  reflect.Type
	Value reflect.Value
}

func newVar(a any) variable {
	return variable{reflect.TypeOf(a), reflect.ValueOf(a)}
}

func visit(a variable, name string, nullable bool) (fields []string) {
	if a.Type.Kind() == reflect.Struct {
		for field := range a.Value.NumField() {
			v1 := variable{a.Type.Field(field).Type, a.Value.Field(field)}
			fieldname := a.Type.Field(field).Name
			isNullable := a.Type.Field(field).Tag.Get("test") == "nullable"
			fields = append(fields, visit(v1, name+"."+fieldname, isNullable)...)
		}

		return fields
	}

	if a.Value.IsZero() && !nullable {
		return []string{name}
	}

	return nil
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams returns a flag set bound to the tagged fields of
// params, which must be a pointer to a struct. A malformed params
// struct is a programming error and panics.
//
//	var params decodeParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        return cli.FlagsFromParams("decode", &params)
//	    },
//	    Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
//	        // params holds the parsed flags here
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag in flagSet for every field of *params
// that carries a flag tag:
//
//	Output string `flag:"output,o" desc:"file to write" default:"-"`
//
// The flag tag is the long name and an optional one-letter shorthand.
// desc is the help text and default is parsed as the field's type.
// Supported types are string, bool, int, int64 and []string (comma
// separated, repeatable). Embedded structs are walked, so option
// structs such as [JSONOutput] add their flags to every command that
// embeds them.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(value.Elem(), flagSet)
}

// flagSpec is the parsed tags of one field.
type flagSpec struct {
	name         string
	shorthand    string
	description  string
	defaultValue string
}

func bindStruct(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()
	for index := range structType.NumField() {
		field := structType.Field(index)
		fieldValue := structValue.Field(index)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStruct(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		tag, ok := field.Tag.Lookup("flag")
		if !ok || tag == "" {
			continue
		}
		name, shorthand, _ := strings.Cut(tag, ",")
		spec := flagSpec{
			name:         name,
			shorthand:    shorthand,
			description:  field.Tag.Get("desc"),
			defaultValue: field.Tag.Get("default"),
		}
		if !fieldValue.CanAddr() {
			return fmt.Errorf("field %s: not addressable", field.Name)
		}
		if err := bindField(fieldValue.Addr().Interface(), flagSet, spec); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func bindField(target any, flagSet *pflag.FlagSet, spec flagSpec) error {
	switch target := target.(type) {
	case *string:
		flagSet.StringVarP(target, spec.name, spec.shorthand, spec.defaultValue, spec.description)
	case *bool:
		value, err := parseDefault(spec, strconv.ParseBool)
		if err != nil {
			return err
		}
		flagSet.BoolVarP(target, spec.name, spec.shorthand, value, spec.description)
	case *int:
		value, err := parseDefault(spec, strconv.Atoi)
		if err != nil {
			return err
		}
		flagSet.IntVarP(target, spec.name, spec.shorthand, value, spec.description)
	case *int64:
		value, err := parseDefault(spec, func(text string) (int64, error) {
			return strconv.ParseInt(text, 10, 64)
		})
		if err != nil {
			return err
		}
		flagSet.Int64VarP(target, spec.name, spec.shorthand, value, spec.description)
	case *[]string:
		var value []string
		if spec.defaultValue != "" {
			value = strings.Split(spec.defaultValue, ",")
		}
		flagSet.StringSliceVarP(target, spec.name, spec.shorthand, value, spec.description)
	default:
		return fmt.Errorf("unsupported type %T for flag --%s", target, spec.name)
	}
	return nil
}

// parseDefault parses the default tag with parse, treating an absent
// default as the zero value.
func parseDefault[T any](spec flagSpec, parse func(string) (T, error)) (T, error) {
	var zero T
	if spec.defaultValue == "" {
		return zero, nil
	}
	value, err := parse(spec.defaultValue)
	if err != nil {
		return zero, fmt.Errorf("default for --%s: %w", spec.name, err)
	}
	return value, nil
}

/*
 * Copyright 2024 caiflower Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tools

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/modern-go/reflect2"
)

// DoTagFunc applies every fn to each field of the struct v points to.
// v must be a non-nil pointer to a struct, anything else is ignored.
func DoTagFunc(v interface{}, fn []func(reflect.StructField, reflect.Value) error) error {
	if reflect2.IsNil(v) {
		return nil
	}

	vType := reflect2.TypeOf(v).Type1()
	if vType.Kind() != reflect.Ptr || vType.Elem().Kind() != reflect.Struct {
		return nil
	}

	indirect := reflect.Indirect(reflect.ValueOf(v))
	for i := 0; i < indirect.NumField(); i++ {
		field := indirect.Field(i)
		fieldStruct := vType.Elem().Field(i)

		for _, f := range fn {
			if err := f(fieldStruct, field); err != nil {
				return err
			}
		}
	}

	return nil
}

// SetDefaultValueIfNil fills zero valued fields from their `default` tag.
// Nested structs and non-nil struct pointers are walked recursively. bool
// fields are skipped because false cannot be told apart from unset; use *bool.
func SetDefaultValueIfNil(structField reflect.StructField, vValue reflect.Value) error {
	if !vValue.CanSet() {
		return nil
	}

	tag, hasDefault := structField.Tag.Lookup("default")

	switch vValue.Kind() {
	case reflect.Struct:
		for i := 0; i < vValue.NumField(); i++ {
			if err := SetDefaultValueIfNil(vValue.Type().Field(i), vValue.Field(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Ptr:
		elemType := structField.Type.Elem()
		if elemType.Kind() == reflect.Struct {
			if vValue.IsNil() {
				return nil
			}
			elem := vValue.Elem()
			for i := 0; i < elem.NumField(); i++ {
				if err := SetDefaultValueIfNil(elemType.Field(i), elem.Field(i)); err != nil {
					return err
				}
			}
			return nil
		}
		if !hasDefault || !vValue.IsNil() {
			return nil
		}
		ptr := reflect.New(elemType)
		if err := setScalar(structField.Name, ptr.Elem(), tag); err != nil {
			return err
		}
		vValue.Set(ptr)
		return nil
	}

	if !hasDefault || !vValue.IsZero() || vValue.Kind() == reflect.Bool {
		return nil
	}
	return setScalar(structField.Name, vValue, tag)
}

func setScalar(name string, vValue reflect.Value, tag string) error {
	switch vValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(tag, 10, 64)
		if err != nil {
			return fmt.Errorf("default value of %s: %w", name, err)
		}
		vValue.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(tag, 10, 64)
		if err != nil {
			return fmt.Errorf("default value of %s: %w", name, err)
		}
		vValue.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(tag, vValue.Type().Bits())
		if err != nil {
			return fmt.Errorf("default value of %s: %w", name, err)
		}
		vValue.SetFloat(v)
	case reflect.String:
		vValue.SetString(tag)
	case reflect.Bool:
		v, err := strconv.ParseBool(tag)
		if err != nil {
			return fmt.Errorf("default value of %s: %w", name, err)
		}
		vValue.SetBool(v)
	default:
		return fmt.Errorf("default value of %s: unsupported kind %s", name, vValue.Kind())
	}
	return nil
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/drone/envsubst"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

var getEnv = os.Getenv

// unmarshalInterpolated decodes a YAML scalar as a string, expands the
// environment variables it references and hands the result to parse.
func unmarshalInterpolated(unmarshal func(any) error, parse func(str string) error) error {
	var str string

	if err := unmarshal(&str); err != nil {
		return errors.WithStack(err)
	}

	str, err := envsubst.Eval(str, getEnv)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(parse(str))
}

type InterpolatedString string

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (is *InterpolatedString) UnmarshalYAML(unmarshal func(any) error) error {
	return unmarshalInterpolated(unmarshal, func(str string) error {
		*is = InterpolatedString(str)
		return nil
	})
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedString)

type InterpolatedInt int

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ii *InterpolatedInt) UnmarshalYAML(unmarshal func(any) error) error {
	return unmarshalInterpolated(unmarshal, func(str string) error {
		intVal, err := strconv.ParseInt(str, 10, 32)
		if err != nil {
			return errors.WithStack(err)
		}

		*ii = InterpolatedInt(int(intVal))

		return nil
	})
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedInt)

type InterpolatedFloat float64

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ifl *InterpolatedFloat) UnmarshalYAML(unmarshal func(any) error) error {
	return unmarshalInterpolated(unmarshal, func(str string) error {
		floatVal, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return errors.WithStack(err)
		}

		*ifl = InterpolatedFloat(floatVal)

		return nil
	})
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedFloat)

type InterpolatedBool bool

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ib *InterpolatedBool) UnmarshalYAML(unmarshal func(any) error) error {
	return unmarshalInterpolated(unmarshal, func(str string) error {
		boolVal, err := strconv.ParseBool(str)
		if err != nil {
			return errors.WithStack(err)
		}

		*ib = InterpolatedBool(boolVal)

		return nil
	})
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedBool)

type InterpolatedDuration time.Duration

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (id *InterpolatedDuration) UnmarshalYAML(unmarshal func(any) error) error {
	return unmarshalInterpolated(unmarshal, func(str string) error {
		duration, err := time.ParseDuration(str)
		if err != nil {
			nanoseconds, err := strconv.ParseInt(str, 10, 64)
			if err != nil {
				return errors.WithStack(err)
			}

			duration = time.Duration(nanoseconds)
		}

		*id = InterpolatedDuration(duration)

		return nil
	})
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedDuration)

// MarshalYAML implements yaml.InterfaceMarshaler.
func (id *InterpolatedDuration) MarshalYAML() (any, error) {
	return time.Duration(*id).String(), nil
}

var _ yaml.InterfaceMarshaler = new(InterpolatedDuration)

func NewInterpolatedDuration(d time.Duration) *InterpolatedDuration {
	id := InterpolatedDuration(d)
	return &id
}

type InterpolatedStringSlice []string

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (iss *InterpolatedStringSlice) UnmarshalYAML(unmarshal func(any) error) error {
	var data []string

	if err := unmarshal(&data); err != nil {
		return errors.WithStack(err)
	}

	for index, value := range data {
		value, err := envsubst.Eval(value, getEnv)
		if err != nil {
			return errors.WithStack(err)
		}

		data[index] = value
	}

	*iss = data

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedStringSlice)

// InterpolatedMap holds free-form options, such as avatar backend settings,
// with every string leaf interpolated.
type InterpolatedMap struct {
	Data map[string]any
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (im *InterpolatedMap) UnmarshalYAML(unmarshal func(any) error) error {
	var data map[string]any

	if err := unmarshal(&data); err != nil {
		return errors.WithStack(err)
	}

	interpolated, err := interpolateRecursive(data)
	if err != nil {
		return errors.WithStack(err)
	}

	im.Data, _ = interpolated.(map[string]any)

	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (im *InterpolatedMap) MarshalYAML() (any, error) {
	return im.Data, nil
}

func interpolateRecursive(data any) (any, error) {
	switch typ := data.(type) {
	case map[string]any:
		for key, value := range typ {
			value, err := interpolateRecursive(value)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			typ[key] = value
		}

	case []any:
		for idx := range typ {
			value, err := interpolateRecursive(typ[idx])
			if err != nil {
				return nil, errors.WithStack(err)
			}

			typ[idx] = value
		}

	case string:
		value, err := envsubst.Eval(typ, getEnv)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return value, nil
	}

	return data, nil
}

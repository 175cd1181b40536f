/*
   This file handles the scalar kinds of elements stored in raw volumes.
*/

package rawvol

import (
	"fmt"
	"strings"
)

// ScalarKind is a unique ID for each type of scalar within a raw volume, e.g., a uint8 or a float32.
type ScalarKind uint8

const (
	T_uint8 ScalarKind = iota
	T_int8
	T_uint16
	T_int16
	T_uint32
	T_int32
	T_uint64
	T_int64
	T_float32
	T_float64
)

var typeBytes = map[ScalarKind]int32{
	T_uint8:   1,
	T_int8:    1,
	T_uint16:  2,
	T_int16:   2,
	T_uint32:  4,
	T_int32:   4,
	T_uint64:  8,
	T_int64:   8,
	T_float32: 4,
	T_float64: 8,
}

var typeNames = map[ScalarKind]string{
	T_uint8:   "uint8",
	T_int8:    "int8",
	T_uint16:  "uint16",
	T_int16:   "int16",
	T_uint32:  "uint32",
	T_int32:   "int32",
	T_uint64:  "uint64",
	T_int64:   "int64",
	T_float32: "float32",
	T_float64: "float64",
}

// Bytes returns the # of bytes for a scalar of the given kind, or 0 if the kind
// is not one of the supported kinds.
func (k ScalarKind) Bytes() int32 {
	return typeBytes[k]
}

// Valid returns true if the kind is one of the supported scalar kinds.
func (k ScalarKind) Valid() bool {
	_, found := typeBytes[k]
	return found
}

func (k ScalarKind) String() string {
	if name, found := typeNames[k]; found {
		return name
	}
	return fmt.Sprintf("unknown scalar kind %d", uint8(k))
}

// ParseScalarKind returns the ScalarKind for a Go-style type name like "uint16".
func ParseScalarKind(s string) (ScalarKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	// common aliases
	switch name {
	case "char", "signed char":
		name = "int8"
	case "unsigned char", "byte":
		name = "uint8"
	case "short":
		name = "int16"
	case "unsigned short":
		name = "uint16"
	case "int":
		name = "int32"
	case "unsigned int":
		name = "uint32"
	case "float":
		name = "float32"
	case "double":
		name = "float64"
	}
	for k, kname := range typeNames {
		if kname == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedScalarKind, s)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (k ScalarKind) MarshalText() ([]byte, error) {
	name, found := typeNames[k]
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedScalarKind, uint8(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (k *ScalarKind) UnmarshalText(b []byte) error {
	kind, err := ParseScalarKind(string(b))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

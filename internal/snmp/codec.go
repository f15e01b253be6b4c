package snmp

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DecodeFunc turns a raw wire value into its display form.
type DecodeFunc func(raw string) (string, error)

// EncodeFunc turns a display value into the wire value and datatype the hub
// expects on a set request.
type EncodeFunc func(value string) (string, Type, error)

// DecodeIPv4 converts the hub's dollar-hex IPv4 representation, e.g.
// "$c2a80464" => "192.168.4.100". The all-zero address decodes to "".
func DecodeIPv4(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if len(raw) < 9 || raw[0] != '$' {
		return "", fmt.Errorf("malformed IPv4 value %q", raw)
	}
	parts := make([]string, 4)
	for i := 0; i < 4; i++ {
		octet, err := strconv.ParseUint(raw[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return "", fmt.Errorf("malformed IPv4 value %q: %w", raw, err)
		}
		parts[i] = strconv.FormatUint(octet, 10)
	}
	addr := strings.Join(parts, ".")
	if addr == "0.0.0.0" {
		return "", nil
	}
	return addr, nil
}

// EncodeIPv4 converts a dotted-quad address to the hub's dollar-hex form.
func EncodeIPv4(value string) (string, Type, error) {
	parts := strings.Split(value, ".")
	if len(parts) != 4 {
		return "", TypeNone, fmt.Errorf("malformed IPv4 address %q", value)
	}
	var sb strings.Builder
	sb.WriteByte('$')
	for _, part := range parts {
		octet, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return "", TypeNone, fmt.Errorf("malformed IPv4 address %q: %w", value, err)
		}
		fmt.Fprintf(&sb, "%02x", octet)
	}
	return sb.String(), TypeString, nil
}

// DecodeIPv6 converts the hub's dollar-hex IPv6 representation. The all-zero
// address decodes to "".
func DecodeIPv6(raw string) (string, error) {
	if raw == "" || raw == "$00000000000000000000000000000000" {
		return "", nil
	}
	if len(raw) != 33 || raw[0] != '$' {
		return "", fmt.Errorf("malformed IPv6 value %q", raw)
	}
	groups := make([]string, 8)
	for i := 0; i < 8; i++ {
		groups[i] = raw[1+4*i : 5+4*i]
	}
	return strings.Join(groups, ":"), nil
}

// DecodeMAC converts e.g. "$787b8a6413f5" to "78:7b:8a:64:13:f5".
func DecodeMAC(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if len(raw) != 13 || raw[0] != '$' {
		return "", fmt.Errorf("malformed MAC value %q", raw)
	}
	groups := make([]string, 6)
	for i := 0; i < 6; i++ {
		groups[i] = raw[1+2*i : 3+2*i]
	}
	return strings.Join(groups, ":"), nil
}

// DecodeDate converts the hub's packed hex timestamp, e.g.
// "$07e2030e10071100" => "2018-03-14 16:07:17". Zero timestamps decode to "".
func DecodeDate(raw string) (string, error) {
	if raw == "" || raw == "$0000000000000000" {
		return "", nil
	}
	if len(raw) < 15 || raw[0] != '$' {
		return "", fmt.Errorf("malformed date value %q", raw)
	}
	fields := make([]int, 6)
	offsets := []struct{ start, end int }{{1, 5}, {5, 7}, {7, 9}, {9, 11}, {11, 13}, {13, 15}}
	for i, o := range offsets {
		v, err := strconv.ParseInt(raw[o.start:o.end], 16, 32)
		if err != nil {
			return "", fmt.Errorf("malformed date value %q: %w", raw, err)
		}
		fields[i] = int(v)
	}
	t := time.Date(fields[0], time.Month(fields[1]), fields[2],
		fields[3], fields[4], fields[5], 0, time.UTC)
	return t.Format("2006-01-02 15:04:05"), nil
}

// DecodeInt normalizes an integer value. Empty input decodes to "".
func DecodeInt(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("malformed integer value %q", raw)
	}
	return strconv.Itoa(n), nil
}

// DecodeBool converts an SNMP TruthValue to "true" or "false".
func DecodeBool(raw string) (string, error) {
	switch raw {
	case "1":
		return "true", nil
	case "", "0", "2":
		return "false", nil
	}
	return "", fmt.Errorf("malformed boolean value %q", raw)
}

// EncodeString passes a string through unchanged.
func EncodeString(value string) (string, Type, error) {
	return value, TypeString, nil
}

// EncodeInt validates and passes through an integer.
func EncodeInt(value string) (string, Type, error) {
	if _, err := strconv.Atoi(value); err != nil {
		return "", TypeNone, fmt.Errorf("not an integer: %q", value)
	}
	return value, TypeInt, nil
}

// EncodeBool converts "true"/"false" (or 1/0) to an SNMP TruthValue.
func EncodeBool(value string) (string, Type, error) {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return "1", TypeInt, nil
	case "false", "0", "no", "off":
		return "2", TypeInt, nil
	}
	return "", TypeNone, fmt.Errorf("not a boolean: %q", value)
}

// DecodeString passes a raw value through unchanged.
func DecodeString(raw string) (string, error) {
	return raw, nil
}

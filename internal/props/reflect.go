package props

import (
	"fmt"

	"github.com/cablekit/hubctl/internal/hub"
)

// NotSettableError is returned when a write is attempted on a read-only
// property. The property is left untouched.
type NotSettableError struct {
	Name string
}

func (e *NotSettableError) Error() string {
	return fmt.Sprintf("property %q is not settable", e.Name)
}

// Get fetches one property and returns its decoded value.
func Get(s hub.Session, name string) (string, error) {
	prop, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown property %q", name)
	}
	raw, err := s.SNMPGet(prop.OID)
	if err != nil {
		return "", fmt.Errorf("failed to read property %q: %w", name, err)
	}
	value, err := prop.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode property %q: %w", name, err)
	}
	return value, nil
}

// GetAll fetches several properties, returning values in request order.
func GetAll(s hub.Session, names []string) ([]string, error) {
	values := make([]string, 0, len(names))
	for _, name := range names {
		value, err := Get(s, name)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// Set writes value to a property and returns the previous value. The old
// value is read first; a read-only property fails before anything is
// written.
func Set(s hub.Session, name, value string) (string, error) {
	prop, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown property %q", name)
	}

	raw, err := s.SNMPGet(prop.OID)
	if err != nil {
		return "", fmt.Errorf("failed to read property %q: %w", name, err)
	}
	old, err := prop.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode property %q: %w", name, err)
	}

	if !prop.Settable() {
		return "", &NotSettableError{Name: name}
	}

	wire, dt, err := prop.Encode(value)
	if err != nil {
		return "", fmt.Errorf("bad value for property %q: %w", name, err)
	}
	if err := s.SNMPSet(prop.OID, wire, dt); err != nil {
		return "", fmt.Errorf("failed to set property %q: %w", name, err)
	}
	if err := s.ApplySettings(); err != nil {
		return "", fmt.Errorf("failed to apply settings after writing %q: %w", name, err)
	}
	return old, nil
}

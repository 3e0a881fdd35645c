package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnitType says how a product is measured at the counter.
type UnitType string

const (
	UnitTypeWeight UnitType = "weight"
	UnitTypePiece  UnitType = "piece"
)

func (u UnitType) IsValid() bool {
	return u == UnitTypeWeight || u == UnitTypePiece
}

// ParseUnitType accepts the canonical names in any case.
func ParseUnitType(s string) (UnitType, error) {
	u := UnitType(strings.ToLower(strings.TrimSpace(s)))
	if !u.IsValid() {
		return "", fmt.Errorf("unknown unit type %q", s)
	}
	return u, nil
}

func (u *UnitType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseUnitType(str)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

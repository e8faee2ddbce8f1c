package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencyUpcoming  Urgency = "upcoming"
	UrgencyFuture    Urgency = "future"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyImmediate, UrgencyUpcoming, UrgencyFuture:
		return true
	}
	return false
}

func (u Urgency) Value() (driver.Value, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("invalid urgency %q", string(u))
	}
	return string(u), nil
}

func (u *Urgency) Scan(v interface{}) error {
	s, err := scanString(v)
	if err != nil {
		return err
	}
	parsed := Urgency(s)
	if !parsed.Valid() {
		return fmt.Errorf("invalid urgency %q", s)
	}
	*u = parsed
	return nil
}

type ImpactLevel string

const (
	ImpactLow      ImpactLevel = "low"
	ImpactModerate ImpactLevel = "moderate"
	ImpactHigh     ImpactLevel = "high"
)

func (i ImpactLevel) Valid() bool {
	switch i {
	case ImpactLow, ImpactModerate, ImpactHigh:
		return true
	}
	return false
}

func (i ImpactLevel) Value() (driver.Value, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("invalid impact level %q", string(i))
	}
	return string(i), nil
}

func (i *ImpactLevel) Scan(v interface{}) error {
	s, err := scanString(v)
	if err != nil {
		return err
	}
	parsed := ImpactLevel(s)
	if !parsed.Valid() {
		return fmt.Errorf("invalid impact level %q", s)
	}
	*i = parsed
	return nil
}

type Priority string

const (
	PriorityCritical  Priority = "critical"
	PriorityImportant Priority = "important"
	PriorityStandard  Priority = "standard"
	PriorityOptional  Priority = "optional"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityImportant, PriorityStandard, PriorityOptional:
		return true
	}
	return false
}

func (p Priority) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %q", string(p))
	}
	return string(p), nil
}

func (p *Priority) Scan(v interface{}) error {
	s, err := scanString(v)
	if err != nil {
		return err
	}
	parsed := Priority(s)
	if !parsed.Valid() {
		return fmt.Errorf("invalid priority %q", s)
	}
	*p = parsed
	return nil
}

// AllocationReason explains why a supplier holds its allocation share.
// Diversification rules run in a fixed order and each may retag the
// suppliers it touches; the last rule to touch a supplier wins. That
// overwrite is the documented policy, not an accident.
type AllocationReason string

const (
	ReasonQuality   AllocationReason = "quality"
	ReasonCost      AllocationReason = "cost"
	ReasonDiversity AllocationReason = "diversity"
	ReasonSafety    AllocationReason = "safety"
	ReasonQ2Cost    AllocationReason = "q2-cost"
)

func (r AllocationReason) Valid() bool {
	switch r {
	case ReasonQuality, ReasonCost, ReasonDiversity, ReasonSafety, ReasonQ2Cost:
		return true
	}
	return false
}

func scanString(v interface{}) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", errors.New("enum column must be string")
	}
}

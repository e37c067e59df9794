package model

import (
	"fmt"
	"strings"
)

// ConnectorRequest is the body posted to the acquire services.
type ConnectorRequest struct {
	Payload Payload `json:"payload"`
}

// Payload carries the user's conditions and the selected items.
type Payload struct {
	Conditions []Condition `json:"conditions,omitempty"`
	Seeds      Seeds       `json:"seeds"`
}

// Condition is one field of the search form. A nil or empty Value means the
// user left the field blank.
type Condition struct {
	ID          string      `json:"id"`
	LogicalType string      `json:"logicalType,omitempty"`
	Value       interface{} `json:"value"`
}

// StringValue returns the condition value as a string and whether it is set.
func (c Condition) StringValue() (string, bool) {
	return valueString(c.Value)
}

// Seeds are the items selected in the client when a seeded service runs.
type Seeds struct {
	Entities []SeedEntity `json:"entities"`
	Links    []SeedLink   `json:"links,omitempty"`
}

// SeedEntity is a previously retrieved entity sent back by the client.
type SeedEntity struct {
	SeedID     string                 `json:"seedId"`
	TypeID     string                 `json:"typeId"`
	Label      string                 `json:"label,omitempty"`
	SourceIDs  []SourceID             `json:"sourceIds"`
	Properties map[string]interface{} `json:"properties"`
}

// SeedLink is a selected link. Only its identity is used.
type SeedLink struct {
	SeedID    string     `json:"seedId"`
	TypeID    string     `json:"typeId"`
	SourceIDs []SourceID `json:"sourceIds,omitempty"`
}

// SourceID identifies the record an item came from. Key is positional; for
// items produced by this connector the third element is the entity id.
type SourceID struct {
	Key        []string `json:"key"`
	Type       string   `json:"type"`
	ItemTypeID string   `json:"itemTypeId,omitempty"`
}

// Property returns the named property rendered as a string. Missing, nil and
// empty values report false.
func (s SeedEntity) Property(id string) (string, bool) {
	v, ok := s.Properties[id]
	if !ok {
		return "", false
	}
	return valueString(v)
}

func valueString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case fmt.Stringer:
		s := val.String()
		return s, s != ""
	default:
		s := strings.TrimSpace(fmt.Sprint(val))
		return s, s != ""
	}
}

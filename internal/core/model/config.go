package model

// Logical types of values in i2 Analyze.
const (
	LogicalSingleLineString   = "SINGLE_LINE_STRING"
	LogicalMultipleLineString = "MULTIPLE_LINE_STRING"
	LogicalDate               = "DATE"
	LogicalTime               = "TIME"
	LogicalDateAndTime        = "DATE_AND_TIME"
	LogicalBoolean            = "BOOLEAN"
	LogicalInteger            = "INTEGER"
	LogicalDouble             = "DOUBLE"
	LogicalDecimal            = "DECIMAL"
	LogicalSelectedFrom       = "SELECTED_FROM"
	LogicalSuggestedFrom      = "SUGGESTED_FROM"
	LogicalGeospatial         = "GEOSPATIAL"
)

// ConnectorConfig is served from /config and tells the i2 Analyze server
// which services the connector offers.
type ConnectorConfig struct {
	DefaultValues DefaultValues  `json:"defaultValues"`
	Services      []Service      `json:"services"`
	ClientConfigs []ClientConfig `json:"clientConfigs,omitempty"`
}

type DefaultValues struct {
	TimeZoneID        string              `json:"timeZoneId"`
	ResultItemTypeIDs map[string][]string `json:"resultItemTypeIds,omitempty"`
}

// Service describes one acquire endpoint.
type Service struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	ClientConfigType string           `json:"clientConfigType"`
	ClientConfigID   string           `json:"clientConfigId,omitempty"`
	AcquireURL       string           `json:"acquireUrl"`
	SeedConstraints  *SeedConstraints `json:"seedConstraints,omitempty"`
}

type SeedConstraints struct {
	Min       int       `json:"min"`
	Max       int       `json:"max"`
	SeedTypes SeedTypes `json:"seedTypes"`
}

type SeedTypes struct {
	AllowedTypes string         `json:"allowedTypes"`
	ItemTypes    []SeedItemType `json:"itemTypes"`
}

type SeedItemType struct {
	ID  string `json:"id"`
	Min int    `json:"min"`
	Max int    `json:"max"`
}

// ClientConfig describes how the client should collect input for a service.
type ClientConfig struct {
	ID     string     `json:"id"`
	Type   string     `json:"type"`
	Config FormConfig `json:"config"`
}

type FormConfig struct {
	Sections []FormSection `json:"sections"`
}

type FormSection struct {
	Title      string          `json:"title"`
	Conditions []FormCondition `json:"conditions"`
}

type FormCondition struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Mandatory   bool   `json:"mandatory"`
	LogicalType string `json:"logicalType"`
}

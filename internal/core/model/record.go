package model

import "strings"

// SourceRecord is one row of the NYC Emergency Response Incidents dataset.
// Socrata returns every column as a string.
type SourceRecord struct {
	IncidentType string `json:"incident_type"`
	Location     string `json:"location"`
	Borough      string `json:"borough"`
	CreationDate string `json:"creation_date"`
	ClosedDate   string `json:"closed_date"`
	Latitude     string `json:"latitude"`
	Longitude    string `json:"longitude"`
}

// IncidentKey identifies the incident a row describes. Rows for the same
// incident type, at the same place and time, share the key.
func (r SourceRecord) IncidentKey() string {
	return strings.Join([]string{r.IncidentType, r.Location, r.CreationDate}, "_")
}

// LocationKey identifies the place a row refers to.
func (r SourceRecord) LocationKey() string {
	return strings.Join([]string{r.Borough, r.Location}, "_")
}

// IncidentTypeParts splits "Structural-Sidewalk Collapse" into its type and
// subtype. The subtype is empty when there is no separator.
func (r SourceRecord) IncidentTypeParts() (string, string) {
	kind, sub, _ := strings.Cut(r.IncidentType, "-")
	return kind, sub
}

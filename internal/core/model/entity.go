package model

// Item type identifiers from the connector schema.
const (
	TypeIncident  = "ET1"
	TypeLocation  = "ET2"
	TypeLocatedAt = "LT1"
)

// Entity is a node in the graph returned to Analyst's Notebook.
type Entity struct {
	ID         string                 `json:"id"`
	TypeID     string                 `json:"typeId"`
	Properties map[string]interface{} `json:"properties"`
}

// ConnectorResponse is the body returned by every acquire service.
type ConnectorResponse struct {
	Entities []Entity `json:"entities"`
	Links    []Link   `json:"links"`
}

// NewConnectorResponse returns a response whose slices marshal as [] rather
// than null.
func NewConnectorResponse() *ConnectorResponse {
	return &ConnectorResponse{
		Entities: []Entity{},
		Links:    []Link{},
	}
}

// GeospatialPoint is the GeoJSON point shape i2 Analyze expects for
// geospatial properties.
type GeospatialPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// PointWithCoordinates builds a point from a longitude and latitude.
func PointWithCoordinates(longitude, latitude float64) GeospatialPoint {
	return GeospatialPoint{
		Type:        "Point",
		Coordinates: [2]float64{longitude, latitude},
	}
}

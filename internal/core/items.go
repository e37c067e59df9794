package core

import (
	"fmt"
	"strconv"
	"time"

	"github.com/IBM-i2/analyze-connect/internal/core/model"
)

// Property ids of the incident and location item types.
const (
	propIncidentType    = "PT1"
	propIncidentSubtype = "PT2"
	propCreationDate    = "PT3"
	propCreationTime    = "PT4"
	propClosedDate      = "PT5"
	propClosedTime      = "PT6"
	propBorough         = "PT7"
	propAddress         = "PT8"
	propCoordinates     = "PT9"
)

// Socrata floating timestamps, with and without milliseconds.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

func newIncident(rec model.SourceRecord, key string) model.Entity {
	props := map[string]interface{}{}
	kind, sub := rec.IncidentTypeParts()
	setString(props, propIncidentType, kind)
	setString(props, propIncidentSubtype, sub)
	setTimestamp(props, propCreationDate, propCreationTime, rec.CreationDate)
	setTimestamp(props, propClosedDate, propClosedTime, rec.ClosedDate)

	return model.Entity{
		ID:         key,
		TypeID:     model.TypeIncident,
		Properties: props,
	}
}

func newLocation(rec model.SourceRecord, key string) model.Entity {
	props := map[string]interface{}{}
	setString(props, propBorough, rec.Borough)
	setString(props, propAddress, rec.Location)

	lat, errLat := strconv.ParseFloat(rec.Latitude, 64)
	lon, errLon := strconv.ParseFloat(rec.Longitude, 64)
	if errLat == nil && errLon == nil {
		props[propCoordinates] = model.PointWithCoordinates(lon, lat)
	}

	return model.Entity{
		ID:         key,
		TypeID:     model.TypeLocation,
		Properties: props,
	}
}

// newLocationLink joins an incident to its location. position is the 1-based
// row number, which keeps ids unique when a pair repeats.
func newLocationLink(incident, location model.Entity, position int) model.Link {
	return model.Link{
		ID:            fmt.Sprintf("%s-%s-%d", incident.ID, location.ID, position),
		TypeID:        model.TypeLocatedAt,
		FromEndID:     incident.ID,
		ToEndID:       location.ID,
		LinkDirection: model.DirectionWith,
	}
}

func setString(props map[string]interface{}, id, value string) {
	if value != "" {
		props[id] = value
	}
}

// setTimestamp splits a timestamp into DATE and TIME properties. A value that
// does not parse is kept whole in the date property.
func setTimestamp(props map[string]interface{}, dateID, timeID, raw string) {
	if raw == "" {
		return
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			props[dateID] = ts.Format("2006-01-02")
			props[timeID] = ts.Format("15:04:05")
			return
		}
	}
	props[dateID] = raw
}

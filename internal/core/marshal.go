package core

import (
	"github.com/IBM-i2/analyze-connect/internal/core/model"
)

// graphBuilder collects entities and links for one response. Entities are
// deduplicated per type by key and kept in first-seen order; links are never
// deduplicated.
type graphBuilder struct {
	seen map[string]map[string]int
	resp *model.ConnectorResponse
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{
		seen: map[string]map[string]int{},
		resp: model.NewConnectorResponse(),
	}
}

// entity returns the entity already recorded under typeID and key, or records
// the one returned by create.
func (g *graphBuilder) entity(typeID, key string, create func() model.Entity) model.Entity {
	byKey, ok := g.seen[typeID]
	if !ok {
		byKey = map[string]int{}
		g.seen[typeID] = byKey
	}
	if i, ok := byKey[key]; ok {
		return g.resp.Entities[i]
	}

	e := create()
	byKey[key] = len(g.resp.Entities)
	g.resp.Entities = append(g.resp.Entities, e)
	return e
}

func (g *graphBuilder) link(l model.Link) {
	g.resp.Links = append(g.resp.Links, l)
}

func (g *graphBuilder) response() *model.ConnectorResponse {
	return g.resp
}

// MarshalRecords turns source rows into incidents, locations and one link per
// row between them.
func MarshalRecords(records []model.SourceRecord) *model.ConnectorResponse {
	g := newGraphBuilder()

	for i, rec := range records {
		incidentKey := rec.IncidentKey()
		incident := g.entity(model.TypeIncident, incidentKey, func() model.Entity {
			return newIncident(rec, incidentKey)
		})

		locationKey := rec.LocationKey()
		location := g.entity(model.TypeLocation, locationKey, func() model.Entity {
			return newLocation(rec, locationKey)
		})

		g.link(newLocationLink(incident, location, i+1))
	}

	return g.response()
}

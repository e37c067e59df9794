package server

import (
	"github.com/IBM-i2/analyze-connect/internal/core/model"
)

const searchFormID = "searchForm"

// connectorConfig lists the services offered to i2 Analyze. Result types are
// the same for every service.
func connectorConfig() model.ConnectorConfig {
	return model.ConnectorConfig{
		DefaultValues: model.DefaultValues{
			TimeZoneID: "America/New_York",
			ResultItemTypeIDs: map[string][]string{
				"INFOSTORE": {model.TypeIncident, model.TypeLocation, model.TypeLocatedAt},
			},
		},
		Services: []model.Service{
			{
				ID:               "all",
				Name:             "NYC Emergency Response Incidents: Get all",
				Description:      "Retrieve incidents and their locations, up to 50 rows",
				ClientConfigType: "NONE",
				AcquireURL:       "/all",
			},
			{
				ID:               "search",
				Name:             "NYC Emergency Response Incidents: Search",
				Description:      "Find incidents by type, borough or address",
				ClientConfigType: "FORM",
				ClientConfigID:   searchFormID,
				AcquireURL:       "/search",
			},
			{
				ID:               "findLikeThis",
				Name:             "NYC Emergency Response Incidents: Find like this incident",
				Description:      "Find incidents of the same type as the selected incident",
				ClientConfigType: "NONE",
				AcquireURL:       "/find-like-this",
				SeedConstraints: &model.SeedConstraints{
					Min: 1,
					Max: 1,
					SeedTypes: model.SeedTypes{
						AllowedTypes: "ENTITY",
						ItemTypes:    []model.SeedItemType{{ID: model.TypeIncident, Min: 1, Max: 1}},
					},
				},
			},
			{
				ID:               "expand",
				Name:             "NYC Emergency Response Incidents: Expand",
				Description:      "Find the incidents or locations connected to the selected item",
				ClientConfigType: "NONE",
				AcquireURL:       "/expand",
				SeedConstraints: &model.SeedConstraints{
					Min: 1,
					Max: 1,
					SeedTypes: model.SeedTypes{
						AllowedTypes: "ENTITY",
						ItemTypes: []model.SeedItemType{
							{ID: model.TypeIncident, Min: 0, Max: 1},
							{ID: model.TypeLocation, Min: 0, Max: 1},
						},
					},
				},
			},
			{
				ID:               "testData",
				Name:             "NYC Emergency Response Incidents: Test data",
				Description:      "Retrieve demonstration data",
				ClientConfigType: "NONE",
				AcquireURL:       "/test-data",
			},
		},
		ClientConfigs: []model.ClientConfig{
			{
				ID:   searchFormID,
				Type: "FORM",
				Config: model.FormConfig{
					Sections: []model.FormSection{{
						Title: "Search criteria",
						Conditions: []model.FormCondition{
							{ID: "incident_type", Label: "Incident type", LogicalType: model.LogicalSingleLineString},
							{ID: "borough", Label: "Borough", LogicalType: model.LogicalSingleLineString},
							{ID: "location", Label: "Address", LogicalType: model.LogicalSingleLineString},
						},
					}},
				},
			},
		},
	}
}

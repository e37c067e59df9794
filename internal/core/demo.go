package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/IBM-i2/analyze-connect/internal/core/model"
	"github.com/IBM-i2/analyze-connect/internal/driver"
)

var demoRecord = model.SourceRecord{
	IncidentType: "Structural-Sidewalk Collapse",
	Location:     "2 Broadway",
	Borough:      "Manhattan",
	CreationDate: "2017-05-25T14:31:00.000",
	ClosedDate:   "2017-05-25T18:02:00.000",
	Latitude:     "40.70477",
	Longitude:    "-74.01237",
}

// DemoDataService serves demonstration data, either a fixed row or the rows
// of a demo graph when a driver is configured.
type DemoDataService struct {
	Driver driver.GraphDriver
	Logger *slog.Logger
}

func NewDemoDataService(d driver.GraphDriver, logger *slog.Logger) *DemoDataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DemoDataService{
		Driver: d,
		Logger: logger,
	}
}

// Retrieve returns the demo entities and links.
func (s *DemoDataService) Retrieve(ctx context.Context) (*model.ConnectorResponse, error) {
	if s.Driver == nil {
		return MarshalRecords([]model.SourceRecord{demoRecord}), nil
	}

	result, err := s.Driver.ExecuteQuery(ctx, driver.DemoIncidentsQuery, map[string]interface{}{
		"limit": RowLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("reading demo graph: %w", err)
	}

	records := make([]model.SourceRecord, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, recordFromGraph(rec))
	}
	if len(records) > RowLimit {
		records = records[:RowLimit]
	}
	s.Logger.Info("demo graph read", "rows", len(records))

	return MarshalRecords(records), nil
}

func recordFromGraph(rec *neo4j.Record) model.SourceRecord {
	return model.SourceRecord{
		IncidentType: column(rec, "incident_type"),
		Location:     column(rec, "location"),
		Borough:      column(rec, "borough"),
		CreationDate: column(rec, "creation_date"),
		ClosedDate:   column(rec, "closed_date"),
		Latitude:     column(rec, "latitude"),
		Longitude:    column(rec, "longitude"),
	}
}

// column renders a record value as the dataset would: a string, empty when
// the value is absent.
func column(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

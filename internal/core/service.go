package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IBM-i2/analyze-connect/internal/core/model"
	"github.com/IBM-i2/analyze-connect/internal/socrata"
)

// Fetcher runs one query against the external dataset and decodes the rows
// into out. *socrata.Client implements it.
type Fetcher interface {
	Get(ctx context.Context, q socrata.Query, out interface{}) error
}

// ExternalDataService answers the acquire services from the Emergency
// Response Incidents dataset. It holds no per-request state.
type ExternalDataService struct {
	Client Fetcher
	Logger *slog.Logger
}

func NewExternalDataService(client Fetcher, logger *slog.Logger) *ExternalDataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExternalDataService{
		Client: client,
		Logger: logger,
	}
}

// All retrieves rows without any condition.
func (s *ExternalDataService) All(ctx context.Context) (*model.ConnectorResponse, error) {
	return s.fetch(ctx, "all", AllQuery())
}

// Search retrieves rows matching the conditions entered by the user.
func (s *ExternalDataService) Search(ctx context.Context, conditions []model.Condition) (*model.ConnectorResponse, error) {
	q, err := SearchQuery(conditions)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, "search", q)
}

// FindLikeThis retrieves incidents of the same type as the first seed.
func (s *ExternalDataService) FindLikeThis(ctx context.Context, seeds model.Seeds) (*model.ConnectorResponse, error) {
	q, err := FindLikeThisQuery(seeds)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, "findLikeThis", q)
}

// Expand retrieves the rows behind the first seed and attaches the results
// to it.
func (s *ExternalDataService) Expand(ctx context.Context, seeds model.Seeds) (*model.ConnectorResponse, error) {
	seed, err := firstSeed(seeds)
	if err != nil {
		return nil, err
	}
	sourceKey, err := seedSourceKey(seed)
	if err != nil {
		return nil, err
	}
	q, err := ExpandQuery(seed)
	if err != nil {
		return nil, err
	}
	if kindOf(seed.TypeID) == seedUnhandled {
		s.Logger.Warn("expand seed type has no filter, fetching unfiltered rows",
			"seedId", seed.SeedID, "typeId", seed.TypeID)
	}

	resp, err := s.fetch(ctx, "expand", q)
	if err != nil {
		return nil, err
	}
	linkToSeed(resp.Links, seed.SeedID, sourceKey)
	return resp, nil
}

func (s *ExternalDataService) fetch(ctx context.Context, op string, q socrata.Query) (*model.ConnectorResponse, error) {
	var records []model.SourceRecord
	if err := s.Client.Get(ctx, q, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(records) > RowLimit {
		records = records[:RowLimit]
	}

	resp := MarshalRecords(records)
	s.Logger.Info("acquired",
		"op", op,
		"rows", len(records),
		"entities", len(resp.Entities),
		"links", len(resp.Links))
	return resp, nil
}

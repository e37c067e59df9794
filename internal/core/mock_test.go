package core

import (
	"context"
	"encoding/json"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/IBM-i2/analyze-connect/internal/socrata"
)

type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	MockResult    neo4j.EagerResult
	Err           error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

// MockFetcher records the queries it receives and answers with Response,
// a JSON array of dataset rows.
type MockFetcher struct {
	Response string
	Err      error
	Queries  []socrata.Query
}

func (m *MockFetcher) Get(ctx context.Context, q socrata.Query, out interface{}) error {
	m.Queries = append(m.Queries, q)
	if m.Err != nil {
		return m.Err
	}
	body := m.Response
	if body == "" {
		body = "[]"
	}
	return json.Unmarshal([]byte(body), out)
}

func (m *MockFetcher) LastQuery() socrata.Query {
	if len(m.Queries) == 0 {
		return socrata.Query{}
	}
	return m.Queries[len(m.Queries)-1]
}

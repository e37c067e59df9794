package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/IBM-i2/analyze-connect/internal/core/model"
)

func main() {
	baseURL := os.Getenv("CONNECTOR_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3700"
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting smoke test against", baseURL)

	fmt.Println("1. Reading connector config...")
	var cfg model.ConnectorConfig
	if !sendRequest(baseURL, http.MethodGet, "/config", nil, &cfg) || len(cfg.Services) == 0 {
		fmt.Println("FAILED: Config")
		os.Exit(1)
	}
	fmt.Printf("PASSED: Config (%d services)\n", len(cfg.Services))

	fmt.Println("2. Retrieving all incidents...")
	var all model.ConnectorResponse
	if !sendRequest(baseURL, http.MethodPost, "/all", nil, &all) {
		fmt.Println("FAILED: All")
		os.Exit(1)
	}
	fmt.Printf("PASSED: All (%d entities, %d links)\n", len(all.Entities), len(all.Links))

	fmt.Println("3. Searching by borough...")
	search := model.ConnectorRequest{Payload: model.Payload{Conditions: []model.Condition{
		{ID: "borough", LogicalType: model.LogicalSingleLineString, Value: "Manhattan"},
	}}}
	var found model.ConnectorResponse
	if !sendRequest(baseURL, http.MethodPost, "/search", search, &found) {
		fmt.Println("FAILED: Search")
		os.Exit(1)
	}
	fmt.Printf("PASSED: Search (%d entities)\n", len(found.Entities))

	fmt.Println("4. Retrieving test data...")
	var demo model.ConnectorResponse
	if !sendRequest(baseURL, http.MethodPost, "/test-data", nil, &demo) || len(demo.Entities) == 0 {
		fmt.Println("FAILED: Test data")
		os.Exit(1)
	}
	fmt.Println("PASSED: Test data")
}

func sendRequest(baseURL, method, endpoint string, payload, out interface{}) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		fmt.Printf("Error decoding response: %v\n", err)
		return false
	}
	return true
}

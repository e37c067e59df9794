package driver

const (
	// DemoIncidentsQuery returns the demo graph as dataset-shaped rows, one per
	// incident/location pair. Column names match the dataset's JSON fields.
	DemoIncidentsQuery = `
		MATCH (i:Incident)-[:LOCATED_AT]->(l:Location)
		RETURN i.incident_type AS incident_type,
			l.address AS location,
			l.borough AS borough,
			i.creation_date AS creation_date,
			i.closed_date AS closed_date,
			l.latitude AS latitude,
			l.longitude AS longitude
		ORDER BY creation_date
		LIMIT $limit
	`
)

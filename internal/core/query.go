package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/IBM-i2/analyze-connect/internal/apperr"
	"github.com/IBM-i2/analyze-connect/internal/core/model"
	"github.com/IBM-i2/analyze-connect/internal/socrata"
)

// RowLimit is the most rows fetched by one call, whatever the operation.
const RowLimit = 50

const (
	limitField = "limitValue"
	baseQuery  = "?$limit={" + limitField + "}"

	where = "&$where="
	like  = " like "
	is    = "="
	and   = " AND "

	fieldIncidentType = "incident_type"
	fieldBorough      = "borough"
	fieldAddress      = "location"
)

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// seedKind is the variant of a seed entity, decided by its type id.
type seedKind int

const (
	seedUnhandled seedKind = iota
	seedIncident
	seedLocation
)

func kindOf(typeID string) seedKind {
	switch typeID {
	case model.TypeIncident:
		return seedIncident
	case model.TypeLocation:
		return seedLocation
	default:
		return seedUnhandled
	}
}

func limitParam() socrata.Param {
	return socrata.Param{Name: limitField, Value: strconv.Itoa(RowLimit)}
}

// AllQuery fetches rows without any filter.
func AllQuery() socrata.Query {
	return socrata.Query{
		Path:   baseQuery,
		Params: []socrata.Param{limitParam()},
	}
}

// SearchQuery turns the form conditions into prefix matches, in the order
// given. Blank conditions are skipped; the first condition that is set opens
// the where clause and every later one is joined with AND.
func SearchQuery(conditions []model.Condition) (socrata.Query, error) {
	var path strings.Builder
	path.WriteString(baseQuery)
	params := []socrata.Param{limitParam()}

	n := 0
	for _, c := range conditions {
		value, ok := c.StringValue()
		if !ok {
			continue
		}
		if !fieldPattern.MatchString(c.ID) {
			return socrata.Query{}, &apperr.InvalidConditionError{FieldID: c.ID}
		}

		n++
		if n == 1 {
			path.WriteString(where)
		} else {
			path.WriteString(and)
		}
		name := fmt.Sprintf("%s_%d", c.ID, n)
		path.WriteString(c.ID + like + "'{" + name + "}%'")
		params = append(params, socrata.Param{Name: name, Value: value})
	}

	return socrata.Query{Path: path.String(), Params: params}, nil
}

// FindLikeThisQuery matches incidents whose type starts with the type of the
// first seed. Other seed properties are ignored.
func FindLikeThisQuery(seeds model.Seeds) (socrata.Query, error) {
	seed, err := firstSeed(seeds)
	if err != nil {
		return socrata.Query{}, err
	}
	incidentType, ok := seed.Property(propIncidentType)
	if !ok {
		return socrata.Query{}, missingProperty(seed, propIncidentType)
	}

	return socrata.Query{
		Path: baseQuery + where + fieldIncidentType + like + "'{incidentType}%'",
		Params: []socrata.Param{
			limitParam(),
			{Name: "incidentType", Value: incidentType},
		},
	}, nil
}

// ExpandQuery finds the rows an entity was built from. A seed of any type
// other than incident or location gets the unfiltered query.
func ExpandQuery(seed model.SeedEntity) (socrata.Query, error) {
	switch kindOf(seed.TypeID) {
	case seedIncident:
		incidentType, ok := seed.Property(propIncidentType)
		if !ok {
			return socrata.Query{}, missingProperty(seed, propIncidentType)
		}
		subtype, ok := seed.Property(propIncidentSubtype)
		if !ok {
			return socrata.Query{}, missingProperty(seed, propIncidentSubtype)
		}
		return socrata.Query{
			Path: baseQuery + where + fieldIncidentType + is + "'{value}'",
			Params: []socrata.Param{
				limitParam(),
				{Name: "value", Value: incidentType + "-" + subtype},
			},
		}, nil

	case seedLocation:
		borough, ok := seed.Property(propBorough)
		if !ok {
			return socrata.Query{}, missingProperty(seed, propBorough)
		}
		address, ok := seed.Property(propAddress)
		if !ok {
			return socrata.Query{}, missingProperty(seed, propAddress)
		}
		return socrata.Query{
			Path: baseQuery + where +
				fieldBorough + is + "'{value_borough}'" + and +
				fieldAddress + is + "'{value_address}'",
			Params: []socrata.Param{
				limitParam(),
				{Name: "value_borough", Value: borough},
				{Name: "value_address", Value: address},
			},
		}, nil

	default:
		return AllQuery(), nil
	}
}

func firstSeed(seeds model.Seeds) (model.SeedEntity, error) {
	if len(seeds.Entities) == 0 {
		return model.SeedEntity{}, &apperr.MalformedSeedError{Reason: "no seed entities"}
	}
	return seeds.Entities[0], nil
}

func missingProperty(seed model.SeedEntity, property string) error {
	return &apperr.MalformedSeedError{
		Reason: fmt.Sprintf("seed %q of type %s has no value for %s", seed.SeedID, seed.TypeID, property),
	}
}

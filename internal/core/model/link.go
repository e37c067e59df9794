package model

// Link directions understood by i2 Analyze.
const (
	DirectionWith    = "WITH"
	DirectionAgainst = "AGAINST"
	DirectionNone    = "NONE"
	DirectionBoth    = "BOTH"
)

// Link is an edge between two entities of the same response. FromEndID and
// ToEndID hold entity ids, or a seed id after seed linking.
type Link struct {
	ID            string                 `json:"id"`
	TypeID        string                 `json:"typeId"`
	FromEndID     string                 `json:"fromEndId"`
	ToEndID       string                 `json:"toEndId"`
	LinkDirection string                 `json:"linkDirection"`
	Properties    map[string]interface{} `json:"properties,omitempty"`
}

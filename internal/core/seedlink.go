package core

import (
	"github.com/IBM-i2/analyze-connect/internal/apperr"
	"github.com/IBM-i2/analyze-connect/internal/core/model"
)

// seedSourceKey returns the key that identifies the seed's own record: the
// third element of its first source id key. This is positional and depends
// on how the dataset's source ids are encoded; there is no general rule
// behind it.
func seedSourceKey(seed model.SeedEntity) (string, error) {
	if len(seed.SourceIDs) == 0 {
		return "", &apperr.MalformedSeedError{Reason: "seed " + seed.SeedID + " has no source ids"}
	}
	key := seed.SourceIDs[0].Key
	if len(key) < 3 {
		return "", &apperr.MalformedSeedError{Reason: "seed " + seed.SeedID + " source id key has fewer than 3 parts"}
	}
	return key[2], nil
}

// linkToSeed points link ends that refer to the seed's record at the seed id
// instead, so the client attaches the new links to the existing item. At most
// one end of each link is rewritten, the from end taking precedence.
func linkToSeed(links []model.Link, seedID, sourceKey string) {
	for i := range links {
		l := &links[i]
		if l.FromEndID == sourceKey {
			l.FromEndID = seedID
		} else if l.ToEndID == sourceKey {
			l.ToEndID = seedID
		}
	}
}

package records

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeUpdater struct {
	matched int64
	err     error
	calls   int
}

func (f *fakeUpdater) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &mongo.UpdateResult{MatchedCount: f.matched}, nil
}

func TestUpdateFirstMatch_FirstCollectionWins(t *testing.T) {
	primary := &fakeUpdater{matched: 1}
	legacy := &fakeUpdater{matched: 1}

	matched, err := updateFirstMatch(context.Background(),
		bson.M{"_id": "att-1"}, bson.M{"$set": bson.M{"duration": 45}},
		primary, legacy)

	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, legacy.calls, "legacy collection should not be touched after a hit")
}

func TestUpdateFirstMatch_FallsBackToLegacyCollection(t *testing.T) {
	primary := &fakeUpdater{matched: 0}
	legacy := &fakeUpdater{matched: 1}

	matched, err := updateFirstMatch(context.Background(),
		bson.M{"_id": "att-legacy"}, bson.M{"$set": bson.M{"duration": 45}},
		primary, legacy)

	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, legacy.calls)
}

func TestUpdateFirstMatch_ErrorFallsThrough(t *testing.T) {
	primary := &fakeUpdater{err: errors.New("socket closed")}
	legacy := &fakeUpdater{matched: 1}

	matched, err := updateFirstMatch(context.Background(),
		bson.M{"_id": "sub-1"}, bson.M{"$inc": bson.M{"totalVisits": 1}},
		primary, legacy)

	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)
}

func TestUpdateFirstMatch_NoCollectionHoldsDocument(t *testing.T) {
	primary := &fakeUpdater{matched: 0}
	legacy := &fakeUpdater{matched: 0}

	matched, err := updateFirstMatch(context.Background(),
		bson.M{"_id": "gone"}, bson.M{"$set": bson.M{"duration": 45}},
		primary, legacy)

	require.NoError(t, err)
	assert.Zero(t, matched)
}

func TestUpdateFirstMatch_AllCandidatesFail(t *testing.T) {
	first := errors.New("socket closed")
	primary := &fakeUpdater{err: first}
	legacy := &fakeUpdater{err: errors.New("timeout")}

	matched, err := updateFirstMatch(context.Background(),
		bson.M{"_id": "att-1"}, bson.M{"$set": bson.M{"duration": 45}},
		primary, legacy)

	assert.Zero(t, matched)
	assert.ErrorIs(t, err, first)
}

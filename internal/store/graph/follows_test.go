package graph_test

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autistnet/internal/domain"
	"autistnet/internal/store/graph"
)

type call struct {
	query  string
	params map[string]any
}

type fakeRunner struct {
	calls  []call
	result *neo4j.EagerResult
	err    error
}

func (f *fakeRunner) Run(_ context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	f.calls = append(f.calls, call{query, params})
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &neo4j.EagerResult{}, nil
	}
	return f.result, nil
}

func TestSetFollow_MergesAndDeletes(t *testing.T) {
	runner := &fakeRunner{}
	m := graph.NewFollowMirror(runner, nil)
	edge := domain.FollowEdge{Follower: "u1", Followee: "gov1"}

	require.NoError(t, m.SetFollow(context.Background(), edge, true))
	require.NoError(t, m.SetFollow(context.Background(), edge, false))

	require.Len(t, runner.calls, 2)
	assert.Contains(t, runner.calls[0].query, "MERGE (a)-[:FOLLOWS]->(b)")
	assert.Contains(t, runner.calls[1].query, "DELETE r")
	for _, c := range runner.calls {
		assert.Equal(t, map[string]any{"follower": "u1", "followee": "gov1"}, c.params)
	}
}

func TestSetFollow_WrapsRunnerError(t *testing.T) {
	boom := errors.New("connection refused")
	m := graph.NewFollowMirror(&fakeRunner{err: boom}, nil)

	err := m.SetFollow(context.Background(), domain.FollowEdge{Follower: "a", Followee: "b"}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "a->b")
}

func TestFollowees_ReadsRecords(t *testing.T) {
	runner := &fakeRunner{result: &neo4j.EagerResult{
		Keys: []string{"id"},
		Records: []*neo4j.Record{
			{Keys: []string{"id"}, Values: []any{"gov1"}},
			{Keys: []string{"id"}, Values: []any{"u2"}},
		},
	}}
	m := graph.NewFollowMirror(runner, nil)

	got, err := m.Followees(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []domain.UserID{"gov1", "u2"}, got)
	assert.Equal(t, "u1", runner.calls[0].params["follower"])
}

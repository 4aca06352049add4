// Package graph mirrors the follow set into Neo4j as
// (:Account {id})-[:FOLLOWS]->(:Account {id}) relationships.
package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"autistnet/internal/domain"
)

// Runner executes a Cypher query and returns a fully-buffered result.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// Neo4jRunner runs queries through the official driver.
type Neo4jRunner struct {
	Driver neo4j.DriverWithContext
	DBName string
}

// NewNeo4jRunner creates the driver. Connectivity is not checked; call Verify.
func NewNeo4jRunner(uri, username, password, dbName string) (*Neo4jRunner, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("could not create Neo4j driver: %w", err)
	}
	return &Neo4jRunner{Driver: driver, DBName: dbName}, nil
}

// Verify checks connectivity to the server.
func (r *Neo4jRunner) Verify(ctx context.Context) error {
	return r.Driver.VerifyConnectivity(ctx)
}

// Run executes query with ExecuteQuery, which manages the session and transaction.
func (r *Neo4jRunner) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, r.Driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(r.DBName),
	)
	if err != nil {
		return nil, fmt.Errorf("error executing neo4j query: %w", err)
	}
	return result, nil
}

// Close shuts the driver down.
func (r *Neo4jRunner) Close(ctx context.Context) error { return r.Driver.Close(ctx) }

const (
	followQuery = `MERGE (a:Account {id: $follower})
MERGE (b:Account {id: $followee})
MERGE (a)-[:FOLLOWS]->(b)`

	unfollowQuery = `MATCH (:Account {id: $follower})-[r:FOLLOWS]->(:Account {id: $followee})
DELETE r`

	followeesQuery = `MATCH (:Account {id: $follower})-[:FOLLOWS]->(b:Account)
RETURN b.id AS id ORDER BY id`
)

// FollowMirror keeps the Neo4j follow graph in step with the feed.
type FollowMirror struct {
	runner Runner
	logger *slog.Logger
}

// NewFollowMirror returns a FollowMirror writing through runner.
func NewFollowMirror(runner Runner, logger *slog.Logger) *FollowMirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &FollowMirror{runner: runner, logger: logger}
}

// SetFollow creates or removes the FOLLOWS relationship for edge.
func (m *FollowMirror) SetFollow(ctx context.Context, edge domain.FollowEdge, following bool) error {
	query := unfollowQuery
	if following {
		query = followQuery
	}
	params := map[string]any{
		"follower": edge.Follower.String(),
		"followee": edge.Followee.String(),
	}
	if _, err := m.runner.Run(ctx, query, params); err != nil {
		return fmt.Errorf("mirror follow %s->%s: %w", edge.Follower, edge.Followee, err)
	}
	m.logger.Debug("Follow mirrored",
		slog.String("follower", edge.Follower.String()),
		slog.String("followee", edge.Followee.String()),
		slog.Bool("following", following))
	return nil
}

// Followees returns the ids follower follows according to the graph.
func (m *FollowMirror) Followees(ctx context.Context, follower domain.UserID) ([]domain.UserID, error) {
	result, err := m.runner.Run(ctx, followeesQuery, map[string]any{"follower": follower.String()})
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserID, 0, len(result.Records))
	for _, rec := range result.Records {
		v, ok := rec.Get("id")
		if !ok {
			continue
		}
		if id, ok := v.(string); ok {
			out = append(out, domain.UserID(id))
		}
	}
	return out, nil
}

var _ domain.FollowMirror = (*FollowMirror)(nil)

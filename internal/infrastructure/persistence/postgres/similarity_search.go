package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/internal/infrastructure/config"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"go.uber.org/zap"
)

// Embedder turns text into an embedding vector
type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// SimilaritySearch ranks recipes against a query through pgvector.
// Embeddings live in their own table keyed by recipe id, so the main
// recipe schema stays portable to sqlite and memory backends.
type SimilaritySearch struct {
	pool     *pgxpool.Pool
	embedder Embedder
	logger   *zap.Logger
}

// NewSimilaritySearch creates a pgvector-backed similarity search
func NewSimilaritySearch(pool *pgxpool.Pool, embedder Embedder, logger *zap.Logger) *SimilaritySearch {
	return &SimilaritySearch{
		pool:     pool,
		embedder: embedder,
		logger:   logger.Named("similarity-search"),
	}
}

var _ outbound.SimilaritySearchService = (*SimilaritySearch)(nil)

// NewPgxPool opens a pgx connection pool for vector queries. GORM keeps
// its own pool; pgx is only used where the vector type matters.
func NewPgxPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Rank returns recipe ids ordered by increasing cosine distance to the
// query. An empty result is valid; the caller decides what to do then.
func (s *SimilaritySearch) Rank(ctx context.Context, query string, workspaceID uuid.UUID, maxResults int) ([]uuid.UUID, error) {
	embedding, err := s.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT recipe_id
		FROM recipe_embeddings
		WHERE workspace_id = $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`, pgvector.NewVector(embedding), workspaceID.String(), maxResults)
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan recipe id: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			s.logger.Warn("Skipping malformed recipe id in embeddings table", zap.String("recipe_id", raw))
			continue
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}

	s.logger.Debug("Ranked recipes by similarity",
		zap.String("workspace_id", workspaceID.String()),
		zap.Int("results", len(ids)),
	)

	return ids, nil
}

// IndexRecipe embeds a recipe and upserts its vector. Call it whenever
// a recipe is created or its searchable text changes.
func (s *SimilaritySearch) IndexRecipe(ctx context.Context, r *recipe.Recipe) error {
	embedding, err := s.embedder.CreateEmbedding(ctx, searchDocument(r))
	if err != nil {
		return fmt.Errorf("failed to embed recipe: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO recipe_embeddings (recipe_id, workspace_id, embedding, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (recipe_id)
		DO UPDATE SET embedding = EXCLUDED.embedding, updated_at = now()
	`, r.ID().String(), r.WorkspaceID().String(), pgvector.NewVector(embedding))
	if err != nil {
		return fmt.Errorf("failed to upsert embedding: %w", err)
	}

	return nil
}

// RemoveRecipe drops a recipe's vector after the recipe is deleted
func (s *SimilaritySearch) RemoveRecipe(ctx context.Context, recipeID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM recipe_embeddings WHERE recipe_id = $1`, recipeID.String())
	if err != nil {
		return fmt.Errorf("failed to delete embedding: %w", err)
	}
	return nil
}

// searchDocument flattens the searchable recipe text into one string
func searchDocument(r *recipe.Recipe) string {
	parts := []string{r.Title()}
	parts = append(parts, r.Tags()...)
	for _, ing := range r.Ingredients() {
		parts = append(parts, ing.Name)
	}
	return strings.Join(parts, " ")
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"core/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db       *sqlx.DB
	pageSize int
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn, pageSize int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db, pageSize: pageSize}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

const warehouseColumns = `
	id, city, state, address, total_sqft, rate_per_sqft, structure_type,
	docks, clear_height_ft, compliances, availability, zone, is_broker,
	fire_noc, land_type, description, created_at, updated_at`

// buildWhere translates filters into a WHERE clause with positional args.
func buildWhere(filters *model.SearchFilters) (string, []interface{}, int) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filters == nil {
		return strings.Join(whereClauses, " AND "), args, argIndex
	}

	if len(filters.Cities) > 0 {
		placeholders := make([]string, len(filters.Cities))
		for i, city := range filters.Cities {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, city)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("city ILIKE ANY(ARRAY[%s])", strings.Join(placeholders, ", ")))
	} else if filters.State != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("state ILIKE $%d", argIndex))
		args = append(args, "%"+*filters.State+"%")
		argIndex++
	}
	if filters.SizeMin != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("total_sqft >= $%d", argIndex))
		args = append(args, *filters.SizeMin)
		argIndex++
	}
	if filters.SizeMax != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("total_sqft <= $%d", argIndex))
		args = append(args, *filters.SizeMax)
		argIndex++
	}
	if filters.RateMin != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("rate_per_sqft >= $%d", argIndex))
		args = append(args, *filters.RateMin)
		argIndex++
	}
	if filters.RateMax != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("rate_per_sqft <= $%d", argIndex))
		args = append(args, *filters.RateMax)
		argIndex++
	}
	if filters.StructureType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("structure_type ILIKE $%d", argIndex))
		args = append(args, "%"+*filters.StructureType+"%")
		argIndex++
	}
	if filters.MinDocks != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("docks >= $%d", argIndex))
		args = append(args, *filters.MinDocks)
		argIndex++
	}
	if filters.Compliances != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("compliances ILIKE $%d", argIndex))
		args = append(args, "%"+*filters.Compliances+"%")
		argIndex++
	}
	if filters.FireNOCRequired != nil && *filters.FireNOCRequired {
		whereClauses = append(whereClauses, "fire_noc = true")
	}
	if filters.LandTypeIndustrial != nil && *filters.LandTypeIndustrial {
		whereClauses = append(whereClauses, fmt.Sprintf("land_type ILIKE $%d", argIndex))
		args = append(args, "%industrial%")
		argIndex++
	}

	return strings.Join(whereClauses, " AND "), args, argIndex
}

// SearchWarehouses performs a filtered, paginated search. If the first
// page comes back empty and a rate cap is set, the cap is raised by 15%
// and the search retried once; the returned bool reports that relaxation.
func (r *PostgresRepository) SearchWarehouses(
	ctx context.Context,
	filters *model.SearchFilters,
	page int,
) ([]model.Warehouse, int, bool, error) {
	warehouses, total, err := r.searchPage(ctx, filters, page)
	if err != nil {
		return nil, 0, false, err
	}

	if len(warehouses) == 0 && page == 1 && filters != nil && filters.RateMax != nil {
		relaxed := *filters
		raisedRate := int(float64(*filters.RateMax) * 1.15)
		relaxed.RateMax = &raisedRate

		warehouses, total, err = r.searchPage(ctx, &relaxed, page)
		if err != nil {
			return nil, 0, false, err
		}
		if len(warehouses) > 0 {
			return warehouses, total, true, nil
		}
	}

	return warehouses, total, false, nil
}

// searchPage executes a single filtered page query.
func (r *PostgresRepository) searchPage(
	ctx context.Context,
	filters *model.SearchFilters,
	page int,
) ([]model.Warehouse, int, error) {
	if page < 1 {
		page = 1
	}
	whereClause, args, argIndex := buildWhere(filters)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM warehouses WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count results: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM warehouses
		WHERE %s
		ORDER BY id DESC
		LIMIT $%d OFFSET $%d
	`, warehouseColumns, whereClause, argIndex, argIndex+1)

	args = append(args, r.pageSize, (page-1)*r.pageSize)

	var warehouses []model.Warehouse
	if err := r.db.SelectContext(ctx, &warehouses, selectQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch warehouses: %w", err)
	}

	return warehouses, total, nil
}

// VectorSearch returns warehouses closest to the query embedding, still
// honoring the structured filters.
func (r *PostgresRepository) VectorSearch(
	ctx context.Context,
	queryEmbedding []float32,
	filters *model.SearchFilters,
	limit int,
) ([]model.Warehouse, error) {
	whereClause, args, argIndex := buildWhere(filters)

	query := fmt.Sprintf(`
		SELECT %s
		FROM warehouses
		WHERE %s AND embedding IS NOT NULL
		ORDER BY embedding <=> $%d
		LIMIT $%d
	`, warehouseColumns, whereClause, argIndex, argIndex+1)

	args = append(args, pgvector.NewVector(queryEmbedding), limit)

	var warehouses []model.Warehouse
	if err := r.db.SelectContext(ctx, &warehouses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to run vector search: %w", err)
	}

	return warehouses, nil
}

// GetWarehouseByID retrieves a single warehouse by its ID
func (r *PostgresRepository) GetWarehouseByID(ctx context.Context, id int64) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	query := fmt.Sprintf("SELECT %s FROM warehouses WHERE id = $1", warehouseColumns)
	err := r.db.GetContext(ctx, &warehouse, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get warehouse: %w", err)
	}
	return &warehouse, nil
}

// UpdateEmbedding updates the embedding vector for a warehouse
func (r *PostgresRepository) UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	query := `UPDATE warehouses SET embedding = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, vec, id)
	if err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	return nil
}

// BatchUpdateEmbeddings updates embeddings for multiple warehouses
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE warehouses SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		_, err := stmt.ExecContext(ctx, vec, item.WarehouseID)
		if err != nil {
			errors = append(errors, fmt.Sprintf("warehouse_id %d: %v", item.WarehouseID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// LogSearch records a dispatched search
func (r *PostgresRepository) LogSearch(ctx context.Context, searchID string, filters *model.SearchFilters, resultCount, page int, responseTimeMs int) error {
	logQuery := `
		INSERT INTO search_logs (search_id, filters, result_count, page, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, logQuery, searchID, filtersJSON(filters), resultCount, page, responseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// filtersJSON serializes filters for the jsonb column; a nil or broken
// filter set degrades to an empty object rather than failing the insert.
func filtersJSON(f *model.SearchFilters) []byte {
	b, err := json.Marshal(f)
	if err != nil || f == nil {
		return []byte("{}")
	}
	return b
}

// LogFeedback records a user action against a logged search
func (r *PostgresRepository) LogFeedback(ctx context.Context, searchID string, warehouseID int64, action string) error {
	query := `
		UPDATE search_logs
		SET clicked_warehouse_id = $2, action = $3
		WHERE search_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, searchID, warehouseID, action)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}

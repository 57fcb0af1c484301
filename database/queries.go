package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Prasanthk4/doc-intelligence-platform/helper"
	"github.com/Prasanthk4/doc-intelligence-platform/model"
	loadSql "github.com/Prasanthk4/doc-intelligence-platform/sql"
)

// QueriesDBHandlerFunctions defines the interface for query log database operations.
type QueriesDBHandlerFunctions interface {
	InsertQuery(ctx context.Context, record *model.QueryRecord) error
	SelectRecentQueries(ctx context.Context, limit int) ([]*model.QueryRecord, error)
	CountQueries(ctx context.Context) (int, error)
	ClearQueries(ctx context.Context) error
}

// QueriesDBHandler handles query log database operations.
type QueriesDBHandler struct {
	db *helper.Database
}

// NewQueriesDBHandler creates a new query log database handler.
// It initializes the database connection and loads query-log-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewQueriesDBHandler(db *helper.Database, force bool) (*QueriesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	queriesDbHandler := &QueriesDBHandler{
		db: db,
	}

	err := loadSql.LoadQueriesSql(queriesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load queries sql", err)
	}

	err = queriesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized QueriesDBHandler")

	return queriesDbHandler, nil
}

// CreateTable creates the 'queries' table in the database.
// If the table already exists, it does not create it again.
func (h *QueriesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_queries();`)
	if err != nil {
		log.Panicf("error initializing queries table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table queries")

	return nil
}

// InsertQuery records one answered question.
func (h *QueriesDBHandler) InsertQuery(ctx context.Context, record *model.QueryRecord) error {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM insert_query($1, $2, $3)`,
		record.Question,
		record.DurationMS,
		record.NumSources,
	)

	err := row.Scan(
		&record.ID,
		&record.RID,
		&record.Question,
		&record.DurationMS,
		&record.NumSources,
		&record.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectRecentQueries returns the most recent query records, newest first.
func (h *QueriesDBHandler) SelectRecentQueries(ctx context.Context, limit int) ([]*model.QueryRecord, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_recent_queries($1)`,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var records []*model.QueryRecord
	for rows.Next() {
		record := &model.QueryRecord{}
		err := rows.Scan(
			&record.ID,
			&record.RID,
			&record.Question,
			&record.DurationMS,
			&record.NumSources,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		records = append(records, record)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return records, nil
}

// CountQueries returns the total number of logged queries.
func (h *QueriesDBHandler) CountQueries(ctx context.Context) (int, error) {
	var count int
	err := h.db.Instance.QueryRowContext(ctx, `SELECT count_queries()`).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return count, nil
}

// ClearQueries removes all logged queries.
func (h *QueriesDBHandler) ClearQueries(ctx context.Context) error {
	_, err := h.db.Instance.ExecContext(ctx, `SELECT clear_queries()`)
	if err != nil {
		return helper.NewError("exec", err)
	}

	return nil
}

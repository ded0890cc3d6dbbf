package seeder

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// DefaultBatchSize is how many rows go into one INSERT statement. The
// size is a throughput tuning knob, not a correctness one.
const DefaultBatchSize = 500

// Loader persists a stage's resolved rows and hands back the generated
// surrogate keys in input order. Stages with a composite identity and no
// surrogate key pass pk == "" and get no keys back.
type Loader interface {
	Persist(ctx context.Context, table string, columns []string, rows []Row, pk string) ([]int64, error)
}

// PgxLoader runs set-based inserts on the single transaction owning the
// run. Rows are chunked into fixed-size batches; each batch is one
// INSERT ... VALUES ... RETURNING statement that fully succeeds or fully
// fails. A failed batch surfaces immediately, retries are the caller's
// decision.
type PgxLoader struct {
	tx        pgx.Tx
	qb        squirrel.StatementBuilderType
	batchSize int
}

func NewPgxLoader(tx pgx.Tx, batchSize int) *PgxLoader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &PgxLoader{
		tx:        tx,
		qb:        squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		batchSize: batchSize,
	}
}

func (l *PgxLoader) Persist(ctx context.Context, table string, columns []string, rows []Row, pk string) ([]int64, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	var keys []int64
	if pk != "" {
		keys = make([]int64, 0, len(rows))
	}

	for start := 0; start < len(rows); start += l.batchSize {
		chunk := rows[start:min(start+l.batchSize, len(rows))]

		query, args, err := buildInsert(l.qb, table, columns, chunk, pk)
		if err != nil {
			return nil, fmt.Errorf("build insert for %s: %w", table, err)
		}

		if pk == "" {
			if _, err := l.tx.Exec(ctx, query, args...); err != nil {
				return nil, fmt.Errorf("insert batch into %s: %w", table, err)
			}
			continue
		}

		batchKeys, err := l.queryKeys(ctx, query, args)
		if err != nil {
			return nil, fmt.Errorf("insert batch into %s: %w", table, err)
		}
		keys = append(keys, batchKeys...)
	}

	if pk != "" && len(keys) != len(rows) {
		return nil, fmt.Errorf("insert into %s returned %d keys for %d rows", table, len(keys), len(rows))
	}
	return keys, nil
}

func (l *PgxLoader) queryKeys(ctx context.Context, query string, args []any) ([]int64, error) {
	result, err := l.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	var keys []int64
	for result.Next() {
		var key int64
		if err := result.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, result.Err()
}

func buildInsert(qb squirrel.StatementBuilderType, table string, columns []string, chunk []Row, pk string) (string, []any, error) {
	builder := qb.Insert(table).Columns(columns...)
	for _, row := range chunk {
		values := make([]any, len(columns))
		for i, column := range columns {
			values[i] = row[column]
		}
		builder = builder.Values(values...)
	}
	if pk != "" {
		builder = builder.Suffix("RETURNING " + pk)
	}
	return builder.ToSql()
}

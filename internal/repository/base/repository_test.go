package base

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQuerier struct {
	execs []string
	tag   pgconn.CommandTag
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	return q.tag, nil
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func (q *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func TestRepository_UsesQuerierFromContext(t *testing.T) {
	// пул не нужен: все запросы должны уйти в привязанную транзакцию
	repo := NewRepository(nil)
	tx := &recordingQuerier{tag: pgconn.NewCommandTag("DELETE 1")}
	ctx := WithQuerier(context.Background(), tx)

	require.NoError(t, repo.ExecOne(ctx, `DELETE FROM workshops WHERE id = $1`, 1))
	assert.Equal(t, []string{`DELETE FROM workshops WHERE id = $1`}, tx.execs)

	tx.tag = pgconn.NewCommandTag("DELETE 0")
	err := repo.ExecOne(ctx, `DELETE FROM workshops WHERE id = $1`, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestQuerierFrom(t *testing.T) {
	_, ok := QuerierFrom(context.Background())
	assert.False(t, ok)

	tx := &recordingQuerier{}
	q, ok := QuerierFrom(WithQuerier(context.Background(), tx))
	require.True(t, ok)
	assert.Same(t, tx, q)
}

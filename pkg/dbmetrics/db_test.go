package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := Wrap(&sql.DB{}, nil)

	assert.Same(t, db, GetExecutor(context.Background(), db))

	tx := &fakeTx{}
	ctx := WithTx(context.Background(), tx)
	assert.Same(t, tx, GetExecutor(ctx, db))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "insert", operation("  INSERT INTO orders (id) VALUES ($1)"))
	assert.Equal(t, "select", operation("SELECT 1"))
	assert.Equal(t, "unknown", operation(""))
}

package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("pickup_time", "booked_count").
		From("slot_bookings").
		Where(squirrel.Eq{"pickup_date": "2024-06-01"}).
		Where(squirrel.Gt{"booked_count": 0}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT pickup_time, booked_count FROM slot_bookings WHERE pickup_date = $1 AND booked_count > $2", query)
	assert.Equal(t, []interface{}{"2024-06-01", 0}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, _, err := Update("orders").
		Set("payment_status", "completed").
		Where(squirrel.Eq{"id": "abc"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE orders SET payment_status = $1 WHERE id = $2", query)
}

package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beankit/fault"
	"beankit/introspect"
	"beankit/transfer"
)

type orderRow struct {
	order_id  string
	Customer  string
	Total     int64
	Note      *string
	CreatedAt string
}

type Order struct {
	OrderID   string
	Customer  string
	Total     int
	Note      *string
	Shipped   bool
	createdAt string
}

func TestPlan(t *testing.T) {
	t.Parallel()

	src, err := introspect.ShapeFor[orderRow]()
	require.NoError(t, err)

	dst, err := introspect.ShapeFor[Order]()
	require.NoError(t, err)

	assert.Equal(t, []transfer.Pair{
		{Source: "order_id", Target: "OrderID"},
		{Source: "Customer", Target: "Customer"},
		{Source: "Note", Target: "Note"},
		{Source: "CreatedAt", Target: "createdAt"},
	}, transfer.Plan(src, dst))
}

func TestTo(t *testing.T) {
	t.Parallel()

	note := "fragile"
	row := &orderRow{order_id: "A-1", Customer: "ann", Total: 5, Note: &note, CreatedAt: "today"}

	got, err := transfer.To[Order](row)
	require.NoError(t, err)
	assert.Equal(t, &Order{OrderID: "A-1", Customer: "ann", Note: &note, createdAt: "today"}, got)

	// values work as sources too
	got, err = transfer.To[Order](*row)
	require.NoError(t, err)
	assert.Equal(t, "A-1", got.OrderID)
}

func TestTo_NilSource(t *testing.T) {
	t.Parallel()

	got, err := transfer.To[Order](nil)
	require.NoError(t, err)
	assert.Equal(t, &Order{}, got)

	var row *orderRow
	got, err = transfer.To[Order](row)
	require.NoError(t, err)
	assert.Equal(t, &Order{}, got)
}

func TestTo_Errors(t *testing.T) {
	t.Parallel()

	_, err := transfer.To[*Order](&orderRow{})
	assert.ErrorIs(t, err, fault.ErrInstantiation)

	_, err = transfer.To[int](&orderRow{})
	assert.ErrorIs(t, err, fault.ErrInstantiation)

	_, err = transfer.To[Order]("text")
	assert.ErrorIs(t, err, fault.ErrValidation)
}

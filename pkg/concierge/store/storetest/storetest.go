// Package storetest checks that a store.Store backend honours the archive
// contract. Backends call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/concierge/pkg/concierge/order"
	"github.com/cognicore/concierge/pkg/concierge/store"
)

// Run exercises st. It must start empty.
func Run(t *testing.T, st store.Store) {
	ctx := context.Background()
	ids := store.NewIDs()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	sample := func(i int, room string) store.Record {
		return ids.NewRecord(base.Add(time.Duration(i)*time.Minute), "summary", order.Summary{
			OrderType:    order.CategoryRoomService,
			DeliveryTime: order.DeliveryASAP,
			RoomNumber:   room,
			Items: []order.Item{
				{ID: "1", Name: "Club sandwiches", Description: "Details for Club sandwiches", Quantity: 2, Price: 15, ServiceType: order.CategoryRoomService},
			},
			TotalAmount: 30,
			GuestName:   "Ms. Lan",
		})
	}

	t.Run("get missing", func(t *testing.T) {
		_, found, err := st.GetOrder(ctx, "01HZZZZZZZZZZZZZZZZZZZZZZZ")
		require.NoError(t, err)
		assert.False(t, found)
	})

	first := sample(0, "301")
	second := sample(1, "301")
	other := sample(2, "12")

	t.Run("save and get", func(t *testing.T) {
		for _, rec := range []store.Record{first, second, other} {
			require.NoError(t, st.SaveOrder(ctx, rec))
		}
		got, found, err := st.GetOrder(ctx, first.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, first.ID, got.ID)
		assert.True(t, first.CreatedAt.Equal(got.CreatedAt))
		assert.Equal(t, first.Source, got.Source)
		assert.Equal(t, first.Order, got.Order)
	})

	t.Run("list by room newest first", func(t *testing.T) {
		recs, err := st.ListByRoom(ctx, "301", 0)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, second.ID, recs[0].ID)
		assert.Equal(t, first.ID, recs[1].ID)

		recs, err = st.ListByRoom(ctx, " 301", 1)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, second.ID, recs[0].ID)

		recs, err = st.ListByRoom(ctx, "999", 5)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("replace moves room", func(t *testing.T) {
		moved := first
		moved.Order.RoomNumber = "12"
		require.NoError(t, st.SaveOrder(ctx, moved))

		recs, err := st.ListByRoom(ctx, "301", 0)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, second.ID, recs[0].ID)

		recs, err = st.ListByRoom(ctx, "12", 0)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, other.ID, recs[0].ID)
	})

	t.Run("rejects invalid", func(t *testing.T) {
		err := st.SaveOrder(ctx, store.Record{})
		assert.True(t, errors.Is(err, store.ErrInvalidRecord))
	})
}

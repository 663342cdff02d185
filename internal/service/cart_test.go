package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shopcart/internal/events"
)

func TestCartService_AddAccumulates(t *testing.T) {
	r := newTestRepo(t)
	p := seedProduct(t, r, "mug", 7.5)
	pub := &recordingPublisher{}
	svc := &CartService{Repo: r, Events: pub}
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, 1, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = svc.AddToCart(ctx, 1, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	sent := pub.all()
	require.Len(t, sent, 2)
	assert.Equal(t, events.TopicCart, sent[1].Topic)
	assert.Equal(t, events.TypeCartItemAdded, sent[1].Event.Type)
	assert.Equal(t, "1", sent[1].Key)
	assert.Equal(t, 5, sent[1].Event.Payload["quantity"])
}

func TestCartService_AddValidation(t *testing.T) {
	svc := &CartService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, 0, 1, 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddToCart(ctx, 1, 0, 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddToCart(ctx, 1, 1, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCartService_RemoveDecrementsThenDeletes(t *testing.T) {
	r := newTestRepo(t)
	p := seedProduct(t, r, "pen", 1.25)
	pub := &recordingPublisher{}
	svc := &CartService{Repo: r, Events: pub}
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, 7, p.ID, 3)
	require.NoError(t, err)

	res, err := svc.RemoveFromCart(ctx, 7, p.ID, 1)
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.Equal(t, 2, res.Item.Quantity)

	res, err = svc.RemoveFromCart(ctx, 7, p.ID, 5)
	require.NoError(t, err)
	assert.True(t, res.Deleted)

	lines, err := svc.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, lines)

	sent := pub.all()
	require.Len(t, sent, 3)
	assert.Equal(t, events.TypeCartItemRemoved, sent[2].Event.Type)
	assert.Equal(t, true, sent[2].Event.Payload["deleted"])
}

func TestCartService_RemoveMissingLine(t *testing.T) {
	svc := &CartService{Repo: newTestRepo(t)}

	_, err := svc.RemoveFromCart(context.Background(), 3, 4, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_GetCart(t *testing.T) {
	r := newTestRepo(t)
	a := seedProduct(t, r, "book", 10)
	b := seedProduct(t, r, "lamp", 2.5)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, 9, a.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, 9, b.ID, 4)
	require.NoError(t, err)

	lines, err := svc.GetCart(ctx, 9)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, a.ID, lines[0].ProductID)
	assert.InDelta(t, 20.0, lines[0].TotalPrice, 0.001)
	assert.InDelta(t, 10.0, lines[1].TotalPrice, 0.001)

	_, err = svc.GetCart(ctx, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

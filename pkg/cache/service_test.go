package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type venue struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func TestGet_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectGet("waitly:venues:id:missing").RedisNil()

	var dest venue
	err := svc.Get(context.Background(), "waitly:venues:id:missing", &dest)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGet_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectGet("waitly:venues:id:1").SetVal(`{"name":"Cafe Aroma","location":"Manama"}`)

	var dest venue
	err := svc.Get(context.Background(), "waitly:venues:id:1", &dest)
	require.NoError(t, err)
	assert.Equal(t, "Cafe Aroma", dest.Name)
	assert.Equal(t, "Manama", dest.Location)
}

func TestGetOrSet_HitSkipsFetcher(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectGet("k").SetVal(`{"name":"Tea House","location":"Riffa"}`)

	var dest venue
	err := svc.GetOrSet(context.Background(), "k", time.Minute, func() (interface{}, error) {
		t.Fatal("fetcher should not run on cache hit")
		return nil, nil
	}, &dest)
	require.NoError(t, err)
	assert.Equal(t, "Tea House", dest.Name)
}

func TestGetOrSet_MissFetches(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectGet("k").RedisNil()
	mock.Regexp().ExpectSet("k", `.*`, time.Minute).SetVal("OK")

	var dest venue
	err := svc.GetOrSet(context.Background(), "k", time.Minute, func() (interface{}, error) {
		return &venue{Name: "Latte Lounge", Location: "Muharraq"}, nil
	}, &dest)
	require.NoError(t, err)
	assert.Equal(t, "Latte Lounge", dest.Name)
}

func TestGetOrSet_FetcherErrorIsWrapped(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectGet("k").RedisNil()

	sentinel := errors.New("venue not found")
	var dest venue
	err := svc.GetOrSet(context.Background(), "k", time.Minute, func() (interface{}, error) {
		return nil, sentinel
	}, &dest)
	assert.ErrorIs(t, err, sentinel)
}

package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConnectionBeforeConnect(t *testing.T) {
	conn := NewConnection()

	assert.Nil(t, conn.Database())
	assert.Nil(t, conn.Collection("notes"))
	assert.ErrorIs(t, conn.Ping(context.Background(), nil), ErrNotConnected)
	assert.NoError(t, conn.Disconnect(context.Background()))
}

func TestConnectRejectsEmptyURI(t *testing.T) {
	conn := NewConnection()

	err := conn.Connect(context.Background(), "", "notes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to mongodb")
	assert.Nil(t, conn.Database())
}

func TestRunAgainstUnconnectedCollection(t *testing.T) {
	conn := NewConnection()
	runner := New(Hooks[note]{})

	err := runner.Run(context.Background(), Invocation[note]{
		Collection: conn.Collection("notes"),
		Query:      func(context.Context, *mongo.Collection) (*note, error) { return &note{}, nil },
	})

	assert.ErrorIs(t, err, ErrInvalidArgument)
}

package mongo

import (
	"alcyxob/gymbuddy/internal/repository"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestInsertErr(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
	assert.ErrorIs(t, insertErr(dup), repository.ErrDuplicate)

	other := errors.New("server selection timeout")
	assert.Equal(t, other, insertErr(other))
	assert.NoError(t, insertErr(nil))
}

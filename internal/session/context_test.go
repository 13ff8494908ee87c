package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestGetSessionID(t *testing.T) {
	assert.Equal(t, DefaultSessionID, GetSessionID(context.Background()))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(SessionHeader, "abc"))
	assert.Equal(t, "abc", GetSessionID(ctx))

	blank := metadata.NewIncomingContext(context.Background(), metadata.Pairs(SessionHeader, "  "))
	assert.Equal(t, DefaultSessionID, GetSessionID(blank))
}

func TestGetActor(t *testing.T) {
	assert.Equal(t, "Store Manager", GetActor(context.Background(), "Store Manager"))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(UserHeader, "Priya"))
	assert.Equal(t, "Priya", GetActor(ctx, "Store Manager"))
}

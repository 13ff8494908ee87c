// Package session reads the caller identity carried in gRPC metadata.
package session

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"
)

const (
	SessionHeader = "x-session-id"
	UserHeader    = "x-user-name"

	// DefaultSessionID is used when a caller sends no session header.
	DefaultSessionID = "default"
)

func fromMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if val := md.Get(key); len(val) > 0 {
		return strings.TrimSpace(val[0])
	}
	return ""
}

func GetSessionID(ctx context.Context) string {
	if id := fromMetadata(ctx, SessionHeader); id != "" {
		return id
	}
	return DefaultSessionID
}

// GetActor returns the user name recorded on stock updates, or fallback.
func GetActor(ctx context.Context, fallback string) string {
	if name := fromMetadata(ctx, UserHeader); name != "" {
		return name
	}
	return fallback
}

package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	GithubReposKeyPrefix = "github:%s:repos"
	ProfileListKey       = "profiles:all"
)

const (
	GithubReposTTL = 10 * time.Minute
	ProfileListTTL = 2 * time.Minute
)

func GithubReposKey(username string) string {
	return fmt.Sprintf(GithubReposKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProfileList drops the cached public profile directory. Called
// after any profile or account mutation.
func InvalidateProfileList(ctx context.Context) {
	Invalidate(ctx, ProfileListKey)
}

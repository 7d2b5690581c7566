package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserSubjectKeyPrefix = "user:sub:%s"
	PostCommentsPrefix   = "post:%d:comments"
)

const (
	UserTTL     = 5 * time.Minute
	CommentsTTL = 2 * time.Minute
)

func UserSubjectKey(subject string) string {
	return fmt.Sprintf(UserSubjectKeyPrefix, subject)
}

func PostCommentsKey(postID uint) string {
	return fmt.Sprintf(PostCommentsPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUserSubject(ctx context.Context, subject string) {
	Invalidate(ctx, UserSubjectKey(subject))
}

func InvalidatePostComments(ctx context.Context, postID uint) {
	Invalidate(ctx, PostCommentsKey(postID))
}

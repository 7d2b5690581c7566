package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"gorm.io/gorm"
)

func seedPosts(t *testing.T, db *gorm.DB, userID uint, n int) []models.Post {
	t.Helper()
	posts := make([]models.Post, 0, n)
	for i := 1; i <= n; i++ {
		post := models.Post{
			UserID:  userID,
			Title:   fmt.Sprintf("Post %d", i),
			Slug:    fmt.Sprintf("post-%d", i),
			Content: "content",
			Visit:   i * 10,
		}
		if err := db.Create(&post).Error; err != nil {
			t.Fatalf("seed post %d: %v", i, err)
		}
		posts = append(posts, post)
		// Spread creation times so "newest" ordering is deterministic.
		created := time.Now().Add(time.Duration(i-n) * time.Hour)
		if err := db.Model(&post).UpdateColumn("created_at", created).Error; err != nil {
			t.Fatalf("backdate post %d: %v", i, err)
		}
	}
	return posts
}

func TestGetPostsPagination(t *testing.T) {
	t.Parallel()
	_, app, db := setupTestServer(t)
	author := createTestUser(t, db, "user_author", "author")
	seedPosts(t, db, author.ID, 5)

	var page service.PostPage
	if code := doGetJSON(t, app, "/posts?page=2&limit=2&sort=newest", "", &page); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	if len(page.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(page.Posts))
	}
	// Newest first: page 2 holds ranks 3 and 4, i.e. posts 3 and 2.
	if page.Posts[0].Title != "Post 3" || page.Posts[1].Title != "Post 2" {
		t.Fatalf("unexpected page contents: %q, %q", page.Posts[0].Title, page.Posts[1].Title)
	}
	if !page.HasMore {
		t.Fatal("page 2 of 5 should report more")
	}

	if code := doGetJSON(t, app, "/posts?page=3&limit=2", "", &page); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if page.HasMore {
		t.Fatal("page 3 of 5 should be the last")
	}
}

func TestGetPostsFeaturedFilter(t *testing.T) {
	t.Parallel()
	_, app, db := setupTestServer(t)
	author := createTestUser(t, db, "user_author", "author")

	plain := models.Post{UserID: author.ID, Title: "Plain", Slug: "plain", Content: "c"}
	starred := models.Post{UserID: author.ID, Title: "Starred", Slug: "starred", Content: "c", IsFeatured: true}
	for _, p := range []*models.Post{&plain, &starred} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// Any non-empty featured value selects the featured subset, not only
	// the ParseBool forms.
	for _, query := range []string{"featured=true", "featured=yes"} {
		var page service.PostPage
		if code := doGetJSON(t, app, "/posts?limit=10&"+query, "", &page); code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", query, code)
		}
		if len(page.Posts) != 1 || page.Posts[0].Title != "Starred" {
			t.Fatalf("%s: expected only the featured post, got %d posts", query, len(page.Posts))
		}
	}
}

func TestGetPostsTrendingExcludesOldPosts(t *testing.T) {
	t.Parallel()
	_, app, db := setupTestServer(t)
	author := createTestUser(t, db, "user_author", "author")

	stale := models.Post{UserID: author.ID, Title: "Stale", Slug: "stale", Content: "c", Visit: 1000}
	fresh := models.Post{UserID: author.ID, Title: "Fresh", Slug: "fresh", Content: "c", Visit: 5}
	for _, p := range []*models.Post{&stale, &fresh} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if err := db.Model(&stale).UpdateColumn("created_at", time.Now().AddDate(0, 0, -10)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	var page service.PostPage
	if code := doGetJSON(t, app, "/posts?sort=trending&limit=10", "", &page); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(page.Posts) != 1 || page.Posts[0].Title != "Fresh" {
		t.Fatalf("trending should only contain the fresh post, got %d posts", len(page.Posts))
	}
}

func TestGetPostsUnknownAuthorIs404(t *testing.T) {
	t.Parallel()
	_, app, _ := setupTestServer(t)

	code, _ := doRequest(t, app, http.MethodGet, "/posts?author=ghost", nil, "")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestGetPostBySlugCountsVisit(t *testing.T) {
	t.Parallel()
	_, app, db := setupTestServer(t)
	author := createTestUser(t, db, "user_author", "author")
	post := models.Post{UserID: author.ID, Title: "Read Me", Slug: "read-me", Content: "c"}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	var got models.Post
	if code := doGetJSON(t, app, "/posts/read-me", "", &got); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if got.Visit != 1 {
		t.Fatalf("expected visit 1, got %d", got.Visit)
	}

	var reloaded models.Post
	if err := db.First(&reloaded, post.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Visit != 1 {
		t.Fatalf("visit not persisted, got %d", reloaded.Visit)
	}
}

func TestCreatePostProbesSlug(t *testing.T) {
	t.Parallel()
	_, app, db := setupTestServer(t)
	createTestUser(t, db, "user_writer", "writer")
	token := sessionToken(t, "user_writer", "user")

	body := map[string]string{"title": "My Story", "content": "once upon a time"}
	for i, wantSlug := range []string{"my-story", "my-story-2", "my-story-3"} {
		code, resp := doRequest(t, app, http.MethodPost, "/posts", body, token)
		if code != http.StatusCreated {
			t.Fatalf("create %d: expected 201, got %d", i, code)
		}
		if resp["slug"] != wantSlug {
			t.Fatalf("create %d: expected slug %q, got %v", i, wantSlug, resp["slug"])
		}
	}
}

func TestCreatePostRequiresAuth(t *testing.T) {
	t.Parallel()
	_, app, _ := setupTestServer(t)

	body := map[string]string{"title": "T", "content": "c"}
	code, _ := doRequest(t, app, http.MethodPost, "/posts", body, "")
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestDeletePostNonOwnerForbidden(t *testing.T) {
	t.Parallel()
	_, app, db := setupTestServer(t)
	owner := createTestUser(t, db, "user_owner", "owner")
	createTestUser(t, db, "user_other", "other")

	post := models.Post{UserID: owner.ID, Title: "Mine", Slug: "mine", Content: "c"}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	code, _ := doRequest(t, app, http.MethodDelete,
		fmt.Sprintf("/posts/%d", post.ID), nil, sessionToken(t, "user_other", "user"))
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}

	var count int64
	db.Model(&models.Post{}).Count(&count)
	if count != 1 {
		t.Fatal("post should survive a forbidden delete")
	}

	code, _ = doRequest(t, app, http.MethodDelete,
		fmt.Sprintf("/posts/%d", post.ID), nil, sessionToken(t, "user_owner", "user"))
	if code != http.StatusOK {
		t.Fatalf("owner delete: expected 200, got %d", code)
	}
	db.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Fatal("post should be gone after owner delete")
	}
}

func TestDeletePostAdminDeletesAny(t *testing.T) {
	t.Parallel()
	_, app, db := setupTestServer(t)
	owner := createTestUser(t, db, "user_owner", "owner")
	createTestUser(t, db, "user_admin", "admin")

	post := models.Post{UserID: owner.ID, Title: "Mine", Slug: "mine", Content: "c"}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	code, _ := doRequest(t, app, http.MethodDelete,
		fmt.Sprintf("/posts/%d", post.ID), nil, sessionToken(t, "user_admin", "admin"))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestFeaturePostAdminOnly(t *testing.T) {
	t.Parallel()
	_, app, db := setupTestServer(t)
	owner := createTestUser(t, db, "user_owner", "owner")
	createTestUser(t, db, "user_admin", "admin")

	post := models.Post{UserID: owner.ID, Title: "Mine", Slug: "mine", Content: "c"}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	body := map[string]uint{"postId": post.ID}

	code, _ := doRequest(t, app, http.MethodPatch, "/posts/feature", body, sessionToken(t, "user_owner", "user"))
	if code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", code)
	}

	code, resp := doRequest(t, app, http.MethodPatch, "/posts/feature", body, sessionToken(t, "user_admin", "admin"))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp["isFeatured"] != true {
		t.Fatalf("expected isFeatured true, got %v", resp["isFeatured"])
	}

	// Second toggle clears the flag.
	code, resp = doRequest(t, app, http.MethodPatch, "/posts/feature", body, sessionToken(t, "user_admin", "admin"))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp["isFeatured"] != false {
		t.Fatalf("expected isFeatured false, got %v", resp["isFeatured"])
	}
}

func TestGetUploadAuth(t *testing.T) {
	t.Parallel()
	_, app, _ := setupTestServer(t)

	// The browser fetches credentials without an Authorization header.
	code, resp := doRequest(t, app, http.MethodGet, "/posts/upload-auth", nil, "")
	if code != http.StatusOK {
		t.Fatalf("expected 200 without auth, got %d", code)
	}
	for _, field := range []string{"token", "expire", "signature"} {
		if _, ok := resp[field]; !ok {
			t.Fatalf("upload auth response missing %q", field)
		}
	}
}

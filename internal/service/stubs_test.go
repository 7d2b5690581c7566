package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getBySlugFn      func(context.Context, string) (*models.Post, error)
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	slugExistsFn     func(context.Context, string) (bool, error)
	listFn           func(context.Context, repository.ListFilter) ([]*models.Post, error)
	countAllFn       func(context.Context) (int64, error)
	incrementVisitFn func(context.Context, uint) error
	deleteOwnedFn    func(context.Context, uint, uint) (int64, error)
	deleteByIDFn     func(context.Context, uint) error
	deleteByUserFn   func(context.Context, uint) error
	setFeaturedFn    func(context.Context, uint, bool) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.slugExistsFn(ctx, slug)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.ListFilter) ([]*models.Post, error) {
	return s.listFn(ctx, filter)
}
func (s *postRepoStub) CountAll(ctx context.Context) (int64, error) {
	return s.countAllFn(ctx)
}
func (s *postRepoStub) IncrementVisit(ctx context.Context, id uint) error {
	return s.incrementVisitFn(ctx, id)
}
func (s *postRepoStub) DeleteOwned(ctx context.Context, id, userID uint) (int64, error) {
	return s.deleteOwnedFn(ctx, id, userID)
}
func (s *postRepoStub) DeleteByID(ctx context.Context, id uint) error {
	return s.deleteByIDFn(ctx, id)
}
func (s *postRepoStub) DeleteByUser(ctx context.Context, userID uint) error {
	return s.deleteByUserFn(ctx, userID)
}
func (s *postRepoStub) SetFeatured(ctx context.Context, id uint, featured bool) error {
	return s.setFeaturedFn(ctx, id, featured)
}

type userRepoStub struct {
	createFn           func(context.Context, *models.User) error
	getBySubjectFn     func(context.Context, string) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	updateSavedPostsFn func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetBySubject(ctx context.Context, subject string) (*models.User, error) {
	return s.getBySubjectFn(ctx, subject)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) UpdateSavedPosts(ctx context.Context, user *models.User) error {
	return s.updateSavedPostsFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	listByPostFn   func(context.Context, uint) ([]*models.Comment, error)
	deleteOwnedFn  func(context.Context, uint, uint) (int64, error)
	deleteByIDFn   func(context.Context, uint) (int64, error)
	deleteByUserFn func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) DeleteOwned(ctx context.Context, id, userID uint) (int64, error) {
	return s.deleteOwnedFn(ctx, id, userID)
}
func (s *commentRepoStub) DeleteByID(ctx context.Context, id uint) (int64, error) {
	return s.deleteByIDFn(ctx, id)
}
func (s *commentRepoStub) DeleteByUser(ctx context.Context, userID uint) error {
	return s.deleteByUserFn(ctx, userID)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sweetshop-backend/domain/shop"
	apperrors "sweetshop-backend/pkg/errors"
)

type fakeReviewRepo struct {
	reviews map[string]shop.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]shop.Review)}
}

func (f *fakeReviewRepo) Put(_ context.Context, r shop.Review) error {
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeReviewRepo) Scan(_ context.Context) ([]shop.Review, error) {
	out := make([]shop.Review, 0, len(f.reviews))
	for _, r := range f.reviews {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, id string, patch map[string]interface{}) error {
	r, ok := f.reviews[id]
	if !ok {
		return apperrors.NewNotFoundError("review not found")
	}
	if v, ok := patch["approved"]; ok {
		r.Approved = v.(bool)
	}
	f.reviews[id] = r
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id string) error {
	delete(f.reviews, id)
	return nil
}

func TestSubmitReviewStartsUnapproved(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, zap.NewNop())

	r, err := svc.Submit(context.Background(), shop.Review{
		ProductID: "p1",
		Author:    "Sam",
		Rating:    5,
		Text:      "Best truffles in town",
		Approved:  true, // ignored, moderation decides
	})
	require.NoError(t, err)
	assert.False(t, r.Approved)
	assert.NotEmpty(t, r.ID)
	assert.NotEmpty(t, r.CreatedAt)
}

func TestSubmitReviewValidatesRating(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Submit(ctx, shop.Review{ProductID: "p1", Author: "Sam", Rating: 0})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Submit(ctx, shop.Review{ProductID: "p1", Author: "Sam", Rating: 6})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Submit(ctx, shop.Review{ProductID: "", Author: "Sam", Rating: 3})
	assert.True(t, apperrors.IsValidation(err))
}

func TestListForProductShowsOnlyApproved(t *testing.T) {
	repo := newFakeReviewRepo()
	repo.reviews["r1"] = shop.Review{ID: "r1", ProductID: "p1", Approved: true, CreatedAt: "2026-01-01T00:00:00Z"}
	repo.reviews["r2"] = shop.Review{ID: "r2", ProductID: "p1", Approved: false, CreatedAt: "2026-01-02T00:00:00Z"}
	repo.reviews["r3"] = shop.Review{ID: "r3", ProductID: "p2", Approved: true, CreatedAt: "2026-01-03T00:00:00Z"}
	repo.reviews["r4"] = shop.Review{ID: "r4", ProductID: "p1", Approved: true, CreatedAt: "2026-01-04T00:00:00Z"}
	svc := NewReviewService(repo, zap.NewNop())

	got, err := svc.ListForProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r4", got[0].ID)
	assert.Equal(t, "r1", got[1].ID)
}

func TestApproveMakesReviewVisible(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, zap.NewNop())
	ctx := context.Background()

	r, err := svc.Submit(ctx, shop.Review{ProductID: "p1", Author: "Sam", Rating: 4})
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, svc.Approve(ctx, r.ID))

	visible, err := svc.ListForProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

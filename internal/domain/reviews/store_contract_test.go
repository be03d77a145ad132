package reviews

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreContract exercises the behaviour every Store backend must share.
// newStore must return an empty store.
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("CreateAssignsIDAndDate", func(t *testing.T) {
		s := newStore(t)

		got, err := s.Create(ctx, validInput())
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.False(t, got.DateAdded.IsZero())
		assert.Equal(t, "Dune", got.BookTitle)
		assert.Equal(t, 5, got.Rating)
	})

	t.Run("CreateRejectsInvalid", func(t *testing.T) {
		s := newStore(t)

		for _, rating := range []Rating{0, 6} {
			in := validInput()
			in.Rating = rating
			_, err := s.Create(ctx, in)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "rating %d", rating)
			assert.True(t, verr.Has("rating"))
		}

		in := validInput()
		in.BookTitle = ""
		_, err := s.Create(ctx, in)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.True(t, verr.Has("bookTitle"))

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("ListAllEmpty", func(t *testing.T) {
		s := newStore(t)

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Len(t, all, 0)
	})

	t.Run("ListAllNewestFirst", func(t *testing.T) {
		s := newStore(t)

		const n = 5
		ids := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			got, err := s.Create(ctx, validInput())
			require.NoError(t, err)
			assert.False(t, ids[got.ID], "duplicate id %s", got.ID)
			ids[got.ID] = true
		}

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, n)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].DateAdded.After(all[i-1].DateAdded),
				"review %d is newer than review %d", i, i-1)
		}
	})

	t.Run("GetByIDRoundTrip", func(t *testing.T) {
		s := newStore(t)

		created, err := s.Create(ctx, validInput())
		require.NoError(t, err)

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.BookTitle, got.BookTitle)
		assert.Equal(t, created.Author, got.Author)
		assert.Equal(t, created.Rating, got.Rating)
		assert.Equal(t, created.ReviewText, got.ReviewText)
		assert.True(t, created.DateAdded.Equal(got.DateAdded))
	})

	t.Run("UpdateRatingOnly", func(t *testing.T) {
		s := newStore(t)

		created, err := s.Create(ctx, validInput())
		require.NoError(t, err)

		three := Rating(3)
		got, err := s.Update(ctx, created.ID, UpdateInput{Rating: &three})
		require.NoError(t, err)
		assert.Equal(t, 3, got.Rating)
		assert.Equal(t, created.BookTitle, got.BookTitle)
		assert.Equal(t, created.Author, got.Author)
		assert.Equal(t, created.ReviewText, got.ReviewText)
		assert.True(t, created.DateAdded.Equal(got.DateAdded))

		stored, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, stored.Rating)
	})

	t.Run("UpdateEmptyKeepsRecord", func(t *testing.T) {
		s := newStore(t)

		created, err := s.Create(ctx, validInput())
		require.NoError(t, err)

		empty := ""
		got, err := s.Update(ctx, created.ID, UpdateInput{BookTitle: &empty})
		require.NoError(t, err)
		assert.Equal(t, created.BookTitle, got.BookTitle)
	})

	t.Run("UpdateRejectsOutOfRangeRating", func(t *testing.T) {
		s := newStore(t)

		created, err := s.Create(ctx, validInput())
		require.NoError(t, err)

		nine := Rating(9)
		_, err = s.Update(ctx, created.ID, UpdateInput{Rating: &nine})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))

		stored, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, stored.Rating)
	})

	t.Run("MissingIDIsNotFound", func(t *testing.T) {
		s := newStore(t)

		created, err := s.Create(ctx, validInput())
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, created.ID))

		four, nine := Rating(4), Rating(9)
		for _, id := range []string{created.ID, "not-an-id"} {
			_, err = s.Update(ctx, id, UpdateInput{Rating: &four})
			assert.ErrorIs(t, err, ErrNotFound, id)
			// a missing record wins over a bad rating
			_, err = s.Update(ctx, id, UpdateInput{Rating: &nine})
			assert.ErrorIs(t, err, ErrNotFound, id)
			assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound, id)
			_, err = s.GetByID(ctx, id)
			assert.ErrorIs(t, err, ErrNotFound, id)
		}
	})

	t.Run("DeleteRemovesFromList", func(t *testing.T) {
		s := newStore(t)

		keep, err := s.Create(ctx, validInput())
		require.NoError(t, err)
		gone, err := s.Create(ctx, validInput())
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, gone.ID))

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, keep.ID, all[0].ID)
	})
}

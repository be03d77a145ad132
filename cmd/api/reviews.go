package main

import (
	"errors"
	"net/http"

	"bookreviews/internal/domain/reviews"

	"github.com/go-chi/chi/v5"
)

// for swagger only
type messageResponse struct {
	Message string `json:"message"`
}

// listReviewsHandler godoc
//
//	@Summary		List reviews
//	@Description	Returns every review, most recently added first.
//	@Tags			reviews
//	@Produce		json
//	@Success		200	{array}		reviews.Review
//	@Failure		500	{object}	messageResponse
//	@Router			/reviews [get]
func (app *application) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := app.store.Reviews.ListAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, all)
}

// createReviewHandler godoc
//
//	@Summary		Create a review
//	@Description	Stores a new review. id and dateAdded are assigned by the server.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			review	body		reviews.CreateInput	true	"Review payload"
//	@Success		201		{object}	reviews.Review
//	@Failure		400		{object}	messageResponse
//	@Failure		500		{object}	messageResponse
//	@Router			/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var payload reviews.CreateInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.store.Reviews.Create(r.Context(), payload)
	if err != nil {
		var verr *reviews.ValidationError
		if errors.As(err, &verr) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// updateReviewHandler godoc
//
//	@Summary		Update a review
//	@Description	Overwrites the fields present with a non-empty value; the rest keep their stored value.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		string				true	"Review ID"
//	@Param			review		body		reviews.UpdateInput	true	"Fields to change"
//	@Success		200			{object}	reviews.Review
//	@Failure		400			{object}	messageResponse
//	@Failure		404			{object}	messageResponse
//	@Router			/reviews/{reviewID} [put]
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reviewID")

	var payload reviews.UpdateInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.store.Reviews.Update(r.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.badRequestResponse(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// deleteReviewHandler godoc
//
//	@Summary		Delete a review
//	@Description	Removes a review permanently.
//	@Tags			reviews
//	@Produce		json
//	@Param			reviewID	path		string	true	"Review ID"
//	@Success		200			{object}	messageResponse
//	@Failure		404			{object}	messageResponse
//	@Failure		500			{object}	messageResponse
//	@Router			/reviews/{reviewID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reviewID")

	if err := app.store.Reviews.Delete(r.Context(), id); err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Review deleted successfully"})
}

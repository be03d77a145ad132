package reviews

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("review not found")
	QueryTimeoutDuration = time.Second * 5
)

type Review struct {
	ID         string    `json:"id"`
	BookTitle  string    `json:"bookTitle"`
	Author     string    `json:"author"`
	Rating     int       `json:"rating"` // 1-5
	ReviewText string    `json:"reviewText"`
	DateAdded  time.Time `json:"dateAdded"`
}

// Rating is a star rating as sent by clients. Whole numbers written as
// floats (5.0) are accepted.
type Rating int

func (r *Rating) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return errors.New("rating must be a number")
	}
	if f != math.Trunc(f) {
		return errors.New("rating must be a whole number")
	}
	if math.Abs(f) > math.MaxInt32 {
		return errors.New(ratingRangeMessage())
	}
	*r = Rating(f)
	return nil
}

// CreateInput carries the client-supplied fields of a new review.
type CreateInput struct {
	BookTitle  string `json:"bookTitle" validate:"required"`
	Author     string `json:"author" validate:"required"`
	Rating     Rating `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"reviewText" validate:"required"`
}

func (in CreateInput) trimmed() CreateInput {
	in.BookTitle = strings.TrimSpace(in.BookTitle)
	in.Author = strings.TrimSpace(in.Author)
	in.ReviewText = strings.TrimSpace(in.ReviewText)
	return in
}

// UpdateInput is a partial update. Nil and zero-valued fields keep the stored
// value; everything else overwrites it.
type UpdateInput struct {
	BookTitle  *string `json:"bookTitle,omitempty"`
	Author     *string `json:"author,omitempty"`
	Rating     *Rating `json:"rating,omitempty"`
	ReviewText *string `json:"reviewText,omitempty"`
}

func (in UpdateInput) bookTitle() string  { return trimmedValue(in.BookTitle) }
func (in UpdateInput) author() string     { return trimmedValue(in.Author) }
func (in UpdateInput) reviewText() string { return trimmedValue(in.ReviewText) }

func (in UpdateInput) rating() int {
	if in.Rating == nil {
		return 0
	}
	return int(*in.Rating)
}

// Fields returns the fields this update overwrites, keyed by their JSON name.
func (in UpdateInput) Fields() map[string]any {
	fields := make(map[string]any, 4)
	if v := in.bookTitle(); v != "" {
		fields["bookTitle"] = v
	}
	if v := in.author(); v != "" {
		fields["author"] = v
	}
	if v := in.rating(); v != 0 {
		fields["rating"] = v
	}
	if v := in.reviewText(); v != "" {
		fields["reviewText"] = v
	}
	return fields
}

// Apply merges the update into r in place.
func (in UpdateInput) Apply(r *Review) {
	if v := in.bookTitle(); v != "" {
		r.BookTitle = v
	}
	if v := in.author(); v != "" {
		r.Author = v
	}
	if v := in.rating(); v != 0 {
		r.Rating = v
	}
	if v := in.reviewText(); v != "" {
		r.ReviewText = v
	}
}

func trimmedValue(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

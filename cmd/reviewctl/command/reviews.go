package command

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"bookreviews/pkg/client"

	"github.com/spf13/cobra"
)

const (
	minRating = 1
	maxRating = 5
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all reviews, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reviews, err := newClient().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		if len(reviews) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No reviews yet.")
			return nil
		}
		printReviews(cmd.OutOrStdout(), reviews)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a review",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		rating, _ := cmd.Flags().GetInt("rating")
		text, _ := cmd.Flags().GetString("text")

		req := client.CreateReviewRequest{
			BookTitle:  strings.TrimSpace(title),
			Author:     strings.TrimSpace(author),
			Rating:     rating,
			ReviewText: strings.TrimSpace(text),
		}
		if err := validateCreate(req); err != nil {
			return err
		}

		review, err := newClient().Create(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to add review: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Review added (id %s)\n", review.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [review-id]",
	Short: "Edit fields of a review",
	Long:  `Only the flags you pass are sent; other fields keep their current value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req client.UpdateReviewRequest
		flags := cmd.Flags()

		if flags.Changed("title") {
			v, _ := flags.GetString("title")
			req.BookTitle = &v
		}
		if flags.Changed("author") {
			v, _ := flags.GetString("author")
			req.Author = &v
		}
		if flags.Changed("rating") {
			v, _ := flags.GetInt("rating")
			if v < minRating || v > maxRating {
				return fmt.Errorf("rating must be between %d and %d", minRating, maxRating)
			}
			req.Rating = &v
		}
		if flags.Changed("text") {
			v, _ := flags.GetString("text")
			req.ReviewText = &v
		}

		review, err := newClient().Update(cmd.Context(), args[0], req)
		if err != nil {
			if client.IsNotFound(err) {
				return fmt.Errorf("review %s not found", args[0])
			}
			return fmt.Errorf("failed to edit review: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Review updated")
		printReviews(cmd.OutOrStdout(), []client.Review{*review})
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm [review-id]",
	Short: "Delete a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newClient().Delete(cmd.Context(), args[0])
		if err != nil {
			if client.IsNotFound(err) {
				return fmt.Errorf("review %s not found", args[0])
			}
			return fmt.Errorf("failed to delete review: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓", msg)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().String("title", "", "book title")
		c.Flags().String("author", "", "book author")
		c.Flags().Int("rating", 0, "rating from 1 to 5")
		c.Flags().String("text", "", "review text")
	}
}

func validateCreate(req client.CreateReviewRequest) error {
	var missing []string
	if req.BookTitle == "" {
		missing = append(missing, "--title")
	}
	if req.Author == "" {
		missing = append(missing, "--author")
	}
	if req.ReviewText == "" {
		missing = append(missing, "--text")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	if req.Rating < minRating || req.Rating > maxRating {
		return fmt.Errorf("rating must be between %d and %d", minRating, maxRating)
	}
	return nil
}

func printReviews(out io.Writer, reviews []client.Review) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tRATING\tADDED")
	for _, r := range reviews {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.BookTitle, r.Author, stars(r.Rating), r.DateAdded.Local().Format("2006-01-02 15:04"))
	}
	w.Flush()

	for _, r := range reviews {
		fmt.Fprintf(out, "\n%s by %s\n  %s\n", r.BookTitle, r.Author, r.ReviewText)
	}
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > maxRating {
		n = maxRating
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", maxRating-n)
}

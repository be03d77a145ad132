package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookreviews/pkg/client"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, srvURL string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--api", srvURL}, args...))
	t.Cleanup(func() {
		// flags keep their values between Execute calls
		for _, c := range []*cobra.Command{addCmd, editCmd} {
			c.Flags().VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateCreate(t *testing.T) {
	ok := client.CreateReviewRequest{BookTitle: "Dune", Author: "Herbert", Rating: 5, ReviewText: "Great."}
	assert.NoError(t, validateCreate(ok))

	bad := ok
	bad.Rating = 6
	assert.EqualError(t, validateCreate(bad), "rating must be between 1 and 5")

	bad = ok
	bad.BookTitle = ""
	bad.ReviewText = ""
	assert.EqualError(t, validateCreate(bad), "missing required flags: --title, --text")
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★☆☆", stars(3))
	assert.Equal(t, "☆☆☆☆☆", stars(-1))
	assert.Equal(t, "★★★★★", stars(9))
}

func TestCommands(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotBody = r.Method, r.URL.Path, nil
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]client.Review{{ID: "abc", BookTitle: "Dune", Author: "Herbert", Rating: 4, ReviewText: "Great.", DateAdded: time.Now()}})
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(client.Review{ID: "abc"})
		case http.MethodPut:
			_ = json.NewEncoder(w).Encode(client.Review{ID: "abc", BookTitle: "Dune", Rating: 3})
		case http.MethodDelete:
			if r.URL.Path != "/reviews/abc" {
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Review not found"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Review deleted successfully"})
		}
	}))
	defer srv.Close()

	t.Run("list", func(t *testing.T) {
		out, err := runCLI(t, srv.URL, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Dune")
		assert.Contains(t, out, "★★★★☆")
	})

	t.Run("add", func(t *testing.T) {
		out, err := runCLI(t, srv.URL, "add", "--title", "Dune", "--author", "Herbert", "--rating", "5", "--text", "Great.")
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "Dune", gotBody["bookTitle"])
		assert.Contains(t, out, "abc")
	})

	t.Run("add rejects bad rating before calling the api", func(t *testing.T) {
		gotMethod = ""
		_, err := runCLI(t, srv.URL, "add", "--title", "Dune", "--author", "Herbert", "--rating", "0", "--text", "Great.")
		require.Error(t, err)
		assert.Empty(t, gotMethod)
	})

	t.Run("edit sends only changed flags", func(t *testing.T) {
		_, err := runCLI(t, srv.URL, "edit", "abc", "--rating", "3")
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "/reviews/abc", gotPath)
		assert.Equal(t, map[string]any{"rating": float64(3)}, gotBody)
	})

	t.Run("rm", func(t *testing.T) {
		out, err := runCLI(t, srv.URL, "rm", "abc")
		require.NoError(t, err)
		assert.Contains(t, out, "Review deleted successfully")

		_, err = runCLI(t, srv.URL, "rm", "nope")
		assert.EqualError(t, err, "review nope not found")
	})
}

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingPage = `<!DOCTYPE html>
<html>
<head><title>Senior Go Engineer - Example Board</title>
<script>window.tracker = {};</script>
</head>
<body>
<nav>Home | Jobs | Companies</nav>
<div class="cookie-banner">We use cookies. Accept?</div>
<div class="job-description">
  <h1>Senior Go Engineer</h1>
  <p>We are hiring a backend engineer with Go and PostgreSQL experience.</p>
  <p>Remote friendly. Salary range disclosed on request.</p>
</div>
<div class="similar-jobs">Staff Engineer at OtherCo</div>
<footer>© Example Board</footer>
</body>
</html>`

func TestURL_FetchesPostingPage(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(postingPage))
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "Senior Go Engineer")
	assert.Contains(t, result.ContentType, "text/html")
	assert.Contains(t, gotUserAgent, "JobPortal")
}

func TestURL_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "posting expired", http.StatusNotFound)
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)

	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	assert.Contains(t, ferr.Message, "404")

	// The body still comes back for inspection.
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not-a-url", "/relative/path"} {
		t.Run(raw, func(t *testing.T) {
			_, err := URL(context.Background(), raw, nil)
			var ferr *Error
			require.True(t, errors.As(err, &ferr))
			assert.Equal(t, "invalid URL", ferr.Message)
		})
	}
}

func TestURL_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := URL(ctx, srv.URL, nil)
	assert.Error(t, err)
}

func TestExtractMainText_PostingSelector(t *testing.T) {
	text, err := ExtractMainText(postingPage, JobPostingSelectors())
	require.NoError(t, err)

	assert.Contains(t, text, "Senior Go Engineer")
	assert.Contains(t, text, "Go and PostgreSQL")

	// Board chrome is stripped before extraction.
	assert.NotContains(t, text, "We use cookies")
	assert.NotContains(t, text, "Staff Engineer at OtherCo")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "window.tracker")
}

func TestExtractMainText_BodyFallback(t *testing.T) {
	page := `<html><body><div><p>Backend role. Go required.</p></div></body></html>`

	text, err := ExtractMainText(page, JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Backend role. Go required.", text)
}

func TestExtractMainText_EmptyPage(t *testing.T) {
	_, err := ExtractMainText("<html><body><script>x()</script></body></html>", JobPostingSelectors())

	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	assert.Contains(t, ferr.Message, "no text content")
}

func TestCollapseText(t *testing.T) {
	in := "  Senior   Go Engineer  \n\n\n   Remote \t friendly  \n"
	assert.Equal(t, "Senior Go Engineer\nRemote friendly", collapseText(in))
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("   \n  "))
	assert.True(t, ShouldUseBrowser("Loading..."))
	assert.False(t, ShouldUseBrowser(strings.Repeat("responsibilities ", 40)))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{URL: "https://jobs.example.com/42", Message: "request failed", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "jobs.example.com")
	assert.Contains(t, err.Error(), "connection refused")
}

package export

import (
	"strings"
	"testing"
	"time"

	"hikaya/api/internal/content"
	"hikaya/api/internal/identity"
)

func TestRenderStoryHTML(t *testing.T) {
	html, err := RenderStoryHTML(TemplateData{
		Title:      "نجمة السماء",
		Category:   "قصص أطفال",
		AuthorName: "فاطمة الزهراء",
		CreatedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Content:    "كانت هناك نجمة صغيرة",
		Comments: []TemplateComment{
			{AuthorName: "علي حسن", Text: "قصة جميلة"},
		},
	})
	if err != nil {
		t.Fatalf("RenderStoryHTML failed: %v", err)
	}

	for _, want := range []string{
		`dir="rtl"`,
		"نجمة السماء",
		"قصص أطفال",
		"فاطمة الزهراء",
		"2026-03-01",
		"التعليقات",
		"قصة جميلة",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestRenderStoryHTMLWithoutComments(t *testing.T) {
	html, err := RenderStoryHTML(TemplateData{
		Title:      "عنوان",
		Category:   "مغامرة",
		AuthorName: "Layla",
		CreatedAt:  time.Now(),
		Content:    "محتوى",
	})
	if err != nil {
		t.Fatalf("RenderStoryHTML failed: %v", err)
	}
	if strings.Contains(html, "التعليقات") {
		t.Error("comment section rendered without comments")
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	html, err := RenderStoryHTML(TemplateData{
		Title:     "<script>alert(1)</script>",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("RenderStoryHTML failed: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("title not escaped")
	}
}

func TestExportCommentsToggle(t *testing.T) {
	story := content.Story{
		Title:     "عنوان",
		Category:  "مغامرة",
		Author:    identity.User{Name: "Layla"},
		CreatedAt: time.Now(),
		Content:   "محتوى",
		Comments: []content.Comment{
			{Text: "تعليق", User: identity.User{Name: "Omar"}},
		},
	}

	// Unknown format fails before any renderer dependency is needed.
	if _, err := Export(story, Format("epub"), true); err != ErrUnsupportedFormat {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"نجمة السماء الحزينة", "نجمة-السماء-الحزينة"},
		{"Hello, World!", "Hello-World"},
		{"///", "story"},
		{"", "story"},
	}
	for _, tc := range tests {
		if got := sanitizeFilename(tc.input); got != tc.expected {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestPercentEncodeForDataURL(t *testing.T) {
	encoded := percentEncodeForDataURL("a b")
	if encoded != "a%20b" {
		t.Fatalf("space must encode as %%20, got %q", encoded)
	}
	if strings.Contains(percentEncodeForDataURL("<p>نص</p>"), "<") {
		t.Fatal("markup must be fully encoded")
	}
}

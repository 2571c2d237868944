package export

import (
	"hikaya/api/internal/content"
)

// Export renders the story (with its comments) and converts it to the
// requested format. The story is passed in already loaded so the export
// path never touches the view counter.
func Export(story content.Story, format Format, includeComments bool) (*Result, error) {
	data := TemplateData{
		Title:      story.Title,
		Category:   story.Category,
		AuthorName: story.Author.Name,
		CreatedAt:  story.CreatedAt,
		Content:    story.Content,
	}
	if includeComments {
		for _, comment := range story.Comments {
			data.Comments = append(data.Comments, TemplateComment{
				AuthorName: comment.User.Name,
				Text:       comment.Text,
			})
		}
	}

	html, err := RenderStoryHTML(data)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatPDF:
		return exportPDF(html, story.Title)
	case FormatDOCX:
		return exportDOCX(html, story.Title)
	default:
		return nil, ErrUnsupportedFormat
	}
}

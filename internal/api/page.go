package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"meister/internal/question"
	"meister/internal/verbose"
)

func (h *handler) handleQuestionsPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := parsePage(query.Get("page"))
	if err != nil {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}
	tags := question.NormalizeTags(parseTags(query["tags"]))
	questions, err := h.store.FetchQuestions(r.Context(), tags, page)
	if err != nil {
		h.logger.Errorf("fetch questions page tags=%s: %v", verbose.FormatTags(tags), err)
		http.Error(w, "backend error", http.StatusInternalServerError)
		return
	}
	templ.Handler(questionsPage(tags, page, questions)).ServeHTTP(w, r)
}

// questionsPage lists questions without their answers.
func questionsPage(tags []string, page int, questions []question.Question) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>Meister questions</title></head>\n<body>\n")
		b.WriteString("<h1>Questions</h1>\n")
		fmt.Fprintf(&b, "<p class=\"filter\">Tags: %s &middot; page %d</p>\n", templ.EscapeString(verbose.FormatTags(tags)), page)
		if len(questions) == 0 {
			b.WriteString("<p class=\"empty\">No questions found for the selected tags.</p>\n")
		} else {
			b.WriteString("<ol class=\"questions\">\n")
			for _, q := range questions {
				writeQuestionItem(&b, q)
			}
			b.WriteString("</ol>\n")
		}
		b.WriteString("</body>\n</html>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeQuestionItem(b *strings.Builder, q question.Question) {
	fmt.Fprintf(b, "<li id=\"q-%s\" data-kind=\"%s\">\n", templ.EscapeString(q.ID), templ.EscapeString(string(q.Kind())))
	fmt.Fprintf(b, "<p class=\"text\">%s</p>\n", templ.EscapeString(q.Text))
	if choices := q.Choices(); len(choices) > 0 {
		b.WriteString("<ul class=\"choices\">\n")
		for _, choice := range choices {
			fmt.Fprintf(b, "<li>%s</li>\n", templ.EscapeString(choice.Text))
		}
		b.WriteString("</ul>\n")
	}
	if len(q.Tags) > 0 {
		fmt.Fprintf(b, "<p class=\"tags\">%s</p>\n", templ.EscapeString(strings.Join(q.Tags, ", ")))
	}
	b.WriteString("</li>\n")
}

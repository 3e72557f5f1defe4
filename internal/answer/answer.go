package answer

import (
	"strings"

	"github.com/dgallion1/docqa/internal/inference"
)

// Part is one inference result. Err holds an *inference.HTTPError when the
// endpoint answered with a non-200 status; Text is empty in that case.
type Part struct {
	Index int
	Text  string
	Err   error
}

// Render returns the displayable text for the part.
func (p Part) Render() string {
	if p.Err != nil {
		if text, ok := inference.Render(p.Err); ok {
			return text
		}
		return p.Err.Error()
	}
	return p.Text
}

// Answer is the aggregated result of one question.
type Answer struct {
	Mode    Mode
	Summary *Part // set in summarize mode
	Parts   []Part
}

// Text joins the rendered parts, in order, with single spaces.
func (a *Answer) Text() string {
	texts := make([]string, len(a.Parts))
	for i, p := range a.Parts {
		texts[i] = p.Render()
	}
	return strings.Join(texts, " ")
}

// Failed counts parts whose call returned a non-200 status.
func (a *Answer) Failed() int {
	n := 0
	for _, p := range a.Parts {
		if p.Err != nil {
			n++
		}
	}
	return n
}

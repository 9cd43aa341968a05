package chrome

import (
	"strings"
	"unicode/utf8"
)

// maxTitleLen caps committed titles, in runes, so the header layout stays
// bounded.
const maxTitleLen = 120

// TitleField models the editable document title in the viewport header.
// Edits accumulate in a draft; the stored value changes only on commit.
type TitleField struct {
	value   string
	draft   string
	editing bool

	// OnCommit, when set, observes every committed title change.
	OnCommit func(title string)
}

func NewTitleField(value string) *TitleField {
	return &TitleField{value: sanitizeTitle(value)}
}

func (f *TitleField) Value() string { return f.value }
func (f *TitleField) Editing() bool { return f.editing }

// Draft is the in-progress text while editing, or the value otherwise.
func (f *TitleField) Draft() string {
	if f.editing {
		return f.draft
	}
	return f.value
}

// Begin enters edit mode with the current value as the draft.
func (f *TitleField) Begin() {
	if f.editing {
		return
	}
	f.editing = true
	f.draft = f.value
}

// SetDraft replaces the in-progress text. Ignored outside edit mode.
func (f *TitleField) SetDraft(text string) {
	if f.editing {
		f.draft = text
	}
}

// Commit ends editing and stores the sanitized draft. A draft that is
// empty after trimming keeps the previous value.
func (f *TitleField) Commit() {
	if !f.editing {
		return
	}
	f.editing = false

	title := sanitizeTitle(f.draft)
	if title == "" || title == f.value {
		return
	}
	f.value = title
	if f.OnCommit != nil {
		f.OnCommit(title)
	}
}

// Cancel ends editing and discards the draft.
func (f *TitleField) Cancel() {
	f.editing = false
	f.draft = ""
}

func sanitizeTitle(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxTitleLen {
		runes := []rune(s)
		s = strings.TrimSpace(string(runes[:maxTitleLen]))
	}
	return s
}

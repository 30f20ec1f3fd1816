// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RawArticle is one arXiv feed entry before persistence. It carries no
// identity; the store assigns an ID on insert.
type RawArticle struct {
	// Title is the entry title with surrounding whitespace removed.
	Title string `json:"title" yaml:"title"`

	// Published is the submission timestamp from the feed (UTC).
	Published time.Time `json:"published" yaml:"published"`

	// PDFURL is the href of the entry's application/pdf link. Empty
	// when the entry carries no PDF link.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
}

// Article is a stored paper record. Optional columns map to empty
// strings; PDFURL doubles as the deduplication key when non-empty.
type Article struct {
	// ID is assigned by the store on insert and never changes.
	ID int64 `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// PublishedDate is the submission timestamp (UTC).
	PublishedDate time.Time `json:"published_date" yaml:"published_date"`

	// PDFURL is the source PDF link, when the feed provided one.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// FilePath is a local path to a downloaded artifact. Reserved;
	// no code path populates it yet.
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`

	// Summary is the generated summary text. Set together with
	// SummaryPath or not at all.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// SummaryPath is the path of the summary text file on disk.
	SummaryPath string `json:"summary_path,omitempty" yaml:"summary_path,omitempty"`
}

// HasSummary reports whether the summarizer has processed this article.
func (a Article) HasSummary() bool {
	return a.Summary != ""
}

package classifier

import (
	"regexp"
	"strings"
)

// Kind selects which pipeline handles a classified chat turn.
type Kind string

const (
	KindPlainChat Kind = "plain_chat"
	KindYouTube   Kind = "youtube"
)

// FileKind is the mime-type sub-dispatch for uploaded files.
type FileKind string

const (
	FileKindImage       FileKind = "image"
	FileKindPDF         FileKind = "pdf"
	FileKindUnsupported FileKind = "unsupported"
)

// Result is the outcome of classifying one text turn. For KindYouTube, URL
// holds the extracted link and Question the remaining trimmed text.
type Result struct {
	Kind     Kind
	URL      string
	Question string
}

// Three recognized shapes, each pinned to the 11-character video id:
// watch URLs, youtu.be short links, and shorts links.
var youtubeURLPattern = regexp.MustCompile(
	`https?://(?:www\.)?(?:youtube\.com/watch\?v=[\w-]{11}|youtu\.be/[\w-]{11}|youtube\.com/shorts/[\w-]{11})`,
)

// ClassifyText inspects raw user text and selects a pipeline. A recognized
// YouTube URL routes to the YouTube pipeline with everything around the URL
// kept as the optional question; anything else is plain chat.
func ClassifyText(text string) Result {
	url := youtubeURLPattern.FindString(text)
	if url == "" {
		return Result{Kind: KindPlainChat}
	}

	question := strings.TrimSpace(strings.Replace(text, url, "", 1))
	return Result{
		Kind:     KindYouTube,
		URL:      url,
		Question: question,
	}
}

// ClassifyFile dispatches on the declared mime type only; file content is
// never inspected here.
func ClassifyFile(mimeType string) FileKind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return FileKindImage
	case mimeType == "application/pdf":
		return FileKindPDF
	default:
		return FileKindUnsupported
	}
}

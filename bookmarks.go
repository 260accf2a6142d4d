package pdfoutline

import (
	"strings"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
)

// maxBookmarkDepth bounds the tree walk against cyclic outline trees.
const maxBookmarkDepth = 8

// ReadBookmarks walks the document bookmark tree depth-first and returns a
// flat list of entries with their nesting depth (1 = top level). Bookmarks
// are an optional fallback source, so a missing tree and a failed walk both
// yield an empty list rather than an error.
func ReadBookmarks(instance pdfium.Pdfium, document references.FPDF_DOCUMENT) []BookmarkEntry {
	var entries []BookmarkEntry
	walkBookmarks(instance, document, nil, 1, &entries)
	return entries
}

func walkBookmarks(instance pdfium.Pdfium, document references.FPDF_DOCUMENT, parent *references.FPDF_BOOKMARK, depth int, entries *[]BookmarkEntry) {
	if depth > maxBookmarkDepth {
		return
	}

	child, err := instance.FPDFBookmark_GetFirstChild(&requests.FPDFBookmark_GetFirstChild{
		Document: document,
		Bookmark: parent,
	})
	if err != nil {
		return
	}

	current := child.Bookmark
	for current != nil {
		title := ""
		titleRes, err := instance.FPDFBookmark_GetTitle(&requests.FPDFBookmark_GetTitle{
			Bookmark: *current,
		})
		if err == nil {
			title = strings.TrimSpace(titleRes.Title)
		}

		if title != "" {
			*entries = append(*entries, BookmarkEntry{
				Title: title,
				Page:  bookmarkPage(instance, document, *current),
				Depth: depth,
			})
		}

		walkBookmarks(instance, document, current, depth+1, entries)

		sibling, err := instance.FPDFBookmark_GetNextSibling(&requests.FPDFBookmark_GetNextSibling{
			Document: document,
			Bookmark: *current,
		})
		if err != nil {
			return
		}
		current = sibling.Bookmark
	}
}

// bookmarkPage resolves the destination page index of a bookmark, or -1 when
// the bookmark has no direct destination.
func bookmarkPage(instance pdfium.Pdfium, document references.FPDF_DOCUMENT, bookmark references.FPDF_BOOKMARK) int {
	dest, err := instance.FPDFBookmark_GetDest(&requests.FPDFBookmark_GetDest{
		Document: document,
		Bookmark: bookmark,
	})
	if err != nil || dest.Dest == nil {
		return -1
	}

	index, err := instance.FPDFDest_GetDestPageIndex(&requests.FPDFDest_GetDestPageIndex{
		Document: document,
		Dest:     *dest.Dest,
	})
	if err != nil {
		return -1
	}
	return index.Index
}

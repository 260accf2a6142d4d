package pdfoutline

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// ProcessingMetrics contains timing and statistics for outline inference
type ProcessingMetrics struct {
	TotalTime       time.Duration
	DocumentOpen    time.Duration
	PageExtractions []PageMetrics
	Statistics      DocumentStatistics
}

// PageMetrics contains timing for a single page
type PageMetrics struct {
	PageNumber int
	Duration   time.Duration
}

// DocumentStatistics contains document-level statistics
type DocumentStatistics struct {
	TotalPages     int
	TotalLines     int
	TotalBookmarks int
	OutlineEntries int
	TitleFound     bool
}

// Engine infers document outlines using pdfium text extraction.
type Engine struct {
	instance pdfium.Pdfium
	config   Config
}

// NewEngine creates a new outline engine with default configuration.
func NewEngine(instance pdfium.Pdfium) *Engine {
	return &Engine{
		instance: instance,
		config:   DefaultConfig(),
	}
}

// NewEngineWithConfig creates a new outline engine with custom configuration.
func NewEngineWithConfig(instance pdfium.Pdfium, config Config) *Engine {
	return &Engine{
		instance: instance,
		config:   config,
	}
}

// OutlineFile infers the outline of a PDF file.
func (e *Engine) OutlineFile(filePath string) (*Outline, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, NewExtractionUnavailableError(filePath, err)
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	outline, _, err := e.outlineDocument(doc.Document)
	return outline, err
}

// OutlineBytes infers the outline of a PDF held in memory.
func (e *Engine) OutlineBytes(pdfBytes []byte) (*Outline, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		File: &pdfBytes,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	outline, _, err := e.outlineDocument(doc.Document)
	return outline, err
}

// OutlineReader infers the outline of a PDF from an io.ReadSeeker.
func (e *Engine) OutlineReader(reader io.ReadSeeker) (*Outline, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FileReader: reader,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	outline, _, err := e.outlineDocument(doc.Document)
	return outline, err
}

// OutlineFileWithMetrics infers an outline and returns processing metrics
// alongside it.
func (e *Engine) OutlineFileWithMetrics(filePath string) (*Outline, ProcessingMetrics, error) {
	openStart := time.Now()
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, ProcessingMetrics{}, NewExtractionUnavailableError(filePath, err)
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})
	documentOpenTime := time.Since(openStart)

	outline, metrics, err := e.outlineDocument(doc.Document)
	if err != nil {
		return nil, ProcessingMetrics{}, err
	}

	metrics.DocumentOpen = documentOpenTime
	metrics.TotalTime += documentOpenTime
	return outline, metrics, nil
}

// outlineDocument runs extraction and inference over an open document.
func (e *Engine) outlineDocument(docRef references.FPDF_DOCUMENT) (*Outline, ProcessingMetrics, error) {
	startTime := time.Now()

	pageCount, err := e.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: docRef,
	})
	if err != nil {
		return nil, ProcessingMetrics{}, errors.Wrap(err, "failed to get page count")
	}

	doc := DocumentText{
		PageCount: pageCount.PageCount,
		MetaTitle: e.metaTitle(docRef),
		Bookmarks: ReadBookmarks(e.instance, docRef),
	}

	var pageMetrics []PageMetrics
	for i := 0; i < pageCount.PageCount; i++ {
		pageStart := time.Now()
		lines, err := e.extractPage(docRef, i)
		pageDuration := time.Since(pageStart)

		if err != nil {
			return nil, ProcessingMetrics{}, errors.Wrapf(err, "failed to extract page %d", i+1)
		}
		doc.Lines = append(doc.Lines, lines...)

		pageMetrics = append(pageMetrics, PageMetrics{
			PageNumber: i + 1,
			Duration:   pageDuration,
		})

		if e.config.EnableMetricsLogging {
			log.Printf("Page %d/%d extracted in %v", i+1, pageCount.PageCount, pageDuration)
		}
	}

	outline := BuildOutline(doc, e.config)

	metrics := ProcessingMetrics{
		TotalTime:       time.Since(startTime),
		PageExtractions: pageMetrics,
		Statistics: DocumentStatistics{
			TotalPages:     pageCount.PageCount,
			TotalLines:     len(doc.Lines),
			TotalBookmarks: len(doc.Bookmarks),
			OutlineEntries: len(outline.Entries),
			TitleFound:     outline.Title != "",
		},
	}

	if e.config.EnableMetricsLogging {
		logProcessingMetrics(metrics)
	}

	return outline, metrics, nil
}

// extractPage loads a single page and extracts its line stream.
func (e *Engine) extractPage(docRef references.FPDF_DOCUMENT, pageIndex int) ([]TextLine, error) {
	pageResp, err := e.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: docRef,
		Index:    pageIndex,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load page")
	}
	defer e.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
		Page: pageResp.Page,
	})

	// Pages are 0-indexed throughout, matching the output format
	lines, err := ExtractPageLines(e.instance, pageResp.Page, pageIndex)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract page text")
	}

	return lines, nil
}

// metaTitle reads the document Title metadata field, or "" when absent.
func (e *Engine) metaTitle(docRef references.FPDF_DOCUMENT) string {
	meta, err := e.instance.FPDF_GetMetaText(&requests.FPDF_GetMetaText{
		Document: docRef,
		Tag:      "Title",
	})
	if err != nil {
		return ""
	}
	return meta.Value
}

// logProcessingMetrics logs the processing metrics in a readable format
func logProcessingMetrics(metrics ProcessingMetrics) {
	log.Println("┌─────────────────────────────────────────────┐")
	log.Println("│ Outline Processing Metrics                  │")
	log.Println("├─────────────────────────────────────────────┤")
	log.Printf("│ Total Time: %-31v │\n", metrics.TotalTime.Round(time.Millisecond))
	log.Println("├─────────────────────────────────────────────┤")
	log.Println("│ Document Statistics                         │")
	log.Println("├─────────────────────────────────────────────┤")
	log.Printf("│   Pages:      %-29d │\n", metrics.Statistics.TotalPages)
	log.Printf("│   Lines:      %-29d │\n", metrics.Statistics.TotalLines)
	log.Printf("│   Bookmarks:  %-29d │\n", metrics.Statistics.TotalBookmarks)
	log.Printf("│   Headings:   %-29d │\n", metrics.Statistics.OutlineEntries)
	log.Println("├─────────────────────────────────────────────┤")
	log.Println("│ Per-Page Timing                             │")
	log.Println("├─────────────────────────────────────────────┤")

	// Show timing for each page
	for _, pm := range metrics.PageExtractions {
		log.Printf("│   Page %2d: %-30v │\n", pm.PageNumber, pm.Duration.Round(time.Millisecond))
	}

	// Show average time per page
	if len(metrics.PageExtractions) > 0 {
		avgTime := metrics.TotalTime / time.Duration(len(metrics.PageExtractions))
		log.Println("├─────────────────────────────────────────────┤")
		log.Printf("│ Avg per page: %-28v │\n", avgTime.Round(time.Millisecond))
	}

	log.Println("└─────────────────────────────────────────────┘")
}

// GetDocumentInfo returns basic information about a PDF without processing it.
func (e *Engine) GetDocumentInfo(filePath string) (*DocumentInfo, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCount, err := e.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}

	return &DocumentInfo{
		PageCount: pageCount.PageCount,
		Title:     strings.TrimSpace(e.metaTitle(doc.Document)),
		Bookmarks: len(ReadBookmarks(e.instance, doc.Document)),
	}, nil
}

// DocumentInfo contains basic information about a PDF document.
type DocumentInfo struct {
	PageCount int
	Title     string
	Bookmarks int
}

// Package extraction turns a fully loaded completed-solutions listing into solution records.
package extraction

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/codewars-scraper/internal/browser"
	"github.com/jonathan/codewars-scraper/internal/types"
)

// DocumentHTMLScript returns the live document's markup.
const DocumentHTMLScript = `document.documentElement.outerHTML`

// Selectors locate the parts of each listing item.
type Selectors struct {
	Item         string
	TitleLink    string
	CodeBlock    string
	LanguageAttr string
}

// DefaultSelectors returns selectors for the Codewars completed-solutions page.
func DefaultSelectors() Selectors {
	return Selectors{
		Item:         "div.list-item-solutions",
		TitleLink:    ".item-title a",
		CodeBlock:    "pre code",
		LanguageAttr: "data-language",
	}
}

// Result holds the records extracted and the items that were skipped.
type Result struct {
	Records  []types.SolutionRecord
	Failures []*ExtractionError
	// Items is the number of listing items found.
	Items int
}

// Extractor reads solution records out of a loaded page.
type Extractor struct {
	Selectors Selectors
	Logger    *zap.Logger
}

// NewExtractor returns an Extractor with the default selectors.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{Selectors: DefaultSelectors(), Logger: logger}
}

// Extract snapshots the page's document and extracts records from it.
func (x *Extractor) Extract(ctx context.Context, page browser.Evaluator) (*Result, error) {
	var html string
	if err := page.Evaluate(ctx, DocumentHTMLScript, &html); err != nil {
		return nil, &ExtractionError{Kind: KindDocumentUnavailable, Index: -1, Message: "failed to read document", Cause: err}
	}
	return x.ExtractHTML(html)
}

// ExtractHTML extracts records from listing markup. Malformed items are
// skipped and reported in Result.Failures; records keep document order.
func (x *Extractor) ExtractHTML(html string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{Kind: KindDocumentUnavailable, Index: -1, Message: "failed to parse HTML", Cause: err}
	}

	log := x.Logger
	if log == nil {
		log = zap.NewNop()
	}

	items := doc.Find(x.Selectors.Item)
	result := &Result{Items: items.Length()}

	items.Each(func(i int, item *goquery.Selection) {
		record, itemErr := x.extractItem(i, item)
		if itemErr != nil {
			log.Warn("skipping malformed listing item", zap.Int("index", i), zap.Error(itemErr))
			result.Failures = append(result.Failures, itemErr)
			return
		}
		result.Records = append(result.Records, record)
	})

	log.Info("extracted solutions",
		zap.Int("items", result.Items),
		zap.Int("records", len(result.Records)),
		zap.Int("skipped", len(result.Failures)))
	return result, nil
}

func (x *Extractor) extractItem(index int, item *goquery.Selection) (types.SolutionRecord, *ExtractionError) {
	link := item.Find(x.Selectors.TitleLink).First()
	if link.Length() == 0 {
		return types.SolutionRecord{}, malformed(index, "missing title link", nil)
	}

	href, ok := link.Attr("href")
	if !ok {
		return types.SolutionRecord{}, malformed(index, "title link has no href", nil)
	}
	id, ok := ProblemID(href)
	if !ok {
		return types.SolutionRecord{}, malformed(index, "unrecognized problem link "+href, nil)
	}

	name := NormalizeName(link.Text())
	if name == "" {
		return types.SolutionRecord{}, malformed(index, "title normalizes to an empty name", nil)
	}

	variants, err := Pair(x.languages(item), x.sources(item))
	if err != nil {
		return types.SolutionRecord{}, malformed(index, "languages and code blocks do not line up", err)
	}

	return types.SolutionRecord{ProblemID: id, ProblemName: name, Variants: variants}, nil
}

// languages is the first pass: declared languages of the code blocks that have one.
func (x *Extractor) languages(item *goquery.Selection) []string {
	var langs []string
	item.Find(x.Selectors.CodeBlock).Each(func(_ int, block *goquery.Selection) {
		if lang, ok := block.Attr(x.Selectors.LanguageAttr); ok && strings.TrimSpace(lang) != "" {
			langs = append(langs, strings.TrimSpace(lang))
		}
	})
	return langs
}

// sources is the second pass: the text of every code block, verbatim.
func (x *Extractor) sources(item *goquery.Selection) []string {
	return item.Find(x.Selectors.CodeBlock).Map(func(_ int, block *goquery.Selection) string {
		return block.Text()
	})
}

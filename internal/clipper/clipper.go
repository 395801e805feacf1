package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"nutriplan/internal/meal"
)

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	httpClient *http.Client
}

// ExtractedRecipe is the recipe data found on a page.
type ExtractedRecipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	SourceURL   string   `json:"source_url"`
}

// NewClipper creates a new Clipper instance.
func NewClipper() *Clipper {
	return &Clipper{httpClient: &http.Client{Timeout: 15 * time.Second}}
}

// ClipURL fetches url and extracts its recipe.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*ExtractedRecipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	rec, err := Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	rec.SourceURL = url
	return rec, nil
}

// Parse extracts a recipe from an HTML document. Schema.org JSON-LD is
// preferred; common recipe-plugin markup is the fallback.
func Parse(r io.Reader) (*ExtractedRecipe, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	rec := fromJSONLD(doc)
	if rec == nil {
		rec = fromMarkup(doc)
	}

	if rec.Title == "" {
		return nil, fmt.Errorf("no recipe title found")
	}
	if len(rec.Ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients found for %q", rec.Title)
	}
	return rec, nil
}

// Candidate converts the recipe into a catalog candidate.
func (r ExtractedRecipe) Candidate(cost float64) meal.Candidate {
	return meal.Candidate{
		Name:         r.Title,
		Cost:         cost,
		Ingredients:  r.Ingredients,
		Instructions: r.Steps,
	}
}

var (
	ingredientSelectors = []string{
		"[itemprop=recipeIngredient]",
		".wprm-recipe-ingredient",
		".tasty-recipes-ingredients li",
		".ingredients li",
	}
	stepSelectors = []string{
		"[itemprop=recipeInstructions] li",
		"[itemprop=recipeInstructions]",
		".wprm-recipe-instruction",
		".tasty-recipes-instructions li",
		".instructions li",
	}
)

func fromMarkup(doc *goquery.Document) *ExtractedRecipe {
	doc.Find("script, style, nav, footer, iframe, .ads, #ads").Remove()

	title := clean(doc.Find("h1").First().Text())
	if title == "" {
		title = clean(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	}

	return &ExtractedRecipe{
		Title:       title,
		Ingredients: firstNonEmpty(doc, ingredientSelectors),
		Steps:       firstNonEmpty(doc, stepSelectors),
	}
}

func firstNonEmpty(doc *goquery.Document, selectors []string) []string {
	for _, sel := range selectors {
		var out []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if text := clean(s.Text()); text != "" {
				out = append(out, text)
			}
		})
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

type ldRecipe struct {
	Type         json.RawMessage `json:"@type"`
	Name         string          `json:"name"`
	Ingredients  []string        `json:"recipeIngredient"`
	Instructions json.RawMessage `json:"recipeInstructions"`
	Graph        []ldRecipe      `json:"@graph"`
}

func (l ldRecipe) isRecipe() bool {
	var single string
	if json.Unmarshal(l.Type, &single) == nil {
		return single == "Recipe"
	}
	var many []string
	if json.Unmarshal(l.Type, &many) == nil {
		for _, t := range many {
			if t == "Recipe" {
				return true
			}
		}
	}
	return false
}

func fromJSONLD(doc *goquery.Document) *ExtractedRecipe {
	var found *ExtractedRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := []byte(s.Text())

		var nodes []ldRecipe
		var single ldRecipe
		if err := json.Unmarshal(raw, &single); err == nil {
			nodes = append([]ldRecipe{single}, single.Graph...)
		} else if err := json.Unmarshal(raw, &nodes); err != nil {
			return true
		}

		for _, n := range nodes {
			if !n.isRecipe() {
				continue
			}
			rec := &ExtractedRecipe{Title: clean(n.Name), Steps: ldSteps(n.Instructions)}
			for _, ing := range n.Ingredients {
				if text := clean(ing); text != "" {
					rec.Ingredients = append(rec.Ingredients, text)
				}
			}
			found = rec
			return false
		}
		return true
	})
	return found
}

// ldSteps accepts a string, a list of strings or a list of HowToStep objects.
func ldSteps(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var text string
	if json.Unmarshal(raw, &text) == nil {
		var steps []string
		for _, line := range strings.Split(text, "\n") {
			if line = clean(line); line != "" {
				steps = append(steps, line)
			}
		}
		return steps
	}

	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var steps []string
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			if s = clean(s); s != "" {
				steps = append(steps, s)
			}
			continue
		}
		var step struct {
			Text string `json:"text"`
		}
		if json.Unmarshal(item, &step) == nil {
			if s = clean(step.Text); s != "" {
				steps = append(steps, s)
			}
		}
	}
	return steps
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

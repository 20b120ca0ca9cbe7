package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/utafrali/storefront/internal/domain"
)

var validFormats = []string{"json", "text"}

func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}

func (c *cli) outputProducts(command string, products []domain.Product) error {
	n := len(products)
	return c.outputResult(CLIResult{Command: command, Results: products, TotalCount: &n})
}

func (c *cli) outputResult(result CLIResult) error {
	if c.format == "text" {
		return outputResultText(c.stdout, result)
	}
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func (c *cli) outputError(command string, err error) error {
	c.errorHandled = true
	if c.format == "text" {
		fmt.Fprintf(c.stderr, "Error: %s\n", err)
		return err
	}
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResult{Command: command, Error: err.Error()})
	return err
}

// outputResultText dispatches to the appropriate text formatter based on the
// result type.
func outputResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case []domain.Product:
		formatProductsText(w, v)
	case CLIScore:
		formatScoreText(w, v)
	case CLIProductDetail:
		formatProductDetailText(w, v)
	default:
		return fmt.Errorf("no text format for %T", v)
	}
	return nil
}

// formatProductsText formats products as aligned columns.
func formatProductsText(w io.Writer, products []domain.Product) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSUBCATEGORY\tPRICE\tRATING\tREVIEWS")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.1f\t%d\n",
			p.ID, p.Name, p.Category, orDash(p.SubCategory), p.Price, p.Rating, len(p.Reviews))
	}
	tw.Flush()
}

func formatScoreText(w io.Writer, s CLIScore) {
	fmt.Fprintf(w, "Overall: %s\n", s.Sentiment.Overall())
	formatDistribution(w, s.Sentiment)
	fmt.Fprintf(w, "Positive matches: %s\n", orDash(strings.Join(s.Matches.Positive, ", ")))
	fmt.Fprintf(w, "Negative matches: %s\n", orDash(strings.Join(s.Matches.Negative, ", ")))
}

func formatProductDetailText(w io.Writer, d CLIProductDetail) {
	p := d.Product
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(w, "Category: %s / %s\n", p.Category, orDash(p.SubCategory))
	fmt.Fprintf(w, "Price: %.2f  Rating: %.1f  Reviews: %d\n", p.Price, p.Rating, len(p.Reviews))

	if d.Sentiment != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Review sentiment: %s\n", d.Sentiment.Overall())
		formatDistribution(w, *d.Sentiment)
	}

	if len(d.Suggestions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Suggestions:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, s := range d.Suggestions {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", s.Source, s.Sentiment, s.Content)
		}
		tw.Flush()
	}
}

func formatDistribution(w io.Writer, s domain.SentimentScore) {
	fmt.Fprintf(w, "  positive: %.2f\n  neutral:  %.2f\n  negative: %.2f\n",
		s.Positive(), s.Neutral(), s.Negative())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

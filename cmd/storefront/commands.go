package main

import (
	"context"
	"math"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/app"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/sentiment"
	"github.com/utafrali/storefront/internal/service"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
)

func (c *cli) scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <text>...",
		Short: "Score review text with the sentiment lexicon",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			m := sentiment.Matches(text)
			return c.outputResult(CLIResult{
				Command: "score",
				Results: CLIScore{Text: text, Sentiment: m.Score(), Matches: m},
			})
		},
	}
}

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find products whose name, description or category contains the query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.catalogService()
			if err != nil {
				return c.outputError("search", err)
			}
			return c.outputProducts("search", svc.Search(cmd.Context(), args[0]))
		},
	}
}

func (c *cli) filterCmd() *cobra.Command {
	var (
		categories    []string
		subCategories []string
		minPrice      float64
		maxPrice      float64
		minRating     float64
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List products matching category, price and rating constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := domain.Filter{
				Categories:    categories,
				SubCategories: subCategories,
			}

			flags := cmd.Flags()
			if flags.Changed("min-price") || flags.Changed("max-price") {
				if minPrice < 0 || maxPrice < minPrice {
					return c.outputError("filter", apperrors.InvalidInput("price range must satisfy 0 <= min-price <= max-price"))
				}
				f.Price = &domain.PriceRange{Min: minPrice, Max: maxPrice}
			}
			if flags.Changed("min-rating") {
				if minRating < 0 || minRating > domain.MaxProductRating {
					return c.outputError("filter", apperrors.InvalidInput("min-rating must be between 0 and 5"))
				}
				f.Rating = &minRating
			}

			svc, err := c.catalogService()
			if err != nil {
				return c.outputError("filter", err)
			}
			return c.outputProducts("filter", svc.Filter(cmd.Context(), f))
		},
	}

	cmd.Flags().StringSliceVar(&categories, "category", nil, "category ids (repeatable or comma-separated)")
	cmd.Flags().StringSliceVar(&subCategories, "subcategory", nil, "subcategory ids (repeatable or comma-separated)")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price, inclusive")
	cmd.Flags().Float64Var(&maxPrice, "max-price", math.MaxFloat64, "maximum price, inclusive")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "minimum product rating, inclusive")
	return cmd
}

func (c *cli) productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product with its review sentiment and suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.catalogService()
			if err != nil {
				return c.outputError("product", err)
			}

			ctx := cmd.Context()
			p, err := svc.FetchByID(ctx, args[0])
			if err != nil {
				return c.outputError("product", err)
			}
			detail := CLIProductDetail{Product: p}
			if score, ok, err := svc.ProductSentiment(ctx, p.ID); err == nil && ok {
				detail.Sentiment = &score
			}
			if detail.Suggestions, err = svc.Suggestions(ctx, p.ID); err != nil {
				return c.outputError("product", err)
			}

			return c.outputResult(CLIResult{Command: "product", Results: detail})
		},
	}
}

func (c *cli) topRatedCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top-rated",
		Short: "List the highest rated products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.catalogService()
			if err != nil {
				return c.outputError("top-rated", err)
			}
			return c.outputProducts("top-rated", svc.TopRated(cmd.Context(), limit))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultTopRated, "number of products to list")
	return cmd
}

func (c *cli) serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront HTTP API",
		Long:  "Serve the storefront HTTP API. Settings come from the environment; --fixture, --seed and --port override them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("fixture") {
				cfg.FixturePath = c.fixture
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = c.seed
			}
			if cmd.Flags().Changed("port") {
				cfg.HTTPPort = port
			}

			log := logger.NewWithFormat("storefront", cfg.LogLevel, cfg.LogFormat, c.stderr)
			application, err := app.NewApp(cfg, log)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return application.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (default: STOREFRONT_HTTP_PORT)")
	return cmd
}

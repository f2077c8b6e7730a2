package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"preschool-finder/api"
	"preschool-finder/config"
	"preschool-finder/models"
	"preschool-finder/services"
	"preschool-finder/storage"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, err := a.queryService(ctx)
			if err != nil {
				return err
			}
			if port == "" {
				port = a.cfg.APIPort
			}

			if os.Getenv(gin.EnvGinMode) == "" {
				gin.SetMode(gin.ReleaseMode)
			}
			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           api.NewRouter(api.NewHandler(svc, a.logger, a.cfg.DefaultPageLimit)),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("[main] Serving %d facilities from %s on :%s",
					svc.Catalogue().Len(), svc.Catalogue().Source(), port)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			a.logger.Info("[main] Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides API_PORT)")
	return cmd
}

// searchFlags are shared by search and export.
type searchFlags struct {
	minRating  float64
	ageRange   string
	curriculum string
	priceRange string
	page       int
	limit      int
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.minRating, "min-rating", 0, "Minimum rating (0-5)")
	cmd.Flags().StringVar(&f.ageRange, "age-range", "", "Age range text, e.g. 2-5")
	cmd.Flags().StringVar(&f.curriculum, "curriculum", "", "Curriculum, e.g. Montessori")
	cmd.Flags().StringVar(&f.priceRange, "price-range", "", "Text contained in the tuition, e.g. $1,500")
}

func (f *searchFlags) request(cmd *cobra.Command, query string) models.SearchRequest {
	req := models.SearchRequest{
		Query:      query,
		AgeRange:   f.ageRange,
		Curriculum: f.curriculum,
		PriceRange: f.priceRange,
		Page:       f.page,
		Limit:      f.limit,
	}
	if cmd.Flags().Changed("min-rating") {
		req.MinRating = &f.minRating
	}
	return req
}

func newSearchCmd() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search preschools by text and filters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			svc, err := a.queryService(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				f.limit = a.cfg.DefaultPageLimit
			}

			page, err := svc.Search(cmd.Context(), f.request(cmd, strings.Join(args, " ")))
			if err != nil {
				return err
			}
			return printPage(os.Stdout, formatFlag, page)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&f.limit, "limit", 10, "Results per page (defaults to DEFAULT_PAGE_LIMIT)")
	return cmd
}

func newRecommendCmd() *cobra.Command {
	var (
		location   string
		minRating  float64
		curriculum string
		ageRange   string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend preschools for a set of preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			svc, err := a.queryService(cmd.Context())
			if err != nil {
				return err
			}

			req := models.RecommendRequest{
				Location:   location,
				Curriculum: curriculum,
				AgeRange:   ageRange,
				Limit:      limit,
			}
			if cmd.Flags().Changed("min-rating") {
				req.MinRating = &minRating
			}

			results, err := svc.Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printResults(os.Stdout, formatFlag, results)
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "City, address fragment or ZIP code")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "Minimum rating (0-5)")
	cmd.Flags().StringVar(&curriculum, "curriculum", "", "Preferred curriculum")
	cmd.Flags().StringVar(&ageRange, "age-range", "", "Age range text, e.g. 2-5")
	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of recommendations")
	return cmd
}

func newFeaturedCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "List the most popular preschools",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			svc, err := a.queryService(cmd.Context())
			if err != nil {
				return err
			}

			results, err := svc.Featured(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printResults(os.Stdout, formatFlag, results)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "Number of preschools to list")
	return cmd
}

func newNearbyCmd() *cobra.Command {
	var req models.NearbyRequest

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List preschools within a radius, nearest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			svc, err := a.queryService(cmd.Context())
			if err != nil {
				return err
			}

			results, err := svc.Nearby(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printResults(os.Stdout, formatFlag, results)
		},
	}
	cmd.Flags().Float64Var(&req.Latitude, "lat", 0, "Origin latitude")
	cmd.Flags().Float64Var(&req.Longitude, "lng", 0, "Origin longitude")
	cmd.Flags().Float64Var(&req.RadiusMiles, "radius", api.DefaultRadiusMiles, "Radius in miles")
	cmd.Flags().IntVar(&req.Limit, "limit", 10, "Maximum number of results")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one preschool with its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			svc, err := a.queryService(cmd.Context())
			if err != nil {
				return err
			}

			res, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printDetail(os.Stdout, formatFlag, res)
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print catalogue insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			svc, err := a.queryService(cmd.Context())
			if err != nil {
				return err
			}

			insights := services.NewInsightService(a.logger)
			report := insights.Generate(svc.Catalogue().Records())
			if formatFlag == "json" {
				return writeJSON(os.Stdout, report)
			}
			insights.Print(os.Stdout, report)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "export <output.csv> [query]",
		Short: "Export every search match to a CSV file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			svc, err := a.queryService(cmd.Context())
			if err != nil {
				return err
			}

			f.page = 1
			f.limit = max(svc.Catalogue().Len(), 1)
			page, err := svc.Search(cmd.Context(), f.request(cmd, strings.Join(args[1:], " ")))
			if err != nil {
				return err
			}

			w, err := storage.NewCSVWriter(args[0])
			if err != nil {
				return err
			}
			if err := w.WriteResults(page.Items); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}

			a.logger.Info("[main] Exported %d facilities to %s", len(page.Items), args[0])
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dataset>",
		Short: "Load a JSON, YAML or CSV dataset into PostgreSQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			ctx := cmd.Context()
			cleaner := services.NewCleaner(a.logger)

			file := &config.Config{DataPath: args[0]}
			source := file.ResolveSource()
			if source == config.SourceBuiltin {
				return fmt.Errorf("import: cannot infer the format of %q", args[0])
			}

			in, _, err := a.provider(ctx, source, args[0], cleaner)
			if err != nil {
				return err
			}
			records, err := in.LoadAll(ctx)
			if err != nil {
				return err
			}
			records = cleaner.Validate(records)
			if len(records) == 0 {
				return fmt.Errorf("import: no valid records in %q", args[0])
			}

			pg, err := storage.NewPostgresProvider(ctx, a.cfg.DSN(), a.retryConfig())
			if err != nil {
				a.logger.Error("[main] Make sure PostgreSQL is running: docker compose up -d")
				return err
			}
			defer pg.Close()

			if err := pg.Import(ctx, records); err != nil {
				return err
			}
			a.logger.Info("[main] Imported %d facilities into PostgreSQL (tables: preschools, reviews)", len(records))
			return nil
		},
	}
}

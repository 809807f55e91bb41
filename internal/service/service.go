package service

import (
	"context"
	"errors"
	"fmt"

	"goldapple/parser/internal/client"
	"goldapple/parser/internal/domain"
	"goldapple/parser/internal/state"
	"goldapple/parser/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Service runs the catalog pipeline: listing pages one after another, and for
// every product on a page its product card, strictly one request at a time.
type Service struct {
	client   client.GoldAppleClient
	writer   storage.RowWriter
	progress state.ProgressTracker
	runID    string
}

func NewService(
	client client.GoldAppleClient,
	writer storage.RowWriter,
	progress state.ProgressTracker,
	runID string,
) *Service {
	if progress == nil {
		progress = state.NewNoopProgressTracker()
	}

	return &Service{
		client:   client,
		writer:   writer,
		progress: progress,
		runID:    runID,
	}
}

// Run pages through the catalog until a page has no products or a listing
// request fails. A failed product card only skips that product. Any other
// error ends the run and is returned together with the stats so far.
func (s *Service) Run(ctx context.Context) (*domain.RunStats, error) {
	stats := &domain.RunStats{RunID: s.runID}

	log.Infof("🚀 Starting run %s", s.runID)
	s.saveProgress(ctx, stats, state.StatusRunning)

	if err := s.scrape(ctx, stats); err != nil {
		s.saveProgress(ctx, stats, state.StatusFailed)
		return stats, err
	}

	s.saveProgress(ctx, stats, state.StatusFinished)

	log.Info("🏁 No more pages")
	log.Infof("✅ Total scraped: %d products (%d rows written)", stats.Items, stats.Rows)

	return stats, nil
}

func (s *Service) scrape(ctx context.Context, stats *domain.RunStats) error {
	for pageNumber := 1; ; pageNumber++ {
		page, err := s.client.GetListingPage(ctx, pageNumber)
		if err != nil {
			var transportErr *client.TransportError
			if errors.As(err, &transportErr) {
				log.Warnf("🛑 Stopping at page %d: %v", pageNumber, err)
				return nil
			}
			return fmt.Errorf("failed to read listing page %d: %w", pageNumber, err)
		}

		products, ok := client.ExtractListing(page)
		if !ok || len(products) == 0 {
			return nil
		}

		stats.Pages++
		log.Infof("📄 Processing page №%d", stats.Pages)

		for _, product := range products {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := s.processProduct(ctx, product, stats); err != nil {
				return err
			}

			// Counts attempts: a product whose card failed is still counted.
			stats.Items++
			log.Infof("📦 Processing product №%d", stats.Items)
		}

		s.saveProgress(ctx, stats, state.StatusRunning)
	}
}

func (s *Service) processProduct(ctx context.Context, product domain.ListingEntry, stats *domain.RunStats) error {
	path, err := product.URL()
	if err != nil {
		return err
	}

	itemID, err := product.ItemID()
	if err != nil {
		return err
	}

	rating, err := product.Rating()
	if err != nil {
		return err
	}

	card, err := s.client.GetProductCard(ctx, itemID)
	if err != nil {
		var transportErr *client.TransportError
		if errors.As(err, &transportErr) {
			log.Warnf("⚠️ Skipping item %s: %v", itemID, err)
			return nil
		}
		return fmt.Errorf("failed to read product card %s: %w", itemID, err)
	}

	details, err := client.ExtractDetail(card)
	if err != nil {
		return fmt.Errorf("failed to map product card %s: %w", itemID, err)
	}

	row := domain.NewOutputRow(s.client.ProductLink(path), rating, details)
	if err := s.writer.WriteRow(ctx, row); err != nil {
		return fmt.Errorf("failed to write product %s: %w", itemID, err)
	}
	stats.Rows++

	return nil
}

func (s *Service) saveProgress(ctx context.Context, stats *domain.RunStats, status string) {
	if err := s.progress.SaveProgress(ctx, *stats, status); err != nil {
		log.Warnf("⚠️ Failed to save progress: %v", err)
	}
}

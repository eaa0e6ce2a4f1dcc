package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/nutrisaur/backend/config"
	"github.com/pageza/nutrisaur/backend/internal/metrics"
	"github.com/pageza/nutrisaur/backend/internal/models"
	"github.com/pageza/nutrisaur/backend/internal/recommend"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

// ErrCatalogEmpty is returned when an import source holds no dishes.
var ErrCatalogEmpty = errors.New("catalog snapshot contains no dishes")

// CatalogRecord is one dish in a JSON catalog snapshot. Records keep their file order.
type CatalogRecord struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	Allergens   []string            `json:"allergens"`
	Nutrients   recommend.Nutrients `json:"nutrients"`
}

// CatalogService keeps an in-memory snapshot of the dish catalog in position order.
// The snapshot slice is replaced on reload and never mutated, so readers may hold it.
type CatalogService struct {
	db      *gorm.DB
	cfg     config.CatalogConfig
	objects ObjectFetcher
	log     zerolog.Logger

	mu     sync.RWMutex
	dishes []recommend.Dish
}

// Ensure CatalogService implements ICatalogService
var _ ICatalogService = (*CatalogService)(nil)

// NewCatalogService creates the catalog service. objects may be nil when S3 is not configured.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogService(db *gorm.DB, cfg config.CatalogConfig, objects ObjectFetcher, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		db:      db,
		cfg:     cfg,
		objects: objects,
		log:     log.With().Str("component", "catalog").Logger(),
	}
}

// Dishes implements recommend.Catalog.
func (s *CatalogService) Dishes() []recommend.Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dishes
}

// Load replaces the snapshot with the dishes stored in the database.
func (s *CatalogService) Load(ctx context.Context) (int, error) {
	var rows []models.Dish
	if err := s.db.WithContext(ctx).Order("position asc, code asc").Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to load catalog: %w", err)
	}

	dishes := make([]recommend.Dish, 0, len(rows))
	for i := range rows {
		dishes = append(dishes, rows[i].ToRecommend())
	}

	s.mu.Lock()
	s.dishes = dishes
	s.mu.Unlock()

	metrics.CatalogDishes.Set(float64(len(dishes)))
	s.log.Info().Int("dishes", len(dishes)).Msg("catalog loaded")
	return len(dishes), nil
}

// Import reads a JSON snapshot from a file or S3, upserts it by dish code and reloads.
// With the db source it only reloads.
func (s *CatalogService) Import(ctx context.Context, req *types.ImportCatalogRequest) (*types.ImportCatalogResponse, error) {
	source, path, key := s.cfg.Source, s.cfg.Path, s.cfg.Key
	if req != nil && req.Source != "" {
		source = req.Source
	}
	if req != nil && req.Path != "" {
		path = req.Path
	}
	if req != nil && req.Key != "" {
		key = req.Key
	}

	var (
		data []byte
		err  error
	)
	switch source {
	case "db":
		total, err := s.Load(ctx)
		if err != nil {
			return nil, err
		}
		return &types.ImportCatalogResponse{Total: total}, nil
	case "file":
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	case "s3":
		if s.objects == nil {
			return nil, errors.New("s3 catalog source is not configured")
		}
		data, err = s.objects.Fetch(ctx, key)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown catalog source %q", source)
	}

	rows, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	if err := s.Store(ctx, rows); err != nil {
		return nil, err
	}

	total, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("source", source).Int("imported", len(rows)).Msg("catalog imported")
	return &types.ImportCatalogResponse{Imported: len(rows), Total: total}, nil
}

// Store upserts dishes by code.
func (s *CatalogService) Store(ctx context.Context, rows []models.Dish) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"position", "name", "description", "tags", "allergens",
			"calories", "protein", "iron", "vitamin_a", "vitamin_c", "fiber", "calcium",
			"updated_at",
		}),
	}).CreateInBatches(rows, 100).Error
	if err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}
	return nil
}

// ParseCatalog decodes a JSON array of CatalogRecord. Positions follow array order.
func ParseCatalog(data []byte) ([]models.Dish, error) {
	var records []CatalogRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrCatalogEmpty
	}

	rows := make([]models.Dish, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		code := strings.TrimSpace(r.ID)
		if code == "" {
			return nil, fmt.Errorf("catalog record %d has no id", i)
		}
		if seen[code] {
			return nil, fmt.Errorf("catalog record %d duplicates id %q", i, code)
		}
		seen[code] = true
		rows = append(rows, models.Dish{
			Code:        code,
			Position:    i + 1,
			Name:        r.Name,
			Description: r.Description,
			Tags:        r.Tags,
			Allergens:   r.Allergens,
			Calories:    r.Nutrients.Calories,
			Protein:     r.Nutrients.Protein,
			Iron:        r.Nutrients.Iron,
			VitaminA:    r.Nutrients.VitaminA,
			VitaminC:    r.Nutrients.VitaminC,
			Fiber:       r.Nutrients.Fiber,
			Calcium:     r.Nutrients.Calcium,
		})
	}
	return rows, nil
}

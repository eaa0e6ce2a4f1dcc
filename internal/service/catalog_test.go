package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrisaur/backend/config"
	"github.com/pageza/nutrisaur/backend/internal/recommend"
	"github.com/pageza/nutrisaur/backend/internal/service"
	"github.com/pageza/nutrisaur/backend/internal/testhelpers"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

const catalogJSON = `[
  {"id": "lugaw", "name": "Lugaw", "description": "rice porridge", "tags": ["RIC", "SOF"], "nutrients": {"calories": 180, "protein": 4}},
  {"id": "tinola", "name": "Chicken Tinola", "tags": ["CHI", "SOUP", "HP"], "nutrients": {"calories": 320, "protein": 28, "iron": 2}},
  {"id": "hipon", "name": "Sinigang na Hipon", "tags": ["SEA", "SHELL"], "allergens": ["shrimp"], "nutrients": {"protein": 22}}
]`

type fakeFetcher struct {
	data map[string][]byte
}

func (f fakeFetcher) Fetch(_ context.Context, key string) ([]byte, error) {
	b, ok := f.data[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return b, nil
}

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dishes.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseCatalog(t *testing.T) {
	rows, err := service.ParseCatalog([]byte(catalogJSON))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "lugaw", rows[0].Code)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, 3, rows[2].Position)
	assert.Equal(t, 22.0, rows[2].Protein)

	_, err = service.ParseCatalog([]byte(`[]`))
	assert.ErrorIs(t, err, service.ErrCatalogEmpty)

	_, err = service.ParseCatalog([]byte(`[{"id": "a"}, {"id": "a"}]`))
	assert.Error(t, err)

	_, err = service.ParseCatalog([]byte(`[{"name": "no id"}]`))
	assert.Error(t, err)

	_, err = service.ParseCatalog([]byte(`{`))
	assert.Error(t, err)
}

func TestCatalogImportFromFile(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	path := writeCatalog(t, catalogJSON)
	svc := service.NewCatalogService(db, config.CatalogConfig{Source: "file", Path: path}, nil, zerolog.Nop())

	assert.Empty(t, svc.Dishes())

	res, err := svc.Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 3, res.Total)

	dishes := svc.Dishes()
	require.Len(t, dishes, 3)
	assert.Equal(t, []string{"lugaw", "tinola", "hipon"}, []string{dishes[0].ID, dishes[1].ID, dishes[2].ID})
	assert.True(t, dishes[1].Tags.Has(recommend.TagHighProtein))
	assert.True(t, dishes[2].Allergens.Has(recommend.AllergenShellfish))

	// re-import with a new order upserts by id
	reordered := writeCatalog(t, `[
	  {"id": "hipon", "name": "Sinigang na Hipon", "tags": ["SEA"]},
	  {"id": "lugaw", "name": "Lugaw", "tags": ["RIC"]}
	]`)
	res, err = svc.Import(context.Background(), &types.ImportCatalogRequest{Path: reordered})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 3, res.Total)

	dishes = svc.Dishes()
	assert.Equal(t, "hipon", dishes[0].ID)
	assert.Equal(t, "lugaw", dishes[1].ID)
	assert.False(t, dishes[1].Tags.Has(recommend.TagSoft))
}

func TestCatalogImportFromS3(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	fetcher := fakeFetcher{data: map[string][]byte{"catalog/dishes.json": []byte(catalogJSON)}}
	svc := service.NewCatalogService(db, config.CatalogConfig{Source: "s3", Bucket: "b", Key: "catalog/dishes.json"}, fetcher, zerolog.Nop())

	res, err := svc.Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Imported)

	_, err = svc.Import(context.Background(), &types.ImportCatalogRequest{Key: "missing.json"})
	assert.Error(t, err)
	assert.Len(t, svc.Dishes(), 3, "a failed import keeps the previous snapshot")
}

func TestCatalogLoadFromDatabase(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	rows, err := service.ParseCatalog([]byte(catalogJSON))
	require.NoError(t, err)

	seed := service.NewCatalogService(db, config.CatalogConfig{Source: "db"}, nil, zerolog.Nop())
	require.NoError(t, seed.Store(context.Background(), rows))

	svc := service.NewCatalogService(db, config.CatalogConfig{Source: "db"}, nil, zerolog.Nop())
	res, err := svc.Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, "lugaw", svc.Dishes()[0].ID)

	_, err = svc.Import(context.Background(), &types.ImportCatalogRequest{Source: "s3"})
	assert.Error(t, err, "s3 without a client")
}

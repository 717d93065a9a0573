package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darshan-mishra17/GoPrakritik-sub000/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestValidateProductListsMissingFields(t *testing.T) {
	missing := validateProduct(models.Product{})
	assert.ElementsMatch(t, []string{"name", "category", "description"}, missing)

	missing = validateProduct(models.Product{
		Name:        "Kashmiri Saffron",
		Category:    models.CategorySpice,
		Description: "Hand-picked stigmas",
	})
	assert.Empty(t, missing)
}

func TestValidateProductRequiresTypedDetails(t *testing.T) {
	spice := models.Product{
		Name:        "Turmeric",
		Category:    models.CategorySpice,
		Description: "Lakadong turmeric",
		Type:        models.TypeSpice,
	}
	assert.Contains(t, validateProduct(spice), "spice")

	spice.Spice = &models.SpiceDetails{}
	assert.Empty(t, validateProduct(spice))

	attar := models.Product{
		Name:        "Rose Attar",
		Category:    models.CategoryAttar,
		Description: "Steam-distilled",
		Type:        models.TypeAttar,
	}
	assert.Contains(t, validateProduct(attar), "attar")
}

func listContext(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestBuildProductFilterPriceBounds(t *testing.T) {
	params := parseListParams(listContext(t, "minPrice=100&maxPrice=500"))
	filter := buildProductFilter(params)

	require.Contains(t, filter, "variants")
	elem := filter["variants"].(bson.M)["$elemMatch"].(bson.M)
	price := elem["price"].(bson.M)
	assert.Equal(t, float64(100), price["$gte"])
	assert.Equal(t, float64(500), price["$lte"])
}

func TestBuildProductFilterCategoryAndFeatured(t *testing.T) {
	params := parseListParams(listContext(t, "category=spice,oil&featured=true&name=saffron"))
	filter := buildProductFilter(params)

	assert.Equal(t, bson.M{"$in": []string{"spice", "oil"}}, filter["category"])
	assert.Equal(t, true, filter["featured"])
	require.Contains(t, filter, "name")
}

func TestBuildProductFilterEmpty(t *testing.T) {
	params := parseListParams(listContext(t, ""))
	assert.Empty(t, buildProductFilter(params))
	assert.EqualValues(t, 1, params.Page)
	assert.EqualValues(t, defaultPageSize, params.Limit)
}

func TestSortOrder(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "variants.0.price", Value: 1}}, sortOrder("price_asc"))
	assert.Equal(t, bson.D{{Key: "variants.0.price", Value: -1}}, sortOrder("price_desc"))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}}, sortOrder("oldest"))
	// Default is newest first.
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, sortOrder(""))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, sortOrder("bogus"))
}

func TestPageCount(t *testing.T) {
	assert.EqualValues(t, 0, pageCount(0, 12))
	assert.EqualValues(t, 1, pageCount(12, 12))
	assert.EqualValues(t, 2, pageCount(13, 12))
	assert.EqualValues(t, 0, pageCount(10, 0))
}

func TestBuildSpiceFilter(t *testing.T) {
	filter := buildSpiceFilter("whole")
	assert.Equal(t, models.TypeSpice, filter["type"])
	or := filter["$or"].([]bson.M)
	require.Len(t, or, 2)
	assert.Contains(t, or[0], "spice.variantBenefits.variantName")
	assert.Contains(t, or[1], "spice.variantBenefits.benefits.description")

	// No term filters by type only.
	assert.Equal(t, bson.M{"type": models.TypeSpice}, buildSpiceFilter(""))
}

func TestBuildAttarFilter(t *testing.T) {
	filter := buildAttarFilter("rose", "strong")
	assert.Equal(t, models.TypeAttar, filter["type"])
	assert.Contains(t, filter, "attar.fragranceNotes")
	assert.Equal(t, "strong", filter["attar.intensity"])

	filter = buildAttarFilter("", "")
	assert.Equal(t, bson.M{"type": models.TypeAttar}, filter)
}

func TestCiSubstringQuotesRegexMeta(t *testing.T) {
	re := ciSubstring("a+b")
	assert.Equal(t, `a\+b`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

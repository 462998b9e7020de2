package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/atelier-ng/atelier-backend/pkg/db/models"
	"github.com/atelier-ng/atelier-backend/pkg/enums"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, category enums.ProductCategory, published bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:       fmt.Sprintf("Test Garment %s", uuid.NewString()),
		Description: "Tailored test garment",
		Category:    category,
		Price:       50000,
		Images:      pq.StringArray{"https://cdn.example.com/one.jpg"},
		Colors:      pq.StringArray{"navy", "charcoal"},
		StockLevels: types.StockLevels{"M": 3, "L": 1},
		IsPublished: published,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

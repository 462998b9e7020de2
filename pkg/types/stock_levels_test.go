package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockLevelsDecrementCoversRequest(t *testing.T) {
	levels := StockLevels{"M": 3}

	missed := levels.Decrement("M", 3)

	assert.Equal(t, 0, missed)
	assert.Equal(t, 0, levels.Qty("M"))
}

func TestStockLevelsDecrementReportsShortfall(t *testing.T) {
	levels := StockLevels{"M": 1}

	missed := levels.Decrement("M", 4)

	assert.Equal(t, 3, missed)
	assert.Equal(t, 0, levels.Qty("M"))
}

func TestStockLevelsDecrementAbsentSize(t *testing.T) {
	levels := StockLevels{"M": 2}

	missed := levels.Decrement("XL", 2)

	assert.Equal(t, 2, missed)
	assert.Equal(t, 0, levels.Qty("XL"))
	assert.Equal(t, 2, levels.Qty("M"))
}

func TestStockLevelsDecrementNilMap(t *testing.T) {
	var levels StockLevels

	assert.Equal(t, 2, levels.Decrement("M", 2))
	assert.Equal(t, 0, levels.Qty("M"))
}

func TestStockLevelsDecrementIgnoresNonPositiveQty(t *testing.T) {
	levels := StockLevels{"M": 2}

	assert.Equal(t, 0, levels.Decrement("M", 0))
	assert.Equal(t, 0, levels.Decrement("M", -1))
	assert.Equal(t, 2, levels.Qty("M"))
}

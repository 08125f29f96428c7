package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Subasta de Arte", CleanText("  Subasta \n\t de  Arte  "))
	assert.Equal(t, "Lote 5", CleanText("Lote 5"))
	assert.Equal(t, "a b", CleanText("a&nbsp;b"))
	assert.Equal(t, "", CleanText("   \n  "))
}

func TestNormalizeStr(t *testing.T) {
	assert.Equal(t, "subastadearte", NormalizeStr(" Subasta  de\nArte "))
	assert.Equal(t, "lote5", NormalizeStr("Lote 5"))
	assert.Equal(t, "", NormalizeStr(""))
}

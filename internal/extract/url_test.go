package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExternalIdFromUrl(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"numeric path segment", "/es/subasta/456", "456"},
		{"slug with id", "/es/subasta-123", "123"},
		{"query parameter", "/catalogo.php?id=789", "789"},
		{"bare numeric segment", "/lotes/2024/", "2024"},
		{"absolute url", "https://example.com/es/subasta/77", "77"},
		{"no id", "/es/contacto", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExternalIdFromUrl(tc.url))
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "arte-moderno-2026", Slug("/es/subastas/arte-moderno-2026?page=2"))
	assert.Equal(t, "subasta-123", Slug("/es/subasta-123/"))
	assert.Equal(t, "arte", Slug("https://example.com/arte#lotes"))
	assert.Equal(t, "plain", Slug("plain"))
	assert.Equal(t, "", Slug("/"))
}

func TestResolveUrl(t *testing.T) {
	const base = "https://www.bogotaauctions.com"

	assert.Equal(t, "https://cdn.example.com/a.jpg", ResolveUrl("//cdn.example.com/a.jpg", base))
	assert.Equal(t, base+"/img/a.jpg", ResolveUrl("/img/a.jpg", base))
	assert.Equal(t, base+"/img/a.jpg", ResolveUrl("/img/a.jpg", base+"/"))
	assert.Equal(t, "https://other.com/b.png", ResolveUrl("https://other.com/b.png", base))
}

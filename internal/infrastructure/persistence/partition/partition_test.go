package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor_Deterministic(t *testing.T) {
	a := For("5f9c2a6e-1111-2222-3333-444455556666", "products")
	b := For("5f9c2a6e-1111-2222-3333-444455556666", "products")
	assert.Equal(t, a, b)
}

func TestFor_Convention(t *testing.T) {
	got := For("5f9c2a6e-1111-2222-3333-444455556666", "products")
	assert.Equal(t, "tenant_5f9c2a6e111122223333444455556666_products", got)
}

func TestFor_DistinctTenantsAndResources(t *testing.T) {
	assert.NotEqual(t, For("a", "products"), For("b", "products"))
	assert.NotEqual(t, For("a", "products"), For("a", "users"))
}

func TestFor_StructuredAndRawFormsAgree(t *testing.T) {
	// The same id with and without dashes maps to the same partition
	assert.Equal(t,
		For("5F9C2A6E-1111-2222-3333-444455556666", "users"),
		For("5f9c2a6e111122223333444455556666", "users"),
	)
}

func TestFor_SanitizesHostileInput(t *testing.T) {
	got := For(`x"; DROP TABLE tenants;--`, "products")
	assert.Equal(t, "tenant_xdroptabletenants_products", got)
}

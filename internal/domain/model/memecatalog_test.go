package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/lgtmeme/internal/domain/model"
)

func TestDefaultMemeCatalogSize(t *testing.T) {
	assert.Len(t, model.DefaultMemeCatalog, 8)
}

func TestRandomReturnsCatalogMember(t *testing.T) {
	for range 50 {
		assert.Contains(t, model.DefaultMemeCatalog, model.DefaultMemeCatalog.Random())
	}
}

func TestAppearsIn(t *testing.T) {
	catalog := model.MemeCatalog{
		"https://example.com/a.gif",
		"https://example.com/b.gif",
	}

	assert.True(t, catalog.AppearsIn("![Meme](https://example.com/a.gif)"))
	assert.True(t, catalog.AppearsIn("someone pasted https://example.com/b.gif manually"))
	assert.False(t, catalog.AppearsIn("nice work!"))
	assert.False(t, catalog.AppearsIn(""))
}

package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractabi/internal/config"
)

const cachedSource = `@contract
class Vault {
  @message
  peek(): u64;
}
`

func TestAnalysisCacheReusesIdenticalContent(t *testing.T) {
	h := NewHandler(nil)
	require.NotNil(t, h.analyses)

	first := h.cachedAnalysis("/work/vault.ts", cachedSource)
	require.NotNil(t, first.model)
	assert.Equal(t, 1, h.analyses.Len())

	again := h.cachedAnalysis("/work/vault.ts", cachedSource)
	assert.Same(t, first, again)

	edited := h.cachedAnalysis("/work/vault.ts", cachedSource+"class Extra {}\n")
	assert.NotSame(t, first, edited)
	assert.Equal(t, 2, h.analyses.Len())

	other := h.cachedAnalysis("/work/copy.ts", cachedSource)
	assert.NotSame(t, first, other)
	assert.Equal(t, 3, h.analyses.Len())
}

func TestAnalysisCacheEvictsOldest(t *testing.T) {
	cfg := config.Default()
	cfg.LSP.CacheSize = 1
	h := NewHandler(cfg)

	first := h.cachedAnalysis("/work/vault.ts", cachedSource)
	h.cachedAnalysis("/work/vault.ts", "class Extra {}\n")
	assert.Equal(t, 1, h.analyses.Len())

	assert.NotSame(t, first, h.cachedAnalysis("/work/vault.ts", cachedSource))
}

func TestAnalysisCacheDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.LSP.CacheSize = 0
	h := NewHandler(cfg)
	assert.Nil(t, h.analyses)

	first := h.cachedAnalysis("/work/vault.ts", cachedSource)
	assert.NotSame(t, first, h.cachedAnalysis("/work/vault.ts", cachedSource))
}

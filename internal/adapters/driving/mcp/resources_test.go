package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func newTestServer(t *testing.T, retrieval *mockRetrievalService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Retrieval: retrieval})
	require.NoError(t, err)
	return server
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleSectionsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists sections with chunk counts", func(t *testing.T) {
		retrieval := &mockRetrievalService{
			sections: []string{"VACATION POLICY", "SICK LEAVE"},
			chunks: []domain.DocumentChunk{
				{ID: "chunk-1", Section: "VACATION POLICY"},
				{ID: "chunk-2", Section: "VACATION POLICY"},
				{ID: "chunk-3", Section: "SICK LEAVE"},
			},
		}
		server := newTestServer(t, retrieval)

		result, err := server.handleSectionsResource(ctx, readRequest(uriScheme+"sections"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"VACATION POLICY"`)
		assert.Contains(t, result.Contents[0].Text, `"chunk_count": 2`)
	})

	t.Run("no sections yields empty list", func(t *testing.T) {
		server := newTestServer(t, &mockRetrievalService{})

		result, err := server.handleSectionsResource(ctx, readRequest(uriScheme+"sections"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleSectionChunksResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns chunks of the section", func(t *testing.T) {
		retrieval := &mockRetrievalService{
			chunks: []domain.DocumentChunk{
				{ID: "chunk-1", Section: "SICK LEAVE", ChunkIndex: 1, Preview: "Employees get 10 sick days"},
			},
		}
		server := newTestServer(t, retrieval)

		uri := uriScheme + "sections/SICK LEAVE/chunks"
		result, err := server.handleSectionChunksResource(ctx, readRequest(uri))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "chunk-1")
		assert.Contains(t, result.Contents[0].Text, "10 sick days")
	})

	t.Run("malformed URI returns not found", func(t *testing.T) {
		server := newTestServer(t, &mockRetrievalService{})

		_, err := server.handleSectionChunksResource(ctx, readRequest(uriScheme+"bogus"))

		assert.Error(t, err)
	})
}

func TestServer_handleChunkContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns chunk content", func(t *testing.T) {
		retrieval := &mockRetrievalService{
			chunks: []domain.DocumentChunk{
				{ID: "chunk-1", Content: "Employees get 15 days of paid vacation per year."},
			},
		}
		server := newTestServer(t, retrieval)

		result, err := server.handleChunkContentResource(ctx, readRequest(uriScheme+"chunks/chunk-1"))

		require.NoError(t, err)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "15 days")
	})

	t.Run("unknown chunk returns not found", func(t *testing.T) {
		server := newTestServer(t, &mockRetrievalService{})

		_, err := server.handleChunkContentResource(ctx, readRequest(uriScheme+"chunks/missing"))

		assert.Error(t, err)
	})
}

func TestExtractSectionLabel(t *testing.T) {
	assert.Equal(t, "VACATION POLICY", extractSectionLabel(uriScheme+"sections/VACATION POLICY/chunks"))
	assert.Empty(t, extractSectionLabel(uriScheme+"sections/VACATION POLICY"))
	assert.Empty(t, extractSectionLabel("http://example.com/sections/x/chunks"))
}

func TestExtractChunkID(t *testing.T) {
	assert.Equal(t, "chunk-1", extractChunkID(uriScheme+"chunks/chunk-1"))
	assert.Empty(t, extractChunkID(uriScheme+"sections/chunk-1"))
}

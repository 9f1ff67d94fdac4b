package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Docchat resources.
	uriScheme = "docchat://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing sections.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sections",
		Name:        "sections",
		Description: "Section labels detected in the loaded document",
		MIMEType:    "application/json",
	}, s.handleSectionsResource)

	// Template for the chunks of one section.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sections/{label}/chunks",
		Name:        "section-chunks",
		Description: "Chunks tagged with a specific section label",
		MIMEType:    "application/json",
	}, s.handleSectionChunksResource)

	// Template for chunk content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "chunks/{chunkId}",
		Name:        "chunk-content",
		Description: "Content of a specific document chunk",
		MIMEType:    "text/plain",
	}, s.handleChunkContentResource)
}

// handleSectionsResource returns the detected section labels.
func (s *Server) handleSectionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	labels := s.ports.Retrieval.Sections()

	type sectionInfo struct {
		Label      string `json:"label"`
		ChunkCount int    `json:"chunk_count"`
	}

	infos := make([]sectionInfo, len(labels))
	for i, label := range labels {
		infos[i] = sectionInfo{
			Label:      label,
			ChunkCount: len(s.ports.Retrieval.ChunksBySection(label)),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sections: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSectionChunksResource returns the chunks of one section.
func (s *Server) handleSectionChunksResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract label from URI: docchat://sections/{label}/chunks
	label := extractSectionLabel(req.Params.URI)
	if label == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	chunks := s.ports.Retrieval.ChunksBySection(label)

	type chunkInfo struct {
		ID      string `json:"id"`
		Index   int    `json:"index"`
		Preview string `json:"preview"`
	}

	infos := make([]chunkInfo, len(chunks))
	for i := range chunks {
		infos[i] = chunkInfo{
			ID:      chunks[i].ID,
			Index:   chunks[i].ChunkIndex,
			Preview: chunks[i].Preview,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling chunks: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleChunkContentResource returns the content of a specific chunk.
func (s *Server) handleChunkContentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract chunkId from URI: docchat://chunks/{chunkId}
	chunkID := extractChunkID(req.Params.URI)
	if chunkID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	chunk, err := s.ports.Retrieval.ChunkByID(chunkID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     chunk.Content,
		}},
	}, nil
}

// extractSectionLabel extracts the label from a URI like docchat://sections/{label}/chunks.
func extractSectionLabel(uri string) string {
	const prefix = uriScheme + "sections/"
	const suffix = "/chunks"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractChunkID extracts the chunk ID from a URI like docchat://chunks/{chunkId}.
func extractChunkID(uri string) string {
	const prefix = uriScheme + "chunks/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}

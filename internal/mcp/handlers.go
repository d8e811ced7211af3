package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/biobuilder/internal/api"
	"github.com/ziadkadry99/biobuilder/internal/controller"
	"github.com/ziadkadry99/biobuilder/internal/export"
	"github.com/ziadkadry99/biobuilder/internal/view"
)

// handleListDocuments lists uploaded documents.
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := s.backend.ListDocuments(ctx)
	if err != nil {
		return mcp.NewToolResultError(api.Message(err, api.MsgLoadDocumentsFailed)), nil
	}
	if len(docs) == 0 {
		return mcp.NewToolResultText(view.NoDocumentsText + ". Upload documents with `biobuilder upload`."), nil
	}
	return mcp.NewToolResultText(formatDocuments(docs)), nil
}

// handleAskDocuments answers a question from the uploaded documents.
func (s *Server) handleAskDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	answer, err := s.backend.Ask(ctx, api.AskRequest{
		Question: strings.TrimSpace(question),
		Model:    api.ModelRef(request.GetString("model", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(api.Message(err, api.MsgAskFailed)), nil
	}

	text := answer.Answer + "\n\n" + view.AnswerMeta(answer.ModelUsed, answer.DocumentsUsed)
	return mcp.NewToolResultText(text), nil
}

// handleExtractEntities runs extraction and returns text, JSON or CSV.
func (s *Server) handleExtractEntities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := request.GetString("format", "text")
	if format != "text" && format != "json" && format != "csv" {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q: use text, json or csv", format)), nil
	}

	result, err := s.backend.Extract(ctx, api.ExtractionRequest{
		Model:           api.ModelRef(request.GetString("model", "")),
		TargetGenes:     controller.SplitList(request.GetString("target_genes", "")),
		TargetRelations: controller.SplitList(request.GetString("target_relations", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(api.Message(err, api.MsgExtractionFailed)), nil
	}

	switch format {
	case "json":
		data, err := export.JSON(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	case "csv":
		return mcp.NewToolResultText(export.CSV(result)), nil
	}
	return mcp.NewToolResultText(formatExtraction(result)), nil
}

func formatDocuments(docs []api.Document) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d document(s):\n", len(docs)))
	for _, row := range view.RenderDocuments(docs).Rows {
		sb.WriteString(fmt.Sprintf("- %s (id %s, %s)\n", row.Filename, row.ID, row.WordCount))
	}
	return sb.String()
}

// formatExtraction renders a result as plain text for agents. Empty sections
// are left out.
func formatExtraction(r *api.ExtractionResult) string {
	p := view.RenderExtractionResult(r)
	if p.Status != "" {
		return p.Status
	}

	var sb strings.Builder
	if p.EntitiesHeading != "" {
		sb.WriteString(p.EntitiesHeading + "\n")
		for _, e := range p.Entities {
			sb.WriteString(fmt.Sprintf("- %s (%s)", e.Name, e.Type))
			if len(e.Aliases) > 0 {
				sb.WriteString(" aka " + strings.Join(e.Aliases, ", "))
			}
			if e.Description != "" {
				sb.WriteString(": " + e.Description)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	if p.RelationsHeading != "" {
		sb.WriteString(p.RelationsHeading + "\n")
		for _, rel := range p.Relations {
			sb.WriteString(fmt.Sprintf("- %s → %s [%s]", rel.Source, rel.Target, rel.Type))
			if rel.Description != "" {
				sb.WriteString(": " + rel.Description)
			}
			if rel.Evidence != "" {
				sb.WriteString(fmt.Sprintf(" (evidence: %q)", rel.Evidence))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(p.Meta)
	return sb.String()
}

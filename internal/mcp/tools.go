package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listDocumentsTool defines the list_documents MCP tool.
var listDocumentsTool = mcp.NewTool("list_documents",
	mcp.WithDescription("List the documents uploaded to the BioBuilder server with their word counts."),
)

// askDocumentsTool defines the ask_documents MCP tool.
var askDocumentsTool = mcp.NewTool("ask_documents",
	mcp.WithDescription("Ask a natural-language question answered from all uploaded documents."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to answer"),
	),
	mcp.WithString("model",
		mcp.Description("Model id to use; the server default when omitted"),
	),
)

// extractEntitiesTool defines the extract_entities MCP tool.
var extractEntitiesTool = mcp.NewTool("extract_entities",
	mcp.WithDescription("Extract genes, proteins and the relationships between them from all uploaded documents."),
	mcp.WithString("target_genes",
		mcp.Description("Comma-separated gene or protein names to focus on (default: all)"),
	),
	mcp.WithString("target_relations",
		mcp.Description("Comma-separated relationship types to focus on, e.g. inhibits, activates (default: all)"),
	),
	mcp.WithString("model",
		mcp.Description("Model id to use; the server default when omitted"),
	),
	mcp.WithString("format",
		mcp.Description("Result format (default text)"),
		mcp.Enum("text", "json", "csv"),
	),
)

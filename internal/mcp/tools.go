package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocumentsTool defines the search_documents MCP tool.
var searchDocumentsTool = mcp.NewTool("search_documents",
	mcp.WithDescription("Search the ingested documents semantically. Returns the best-matching passages with their source file, page, chapter, and section."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query. Mentioning a chapter or page number narrows the search to it."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of passages to return (default 5)"),
	),
)

// askQuestionTool defines the ask_question MCP tool.
var askQuestionTool = mcp.NewTool("ask_question",
	mcp.WithDescription("Answer a question from the ingested documents, citing the passages the answer is based on."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to answer"),
	),
	mcp.WithNumber("top_k",
		mcp.Description("Number of passages to ground the answer on (default 5)"),
	),
)

package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listCategoriesTool defines the list_categories MCP tool.
var listCategoriesTool = mcp.NewTool("list_categories",
	mcp.WithDescription("List the research topic categories with their ids."),
)

// listDocumentsTool defines the list_documents MCP tool.
var listDocumentsTool = mcp.NewTool("list_documents",
	mcp.WithDescription("List the research documents in one category."),
	mcp.WithNumber("category_id",
		mcp.Required(),
		mcp.Description("Category id as returned by list_categories"),
	),
)

// searchDocumentsTool defines the search_documents MCP tool.
var searchDocumentsTool = mcp.NewTool("search_documents",
	mcp.WithDescription("Search research documents by free-text query. Returns titles, summaries and article links."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Keywords to search for"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 100)"),
	),
)

// getArticleSummaryTool defines the get_article_summary MCP tool.
var getArticleSummaryTool = mcp.NewTool("get_article_summary",
	mcp.WithDescription("Get the AI-generated structured summary of an article. Summarization can take up to a minute."),
	mcp.WithString("url",
		mcp.Required(),
		mcp.Description("Article link as returned by search_documents or list_documents"),
	),
)

// askArticleTool defines the ask_article MCP tool.
var askArticleTool = mcp.NewTool("ask_article",
	mcp.WithDescription("Ask a question about one article, answered from its summary."),
	mcp.WithString("url",
		mcp.Required(),
		mcp.Description("Article link"),
	),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("Question about the article"),
	),
)

package mcp

import "github.com/mark3labs/mcp-go/mcp"

func listCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("Returns sidebar categories in display order with document counts."),
	)
}

func listDocumentsTool() mcp.Tool {
	return mcp.NewTool("list_documents",
		mcp.WithDescription("Returns documents grouped by category. An optional query keeps documents whose name contains it, case-insensitively."),
		mcp.WithString("query", mcp.Description("Name filter, e.g. \"te\" or \"list\"")),
	)
}

func getDocumentTool() mcp.Tool {
	return mcp.NewTool("get_document",
		mcp.WithDescription("Returns one document with its props, usage, styles and notes. Unknown ids fall back to the default document."),
		mcp.WithString("id", mcp.Description("Document id, e.g. \"textinput\"")),
		mcp.WithBoolean("examples", mcp.Description("Include code examples (default true)")),
	)
}

func filterPropsTool() mcp.Tool {
	return mcp.NewTool("filter_props",
		mcp.WithDescription("Filters a document's props by a text query over name, description and type, intersected with an optional set of selected prop names."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
		mcp.WithString("query", mcp.Description("Search text. Fewer than 2 characters returns the first 20 props.")),
		mcp.WithArray("selected", mcp.Description("Prop names to keep"), mcp.Items(map[string]any{"type": "string"})),
	)
}

func searchDocumentsTool() mcp.Tool {
	return mcp.NewTool("search_documents",
		mcp.WithDescription("Searches document names, descriptions and prop names. Returns each match with its reason."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
	)
}

// ToolNames lists the registered tools in registration order.
func ToolNames() []string {
	return []string{"list_categories", "list_documents", "get_document", "filter_props", "search_documents"}
}

package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "search_universities",
		Description: "Find university departments whose admission grade range contains the student's grade. Grades run from 1.0 (best) to 9.0. Returns results with a matching score and a recommended flag.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"grade": map[string]interface{}{
					"type":        "number",
					"minimum":     1,
					"maximum":     9,
					"description": "Student's average grade, 1.0 to 9.0",
				},
				"admission_type": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"comprehensive", "subject"},
					"description": "Admission track. Omit to search both.",
				},
				"region": map[string]interface{}{
					"type":        "string",
					"description": "Region code such as seoul or busan (see list_regions). Use 'all' or omit for no filter.",
				},
				"sort_by": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"grade", "name", "region", "match"},
					"description": "Result order (default: grade)",
				},
				"department": map[string]interface{}{
					"type":        "string",
					"description": "Department name substring, at least 2 characters",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Results per page, at most 100 (default: 20)",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"minimum":     1,
					"description": "Page of results to return (default: 1)",
				},
			},
			"required": []string{"grade"},
		},
	},
	{
		Name:        "get_university",
		Description: "Get a university with all of its departments and admission grade ranges.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"identifier": map[string]interface{}{
					"type":        "string",
					"description": "University ID or exact name",
				},
			},
			"required": []string{"identifier"},
		},
	},
	{
		Name:        "list_regions",
		Description: "List the region codes accepted by the region filter.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
	{
		Name:        "get_stats",
		Description: "Get aggregate statistics about the university dataset: counts by region, establishment type and admission track, and the grade span.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}

package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

const (
	resourceRegions = "unimatch://regions"
	resourceSummary = "unimatch://summary"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         resourceRegions,
		Name:        "Regions",
		Description: "Region codes and the administrative division each one matches",
		MimeType:    "text/plain",
	},
	{
		URI:         resourceSummary,
		Name:        "Dataset Summary",
		Description: "University and department counts with the admission grade span",
		MimeType:    "text/plain",
	},
}

func mimeType(uri string) string {
	for _, r := range ResourceDefinitions {
		if r.URI == uri {
			return r.MimeType
		}
	}
	return "text/plain"
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

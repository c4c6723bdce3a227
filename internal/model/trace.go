package model

// Tool names exposed to the agent
const (
	ToolSearchProducts = "search_products"
	ToolGetCareGuides  = "get_care_guides"
	ToolGetCategories  = "get_categories"
)

// ToolInvocation records one tool call made by the agent
// Output is the raw text the tool returned; Error is set when the call
// never reached a tool (unknown name, bad arguments)
type ToolInvocation struct {
	Tool   string `json:"tool"`
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Succeeded reports whether the tool produced output
func (t ToolInvocation) Succeeded() bool {
	return t.Error == ""
}

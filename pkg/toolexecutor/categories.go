package toolexecutor

import "strings"

// ToolCategory represents a category of tools
type ToolCategory string

const (
	CategoryCompliance    ToolCategory = "compliance"
	CategoryERP           ToolCategory = "erp"
	CategoryCRM           ToolCategory = "crm"
	CategoryBanking       ToolCategory = "banking"
	CategoryGovernment    ToolCategory = "government"
	CategoryLogistics     ToolCategory = "logistics"
	CategoryFleet         ToolCategory = "fleet"
	CategoryMemory        ToolCategory = "memory"
	CategoryDevTools      ToolCategory = "dev-tools"
	CategoryKnowledgeBase ToolCategory = "knowledge-base"
	CategoryOrchestration ToolCategory = "orchestration"
	CategoryMessaging     ToolCategory = "messaging"
	CategoryUtilities     ToolCategory = "utilities"
	CategoryGeneral       ToolCategory = "general"
)

// AllCategories returns the recognized categories in classification priority order.
// General is last; it is the bucket for names nothing else claims.
func AllCategories() []ToolCategory {
	return []ToolCategory{
		CategoryCompliance,
		CategoryERP,
		CategoryCRM,
		CategoryBanking,
		CategoryGovernment,
		CategoryLogistics,
		CategoryFleet,
		CategoryMemory,
		CategoryDevTools,
		CategoryKnowledgeBase,
		CategoryOrchestration,
		CategoryMessaging,
		CategoryUtilities,
		CategoryGeneral,
	}
}

// IsValidCategory checks if a category is one of the recognized buckets
func IsValidCategory(category string) bool {
	cat := ToolCategory(strings.ToLower(strings.TrimSpace(category)))
	for _, valid := range AllCategories() {
		if cat == valid {
			return true
		}
	}
	return false
}

// CategoryCount is a recognized category with the number of tools indexed under it
type CategoryCount struct {
	Category ToolCategory `json:"category"`
	Count    int          `json:"count"`
}

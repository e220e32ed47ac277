package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ankr/toolhub/pkg/toolexecutor"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name string
		want toolexecutor.ToolCategory
	}{
		{"gst_verify", toolexecutor.CategoryCompliance},
		{"lead_create", toolexecutor.CategoryCRM},
		{"random_xyz", toolexecutor.CategoryGeneral},
		{"GST_Verify", toolexecutor.CategoryCompliance},
		{"einvoice_generate", toolexecutor.CategoryCompliance},
		{"invoice_create", toolexecutor.CategoryERP},
		{"inventory_check", toolexecutor.CategoryERP},
		{"contact_update", toolexecutor.CategoryCRM},
		{"upi_collect", toolexecutor.CategoryBanking},
		{"bank_account_verify", toolexecutor.CategoryBanking},
		{"aadhaar_otp_send", toolexecutor.CategoryGovernment},
		{"shipment_track", toolexecutor.CategoryLogistics},
		{"vehicle_location", toolexecutor.CategoryFleet},
		{"fuel_log", toolexecutor.CategoryFleet},
		{"memory_recall", toolexecutor.CategoryMemory},
		{"git_status", toolexecutor.CategoryDevTools},
		{"knowledge_search", toolexecutor.CategoryKnowledgeBase},
		{"workflow_run", toolexecutor.CategoryOrchestration},
		{"whatsapp_send", toolexecutor.CategoryMessaging},
		{"uuid_generate", toolexecutor.CategoryUtilities},
		{"time_now", toolexecutor.CategoryUtilities},
		{"", toolexecutor.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferCategory(tt.name))
		})
	}
}

func TestInferCategory_FirstMatchWins(t *testing.T) {
	// matches both compliance (gst) and erp (invoice)
	assert.Equal(t, toolexecutor.CategoryCompliance, InferCategory("gst_invoice_sync"))
	// matches both logistics (shipment) and messaging (sms)
	assert.Equal(t, toolexecutor.CategoryLogistics, InferCategory("shipment_sms_alert"))
	// matches both memory and utilities (hash)
	assert.Equal(t, toolexecutor.CategoryMemory, InferCategory("memory_hash"))
}

func TestInferCategory_WordsNeedSegmentBoundary(t *testing.T) {
	// "po" is an erp word but must not match inside "report"
	assert.Equal(t, toolexecutor.CategoryGeneral, InferCategory("report_view"))
	assert.Equal(t, toolexecutor.CategoryERP, InferCategory("po_create"))
}

func TestResolveCategory(t *testing.T) {
	assert.Equal(t, "Banking", resolveCategory(" Banking ", "gst_verify"))
	assert.Equal(t, "compliance", resolveCategory("", "gst_verify"))
	assert.Equal(t, "compliance", resolveCategory("   ", "gst_verify"))
	assert.Equal(t, "Custom-Bucket", resolveCategory("Custom-Bucket", "lead_create"))
}

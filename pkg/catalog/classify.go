package catalog

import (
	"regexp"
	"strings"

	"github.com/ankr/toolhub/pkg/toolexecutor"
)

type categoryPattern struct {
	category toolexecutor.ToolCategory
	pattern  *regexp.Regexp
}

// patternGroup matches any stem as a plain substring, or any word as a whole
// name segment (segments are separated by _ - . or space).
func patternGroup(stems []string, words []string) *regexp.Regexp {
	var alts []string
	if len(stems) > 0 {
		alts = append(alts, strings.Join(stems, "|"))
	}
	if len(words) > 0 {
		alts = append(alts, `(?:^|[_\-.\s])(?:`+strings.Join(words, "|")+`)(?:$|[_\-.\s])`)
	}
	return regexp.MustCompile(strings.Join(alts, "|"))
}

// categoryPatterns is evaluated top to bottom and the first match wins.
// The order is part of the classification contract; do not reorder.
var categoryPatterns = []categoryPattern{
	{toolexecutor.CategoryCompliance, patternGroup(
		[]string{"gstin", "gstr", "einvoice", "e_invoice", "ewaybill", "eway_bill", "compliance", "tax"},
		[]string{"gst", "tds", "itr", "hsn", "sac", "pan", "tan", "eway"},
	)},
	{toolexecutor.CategoryERP, patternGroup(
		[]string{"erp", "invoice", "purchase_order", "sales_order", "inventory", "ledger", "voucher", "tally", "warehouse"},
		[]string{"stock", "po", "grn", "sku", "bom"},
	)},
	{toolexecutor.CategoryCRM, patternGroup(
		[]string{"crm", "customer", "opportunit", "followup", "follow_up"},
		[]string{"lead", "leads", "contact", "contacts", "deal", "deals"},
	)},
	{toolexecutor.CategoryBanking, patternGroup(
		[]string{"bank", "payment", "payout", "ifsc", "razorpay", "account_balance", "refund"},
		[]string{"upi", "neft", "imps", "rtgs", "wallet", "vpa"},
	)},
	{toolexecutor.CategoryGovernment, patternGroup(
		[]string{"aadhaar", "digilocker", "vahan", "sarathi", "epfo", "passport", "ulip"},
		[]string{"gov", "govt", "mca", "cin"},
	)},
	{toolexecutor.CategoryLogistics, patternGroup(
		[]string{"shipment", "shipping", "courier", "freight", "consignment", "delivery", "pincode", "load_board", "track"},
		[]string{"awb", "lr", "pod", "route", "routes", "dispatch"},
	)},
	{toolexecutor.CategoryFleet, patternGroup(
		[]string{"fleet", "vehicle", "driver", "fastag", "odometer", "telematics"},
		[]string{"gps", "trip", "trips", "fuel"},
	)},
	{toolexecutor.CategoryMemory, patternGroup(
		[]string{"memory", "memories", "remember", "recall", "forget", "embedding"},
		nil,
	)},
	{toolexecutor.CategoryDevTools, patternGroup(
		[]string{"lint", "deploy", "package", "prisma", "migration"},
		[]string{"git", "code", "build", "npm", "pnpm", "debug", "test", "tests", "schema"},
	)},
	{toolexecutor.CategoryKnowledgeBase, patternGroup(
		[]string{"knowledge", "article", "wiki", "faq", "doc_search", "search_docs"},
		[]string{"kb", "docs", "rag"},
	)},
	{toolexecutor.CategoryOrchestration, patternGroup(
		[]string{"workflow", "orchestr", "agent", "pipeline", "schedule"},
		[]string{"task", "tasks", "job", "jobs", "cron"},
	)},
	{toolexecutor.CategoryMessaging, patternGroup(
		[]string{"whatsapp", "email", "notif", "telegram", "slack", "message"},
		[]string{"sms", "mail", "push", "chat"},
	)},
	{toolexecutor.CategoryUtilities, patternGroup(
		[]string{"util", "convert", "format", "calculat", "uuid", "hash", "echo", "short_id", "qr"},
		[]string{"time", "date", "now", "id", "calc"},
	)},
}

// InferCategory classifies a tool by name. Unmatched names are general.
func InferCategory(name string) toolexecutor.ToolCategory {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, group := range categoryPatterns {
		if group.pattern.MatchString(lower) {
			return group.category
		}
	}
	return toolexecutor.CategoryGeneral
}

// resolveCategory prefers the provider-declared category and falls back to InferCategory
func resolveCategory(declared, name string) string {
	if c := strings.TrimSpace(declared); c != "" {
		return c
	}
	return string(InferCategory(name))
}

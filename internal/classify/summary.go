package classify

import (
	"fmt"
	"strings"

	"github.com/rhinobuilders/callsift/internal/model"
)

// subCategoryLabels maps each sub-category to the phrase used in the
// one-line summary. Summaries are templated off this table so reasoning
// text stays consistent and testable; an unknown sub-category falls
// back to the humanized key.
var subCategoryLabels = map[string]string{
	// spam
	"robocall":          "Robocall spam",
	"google_listing":    "Google listing scam",
	"b2b_lending":       "Business lending pitch",
	"b2b_sales":         "B2B sales pitch",
	"merchant_services": "Merchant services pitch",
	"quickbooks_scam":   "QuickBooks scam",
	"seo_sales":         "SEO sales pitch",
	"yelp_sales":        "Yelp sales pitch",
	"cold_call":         "Cold call",
	"staffing_sales":    "Staffing company pitch",
	"workshop_sales":    "Workshop sales pitch",
	"newsletter_sales":  "Newsletter pitch",
	"media_pitch":       "Media feature pitch",
	"telemarketing":     "Telemarketing call",

	// operations
	"vendor_purchase":       "Supplier purchase",
	"vendor_logistics":      "Delivery coordination",
	"vendor_order":          "Vendor order",
	"vendor_service":        "Vendor service call",
	"utility_coordination":  "Utility coordination",
	"permit_inspection":     "Permit and inspection call",
	"crew_coordination":     "Crew coordination",
	"subcontractor_payment": "Subcontractor payment",
	"internal_payment":      "Payment processing",
	"bookkeeping":           "Bookkeeping call",
	"internal_coordination": "Internal coordination",
	"outbound_followup":     "Outbound follow-up",

	// other inquiry
	"job_seeker":          "Job seeker inquiry",
	"out_of_area":         "Outside service area",
	"vendor_seeking_work": "Vendor seeking work",
	"sign_inquiry":        "Question about a job sign",
	"research_request":    "Research request",
	"general_question":    "General question",
	"system_message":      "System greeting only",

	// customer
	"concrete_inquiry":   "Concrete work inquiry",
	"foundation_inquiry": "Foundation inquiry",
	"adu_inquiry":        "ADU inquiry",
	"bathroom_remodel":   "Bathroom remodel",
	"kitchen_remodel":    "Kitchen remodel",
	"drainage_inquiry":   "Drainage inquiry",
	"retaining_wall":     "Retaining wall",
	"roof_inquiry":       "Roofing inquiry",
	"fire_damage":        "Fire damage repair",
	"exterior_inquiry":   "Exterior work inquiry",
	"remodel_inquiry":    "Remodel inquiry",
	"demo_inquiry":       "Demolition inquiry",
	"estimate_request":   "Estimate request",
	"scheduling":         "Appointment scheduling",
	"general_inquiry":    "General inquiry",
	"repair_inquiry":     "Repair inquiry",
	"voicemail_inquiry":  "Voicemail needing callback",
}

// subCategoryLabel resolves the summary phrase for a sub-category.
func subCategoryLabel(subCategory string) string {
	if label, ok := subCategoryLabels[subCategory]; ok {
		return label
	}
	return strings.ReplaceAll(subCategory, "_", " ")
}

// summarize renders the one-line summary for a classified call.
func summarize(call model.Call, category model.Category, subCategory string, entities model.Entities) string {
	if category == model.CategoryIncomplete {
		return incompleteSummary(call, subCategory)
	}

	label := subCategoryLabel(subCategory)

	// Customer summaries lead with who called; everything else
	// describes the call itself.
	summary := label
	if category == model.CategoryCustomer {
		summary = callerPrefix(call, entities) + " - " + label
	}

	if entities.Address != "" {
		summary += " at " + entities.Address
	}
	if entities.Amount != "" {
		summary += " (" + entities.Amount + ")"
	}
	return summary
}

func incompleteSummary(call model.Call, subCategory string) string {
	switch subCategory {
	case model.IncompleteTooShort:
		return fmt.Sprintf("%ds call - too short to classify", call.Duration)
	case model.IncompleteMissedCall:
		if call.CustomerCity != "" {
			return "Missed call from " + call.CustomerCity
		}
		return "Missed call - no voicemail"
	case model.IncompleteNoRecording:
		return "No recording available"
	case model.IncompleteTranscriptionFailed:
		return fmt.Sprintf("%ds call - transcription failed", call.Duration)
	case model.IncompleteBriefExchange:
		return "Brief exchange - no substance"
	case model.IncompleteWrongNumber:
		return "Wrong number"
	default:
		return fmt.Sprintf("%ds call - needs manual review", call.Duration)
	}
}

func callerPrefix(call model.Call, entities model.Entities) string {
	name := entities.Name
	if name == "" {
		name = "Caller"
	}
	if call.CustomerCity != "" {
		return name + " in " + call.CustomerCity
	}
	return name
}

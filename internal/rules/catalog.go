// Package rules holds the static pattern catalogue and the matcher that
// evaluates transcripts against it.
package rules

import "github.com/rhinobuilders/callsift/internal/model"

// CatalogVersion identifies the shipped rule catalogue. Bump it whenever
// the default rule set changes so stored results can be traced back to
// the rules that produced them.
const CatalogVersion = 3

// Catalog returns the built-in pattern rule set. Rules are plain data:
// adding one here (or in the database) never requires touching the
// cascade. Evaluation is case-insensitive and independent per rule.
func Catalog() []model.PatternRule {
	rules := []model.PatternRule{
		// --- spam: listing scams and robocalls ---
		{ID: 1, Name: "google listing scam", Category: model.CategorySpam, SubCategory: "google_listing",
			Keywords: []string{"google", "listing"}, Tier: model.TierHigh},
		{ID: 2, Name: "google business message", Category: model.CategorySpam, SubCategory: "google_listing",
			Pattern: `this is an important message.*google`, IsRegex: true, Tier: model.TierHigh},
		{ID: 3, Name: "listing suspension threat", Category: model.CategorySpam, SubCategory: "google_listing",
			Pattern: `suspen(ded|sion)|flagged for review|properly verified|not verified`, IsRegex: true, Tier: model.TierHigh},
		{ID: 4, Name: "press digit menu", Category: model.CategorySpam, SubCategory: "robocall",
			Pattern: `\bpress\s*(?:[0-9]|one|two|zero|nine)\b`, IsRegex: true, Tier: model.TierHigh},
		{ID: 5, Name: "opt out prompt", Category: model.CategorySpam, SubCategory: "robocall",
			Keywords: []string{"opt out"}, Tier: model.TierHigh},
		{ID: 6, Name: "emg listings", Category: model.CategorySpam, SubCategory: "robocall",
			Keywords: []string{"emg listing"}, Tier: model.TierHigh},
		{ID: 7, Name: "authorized representative script", Category: model.CategorySpam, SubCategory: "robocall",
			Keywords: []string{"authorized representative"}, Tier: model.TierHigh},
		{ID: 8, Name: "recorded message", Category: model.CategorySpam, SubCategory: "robocall",
			Pattern: `this is a recorded|automated (message|call)`, IsRegex: true, Tier: model.TierHigh},

		// --- spam: lending and financial ---
		{ID: 10, Name: "small business lending", Category: model.CategorySpam, SubCategory: "b2b_lending",
			Pattern: `small business (lending|loan)|line of credit|pre.?approved`, IsRegex: true, Tier: model.TierHigh},
		{ID: 11, Name: "business funding", Category: model.CategorySpam, SubCategory: "b2b_lending",
			Pattern: `business (loan|funding|financing)|working capital|merchant (cash|advance)|sba loan`, IsRegex: true, Tier: model.TierHigh},
		{ID: 12, Name: "merchant services", Category: model.CategorySpam, SubCategory: "merchant_services",
			Pattern: `merchant service|(credit card|payment) processing`, IsRegex: true, Tier: model.TierHigh},
		{ID: 13, Name: "google funding", Category: model.CategorySpam, SubCategory: "b2b_sales",
			Keywords: []string{"google funding"}, Tier: model.TierHigh},
		{ID: 14, Name: "investment pitch", Category: model.CategorySpam, SubCategory: "b2b_sales",
			Pattern: `capital advisor|investment (firm|company|advisor)|managing principal`, IsRegex: true, Tier: model.TierMedium},

		// --- spam: B2B sales and telemarketing ---
		{ID: 20, Name: "seo sales", Category: model.CategorySpam, SubCategory: "seo_sales",
			Pattern: `\bseo\b|search engine (optimization|ranking)|rank orbit`, IsRegex: true, Tier: model.TierMedium},
		{ID: 21, Name: "yelp sales", Category: model.CategorySpam, SubCategory: "yelp_sales",
			Keywords: []string{"yelp"}, Tier: model.TierHigh},
		{ID: 22, Name: "ask for the owner", Category: model.CategorySpam, SubCategory: "cold_call",
			Pattern: `speak (with|to) the (business )?(owner|manager)|is th(e|is) (business )?(owner|manager) (available|there|in)|for the business owner`, IsRegex: true, Tier: model.TierHigh},
		{ID: 23, Name: "marketing services pitch", Category: model.CategorySpam, SubCategory: "cold_call",
			Pattern: `marketing services|taking on new clients|qualified (leads?|appointments?)|lead generation|filling your pipeline`, IsRegex: true, Tier: model.TierMedium},
		{ID: 24, Name: "quickbooks phishing", Category: model.CategorySpam, SubCategory: "quickbooks_scam",
			Pattern: `quickbooks.*(subscription|charge|renew)`, IsRegex: true, Tier: model.TierHigh},
		{ID: 25, Name: "quickbooks reseller", Category: model.CategorySpam, SubCategory: "b2b_sales",
			Pattern: `quickbooks.*(solutions provider|third party|integration)`, IsRegex: true, Tier: model.TierHigh},
		{ID: 26, Name: "cost estimation outsourcing", Category: model.CategorySpam, SubCategory: "b2b_sales",
			Pattern: `cost estimation company|estimating service`, IsRegex: true, Tier: model.TierHigh},
		{ID: 27, Name: "security system sales", Category: model.CategorySpam, SubCategory: "b2b_sales",
			Pattern: `(security|alarm) (company|service|services|system)|patrol coverage|camera monitoring`, IsRegex: true, Tier: model.TierMedium},
		{ID: 28, Name: "staffing sales", Category: model.CategorySpam, SubCategory: "staffing_sales",
			Pattern: `staffing (agency|company)|hiring needs|qualified candidates`, IsRegex: true, Tier: model.TierHigh},
		{ID: 29, Name: "workshop sales", Category: model.CategorySpam, SubCategory: "workshop_sales",
			Pattern: `workshop|seminar|free (webinar|training)`, IsRegex: true, Tier: model.TierMedium},
		{ID: 30, Name: "newsletter sales", Category: model.CategorySpam, SubCategory: "newsletter_sales",
			Keywords: []string{"newsletter"}, Tier: model.TierMedium},
		{ID: 31, Name: "promo merchandise", Category: model.CategorySpam, SubCategory: "b2b_sales",
			Pattern: `customized t.?shirts|promotional (items|products)`, IsRegex: true, Tier: model.TierHigh},
		{ID: 32, Name: "office supplies", Category: model.CategorySpam, SubCategory: "b2b_sales",
			Pattern: `ink and toner|office supplies`, IsRegex: true, Tier: model.TierHigh},
		{ID: 33, Name: "media feature pitch", Category: model.CategorySpam, SubCategory: "media_pitch",
			Pattern: `feature.*(magazine|edition)|press release|newswire`, IsRegex: true, Tier: model.TierMedium},
		{ID: 34, Name: "consumer telemarketing", Category: model.CategorySpam, SubCategory: "telemarketing",
			Pattern: `(vehicle|car) warranty|medicare|(health|life) insurance|solar (panel|energy)|refinance|mortgage rate`, IsRegex: true, Tier: model.TierHigh},
		{ID: 35, Name: "urgency script", Category: model.CategorySpam, SubCategory: "telemarketing",
			Pattern: `final notice|last chance|act now|limited time|special offer`, IsRegex: true, Tier: model.TierMedium},
		{ID: 36, Name: "not a sales call", Category: model.CategorySpam, SubCategory: "telemarketing",
			Keywords: []string{"not a sales call"}, Tier: model.TierHigh},
		{ID: 37, Name: "sales rep introduction", Category: model.CategorySpam, SubCategory: "cold_call",
			Pattern: `i('m| am) a sales rep|work for a distributor|have you heard of us`, IsRegex: true, Tier: model.TierMedium},
		{ID: 38, Name: "business opportunity", Category: model.CategorySpam, SubCategory: "telemarketing",
			Pattern: `business opportunity|work from home`, IsRegex: true, Tier: model.TierLow},
		{ID: 39, Name: "partnership feeler", Category: model.CategorySpam, SubCategory: "cold_call",
			Keywords: []string{"partnership"}, Tier: model.TierLow},
		{ID: 40, Name: "sales team mention", Category: model.CategorySpam, SubCategory: "cold_call",
			Pattern: `sales (team|rep)`, IsRegex: true, Tier: model.TierLow},

		// --- operations: vendors and materials ---
		{ID: 50, Name: "supplier purchase", Category: model.CategoryOperations, SubCategory: "vendor_purchase",
			Pattern: `(home depot|lowe'?s|ashby lumber|westside building|floor (and|&) decor|prosource).*(phone sale|pro desk|purchase|order|card|sale)`, IsRegex: true, Tier: model.TierHigh},
		{ID: 51, Name: "phone sale desk", Category: model.CategoryOperations, SubCategory: "vendor_purchase",
			Pattern: `phone sale|pro desk`, IsRegex: true, Tier: model.TierHigh},
		{ID: 52, Name: "material delivery", Category: model.CategoryOperations, SubCategory: "vendor_logistics",
			Pattern: `deliver\w*.*(order|material)|material order|schedule.*(pickup|delivery)|drivers? making deliveries|collect delivery instructions`, IsRegex: true, Tier: model.TierHigh},
		{ID: 53, Name: "supplier introduction", Category: model.CategoryOperations, SubCategory: "vendor_order",
			Pattern: `(this is|calling from) .*(supply|lumber|ready mix|building materials?)`, IsRegex: true, Tier: model.TierMedium},
		{ID: 54, Name: "amazon logistics", Category: model.CategoryOperations, SubCategory: "vendor_logistics",
			Pattern: `amazon.*(delivery|logistics)`, IsRegex: true, Tier: model.TierHigh},
		{ID: 55, Name: "blueprint printing", Category: model.CategoryOperations, SubCategory: "vendor_service",
			Pattern: `blueprint|bpx printing`, IsRegex: true, Tier: model.TierMedium},
		{ID: 56, Name: "phone service vendor", Category: model.CategoryOperations, SubCategory: "vendor_service",
			Keywords: []string{"ringcentral"}, Tier: model.TierHigh},
		{ID: 57, Name: "utility company", Category: model.CategoryOperations, SubCategory: "utility_coordination",
			Pattern: `pg&?e\b|pacific gas`, IsRegex: true, Tier: model.TierHigh},

		// --- operations: permits and inspections ---
		{ID: 60, Name: "permit with agency", Category: model.CategoryOperations, SubCategory: "permit_inspection",
			Pattern: `(permit|inspection).*(city|county|fire district)|city of \w+.*(permit|inspection|construction)|building (department|permit|inspection)|encroachment permit`, IsRegex: true, Tier: model.TierHigh},
		{ID: 61, Name: "permit mention", Category: model.CategoryOperations, SubCategory: "permit_inspection",
			Keywords: []string{"permit"}, Tier: model.TierLow},

		// --- operations: crew and internal coordination ---
		{ID: 65, Name: "crew language", Category: model.CategoryOperations, SubCategory: "crew_coordination",
			Pattern: `\b(crew|foreman|job site|jobsite)\b`, IsRegex: true, Tier: model.TierMedium},
		{ID: 66, Name: "subcontractor payment", Category: model.CategoryOperations, SubCategory: "subcontractor_payment",
			Pattern: `subcontractor.*(check|payment)|check (is ready|pickup)`, IsRegex: true, Tier: model.TierHigh},
		{ID: 67, Name: "group chat coordination", Category: model.CategoryOperations, SubCategory: "crew_coordination",
			Pattern: `group (chat|tab)|did you see the (video|message)|forward(ed)? (it|the pictures?)`, IsRegex: true, Tier: model.TierMedium},
		{ID: 68, Name: "internal payment", Category: model.CategoryOperations, SubCategory: "internal_payment",
			Pattern: `3% charge|run (the|your) card|requested money`, IsRegex: true, Tier: model.TierMedium},
		{ID: 69, Name: "bookkeeping", Category: model.CategoryOperations, SubCategory: "bookkeeping",
			Pattern: `bookkeeping|accounting|invoice.*(pay|payment|sent)`, IsRegex: true, Tier: model.TierMedium},
		{ID: 70, Name: "dispatcher", Category: model.CategoryOperations, SubCategory: "vendor_logistics",
			Keywords: []string{"dispatcher"}, Tier: model.TierMedium},
		{ID: 71, Name: "schedule update", Category: model.CategoryOperations, SubCategory: "internal_coordination",
			Pattern: `appointment (confirm|check)|schedule (change|update)`, IsRegex: true, Tier: model.TierLow},
		{ID: 72, Name: "follow up", Category: model.CategoryOperations, SubCategory: "internal_coordination",
			Pattern: `calling back|follow up`, IsRegex: true, Tier: model.TierLow},

		// --- other inquiry ---
		{ID: 80, Name: "job seeker", Category: model.CategoryOtherInquiry, SubCategory: "job_seeker",
			Pattern: `are you (guys )?hiring|looking for (work|a job|employment)|any (job|work|position)s? (opening|available)|apprentice`, IsRegex: true, Tier: model.TierHigh},
		{ID: 81, Name: "out of service area", Category: model.CategoryOtherInquiry, SubCategory: "out_of_area",
			Pattern: `(don'?t|do not) service.*area|outside.*service area|too far|not in.*area`, IsRegex: true, Tier: model.TierHigh},
		{ID: 82, Name: "service area question", Category: model.CategoryOtherInquiry, SubCategory: "out_of_area",
			Pattern: `where are you (guys )?(located|based)|what (area|city|cities) do you (cover|serve|work)`, IsRegex: true, Tier: model.TierMedium},
		{ID: 83, Name: "vendor seeking work", Category: model.CategoryOtherInquiry, SubCategory: "vendor_seeking_work",
			Pattern: `(we|i) (specialize|offer|provide) .*(service|engineering)|looking to (partner|work) with contractors|seeking (work|projects)`, IsRegex: true, Tier: model.TierMedium},
		{ID: 84, Name: "jobsite sign question", Category: model.CategoryOtherInquiry, SubCategory: "sign_inquiry",
			Pattern: `your (guys'? )?(sign|name) on it|asking about.*sign|wondering about the property`, IsRegex: true, Tier: model.TierMedium},
		{ID: 85, Name: "research request", Category: model.CategoryOtherInquiry, SubCategory: "research_request",
			Pattern: `student.*research|research (project|study|request)`, IsRegex: true, Tier: model.TierHigh},
		{ID: 86, Name: "curiosity call", Category: model.CategoryOtherInquiry, SubCategory: "general_question",
			Pattern: `just (calling|wondering|curious)|what (kind|type) of (work|company)|are you (guys )?still (in business|open|working)`, IsRegex: true, Tier: model.TierMedium},
		{ID: 87, Name: "system greeting", Category: model.CategoryOtherInquiry, SubCategory: "system_message",
			Pattern: `please hold.*next available agent|unable to take your call.*leave.*message|test call`, IsRegex: true, Tier: model.TierHigh},

		// --- customer leads: trade terms ---
		{ID: 100, Name: "concrete terms", Category: model.CategoryCustomer, SubCategory: "concrete_inquiry",
			Pattern: `concrete|cement|slab|footing|pour(ing)?\b`, IsRegex: true, Tier: model.TierHigh},
		{ID: 101, Name: "flatwork terms", Category: model.CategoryCustomer, SubCategory: "concrete_inquiry",
			Pattern: `driveway|patio|sidewalk|walkway|pool deck|stamped`, IsRegex: true, Tier: model.TierHigh},
		{ID: 102, Name: "foundation", Category: model.CategoryCustomer, SubCategory: "foundation_inquiry",
			Keywords: []string{"foundation"}, Tier: model.TierHigh},
		{ID: 103, Name: "adu", Category: model.CategoryCustomer, SubCategory: "adu_inquiry",
			Pattern: `\badu\b|accessory dwelling|granny unit|garage conversion`, IsRegex: true, Tier: model.TierHigh},
		{ID: 104, Name: "bathroom remodel", Category: model.CategoryCustomer, SubCategory: "bathroom_remodel",
			Pattern: `bathroom.*(remodel|renovation)|remodel.*bathroom`, IsRegex: true, Tier: model.TierHigh},
		{ID: 105, Name: "kitchen remodel", Category: model.CategoryCustomer, SubCategory: "kitchen_remodel",
			Pattern: `kitchen.*(remodel|renovation)|remodel.*kitchen`, IsRegex: true, Tier: model.TierHigh},
		{ID: 106, Name: "drainage", Category: model.CategoryCustomer, SubCategory: "drainage_inquiry",
			Pattern: `drainage|french drain`, IsRegex: true, Tier: model.TierHigh},
		{ID: 107, Name: "waterproofing", Category: model.CategoryCustomer, SubCategory: "drainage_inquiry",
			Pattern: `waterproof|moisture|water intrusion|sump pump`, IsRegex: true, Tier: model.TierMedium},
		{ID: 108, Name: "retaining wall", Category: model.CategoryCustomer, SubCategory: "retaining_wall",
			Keywords: []string{"retaining wall"}, Tier: model.TierHigh},
		{ID: 109, Name: "roofing", Category: model.CategoryCustomer, SubCategory: "roof_inquiry",
			Pattern: `roof.*(leak|repair|replace)`, IsRegex: true, Tier: model.TierHigh},
		{ID: 110, Name: "fire damage", Category: model.CategoryCustomer, SubCategory: "fire_damage",
			Pattern: `fire.*(damage|rebuild)`, IsRegex: true, Tier: model.TierHigh},
		{ID: 111, Name: "exterior work", Category: model.CategoryCustomer, SubCategory: "exterior_inquiry",
			Pattern: `\b(window|door|siding|exterior)s?\b`, IsRegex: true, Tier: model.TierMedium},
		{ID: 112, Name: "generic remodel", Category: model.CategoryCustomer, SubCategory: "remodel_inquiry",
			Pattern: `remodel|renovation`, IsRegex: true, Tier: model.TierMedium},
		{ID: 113, Name: "demolition", Category: model.CategoryCustomer, SubCategory: "demo_inquiry",
			Pattern: `demolition|\bdemo\b|tear out`, IsRegex: true, Tier: model.TierMedium},

		// --- customer leads: estimate and scheduling language ---
		{ID: 120, Name: "estimate request", Category: model.CategoryCustomer, SubCategory: "estimate_request",
			Pattern: `estimate|quote|\bbid\b|pricing`, IsRegex: true, Tier: model.TierMedium},
		{ID: 121, Name: "cost question", Category: model.CategoryCustomer, SubCategory: "estimate_request",
			Pattern: `(how much|what).*(cost|charge|price)`, IsRegex: true, Tier: model.TierMedium},
		{ID: 122, Name: "scheduling language", Category: model.CategoryCustomer, SubCategory: "scheduling",
			Pattern: `schedule.*(appointment|estimate|visit)|appointment.*schedule|come out`, IsRegex: true, Tier: model.TierMedium},
		{ID: 123, Name: "address given", Category: model.CategoryCustomer, SubCategory: "general_inquiry",
			Pattern: `my address is|located at`, IsRegex: true, Tier: model.TierMedium},
		{ID: 124, Name: "square footage", Category: model.CategoryCustomer, SubCategory: "general_inquiry",
			Pattern: `square (foot|feet|ft)|sq ?ft`, IsRegex: true, Tier: model.TierLow},
		{ID: 125, Name: "needs work done", Category: model.CategoryCustomer, SubCategory: "general_inquiry",
			Pattern: `need .*(work|done|help|someone)|looking (for|to) .*(replace|install|fix|build)`, IsRegex: true, Tier: model.TierLow},
		{ID: 126, Name: "do you do", Category: model.CategoryCustomer, SubCategory: "general_inquiry",
			Pattern: `do you (guys )?(do|work (in|on))|can you (come|send|help)`, IsRegex: true, Tier: model.TierLow},
		{ID: 127, Name: "my property", Category: model.CategoryCustomer, SubCategory: "general_inquiry",
			Pattern: `my (house|home|property|backyard)`, IsRegex: true, Tier: model.TierLow},
		{ID: 128, Name: "repair language", Category: model.CategoryCustomer, SubCategory: "repair_inquiry",
			Pattern: `repair|\bfix\b|damage`, IsRegex: true, Tier: model.TierLow},
	}

	for i := range rules {
		rules[i].IsActive = true
	}
	return rules
}

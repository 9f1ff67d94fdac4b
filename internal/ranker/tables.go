package ranker

// Static associative data for section-aware and semantic scoring.
// These tables are configuration baked into source, not derived from
// the document; callers can override both through options.

// DefaultSemanticExpansions maps query terms to related domain
// vocabulary. A chunk containing any related term earns partial credit
// for the query term even without a verbatim match.
var DefaultSemanticExpansions = map[string][]string{
	"vacation":  {"holiday", "leave", "pto", "time off", "days off", "annual"},
	"holiday":   {"vacation", "pto", "leave", "time off"},
	"sick":      {"illness", "medical", "unwell", "doctor", "health"},
	"leave":     {"vacation", "absence", "pto", "time off"},
	"pay":       {"salary", "compensation", "wage", "payroll", "paycheck"},
	"salary":    {"pay", "compensation", "wage", "payroll"},
	"benefits":  {"insurance", "coverage", "perks", "401k", "retirement"},
	"insurance": {"benefits", "coverage", "medical", "dental", "health"},
	"remote":    {"home", "telecommute", "wfh", "virtual", "offsite"},
	"work":      {"job", "employment", "duties", "office"},
	"hours":     {"schedule", "time", "shift", "workday"},
	"expense":   {"reimbursement", "travel", "costs", "receipts"},
	"expenses":  {"reimbursement", "travel", "costs", "receipts"},
	"travel":    {"trip", "expenses", "flights", "hotel"},
	"quit":      {"resignation", "notice", "termination", "resign"},
	"fired":     {"termination", "dismissal", "terminated"},
	"raise":     {"promotion", "increase", "review", "adjustment"},
	"training":  {"development", "learning", "courses", "education"},
	"overtime":  {"extra hours", "compensation", "time and a half"},
	"maternity": {"parental", "leave", "family", "paternity"},
	"retire":    {"retirement", "401k", "pension"},
}

// DefaultSectionKeywords maps section labels to associated domain
// keywords used to boost section-aware scoring.
var DefaultSectionKeywords = map[string][]string{
	"VACATION POLICY": {"vacation", "holiday", "pto", "days", "leave", "annual", "paid"},
	"SICK LEAVE":      {"sick", "illness", "medical", "doctor", "health", "days"},
	"REMOTE WORK":     {"remote", "home", "telecommute", "wfh", "office", "virtual"},
	"COMPENSATION":    {"pay", "salary", "wage", "bonus", "payroll", "raise"},
	"BENEFITS":        {"insurance", "coverage", "401k", "retirement", "dental", "medical"},
	"WORKING HOURS":   {"hours", "schedule", "shift", "overtime", "workday", "flexible"},
	"EXPENSES":        {"expense", "reimbursement", "travel", "receipts", "costs"},
	"TERMINATION":     {"termination", "resignation", "notice", "dismissal", "quit"},
	"TRAINING":        {"training", "development", "learning", "courses", "education"},
	"PARENTAL LEAVE":  {"maternity", "paternity", "parental", "family", "leave"},
}

package lead

import "strings"

// Fixed bilingual label tables for the enumerated form answers. The
// Thai label comes first, matching how the admin dashboard and the chat
// notification render them.

var packagingTypeLabels = map[string]string{
	"creamTube":     "หลอดครีม / Cream Tube",
	"jar":           "กระปุกครีม / Cream Jar",
	"pumpBottle":    "ขวดปั๊ม / Pump Bottle",
	"sprayBottle":   "ขวดสเปรย์ / Spray Bottle",
	"dropperBottle": "ขวดหยด / Dropper Bottle",
	"foilBag":       "ถุงฟอยล์ / Foil Bag",
	"box":           "กล่องบรรจุภัณฑ์ / Packaging Box",
	"label":         "ฉลากสินค้า / Product Label",
	"other":         "อื่นๆ / Other",
}

var currentWorkLabels = map[string]string{
	"officeWorker":  "พนักงานประจำ / Office Worker",
	"freelance":     "ฟรีแลนซ์ / Freelancer",
	"businessOwner": "เจ้าของธุรกิจ / Business Owner",
	"onlineSeller":  "แม่ค้าออนไลน์ / Online Seller",
	"student":       "นักศึกษา / Student",
	"other":         "อื่นๆ / Other",
}

var expectedIncomeLabels = map[string]string{
	"under10k": "ต่ำกว่า 10,000 บาท / Under 10,000 THB",
	"10k-30k":  "10,000 - 30,000 บาท / 10,000 - 30,000 THB",
	"30k-50k":  "30,000 - 50,000 บาท / 30,000 - 50,000 THB",
	"over50k":  "มากกว่า 50,000 บาท / Over 50,000 THB",
}

var pricingApproachLabels = map[string]string{
	"followPricing": "ขายตามราคาที่บริษัทกำหนด / Follow suggested pricing",
	"ownPricing":    "ตั้งราคาขายเอง / Set own pricing",
	"notSure":       "ยังไม่แน่ใจ / Not sure yet",
}

// lookupLabel resolves key through table, falling back to the raw key so
// an unknown enum value stays visible instead of vanishing.
func lookupLabel(table map[string]string, key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ""
	}
	if label, ok := table[trimmed]; ok {
		return label
	}
	return trimmed
}

// PackagingTypeLabel returns the bilingual subject label for a contact
// form packaging type.
func PackagingTypeLabel(key string) string {
	return lookupLabel(packagingTypeLabels, key)
}

// CurrentWorkLabel returns the bilingual label for an agent applicant's
// current occupation answer.
func CurrentWorkLabel(key string) string {
	return lookupLabel(currentWorkLabels, key)
}

// ExpectedIncomeLabel returns the bilingual label for the expected
// income range answer.
func ExpectedIncomeLabel(key string) string {
	return lookupLabel(expectedIncomeLabels, key)
}

// PricingApproachLabel returns the bilingual label for the pricing
// approach answer.
func PricingApproachLabel(key string) string {
	return lookupLabel(pricingApproachLabels, key)
}

// BuildContactMessage concatenates the non-empty size and quantity
// answers with their fixed bilingual prefixes. Both absent yields "-",
// never an empty string, so the admin list and the chat notification
// always have something to show.
func BuildContactMessage(size, quantity string) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(size); s != "" {
		parts = append(parts, "ขนาด/Size: "+s)
	}
	if q := strings.TrimSpace(quantity); q != "" {
		parts = append(parts, "จำนวน/Quantity: "+q+" ชิ้น/pcs")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "\n")
}

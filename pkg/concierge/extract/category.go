package extract

import (
	"regexp"

	"github.com/cognicore/concierge/pkg/concierge/order"
)

// Raw service labels produced by ServiceTypes. They are mapped onto the
// canonical categories by the normalize package.
const (
	LabelFood            = "food"
	LabelHousekeeping    = "housekeeping"
	LabelTransportation  = "transportation"
	LabelRoomService     = "room-service"
	LabelSpa             = "spa"
	LabelTours           = "tours"
	LabelTechnical       = "technical"
	LabelConcierge       = "concierge"
	LabelWellness        = "wellness"
	LabelSecurity        = "security"
	LabelSpecialOccasion = "special-occasion"
	LabelOther           = order.CategoryOther
)

// CategoryRule fires its Label when Pattern matches.
type CategoryRule struct {
	Label   string
	Pattern *regexp.Regexp
}

var categoryRules = []CategoryRule{
	{LabelFood, regexp.MustCompile(`(?i)\b(?:food|meals?|breakfast|brunch|lunch|dinner|snacks?|sandwich|burgers?|pizza|salad|soup|pasta|noodles?|pho\b|steak|dessert|coffee|tea\b|juice|wine|beer|cocktail|drinks?|beverages?|water bottle|fruit|menu|dining)`)},
	{LabelHousekeeping, regexp.MustCompile(`(?i)\b(?:clean(?:ing|ed)?|housekeeping|towels?|sheets?|linens?|pillows?|blankets?|laundry|ironing|toiletr|shampoo|soap|toilet paper|tidy|vacuum|make up the room|turndown)`)},
	{LabelTransportation, regexp.MustCompile(`(?i)\b(?:taxi|cab\b|shuttle|transport|transfer|airport|pick[\s-]?up|drop[\s-]?off|limo|rental car|car hire|car service|bus\b|train station|motorbike|scooter)`)},
	{LabelRoomService, regexp.MustCompile(`(?i)\b(?:room service|in-room dining|(?:deliver(?:ed|y)?|bring|send)(?: \w+){0,3} (?:up )?to (?:my|the|our) room)`)},
	{LabelSpa, regexp.MustCompile(`(?i)\b(?:spa\b|massage|sauna|facial|manicure|pedicure|jacuzzi|hot tub|steam room|body scrub)`)},
	{LabelTours, regexp.MustCompile(`(?i)\b(?:tours?\b|excursion|sightseeing|day trip|snorkel|diving|boat trip|island hopping|tour guide|city tour|activities|activity)`)},
	{LabelTechnical, regexp.MustCompile(`(?i)(?:\bwi-?fi|\binternet|\btv\b|\btelevision|\bremote control|\bair[\s-]?con|\ba/c\b|\bheating|\bbroken|\bnot working|\brepair|\bleak|\blight bulb|\bpower outlet|\bcharger)`)},
	{LabelConcierge, regexp.MustCompile(`(?i)\b(?:concierge|reservation|recommend|book a table|tickets?\b|directions|local information|wake[\s-]?up call|late check[\s-]?out|early check[\s-]?in)`)},
	{LabelWellness, regexp.MustCompile(`(?i)\b(?:gym|fitness|yoga|pool\b|wellness|workout|personal trainer|meditation)`)},
	{LabelSecurity, regexp.MustCompile(`(?i)\b(?:security|lost|stolen|locked out|key ?card|emergency|suspicious|intruder)`)},
	{LabelSpecialOccasion, regexp.MustCompile(`(?i)\b(?:birthday|anniversary|honeymoon|celebrat|proposal|wedding|flowers|bouquet|cake|champagne|decorations?)`)},
	{LabelOther, regexp.MustCompile(`(?i)\b(?:other|misc(?:ellaneous)?|general request)\b`)},
}

// CategoryRules returns a copy of the rule list in evaluation order.
func CategoryRules() []CategoryRule {
	out := make([]CategoryRule, len(categoryRules))
	copy(out, categoryRules)
	return out
}

// ServiceTypes returns every label whose rule fires on text, in rule order.
// Labels are not mutually exclusive. When nothing fires the result is
// exactly [other].
func ServiceTypes(text string) []string {
	var labels []string
	for _, rule := range categoryRules {
		if rule.Pattern.MatchString(text) {
			labels = append(labels, rule.Label)
		}
	}
	if len(labels) == 0 {
		return []string{LabelOther}
	}
	return labels
}

package alerts

import (
	"context"
	"fmt"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// TemplateComposer renders loudspeaker announcements from fixed phrase
// templates. Announcements must stay calm and directive, so the wording is
// curated per alert type rather than generated.
type TemplateComposer struct{}

var _ ports.AlertComposer = (*TemplateComposer)(nil)

// NewTemplateComposer creates a template-based alert composer.
func NewTemplateComposer() *TemplateComposer {
	return &TemplateComposer{}
}

type phraseSet struct {
	hindi   string
	english string
	marathi string
}

// Each template takes the zone name as its single argument.
var phrases = map[string]phraseSet{
	"evacuation": {
		hindi:   "कृपया ध्यान दें। %s क्षेत्र को शांतिपूर्वक खाली करें और स्वयंसेवकों के निर्देशों का पालन करें।",
		english: "Attention please. Calmly proceed out of the %s area and follow the volunteers' directions.",
		marathi: "कृपया लक्ष द्या। %s परिसर शांतपणे रिकामा करा आणि स्वयंसेवकांच्या सूचनांचे पालन करा।",
	},
	"congestion": {
		hindi:   "कृपया ध्यान दें। %s क्षेत्र में भीड़ अधिक है। कृपया वैकल्पिक मार्ग का उपयोग करें।",
		english: "Attention please. The %s area is crowded. Please use an alternate route.",
		marathi: "कृपया लक्ष द्या। %s परिसरात गर्दी जास्त आहे। कृपया पर्यायी मार्गाचा वापर करा।",
	},
	"medical": {
		hindi:   "%s क्षेत्र में चिकित्सा दल की आवश्यकता है। कृपया रास्ता दें।",
		english: "Medical assistance is required in the %s area. Please make way.",
		marathi: "%s परिसरात वैद्यकीय पथकाची आवश्यकता आहे। कृपया वाट द्या।",
	},
	"general": {
		hindi:   "कृपया ध्यान दें। %s क्षेत्र में सावधानी बरतें और कर्मचारियों के निर्देशों का पालन करें।",
		english: "Attention please. Exercise caution in the %s area and follow staff instructions.",
		marathi: "कृपया लक्ष द्या। %s परिसरात सावधगिरी बाळगा आणि कर्मचाऱ्यांच्या सूचनांचे पालन करा।",
	},
}

// ComposeAlertText renders the announcement for a zone. Unknown alert types
// fall back to the general phrasing.
func (c *TemplateComposer) ComposeAlertText(ctx context.Context, zone, alertType string) (domain.AlertText, error) {
	set, ok := phrases[alertType]
	if !ok {
		set = phrases["general"]
	}

	return domain.AlertText{
		Hindi:   fmt.Sprintf(set.hindi, zone),
		English: fmt.Sprintf(set.english, zone),
		Marathi: fmt.Sprintf(set.marathi, zone),
	}, nil
}

package business

import (
	"encoding/json"
	"strings"
)

// Criteria is the business-model questionnaire. Every field is required free
// text.
type Criteria struct {
	ServiceType         string `json:"serviceType" validate:"required,max=1000"`
	Ownership           string `json:"ownership" validate:"required,max=1000"`
	TargetAgeGroup      string `json:"targetAgeGroup" validate:"required,max=1000"`
	Location            string `json:"location" validate:"required,max=1000"`
	MarketDemand        string `json:"marketDemand" validate:"required,max=1000"`
	DeliveryMode        string `json:"deliveryMode" validate:"required,max=1000"`
	PaymentMethods      string `json:"paymentMethods" validate:"required,max=1000"`
	AccessibilityGoal   string `json:"accessibilityGoal" validate:"required,max=1000"`
	TargetUsers         string `json:"targetUsers" validate:"required,max=1000"`
	Delivery            string `json:"delivery" validate:"required,max=1000"`
	Content             string `json:"content" validate:"required,max=1000"`
	Regulations         string `json:"regulations" validate:"required,max=1000"`
	Funding             string `json:"funding" validate:"required,max=1000"`
	Budget              string `json:"budget" validate:"required,max=1000"`
	Monetization        string `json:"monetization" validate:"required,max=1000"`
	Scope               string `json:"scope" validate:"required,max=1000"`
	DataSensitivity     string `json:"dataSensitivity" validate:"required,max=1000"`
	ClinicalInvolvement string `json:"clinicalInvolvement" validate:"required,max=1000"`
}

// Suggestion is the normalized model answer.
type Suggestion struct {
	BusinessModel         string   `json:"businessModel"`
	ConfidenceScore       float64  `json:"confidenceScore"`
	Reasons               []string `json:"reasons"`
	MVPFeatures           []string `json:"mvpFeatures"`
	GTMChannels           []string `json:"gtmChannels"`
	MonetizationForecasts []string `json:"monetizationForecasts"`
	ComplianceWarning     bool     `json:"complianceWarning"`
}

// stringList accepts either a JSON array of strings or a single string.
// A single string is split on newlines and bullet markers.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	var out []string
	for _, line := range strings.Split(single, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• ")
		if line != "" {
			out = append(out, line)
		}
	}
	*l = out
	return nil
}

// Package insights serves the static mental-health statistics shown on the
// data-analysis page. Figures are percentages of the adult population unless
// noted otherwise.
package insights

// YearPrevalence is the share of adults with a major depressive episode in a year.
type YearPrevalence struct {
	Year       int     `json:"year"`
	Prevalence float64 `json:"prevalence"`
}

// ConditionShare is one slice of the condition breakdown.
type ConditionShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// AgeGroupPrevalence is the prevalence of any mental illness in an age group.
type AgeGroupPrevalence struct {
	AgeGroup   string  `json:"ageGroup"`
	Prevalence float64 `json:"prevalence"`
}

type TreatmentSeeking struct {
	ReceivedTreatment float64 `json:"receivedTreatment"`
}

type Comorbidity struct {
	// AnxietyAndSUD is anxiety co-occurring with a substance use disorder.
	AnxietyAndSUD float64 `json:"anxietyAndSUD"`
}

type YouthMentalHealth struct {
	MajorDepressiveEpisode float64 `json:"majorDepressiveEpisode"`
}

// Dataset is the full statistics payload.
type Dataset struct {
	PrevalenceOverTime []YearPrevalence     `json:"prevalenceOverTime"`
	ConditionBreakdown []ConditionShare     `json:"conditionBreakdown"`
	AgeGroupAnalysis   []AgeGroupPrevalence `json:"ageGroupAnalysis"`
	TreatmentSeeking   TreatmentSeeking     `json:"treatmentSeeking"`
	Comorbidity        Comorbidity          `json:"comorbidity"`
	YouthMHD           YouthMentalHealth    `json:"youthMHD"`
}

// Data returns a fresh copy of the dataset.
func Data() Dataset {
	return Dataset{
		PrevalenceOverTime: []YearPrevalence{
			{Year: 2015, Prevalence: 6.7},
			{Year: 2016, Prevalence: 6.9},
			{Year: 2017, Prevalence: 7.1},
			{Year: 2018, Prevalence: 7.2},
			{Year: 2019, Prevalence: 7.8},
			{Year: 2020, Prevalence: 8.4},
			{Year: 2021, Prevalence: 9.2},
			{Year: 2022, Prevalence: 9.5},
			{Year: 2023, Prevalence: 9.8},
			{Year: 2024, Prevalence: 10.1},
		},
		ConditionBreakdown: []ConditionShare{
			{Name: "Anxiety Disorders", Value: 31.1},
			{Name: "Depressive Disorders", Value: 21.0},
			{Name: "PTSD", Value: 6.1},
			{Name: "Other", Value: 41.8},
		},
		AgeGroupAnalysis: []AgeGroupPrevalence{
			{AgeGroup: "18-25", Prevalence: 33.7},
			{AgeGroup: "26-49", Prevalence: 28.1},
			{AgeGroup: "50+", Prevalence: 15.0},
		},
		TreatmentSeeking: TreatmentSeeking{ReceivedTreatment: 47.2},
		Comorbidity:      Comorbidity{AnxietyAndSUD: 18.3},
		YouthMHD:         YouthMentalHealth{MajorDepressiveEpisode: 17.0},
	}
}

package resources

// Professional is a kind of provider the user may contact, with the reason.
type Professional struct {
	ProfessionalType string `json:"therapistType"`
	Reason           string `json:"reason"`
}

// CrisisResource is a fixed, vetted support line.
type CrisisResource struct {
	ID      string
	Label   string
	Contact string
}

// String renders the resource the way it is shown to users.
func (r CrisisResource) String() string {
	if r.Contact == "" {
		return r.Label
	}
	return r.Label + ": " + r.Contact
}

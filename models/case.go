package models

// Case holds the structure for a trial case definition. The same shape is
// decoded from a JSON case file or from the cases collection in mongo.
type Case struct {
	CaseNumber  string     `json:"case_number" bson:"case_number"`
	Title       string     `json:"title" bson:"title"`
	Summary     string     `json:"summary" bson:"summary"`
	LegalSystem string     `json:"legal_system" bson:"legal_system"`
	Plaintiff   Party      `json:"plaintiff" bson:"plaintiff"`
	Defendant   Party      `json:"defendant" bson:"defendant"`
	Evidence    []Evidence `json:"evidence" bson:"evidence"`
	Witnesses   []Witness  `json:"witnesses" bson:"witnesses"`
}

// Party holds one side of the case and its lawyer
type Party struct {
	Name   string `json:"name" bson:"name"`
	Lawyer string `json:"lawyer" bson:"lawyer"`
}

// Evidence holds a single evidence item attached to a case
type Evidence struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

// Witness holds a witness attached to a case
type Witness struct {
	Name             string `json:"name" bson:"name"`
	TestimonySummary string `json:"testimony_summary" bson:"testimony_summary"`
}

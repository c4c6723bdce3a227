package model

// Care guide difficulty levels
const (
	DifficultyEasy     = "Easy"
	DifficultyModerate = "Moderate"
	DifficultyAdvanced = "Advanced"
)

// CareGuide is a plant care article
type CareGuide struct {
	ID              string           `json:"id,omitempty"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	Difficulty      string           `json:"difficulty"`
	ImageURL        string           `json:"imageURL"`
	PublishDate     string           `json:"publishDate"`
	Author          string           `json:"author"`
	QuickTips       []string         `json:"quickTips"`
	WateringTips    string           `json:"wateringTips"`
	LightTips       string           `json:"lightTips"`
	TemperatureTips string           `json:"temperatureTips"`
	FertilizerTips  string           `json:"fertilizerTips"`
	Content         []ContentSection `json:"content"`
	ExpertTip       string           `json:"expertTip"`
	ExpertName      string           `json:"expertName"`
	ExpertTitle     string           `json:"expertTitle"`
	CommonProblems  []CommonProblem  `json:"commonProblems"`
	RelevanceScore  float64          `json:"relevanceScore"`
}

// ContentSection is one titled block of a care guide
type ContentSection struct {
	Title        string `json:"title"`
	Text         string `json:"text"`
	ImageURL     string `json:"imageURL"`
	ImageCaption string `json:"imageCaption"`
}

// CommonProblem pairs a symptom with its fix
type CommonProblem struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

// Category is a browsable catalog section
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ProductCount int    `json:"product_count"`
}

// Package types defines the shared data model for CareerMirror: the
// AI-generated document shapes, the persisted entities, and the HTTP
// request/response contracts.
package types

// Message is a single turn of the interview conversation. An ordered
// slice of messages forms a transcript; transcripts are append-only
// while an interview is running and replaced wholesale when restoring
// from a saved resume.
type Message struct {
	ID   string `json:"id"`
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// Message role values.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// PersonalInfo holds the contact block of a generated resume.
type PersonalInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// ExperienceEntry is one employment entry of a generated resume.
type ExperienceEntry struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Duration     string   `json:"duration,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

// EducationEntry is one education entry of a generated resume.
type EducationEntry struct {
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree"`
	Field        string   `json:"field,omitempty"`
	Year         string   `json:"year,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// SkillSet splits skills into technical and soft categories.
type SkillSet struct {
	Technical []string `json:"technical,omitempty"`
	Soft      []string `json:"soft,omitempty"`
}

// ProjectEntry is one project entry of a generated resume. Impact is a
// value/metrics statement the generator produces for every project.
type ProjectEntry struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Impact       string   `json:"impact,omitempty"`
}

// ProfessionalResume is the first of the two generated documents.
type ProfessionalResume struct {
	PersonalInfo   PersonalInfo      `json:"personalInfo"`
	Summary        string            `json:"summary"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education,omitempty"`
	Skills         SkillSet          `json:"skills"`
	Projects       []ProjectEntry    `json:"projects,omitempty"`
	Certifications []string          `json:"certifications,omitempty"`
	Languages      []string          `json:"languages,omitempty"`
}

// PersonalityProfile describes the inferred work psychology of the
// candidate.
type PersonalityProfile struct {
	WorkStyle   string   `json:"workStyle"`
	Strengths   []string `json:"strengths,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
}

// IdealRole is one suggested role with a qualitative reasoning string
// and a match score in [0,100].
type IdealRole struct {
	Title      string  `json:"title"`
	Reasoning  string  `json:"reasoning"`
	MatchScore float64 `json:"matchScore"`
}

// Environments separates workplaces to seek from workplaces to avoid.
type Environments struct {
	Preferred []string `json:"preferred,omitempty"`
	ToAvoid   []string `json:"toAvoid,omitempty"`
}

// CareerPath is the two-horizon roadmap: short term (1-2 years) and
// long term (3-5 years).
type CareerPath struct {
	ShortTerm []string `json:"shortTerm,omitempty"`
	LongTerm  []string `json:"longTerm,omitempty"`
}

// CareerInsights is the second of the two generated documents.
type CareerInsights struct {
	PersonalityProfile PersonalityProfile `json:"personalityProfile"`
	IdealRoles         []IdealRole        `json:"idealRoles"`
	Environments       Environments       `json:"environments"`
	CareerPath         CareerPath         `json:"careerPath"`
	RedFlags           []string           `json:"redFlags"`
	Recommendations    []string           `json:"recommendations"`
}

// FinalOutput is the merged pair of validated documents. It exists only
// between a successful generation and persistence.
type FinalOutput struct {
	ProfessionalResume ProfessionalResume `json:"professionalResume"`
	CareerInsights     CareerInsights     `json:"careerInsights"`
}

package domain

import (
	"strings"

	"github.com/google/uuid"
)

// SkillLevel is the closed set of skill proficiency levels.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

var skillLevels = map[SkillLevel]bool{
	SkillBeginner:     true,
	SkillIntermediate: true,
	SkillAdvanced:     true,
	SkillExpert:       true,
}

func (l SkillLevel) Valid() bool { return skillLevels[l] }

// LanguageProficiency is the closed set of spoken-language levels.
type LanguageProficiency string

const (
	ProficiencyBasic          LanguageProficiency = "basic"
	ProficiencyConversational LanguageProficiency = "conversational"
	ProficiencyProfessional   LanguageProficiency = "professional"
	ProficiencyNative         LanguageProficiency = "native"
)

var languageProficiencies = map[LanguageProficiency]bool{
	ProficiencyBasic:          true,
	ProficiencyConversational: true,
	ProficiencyProfessional:   true,
	ProficiencyNative:         true,
}

func (p LanguageProficiency) Valid() bool { return languageProficiencies[p] }

// Section keys for visibility and ordering. PersonalInfo is always
// visible and therefore has no key here.
const (
	SectionSummary      = "summary"
	SectionExperience   = "experience"
	SectionEducation    = "education"
	SectionSkills       = "skills"
	SectionLanguages    = "languages"
	SectionCertificates = "certificates"
)

// OrderedSectionKeys is the canonical set of optional sections, in
// default display order.
var OrderedSectionKeys = []string{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionLanguages,
	SectionCertificates,
}

type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Title    string `json:"title"`
}

type Experience struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

type Education struct {
	ID          string  `json:"id"`
	Institution string  `json:"institution"`
	Degree      string  `json:"degree"`
	Field       string  `json:"field"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Current     bool    `json:"current"`
	GPA         string  `json:"gpa,omitempty"`
	Description string  `json:"description"`
}

type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

type Language struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Proficiency LanguageProficiency `json:"proficiency"`
}

type Certificate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url,omitempty"`
}

// SectionVisibility toggles the optional sections. PersonalInfo is
// excluded on purpose: it cannot be hidden.
type SectionVisibility struct {
	Summary      bool `json:"summary"`
	Experience   bool `json:"experience"`
	Education    bool `json:"education"`
	Skills       bool `json:"skills"`
	Languages    bool `json:"languages"`
	Certificates bool `json:"certificates"`
}

// SectionOrderEntry pins one optional section to a display position.
type SectionOrderEntry struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// CVData is the aggregate root for a single resume document.
type CVData struct {
	PersonalInfo      PersonalInfo        `json:"personalInfo"`
	Summary           string              `json:"summary"`
	Experience        []Experience        `json:"experience"`
	Education         []Education         `json:"education"`
	Skills            []Skill             `json:"skills"`
	Languages         []Language          `json:"languages"`
	Certificates      []Certificate       `json:"certificates"`
	SectionVisibility SectionVisibility   `json:"sectionVisibility"`
	SectionOrder      []SectionOrderEntry `json:"sectionOrder"`
}

// DefaultCVData returns the canonical empty CV used to seed new
// documents: all sections visible, default order, empty collections.
func DefaultCVData() CVData {
	order := make([]SectionOrderEntry, len(OrderedSectionKeys))
	for i, key := range OrderedSectionKeys {
		order[i] = SectionOrderEntry{ID: key, Order: i}
	}
	return CVData{
		PersonalInfo: PersonalInfo{},
		Summary:      "",
		Experience:   []Experience{},
		Education:    []Education{},
		Skills:       []Skill{},
		Languages:    []Language{},
		Certificates: []Certificate{},
		SectionVisibility: SectionVisibility{
			Summary:      true,
			Experience:   true,
			Education:    true,
			Skills:       true,
			Languages:    true,
			Certificates: true,
		},
		SectionOrder: order,
	}
}

// IsComplete reports whether a CV carries enough content to export:
// a name, a summary, and at least one experience and education entry.
func IsComplete(data CVData) bool {
	if strings.TrimSpace(data.PersonalInfo.FullName) == "" {
		return false
	}
	if strings.TrimSpace(data.Summary) == "" {
		return false
	}
	return len(data.Experience) > 0 && len(data.Education) > 0
}

// HasContent reports whether a CV has any real substance beyond the
// empty default. Used by AI scoring to reject blank documents.
func HasContent(data CVData) bool {
	return strings.TrimSpace(data.PersonalInfo.FullName) != "" ||
		strings.TrimSpace(data.Summary) != "" ||
		len(data.Experience) > 0 ||
		len(data.Education) > 0 ||
		len(data.Skills) > 0
}

// IDGenerator produces entity identifiers. Tests inject deterministic
// sequences; production uses UUIDs.
type IDGenerator func() string

// Factory builds CV sub-entities with defaults and fresh identifiers.
// A supplied id is preserved verbatim so entities restored from storage
// keep their identity.
type Factory struct {
	NewID IDGenerator
}

// DefaultFactory is the production factory backed by crypto-random UUIDs.
var DefaultFactory = Factory{NewID: uuid.NewString}

func (f Factory) id(supplied string) string {
	if supplied != "" {
		return supplied
	}
	return f.NewID()
}

func (f Factory) NewExperience(partial Experience) Experience {
	partial.ID = f.id(partial.ID)
	if partial.Achievements == nil {
		partial.Achievements = []string{}
	}
	return partial
}

func (f Factory) NewEducation(partial Education) Education {
	partial.ID = f.id(partial.ID)
	return partial
}

func (f Factory) NewSkill(partial Skill) Skill {
	partial.ID = f.id(partial.ID)
	if partial.Level == "" {
		partial.Level = SkillIntermediate
	}
	return partial
}

func (f Factory) NewLanguage(partial Language) Language {
	partial.ID = f.id(partial.ID)
	if partial.Proficiency == "" {
		partial.Proficiency = ProficiencyConversational
	}
	return partial
}

func (f Factory) NewCertificate(partial Certificate) Certificate {
	partial.ID = f.id(partial.ID)
	return partial
}

func NewExperience(partial Experience) Experience   { return DefaultFactory.NewExperience(partial) }
func NewEducation(partial Education) Education      { return DefaultFactory.NewEducation(partial) }
func NewSkill(partial Skill) Skill                  { return DefaultFactory.NewSkill(partial) }
func NewLanguage(partial Language) Language         { return DefaultFactory.NewLanguage(partial) }
func NewCertificate(partial Certificate) Certificate {
	return DefaultFactory.NewCertificate(partial)
}

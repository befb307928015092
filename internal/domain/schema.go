package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Permissive email shape: local@domain.tld. Deliberately loose; the
// goal is catching obvious typos, not RFC 5322 compliance.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// FieldError pins a validation message to a field path such as
// "personalInfo.fullName" or "experience[0].company".
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// CVDataResult is the outcome of ParseCVData: either a valid value or
// the full list of field errors, never both.
type CVDataResult struct {
	Valid  bool
	Value  CVData
	Errors []FieldError
}

// FieldMap flattens the error list into path -> message.
func (r CVDataResult) FieldMap() map[string]string {
	if r.Valid {
		return nil
	}
	m := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, seen := m[e.Path]; !seen {
			m[e.Path] = e.Message
		}
	}
	return m
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

type errlist struct{ errs []FieldError }

func (l *errlist) add(path, message string) {
	l.errs = append(l.errs, FieldError{Path: path, Message: message})
}

func (l *errlist) required(path, value string) {
	if blank(value) {
		l.add(path, "is required")
	}
}

// ParseCVData validates a full CV aggregate. It never mutates or
// normalizes its input: valid data is returned structurally identical.
func ParseCVData(data CVData) CVDataResult {
	var l errlist

	validatePersonalInfo(&l, "personalInfo", data.PersonalInfo)

	for i, exp := range data.Experience {
		validateExperience(&l, fmt.Sprintf("experience[%d]", i), exp)
	}
	for i, edu := range data.Education {
		validateEducation(&l, fmt.Sprintf("education[%d]", i), edu)
	}
	for i, skill := range data.Skills {
		validateSkill(&l, fmt.Sprintf("skills[%d]", i), skill)
	}
	for i, lang := range data.Languages {
		validateLanguage(&l, fmt.Sprintf("languages[%d]", i), lang)
	}
	for i, cert := range data.Certificates {
		validateCertificate(&l, fmt.Sprintf("certificates[%d]", i), cert)
	}

	validateSectionOrder(&l, "sectionOrder", data.SectionOrder)

	if len(l.errs) > 0 {
		return CVDataResult{Valid: false, Errors: l.errs}
	}
	return CVDataResult{Valid: true, Value: data}
}

func validatePersonalInfo(l *errlist, path string, info PersonalInfo) {
	l.required(path+".fullName", info.FullName)
	if !blank(info.Email) && !ValidEmail(info.Email) {
		l.add(path+".email", "must be a valid email address")
	}
}

func validateExperience(l *errlist, path string, exp Experience) {
	l.required(path+".id", exp.ID)
	l.required(path+".company", exp.Company)
	l.required(path+".position", exp.Position)
	// current=true alongside a set endDate is accepted; callers are
	// expected to clear endDate when marking a position current.
}

func validateEducation(l *errlist, path string, edu Education) {
	l.required(path+".id", edu.ID)
	l.required(path+".institution", edu.Institution)
	l.required(path+".degree", edu.Degree)
	l.required(path+".field", edu.Field)
}

func validateSkill(l *errlist, path string, skill Skill) {
	l.required(path+".id", skill.ID)
	l.required(path+".name", skill.Name)
	if !skill.Level.Valid() {
		l.add(path+".level", "must be one of beginner, intermediate, advanced, expert")
	}
}

func validateLanguage(l *errlist, path string, lang Language) {
	l.required(path+".id", lang.ID)
	l.required(path+".name", lang.Name)
	if !lang.Proficiency.Valid() {
		l.add(path+".proficiency", "must be one of basic, conversational, professional, native")
	}
}

func validateCertificate(l *errlist, path string, cert Certificate) {
	l.required(path+".id", cert.ID)
	l.required(path+".name", cert.Name)
	l.required(path+".issuer", cert.Issuer)
}

// validateSectionOrder requires exactly the optional section keys, each
// appearing once. Order values themselves are free-form; only the key
// set is structural.
func validateSectionOrder(l *errlist, path string, order []SectionOrderEntry) {
	seen := make(map[string]bool, len(order))
	for i, entry := range order {
		entryPath := fmt.Sprintf("%s[%d].id", path, i)
		valid := false
		for _, key := range OrderedSectionKeys {
			if entry.ID == key {
				valid = true
				break
			}
		}
		if !valid {
			l.add(entryPath, "unknown section key")
			continue
		}
		if seen[entry.ID] {
			l.add(entryPath, "duplicate section key")
			continue
		}
		seen[entry.ID] = true
	}
	for _, key := range OrderedSectionKeys {
		if !seen[key] {
			l.add(path, "missing section key "+key)
		}
	}
}

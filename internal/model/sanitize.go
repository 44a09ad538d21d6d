package model

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
)

// Sanitize converts loosely shaped extraction output into a ResumeData.
// It never fails: absent or malformed fields take their zero value, and any
// unexpected panic yields Empty().
func Sanitize(raw map[string]interface{}) ResumeData {
	if raw == nil {
		return Empty()
	}
	return SanitizeValue(raw)
}

// SanitizeJSON decodes b keeping object key order and sanitizes the result.
// Invalid JSON yields Empty().
func SanitizeJSON(b []byte) ResumeData {
	v, err := decodeOrdered(b)
	if err != nil {
		slog.Warn("sanitize: invalid json, using empty resume", "error", err)
		return Empty()
	}
	return SanitizeValue(v)
}

// SanitizeValue sanitizes any decoded JSON value. Values that are not
// objects yield Empty().
func SanitizeValue(v interface{}) (out ResumeData) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("sanitize: recovered from panic, using empty resume", "panic", r)
			out = Empty()
		}
	}()

	obj, ok := asObject(v)
	if !ok {
		return Empty()
	}

	out = Empty()
	out.Name = toString(obj.values["name"])
	out.Title = toString(obj.values["title"])
	out.RequisitionNumber = toString(obj.values["requisitionNumber"])
	out.ProfessionalSummary = toStringList(obj.values["professionalSummary"])

	// summarySections and subsections are aliases; whichever carries items
	// wins, summarySections first.
	sections := toSections(obj.values["summarySections"])
	if len(sections) == 0 {
		sections = toSections(obj.values["subsections"])
	}
	out.SummarySections = sections
	out.Subsections = copySections(sections)

	if arr, ok := obj.values["employmentHistory"].([]interface{}); ok {
		for _, it := range arr {
			if jo, ok := asObject(it); ok {
				out.EmploymentHistory = append(out.EmploymentHistory, toJob(jo))
			}
		}
	}

	if arr, ok := obj.values["education"].([]interface{}); ok {
		for _, it := range arr {
			if eo, ok := asObject(it); ok {
				out.Education = append(out.Education, Education{
					Degree:      toString(eo.values["degree"]),
					AreaOfStudy: toString(eo.values["areaOfStudy"]),
					School:      toString(eo.values["school"]),
					Location:    toString(eo.values["location"]),
					Date:        toString(eo.values["date"]),
					WasAwarded:  toAwarded(eo.values["wasAwarded"]),
				})
			}
		}
	}

	if arr, ok := obj.values["certifications"].([]interface{}); ok {
		for _, it := range arr {
			switch c := it.(type) {
			case string:
				out.Certifications = append(out.Certifications, Certification{Name: c})
			default:
				co, ok := asObject(c)
				if !ok {
					continue
				}
				out.Certifications = append(out.Certifications, Certification{
					Name:                toString(co.values["name"]),
					IssuedBy:            toString(co.values["issuedBy"]),
					DateObtained:        toString(co.values["dateObtained"]),
					CertificationNumber: toString(co.values["certificationNumber"]),
					ExpirationDate:      toString(co.values["expirationDate"]),
				})
			}
		}
	}

	if so, ok := asObject(obj.values["technicalSkills"]); ok {
		out.TechnicalSkills = sanitizeTechnicalSkills(so)
	}

	if arr, ok := obj.values["skillCategories"].([]interface{}); ok {
		for _, it := range arr {
			co, ok := asObject(it)
			if !ok {
				continue
			}
			cat := SkillCategory{
				CategoryName:  toString(co.values["categoryName"]),
				Skills:        toStringList(co.values["skills"]),
				SubCategories: []SubCategory{},
			}
			if subs, ok := co.values["subCategories"].([]interface{}); ok {
				for _, s := range subs {
					if sub, ok := asObject(s); ok {
						cat.SubCategories = append(cat.SubCategories, SubCategory{
							Name:   toString(sub.values["name"]),
							Skills: toStringList(sub.values["skills"]),
						})
					}
				}
			}
			out.SkillCategories = append(out.SkillCategories, cat)
		}
	}

	return out
}

// ToMap converts r back into the generic shape used by schema validation.
func (r ResumeData) ToMap() map[string]interface{} {
	b, err := json.Marshal(r)
	if err != nil {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]interface{}{}
	}
	return m
}

func toJob(o orderedObject) Job {
	job := Job{
		CompanyName:      toString(o.values["companyName"]),
		RoleName:         toString(o.values["roleName"]),
		WorkPeriod:       toString(o.values["workPeriod"]),
		Location:         toString(o.values["location"]),
		Department:       toString(o.values["department"]),
		SubRole:          toString(o.values["subRole"]),
		Responsibilities: toStringList(o.values["responsibilities"]),
		Projects:         []Project{},
		Subsections:      toSections(o.values["subsections"]),
		KeyTechnologies:  toString(o.values["keyTechnologies"]),
	}
	if arr, ok := o.values["projects"].([]interface{}); ok {
		for _, it := range arr {
			po, ok := asObject(it)
			if !ok {
				continue
			}
			job.Projects = append(job.Projects, Project{
				ProjectName:             toString(po.values["projectName"]),
				Title:                   toString(po.values["title"]),
				Name:                    toString(po.values["name"]),
				ProjectTitle:            toString(po.values["projectTitle"]),
				ProjectLocation:         toString(po.values["projectLocation"]),
				ProjectResponsibilities: toStringList(po.values["projectResponsibilities"]),
				KeyTechnologies:         toString(po.values["keyTechnologies"]),
			})
		}
	}
	return job
}

func sanitizeTechnicalSkills(o orderedObject) TechnicalSkills {
	out := TechnicalSkills{}
	for _, k := range o.keys {
		out = append(out, SkillGroup{Category: k, Skills: toStringList(o.values[k])})
	}
	return out
}

func toSections(v interface{}) []Section {
	out := []Section{}
	arr, ok := v.([]interface{})
	if !ok {
		return out
	}
	for _, it := range arr {
		so, ok := asObject(it)
		if !ok {
			continue
		}
		out = append(out, Section{
			Title:   toString(so.values["title"]),
			Content: toStringList(so.values["content"]),
		})
	}
	return out
}

func copySections(in []Section) []Section {
	out := make([]Section, 0, len(in))
	for _, s := range in {
		content := make([]string, len(s.Content))
		copy(content, s.Content)
		out = append(out, Section{Title: s.Title, Content: content})
	}
	return out
}

// toString accepts strings and numbers; everything else is "".
func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// toStringList accepts an array of scalars or a single string.
func toStringList(v interface{}) []string {
	out := []string{}
	switch t := v.(type) {
	case []interface{}:
		for _, it := range t {
			switch it.(type) {
			case string, json.Number, float64, int, int64:
				out = append(out, toString(it))
			}
		}
	case []string:
		out = append(out, t...)
	case string:
		if strings.TrimSpace(t) != "" {
			out = append(out, t)
		}
	}
	return out
}

// toAwarded defaults to true; only an explicit negative turns it off.
func toAwarded(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "no", "false", "n", "0":
			return false
		}
	}
	return true
}

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SkillGroup is one entry of the legacy flat skills mapping.
type SkillGroup struct {
	Category string
	Skills   []string
}

// TechnicalSkills is the legacy category -> skills mapping. It is kept as an
// ordered list so categories render in the order the resume listed them; on
// the wire it is a JSON object.
type TechnicalSkills []SkillGroup

func (t TechnicalSkills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(g.Category)
		if err != nil {
			return nil, err
		}
		skills := g.Skills
		if skills == nil {
			skills = []string{}
		}
		v, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (t *TechnicalSkills) UnmarshalJSON(b []byte) error {
	obj, err := decodeOrdered(b)
	if err != nil {
		return err
	}
	m, ok := obj.(orderedObject)
	if !ok {
		return fmt.Errorf("technicalSkills: expected object, got %T", obj)
	}
	*t = sanitizeTechnicalSkills(m)
	return nil
}

// Lookup returns the skills listed under category.
func (t TechnicalSkills) Lookup(category string) ([]string, bool) {
	for _, g := range t {
		if g.Category == category {
			return g.Skills, true
		}
	}
	return nil, false
}

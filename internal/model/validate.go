package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var resumeSchema []byte

// ValidateMap validates a generic map against the resume schema. Validation
// is advisory: callers sanitize regardless and only report the violations.
func ValidateMap(m map[string]interface{}) error {
	msgs, err := Violations(m)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// Violations lists every way m departs from the resume schema.
func Violations(m map[string]interface{}) ([]string, error) {
	return ValidateAgainst(gojsonschema.NewBytesLoader(resumeSchema), m)
}

// ValidateResume validates an already sanitized resume.
func ValidateResume(r ResumeData) error {
	return ValidateMap(r.ToMap())
}

// ValidateAgainst checks doc against schema and returns one message per
// violation. err is only set when the schema itself cannot be used.
func ValidateAgainst(schema gojsonschema.JSONLoader, doc interface{}) ([]string, error) {
	res, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, err
	}
	if res.Valid() {
		return nil, nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return msgs, nil
}

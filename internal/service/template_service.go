// internal/service/template_service.go
package service

import (
	"strings"
)

// RenderTemplate replaces {key} placeholders with values from data.
// Empty values render as an empty string.
func RenderTemplate(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

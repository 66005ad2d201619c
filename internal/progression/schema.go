package progression

import (
	"embed"

	"github.com/osse101/pomoquest/internal/validation"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// tableValidator checks rule tables before they are decoded
var tableValidator = validation.NewSchemaValidator(schemaFS)

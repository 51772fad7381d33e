package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/config"
	"github.com/invopop/jsonschema"
)

func main() {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "toml",
	}

	schema := r.Reflect(&config.Config{})
	schema.Title = "zmkman Configuration"
	schema.Description = "Schema for zmkman.toml at the config repo root."

	// Every field has a derived default, so nothing is required
	schema.Required = nil

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	if err := os.WriteFile("zmkman.schema.json", data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated config schema at zmkman.schema.json")
}

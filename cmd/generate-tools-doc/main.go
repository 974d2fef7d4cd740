package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/websuite/web-mcp/pkg/mcp"
	"github.com/websuite/web-mcp/pkg/tooldef"
)

func main() {
	defs := mcp.AllToolDefs()

	if err := generateMarkdown(defs, "TOOLS.md"); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating TOOLS.md: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ TOOLS.md generated successfully")
	fmt.Printf("  Documented %d tools:\n", len(defs))
	for i := range defs {
		fmt.Printf("    - %s\n", defs[i].Name)
	}
	fmt.Println("\n💡 Reminder: When adding a new tool, register it in pkg/mcp/tools.go AllToolDefs()")
}

func generateMarkdown(defs []tooldef.ToolDef, filename string) error {
	var sb strings.Builder

	sb.WriteString("<!-- This file is auto-generated. Do not edit manually. -->\n")
	sb.WriteString("<!-- Run 'go run ./cmd/generate-tools-doc' to regenerate. -->\n\n")

	sb.WriteString("# Available Tools\n\n")
	sb.WriteString("This MCP server exposes the following web-data tools:\n\n")

	for i := range defs {
		def := &defs[i]
		sb.WriteString(fmt.Sprintf("## `%s`\n\n", def.Name))
		sb.WriteString(fmt.Sprintf("> %s\n\n", strings.TrimSpace(def.Description)))

		if len(def.Params) > 0 {
			sb.WriteString("**Parameters:**\n\n")
			sb.WriteString("| Name | Type | Required | Description |\n")
			sb.WriteString("| :--- | :--- | :------- | :---------- |\n")
			for _, p := range def.Params {
				required := "no"
				if p.Required {
					required = "yes"
				}
				desc := p.Description
				if len(p.Enum) > 0 {
					desc += fmt.Sprintf(" One of: %s.", strings.Join(p.Enum, ", "))
				}
				sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n", p.Name, p.Type, required, desc))
			}
			sb.WriteString("\n")
		}

		schemaJSON, err := json.MarshalIndent(def.ToJSONSchema(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling schema for %s: %w", def.Name, err)
		}
		sb.WriteString("**Input Schema:**\n\n")
		sb.WriteString("```json\n")
		sb.Write(schemaJSON)
		sb.WriteString("\n```\n\n")
	}

	return os.WriteFile(filename, []byte(sb.String()), 0o644)
}

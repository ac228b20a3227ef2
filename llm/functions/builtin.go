package functions

import "encoding/json"

// DefaultSpecs returns the built-in function set registered when the
// configuration supplies none: the marketing-automation service-configuration
// surface plus CRM lead creation.
func DefaultSpecs() []FunctionSpec {
	return []FunctionSpec{
		{
			Name:        "mcp_discover_services",
			Description: "Discover what external services can be configured for marketing automation. Filter by category: lead_generation, email, data_enrichment, or 'all'.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"category": {
						"type": "string",
						"enum": ["lead_generation", "email", "data_enrichment", "all"],
						"description": "Category of services to discover",
						"default": "all"
					}
				}
			}`),
		},
		{
			Name:        "mcp_get_service_info",
			Description: "Get detailed information about a specific service including capabilities, pricing, and requirements.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"service_name": {
						"type": "string",
						"description": "Service identifier (e.g., 'linkedin', 'sendgrid', 'hunter_io')"
					}
				},
				"required": ["service_name"]
			}`),
		},
		{
			Name:        "mcp_configure_service",
			Description: "Configure an external service with API credentials. The AI will guide you through the process step-by-step.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"service_name": {
						"type": "string",
						"description": "Service identifier (e.g., 'linkedin', 'sendgrid')"
					},
					"credentials": {
						"type": "object",
						"description": "Service credentials (API keys, tokens, etc.)"
					},
					"settings": {
						"type": "object",
						"description": "Optional service-specific settings"
					},
					"config_name": {
						"type": "string",
						"description": "Configuration name (default: 'default')",
						"default": "default"
					}
				},
				"required": ["service_name", "credentials"]
			}`),
		},
		{
			Name:        "mcp_test_service",
			Description: "Test if a configured service connection is working. Validates credentials and API access.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"service_name": {
						"type": "string",
						"description": "Service identifier"
					},
					"config_id": {
						"type": "integer",
						"description": "Optional configuration ID to test specific config"
					}
				},
				"required": ["service_name"]
			}`),
		},
		{
			Name:        "mcp_list_services",
			Description: "List all currently configured services and their status (active, failed, pending).",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        "mcp_update_service_config",
			Description: "Update configuration for an existing service. Can update credentials or settings.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"service_name": {
						"type": "string",
						"description": "Service identifier"
					},
					"updates": {
						"type": "object",
						"description": "Configuration updates (credentials, settings, etc.)"
					}
				},
				"required": ["service_name", "updates"]
			}`),
		},
		{
			Name:        "mcp_get_config_guide",
			Description: "Get step-by-step guide for configuring a specific service. Includes where to find API keys and setup instructions.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"service_name": {
						"type": "string",
						"description": "Service identifier"
					}
				},
				"required": ["service_name"]
			}`),
		},
		{
			Name:        "mcp_search_marketplace",
			Description: "Search marketplace for services by use case, integration type, or category.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"use_case": {
						"type": "string",
						"description": "Search by use case (e.g., 'lead generation', 'email marketing')"
					},
					"integration_type": {
						"type": "string",
						"description": "Search by integration type"
					},
					"category": {
						"type": "string",
						"enum": ["lead_generation", "email", "data_enrichment"],
						"description": "Filter by category"
					}
				}
			}`),
		},
		{
			Name:        "crm_create_lead",
			Description: "Create a new lead in the CRM with contact details.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"name": {
						"type": "string",
						"description": "Full name of the lead"
					},
					"email": {
						"type": "string",
						"description": "Email address of the lead"
					}
				},
				"required": ["name"]
			}`),
		},
	}
}

package generation

import "github.com/google/generative-ai-go/genai"

// Schemas are declared twice on purpose: the genai form is sent to the
// provider to constrain decoding, and the JSON Schema form re-checks
// the payload after the round trip before anything is persisted.

// resumeGenSchema is the provider-side response schema for the resume
// document call.
var resumeGenSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"personalInfo": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":      {Type: genai.TypeString},
				"email":     {Type: genai.TypeString},
				"phone":     {Type: genai.TypeString},
				"location":  {Type: genai.TypeString},
				"linkedin":  {Type: genai.TypeString},
				"portfolio": {Type: genai.TypeString},
			},
			Required: []string{"name"},
		},
		"summary": {Type: genai.TypeString},
		"experience": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"company":      {Type: genai.TypeString},
					"position":     {Type: genai.TypeString},
					"duration":     {Type: genai.TypeString},
					"achievements": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"skills":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"company", "position"},
			},
		},
		"education": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"institution":  {Type: genai.TypeString},
					"degree":       {Type: genai.TypeString},
					"field":        {Type: genai.TypeString},
					"year":         {Type: genai.TypeString},
					"achievements": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"institution", "degree"},
			},
		},
		"skills": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"technical": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"soft":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
		},
		"projects": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":        {Type: genai.TypeString},
					"description":  {Type: genai.TypeString},
					"technologies": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"impact":       {Type: genai.TypeString},
				},
			},
		},
		"certifications": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"languages":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"personalInfo", "summary", "experience", "skills"},
}

// insightsGenSchema is the provider-side response schema for the
// career insights call.
var insightsGenSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"personalityProfile": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"workStyle":   {Type: genai.TypeString},
				"strengths":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"preferences": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
		},
		"idealRoles": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":      {Type: genai.TypeString},
					"reasoning":  {Type: genai.TypeString},
					"matchScore": {Type: genai.TypeNumber},
				},
			},
		},
		"environments": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"preferred": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"toAvoid":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
		},
		"careerPath": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"shortTerm": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"longTerm":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
		},
		"redFlags":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"recommendations": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"personalityProfile", "idealRoles", "recommendations", "environments", "careerPath", "redFlags"},
}

// resumeJSONSchema re-validates the resume payload after decoding.
const resumeJSONSchema = `{
	"type": "object",
	"required": ["personalInfo", "summary", "experience", "skills"],
	"properties": {
		"personalInfo": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"email": {"type": "string"},
				"phone": {"type": "string"},
				"location": {"type": "string"},
				"linkedin": {"type": "string"},
				"portfolio": {"type": "string"}
			}
		},
		"summary": {"type": "string"},
		"experience": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["company", "position"],
				"properties": {
					"company": {"type": "string"},
					"position": {"type": "string"},
					"duration": {"type": "string"},
					"achievements": {"type": "array", "items": {"type": "string"}},
					"skills": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"education": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["institution", "degree"],
				"properties": {
					"institution": {"type": "string"},
					"degree": {"type": "string"},
					"field": {"type": "string"},
					"year": {"type": "string"},
					"achievements": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"skills": {
			"type": "object",
			"properties": {
				"technical": {"type": "array", "items": {"type": "string"}},
				"soft": {"type": "array", "items": {"type": "string"}}
			}
		},
		"projects": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"title": {"type": "string"},
					"description": {"type": "string"},
					"technologies": {"type": "array", "items": {"type": "string"}},
					"impact": {"type": "string"}
				}
			}
		},
		"certifications": {"type": "array", "items": {"type": "string"}},
		"languages": {"type": "array", "items": {"type": "string"}}
	}
}`

// insightsJSONSchema re-validates the insights payload after decoding.
const insightsJSONSchema = `{
	"type": "object",
	"required": ["personalityProfile", "idealRoles", "recommendations", "environments", "careerPath", "redFlags"],
	"properties": {
		"personalityProfile": {
			"type": "object",
			"properties": {
				"workStyle": {"type": "string"},
				"strengths": {"type": "array", "items": {"type": "string"}},
				"preferences": {"type": "array", "items": {"type": "string"}}
			}
		},
		"idealRoles": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"title": {"type": "string"},
					"reasoning": {"type": "string"},
					"matchScore": {"type": "number"}
				}
			}
		},
		"environments": {
			"type": "object",
			"properties": {
				"preferred": {"type": "array", "items": {"type": "string"}},
				"toAvoid": {"type": "array", "items": {"type": "string"}}
			}
		},
		"careerPath": {
			"type": "object",
			"properties": {
				"shortTerm": {"type": "array", "items": {"type": "string"}},
				"longTerm": {"type": "array", "items": {"type": "string"}}
			}
		},
		"redFlags": {"type": "array", "items": {"type": "string"}},
		"recommendations": {"type": "array", "items": {"type": "string"}}
	}
}`

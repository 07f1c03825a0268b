// Package ai holds the prompt templates and response schemas shared by
// the command and query handlers.
package ai

import "fmt"

// Schemas use the Gemini responseSchema dialect (a JSON Schema subset).
// Constraining output server-side is far more reliable than asking the
// model to emit clean JSON and parsing what comes back.

// ConversationSchema enforces the {title, content} shape for answers
// appended to the research graph.
func ConversationSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"title": map[string]interface{}{
				"type":        "string",
				"description": "A concise, 5-10 word title for the generated content.",
			},
			"content": map[string]interface{}{
				"type":        "string",
				"description": "The full, detailed response to the user's question.",
			},
		},
		"required": []string{"title", "content"},
	}
}

// CategorizationSchema enforces the market snapshot generated at project
// creation.
func CategorizationSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"type":             map[string]interface{}{"type": "string"},
			"market":           map[string]interface{}{"type": "string"},
			"target":           map[string]interface{}{"type": "string"},
			"main_competitors": map[string]interface{}{"type": "string"},
			"trendAnalysis":    map[string]interface{}{"type": "string"},
		},
		"required": []string{"type", "market", "target", "main_competitors", "trendAnalysis"},
	}
}

// RatingSchema enforces the VC score card shape.
func RatingSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"opportunity": map[string]interface{}{"type": "integer"},
			"problem":     map[string]interface{}{"type": "integer"},
			"feasibility": map[string]interface{}{"type": "integer"},
			"why_now":     map[string]interface{}{"type": "integer"},
			"feedback":    map[string]interface{}{"type": "string"},
		},
		"required": []string{"opportunity", "problem", "feasibility", "why_now", "feedback"},
	}
}

// IdeaAnalysisSchema enforces the {analysis, variations} shape.
func IdeaAnalysisSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"analysis": map[string]interface{}{"type": "string"},
			"variations": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
		"required": []string{"analysis", "variations"},
	}
}

// CategorizationPrompt asks for a terse market snapshot of a new idea.
func CategorizationPrompt(context string) string {
	return fmt.Sprintf(`Based on this initial startup idea, analyze the market and identify a key opportunity. Provide your response ONLY as a valid JSON object with keys: "id", "type", "market", "target", "main_competitors", "trendAnalysis". Please write max 2-3 words per key, 1 word per key is preferred.

Idea:
%s`, context)
}

// ConversationPrompt answers a question in the context of the node's
// ancestor chain.
func ConversationPrompt(history, question, documents string) string {
	return fmt.Sprintf(`You are an expert research assistant. Given the conversation history, intelligently answer the user's question and provide a suitable title for your response.

Conversation History (for context):
%s

Relevant Documents:
%s

User's Question:
%s`, history, documents, question)
}

// RegenerationPrompt rewrites a node's content from its parent context.
func RegenerationPrompt(history, question string) string {
	return fmt.Sprintf("History: %s\n\nQuestion: %s\n\nAnswer:", history, question)
}

// SynthesisPrompt turns the whole graph outline into a Markdown report.
func SynthesisPrompt(notes string) string {
	return fmt.Sprintf(`You are a professional technical writer and business analyst. Your task is to synthesize the following complete research graph, which is represented as a structured, indented text, into a single, comprehensive, and well-structured report in Markdown format.
You must identify the different branches of thought, compare and contrast them, and form a cohesive narrative. The final document should have a clear introduction, body, and conclusion.

Full Research Graph:
---
%s
---

Generate the full Markdown report now:`, notes)
}

// RatingPrompt asks for a brutally honest VC assessment of the research.
func RatingPrompt(notes string) string {
	return fmt.Sprintf(`You are a seasoned venture capitalist. Critically assess the following research notes. Be brutally honest - do not inflate scores. We want to challenge the founder. Always assume this is a pitch from a first-time founder who needs real guidance.

Based on the research below, evaluate the startup across four axes:

1. 'opportunity' (0-10): Evaluate the market size, urgency, and long-term potential.
2. 'problem' (0-10): Is the problem clearly defined and significant for a real audience?
3. 'feasibility' (0-10): Can this be realistically executed?
4. 'why_now' (0-10): Is there a strong, time-sensitive reason this should exist now?

Your 'feedback' must include exactly 3 pros and 3 cons, separated by newlines. The tone should be firm but constructive. Do not hold back if the idea is weak. Example for feedback: "Pro: Large addressable market.\nPro: Clear value proposition.\nPro: Strong team-market fit.\nCon: High customer acquisition cost.\nCon: Potential regulatory hurdles.\nCon: Unclear defensibility."

Here are the research notes:
%s`, notes)
}

// StealthPitchPrompt writes a covert validation post for a community.
func StealthPitchPrompt(ideaSummary, validationMetric string) string {
	return fmt.Sprintf(`You are a stealth marketing expert. Your goal is to validate a startup idea without revealing that you are building it. You will write a short post or message designed to be shared on a platform like Reddit, LinkedIn, or a specific forum to gauge real-world user reaction.

Startup Idea Summary (based on research notes):
%s

The primary goal is to validate the following metric: **%s**

Instructions:
1.  Do NOT sound like an advertisement.
2.  Frame the post as a question, a personal story, or a search for a solution.
3.  The post should be written to provoke comments and discussions that directly help validate the chosen metric.
4.  Suggest the best online community or platform (e.g., 'a subreddit like r/Entrepreneur', 'a LinkedIn post targeting marketing managers') where this pitch should be posted.

Write the stealth pitch now.`, ideaSummary, validationMetric)
}

// IdeaAnalysisPrompt asks for a critique plus five variations of a raw
// idea. The example output doubles as a formatting anchor for weaker
// models that ignore the schema.
func IdeaAnalysisPrompt(idea string) string {
	return fmt.Sprintf(`You are an expert startup and product analyst. A user has submitted the following project idea: "%s".

Your job is to provide a critical analysis and creative variations.

**1. A Critical Analysis:**
Provide a brutally honest evaluation in well-structured Markdown. Consider:
- **Market Demand:** Is this a real need or a gimmick?
- **Feasibility:** Is it technically and financially viable?
- **Competitive Landscape:** Does this already exist in some form?
- **Potential Issues:** What are the legal, ethical, or social red flags?

**2. 5 Creative Variations:**
Generate five distinct variations. Each must be a single string with the format 'Title: Description'.
- The **Title** must be short and contain no colons.
- The **Description** must be imaginative and formatted in valid Markdown.

**Response Format Rules (Follow Strictly):**
You MUST respond with ONLY a single, valid JSON object. Do not output any text, notes, or explanations before or after the JSON object.

- The JSON MUST have two keys: `+"`\"analysis\"`"+` and `+"`\"variations\"`"+`.
- All string values within the JSON must be properly escaped. Specifically, any double quotes (") inside a string must be escaped with a backslash (\").
- Do not use any non-standard or invisible whitespace characters.`, idea)
}

// NoDocumentsSentinel is the retrieval context used when RAG is not
// requested for a conversation turn.
const NoDocumentsSentinel = "No documents requested."

// PassageSeparator joins retrieved passages in the prompt context.
const PassageSeparator = "\n---\n"

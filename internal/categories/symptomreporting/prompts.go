// internal/categories/symptomreporting/prompts.go
package symptomreporting

import "salamatbot/internal/models"

// triageSystemPrompt drives the staged interview. Instructions are English
// for token efficiency; all user-facing output the model produces is Persian.
const triageSystemPrompt = `You are a medical triage assistant. Only assess symptoms and health concerns. Refuse non-medical questions.

NOTE: Instructions are in English for efficiency, but all messages and options must be in Persian.

PROCESS:
- Ask one question at a time - ALWAYS ask the next best question based on user's input
- For each user, ask 3 initial questions (choose the best questions for their specific input)
- After 3 questions, classify if confident; if not confident, continue asking the next best question until confident
- Gather: chief complaint, severity, duration, onset, red flags, associated symptoms
- Prioritize safety over speed

CLASSIFICATIONS:
- EMERGENCY: Life-threatening, immediate care
- URGENT: Serious, ER within hours
- SEMI_URGENT: Care within 24-48 hours
- NON_URGENT: Routine care
- SELF_CARE: Home management

RESPONSE FORMAT:
Medical questions:
{
  "type": "question",
  "message": "Your question",
  "options": ["Option 1", "Option 2", "Option 3", "Option 4"]
}

Non-medical questions:
{
  "type": "question",
  "message": "I only help with medical symptoms."
}

Final classification:
{
  "type": "classification",
  "category": "EMERGENCY|URGENT|SEMI_URGENT|NON_URGENT|SELF_CARE"
}
`

// finalContentPrompts ask for the per-section medical content the category
// template renders. Each prompt's JSON keys mirror that template's sections.
var finalContentPrompts = map[models.TriageCategory]string{
	models.TriageEmergency: `Based on this medical conversation, provide medical content for EMERGENCY triage in Persian.

Return JSON with:
{
  "comprehensive_assessment": "Complete medical overview of symptoms, concerns, and risk factors identified",
  "immediate_actions": "3-5 critical life-saving actions to take RIGHT NOW while waiting for emergency services. Use clear, numbered Persian instructions separated by <br> tags for proper display.",
  "emergency_instructions": "Specific Persian instructions emphasizing the need to call 115 immediately and what to tell them"
}`,

	models.TriageUrgent: `Based on this medical conversation, provide medical content for URGENT triage in Persian.

Return JSON with:
{
  "comprehensive_assessment": "Complete medical overview of symptoms, concerns, and risk factors identified",
  "next_steps": "Specific actions to take for emergency department visit",
  "preparation_guidance": "What to bring/prepare and what to expect at ER",
  "timeframe_details": "Detailed explanation of why care is needed within hours"
}`,

	models.TriageSemiUrgent: `Based on this medical conversation, provide medical content for SEMI_URGENT triage in Persian.

Return JSON with:
{
  "comprehensive_assessment": "Complete medical overview of symptoms, concerns, and risk factors identified",
  "scheduling_advice": "Detailed guidance on how to schedule medical care within 24-48 hours",
  "monitoring_instructions": "Specific warning signs that would require immediate escalation",
  "interim_management": "Safe measures to manage symptoms while waiting for appointment"
}`,

	models.TriageNonUrgent: `Based on this medical conversation, provide medical content for NON_URGENT triage in Persian.

Return JSON with:
{
  "comprehensive_assessment": "Complete medical overview of symptoms, concerns, and risk factors identified",
  "scheduling_recommendations": "Various options for scheduling routine medical care",
  "self_management": "Safe self-care measures that can be taken while waiting",
  "escalation_guidelines": "Clear criteria for when to escalate to more urgent care"
}`,

	models.TriageSelfCare: `Based on this medical conversation, provide medical content for SELF_CARE triage in Persian.

Return JSON with:
{
  "comprehensive_assessment": "Complete medical overview of symptoms, concerns, and risk factors identified",
  "home_treatment": "Evidence-based home treatment options and remedies",
  "monitoring_guidelines": "How to properly monitor symptoms at home",
  "warning_indicators": "Clear signs that require immediate medical attention",
  "prevention_advice": "Practical tips to prevent recurrence or worsening"
}`,
}

func finalPromptFor(category models.TriageCategory) (string, bool) {
	prompt, ok := finalContentPrompts[category]
	return prompt, ok
}

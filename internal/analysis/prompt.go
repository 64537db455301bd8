package analysis

import "fmt"

const responseSchema = `{
  "possibleConditions": [
    {
      "name": "Condition name",
      "description": "Brief description of the condition",
      "severity": "low|medium|high",
      "matchPercentage": "percentage of symptom match"
    }
  ],
  "recommendations": {
    "immediate": ["immediate actions to take"],
    "general": ["general care recommendations"],
    "followUp": ["when and why to follow up with healthcare providers"]
  },
  "urgencyLevel": "low|medium|high",
  "urgencyMessage": "Clear message about urgency level",
  "redFlags": ["warning signs that require immediate medical attention"],
  "disclaimer": "Medical disclaimer message"
}`

// BuildSymptomPrompt constructs the structured-assessment prompt for a
// free-text symptom description.
func BuildSymptomPrompt(symptoms string) string {
	return fmt.Sprintf(`
You are a medical AI assistant. Analyze the following symptoms and provide a structured medical assessment.

IMPORTANT DISCLAIMERS:
- This is for informational purposes only
- Not a substitute for professional medical advice
- Always recommend consulting healthcare providers

Patient Symptoms: %q

Please provide a JSON response with the following structure:
%s

Focus on:
1. Most likely conditions based on symptoms
2. Practical, safe recommendations
3. Clear urgency assessment
4. When to seek professional help
5. Red flag symptoms to watch for

Keep responses professional, empathetic, and medically sound.
`, symptoms, responseSchema)
}

// BuildReportPrompt constructs the prompt for an uploaded medical report or
// scan. The document itself is attached alongside the prompt.
func BuildReportPrompt() string {
	return fmt.Sprintf(`
You are a medical AI assistant. Analyze the attached medical report and provide a structured assessment of the findings.

IMPORTANT DISCLAIMERS:
- This is for informational purposes only
- Not a substitute for professional medical advice
- Always recommend consulting healthcare providers

Please provide a JSON response with the following structure:
%s

Focus on:
1. Notable findings and what they may indicate
2. Practical, safe recommendations
3. Clear urgency assessment
4. When to seek professional help

Keep responses professional, empathetic, and medically sound.
`, responseSchema)
}

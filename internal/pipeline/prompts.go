package pipeline

import (
	"fmt"
	"strings"

	"superhire/internal/storage"
)

func jobContext(job *storage.Job) string {
	return fmt.Sprintf(`Title: %s
Company: %s
Description: %s
Technical Skills: %s
Experience: %s
Ideal Profile: %s`,
		job.Title, job.Company, job.Description, job.Skills, job.Experience, job.IdealProfile)
}

func generationPrompt(job *storage.Job) string {
	return fmt.Sprintf(`You are a recruiting and selection expert with wide experience evaluating candidates for technical and non-technical positions.

Create 5 challenging, role-specific questions to evaluate candidates for the following opening:

%s

IMPORTANT GUIDELINES:
1. The questions must deeply probe the COGNITIVE ability, INTELLIGENCE, and TECHNICAL SKILLS specific to this role.
2. Completely avoid generic questions that could apply to any opening.
3. Write questions that evaluate:
   - Ability to solve complex problems related to the field
   - Logical reasoning applied to the specific context of the role
   - The technical knowledge listed in the required skills
   - Practical experience with real day-to-day situations of this role
   - Capacity for innovation and critical thinking in the role's context
4. The questions must be demanding enough to tell exceptional candidates apart from average ones.
5. Include at least one question probing how the candidate would handle a concrete problem this position could face.
6. Scale the complexity of the questions to the experience level the opening asks for.

Return only the questions as JSON, like this example:
[
  { "question": "Question 1", "type": "text" },
  { "question": "Question 2", "type": "text" }
]`, jobContext(job))
}

func analysisPrompt(job *storage.Job, candidate *storage.Candidate, transcript []questionAnswer) string {
	var qa strings.Builder
	for i, pair := range transcript {
		if i > 0 {
			qa.WriteString("\n\n")
		}
		fmt.Fprintf(&qa, "Question: %s\nAnswer: %s", pair.Question, pair.Answer)
	}

	return fmt.Sprintf(`You are a recruiting and selection expert focused on cognitive assessment.

Analyze this candidate's answers for the following opening:

%s

Candidate:
Name: %s

Questions and Answers:
%s

Evaluate the candidate based on the answers, focusing especially on:
1. Cognitive ability for the role
2. Alignment with the opening's needs
3. Growth potential
4. Strengths and weaknesses

Return your analysis as JSON, like this example:
{
  "score": 85,
  "strengths": ["Strength 1", "Strength 2", "Strength 3"],
  "weaknesses": ["Weakness 1", "Weakness 2"],
  "recommendation": "An overall recommendation about the candidate."
}

The score must be from 0 to 100, where 100 is the perfect candidate for the opening.`,
		jobContext(job), candidate.Name, qa.String())
}

func chatPrompt(job *storage.Job, candidates []*storage.Candidate, history []*storage.ChatMessage, message string) string {
	candidatesContext := "There are no candidates for this opening yet."
	if len(candidates) > 0 {
		var b strings.Builder
		b.WriteString("Information about the candidates for this opening:\n")
		for _, c := range candidates {
			fmt.Fprintf(&b, "Name: %s\nEmail: %s\nWhatsApp: %s", c.Name, c.Email, c.Whatsapp)
			if c.Score != nil {
				fmt.Fprintf(&b, "\nScore: %d/100", *c.Score)
			}
			if len(c.Strengths) > 0 {
				fmt.Fprintf(&b, "\nStrengths: %s", strings.Join(c.Strengths, ", "))
			}
			if len(c.Weaknesses) > 0 {
				fmt.Fprintf(&b, "\nWeaknesses: %s", strings.Join(c.Weaknesses, ", "))
			}
			if c.Recommendation != "" {
				fmt.Fprintf(&b, "\nRecommendation: %s", c.Recommendation)
			}
			b.WriteString("\n\n")
		}
		candidatesContext = strings.TrimRight(b.String(), "\n")
	}

	var transcript strings.Builder
	for _, msg := range history {
		speaker := "User"
		if msg.Role == storage.RoleAssistant {
			speaker = "Assistant"
		}
		fmt.Fprintf(&transcript, "%s: %s\n", speaker, msg.Content)
	}

	return fmt.Sprintf(`You are an AI assistant specialized in recruiting and selection for SuperHire AI.

OPENING CONTEXT:
%s

CANDIDATES:
%s

CONVERSATION HISTORY:
%s
INSTRUCTIONS:
1. Answer the user's question based on the opening and candidate information.
2. If the user asks for information that is not available, politely explain that you do not have it.
3. Be professional, concise, and helpful.
4. Do not invent information that is not in the supplied context.
5. If the user asks to compare candidates, use the score, strengths, and weaknesses data for a fair comparison.

User question: %s`,
		jobContext(job), candidatesContext, transcript.String(), message)
}

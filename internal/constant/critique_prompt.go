package constant

const (
	VerdictMarkerApproved         = "APPROVED"
	VerdictMarkerNeedsImprovement = "NEEDS_IMPROVEMENT"

	NoObjectivesFeedback = "No learning objectives provided."

	// Args: objective bullet list, notes text.
	EvaluationPromptV1 = `You are an educational assistant. Evaluate these student notes against the following objectives:
%s

Here are the notes:
%s

If all objectives are met, respond with:
APPROVED
<one-sentence summary>

Otherwise, respond with:
NEEDS_IMPROVEMENT
<List the missing objectives>
`

	EmailSubjectMarker = "SUBJECT:"
	EmailBodyMarker    = "BODY:"

	DefaultEmailBody = "Thank you for submitting your notes. Please check the feedback and resources provided."

	// Args: course, week, uploader, document name, verdict, feedback, course, week.
	EmailContentPromptV1 = `You are a friendly teaching assistant for %s. It's %s.
Student *%s* has uploaded their notes on **%s**,
and the system verdict is: **%s**.

Feedback from the review:
%s

Write:
1) A concise, encouraging **email subject** about their notes - keep it short and engaging.
2) A warm, motivating **email body** that:
   - Greets them by first name
   - References the %s course and %s
   - Gives specific, constructive feedback based on the review above
   - If NEEDS_IMPROVEMENT: Names what is missing and suggests practical applications or simple case studies to add
   - If APPROVED: Congratulates them with positive, specific feedback
   - If ERROR: Thanks them and explains their notes will be reviewed manually
   - Encourages them to check out the Drive folder with resources
   - Mentions this topic will be discussed further in the next class
   - Uses a professional but friendly tone
   - Includes appropriate emoji(s) (1-2 total)
   - Closes with an encouraging line and a signature

The body should be formatted as plain text with **bold** and *italics* where appropriate.

Return your answer in this exact format (no JSON, no markup):
SUBJECT: [your subject line]
BODY:
[your email body]
`
)

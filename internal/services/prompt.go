package services

import (
	"fmt"

	"alfredoptarigan/job-tracker/internal/models"
)

// SystemPrompt is sent as the system message on every insight request.
const SystemPrompt = "You are a helpful assistant."

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildInsightPrompt embeds the job specification and resume text verbatim
// into the prompt for the given request type.
func (pb *PromptBuilder) BuildInsightPrompt(requestType models.RequestType, specText, resumeText string) (string, error) {
	switch requestType {
	case models.RequestMockInterview:
		return pb.BuildMockInterviewPrompt(specText, resumeText), nil
	case models.RequestSuitability:
		return pb.BuildSuitabilityPrompt(specText, resumeText), nil
	case models.RequestTips:
		return pb.BuildTipsPrompt(specText, resumeText), nil
	default:
		return "", &models.InvalidRequestTypeError{Type: string(requestType)}
	}
}

// BuildMockInterviewPrompt creates prompt for a practice interview dialogue
func (pb *PromptBuilder) BuildMockInterviewPrompt(specText, resumeText string) string {
	return fmt.Sprintf(`Create a thoughtful, probable mock job interview dialogue between an interviewer and an interviewee.

JOB SPECIFICATION:
%s

APPLICANT'S RESUME:
%s

Base the interviewer's questions on the requirements in the job specification and the interviewee's answers on the experience in the resume.
The reader will use this dialogue to practice for their upcoming job interview, so keep it realistic.`,
		specText, resumeText)
}

// BuildSuitabilityPrompt creates prompt for evaluating the applicant against the role
func (pb *PromptBuilder) BuildSuitabilityPrompt(specText, resumeText string) string {
	return fmt.Sprintf(`Evaluate the suitability of this applicant for the role described below.

JOB SPECIFICATION:
%s

APPLICANT'S RESUME:
%s

Structure your evaluation as:
1. Overall verdict
2. Matching skills and experience
3. Gaps against the requirements
4. Detailed feedback`,
		specText, resumeText)
}

// BuildTipsPrompt creates prompt for preparation tips
func (pb *PromptBuilder) BuildTipsPrompt(specText, resumeText string) string {
	return fmt.Sprintf(`Provide tips and advice for this applicant to prepare for the role described below.

JOB SPECIFICATION:
%s

APPLICANT'S RESUME:
%s

Focus on what to study, which parts of their experience to highlight, and how to address any gaps.`,
		specText, resumeText)
}

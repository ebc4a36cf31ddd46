package models

type RequestType string

const (
	RequestMockInterview RequestType = "mockInterview"
	RequestSuitability   RequestType = "suitability"
	RequestTips          RequestType = "tips"
)

var RequestTypes = []RequestType{
	RequestMockInterview,
	RequestSuitability,
	RequestTips,
}

func (t RequestType) Valid() bool {
	switch t {
	case RequestMockInterview, RequestSuitability, RequestTips:
		return true
	}
	return false
}

// Column is the application column holding saved insights of this type.
func (t RequestType) Column() string {
	switch t {
	case RequestMockInterview:
		return "mock_interview_responses"
	case RequestSuitability:
		return "suitability_responses"
	case RequestTips:
		return "tips_responses"
	}
	return ""
}

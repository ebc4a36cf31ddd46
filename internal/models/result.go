package models

import "time"

type UploadResponse struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Size    int64  `json:"size"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProfileRequest struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Resumes []Resume `json:"resumes"`
}

type ProfileResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Resumes []string `json:"resumes"`
}

type CreateApplicationRequest struct {
	Role             string            `json:"role"`
	Company          string            `json:"company"`
	Status           ApplicationStatus `json:"status"`
	AppliedAt        *time.Time        `json:"applied_at"`
	InterviewDate    *time.Time        `json:"interview_date"`
	OfferDate        *time.Time        `json:"offer_date"`
	UnsuccessfulDate *time.Time        `json:"unsuccessful_date"`
	JobSpec          string            `json:"job_spec"`
	JobSpecName      string            `json:"job_spec_name"`
	ResumeName       string            `json:"resume_name"`
	Tags             []string          `json:"tags"`
	IsFavorite       bool              `json:"is_favorite"`
}

type AffectedResponse struct {
	Affected int64 `json:"affected"`
}

type BoardColumn struct {
	Status       ApplicationStatus `json:"status"`
	Applications []Application     `json:"applications"`
}

type InsightRequest struct {
	Type       RequestType `json:"type"`
	JobSpec    string      `json:"job_spec"`
	ResumeName string      `json:"resume_name"`
}

type InsightResponse struct {
	Type RequestType `json:"type"`
	Text string      `json:"text"`
}

type SaveInsightRequest struct {
	Text string `json:"text"`
}

type InsightListResponse struct {
	ApplicationID string      `json:"application_id"`
	Type          RequestType `json:"type"`
	Responses     []string    `json:"responses"`
}

type InsightSearchResult struct {
	ApplicationID string      `json:"application_id"`
	Type          RequestType `json:"type"`
	Text          string      `json:"text"`
	Score         float32     `json:"score"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Metrics struct {
	Total               int         `json:"total"`
	ByStatus            []NameCount `json:"by_status"`
	ByTag               []NameCount `json:"by_tag"`
	ByRole              []NameCount `json:"by_role"`
	PerDay              []NameCount `json:"per_day"`
	StageConversions    []NameCount `json:"stage_conversions"`
	AverageDaysToUpdate float64     `json:"average_days_to_update"`
}

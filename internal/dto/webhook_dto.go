package dto

// PullRequestEvent is the inbound GitHub webhook payload for pull-request
// events. Only the fields the pipeline consumes are modelled; anything else
// in the delivery is ignored.
type PullRequestEvent struct {
	Action      string          `json:"action" validate:"required"`
	PullRequest PullRequest     `json:"pull_request" validate:"required"`
	Repository  EventRepository `json:"repository" validate:"required"`
}

// PullRequest carries the submission reference and the candidate's marker
// body.
type PullRequest struct {
	Number  int             `json:"number" validate:"required,gt=0"`
	HTMLURL string          `json:"html_url" validate:"required,url"`
	Body    string          `json:"body"`
	Head    PullRequestHead `json:"head" validate:"required"`
	User    EventUser       `json:"user" validate:"required"`
}

// PullRequestHead identifies the branch to clone.
type PullRequestHead struct {
	Ref  string         `json:"ref" validate:"required"`
	Repo HeadRepository `json:"repo" validate:"required"`
}

// HeadRepository points at the candidate's fork.
type HeadRepository struct {
	CloneURL string `json:"clone_url" validate:"required,url"`
	Name     string `json:"name"`
}

// EventUser is the GitHub account that opened the pull request.
type EventUser struct {
	Login string `json:"login" validate:"required"`
}

// EventRepository is the assessment repository the pull request targets.
type EventRepository struct {
	Name string `json:"name" validate:"required"`
}

// WebhookOutcome summarises how a delivery was handled.
type WebhookOutcome struct {
	Ignored      bool
	SubmissionID string
}

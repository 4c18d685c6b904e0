package ai

import "errors"

var (
	// ErrUnexpectedResponseType indicates the model returned no usable text
	// content. The grading run must abort; no score is derived from it.
	ErrUnexpectedResponseType = errors.New("unexpected response content from model")

	// ErrReviewParse indicates the model response was not the required
	// structured JSON. Never defaulted; the grading run aborts.
	ErrReviewParse = errors.New("model response is not a valid structured review")
)

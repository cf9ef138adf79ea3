package app

import "errors"

var (
	// ErrNotFound is returned when a referenced question/answer/card is absent.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when the actor lacks permission for the operation.
	ErrForbidden = errors.New("permission denied")

	ErrHelpedTargetsAnswers = errors.New("helped only valid for answers")
	ErrHelpedAuthorOnly     = errors.New("only question author may mark helped")
	ErrSavedScope           = errors.New("save only valid for answers and cards")
	ErrInvalidReactionType  = errors.New("invalid reaction type")
	ErrInvalidEntityType    = errors.New("invalid entity type")

	// ErrCardUnpublish is returned when an edit attempts PUBLISHED -> DRAFT.
	ErrCardUnpublish = errors.New("published cards cannot return to draft")

	// ErrDailyQuestionLimit is returned when an author exceeds the 24h question cap.
	ErrDailyQuestionLimit = errors.New("daily question limit reached")

	ErrEmailRequired        = errors.New("email required")
	ErrBodyRequired         = errors.New("body required")
	ErrReasonRequired       = errors.New("reason required")
	ErrInvalidBudgetTier    = errors.New("invalid budget tier")
	ErrInvalidReportStatus  = errors.New("invalid report status")
	ErrMediaNotConfigured   = errors.New("media storage not configured")
	ErrMediaContentRequired = errors.New("media content required")
)

package ideas

import (
	"errors"
	"regexp"
	"strings"

	"github.com/xyz-asif/datejar/internal/jar"
)

const maxTitleLength = 200

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func ValidateCreateIdea(req *CreateIdeaRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return errors.New("title is required")
	}
	if len(req.Title) > maxTitleLength {
		return errors.New("title is too long")
	}
	if req.Cost != "" && !jar.CostLevel(req.Cost).Valid() {
		return errors.New("cost must be one of: Kostenlos, €, €€, €€€")
	}
	if req.PlannedMonth != "" && !monthPattern.MatchString(req.PlannedMonth) {
		return errors.New("plannedMonth must use the YYYY-MM format")
	}
	return nil
}

func ValidateUpdateIdea(req *UpdateIdeaRequest) error {
	if req.Title != nil {
		*req.Title = strings.TrimSpace(*req.Title)
		if *req.Title == "" {
			return errors.New("title cannot be empty")
		}
		if len(*req.Title) > maxTitleLength {
			return errors.New("title is too long")
		}
	}
	if req.Cost != nil && *req.Cost != "" && !jar.CostLevel(*req.Cost).Valid() {
		return errors.New("cost must be one of: Kostenlos, €, €€, €€€")
	}
	if req.PlannedMonth != nil && *req.PlannedMonth != "" && !monthPattern.MatchString(*req.PlannedMonth) {
		return errors.New("plannedMonth must use the YYYY-MM format")
	}
	return nil
}

package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/content-publishing-api/internal/apperrors"
	"github.com/content-publishing-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateRegistration validates the fields of a registration request
func ValidateRegistration(name, email, password string) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	name = strings.TrimSpace(name)
	if name == "" {
		errs = append(errs, apperrors.ValidationError{Field: "name", Message: "name is required"})
	} else if len(name) > models.MaxNameLength {
		errs = append(errs, apperrors.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name cannot be more than %d characters", models.MaxNameLength),
		})
	}

	if email == "" {
		errs = append(errs, apperrors.ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, apperrors.ValidationError{Field: "email", Message: "invalid email format"})
	}

	if password == "" {
		errs = append(errs, apperrors.ValidationError{Field: "password", Message: "password is required"})
	} else if len(password) < models.MinPasswordLength {
		errs = append(errs, apperrors.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", models.MinPasswordLength),
		})
	}

	return errs
}

// ValidateArticleInput validates title, subtitle and content constraints
// for article creation.
func ValidateArticleInput(title, subtitle, content string) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if strings.TrimSpace(title) == "" {
		errs = append(errs, apperrors.ValidationError{Field: "title", Message: "title is required"})
	} else if len(title) > models.MaxTitleLength {
		errs = append(errs, apperrors.ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title cannot be more than %d characters", models.MaxTitleLength),
		})
	}

	if len(subtitle) > models.MaxSubtitleLength {
		errs = append(errs, apperrors.ValidationError{
			Field:   "subtitle",
			Message: fmt.Sprintf("subtitle cannot be more than %d characters", models.MaxSubtitleLength),
		})
	}

	if strings.TrimSpace(content) == "" {
		errs = append(errs, apperrors.ValidationError{Field: "content", Message: "content is required"})
	}

	return errs
}

// ValidateArticlePatch validates only the fields present in a partial
// update. Nil fields are untouched and carry no constraints.
func ValidateArticlePatch(title, subtitle, content *string) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if title != nil {
		if strings.TrimSpace(*title) == "" {
			errs = append(errs, apperrors.ValidationError{Field: "title", Message: "title cannot be empty"})
		} else if len(*title) > models.MaxTitleLength {
			errs = append(errs, apperrors.ValidationError{
				Field:   "title",
				Message: fmt.Sprintf("title cannot be more than %d characters", models.MaxTitleLength),
			})
		}
	}

	if subtitle != nil && len(*subtitle) > models.MaxSubtitleLength {
		errs = append(errs, apperrors.ValidationError{
			Field:   "subtitle",
			Message: fmt.Sprintf("subtitle cannot be more than %d characters", models.MaxSubtitleLength),
		})
	}

	if content != nil && strings.TrimSpace(*content) == "" {
		errs = append(errs, apperrors.ValidationError{Field: "content", Message: "content cannot be empty"})
	}

	return errs
}

// ValidateComment validates a comment body
func ValidateComment(content string) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if strings.TrimSpace(content) == "" {
		errs = append(errs, apperrors.ValidationError{Field: "content", Message: "content is required"})
	} else if len(content) > models.MaxCommentLength {
		errs = append(errs, apperrors.ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("comment cannot be more than %d characters", models.MaxCommentLength),
		})
	}

	return errs
}

// ValidateCategory validates a category against the closed name set
func ValidateCategory(name, description string) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if name == "" {
		errs = append(errs, apperrors.ValidationError{Field: "name", Message: "category name is required"})
	} else if !models.ValidCategoryNames[name] {
		errs = append(errs, apperrors.ValidationError{Field: "name", Message: "unknown category name"})
	}

	if description == "" {
		errs = append(errs, apperrors.ValidationError{Field: "description", Message: "category description is required"})
	} else if len(description) > models.MaxCategoryDescriptionLength {
		errs = append(errs, apperrors.ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("description cannot exceed %d characters", models.MaxCategoryDescriptionLength),
		})
	}

	return errs
}

package service

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"projecthub/internal/config"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
)

// projectFields is the validation view shared by create and update. Nil
// means "not supplied"; non-nullable fields that arrive as JSON null are
// rejected before this struct is built.
type projectFields struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	Progress    *int      `json:"progress"`
	Deadline    *string   `json:"deadline"`
	Priority    *string   `json:"priority"`
	Budget      *float64  `json:"budget"`
	Team        *[]string `json:"team"`
	Category    *string   `json:"category"`
}

type taskFields struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Deadline    *string `json:"deadline"`
	Assignee    *string `json:"assignee"`
	Priority    *string `json:"priority"`
}

// validateProjectFields applies field rules. On create the name is required;
// on update it is only checked when supplied.
func validateProjectFields(f *projectFields, creating bool) error {
	nameRules := []validation.Rule{validation.NilOrNotEmpty}
	if creating {
		nameRules = []validation.Rule{validation.Required}
	}
	nameRules = append(nameRules, validation.RuneLength(config.MinNameLength, config.MaxProjectNameLength))

	return validation.ValidateStruct(f,
		validation.Field(&f.Name, nameRules...),
		validation.Field(&f.Description, validation.RuneLength(0, config.MaxProjectDescriptionLength)),
		validation.Field(&f.Status, enumRule(func(s string) error {
			_, err := models.ParseProjectStatus(s)
			return err
		})),
		validation.Field(&f.Progress, validation.Min(0), validation.Max(config.MaxProgress)),
		validation.Field(&f.Deadline, dateRule),
		validation.Field(&f.Priority, enumRule(priorityValid)),
		validation.Field(&f.Budget, validation.Min(float64(0)), validation.Max(float64(config.MaxBudget))),
		validation.Field(&f.Team, validation.Length(0, config.MaxTeamSize)),
		validation.Field(&f.Category, validation.RuneLength(0, config.MaxCategoryLength)),
	)
}

func validateTaskFields(f *taskFields, creating bool) error {
	titleRules := []validation.Rule{validation.NilOrNotEmpty}
	if creating {
		titleRules = []validation.Rule{validation.Required}
	}
	titleRules = append(titleRules, validation.RuneLength(config.MinNameLength, config.MaxTaskTitleLength))

	return validation.ValidateStruct(f,
		validation.Field(&f.Title, titleRules...),
		validation.Field(&f.Description, validation.RuneLength(0, config.MaxTaskDescriptionLength)),
		validation.Field(&f.Status, enumRule(func(s string) error {
			_, err := models.ParseTaskStatus(s)
			return err
		})),
		validation.Field(&f.Deadline, dateRule),
		validation.Field(&f.Assignee, validation.RuneLength(0, config.MaxAssigneeLength)),
		validation.Field(&f.Priority, enumRule(priorityValid)),
	)
}

func priorityValid(s string) error {
	_, err := models.ParsePriority(s)
	return err
}

// enumRule checks a supplied *string against a closed set. Unlike
// validation.In it also rejects the empty string.
func enumRule(check func(string) error) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(*string)
		if !ok || s == nil {
			return nil
		}
		return check(*s)
	})
}

// dateRule checks a supplied *string is a YYYY-MM-DD calendar date.
var dateRule = validation.By(func(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	_, err := models.ParseDate(*s)
	return err
})

// toValidationError converts ozzo's per-field error map into the domain
// error. Internal rule errors pass through unchanged.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return &domain.ValidationError{Message: err.Error()}
	}

	fields := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		fields[field] = fieldErr.Error()
	}
	return &domain.ValidationError{Fields: fields}
}

// nullFieldErrors reports non-nullable fields explicitly sent as null.
func nullFieldErrors(checks map[string]bool) map[string]string {
	fields := map[string]string{}
	for name, isNull := range checks {
		if isNull {
			fields[name] = "cannot be null"
		}
	}
	return fields
}

// mergeValidation folds failures found before rule checks (null or
// mistyped fields) into the ozzo result so the client sees every problem at
// once. The earlier failure wins for a field reported by both.
func mergeValidation(nullFields map[string]string, err error) error {
	err = toValidationError(err)
	if len(nullFields) == 0 {
		return err
	}

	var verr *domain.ValidationError
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	if verr == nil {
		verr = &domain.ValidationError{Fields: map[string]string{}}
	}
	if verr.Fields == nil {
		verr.Fields = map[string]string{}
	}
	for k, v := range nullFields {
		verr.Fields[k] = v
	}
	return verr
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// optionalValue returns the supplied value of a present, non-null field.
func optionalValue[T any](o models.Optional[T]) *T {
	if !o.Present {
		return nil
	}
	return o.Value
}

func parseDatePtr(s *string) (*models.Date, error) {
	if s == nil {
		return nil, nil
	}
	d, err := models.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

package domain

import (
	"board-lab/errors"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type frameSchema struct {
	Event *string        `json:"event" validate:"required"`
	Data  map[string]any `json:"data"`
}

// elementSchema only checks the known fields; extra keys are ignored here
// and preserved by the caller.
type elementSchema struct {
	ElementID   *string        `json:"element_id" validate:"required"`
	Room        *string        `json:"room" validate:"required"`
	Player      *string        `json:"player"`
	Type        *string        `json:"type"`
	Coordinates []int          `json:"coordinates"`
	Styles      map[string]any `json:"styles"`
}

type elementRefSchema struct {
	ElementID *string `json:"element_id" validate:"required"`
}

// ParseElementRef reads the element_id a delete request points at.
// A missing or null id fails the required rule, any other non-string the type check.
func ParseElementRef(data map[string]any) (string, error) {
	raw, err := json.Marshal(map[string]any{FieldElementID: data[FieldElementID]})
	if err != nil {
		verrs := errors.ValidationErrors{}
		verrs.Add(FieldElementID, err.Error())
		return "", verrs
	}
	var ref elementRefSchema
	if err = decodeInto(raw, &ref); err != nil {
		return "", err
	}
	return *ref.ElementID, nil
}

// ParseFrame decodes an inbound text frame into a Message.
func ParseFrame(raw []byte) (Message, error) {
	var frame frameSchema
	if err := decodeInto(raw, &frame); err != nil {
		return Message{}, err
	}
	return Message{Event: *frame.Event, Data: frame.Data}, nil
}

// ValidateElement checks data against the element schema and returns it unchanged on success.
func ValidateElement(data Element) (Element, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		verrs := errors.ValidationErrors{}
		verrs.Add("_schema", err.Error())
		return nil, verrs
	}
	var schema elementSchema
	if err = decodeInto(raw, &schema); err != nil {
		return nil, err
	}
	return data, nil
}

func decodeInto(raw []byte, schema any) error {
	verrs := errors.ValidationErrors{}
	if err := json.Unmarshal(raw, schema); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			verrs.Add(typeErr.Field, fmt.Sprintf("Not a valid %s.", describeKind(typeErr.Type)))
			return verrs
		}
		verrs.Add("_schema", "Invalid input type.")
		return verrs
	}
	if err := validate.Struct(schema); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verrs.Add(fe.Field(), describeTag(fe))
		}
		return verrs
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "Missing data for required field."
	}
	return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
}

func describeKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Slice:
		return "list"
	case reflect.Map:
		return "mapping"
	case reflect.Int, reflect.Int64, reflect.Int32:
		return "integer"
	default:
		return t.Kind().String()
	}
}
